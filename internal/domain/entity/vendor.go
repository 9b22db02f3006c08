package entity

import "time"

// Vendor is a business listing offering administrative services (registered
// addresses, accounting, legal and similar).
type Vendor struct {
	ID            string    `json:"id" firestore:"id"`
	Name          string    `json:"name" firestore:"name"`
	Description   string    `json:"description,omitempty" firestore:"description,omitempty"`
	Services      []string  `json:"services" firestore:"services"`
	Address       string    `json:"address,omitempty" firestore:"address,omitempty"`
	City          string    `json:"city,omitempty" firestore:"city,omitempty"`
	Email         string    `json:"email,omitempty" firestore:"email,omitempty"`
	Phone         string    `json:"phone,omitempty" firestore:"phone,omitempty"`
	LogoURL       string    `json:"logo_url,omitempty" firestore:"logoUrl,omitempty"`
	PhotoURLs     []string  `json:"photo_urls,omitempty" firestore:"photoUrls,omitempty"`
	OwnerUID      string    `json:"owner_uid,omitempty" firestore:"ownerUid,omitempty"`
	FavoriteCount int64     `json:"favorite_count" firestore:"favoriteCount"`
	CreatedAt     time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt     time.Time `json:"updated_at" firestore:"updatedAt"`
}
