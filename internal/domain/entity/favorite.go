package entity

import "time"

type Favorite struct {
	ID        string    `json:"id" firestore:"id"`
	UserID    string    `json:"user_id" firestore:"userId"`
	VendorID  string    `json:"vendor_id" firestore:"vendorId"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
}
