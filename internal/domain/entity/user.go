package entity

import "time"

// User mirrors the Firebase identity plus the profile fields this service
// keeps itself. ID is the Firebase UID.
type User struct {
	ID          string    `json:"id" firestore:"id"`
	Email       string    `json:"email" firestore:"email"`
	DisplayName string    `json:"display_name,omitempty" firestore:"displayName,omitempty"`
	Role        string    `json:"role" firestore:"role"`
	CreatedAt   time.Time `json:"created_at" firestore:"createdAt"`
}
