package entity

import "time"

const (
	NotificationTypeMessage  = "message"
	NotificationTypeResponse = "response"
	NotificationTypeRequest  = "request"
)

// Notification alerts the counterpart of a new message or vendor response.
// Exactly one of UserID/VendorID is set per notification.
type Notification struct {
	ID        string    `json:"id" firestore:"id"`
	Type      string    `json:"type" firestore:"type"`
	Title     string    `json:"title" firestore:"title"`
	Body      string    `json:"body" firestore:"body"`
	UserID    string    `json:"user_id,omitempty" firestore:"userId,omitempty"`
	VendorID  string    `json:"vendor_id,omitempty" firestore:"vendorId,omitempty"`
	RequestID string    `json:"request_id" firestore:"requestId"`
	Read      bool      `json:"read" firestore:"read"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
}
