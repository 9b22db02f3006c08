package entity

import "time"

const (
	SenderRoleUser   = "user"
	SenderRoleVendor = "vendor"
)

// Message is one chat entry in a request's thread. Append-only, ordered by
// creation time ascending.
type Message struct {
	ID         string    `json:"id" firestore:"id"`
	RequestID  string    `json:"request_id" firestore:"requestId"`
	SenderID   string    `json:"sender_id" firestore:"senderId"`
	SenderName string    `json:"sender_name" firestore:"senderName"`
	SenderRole string    `json:"sender_role" firestore:"senderRole"`
	Content    string    `json:"content" firestore:"content"`
	CreatedAt  time.Time `json:"created_at" firestore:"createdAt"`
}
