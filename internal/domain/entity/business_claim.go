package entity

import "time"

const (
	ClaimStatusPending  = "pending"
	ClaimStatusApproved = "approved"
	ClaimStatusRejected = "rejected"
)

// BusinessClaim asserts that a user owns or operates a vendor. Only approved
// claims grant the right to act on the vendor's behalf.
type BusinessClaim struct {
	ID        string    `json:"id" firestore:"id"`
	UserID    string    `json:"user_id" firestore:"userId"`
	VendorID  string    `json:"vendor_id" firestore:"vendorId"`
	Note      string    `json:"note,omitempty" firestore:"note,omitempty"`
	Status    string    `json:"status" firestore:"status"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}
