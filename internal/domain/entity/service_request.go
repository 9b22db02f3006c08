package entity

import "time"

const (
	RequestStatusPending    = "pending"
	RequestStatusInProgress = "inProgress"
	RequestStatusCompleted  = "completed"
	RequestStatusRejected   = "rejected"
)

const (
	UrgencyHigh   = "high"
	UrgencyNormal = "normal"
	UrgencyLow    = "low"
)

const (
	ContactMethodEmail = "email"
	ContactMethodPhone = "phone"
)

// ServiceRequest is one help request from a user to a vendor. Messages live in
// a subcollection under the request; lastMessage/lastMessageSender are
// denormalized copies for list rendering.
type ServiceRequest struct {
	ID                string     `json:"id" firestore:"id"`
	RequesterID       string     `json:"requester_id" firestore:"requesterId"`
	RequesterName     string     `json:"requester_name,omitempty" firestore:"requesterName,omitempty"`
	VendorID          string     `json:"vendor_id" firestore:"vendorId"`
	OwnerUID          string     `json:"owner_uid,omitempty" firestore:"ownerUid,omitempty"` // backfilled lazily on legacy documents
	Subject           string     `json:"subject" firestore:"subject"`
	Details           string     `json:"details" firestore:"details"`
	Urgency           string     `json:"urgency" firestore:"urgency"`
	ContactMethod     string     `json:"contact_method" firestore:"contactMethod"`
	Status            string     `json:"status" firestore:"status"`
	ResponseText      string     `json:"response_text,omitempty" firestore:"responseText,omitempty"`
	ResponseDate      *time.Time `json:"response_date,omitempty" firestore:"responseDate,omitempty"`
	// ResponseDateDisplay is derived on read, never stored.
	ResponseDateDisplay string    `json:"response_date_display,omitempty" firestore:"-"`
	LastMessage         string    `json:"last_message,omitempty" firestore:"lastMessage,omitempty"`
	LastMessageSender   string    `json:"last_message_sender,omitempty" firestore:"lastMessageSender,omitempty"`
	CreatedAt           time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt           time.Time `json:"updated_at" firestore:"updatedAt"`
}

// CanTransition reports whether the request may move to the given status.
// pending -> inProgress -> completed, with rejected reachable from pending
// only. Terminal states never move.
func (r *ServiceRequest) CanTransition(next string) bool {
	switch r.Status {
	case RequestStatusPending:
		return next == RequestStatusInProgress ||
			next == RequestStatusCompleted ||
			next == RequestStatusRejected
	case RequestStatusInProgress:
		return next == RequestStatusCompleted
	default:
		return false
	}
}

// Terminal reports whether the request reached a final status.
func (r *ServiceRequest) Terminal() bool {
	return r.Status == RequestStatusCompleted || r.Status == RequestStatusRejected
}

func ValidUrgency(urgency string) bool {
	return urgency == UrgencyHigh || urgency == UrgencyNormal || urgency == UrgencyLow
}

func ValidContactMethod(method string) bool {
	return method == ContactMethodEmail || method == ContactMethodPhone
}
