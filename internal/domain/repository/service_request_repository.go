package repository

import (
	"context"

	"verslohub/internal/domain/entity"
)

// RequestSnapshotHandler receives every snapshot delivered by a live request
// query, or the error that terminated it.
type RequestSnapshotHandler func(requests []*entity.ServiceRequest, err error)

// MessageSnapshotHandler receives every snapshot delivered by a live message
// thread query.
type MessageSnapshotHandler func(messages []*entity.Message, err error)

type ServiceRequestRepository interface {
	Create(ctx context.Context, request *entity.ServiceRequest) error
	GetByID(ctx context.Context, id string) (*entity.ServiceRequest, error)

	// List queries are ordered by updatedAt descending.
	ListByRequester(ctx context.Context, requesterID string) ([]*entity.ServiceRequest, error)
	ListByVendors(ctx context.Context, vendorIDs []string) ([]*entity.ServiceRequest, error)

	// Watch methods return a disposer before any snapshot can be delivered.
	// The handler keeps firing until the disposer is called.
	WatchByRequester(ctx context.Context, requesterID string, fn RequestSnapshotHandler) func()
	WatchByVendors(ctx context.Context, vendorIDs []string, fn RequestSnapshotHandler) func()

	// Status transitions stamp updatedAt (and responseDate where relevant)
	// with the store's server-generated time.
	MarkInProgress(ctx context.Context, id string) error
	MarkCompleted(ctx context.Context, id, ownerUID string) error
	Complete(ctx context.Context, id, ownerUID, responseText string) error
	Reject(ctx context.Context, id string) error
	UpdateSummary(ctx context.Context, id, lastMessage, senderRole string) error

	AppendMessage(ctx context.Context, requestID string, message *entity.Message) error
	// ListMessages is ordered by createdAt ascending.
	ListMessages(ctx context.Context, requestID string) ([]*entity.Message, error)
	WatchMessages(ctx context.Context, requestID string, fn MessageSnapshotHandler) func()

	// ListMissingOwner returns requests addressed to the given vendors that
	// are inProgress or completed and have no ownerUid yet.
	ListMissingOwner(ctx context.Context, vendorIDs []string) ([]*entity.ServiceRequest, error)
	// SetOwner backfills ownerUid on the given requests in one atomic batch.
	SetOwner(ctx context.Context, ids []string, ownerUID string) error
}
