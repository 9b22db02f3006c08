package repository

import (
	"context"

	"verslohub/internal/domain/entity"
)

type NotificationRepository interface {
	Create(ctx context.Context, notification *entity.Notification) error
	// List queries are ordered by createdAt descending.
	ListByUser(ctx context.Context, userID string) ([]*entity.Notification, error)
	ListByVendors(ctx context.Context, vendorIDs []string) ([]*entity.Notification, error)
	GetByID(ctx context.Context, id string) (*entity.Notification, error)
	MarkRead(ctx context.Context, id string) error
}
