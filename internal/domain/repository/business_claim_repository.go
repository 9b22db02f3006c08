package repository

import (
	"context"

	"verslohub/internal/domain/entity"
)

type BusinessClaimRepository interface {
	Create(ctx context.Context, claim *entity.BusinessClaim) error
	GetByID(ctx context.Context, id string) (*entity.BusinessClaim, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.BusinessClaim, error)
	// ListApprovedByUser returns only claims with status approved.
	ListApprovedByUser(ctx context.Context, userID string) ([]*entity.BusinessClaim, error)
	UpdateStatus(ctx context.Context, id, status string) error
}
