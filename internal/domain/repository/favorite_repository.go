package repository

import (
	"context"

	"verslohub/internal/domain/entity"
)

type FavoriteRepository interface {
	Add(ctx context.Context, userID, vendorID string) (*entity.Favorite, error)
	Remove(ctx context.Context, userID, vendorID string) error
	IsFavorite(ctx context.Context, userID, vendorID string) (bool, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.Favorite, error)
}
