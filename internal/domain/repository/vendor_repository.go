package repository

import (
	"context"

	"verslohub/internal/domain/entity"
)

type VendorRepository interface {
	Create(ctx context.Context, vendor *entity.Vendor) error
	GetByID(ctx context.Context, id string) (*entity.Vendor, error)
	List(ctx context.Context, city, service string, limit, offset int) ([]*entity.Vendor, int64, error)
	ListByOwner(ctx context.Context, ownerUID string) ([]*entity.Vendor, error)
	Update(ctx context.Context, vendor *entity.Vendor) error
	UpdateLogo(ctx context.Context, id, logoURL string) error
	AddPhoto(ctx context.Context, id, photoURL string) error
	AdjustFavoriteCount(ctx context.Context, id string, delta int64) error
}
