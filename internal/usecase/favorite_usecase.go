package usecase

import (
	"context"
	"log"
	"sync"

	"verslohub/internal/domain/entity"
	"verslohub/internal/domain/repository"
	"verslohub/pkg/optimistic"
)

// FavoriteUseCase toggles vendor favorites. The per-vendor count is adjusted
// optimistically in the local cache so list views react immediately, and
// reverted when the store write fails.
type FavoriteUseCase struct {
	favoriteRepo repository.FavoriteRepository
	vendorRepo   repository.VendorRepository

	mu     sync.Mutex
	counts map[string]int64
}

func NewFavoriteUseCase(favoriteRepo repository.FavoriteRepository, vendorRepo repository.VendorRepository) *FavoriteUseCase {
	return &FavoriteUseCase{
		favoriteRepo: favoriteRepo,
		vendorRepo:   vendorRepo,
		counts:       make(map[string]int64),
	}
}

// Toggle flips the favorite state for the vendor and returns the new state.
func (uc *FavoriteUseCase) Toggle(ctx context.Context, userID, vendorID string) (bool, error) {
	if _, err := uc.vendorRepo.GetByID(ctx, vendorID); err != nil {
		return false, err
	}

	isFavorite, err := uc.favoriteRepo.IsFavorite(ctx, userID, vendorID)
	if err != nil {
		log.Printf("Failed to check favorite state for user %s vendor %s: %v", userID, vendorID, err)
		return false, err
	}

	var delta int64 = 1
	if isFavorite {
		delta = -1
	}

	err = optimistic.Do(
		func() { uc.adjustCached(vendorID, delta) },
		func() { uc.adjustCached(vendorID, -delta) },
		func() error {
			if isFavorite {
				if err := uc.favoriteRepo.Remove(ctx, userID, vendorID); err != nil {
					return err
				}
			} else {
				if _, err := uc.favoriteRepo.Add(ctx, userID, vendorID); err != nil {
					return err
				}
			}
			return uc.vendorRepo.AdjustFavoriteCount(ctx, vendorID, delta)
		},
	)
	if err != nil {
		log.Printf("Failed to toggle favorite for user %s vendor %s: %v", userID, vendorID, err)
		return isFavorite, err
	}

	return !isFavorite, nil
}

// Remove drops the favorite if present. Removing an absent favorite is a
// no-op.
func (uc *FavoriteUseCase) Remove(ctx context.Context, userID, vendorID string) error {
	isFavorite, err := uc.favoriteRepo.IsFavorite(ctx, userID, vendorID)
	if err != nil {
		return err
	}
	if !isFavorite {
		return nil
	}

	return optimistic.Do(
		func() { uc.adjustCached(vendorID, -1) },
		func() { uc.adjustCached(vendorID, 1) },
		func() error {
			if err := uc.favoriteRepo.Remove(ctx, userID, vendorID); err != nil {
				return err
			}
			return uc.vendorRepo.AdjustFavoriteCount(ctx, vendorID, -1)
		},
	)
}

func (uc *FavoriteUseCase) IsFavorite(ctx context.Context, userID, vendorID string) (bool, error) {
	return uc.favoriteRepo.IsFavorite(ctx, userID, vendorID)
}

// ListVendors returns the vendors the user has favorited. Vendors deleted
// since they were favorited are skipped.
func (uc *FavoriteUseCase) ListVendors(ctx context.Context, userID string) ([]*entity.Vendor, error) {
	favorites, err := uc.favoriteRepo.ListByUser(ctx, userID)
	if err != nil {
		log.Printf("Failed to list favorites for user %s: %v", userID, err)
		return nil, err
	}

	vendors := make([]*entity.Vendor, 0, len(favorites))
	for _, favorite := range favorites {
		vendor, err := uc.vendorRepo.GetByID(ctx, favorite.VendorID)
		if err != nil {
			continue
		}
		vendors = append(vendors, vendor)
	}
	return vendors, nil
}

// CachedCount returns the locally adjusted favorite count on top of the
// stored base value.
func (uc *FavoriteUseCase) CachedCount(vendorID string, base int64) int64 {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	count := base + uc.counts[vendorID]
	if count < 0 {
		count = 0
	}
	return count
}

func (uc *FavoriteUseCase) adjustCached(vendorID string, delta int64) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.counts[vendorID] += delta
}
