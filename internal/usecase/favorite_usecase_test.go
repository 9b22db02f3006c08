package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"verslohub/internal/domain/entity"
	"verslohub/pkg/errors"
)

func favoriteFixture() (*FavoriteUseCase, *fakeFavoriteRepo, *fakeVendorRepo) {
	favoriteRepo := newFakeFavoriteRepo()
	vendorRepo := newFakeVendorRepo()
	vendorRepo.Create(context.Background(), &entity.Vendor{ID: "vendor-1", Name: "UAB Biuras"})
	return NewFavoriteUseCase(favoriteRepo, vendorRepo), favoriteRepo, vendorRepo
}

func TestToggleAddsAndRemoves(t *testing.T) {
	uc, favoriteRepo, vendorRepo := favoriteFixture()

	isFavorite, err := uc.Toggle(context.Background(), "user-1", "vendor-1")
	assert.NoError(t, err)
	assert.True(t, isFavorite)
	assert.True(t, favoriteRepo.favorites["user-1_vendor-1"])
	assert.Equal(t, int64(1), vendorRepo.vendors["vendor-1"].FavoriteCount)

	isFavorite, err = uc.Toggle(context.Background(), "user-1", "vendor-1")
	assert.NoError(t, err)
	assert.False(t, isFavorite)
	assert.Equal(t, int64(0), vendorRepo.vendors["vendor-1"].FavoriteCount)
}

func TestRemoveIsIdempotent(t *testing.T) {
	uc, favoriteRepo, vendorRepo := favoriteFixture()
	favoriteRepo.favorites["user-1_vendor-1"] = true
	vendorRepo.vendors["vendor-1"].FavoriteCount = 1

	assert.NoError(t, uc.Remove(context.Background(), "user-1", "vendor-1"))
	assert.False(t, favoriteRepo.favorites["user-1_vendor-1"])
	assert.Equal(t, int64(0), vendorRepo.vendors["vendor-1"].FavoriteCount)

	// Removing again touches nothing.
	assert.NoError(t, uc.Remove(context.Background(), "user-1", "vendor-1"))
	assert.Equal(t, int64(0), vendorRepo.vendors["vendor-1"].FavoriteCount)
}

func TestToggleUnknownVendor(t *testing.T) {
	uc, _, _ := favoriteFixture()

	_, err := uc.Toggle(context.Background(), "user-1", "ghost")
	assert.True(t, errors.Is(err, "NOT_FOUND"))
}

func TestToggleRevertsCachedCountOnFailure(t *testing.T) {
	uc, favoriteRepo, _ := favoriteFixture()
	favoriteRepo.addErr = errors.Internal("store unavailable", nil)

	_, err := uc.Toggle(context.Background(), "user-1", "vendor-1")

	assert.Error(t, err)
	// The optimistic bump was rolled back.
	assert.Equal(t, int64(0), uc.CachedCount("vendor-1", 0))
}

func TestCachedCountNeverNegative(t *testing.T) {
	uc, _, _ := favoriteFixture()

	uc.adjustCached("vendor-1", -3)
	assert.Equal(t, int64(0), uc.CachedCount("vendor-1", 1))
}

func TestListVendorsSkipsDeleted(t *testing.T) {
	uc, favoriteRepo, _ := favoriteFixture()
	favoriteRepo.favorites["user-1_vendor-1"] = true
	favoriteRepo.favorites["user-1_ghost"] = true

	vendors, err := uc.ListVendors(context.Background(), "user-1")

	assert.NoError(t, err)
	assert.Len(t, vendors, 1)
	assert.Equal(t, "vendor-1", vendors[0].ID)
}
