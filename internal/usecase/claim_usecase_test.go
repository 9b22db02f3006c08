package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"verslohub/internal/domain/entity"
	"verslohub/pkg/errors"
)

func claimFixture() (*ClaimUseCase, *fakeClaimRepo, *fakeVendorRepo) {
	claimRepo := newFakeClaimRepo()
	vendorRepo := newFakeVendorRepo()
	vendorRepo.Create(context.Background(), &entity.Vendor{ID: "vendor-1", Name: "UAB Biuras"})
	return NewClaimUseCase(claimRepo, vendorRepo), claimRepo, vendorRepo
}

func TestSubmitClaim(t *testing.T) {
	uc, claimRepo, _ := claimFixture()

	claim, err := uc.Submit(context.Background(), "user-1", "vendor-1", "Esu direktorius")

	assert.NoError(t, err)
	assert.Equal(t, entity.ClaimStatusPending, claim.Status)
	assert.Contains(t, claimRepo.claims, claim.ID)
}

func TestSubmitClaimRejectsDuplicate(t *testing.T) {
	uc, _, _ := claimFixture()

	_, err := uc.Submit(context.Background(), "user-1", "vendor-1", "")
	assert.NoError(t, err)

	_, err = uc.Submit(context.Background(), "user-1", "vendor-1", "")
	assert.True(t, errors.Is(err, "CONFLICT"))
}

func TestSubmitClaimAllowsRetryAfterRejection(t *testing.T) {
	uc, claimRepo, _ := claimFixture()

	first, err := uc.Submit(context.Background(), "user-1", "vendor-1", "")
	assert.NoError(t, err)

	claimRepo.claims[first.ID].Status = entity.ClaimStatusRejected

	_, err = uc.Submit(context.Background(), "user-1", "vendor-1", "Bandau dar kartą")
	assert.NoError(t, err)
}

func TestSubmitClaimUnknownVendor(t *testing.T) {
	uc, _, _ := claimFixture()

	_, err := uc.Submit(context.Background(), "user-1", "ghost", "")
	assert.True(t, errors.Is(err, "NOT_FOUND"))
}

func TestReviewClaim(t *testing.T) {
	uc, claimRepo, _ := claimFixture()
	claim, _ := uc.Submit(context.Background(), "user-1", "vendor-1", "")

	assert.NoError(t, uc.Review(context.Background(), claim.ID, entity.ClaimStatusApproved))
	assert.Equal(t, entity.ClaimStatusApproved, claimRepo.claims[claim.ID].Status)

	// A reviewed claim stays reviewed.
	err := uc.Review(context.Background(), claim.ID, entity.ClaimStatusRejected)
	assert.True(t, errors.Is(err, "CONFLICT"))
}

func TestReviewClaimValidatesStatus(t *testing.T) {
	uc, _, _ := claimFixture()
	claim, _ := uc.Submit(context.Background(), "user-1", "vendor-1", "")

	err := uc.Review(context.Background(), claim.ID, "maybe")
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}
