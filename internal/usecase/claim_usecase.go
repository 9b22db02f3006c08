package usecase

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"verslohub/internal/domain/entity"
	"verslohub/internal/domain/repository"
	"verslohub/pkg/errors"
)

type ClaimUseCase struct {
	claimRepo  repository.BusinessClaimRepository
	vendorRepo repository.VendorRepository
}

func NewClaimUseCase(claimRepo repository.BusinessClaimRepository, vendorRepo repository.VendorRepository) *ClaimUseCase {
	return &ClaimUseCase{claimRepo: claimRepo, vendorRepo: vendorRepo}
}

// Submit files a claim that the user operates the given vendor. A user may
// hold at most one non-rejected claim per vendor.
func (uc *ClaimUseCase) Submit(ctx context.Context, userID, vendorID, note string) (*entity.BusinessClaim, error) {
	if _, err := uc.vendorRepo.GetByID(ctx, vendorID); err != nil {
		return nil, err
	}

	existing, err := uc.claimRepo.ListByUser(ctx, userID)
	if err != nil {
		log.Printf("Failed to list claims for user %s: %v", userID, err)
		return nil, err
	}
	for _, claim := range existing {
		if claim.VendorID == vendorID && claim.Status != entity.ClaimStatusRejected {
			return nil, errors.Conflict("You already have a claim for this vendor")
		}
	}

	now := time.Now()
	claim := &entity.BusinessClaim{
		ID:        uuid.New().String(),
		UserID:    userID,
		VendorID:  vendorID,
		Note:      note,
		Status:    entity.ClaimStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.claimRepo.Create(ctx, claim); err != nil {
		log.Printf("Failed to create claim for user %s vendor %s: %v", userID, vendorID, err)
		return nil, err
	}

	log.Printf("Business claim %s submitted by user %s for vendor %s", claim.ID, userID, vendorID)
	return claim, nil
}

func (uc *ClaimUseCase) ListOwn(ctx context.Context, userID string) ([]*entity.BusinessClaim, error) {
	return uc.claimRepo.ListByUser(ctx, userID)
}

// Review approves or rejects a pending claim. Admin only; the handler layer
// enforces the role.
func (uc *ClaimUseCase) Review(ctx context.Context, claimID, status string) error {
	if status != entity.ClaimStatusApproved && status != entity.ClaimStatusRejected {
		return errors.BadRequest("Status must be approved or rejected", nil)
	}

	claim, err := uc.claimRepo.GetByID(ctx, claimID)
	if err != nil {
		return err
	}
	if claim.Status != entity.ClaimStatusPending {
		return errors.Conflict("Claim has already been reviewed")
	}

	if err := uc.claimRepo.UpdateStatus(ctx, claimID, status); err != nil {
		log.Printf("Failed to update claim %s to %s: %v", claimID, status, err)
		return err
	}

	log.Printf("Business claim %s reviewed: %s", claimID, status)
	return nil
}
