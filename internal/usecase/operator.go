package usecase

import (
	"context"

	"verslohub/internal/domain/repository"
)

// operatorResolver answers which vendors a user may act on behalf of: every
// vendor covered by an approved business claim plus every vendor the user
// owns directly.
type operatorResolver struct {
	claimRepo  repository.BusinessClaimRepository
	vendorRepo repository.VendorRepository
}

func (o *operatorResolver) operatedVendorIDs(ctx context.Context, userID string) ([]string, error) {
	claims, err := o.claimRepo.ListApprovedByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var ids []string
	for _, claim := range claims {
		if !seen[claim.VendorID] {
			seen[claim.VendorID] = true
			ids = append(ids, claim.VendorID)
		}
	}

	vendors, err := o.vendorRepo.ListByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, vendor := range vendors {
		if !seen[vendor.ID] {
			seen[vendor.ID] = true
			ids = append(ids, vendor.ID)
		}
	}

	return ids, nil
}

func (o *operatorResolver) operatesVendor(ctx context.Context, userID, vendorID string) (bool, error) {
	ids, err := o.operatedVendorIDs(ctx, userID)
	if err != nil {
		return false, err
	}
	for _, id := range ids {
		if id == vendorID {
			return true, nil
		}
	}
	return false, nil
}
