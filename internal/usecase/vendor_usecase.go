package usecase

import (
	"context"
	"io"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"verslohub/internal/domain/entity"
	"verslohub/internal/domain/repository"
	"verslohub/pkg/errors"
)

// FileUploader stores an uploaded file and returns its public URL.
type FileUploader interface {
	UploadFile(ctx context.Context, file io.Reader, fileType, folder string) (string, error)
}

type CreateVendorInput struct {
	Name        string   `json:"name" validate:"required,min=2,max=200"`
	Description string   `json:"description" validate:"max=5000"`
	Services    []string `json:"services" validate:"required,min=1,dive,required"`
	Address     string   `json:"address" validate:"max=300"`
	City        string   `json:"city" validate:"max=100"`
	Email       string   `json:"email" validate:"omitempty,email"`
	Phone       string   `json:"phone" validate:"max=30"`
}

type UpdateVendorInput struct {
	Name        *string  `json:"name" validate:"omitempty,min=2,max=200"`
	Description *string  `json:"description" validate:"omitempty,max=5000"`
	Services    []string `json:"services" validate:"omitempty,min=1,dive,required"`
	Address     *string  `json:"address" validate:"omitempty,max=300"`
	City        *string  `json:"city" validate:"omitempty,max=100"`
	Email       *string  `json:"email" validate:"omitempty,email"`
	Phone       *string  `json:"phone" validate:"omitempty,max=30"`
}

type VendorUseCase struct {
	vendorRepo repository.VendorRepository
	uploader   FileUploader
	operatorResolver
}

func NewVendorUseCase(
	vendorRepo repository.VendorRepository,
	claimRepo repository.BusinessClaimRepository,
	uploader FileUploader,
) *VendorUseCase {
	return &VendorUseCase{
		vendorRepo:       vendorRepo,
		uploader:         uploader,
		operatorResolver: operatorResolver{claimRepo: claimRepo, vendorRepo: vendorRepo},
	}
}

func (uc *VendorUseCase) Create(ctx context.Context, ownerUID string, input CreateVendorInput) (*entity.Vendor, error) {
	now := time.Now()
	vendor := &entity.Vendor{
		ID:          uuid.New().String(),
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
		Services:    input.Services,
		Address:     input.Address,
		City:        input.City,
		Email:       input.Email,
		Phone:       input.Phone,
		OwnerUID:    ownerUID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := uc.vendorRepo.Create(ctx, vendor); err != nil {
		log.Printf("Failed to create vendor for owner %s: %v", ownerUID, err)
		return nil, err
	}

	log.Printf("Vendor %s created by %s", vendor.ID, ownerUID)
	return vendor, nil
}

func (uc *VendorUseCase) GetByID(ctx context.Context, id string) (*entity.Vendor, error) {
	return uc.vendorRepo.GetByID(ctx, id)
}

func (uc *VendorUseCase) List(ctx context.Context, city, service string, limit, offset int) ([]*entity.Vendor, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return uc.vendorRepo.List(ctx, city, service, limit, offset)
}

func (uc *VendorUseCase) ListOwn(ctx context.Context, userID string) ([]*entity.Vendor, error) {
	ids, err := uc.operatedVendorIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	vendors := make([]*entity.Vendor, 0, len(ids))
	for _, id := range ids {
		vendor, err := uc.vendorRepo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, "NOT_FOUND") {
				continue
			}
			return nil, err
		}
		vendors = append(vendors, vendor)
	}
	return vendors, nil
}

func (uc *VendorUseCase) Update(ctx context.Context, userID, vendorID string, input UpdateVendorInput) (*entity.Vendor, error) {
	vendor, err := uc.authorized(ctx, userID, vendorID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		vendor.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		vendor.Description = strings.TrimSpace(*input.Description)
	}
	if input.Services != nil {
		vendor.Services = input.Services
	}
	if input.Address != nil {
		vendor.Address = *input.Address
	}
	if input.City != nil {
		vendor.City = *input.City
	}
	if input.Email != nil {
		vendor.Email = *input.Email
	}
	if input.Phone != nil {
		vendor.Phone = *input.Phone
	}
	vendor.UpdatedAt = time.Now()

	if err := uc.vendorRepo.Update(ctx, vendor); err != nil {
		log.Printf("Failed to update vendor %s: %v", vendorID, err)
		return nil, err
	}
	return vendor, nil
}

// UploadLogo replaces the vendor's logo with the uploaded image.
func (uc *VendorUseCase) UploadLogo(ctx context.Context, userID, vendorID string, file io.Reader, fileType string) (string, error) {
	if _, err := uc.authorized(ctx, userID, vendorID); err != nil {
		return "", err
	}

	url, err := uc.uploader.UploadFile(ctx, file, fileType, "vendor-logos")
	if err != nil {
		log.Printf("Failed to upload logo for vendor %s: %v", vendorID, err)
		return "", errors.Internal("Failed to upload logo", err)
	}

	if err := uc.vendorRepo.UpdateLogo(ctx, vendorID, url); err != nil {
		return "", err
	}
	return url, nil
}

// UploadPhoto appends a gallery photo to the vendor's listing.
func (uc *VendorUseCase) UploadPhoto(ctx context.Context, userID, vendorID string, file io.Reader, fileType string) (string, error) {
	if _, err := uc.authorized(ctx, userID, vendorID); err != nil {
		return "", err
	}

	url, err := uc.uploader.UploadFile(ctx, file, fileType, "vendor-photos")
	if err != nil {
		log.Printf("Failed to upload photo for vendor %s: %v", vendorID, err)
		return "", errors.Internal("Failed to upload photo", err)
	}

	if err := uc.vendorRepo.AddPhoto(ctx, vendorID, url); err != nil {
		return "", err
	}
	return url, nil
}

func (uc *VendorUseCase) authorized(ctx context.Context, userID, vendorID string) (*entity.Vendor, error) {
	vendor, err := uc.vendorRepo.GetByID(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	if vendor.OwnerUID == userID {
		return vendor, nil
	}
	operates, err := uc.operatesVendor(ctx, userID, vendorID)
	if err != nil {
		return nil, err
	}
	if !operates {
		return nil, errors.Forbidden("You cannot manage this vendor", nil)
	}
	return vendor, nil
}
