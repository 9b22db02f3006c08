package repository

import (
	"context"
	"log"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"verslohub/internal/domain/entity"
	"verslohub/internal/domain/repository"
	"verslohub/pkg/errors"
)

const vendorsCollection = "vendors"

type firestoreVendorRepository struct {
	client *firestore.Client
}

func NewFirestoreVendorRepository(client *firestore.Client) repository.VendorRepository {
	return &firestoreVendorRepository{
		client: client,
	}
}

func (r *firestoreVendorRepository) Create(ctx context.Context, vendor *entity.Vendor) error {
	if vendor.ID == "" {
		vendor.ID = uuid.New().String()
	}

	now := time.Now()
	vendor.CreatedAt = now
	vendor.UpdatedAt = now

	_, err := r.client.Collection(vendorsCollection).Doc(vendor.ID).Set(ctx, vendor)
	if err != nil {
		return errors.Internal("Failed to create vendor", err)
	}

	return nil
}

func (r *firestoreVendorRepository) GetByID(ctx context.Context, id string) (*entity.Vendor, error) {
	doc, err := r.client.Collection(vendorsCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Vendor", err)
		}
		return nil, errors.Internal("Failed to get vendor", err)
	}

	var vendor entity.Vendor
	if err := doc.DataTo(&vendor); err != nil {
		return nil, errors.Internal("Failed to parse vendor data", err)
	}
	vendor.ID = doc.Ref.ID

	return &vendor, nil
}

func (r *firestoreVendorRepository) List(ctx context.Context, city, service string, limit, offset int) ([]*entity.Vendor, int64, error) {
	query := r.client.Collection(vendorsCollection).Query
	if city != "" {
		query = query.Where("city", "==", city)
	}
	if service != "" {
		query = query.Where("services", "array-contains", service)
	}

	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		log.Printf("Firestore error while fetching vendors: %v", err)
		return nil, 0, errors.Internal("Failed to fetch vendors", err)
	}

	total := int64(len(allDocs))

	// Paginate in memory; the combined filters would otherwise each need a
	// composite index with the order-by field.
	start := offset
	if start > len(allDocs) {
		start = len(allDocs)
	}
	end := len(allDocs)
	if limit > 0 && start+limit < end {
		end = start + limit
	}

	var vendors []*entity.Vendor
	for i := start; i < end; i++ {
		var vendor entity.Vendor
		if err := allDocs[i].DataTo(&vendor); err != nil {
			log.Printf("Error parsing vendor %s: %v", allDocs[i].Ref.ID, err)
			continue
		}
		vendor.ID = allDocs[i].Ref.ID
		vendors = append(vendors, &vendor)
	}

	return vendors, total, nil
}

func (r *firestoreVendorRepository) ListByOwner(ctx context.Context, ownerUID string) ([]*entity.Vendor, error) {
	docs, err := r.client.Collection(vendorsCollection).
		Where("ownerUid", "==", ownerUID).
		Documents(ctx).GetAll()
	if err != nil {
		log.Printf("Firestore error while fetching vendors for owner %s: %v", ownerUID, err)
		return nil, errors.Internal("Failed to fetch owned vendors", err)
	}

	var vendors []*entity.Vendor
	for _, doc := range docs {
		var vendor entity.Vendor
		if err := doc.DataTo(&vendor); err != nil {
			log.Printf("Error parsing vendor %s: %v", doc.Ref.ID, err)
			continue
		}
		vendor.ID = doc.Ref.ID
		vendors = append(vendors, &vendor)
	}

	return vendors, nil
}

func (r *firestoreVendorRepository) Update(ctx context.Context, vendor *entity.Vendor) error {
	vendor.UpdatedAt = time.Now()

	_, err := r.client.Collection(vendorsCollection).Doc(vendor.ID).Set(ctx, vendor)
	if err != nil {
		return errors.Internal("Failed to update vendor", err)
	}

	return nil
}

func (r *firestoreVendorRepository) UpdateLogo(ctx context.Context, id, logoURL string) error {
	_, err := r.client.Collection(vendorsCollection).Doc(id).Update(ctx, []firestore.Update{
		{Path: "logoUrl", Value: logoURL},
		{Path: "updatedAt", Value: firestore.ServerTimestamp},
	})
	if err != nil {
		return errors.Internal("Failed to update vendor logo", err)
	}
	return nil
}

func (r *firestoreVendorRepository) AddPhoto(ctx context.Context, id, photoURL string) error {
	_, err := r.client.Collection(vendorsCollection).Doc(id).Update(ctx, []firestore.Update{
		{Path: "photoUrls", Value: firestore.ArrayUnion(photoURL)},
		{Path: "updatedAt", Value: firestore.ServerTimestamp},
	})
	if err != nil {
		return errors.Internal("Failed to add vendor photo", err)
	}
	return nil
}

func (r *firestoreVendorRepository) AdjustFavoriteCount(ctx context.Context, id string, delta int64) error {
	_, err := r.client.Collection(vendorsCollection).Doc(id).Update(ctx, []firestore.Update{
		{Path: "favoriteCount", Value: firestore.Increment(delta)},
	})
	if err != nil {
		return errors.Internal("Failed to adjust vendor favorite count", err)
	}
	return nil
}
