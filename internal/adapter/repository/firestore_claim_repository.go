package repository

import (
	"context"
	"log"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"verslohub/internal/domain/entity"
	"verslohub/internal/domain/repository"
	"verslohub/pkg/errors"
)

const claimsCollection = "businessClaims"

type firestoreClaimRepository struct {
	client *firestore.Client
}

func NewFirestoreClaimRepository(client *firestore.Client) repository.BusinessClaimRepository {
	return &firestoreClaimRepository{
		client: client,
	}
}

func (r *firestoreClaimRepository) Create(ctx context.Context, claim *entity.BusinessClaim) error {
	if claim.ID == "" {
		claim.ID = uuid.New().String()
	}
	if claim.Status == "" {
		claim.Status = entity.ClaimStatusPending
	}

	now := time.Now()
	claim.CreatedAt = now
	claim.UpdatedAt = now

	_, err := r.client.Collection(claimsCollection).Doc(claim.ID).Set(ctx, claim)
	if err != nil {
		return errors.Internal("Failed to create business claim", err)
	}

	return nil
}

func (r *firestoreClaimRepository) GetByID(ctx context.Context, id string) (*entity.BusinessClaim, error) {
	doc, err := r.client.Collection(claimsCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Business claim", err)
		}
		return nil, errors.Internal("Failed to get business claim", err)
	}

	var claim entity.BusinessClaim
	if err := doc.DataTo(&claim); err != nil {
		return nil, errors.Internal("Failed to parse business claim data", err)
	}
	claim.ID = doc.Ref.ID

	return &claim, nil
}

func (r *firestoreClaimRepository) ListByUser(ctx context.Context, userID string) ([]*entity.BusinessClaim, error) {
	query := r.client.Collection(claimsCollection).Where("userId", "==", userID)
	return r.collectClaims(ctx, query)
}

func (r *firestoreClaimRepository) ListApprovedByUser(ctx context.Context, userID string) ([]*entity.BusinessClaim, error) {
	query := r.client.Collection(claimsCollection).
		Where("userId", "==", userID).
		Where("status", "==", entity.ClaimStatusApproved)
	return r.collectClaims(ctx, query)
}

func (r *firestoreClaimRepository) collectClaims(ctx context.Context, query firestore.Query) ([]*entity.BusinessClaim, error) {
	iter := query.Documents(ctx)
	defer iter.Stop()

	var claims []*entity.BusinessClaim
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			log.Printf("Firestore error while iterating business claims: %v", err)
			return nil, errors.Internal("Failed to fetch business claims", err)
		}

		var claim entity.BusinessClaim
		if err := doc.DataTo(&claim); err != nil {
			log.Printf("Error parsing business claim %s: %v", doc.Ref.ID, err)
			continue
		}
		claim.ID = doc.Ref.ID
		claims = append(claims, &claim)
	}

	return claims, nil
}

func (r *firestoreClaimRepository) UpdateStatus(ctx context.Context, id, status string) error {
	_, err := r.client.Collection(claimsCollection).Doc(id).Update(ctx, []firestore.Update{
		{Path: "status", Value: status},
		{Path: "updatedAt", Value: firestore.ServerTimestamp},
	})
	if err != nil {
		return errors.Internal("Failed to update business claim status", err)
	}
	return nil
}
