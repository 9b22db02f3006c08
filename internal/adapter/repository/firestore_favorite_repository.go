package repository

import (
	"context"
	"fmt"
	"log"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"verslohub/internal/domain/entity"
	"verslohub/internal/domain/repository"
	"verslohub/pkg/errors"
)

const favoritesCollection = "favorites"

type firestoreFavoriteRepository struct {
	client *firestore.Client
}

func NewFirestoreFavoriteRepository(client *firestore.Client) repository.FavoriteRepository {
	return &firestoreFavoriteRepository{
		client: client,
	}
}

// favoriteDocID keeps one document per user/vendor pair so repeated adds
// cannot duplicate a favorite.
func favoriteDocID(userID, vendorID string) string {
	return fmt.Sprintf("%s_%s", userID, vendorID)
}

func (r *firestoreFavoriteRepository) Add(ctx context.Context, userID, vendorID string) (*entity.Favorite, error) {
	favorite := &entity.Favorite{
		ID:        favoriteDocID(userID, vendorID),
		UserID:    userID,
		VendorID:  vendorID,
		CreatedAt: time.Now(),
	}

	_, err := r.client.Collection(favoritesCollection).Doc(favorite.ID).Set(ctx, favorite)
	if err != nil {
		return nil, errors.Internal("Failed to add favorite", err)
	}

	return favorite, nil
}

func (r *firestoreFavoriteRepository) Remove(ctx context.Context, userID, vendorID string) error {
	_, err := r.client.Collection(favoritesCollection).Doc(favoriteDocID(userID, vendorID)).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to remove favorite", err)
	}
	return nil
}

func (r *firestoreFavoriteRepository) IsFavorite(ctx context.Context, userID, vendorID string) (bool, error) {
	_, err := r.client.Collection(favoritesCollection).Doc(favoriteDocID(userID, vendorID)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return false, nil
		}
		return false, errors.Internal("Failed to check favorite", err)
	}
	return true, nil
}

func (r *firestoreFavoriteRepository) ListByUser(ctx context.Context, userID string) ([]*entity.Favorite, error) {
	iter := r.client.Collection(favoritesCollection).
		Where("userId", "==", userID).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	var favorites []*entity.Favorite
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			log.Printf("Firestore error while iterating favorites for user %s: %v", userID, err)
			return nil, errors.Internal("Failed to fetch favorites", err)
		}

		var favorite entity.Favorite
		if err := doc.DataTo(&favorite); err != nil {
			log.Printf("Error parsing favorite %s: %v", doc.Ref.ID, err)
			continue
		}
		favorite.ID = doc.Ref.ID
		favorites = append(favorites, &favorite)
	}

	return favorites, nil
}
