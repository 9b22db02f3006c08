package usecase

import (
	"context"
	"log"
	"time"

	"verslohub/internal/domain/entity"
	"verslohub/internal/domain/repository"
	"verslohub/internal/infrastructure/firebase"
	"verslohub/pkg/errors"
)

type UserUseCase struct {
	userRepo   repository.UserRepository
	authClient *firebase.AuthClient
}

func NewUserUseCase(userRepo repository.UserRepository, authClient *firebase.AuthClient) *UserUseCase {
	return &UserUseCase{userRepo: userRepo, authClient: authClient}
}

// EnsureProfile returns the stored profile for the UID, creating it from the
// Firebase identity on first login.
func (uc *UserUseCase) EnsureProfile(ctx context.Context, uid string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, uid)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, "NOT_FOUND") {
		return nil, err
	}

	record, err := uc.authClient.GetUser(ctx, uid)
	if err != nil {
		log.Printf("Failed to fetch identity for uid %s: %v", uid, err)
		return nil, errors.Internal("Failed to fetch user identity", err)
	}

	user = &entity.User{
		ID:          uid,
		Email:       record.Email,
		DisplayName: record.DisplayName,
		Role:        "user",
		CreatedAt:   time.Now(),
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		log.Printf("Failed to create profile for uid %s: %v", uid, err)
		return nil, err
	}

	log.Printf("Profile created for uid %s", uid)
	return user, nil
}

func (uc *UserUseCase) GetByID(ctx context.Context, uid string) (*entity.User, error) {
	return uc.userRepo.GetByID(ctx, uid)
}
