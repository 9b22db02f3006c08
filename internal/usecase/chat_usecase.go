package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"verslohub/internal/domain/entity"
	"verslohub/internal/domain/repository"
	"verslohub/internal/infrastructure/ratelimit"
	"verslohub/pkg/errors"
)

type ChatUseCase struct {
	requestRepo    repository.ServiceRequestRepository
	notificationUC *NotificationUseCase
	rateLimiter    *ratelimit.RateLimiter
	operatorResolver

	// inFlight guards against concurrent sends into the same thread.
	mu       sync.Mutex
	inFlight map[string]bool
}

func NewChatUseCase(
	requestRepo repository.ServiceRequestRepository,
	claimRepo repository.BusinessClaimRepository,
	vendorRepo repository.VendorRepository,
	notificationUC *NotificationUseCase,
	rateLimiter *ratelimit.RateLimiter,
) *ChatUseCase {
	return &ChatUseCase{
		requestRepo:      requestRepo,
		notificationUC:   notificationUC,
		rateLimiter:      rateLimiter,
		operatorResolver: operatorResolver{claimRepo: claimRepo, vendorRepo: vendorRepo},
		inFlight:         make(map[string]bool),
	}
}

// SendMessage appends a message to the request thread, refreshes the thread
// summary, moves a pending request to inProgress when the vendor replies, and
// notifies the counterpart. Only one send per thread runs at a time; the
// message itself is never rolled back when a follow-up write fails.
func (uc *ChatUseCase) SendMessage(ctx context.Context, userID, userName, requestID, content string) (*entity.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, errors.BadRequest("Message content is required", nil)
	}
	if len(content) > 2000 {
		return nil, errors.BadRequest("Message content is too long", nil)
	}

	if allowed, retryAfter := uc.rateLimiter.Allow(userID, "send_message"); !allowed {
		return nil, errors.TooManyRequests(fmt.Sprintf("Too many messages, retry in %s", retryAfter.Round(time.Second)))
	}

	if !uc.acquire(requestID) {
		return nil, errors.Conflict("A message for this request is still being sent")
	}
	defer uc.release(requestID)

	request, err := uc.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	role, err := uc.senderRole(ctx, userID, request)
	if err != nil {
		return nil, err
	}

	message := &entity.Message{
		ID:         uuid.New().String(),
		RequestID:  requestID,
		SenderID:   userID,
		SenderName: userName,
		SenderRole: role,
		Content:    content,
		CreatedAt:  time.Now(),
	}

	if err := uc.requestRepo.AppendMessage(ctx, requestID, message); err != nil {
		log.Printf("Failed to append message to request %s: %v", requestID, err)
		return nil, err
	}

	if err := uc.requestRepo.UpdateSummary(ctx, requestID, content, role); err != nil {
		log.Printf("Failed to update thread summary on request %s: %v", requestID, err)
		return message, errors.Internal("Message sent but thread update failed", err)
	}

	if role == entity.SenderRoleVendor && request.Status == entity.RequestStatusPending {
		if err := uc.requestRepo.MarkInProgress(ctx, requestID); err != nil {
			log.Printf("Failed to mark request %s in progress: %v", requestID, err)
			return message, errors.Internal("Message sent but status update failed", err)
		}
	}

	notification := &entity.Notification{
		Type:      entity.NotificationTypeMessage,
		Title:     "Nauja žinutė",
		Body:      content,
		RequestID: requestID,
	}
	if role == entity.SenderRoleUser {
		notification.VendorID = request.VendorID
	} else {
		notification.UserID = request.RequesterID
	}
	if err := uc.notificationUC.Push(ctx, notification); err != nil {
		log.Printf("Failed to notify counterpart on request %s: %v", requestID, err)
	}

	return message, nil
}

// ListMessages returns the full thread, oldest first.
func (uc *ChatUseCase) ListMessages(ctx context.Context, userID, requestID string) ([]*entity.Message, error) {
	request, err := uc.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if _, err := uc.senderRole(ctx, userID, request); err != nil {
		return nil, err
	}
	return uc.requestRepo.ListMessages(ctx, requestID)
}

// WatchMessages opens a live subscription over the thread. The caller must
// be a participant; the returned disposer cancels the subscription.
func (uc *ChatUseCase) WatchMessages(ctx context.Context, userID, requestID string, fn repository.MessageSnapshotHandler) (func(), error) {
	request, err := uc.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if _, err := uc.senderRole(ctx, userID, request); err != nil {
		return nil, err
	}
	return uc.requestRepo.WatchMessages(ctx, requestID, fn), nil
}

func (uc *ChatUseCase) senderRole(ctx context.Context, userID string, request *entity.ServiceRequest) (string, error) {
	if request.RequesterID == userID {
		return entity.SenderRoleUser, nil
	}
	if request.OwnerUID == userID {
		return entity.SenderRoleVendor, nil
	}
	operates, err := uc.operatesVendor(ctx, userID, request.VendorID)
	if err != nil {
		return "", err
	}
	if operates {
		return entity.SenderRoleVendor, nil
	}
	return "", errors.Forbidden("You are not a participant in this request", nil)
}

func (uc *ChatUseCase) acquire(requestID string) bool {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.inFlight[requestID] {
		return false
	}
	uc.inFlight[requestID] = true
	return true
}

func (uc *ChatUseCase) release(requestID string) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	delete(uc.inFlight, requestID)
}
