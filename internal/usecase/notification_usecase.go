package usecase

import (
	"context"
	"encoding/json"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"

	"verslohub/internal/domain/entity"
	"verslohub/internal/domain/repository"
	"verslohub/internal/infrastructure/events"
	"verslohub/pkg/errors"
)

// RealtimeSender delivers an encoded frame to a connected user, dropping it
// when the user is offline.
type RealtimeSender interface {
	SendToUser(userID string, message []byte)
}

type NotificationUseCase struct {
	notificationRepo repository.NotificationRepository
	publisher        events.Publisher
	realtime         RealtimeSender
	operatorResolver
}

func NewNotificationUseCase(
	notificationRepo repository.NotificationRepository,
	claimRepo repository.BusinessClaimRepository,
	vendorRepo repository.VendorRepository,
	publisher events.Publisher,
) *NotificationUseCase {
	return &NotificationUseCase{
		notificationRepo: notificationRepo,
		publisher:        publisher,
		operatorResolver: operatorResolver{claimRepo: claimRepo, vendorRepo: vendorRepo},
	}
}

// Push persists a notification addressed to exactly one recipient, then
// relays it to the message broker. Broker failures are logged and never
// surfaced to the caller.
func (uc *NotificationUseCase) Push(ctx context.Context, notification *entity.Notification) error {
	if notification.UserID == "" && notification.VendorID == "" {
		return errors.BadRequest("Notification has no recipient", nil)
	}
	if notification.UserID != "" && notification.VendorID != "" {
		return errors.BadRequest("Notification cannot target both a user and a vendor", nil)
	}

	if notification.ID == "" {
		notification.ID = uuid.New().String()
	}
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now()
	}
	notification.Read = false

	if err := uc.notificationRepo.Create(ctx, notification); err != nil {
		log.Printf("Failed to create notification %s: %v", notification.ID, err)
		return err
	}

	if err := uc.publisher.PublishNotification(ctx, notification); err != nil {
		log.Printf("Failed to publish notification %s to broker: %v", notification.ID, err)
	}

	uc.deliverLive(ctx, notification)

	return nil
}

// SetRealtime attaches the live session manager. Called once during wiring;
// without it notifications are store-and-poll only.
func (uc *NotificationUseCase) SetRealtime(sender RealtimeSender) {
	uc.realtime = sender
}

func (uc *NotificationUseCase) deliverLive(ctx context.Context, notification *entity.Notification) {
	if uc.realtime == nil {
		return
	}

	targetUID := notification.UserID
	if targetUID == "" {
		vendor, err := uc.vendorRepo.GetByID(ctx, notification.VendorID)
		if err != nil || vendor.OwnerUID == "" {
			return
		}
		targetUID = vendor.OwnerUID
	}

	payload, err := json.Marshal(map[string]interface{}{
		"type":         "notification",
		"notification": notification,
		"timestamp":    time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return
	}
	uc.realtime.SendToUser(targetUID, payload)
}

// ListForUser returns the caller's personal notifications merged with the
// notifications of every vendor the caller operates, newest first.
func (uc *NotificationUseCase) ListForUser(ctx context.Context, userID string, limit int) ([]*entity.Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	personal, err := uc.notificationRepo.ListByUser(ctx, userID)
	if err != nil {
		log.Printf("Failed to list notifications for user %s: %v", userID, err)
		return nil, err
	}

	vendorIDs, err := uc.operatedVendorIDs(ctx, userID)
	if err != nil {
		log.Printf("Failed to resolve operated vendors for user %s: %v", userID, err)
		return nil, err
	}

	var forVendors []*entity.Notification
	if len(vendorIDs) > 0 {
		forVendors, err = uc.notificationRepo.ListByVendors(ctx, vendorIDs)
		if err != nil {
			log.Printf("Failed to list vendor notifications for user %s: %v", userID, err)
			return nil, err
		}
	}

	merged := append(personal, forVendors...)
	sortNotificationsDesc(merged)
	if len(merged) > limit {
		merged = merged[:limit]
	}
	return merged, nil
}

// MarkRead flags a notification as read. The caller must be the addressed
// user or an operator of the addressed vendor.
func (uc *NotificationUseCase) MarkRead(ctx context.Context, userID, notificationID string) error {
	notification, err := uc.notificationRepo.GetByID(ctx, notificationID)
	if err != nil {
		return err
	}

	allowed := notification.UserID == userID
	if !allowed && notification.VendorID != "" {
		allowed, err = uc.operatesVendor(ctx, userID, notification.VendorID)
		if err != nil {
			return err
		}
	}
	if !allowed {
		return errors.Forbidden("You cannot modify this notification", nil)
	}

	return uc.notificationRepo.MarkRead(ctx, notificationID)
}

func sortNotificationsDesc(items []*entity.Notification) {
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
}
