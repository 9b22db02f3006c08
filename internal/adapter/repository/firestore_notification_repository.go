package repository

import (
	"context"
	"log"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"verslohub/internal/domain/entity"
	"verslohub/internal/domain/repository"
	"verslohub/pkg/errors"
)

const notificationsCollection = "notifications"

type firestoreNotificationRepository struct {
	client *firestore.Client
}

func NewFirestoreNotificationRepository(client *firestore.Client) repository.NotificationRepository {
	return &firestoreNotificationRepository{
		client: client,
	}
}

func (r *firestoreNotificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	if notification.ID == "" {
		notification.ID = uuid.New().String()
	}
	notification.Read = false
	notification.CreatedAt = time.Now()

	_, err := r.client.Collection(notificationsCollection).Doc(notification.ID).Set(ctx, notification)
	if err != nil {
		return errors.Internal("Failed to create notification", err)
	}

	return nil
}

func (r *firestoreNotificationRepository) ListByUser(ctx context.Context, userID string) ([]*entity.Notification, error) {
	query := r.client.Collection(notificationsCollection).
		Where("userId", "==", userID).
		OrderBy("createdAt", firestore.Desc)
	return r.collectNotifications(ctx, query)
}

func (r *firestoreNotificationRepository) ListByVendors(ctx context.Context, vendorIDs []string) ([]*entity.Notification, error) {
	var notifications []*entity.Notification

	for _, chunk := range chunkStrings(vendorIDs, inClauseLimit) {
		query := r.client.Collection(notificationsCollection).Where("vendorId", "in", chunk)

		chunkNotifications, err := r.collectNotifications(ctx, query)
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, chunkNotifications...)
	}

	sort.Slice(notifications, func(i, j int) bool {
		return notifications[i].CreatedAt.After(notifications[j].CreatedAt)
	})

	return notifications, nil
}

func (r *firestoreNotificationRepository) collectNotifications(ctx context.Context, query firestore.Query) ([]*entity.Notification, error) {
	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		log.Printf("Firestore error while fetching notifications: %v", err)
		return nil, errors.Internal("Failed to fetch notifications", err)
	}

	var notifications []*entity.Notification
	for _, doc := range docs {
		var notification entity.Notification
		if err := doc.DataTo(&notification); err != nil {
			log.Printf("Error parsing notification %s: %v", doc.Ref.ID, err)
			continue
		}
		notification.ID = doc.Ref.ID
		notifications = append(notifications, &notification)
	}

	return notifications, nil
}

func (r *firestoreNotificationRepository) GetByID(ctx context.Context, id string) (*entity.Notification, error) {
	doc, err := r.client.Collection(notificationsCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Notification", err)
		}
		return nil, errors.Internal("Failed to get notification", err)
	}

	var notification entity.Notification
	if err := doc.DataTo(&notification); err != nil {
		return nil, errors.Internal("Failed to parse notification data", err)
	}
	notification.ID = doc.Ref.ID

	return &notification, nil
}

func (r *firestoreNotificationRepository) MarkRead(ctx context.Context, id string) error {
	_, err := r.client.Collection(notificationsCollection).Doc(id).Update(ctx, []firestore.Update{
		{Path: "read", Value: true},
	})
	if err != nil {
		return errors.Internal("Failed to mark notification read", err)
	}
	return nil
}
