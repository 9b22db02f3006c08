package repository

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"verslohub/internal/domain/entity"
	"verslohub/internal/domain/repository"
	"verslohub/pkg/errors"
	"verslohub/pkg/timeutil"
)

const (
	requestsCollection = "serviceRequests"
	messagesCollection = "messages"
)

// Firestore "in" queries accept at most 30 values per clause.
const inClauseLimit = 30

type firestoreRequestRepository struct {
	client *firestore.Client
}

func NewFirestoreRequestRepository(client *firestore.Client) repository.ServiceRequestRepository {
	return &firestoreRequestRepository{
		client: client,
	}
}

func (r *firestoreRequestRepository) Create(ctx context.Context, request *entity.ServiceRequest) error {
	if request.ID == "" {
		request.ID = uuid.New().String()
	}
	if request.Status == "" {
		request.Status = entity.RequestStatusPending
	}

	now := time.Now()
	request.CreatedAt = now
	request.UpdatedAt = now

	_, err := r.client.Collection(requestsCollection).Doc(request.ID).Set(ctx, request)
	if err != nil {
		return errors.Internal("Failed to create service request", err)
	}

	return nil
}

func (r *firestoreRequestRepository) GetByID(ctx context.Context, id string) (*entity.ServiceRequest, error) {
	doc, err := r.client.Collection(requestsCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Service request", err)
		}
		return nil, errors.Internal("Failed to get service request", err)
	}

	request, err := decodeRequest(doc)
	if err != nil {
		return nil, errors.Internal("Failed to parse service request data", err)
	}

	return request, nil
}

// decodeRequest reads a request document, tolerating the assorted timestamp
// shapes legacy documents carry.
func decodeRequest(doc *firestore.DocumentSnapshot) (*entity.ServiceRequest, error) {
	var request entity.ServiceRequest
	if err := doc.DataTo(&request); err == nil {
		request.ID = doc.Ref.ID
		request.ResponseDateDisplay = timeutil.Normalize(request.ResponseDate)
		return &request, nil
	}

	data := doc.Data()
	if data == nil {
		return nil, fmt.Errorf("document %s has no data", doc.Ref.ID)
	}

	request = entity.ServiceRequest{
		ID:                doc.Ref.ID,
		RequesterID:       stringField(data, "requesterId"),
		RequesterName:     stringField(data, "requesterName"),
		VendorID:          stringField(data, "vendorId"),
		OwnerUID:          stringField(data, "ownerUid"),
		Subject:           stringField(data, "subject"),
		Details:           stringField(data, "details"),
		Urgency:           stringField(data, "urgency"),
		ContactMethod:     stringField(data, "contactMethod"),
		Status:            stringField(data, "status"),
		ResponseText:      stringField(data, "responseText"),
		LastMessage:       stringField(data, "lastMessage"),
		LastMessageSender: stringField(data, "lastMessageSender"),
	}
	if request.Status == "" {
		request.Status = entity.RequestStatusPending
	}

	if t, ok := timeutil.AsTime(data["createdAt"]); ok {
		request.CreatedAt = t
	}
	if t, ok := timeutil.AsTime(data["updatedAt"]); ok {
		request.UpdatedAt = t
	}
	if t, ok := timeutil.AsTime(data["responseDate"]); ok {
		request.ResponseDate = &t
	}
	request.ResponseDateDisplay = timeutil.Normalize(data["responseDate"])

	return &request, nil
}

func stringField(data map[string]interface{}, key string) string {
	if s, ok := data[key].(string); ok {
		return s
	}
	return ""
}

func (r *firestoreRequestRepository) ListByRequester(ctx context.Context, requesterID string) ([]*entity.ServiceRequest, error) {
	query := r.client.Collection(requestsCollection).
		Where("requesterId", "==", requesterID).
		OrderBy("updatedAt", firestore.Desc)

	return r.collectRequests(ctx, query)
}

func (r *firestoreRequestRepository) ListByVendors(ctx context.Context, vendorIDs []string) ([]*entity.ServiceRequest, error) {
	var requests []*entity.ServiceRequest

	for _, chunk := range chunkStrings(vendorIDs, inClauseLimit) {
		query := r.client.Collection(requestsCollection).Where("vendorId", "in", chunk)

		chunkRequests, err := r.collectRequests(ctx, query)
		if err != nil {
			return nil, err
		}
		requests = append(requests, chunkRequests...)
	}

	sort.Slice(requests, func(i, j int) bool {
		return requests[i].UpdatedAt.After(requests[j].UpdatedAt)
	})

	return requests, nil
}

func (r *firestoreRequestRepository) collectRequests(ctx context.Context, query firestore.Query) ([]*entity.ServiceRequest, error) {
	iter := query.Documents(ctx)
	defer iter.Stop()

	var requests []*entity.ServiceRequest
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			log.Printf("Firestore error while iterating service requests: %v", err)
			return nil, errors.Internal("Failed to fetch service requests", err)
		}

		request, err := decodeRequest(doc)
		if err != nil {
			log.Printf("Error parsing service request %s: %v", doc.Ref.ID, err)
			continue
		}
		requests = append(requests, request)
	}

	return requests, nil
}

func (r *firestoreRequestRepository) WatchByRequester(ctx context.Context, requesterID string, fn repository.RequestSnapshotHandler) func() {
	query := r.client.Collection(requestsCollection).
		Where("requesterId", "==", requesterID).
		OrderBy("updatedAt", firestore.Desc)

	return r.watchRequests(ctx, query, fn)
}

func (r *firestoreRequestRepository) WatchByVendors(ctx context.Context, vendorIDs []string, fn repository.RequestSnapshotHandler) func() {
	ids := vendorIDs
	if len(ids) > inClauseLimit {
		log.Printf("WatchByVendors: %d vendors exceeds the in-clause limit, watching the first %d", len(ids), inClauseLimit)
		ids = ids[:inClauseLimit]
	}

	query := r.client.Collection(requestsCollection).
		Where("vendorId", "in", ids).
		OrderBy("updatedAt", firestore.Desc)

	return r.watchRequests(ctx, query, fn)
}

func (r *firestoreRequestRepository) watchRequests(ctx context.Context, query firestore.Query, fn repository.RequestSnapshotHandler) func() {
	ctx, cancel := context.WithCancel(ctx)
	snapshots := query.Snapshots(ctx)

	go func() {
		for {
			snap, err := snapshots.Next()
			if err != nil {
				if status.Code(err) == codes.Canceled {
					return
				}
				fn(nil, errors.Internal("Request subscription failed", err))
				return
			}

			docs, err := snap.Documents.GetAll()
			if err != nil {
				fn(nil, errors.Internal("Failed to read request snapshot", err))
				continue
			}

			var requests []*entity.ServiceRequest
			for _, doc := range docs {
				request, err := decodeRequest(doc)
				if err != nil {
					log.Printf("Error parsing service request %s in snapshot: %v", doc.Ref.ID, err)
					continue
				}
				requests = append(requests, request)
			}

			fn(requests, nil)
		}
	}()

	return func() {
		cancel()
		snapshots.Stop()
	}
}

func (r *firestoreRequestRepository) MarkInProgress(ctx context.Context, id string) error {
	_, err := r.client.Collection(requestsCollection).Doc(id).Update(ctx, []firestore.Update{
		{Path: "status", Value: entity.RequestStatusInProgress},
		{Path: "responseDate", Value: firestore.ServerTimestamp},
		{Path: "updatedAt", Value: firestore.ServerTimestamp},
	})
	if err != nil {
		return errors.Internal("Failed to mark request in progress", err)
	}
	return nil
}

func (r *firestoreRequestRepository) MarkCompleted(ctx context.Context, id, ownerUID string) error {
	_, err := r.client.Collection(requestsCollection).Doc(id).Update(ctx, []firestore.Update{
		{Path: "status", Value: entity.RequestStatusCompleted},
		{Path: "ownerUid", Value: ownerUID},
		{Path: "updatedAt", Value: firestore.ServerTimestamp},
	})
	if err != nil {
		return errors.Internal("Failed to mark request completed", err)
	}
	return nil
}

func (r *firestoreRequestRepository) Complete(ctx context.Context, id, ownerUID, responseText string) error {
	_, err := r.client.Collection(requestsCollection).Doc(id).Update(ctx, []firestore.Update{
		{Path: "status", Value: entity.RequestStatusCompleted},
		{Path: "ownerUid", Value: ownerUID},
		{Path: "responseText", Value: responseText},
		{Path: "responseDate", Value: firestore.ServerTimestamp},
		{Path: "updatedAt", Value: firestore.ServerTimestamp},
	})
	if err != nil {
		return errors.Internal("Failed to complete request", err)
	}
	return nil
}

func (r *firestoreRequestRepository) Reject(ctx context.Context, id string) error {
	_, err := r.client.Collection(requestsCollection).Doc(id).Update(ctx, []firestore.Update{
		{Path: "status", Value: entity.RequestStatusRejected},
		{Path: "updatedAt", Value: firestore.ServerTimestamp},
	})
	if err != nil {
		return errors.Internal("Failed to reject request", err)
	}
	return nil
}

func (r *firestoreRequestRepository) UpdateSummary(ctx context.Context, id, lastMessage, senderRole string) error {
	_, err := r.client.Collection(requestsCollection).Doc(id).Update(ctx, []firestore.Update{
		{Path: "lastMessage", Value: lastMessage},
		{Path: "lastMessageSender", Value: senderRole},
		{Path: "updatedAt", Value: firestore.ServerTimestamp},
	})
	if err != nil {
		return errors.Internal("Failed to update request summary", err)
	}
	return nil
}

func (r *firestoreRequestRepository) AppendMessage(ctx context.Context, requestID string, message *entity.Message) error {
	if message.ID == "" {
		message.ID = uuid.New().String()
	}
	message.RequestID = requestID
	message.CreatedAt = time.Now()

	_, err := r.client.Collection(requestsCollection).Doc(requestID).
		Collection(messagesCollection).Doc(message.ID).Set(ctx, message)
	if err != nil {
		return errors.Internal("Failed to append message", err)
	}

	return nil
}

func (r *firestoreRequestRepository) ListMessages(ctx context.Context, requestID string) ([]*entity.Message, error) {
	iter := r.client.Collection(requestsCollection).Doc(requestID).
		Collection(messagesCollection).
		OrderBy("createdAt", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	var messages []*entity.Message
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			log.Printf("Firestore error while iterating messages for request %s: %v", requestID, err)
			return nil, errors.Internal("Failed to fetch messages", err)
		}

		var message entity.Message
		if err := doc.DataTo(&message); err != nil {
			log.Printf("Error parsing message %s for request %s: %v", doc.Ref.ID, requestID, err)
			continue
		}
		message.ID = doc.Ref.ID
		messages = append(messages, &message)
	}

	return messages, nil
}

func (r *firestoreRequestRepository) WatchMessages(ctx context.Context, requestID string, fn repository.MessageSnapshotHandler) func() {
	ctx, cancel := context.WithCancel(ctx)
	snapshots := r.client.Collection(requestsCollection).Doc(requestID).
		Collection(messagesCollection).
		OrderBy("createdAt", firestore.Asc).
		Snapshots(ctx)

	go func() {
		for {
			snap, err := snapshots.Next()
			if err != nil {
				if status.Code(err) == codes.Canceled {
					return
				}
				fn(nil, errors.Internal("Message subscription failed", err))
				return
			}

			docs, err := snap.Documents.GetAll()
			if err != nil {
				fn(nil, errors.Internal("Failed to read message snapshot", err))
				continue
			}

			var messages []*entity.Message
			for _, doc := range docs {
				var message entity.Message
				if err := doc.DataTo(&message); err != nil {
					log.Printf("Error parsing message %s for request %s: %v", doc.Ref.ID, requestID, err)
					continue
				}
				message.ID = doc.Ref.ID
				messages = append(messages, &message)
			}

			fn(messages, nil)
		}
	}()

	return func() {
		cancel()
		snapshots.Stop()
	}
}

func (r *firestoreRequestRepository) ListMissingOwner(ctx context.Context, vendorIDs []string) ([]*entity.ServiceRequest, error) {
	var missing []*entity.ServiceRequest

	for _, chunk := range chunkStrings(vendorIDs, inClauseLimit) {
		query := r.client.Collection(requestsCollection).
			Where("vendorId", "in", chunk).
			Where("status", "in", []string{entity.RequestStatusInProgress, entity.RequestStatusCompleted})

		requests, err := r.collectRequests(ctx, query)
		if err != nil {
			return nil, err
		}

		// ownerUid is absent on legacy documents, which Firestore cannot
		// query for directly; filter here instead.
		for _, request := range requests {
			if request.OwnerUID == "" {
				missing = append(missing, request)
			}
		}
	}

	return missing, nil
}

func (r *firestoreRequestRepository) SetOwner(ctx context.Context, ids []string, ownerUID string) error {
	if len(ids) == 0 {
		return nil
	}

	batch := r.client.Batch()
	for _, id := range ids {
		ref := r.client.Collection(requestsCollection).Doc(id)
		batch.Update(ref, []firestore.Update{
			{Path: "ownerUid", Value: ownerUID},
			{Path: "updatedAt", Value: firestore.ServerTimestamp},
		})
	}

	if _, err := batch.Commit(ctx); err != nil {
		return errors.Internal("Failed to backfill request owners", err)
	}

	return nil
}

func chunkStrings(values []string, size int) [][]string {
	var chunks [][]string
	for len(values) > 0 {
		n := size
		if len(values) < n {
			n = len(values)
		}
		chunks = append(chunks, values[:n])
		values = values[n:]
	}
	return chunks
}
