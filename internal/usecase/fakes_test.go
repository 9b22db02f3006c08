package usecase

import (
	"context"
	"sort"
	"time"

	"verslohub/internal/domain/entity"
	"verslohub/internal/domain/repository"
	"verslohub/pkg/errors"
)

type fakeRequestRepo struct {
	requests map[string]*entity.ServiceRequest
	messages map[string][]*entity.Message

	appendErr     error
	summaryErr    error
	progressErr   error
	listOwnerErr  error
	setOwnerErr   error
	setOwnerCalls int

	summaries  []string
	watchCalls int
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{
		requests: make(map[string]*entity.ServiceRequest),
		messages: make(map[string][]*entity.Message),
	}
}

func (f *fakeRequestRepo) Create(ctx context.Context, request *entity.ServiceRequest) error {
	f.requests[request.ID] = request
	return nil
}

func (f *fakeRequestRepo) GetByID(ctx context.Context, id string) (*entity.ServiceRequest, error) {
	request, ok := f.requests[id]
	if !ok {
		return nil, errors.NotFound("Service request", nil)
	}
	copied := *request
	return &copied, nil
}

func (f *fakeRequestRepo) ListByRequester(ctx context.Context, requesterID string) ([]*entity.ServiceRequest, error) {
	var out []*entity.ServiceRequest
	for _, request := range f.requests {
		if request.RequesterID == requesterID {
			out = append(out, request)
		}
	}
	return out, nil
}

func (f *fakeRequestRepo) ListByVendors(ctx context.Context, vendorIDs []string) ([]*entity.ServiceRequest, error) {
	var out []*entity.ServiceRequest
	for _, request := range f.requests {
		for _, id := range vendorIDs {
			if request.VendorID == id {
				out = append(out, request)
			}
		}
	}
	return out, nil
}

func (f *fakeRequestRepo) WatchByRequester(ctx context.Context, requesterID string, fn repository.RequestSnapshotHandler) func() {
	f.watchCalls++
	requests, _ := f.ListByRequester(ctx, requesterID)
	fn(requests, nil)
	return func() {}
}

func (f *fakeRequestRepo) WatchByVendors(ctx context.Context, vendorIDs []string, fn repository.RequestSnapshotHandler) func() {
	f.watchCalls++
	requests, _ := f.ListByVendors(ctx, vendorIDs)
	fn(requests, nil)
	return func() {}
}

func (f *fakeRequestRepo) MarkInProgress(ctx context.Context, id string) error {
	if f.progressErr != nil {
		return f.progressErr
	}
	now := time.Now()
	f.requests[id].Status = entity.RequestStatusInProgress
	f.requests[id].ResponseDate = &now
	return nil
}

func (f *fakeRequestRepo) MarkCompleted(ctx context.Context, id, ownerUID string) error {
	f.requests[id].Status = entity.RequestStatusCompleted
	f.requests[id].OwnerUID = ownerUID
	return nil
}

func (f *fakeRequestRepo) Complete(ctx context.Context, id, ownerUID, responseText string) error {
	f.requests[id].Status = entity.RequestStatusCompleted
	f.requests[id].OwnerUID = ownerUID
	f.requests[id].ResponseText = responseText
	return nil
}

func (f *fakeRequestRepo) Reject(ctx context.Context, id string) error {
	f.requests[id].Status = entity.RequestStatusRejected
	return nil
}

func (f *fakeRequestRepo) UpdateSummary(ctx context.Context, id, lastMessage, senderRole string) error {
	if f.summaryErr != nil {
		return f.summaryErr
	}
	f.summaries = append(f.summaries, lastMessage)
	f.requests[id].LastMessage = lastMessage
	f.requests[id].LastMessageSender = senderRole
	return nil
}

func (f *fakeRequestRepo) AppendMessage(ctx context.Context, requestID string, message *entity.Message) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.messages[requestID] = append(f.messages[requestID], message)
	return nil
}

func (f *fakeRequestRepo) ListMessages(ctx context.Context, requestID string) ([]*entity.Message, error) {
	out := f.messages[requestID]
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeRequestRepo) WatchMessages(ctx context.Context, requestID string, fn repository.MessageSnapshotHandler) func() {
	f.watchCalls++
	fn(f.messages[requestID], nil)
	return func() {}
}

func (f *fakeRequestRepo) ListMissingOwner(ctx context.Context, vendorIDs []string) ([]*entity.ServiceRequest, error) {
	if f.listOwnerErr != nil {
		return nil, f.listOwnerErr
	}
	var out []*entity.ServiceRequest
	for _, request := range f.requests {
		if request.OwnerUID != "" {
			continue
		}
		if request.Status != entity.RequestStatusInProgress && request.Status != entity.RequestStatusCompleted {
			continue
		}
		for _, id := range vendorIDs {
			if request.VendorID == id {
				out = append(out, request)
			}
		}
	}
	return out, nil
}

func (f *fakeRequestRepo) SetOwner(ctx context.Context, ids []string, ownerUID string) error {
	f.setOwnerCalls++
	if f.setOwnerErr != nil {
		return f.setOwnerErr
	}
	for _, id := range ids {
		f.requests[id].OwnerUID = ownerUID
	}
	return nil
}

type fakeClaimRepo struct {
	claims  map[string]*entity.BusinessClaim
	listErr error
}

func newFakeClaimRepo() *fakeClaimRepo {
	return &fakeClaimRepo{claims: make(map[string]*entity.BusinessClaim)}
}

func (f *fakeClaimRepo) Create(ctx context.Context, claim *entity.BusinessClaim) error {
	f.claims[claim.ID] = claim
	return nil
}

func (f *fakeClaimRepo) GetByID(ctx context.Context, id string) (*entity.BusinessClaim, error) {
	claim, ok := f.claims[id]
	if !ok {
		return nil, errors.NotFound("Business claim", nil)
	}
	return claim, nil
}

func (f *fakeClaimRepo) ListByUser(ctx context.Context, userID string) ([]*entity.BusinessClaim, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []*entity.BusinessClaim
	for _, claim := range f.claims {
		if claim.UserID == userID {
			out = append(out, claim)
		}
	}
	return out, nil
}

func (f *fakeClaimRepo) ListApprovedByUser(ctx context.Context, userID string) ([]*entity.BusinessClaim, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []*entity.BusinessClaim
	for _, claim := range f.claims {
		if claim.UserID == userID && claim.Status == entity.ClaimStatusApproved {
			out = append(out, claim)
		}
	}
	return out, nil
}

func (f *fakeClaimRepo) UpdateStatus(ctx context.Context, id, status string) error {
	f.claims[id].Status = status
	return nil
}

type fakeVendorRepo struct {
	vendors   map[string]*entity.Vendor
	adjustErr error
	adjusted  []int64
}

func newFakeVendorRepo() *fakeVendorRepo {
	return &fakeVendorRepo{vendors: make(map[string]*entity.Vendor)}
}

func (f *fakeVendorRepo) Create(ctx context.Context, vendor *entity.Vendor) error {
	f.vendors[vendor.ID] = vendor
	return nil
}

func (f *fakeVendorRepo) GetByID(ctx context.Context, id string) (*entity.Vendor, error) {
	vendor, ok := f.vendors[id]
	if !ok {
		return nil, errors.NotFound("Vendor", nil)
	}
	return vendor, nil
}

func (f *fakeVendorRepo) List(ctx context.Context, city, service string, limit, offset int) ([]*entity.Vendor, int64, error) {
	var out []*entity.Vendor
	for _, vendor := range f.vendors {
		out = append(out, vendor)
	}
	return out, int64(len(out)), nil
}

func (f *fakeVendorRepo) ListByOwner(ctx context.Context, ownerUID string) ([]*entity.Vendor, error) {
	var out []*entity.Vendor
	for _, vendor := range f.vendors {
		if vendor.OwnerUID == ownerUID {
			out = append(out, vendor)
		}
	}
	return out, nil
}

func (f *fakeVendorRepo) Update(ctx context.Context, vendor *entity.Vendor) error {
	f.vendors[vendor.ID] = vendor
	return nil
}

func (f *fakeVendorRepo) UpdateLogo(ctx context.Context, id, logoURL string) error {
	f.vendors[id].LogoURL = logoURL
	return nil
}

func (f *fakeVendorRepo) AddPhoto(ctx context.Context, id, photoURL string) error {
	f.vendors[id].PhotoURLs = append(f.vendors[id].PhotoURLs, photoURL)
	return nil
}

func (f *fakeVendorRepo) AdjustFavoriteCount(ctx context.Context, id string, delta int64) error {
	if f.adjustErr != nil {
		return f.adjustErr
	}
	f.adjusted = append(f.adjusted, delta)
	f.vendors[id].FavoriteCount += delta
	return nil
}

type fakeFavoriteRepo struct {
	favorites map[string]bool
	addErr    error
}

func newFakeFavoriteRepo() *fakeFavoriteRepo {
	return &fakeFavoriteRepo{favorites: make(map[string]bool)}
}

func favoriteKey(userID, vendorID string) string {
	return userID + "_" + vendorID
}

func (f *fakeFavoriteRepo) Add(ctx context.Context, userID, vendorID string) (*entity.Favorite, error) {
	if f.addErr != nil {
		return nil, f.addErr
	}
	f.favorites[favoriteKey(userID, vendorID)] = true
	return &entity.Favorite{UserID: userID, VendorID: vendorID}, nil
}

func (f *fakeFavoriteRepo) Remove(ctx context.Context, userID, vendorID string) error {
	delete(f.favorites, favoriteKey(userID, vendorID))
	return nil
}

func (f *fakeFavoriteRepo) IsFavorite(ctx context.Context, userID, vendorID string) (bool, error) {
	return f.favorites[favoriteKey(userID, vendorID)], nil
}

func (f *fakeFavoriteRepo) ListByUser(ctx context.Context, userID string) ([]*entity.Favorite, error) {
	var out []*entity.Favorite
	for key, ok := range f.favorites {
		if !ok {
			continue
		}
		if len(key) > len(userID) && key[:len(userID)] == userID {
			out = append(out, &entity.Favorite{UserID: userID, VendorID: key[len(userID)+1:]})
		}
	}
	return out, nil
}

type fakeNotificationRepo struct {
	created []*entity.Notification
}

func (f *fakeNotificationRepo) Create(ctx context.Context, notification *entity.Notification) error {
	f.created = append(f.created, notification)
	return nil
}

func (f *fakeNotificationRepo) ListByUser(ctx context.Context, userID string) ([]*entity.Notification, error) {
	var out []*entity.Notification
	for _, notification := range f.created {
		if notification.UserID == userID {
			out = append(out, notification)
		}
	}
	return out, nil
}

func (f *fakeNotificationRepo) ListByVendors(ctx context.Context, vendorIDs []string) ([]*entity.Notification, error) {
	var out []*entity.Notification
	for _, notification := range f.created {
		for _, id := range vendorIDs {
			if notification.VendorID == id {
				out = append(out, notification)
			}
		}
	}
	return out, nil
}

func (f *fakeNotificationRepo) GetByID(ctx context.Context, id string) (*entity.Notification, error) {
	for _, notification := range f.created {
		if notification.ID == id {
			return notification, nil
		}
	}
	return nil, errors.NotFound("Notification", nil)
}

func (f *fakeNotificationRepo) MarkRead(ctx context.Context, id string) error {
	for _, notification := range f.created {
		if notification.ID == id {
			notification.Read = true
			return nil
		}
	}
	return errors.NotFound("Notification", nil)
}

type fakePublisher struct {
	published []*entity.Notification
	err       error
}

func (f *fakePublisher) PublishNotification(ctx context.Context, notification *entity.Notification) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, notification)
	return nil
}

func (f *fakePublisher) Close() error { return nil }
