package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"verslohub/internal/domain/entity"
	"verslohub/internal/domain/repository"
	"verslohub/internal/infrastructure/ratelimit"
	"verslohub/pkg/errors"
)

type SubmitRequestInput struct {
	VendorID      string `json:"vendor_id" validate:"required"`
	Subject       string `json:"subject" validate:"required,min=3,max=200"`
	Details       string `json:"details" validate:"required,min=10,max=5000"`
	Urgency       string `json:"urgency" validate:"required"`
	ContactMethod string `json:"contact_method" validate:"required"`
}

type RequestUseCase struct {
	requestRepo    repository.ServiceRequestRepository
	vendorRepo     repository.VendorRepository
	notificationUC *NotificationUseCase
	rateLimiter    *ratelimit.RateLimiter
	operatorResolver
}

func NewRequestUseCase(
	requestRepo repository.ServiceRequestRepository,
	vendorRepo repository.VendorRepository,
	claimRepo repository.BusinessClaimRepository,
	notificationUC *NotificationUseCase,
	rateLimiter *ratelimit.RateLimiter,
) *RequestUseCase {
	return &RequestUseCase{
		requestRepo:    requestRepo,
		vendorRepo:     vendorRepo,
		notificationUC: notificationUC,
		rateLimiter:    rateLimiter,
		operatorResolver: operatorResolver{claimRepo: claimRepo, vendorRepo: vendorRepo},
	}
}

// Submit files a new service request against a vendor and notifies the
// vendor's inbox.
func (uc *RequestUseCase) Submit(ctx context.Context, userID, userName string, input SubmitRequestInput) (*entity.ServiceRequest, error) {
	if allowed, retryAfter := uc.rateLimiter.Allow(userID, "submit_request"); !allowed {
		return nil, errors.TooManyRequests(fmt.Sprintf("Too many requests, retry in %s", retryAfter.Round(time.Second)))
	}

	if !entity.ValidUrgency(input.Urgency) {
		return nil, errors.BadRequest("Invalid urgency level", nil)
	}
	if !entity.ValidContactMethod(input.ContactMethod) {
		return nil, errors.BadRequest("Invalid contact method", nil)
	}

	vendor, err := uc.vendorRepo.GetByID(ctx, input.VendorID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	request := &entity.ServiceRequest{
		ID:            uuid.New().String(),
		RequesterID:   userID,
		RequesterName: userName,
		VendorID:      vendor.ID,
		OwnerUID:      vendor.OwnerUID,
		Subject:       strings.TrimSpace(input.Subject),
		Details:       strings.TrimSpace(input.Details),
		Urgency:       input.Urgency,
		ContactMethod: input.ContactMethod,
		Status:        entity.RequestStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := uc.requestRepo.Create(ctx, request); err != nil {
		log.Printf("Failed to create service request for user %s: %v", userID, err)
		return nil, err
	}

	log.Printf("Service request %s submitted by user %s to vendor %s", request.ID, userID, vendor.ID)

	if err := uc.notificationUC.Push(ctx, &entity.Notification{
		Type:      entity.NotificationTypeRequest,
		Title:     "Naujas paslaugos prašymas",
		Body:      request.Subject,
		VendorID:  vendor.ID,
		RequestID: request.ID,
	}); err != nil {
		log.Printf("Failed to notify vendor %s about request %s: %v", vendor.ID, request.ID, err)
	}

	return request, nil
}

func (uc *RequestUseCase) GetByID(ctx context.Context, userID, requestID string) (*entity.ServiceRequest, error) {
	request, err := uc.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if _, err := uc.roleFor(ctx, userID, request); err != nil {
		return nil, err
	}
	return request, nil
}

// ListForUser returns the caller's requests ordered by last activity.
func (uc *RequestUseCase) ListForUser(ctx context.Context, userID string) ([]*entity.ServiceRequest, error) {
	requests, err := uc.requestRepo.ListByRequester(ctx, userID)
	if err != nil {
		log.Printf("Failed to list requests for user %s: %v", userID, err)
		return nil, err
	}
	return requests, nil
}

// WatchForUser opens a live subscription over the caller's requests. The
// returned disposer cancels the subscription.
func (uc *RequestUseCase) WatchForUser(ctx context.Context, userID string, fn repository.RequestSnapshotHandler) func() {
	return uc.requestRepo.WatchByRequester(ctx, userID, fn)
}

// ListForOperator returns requests addressed to any vendor the caller
// operates.
func (uc *RequestUseCase) ListForOperator(ctx context.Context, userID string) ([]*entity.ServiceRequest, error) {
	vendorIDs, err := uc.operatedVendorIDs(ctx, userID)
	if err != nil {
		log.Printf("Failed to resolve operated vendors for user %s: %v", userID, err)
		return nil, err
	}
	if len(vendorIDs) == 0 {
		return nil, nil
	}
	return uc.requestRepo.ListByVendors(ctx, vendorIDs)
}

// WatchForOperator opens a live subscription over the inbox of every vendor
// the caller operates. A caller with no vendors gets one empty snapshot and a
// no-op disposer.
func (uc *RequestUseCase) WatchForOperator(ctx context.Context, userID string, fn repository.RequestSnapshotHandler) (func(), error) {
	vendorIDs, err := uc.operatedVendorIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(vendorIDs) == 0 {
		fn(nil, nil)
		return func() {}, nil
	}
	return uc.requestRepo.WatchByVendors(ctx, vendorIDs, fn), nil
}

// Respond records a vendor's formal answer and completes the request.
// Responding to an already completed request is a no-op.
func (uc *RequestUseCase) Respond(ctx context.Context, userID, requestID, responseText string) error {
	responseText = strings.TrimSpace(responseText)
	if responseText == "" {
		return errors.BadRequest("Response text is required", nil)
	}

	request, err := uc.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return err
	}

	role, err := uc.roleFor(ctx, userID, request)
	if err != nil {
		return err
	}
	if role != entity.SenderRoleVendor {
		return errors.Forbidden("Only the vendor can respond to a request", nil)
	}

	if request.Status == entity.RequestStatusCompleted {
		log.Printf("Request %s already completed, ignoring duplicate response", requestID)
		return nil
	}
	if !request.CanTransition(entity.RequestStatusCompleted) {
		return errors.Conflict("Request cannot be completed from its current status")
	}

	if err := uc.requestRepo.Complete(ctx, requestID, userID, responseText); err != nil {
		log.Printf("Failed to complete request %s: %v", requestID, err)
		return err
	}

	if err := uc.notificationUC.Push(ctx, &entity.Notification{
		Type:      entity.NotificationTypeResponse,
		Title:     "Atsakymas į jūsų prašymą",
		Body:      responseText,
		UserID:    request.RequesterID,
		RequestID: requestID,
	}); err != nil {
		log.Printf("Failed to notify requester %s about response on %s: %v", request.RequesterID, requestID, err)
	}

	return nil
}

// MarkCompleted closes an in-progress request without a formal response.
// Calling it on an already completed request is a no-op.
func (uc *RequestUseCase) MarkCompleted(ctx context.Context, userID, requestID string) error {
	request, err := uc.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return err
	}

	role, err := uc.roleFor(ctx, userID, request)
	if err != nil {
		return err
	}
	if role != entity.SenderRoleVendor {
		return errors.Forbidden("Only the vendor can complete a request", nil)
	}

	if request.Status == entity.RequestStatusCompleted {
		log.Printf("Request %s already completed, ignoring mark-completed", requestID)
		return nil
	}
	if request.Status != entity.RequestStatusInProgress {
		return errors.Conflict("Only an in-progress request can be marked completed")
	}

	return uc.requestRepo.MarkCompleted(ctx, requestID, userID)
}

// Reject declines a pending request.
func (uc *RequestUseCase) Reject(ctx context.Context, userID, requestID string) error {
	request, err := uc.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return err
	}

	role, err := uc.roleFor(ctx, userID, request)
	if err != nil {
		return err
	}
	if role != entity.SenderRoleVendor {
		return errors.Forbidden("Only the vendor can reject a request", nil)
	}

	if request.Status != entity.RequestStatusPending {
		return errors.Conflict("Only a pending request can be rejected")
	}

	return uc.requestRepo.Reject(ctx, requestID)
}

// RepairMissingOwner backfills ownerUid on legacy requests addressed to the
// caller's vendors. Backfill failures are logged but never block the caller;
// the returned count is the number of repaired requests.
func (uc *RequestUseCase) RepairMissingOwner(ctx context.Context, userID string) (int, error) {
	vendorIDs, err := uc.operatedVendorIDs(ctx, userID)
	if err != nil {
		return 0, err
	}
	if len(vendorIDs) == 0 {
		return 0, nil
	}

	orphans, err := uc.requestRepo.ListMissingOwner(ctx, vendorIDs)
	if err != nil {
		log.Printf("Failed to list requests missing owner for user %s: %v", userID, err)
		return 0, nil
	}
	if len(orphans) == 0 {
		return 0, nil
	}

	ids := make([]string, 0, len(orphans))
	for _, request := range orphans {
		ids = append(ids, request.ID)
	}

	if err := uc.requestRepo.SetOwner(ctx, ids, userID); err != nil {
		log.Printf("Failed to backfill owner on %d requests for user %s: %v", len(ids), userID, err)
		return 0, nil
	}

	log.Printf("Backfilled owner on %d requests for user %s", len(ids), userID)
	return len(ids), nil
}

// roleFor resolves how the user relates to the request: requester, vendor
// operator, or neither.
func (uc *RequestUseCase) roleFor(ctx context.Context, userID string, request *entity.ServiceRequest) (string, error) {
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
	return "", errors.Forbidden("You do not have access to this request", nil)
}
