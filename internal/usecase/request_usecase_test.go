package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"verslohub/internal/domain/entity"
	"verslohub/internal/infrastructure/ratelimit"
	"verslohub/pkg/errors"
)

func requestFixture() (*RequestUseCase, *fakeRequestRepo, *fakeClaimRepo, *fakeVendorRepo, *fakeNotificationRepo) {
	requestRepo := newFakeRequestRepo()
	claimRepo := newFakeClaimRepo()
	vendorRepo := newFakeVendorRepo()
	notificationRepo := &fakeNotificationRepo{}

	vendorRepo.Create(context.Background(), &entity.Vendor{ID: "vendor-1", Name: "UAB Biuras", OwnerUID: "owner-1"})

	notificationUC := NewNotificationUseCase(notificationRepo, claimRepo, vendorRepo, &fakePublisher{})
	uc := NewRequestUseCase(requestRepo, vendorRepo, claimRepo, notificationUC, ratelimit.NewRateLimiter())
	return uc, requestRepo, claimRepo, vendorRepo, notificationRepo
}

func TestSubmitCreatesPendingRequestAndNotifiesVendor(t *testing.T) {
	uc, requestRepo, _, _, notificationRepo := requestFixture()

	request, err := uc.Submit(context.Background(), "user-1", "Jonas", SubmitRequestInput{
		VendorID:      "vendor-1",
		Subject:       "Registracijos adresas",
		Details:       "Reikia registracijos adreso naujai įmonei",
		Urgency:       entity.UrgencyNormal,
		ContactMethod: entity.ContactMethodEmail,
	})

	assert.NoError(t, err)
	assert.Equal(t, entity.RequestStatusPending, request.Status)
	assert.Equal(t, "owner-1", request.OwnerUID)
	assert.Contains(t, requestRepo.requests, request.ID)

	assert.Len(t, notificationRepo.created, 1)
	assert.Equal(t, entity.NotificationTypeRequest, notificationRepo.created[0].Type)
	assert.Equal(t, "vendor-1", notificationRepo.created[0].VendorID)
}

func TestSubmitRejectsInvalidUrgency(t *testing.T) {
	uc, _, _, _, _ := requestFixture()

	_, err := uc.Submit(context.Background(), "user-1", "", SubmitRequestInput{
		VendorID:      "vendor-1",
		Subject:       "Tema",
		Details:       "Pakankamai ilgas aprašymas",
		Urgency:       "asap",
		ContactMethod: entity.ContactMethodEmail,
	})

	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestRespondCompletesPendingRequest(t *testing.T) {
	uc, requestRepo, _, _, notificationRepo := requestFixture()
	requestRepo.Create(context.Background(), &entity.ServiceRequest{
		ID: "req-1", RequesterID: "user-1", VendorID: "vendor-1", OwnerUID: "owner-1",
		Status: entity.RequestStatusPending,
	})

	err := uc.Respond(context.Background(), "owner-1", "req-1", "Galime padėti")

	assert.NoError(t, err)
	assert.Equal(t, entity.RequestStatusCompleted, requestRepo.requests["req-1"].Status)
	assert.Equal(t, "Galime padėti", requestRepo.requests["req-1"].ResponseText)

	assert.Len(t, notificationRepo.created, 1)
	assert.Equal(t, entity.NotificationTypeResponse, notificationRepo.created[0].Type)
	assert.Equal(t, "user-1", notificationRepo.created[0].UserID)
}

func TestRespondTwiceIsNoOp(t *testing.T) {
	uc, requestRepo, _, _, notificationRepo := requestFixture()
	requestRepo.Create(context.Background(), &entity.ServiceRequest{
		ID: "req-1", RequesterID: "user-1", VendorID: "vendor-1", OwnerUID: "owner-1",
		Status: entity.RequestStatusCompleted, ResponseText: "Pirmas atsakymas",
	})

	err := uc.Respond(context.Background(), "owner-1", "req-1", "Antras atsakymas")

	assert.NoError(t, err)
	assert.Equal(t, "Pirmas atsakymas", requestRepo.requests["req-1"].ResponseText)
	assert.Empty(t, notificationRepo.created)
}

func TestRespondOnRejectedRequestConflicts(t *testing.T) {
	uc, requestRepo, _, _, _ := requestFixture()
	requestRepo.Create(context.Background(), &entity.ServiceRequest{
		ID: "req-1", RequesterID: "user-1", VendorID: "vendor-1", OwnerUID: "owner-1",
		Status: entity.RequestStatusRejected,
	})

	err := uc.Respond(context.Background(), "owner-1", "req-1", "Per vėlu")

	assert.True(t, errors.Is(err, "CONFLICT"))
}

func TestRespondForbiddenForRequester(t *testing.T) {
	uc, requestRepo, _, _, _ := requestFixture()
	requestRepo.Create(context.Background(), &entity.ServiceRequest{
		ID: "req-1", RequesterID: "user-1", VendorID: "vendor-1", OwnerUID: "owner-1",
		Status: entity.RequestStatusPending,
	})

	err := uc.Respond(context.Background(), "user-1", "req-1", "Atsakau sau")

	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestMarkCompletedOnlyFromInProgress(t *testing.T) {
	uc, requestRepo, _, _, _ := requestFixture()
	requestRepo.Create(context.Background(), &entity.ServiceRequest{
		ID: "req-1", RequesterID: "user-1", VendorID: "vendor-1", OwnerUID: "owner-1",
		Status: entity.RequestStatusInProgress,
	})

	assert.NoError(t, uc.MarkCompleted(context.Background(), "owner-1", "req-1"))
	assert.Equal(t, entity.RequestStatusCompleted, requestRepo.requests["req-1"].Status)

	// A second call lands on a completed request and is ignored.
	assert.NoError(t, uc.MarkCompleted(context.Background(), "owner-1", "req-1"))

	requestRepo.Create(context.Background(), &entity.ServiceRequest{
		ID: "req-2", RequesterID: "user-1", VendorID: "vendor-1", OwnerUID: "owner-1",
		Status: entity.RequestStatusPending,
	})
	err := uc.MarkCompleted(context.Background(), "owner-1", "req-2")
	assert.True(t, errors.Is(err, "CONFLICT"))
}

func TestRejectOnlyPending(t *testing.T) {
	uc, requestRepo, _, _, _ := requestFixture()
	requestRepo.Create(context.Background(), &entity.ServiceRequest{
		ID: "req-1", RequesterID: "user-1", VendorID: "vendor-1", OwnerUID: "owner-1",
		Status: entity.RequestStatusInProgress,
	})

	err := uc.Reject(context.Background(), "owner-1", "req-1")
	assert.True(t, errors.Is(err, "CONFLICT"))

	requestRepo.requests["req-1"].Status = entity.RequestStatusPending
	assert.NoError(t, uc.Reject(context.Background(), "owner-1", "req-1"))
	assert.Equal(t, entity.RequestStatusRejected, requestRepo.requests["req-1"].Status)
}

func TestWatchForOperatorWithoutVendors(t *testing.T) {
	uc, requestRepo, _, _, _ := requestFixture()

	var snapshots int
	disposer, err := uc.WatchForOperator(context.Background(), "nobody", func(requests []*entity.ServiceRequest, err error) {
		snapshots++
		assert.Empty(t, requests)
		assert.NoError(t, err)
	})

	assert.NoError(t, err)
	assert.Equal(t, 1, snapshots)
	assert.Equal(t, 0, requestRepo.watchCalls)
	disposer()
}

func TestWatchForOperatorWithApprovedClaim(t *testing.T) {
	uc, requestRepo, claimRepo, _, _ := requestFixture()
	claimRepo.Create(context.Background(), &entity.BusinessClaim{
		ID: "claim-1", UserID: "operator-1", VendorID: "vendor-1", Status: entity.ClaimStatusApproved,
	})
	requestRepo.Create(context.Background(), &entity.ServiceRequest{
		ID: "req-1", RequesterID: "user-1", VendorID: "vendor-1", Status: entity.RequestStatusPending,
	})

	var got []*entity.ServiceRequest
	disposer, err := uc.WatchForOperator(context.Background(), "operator-1", func(requests []*entity.ServiceRequest, err error) {
		got = requests
	})

	assert.NoError(t, err)
	assert.Len(t, got, 1)
	disposer()
}

func TestRepairMissingOwnerBackfills(t *testing.T) {
	uc, requestRepo, claimRepo, _, _ := requestFixture()
	claimRepo.Create(context.Background(), &entity.BusinessClaim{
		ID: "claim-1", UserID: "operator-1", VendorID: "vendor-1", Status: entity.ClaimStatusApproved,
	})
	requestRepo.Create(context.Background(), &entity.ServiceRequest{
		ID: "req-1", RequesterID: "user-1", VendorID: "vendor-1", Status: entity.RequestStatusInProgress,
	})
	requestRepo.Create(context.Background(), &entity.ServiceRequest{
		ID: "req-2", RequesterID: "user-1", VendorID: "vendor-1", Status: entity.RequestStatusPending,
	})

	repaired, err := uc.RepairMissingOwner(context.Background(), "operator-1")

	assert.NoError(t, err)
	assert.Equal(t, 1, repaired)
	assert.Equal(t, "operator-1", requestRepo.requests["req-1"].OwnerUID)
	assert.Empty(t, requestRepo.requests["req-2"].OwnerUID)
}

func TestRepairMissingOwnerIsIdempotent(t *testing.T) {
	uc, requestRepo, claimRepo, _, _ := requestFixture()
	claimRepo.Create(context.Background(), &entity.BusinessClaim{
		ID: "claim-1", UserID: "operator-1", VendorID: "vendor-1", Status: entity.ClaimStatusApproved,
	})
	requestRepo.Create(context.Background(), &entity.ServiceRequest{
		ID: "req-1", RequesterID: "user-1", VendorID: "vendor-1", Status: entity.RequestStatusInProgress,
	})

	repaired, err := uc.RepairMissingOwner(context.Background(), "operator-1")
	assert.NoError(t, err)
	assert.Equal(t, 1, repaired)
	assert.Equal(t, 1, requestRepo.setOwnerCalls)

	// The backfilled documents no longer match, so a rerun writes nothing.
	repaired, err = uc.RepairMissingOwner(context.Background(), "operator-1")
	assert.NoError(t, err)
	assert.Zero(t, repaired)
	assert.Equal(t, 1, requestRepo.setOwnerCalls)
}

func TestRepairMissingOwnerSwallowsBackfillErrors(t *testing.T) {
	uc, requestRepo, claimRepo, _, _ := requestFixture()
	claimRepo.Create(context.Background(), &entity.BusinessClaim{
		ID: "claim-1", UserID: "operator-1", VendorID: "vendor-1", Status: entity.ClaimStatusApproved,
	})
	requestRepo.Create(context.Background(), &entity.ServiceRequest{
		ID: "req-1", RequesterID: "user-1", VendorID: "vendor-1", Status: entity.RequestStatusInProgress,
	})
	requestRepo.setOwnerErr = errors.Internal("store unavailable", nil)

	repaired, err := uc.RepairMissingOwner(context.Background(), "operator-1")

	assert.NoError(t, err)
	assert.Equal(t, 0, repaired)
}

func TestRepairMissingOwnerPropagatesClaimErrors(t *testing.T) {
	uc, _, claimRepo, _, _ := requestFixture()
	claimRepo.listErr = errors.Internal("store unavailable", nil)

	_, err := uc.RepairMissingOwner(context.Background(), "operator-1")

	assert.Error(t, err)
}
