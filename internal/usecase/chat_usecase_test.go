package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"verslohub/internal/domain/entity"
	"verslohub/internal/infrastructure/ratelimit"
	"verslohub/pkg/errors"
)

func chatFixture() (*ChatUseCase, *fakeRequestRepo, *fakeNotificationRepo) {
	requestRepo := newFakeRequestRepo()
	claimRepo := newFakeClaimRepo()
	vendorRepo := newFakeVendorRepo()
	notificationRepo := &fakeNotificationRepo{}

	vendorRepo.Create(context.Background(), &entity.Vendor{ID: "vendor-1", Name: "UAB Biuras", OwnerUID: "owner-1"})
	requestRepo.Create(context.Background(), &entity.ServiceRequest{
		ID:          "req-1",
		RequesterID: "user-1",
		VendorID:    "vendor-1",
		OwnerUID:    "owner-1",
		Status:      entity.RequestStatusPending,
	})

	notificationUC := NewNotificationUseCase(notificationRepo, claimRepo, vendorRepo, &fakePublisher{})
	chatUC := NewChatUseCase(requestRepo, claimRepo, vendorRepo, notificationUC, ratelimit.NewRateLimiter())
	return chatUC, requestRepo, notificationRepo
}

func TestSendMessageAsRequester(t *testing.T) {
	uc, requestRepo, notificationRepo := chatFixture()

	message, err := uc.SendMessage(context.Background(), "user-1", "Jonas", "req-1", "  Laba diena  ")

	assert.NoError(t, err)
	assert.Equal(t, "Laba diena", message.Content)
	assert.Equal(t, entity.SenderRoleUser, message.SenderRole)
	assert.Len(t, requestRepo.messages["req-1"], 1)

	// Summary follows the message.
	assert.Equal(t, "Laba diena", requestRepo.requests["req-1"].LastMessage)
	assert.Equal(t, entity.SenderRoleUser, requestRepo.requests["req-1"].LastMessageSender)

	// A user message never advances the status or stamps a response date.
	assert.Equal(t, entity.RequestStatusPending, requestRepo.requests["req-1"].Status)
	assert.Nil(t, requestRepo.requests["req-1"].ResponseDate)

	// The vendor gets notified.
	assert.Len(t, notificationRepo.created, 1)
	assert.Equal(t, "vendor-1", notificationRepo.created[0].VendorID)
	assert.Empty(t, notificationRepo.created[0].UserID)
}

func TestSendMessageAsVendorMarksInProgress(t *testing.T) {
	uc, requestRepo, notificationRepo := chatFixture()

	message, err := uc.SendMessage(context.Background(), "owner-1", "", "req-1", "Tuoj atsakysime")

	assert.NoError(t, err)
	assert.Equal(t, entity.SenderRoleVendor, message.SenderRole)
	assert.Equal(t, entity.RequestStatusInProgress, requestRepo.requests["req-1"].Status)

	// The requester gets notified.
	assert.Len(t, notificationRepo.created, 1)
	assert.Equal(t, "user-1", notificationRepo.created[0].UserID)
}

func TestVendorFirstReplyStampsResponseDate(t *testing.T) {
	uc, requestRepo, _ := chatFixture()

	_, err := uc.SendMessage(context.Background(), "owner-1", "", "req-1", "Tuoj atsakysime")
	assert.NoError(t, err)

	stamped := requestRepo.requests["req-1"].ResponseDate
	assert.NotNil(t, stamped)

	// A follow-up reply keeps the original stamp.
	_, err = uc.SendMessage(context.Background(), "owner-1", "", "req-1", "Dar dirbame")
	assert.NoError(t, err)
	assert.Equal(t, stamped, requestRepo.requests["req-1"].ResponseDate)
}

func TestSendMessageVendorReplyOnActiveRequestKeepsStatus(t *testing.T) {
	uc, requestRepo, _ := chatFixture()
	requestRepo.requests["req-1"].Status = entity.RequestStatusInProgress

	_, err := uc.SendMessage(context.Background(), "owner-1", "", "req-1", "Dar dirbame")

	assert.NoError(t, err)
	assert.Equal(t, entity.RequestStatusInProgress, requestRepo.requests["req-1"].Status)
}

func TestSendMessageRejectsEmptyContent(t *testing.T) {
	uc, _, _ := chatFixture()

	_, err := uc.SendMessage(context.Background(), "user-1", "", "req-1", "   ")

	assert.Error(t, err)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestSendMessageRejectsStranger(t *testing.T) {
	uc, requestRepo, _ := chatFixture()

	_, err := uc.SendMessage(context.Background(), "intruder", "", "req-1", "Sveiki")

	assert.True(t, errors.Is(err, "FORBIDDEN"))
	assert.Empty(t, requestRepo.messages["req-1"])
}

func TestSendMessageKeepsMessageWhenSummaryFails(t *testing.T) {
	uc, requestRepo, _ := chatFixture()
	requestRepo.summaryErr = errors.Internal("store unavailable", nil)

	message, err := uc.SendMessage(context.Background(), "user-1", "", "req-1", "Sveiki")

	// The message stays persisted even though the follow-up write failed.
	assert.Error(t, err)
	assert.NotNil(t, message)
	assert.Len(t, requestRepo.messages["req-1"], 1)
	assert.Empty(t, requestRepo.requests["req-1"].LastMessage)
}

func TestSendMessageSingleFlightPerRequest(t *testing.T) {
	uc, _, _ := chatFixture()

	assert.True(t, uc.acquire("req-1"))
	assert.False(t, uc.acquire("req-1"))

	// Another thread is unaffected.
	assert.True(t, uc.acquire("req-2"))

	uc.release("req-1")
	assert.True(t, uc.acquire("req-1"))
}

func TestListMessagesRequiresParticipant(t *testing.T) {
	uc, _, _ := chatFixture()

	_, err := uc.ListMessages(context.Background(), "intruder", "req-1")
	assert.True(t, errors.Is(err, "FORBIDDEN"))

	_, err = uc.ListMessages(context.Background(), "user-1", "req-1")
	assert.NoError(t, err)
}

func TestWatchMessagesDeliversSnapshot(t *testing.T) {
	uc, requestRepo, _ := chatFixture()
	requestRepo.messages["req-1"] = []*entity.Message{{ID: "m1", Content: "Sveiki"}}

	var got []*entity.Message
	disposer, err := uc.WatchMessages(context.Background(), "user-1", "req-1", func(messages []*entity.Message, err error) {
		got = messages
	})

	assert.NoError(t, err)
	assert.NotNil(t, disposer)
	assert.Len(t, got, 1)
	disposer()
}
