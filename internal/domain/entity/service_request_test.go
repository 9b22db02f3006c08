package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from    string
		to      string
		allowed bool
	}{
		{RequestStatusPending, RequestStatusInProgress, true},
		{RequestStatusPending, RequestStatusCompleted, true},
		{RequestStatusPending, RequestStatusRejected, true},
		{RequestStatusInProgress, RequestStatusCompleted, true},
		{RequestStatusInProgress, RequestStatusRejected, false},
		{RequestStatusInProgress, RequestStatusPending, false},
		{RequestStatusCompleted, RequestStatusInProgress, false},
		{RequestStatusCompleted, RequestStatusCompleted, false},
		{RequestStatusRejected, RequestStatusInProgress, false},
		{RequestStatusRejected, RequestStatusCompleted, false},
	}

	for _, tt := range tests {
		request := &ServiceRequest{Status: tt.from}
		assert.Equal(t, tt.allowed, request.CanTransition(tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestTerminal(t *testing.T) {
	assert.False(t, (&ServiceRequest{Status: RequestStatusPending}).Terminal())
	assert.False(t, (&ServiceRequest{Status: RequestStatusInProgress}).Terminal())
	assert.True(t, (&ServiceRequest{Status: RequestStatusCompleted}).Terminal())
	assert.True(t, (&ServiceRequest{Status: RequestStatusRejected}).Terminal())
}

func TestValidUrgency(t *testing.T) {
	assert.True(t, ValidUrgency(UrgencyHigh))
	assert.True(t, ValidUrgency(UrgencyNormal))
	assert.True(t, ValidUrgency(UrgencyLow))
	assert.False(t, ValidUrgency("asap"))
	assert.False(t, ValidUrgency(""))
}

func TestValidContactMethod(t *testing.T) {
	assert.True(t, ValidContactMethod(ContactMethodEmail))
	assert.True(t, ValidContactMethod(ContactMethodPhone))
	assert.False(t, ValidContactMethod("pigeon"))
}
