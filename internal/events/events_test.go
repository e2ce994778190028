package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"churchcms/internal/domain"
)

func TestNewBookingEvent(t *testing.T) {
	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	b := domain.Booking{
		ID:                 7,
		ConfirmationNumber: "CN-20250301-ABC123",
		Status:             domain.BookingStatusPending,
		BookingFormData: domain.BookingFormData{
			CounsellorID:  "c1",
			BookingType:   domain.BookingTypeOnline,
			PreferredDate: "2025-03-10",
			PreferredTime: "09:00",
			Email:         "jane@x.com",
		},
	}

	ev := NewBookingEvent(b, at)

	raw, err := json.Marshal(ev)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"bookingId": 7,
		"confirmationNumber": "CN-20250301-ABC123",
		"counsellorId": "c1",
		"bookingType": "online",
		"preferredDate": "2025-03-10",
		"preferredTime": "09:00",
		"status": "pending",
		"occurredAt": "2025-03-01T12:00:00Z"
	}`, string(raw))
}

func TestSubjectForStatus(t *testing.T) {
	assert.Equal(t, BookingCancelled, SubjectForStatus(domain.BookingStatusCancelled))
	assert.Equal(t, BookingStatusChanged, SubjectForStatus(domain.BookingStatusConfirmed))
}

func TestNoopPublisher(t *testing.T) {
	var p Publisher = NoopPublisher{}
	assert.NoError(t, p.Publish(context.Background(), BookingCreated, map[string]string{"a": "b"}))
	assert.NoError(t, p.Close())
}
