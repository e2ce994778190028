package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"churchcms/internal/domain"
)

const (
	BookingCreated       = "booking.created"
	BookingStatusChanged = "booking.status_changed"
	BookingCancelled     = "booking.cancelled"
)

type Publisher interface {
	Publish(ctx context.Context, subject string, data interface{}) error
	Close() error
}

type BookingEvent struct {
	BookingID          int64                `json:"bookingId"`
	ConfirmationNumber string               `json:"confirmationNumber"`
	CounsellorID       string               `json:"counsellorId"`
	BookingType        domain.BookingType   `json:"bookingType"`
	PreferredDate      string               `json:"preferredDate"`
	PreferredTime      string               `json:"preferredTime"`
	Status             domain.BookingStatus `json:"status"`
	OccurredAt         time.Time            `json:"occurredAt"`
}

func NewBookingEvent(b domain.Booking, at time.Time) BookingEvent {
	return BookingEvent{
		BookingID:          b.ID,
		ConfirmationNumber: b.ConfirmationNumber,
		CounsellorID:       b.CounsellorID,
		BookingType:        b.BookingType,
		PreferredDate:      b.PreferredDate,
		PreferredTime:      b.PreferredTime,
		Status:             b.Status,
		OccurredAt:         at,
	}
}

// SubjectForStatus picks the subject announcing a status change.
func SubjectForStatus(status domain.BookingStatus) string {
	if status == domain.BookingStatusCancelled {
		return BookingCancelled
	}
	return BookingStatusChanged
}

type NATSPublisher struct {
	conn   *nats.Conn
	logger *zap.Logger
}

func NewNATSPublisher(url string, logger *zap.Logger) (*NATSPublisher, error) {
	conn, err := nats.Connect(url, nats.Name("churchcms"))
	if err != nil {
		return nil, fmt.Errorf("connect to nats: %w", err)
	}

	return &NATSPublisher{conn: conn, logger: logger}, nil
}

func (p *NATSPublisher) Publish(ctx context.Context, subject string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	p.logger.Debug("publishing event", zap.String("subject", subject), zap.ByteString("data", payload))

	if err := p.conn.Publish(subject, payload); err != nil {
		return fmt.Errorf("publish %s: %w", subject, err)
	}
	return nil
}

func (p *NATSPublisher) Close() error {
	if err := p.conn.Drain(); err != nil {
		p.conn.Close()
		return err
	}
	return nil
}

// NoopPublisher drops events; used when NATS_URL is unset.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, string, interface{}) error { return nil }
func (NoopPublisher) Close() error                                       { return nil }
