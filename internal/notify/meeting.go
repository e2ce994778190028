package notify

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"churchcms/internal/domain"
)

// MeetingLinkGenerator creates a join URL for an online booking.
type MeetingLinkGenerator interface {
	Generate(ctx context.Context, b domain.Booking) (string, error)
}

// RoomLinkGenerator builds Jitsi-style room URLs: <base>/<room>. Rooms are
// unguessable so the link itself is the access control.
type RoomLinkGenerator struct {
	base *url.URL
}

func NewRoomLinkGenerator(baseURL string) (*RoomLinkGenerator, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse meeting base url: %w", err)
	}
	if u.Scheme != "https" && u.Scheme != "http" {
		return nil, fmt.Errorf("meeting base url must be http(s): %q", baseURL)
	}
	return &RoomLinkGenerator{base: u}, nil
}

func (g *RoomLinkGenerator) Generate(_ context.Context, b domain.Booking) (string, error) {
	room := fmt.Sprintf("Counselling-%s-%s", strings.ReplaceAll(b.ConfirmationNumber, "-", ""), strings.ReplaceAll(uuid.NewString(), "-", "")[:12])
	return g.base.JoinPath(room).String(), nil
}

// MeetingLinks degrades generator failures to a placeholder link.
type MeetingLinks struct {
	generator   MeetingLinkGenerator
	placeholder string
	logger      *zap.Logger
}

func NewMeetingLinks(generator MeetingLinkGenerator, placeholder string, logger *zap.Logger) *MeetingLinks {
	return &MeetingLinks{
		generator:   generator,
		placeholder: placeholder,
		logger:      logger,
	}
}

// For returns the join URL for b, or "" when b is not an online booking.
func (m *MeetingLinks) For(ctx context.Context, b domain.Booking) string {
	if b.BookingType != domain.BookingTypeOnline {
		return ""
	}
	if b.MeetingURL != "" {
		return b.MeetingURL
	}
	if m.generator == nil {
		return m.placeholder
	}

	link, err := m.generator.Generate(ctx, b)
	if err != nil || link == "" {
		m.logger.Warn("meeting link generation failed, using placeholder",
			zap.Int64("bookingId", b.ID),
			zap.Error(err),
		)
		return m.placeholder
	}
	return link
}
