package notify

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"churchcms/internal/domain"
	"churchcms/internal/repository"
)

// Notifier runs the best-effort half of a booking: meeting link and emails.
// It never touches the booking's status.
type Notifier struct {
	bookings    repository.BookingRepository
	counsellors repository.CounsellorRepository
	mailer      Mailer
	links       *MeetingLinks
	logger      *zap.Logger
}

func NewNotifier(
	bookings repository.BookingRepository,
	counsellors repository.CounsellorRepository,
	mailer Mailer,
	links *MeetingLinks,
	logger *zap.Logger,
) *Notifier {
	return &Notifier{
		bookings:    bookings,
		counsellors: counsellors,
		mailer:      mailer,
		links:       links,
		logger:      logger,
	}
}

// Notify sends the client confirmation and the counsellor notification for
// the booking and records the outcome in its notification status. Recipients
// already reached on an earlier attempt are skipped. The returned error joins
// every delivery failure so a queue can retry.
func (n *Notifier) Notify(ctx context.Context, bookingID int64) error {
	b, err := n.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return fmt.Errorf("load booking %d: %w", bookingID, err)
	}

	counsellor, err := n.counsellors.GetByID(ctx, b.CounsellorID)
	if err != nil {
		return fmt.Errorf("load counsellor %s: %w", b.CounsellorID, err)
	}

	b.MeetingURL = n.links.For(ctx, *b)

	var errs []error

	if !b.ClientNotified {
		if err := n.deliver(ctx, b.ID, domain.RecipientClient, func() (Message, error) {
			return ClientConfirmation(*b, *counsellor)
		}); err != nil {
			errs = append(errs, err)
		}
	}

	switch {
	case b.CounsellorNotified:
	case counsellor.Email == "":
		n.logger.Warn("counsellor has no email, skipping notification",
			zap.Int64("bookingId", b.ID),
			zap.String("counsellorId", counsellor.ID),
		)
	default:
		if err := n.deliver(ctx, b.ID, domain.RecipientCounsellor, func() (Message, error) {
			return CounsellorNotification(*b, *counsellor)
		}); err != nil {
			errs = append(errs, err)
		}
	}

	status := domain.NotificationStatusSent
	if len(errs) > 0 {
		status = domain.NotificationStatusFailed
	}

	// Use a fresh context so a timed-out delivery still gets recorded.
	if err := n.bookings.UpdateNotification(context.WithoutCancel(ctx), b.ID, b.MeetingURL, status); err != nil {
		n.logger.Error("failed to record notification status",
			zap.Int64("bookingId", b.ID),
			zap.String("status", string(status)),
			zap.Error(err),
		)
	}

	return errors.Join(errs...)
}

func (n *Notifier) deliver(ctx context.Context, bookingID int64, recipient domain.Recipient, build func() (Message, error)) error {
	msg, err := build()
	if err != nil {
		return fmt.Errorf("render %s email: %w", recipient, err)
	}
	if err := n.send(ctx, msg, bookingID, string(recipient)); err != nil {
		return err
	}

	if err := n.bookings.MarkNotified(context.WithoutCancel(ctx), bookingID, recipient); err != nil {
		n.logger.Error("failed to record delivery",
			zap.Int64("bookingId", bookingID),
			zap.String("recipient", string(recipient)),
			zap.Error(err),
		)
	}
	return nil
}

func (n *Notifier) send(ctx context.Context, msg Message, bookingID int64, recipient string) error {
	id, err := n.mailer.Send(ctx, msg)
	if err != nil {
		n.logger.Error("email delivery failed",
			zap.Int64("bookingId", bookingID),
			zap.String("recipient", recipient),
			zap.Error(err),
		)
		return fmt.Errorf("send %s email: %w", recipient, err)
	}

	n.logger.Info("email sent",
		zap.Int64("bookingId", bookingID),
		zap.String("recipient", recipient),
		zap.String("messageId", id),
	)
	return nil
}
