package notify

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"churchcms/config"
)

type Message struct {
	ToEmail string
	ToName  string
	Subject string
	Text    string
	HTML    string
}

// Mailer delivers one message and returns the provider's message id, if any.
type Mailer interface {
	Send(ctx context.Context, msg Message) (string, error)
}

func NewMailer(cfg config.MailConfig, logger *zap.Logger) (Mailer, error) {
	switch cfg.Provider {
	case "mailersend":
		if cfg.MailerSendAPIKey == "" {
			return nil, fmt.Errorf("mailersend provider requires MAILERSEND_API_KEY")
		}
		return NewMailerSendMailer(cfg.MailerSendAPIKey, cfg.FromName, cfg.FromEmail), nil
	case "smtp":
		return NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.FromName, cfg.FromEmail, cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPUseTLS), nil
	case "log", "":
		return NewLogMailer(logger), nil
	default:
		return nil, fmt.Errorf("unknown mail provider %q", cfg.Provider)
	}
}

// LogMailer writes messages to the log instead of sending them.
type LogMailer struct {
	logger *zap.Logger
}

func NewLogMailer(logger *zap.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (m *LogMailer) Send(_ context.Context, msg Message) (string, error) {
	m.logger.Info("mail (log only)",
		zap.String("to", msg.ToEmail),
		zap.String("name", msg.ToName),
		zap.String("subject", msg.Subject),
		zap.String("text", msg.Text),
	)
	return "", nil
}
