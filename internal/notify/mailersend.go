package notify

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/mailersend/mailersend-go"
)

type MailerSendMailer struct {
	client *mailersend.Mailersend
	from   mailersend.From
}

func NewMailerSendMailer(apiKey, fromName, fromEmail string) *MailerSendMailer {
	return &MailerSendMailer{
		client: mailersend.NewMailersend(apiKey),
		from: mailersend.From{
			Name:  fromName,
			Email: fromEmail,
		},
	}
}

func (m *MailerSendMailer) Send(ctx context.Context, msg Message) (string, error) {
	message := m.client.Email.NewMessage()
	message.SetFrom(m.from)
	message.SetRecipients([]mailersend.Recipient{{Name: msg.ToName, Email: msg.ToEmail}})
	message.SetSubject(msg.Subject)
	if strings.TrimSpace(msg.Text) != "" {
		message.SetText(msg.Text)
	}
	if strings.TrimSpace(msg.HTML) != "" {
		message.SetHTML(msg.HTML)
	}

	res, err := m.client.Email.Send(ctx, message)
	if err != nil {
		return "", fmt.Errorf("mailersend: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		body, _ := io.ReadAll(res.Body)
		return "", fmt.Errorf("mailersend: status=%d body=%s", res.StatusCode, strings.TrimSpace(string(body)))
	}

	return res.Header.Get("X-Message-Id"), nil
}
