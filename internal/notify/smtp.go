package notify

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"mime"
	"net/mail"
	"net/smtp"
	"strings"

	"github.com/google/uuid"
)

type SMTPMailer struct {
	host     string
	port     int
	from     mail.Address
	user     string
	password string
	useTLS   bool
}

func NewSMTPMailer(host string, port int, fromName, fromEmail, user, password string, useTLS bool) *SMTPMailer {
	return &SMTPMailer{
		host:     strings.TrimSpace(host),
		port:     port,
		from:     mail.Address{Name: fromName, Address: strings.TrimSpace(fromEmail)},
		user:     strings.TrimSpace(user),
		password: password,
		useTLS:   useTLS,
	}
}

// buildMessage renders a multipart/alternative message with a text and an
// HTML part.
func (s *SMTPMailer) buildMessage(msg Message, boundary string) []byte {
	to := mail.Address{Name: msg.ToName, Address: msg.ToEmail}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "From: %s\r\n", s.from.String())
	fmt.Fprintf(&buf, "To: %s\r\n", to.String())
	fmt.Fprintf(&buf, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", msg.Subject))
	fmt.Fprintf(&buf, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/alternative; boundary=%s\r\n\r\n", boundary)

	fmt.Fprintf(&buf, "--%s\r\n", boundary)
	fmt.Fprintf(&buf, "Content-Type: text/plain; charset=utf-8\r\n\r\n")
	fmt.Fprintf(&buf, "%s\r\n\r\n", msg.Text)

	fmt.Fprintf(&buf, "--%s\r\n", boundary)
	fmt.Fprintf(&buf, "Content-Type: text/html; charset=utf-8\r\n\r\n")
	fmt.Fprintf(&buf, "%s\r\n\r\n", msg.HTML)

	fmt.Fprintf(&buf, "--%s--\r\n", boundary)
	return buf.Bytes()
}

func (s *SMTPMailer) Send(ctx context.Context, msg Message) (string, error) {
	toEmail := strings.TrimSpace(msg.ToEmail)
	if toEmail == "" {
		return "", fmt.Errorf("empty recipient email")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	body := s.buildMessage(msg, "alt-"+uuid.NewString())
	addr := fmt.Sprintf("%s:%d", s.host, s.port)

	// Local catchers such as Mailpit take plain unauthenticated mail.
	if !s.useTLS && s.user == "" {
		if err := smtp.SendMail(addr, nil, s.from.Address, []string{toEmail}, body); err != nil {
			return "", fmt.Errorf("smtp send: %w", err)
		}
		return "", nil
	}

	var auth smtp.Auth
	if s.user != "" {
		auth = smtp.PlainAuth("", s.user, s.password, s.host)
	}

	// SendMail upgrades with STARTTLS when the server offers it.
	err := smtp.SendMail(addr, auth, s.from.Address, []string{toEmail}, body)
	if err == nil {
		return "", nil
	}
	if !s.useTLS {
		return "", fmt.Errorf("smtp send: %w", err)
	}

	// Implicit TLS, e.g. port 465.
	if err := s.sendImplicitTLS(addr, auth, toEmail, body); err != nil {
		return "", fmt.Errorf("smtp send over tls: %w", err)
	}
	return "", nil
}

func (s *SMTPMailer) sendImplicitTLS(addr string, auth smtp.Auth, toEmail string, body []byte) error {
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: s.host})
	if err != nil {
		return err
	}
	defer conn.Close()

	c, err := smtp.NewClient(conn, s.host)
	if err != nil {
		return err
	}
	defer c.Quit()

	if auth != nil {
		if err := c.Auth(auth); err != nil {
			return err
		}
	}
	if err := c.Mail(s.from.Address); err != nil {
		return err
	}
	if err := c.Rcpt(toEmail); err != nil {
		return err
	}
	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(body); err != nil {
		return err
	}
	return w.Close()
}
