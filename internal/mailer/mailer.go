// Package mailer sends contact form notification emails over SMTP.
package mailer

import (
	"fmt"
	"net/smtp"
	"strings"

	"go.uber.org/zap"

	"github.com/kotae-ai/kotae/internal/models"
)

// Mailer notifies about a new contact form submission: an acknowledgment to
// the visitor and a copy to the portfolio owner.
type Mailer interface {
	SendContactNotification(msg *models.ContactMessage) error
}

// Config holds SMTP settings. From and Password come from the environment;
// when either is empty, notifications are disabled rather than failing.
type Config struct {
	Host     string
	Port     int
	From     string
	Password string
	// Owner is the address notified about submissions; defaults to From.
	Owner     string
	OwnerName string
}

// New returns an SMTP mailer, or a no-op mailer when credentials are absent.
func New(cfg Config, logger *zap.Logger) Mailer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.From == "" || cfg.Password == "" {
		logger.Info("email credentials not configured, notifications disabled")
		return &NoopMailer{logger: logger}
	}
	if cfg.Owner == "" {
		cfg.Owner = cfg.From
	}
	return &SMTPMailer{cfg: cfg, logger: logger}
}

// SMTPMailer sends mail through a STARTTLS SMTP server.
type SMTPMailer struct {
	cfg    Config
	logger *zap.Logger
}

// SendContactNotification sends the acknowledgment and the owner copy. The
// first failure is returned; callers treat mail failure as non-fatal.
func (m *SMTPMailer) SendContactNotification(msg *models.ContactMessage) error {
	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	auth := smtp.PlainAuth("", m.cfg.From, m.cfg.Password, m.cfg.Host)

	ack := formatMail(m.cfg.From, msg.Email, "Thank you for reaching out!", ackBody(m.cfg.OwnerName, msg))
	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{msg.Email}, ack); err != nil {
		return fmt.Errorf("failed to send acknowledgment: %w", err)
	}

	subject := fmt.Sprintf("New contact form submission from %s", msg.Name)
	notice := formatMail(m.cfg.From, m.cfg.Owner, subject, ownerBody(msg))
	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{m.cfg.Owner}, notice); err != nil {
		return fmt.Errorf("failed to send owner notification: %w", err)
	}

	m.logger.Debug("contact notification sent", zap.String("visitor", msg.Email))
	return nil
}

// NoopMailer skips sending; used when credentials are not configured.
type NoopMailer struct {
	logger *zap.Logger
}

// SendContactNotification logs and succeeds without sending anything.
func (m *NoopMailer) SendContactNotification(msg *models.ContactMessage) error {
	m.logger.Debug("skipping contact notification, mailer disabled", zap.String("visitor", msg.Email))
	return nil
}

// formatMail builds an RFC 5322 message with CRLF line endings.
func formatMail(from, to, subject, body string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return []byte(b.String())
}

func ackBody(ownerName string, msg *models.ContactMessage) string {
	signature := "Best regards"
	if ownerName != "" {
		signature = "Best regards,\r\n" + ownerName
	}
	return fmt.Sprintf(
		"Hi %s,\r\n\r\nThank you for your message! I've received your inquiry and will get back to you as soon as possible.\r\n\r\n%s\r\n",
		msg.Name, signature,
	)
}

func ownerBody(msg *models.ContactMessage) string {
	return fmt.Sprintf(
		"New message received on your portfolio:\r\n\r\nName: %s\r\nEmail: %s\r\nMessage: %s\r\n\r\nReply to: %s\r\n",
		msg.Name, msg.Email, msg.Message, msg.Email,
	)
}
