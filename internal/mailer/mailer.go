package mailer

import (
	"context"
	"fmt"
	"net/smtp"

	"go.uber.org/zap"
)

// Mailer dispatches notification emails. Implementations are injected into
// services so tests can substitute them.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

type smtpMailer struct {
	addr   string
	auth   smtp.Auth
	from   string
	logger *zap.Logger
}

// NewSMTPMailer creates a Mailer that sends through the configured SMTP
// relay using PLAIN auth.
func NewSMTPMailer(host, port, username, password, from string, logger *zap.Logger) Mailer {
	return &smtpMailer{
		addr:   fmt.Sprintf("%s:%s", host, port),
		auth:   smtp.PlainAuth("", username, password, host),
		from:   from,
		logger: logger,
	}
}

// Send delivers a single plain-text email.
func (m *smtpMailer) Send(ctx context.Context, to, subject, body string) error {
	msg := []byte("From: " + m.from + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"\r\n" +
		body + "\r\n")

	m.logger.Debug("Sending notification email",
		zap.String("to", to),
		zap.String("subject", subject),
	)

	if err := smtp.SendMail(m.addr, m.auth, m.from, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
