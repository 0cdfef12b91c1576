// Package mail sends transactional email over SMTP.
package mail

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"
)

// SMTPMailer implements ports.Mailer over a plain SMTP relay with optional
// AUTH. Sends never surface transport errors to callers: order placement
// must not depend on the relay being up.
type SMTPMailer struct {
	addr   string
	from   string
	auth   smtp.Auth
	logger *slog.Logger

	// send is swapped in tests.
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTPMailer creates a mailer for the relay at addr ("host:port"). The
// username may be empty for relays that accept unauthenticated submission.
func NewSMTPMailer(addr, from, username, password string, logger *slog.Logger) *SMTPMailer {
	var auth smtp.Auth
	if username != "" {
		host := addr
		if i := strings.LastIndex(addr, ":"); i >= 0 {
			host = addr[:i]
		}
		auth = smtp.PlainAuth("", username, password, host)
	}

	return &SMTPMailer{
		addr:   addr,
		from:   from,
		auth:   auth,
		logger: logger.With("component", "mailer"),
		send:   smtp.SendMail,
	}
}

// Send delivers one message. Transport failures are logged and swallowed.
func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\n"+
		"Content-Type: text/plain; charset=utf-8\r\n\r\n%s\r\n",
		m.from, to, subject, body)

	if err := m.send(m.addr, m.auth, m.from, []string{to}, []byte(msg)); err != nil {
		m.logger.WarnContext(ctx, "email send failed", "to", to, "subject", subject, "error", err)
		return nil
	}

	m.logger.DebugContext(ctx, "email sent", "to", to, "subject", subject)
	return nil
}
