// internal/app/system/mailer/mailer.go

// Package mailer sends transactional email (the signup confirmation link)
// over SMTP. With no SMTP host configured it logs the message instead, so
// local development works without a mail server.
package mailer

import (
	"fmt"
	"net/smtp"
	"strings"

	"go.uber.org/zap"
)

// Email is a single outbound message with both text and HTML bodies.
type Email struct {
	To       string
	Subject  string
	TextBody string
	HTMLBody string
}

// Mailer sends email over SMTP.
type Mailer struct {
	host     string
	port     int
	user     string
	pass     string
	from     string
	fromName string
	log      *zap.Logger
}

// New creates a Mailer. An empty host puts the mailer in log-only mode.
func New(host string, port int, user, pass, from, fromName string, logger *zap.Logger) *Mailer {
	return &Mailer{
		host:     host,
		port:     port,
		user:     user,
		pass:     pass,
		from:     from,
		fromName: fromName,
		log:      logger,
	}
}

// Send delivers the email. In log-only mode it records the message at info
// level and returns nil.
func (m *Mailer) Send(e Email) error {
	if m.host == "" {
		m.log.Info("mailer in log-only mode; not sending",
			zap.String("to", e.To),
			zap.String("subject", e.Subject))
		return nil
	}

	msg := m.buildMessage(e)
	addr := fmt.Sprintf("%s:%d", m.host, m.port)

	var auth smtp.Auth
	if m.user != "" {
		auth = smtp.PlainAuth("", m.user, m.pass, m.host)
	}

	if err := smtp.SendMail(addr, auth, m.from, []string{e.To}, msg); err != nil {
		return fmt.Errorf("smtp send to %s: %w", e.To, err)
	}

	m.log.Debug("email sent", zap.String("to", e.To), zap.String("subject", e.Subject))
	return nil
}

// buildMessage assembles a multipart/alternative MIME message so clients
// can pick the HTML or text body.
func (m *Mailer) buildMessage(e Email) []byte {
	const boundary = "clienthub-alt-boundary"

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s <%s>\r\n", m.fromName, m.from)
	fmt.Fprintf(&b, "To: %s\r\n", e.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", e.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&b, "Content-Type: multipart/alternative; boundary=%q\r\n", boundary)
	b.WriteString("\r\n")

	fmt.Fprintf(&b, "--%s\r\n", boundary)
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n\r\n")
	b.WriteString(e.TextBody)
	b.WriteString("\r\n")

	if e.HTMLBody != "" {
		fmt.Fprintf(&b, "--%s\r\n", boundary)
		b.WriteString("Content-Type: text/html; charset=UTF-8\r\n\r\n")
		b.WriteString(e.HTMLBody)
		b.WriteString("\r\n")
	}

	fmt.Fprintf(&b, "--%s--\r\n", boundary)
	return []byte(b.String())
}
