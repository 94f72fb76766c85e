package services

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/mdferoz/electricity-board-api/config"
)

// Mailer sends a notification email. Implementations are best-effort: the
// caller logs a failure and moves on, it never rolls anything back.
type Mailer interface {
	Send(to, subject, textBody, htmlBody string) error
}

// SMTPMailer sends mail through the configured SMTP relay.
type SMTPMailer struct {
	host     string
	port     int
	username string
	password string
	from     string
}

var mailerInstance Mailer

// InitMailer initializes the SMTP mailer from configuration.
func InitMailer(cfg *config.Config) Mailer {
	mailerInstance = &SMTPMailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		username: cfg.SMTPUsername,
		password: cfg.SMTPPassword,
		from:     cfg.MailFrom,
	}
	return mailerInstance
}

// GetMailer returns the initialized mailer instance.
func GetMailer() Mailer {
	return mailerInstance
}

// SetMailer sets the mailer instance (primarily for testing).
func SetMailer(m Mailer) {
	mailerInstance = m
}

// Send delivers a multipart text+HTML message over SMTP with STARTTLS.
func (m *SMTPMailer) Send(to, subject, textBody, htmlBody string) error {
	if m.from == "" {
		return fmt.Errorf("mailer: MAIL_FROM is not configured")
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", textBody)
	if htmlBody != "" {
		msg.AddAlternative("text/html", htmlBody)
	}

	dialer := gomail.NewDialer(m.host, m.port, m.username, m.password)
	if err := dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("mailer: send to %s: %w", to, err)
	}
	return nil
}
