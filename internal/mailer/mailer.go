package mailer

import (
	"fmt"
	"net/smtp"
)

// Mailer is the narrow interface used for OTP delivery
type Mailer interface {
	Send(to, subject, htmlBody string) error
}

// Config holds SMTP connection settings
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPMailer sends mail over plain SMTP
type SMTPMailer struct {
	cfg Config
}

// NewSMTP creates an SMTP-backed mailer
func NewSMTP(cfg Config) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

// Send delivers a single HTML message
func (m *SMTPMailer) Send(to, subject, htmlBody string) error {
	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}
	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)

	mime := "MIME-version: 1.0;\r\nContent-Type: text/html; charset=\"UTF-8\";\r\n\r\n"
	msg := []byte(fmt.Sprintf("To: %s\r\nFrom: %s\r\nSubject: %s\r\n%s%s", to, m.cfg.From, subject, mime, htmlBody))

	return smtp.SendMail(addr, auth, m.cfg.From, []string{to}, msg)
}
