package mailer

import (
	"fmt"
	"strings"

	gomail "gopkg.in/gomail.v2"

	"github.com/stylehaven/stylehaven-backend/pkg/config"
)

// Sender is the delivery surface the notification worker depends on.
type Sender interface {
	Send(to, subject, body string) error
}

// Mailer delivers plain-text mail over SMTP.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

// New builds an SMTP mailer from config.
func New(cfg config.SMTPConfig) (*Mailer, error) {
	if strings.TrimSpace(cfg.Host) == "" {
		return nil, fmt.Errorf("smtp host is required")
	}
	if cfg.Port <= 0 {
		return nil, fmt.Errorf("smtp port must be positive")
	}
	if strings.TrimSpace(cfg.From) == "" {
		return nil, fmt.Errorf("smtp from address is required")
	}
	return &Mailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}, nil
}

// Send delivers a single message. Each call dials a fresh connection,
// worker volume is low enough that pooling is not worth the bookkeeping.
func (m *Mailer) Send(to, subject, body string) error {
	if strings.TrimSpace(to) == "" {
		return fmt.Errorf("recipient is required")
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("sending mail to %s: %w", to, err)
	}
	return nil
}
