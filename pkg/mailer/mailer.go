package mailer

import (
	"context"
	"fmt"

	"titlerate/backend/pkg/apperror"

	"gopkg.in/gomail.v2"
)

// Sink delivers notifications to an address. Delivery failures are not
// retried here; callers surface them to the client.
type Sink interface {
	Send(ctx context.Context, to, subject, body string) error
}

type SMTPConfig struct {
	Host string
	Port int
	User string
	Pass string
	From string
}

type smtpSink struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPSink(cfg SMTPConfig) Sink {
	return &smtpSink{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Pass),
		from:   cfg.From,
	}
}

func (s *smtpSink) Send(_ context.Context, to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("%w: %v", apperror.ErrDelivery, err)
	}
	return nil
}
