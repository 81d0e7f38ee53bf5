package notifier

import (
	"fmt"

	gomail "gopkg.in/gomail.v2"

	"github.com/akrgroup/backoffice/internal/config"
)

// EmailSender delivers a rendered HTML email
type EmailSender interface {
	Send(to, subject, htmlBody string) error
}

// GomailSender implements EmailSender over SMTP
type GomailSender struct {
	dialer *gomail.Dialer
	from   string
}

func NewGomailSender(cfg *config.SMTPConfig) *GomailSender {
	return &GomailSender{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

// Send dials the SMTP server and delivers one message. A connection per send
// is fine at back-office volumes.
func (s *GomailSender) Send(to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}
