package worker

import (
	"context"
	"log/slog"

	"groupbuy-api/internal/pkg/config"

	"gopkg.in/gomail.v2"
)

type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

type gomailMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewMailer(cfg config.MailConfig) Mailer {
	if cfg.User == "" {
		// No SMTP credentials configured; log instead of failing every job.
		return logMailer{}
	}
	return &gomailMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   cfg.From,
	}
}

func (m *gomailMailer) Send(_ context.Context, to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)
	return m.dialer.DialAndSend(msg)
}

type logMailer struct{}

func (logMailer) Send(_ context.Context, to, subject, _ string) error {
	slog.Info("mail delivery skipped, SMTP not configured", "to", to, "subject", subject)
	return nil
}
