package worker

import (
	"context"
	"log/slog"
)

// SMSSender abstracts the SMS provider; the default implementation only logs,
// provider wiring is deployment-specific.
type SMSSender interface {
	Send(ctx context.Context, phone, message string) error
}

type logSMSSender struct{}

func NewSMSSender() SMSSender {
	return logSMSSender{}
}

func (logSMSSender) Send(_ context.Context, phone, message string) error {
	slog.Info("sms delivery", "phone", phone, "message", message)
	return nil
}
