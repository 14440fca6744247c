package mail

import (
	"context"
	"log/slog"
)

// Sender delivers a rendered message to a single recipient. Implementations
// must be safe for concurrent use by the dispatch worker.
type Sender interface {
	Send(ctx context.Context, recipient, subject, body string) error
}

// LogSender writes messages to the application log instead of delivering
// them. Default driver for local development and tests.
type LogSender struct{}

func NewLogSender() *LogSender {
	return &LogSender{}
}

func (s *LogSender) Send(_ context.Context, recipient, subject, body string) error {
	slog.Info("mail delivered to log",
		"recipient", recipient,
		"subject", subject,
		"body_length", len(body),
	)
	return nil
}
