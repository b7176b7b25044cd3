// Package mail delivers outbound client notifications.
package mail

import (
	"context"
	"log/slog"
)

// LogMailer writes each message to the structured log instead of sending
// it. It is the delivery channel until an SMTP relay is configured.
type LogMailer struct {
	logger *slog.Logger
}

func NewLogMailer(logger *slog.Logger) *LogMailer {
	return &LogMailer{logger: logger.With("component", "LogMailer")}
}

func (m *LogMailer) Send(ctx context.Context, recipient, subject, body string) error {
	m.logger.InfoContext(ctx, "email sent",
		"recipient", recipient,
		"subject", subject,
		"body_bytes", len(body),
	)
	return nil
}
