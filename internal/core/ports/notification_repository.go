package ports

import (
	"context"

	"manufacturing/internal/core/domain/model/notification"
)

// NotificationRepository is the notification outbox. Lifecycle commands only
// enqueue; the dispatch job reads queued messages and records the outcome.
type NotificationRepository interface {
	Enqueue(ctx context.Context, message *notification.Message) error
	Update(ctx context.Context, message *notification.Message) error

	// ListQueued returns up to limit queued messages, oldest first.
	ListQueued(ctx context.Context, limit int) ([]*notification.Message, error)
}

// Mailer delivers a rendered message to its recipient.
type Mailer interface {
	Send(ctx context.Context, recipient, subject, body string) error
}
