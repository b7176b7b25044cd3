package ports

import (
	"context"

	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/core/domain/model/production"
)

// SessionRepository defines the persistence contract for production sessions.
// Add and Update also append the quantity logs pulled from the session.
type SessionRepository interface {
	Add(ctx context.Context, session *production.Session) error
	Update(ctx context.Context, session *production.Session) error
	Get(ctx context.Context, id kernel.UUID) (*production.Session, error)
}
