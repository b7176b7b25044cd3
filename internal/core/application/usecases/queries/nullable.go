package queries

import (
	"database/sql"
	"time"

	"manufacturing/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

func nullableUUID(id uuid.NullUUID) (*kernel.UUID, error) {
	if !id.Valid {
		return nil, nil
	}
	k, err := kernel.UUIDFromBytes(id.UUID[:])
	if err != nil {
		return nil, err
	}
	return &k, nil
}

func nullableTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	return &t.Time
}

func nullableDate(t sql.NullTime) *kernel.Date {
	return kernel.DatePtr(nullableTime(t))
}
