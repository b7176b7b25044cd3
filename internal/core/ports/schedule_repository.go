package ports

import (
	"context"

	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/core/domain/model/schedule"
)

type ScheduleRepository interface {
	Add(ctx context.Context, entry *schedule.Entry) error
	Update(ctx context.Context, entry *schedule.Entry) error
	Get(ctx context.Context, id kernel.UUID) (*schedule.Entry, error)
}

// CapacityRepository stores the configured daily limit per station.
type CapacityRepository interface {
	// Upsert creates or replaces the limit of the station.
	Upsert(ctx context.Context, capacity schedule.StationCapacity) error

	// Get returns the configured limit. The boolean is false when the
	// station has no configured limit.
	Get(ctx context.Context, station string) (schedule.StationCapacity, bool, error)
}

// CapacityCache holds configured station limits in front of the database.
// A miss is reported with a false boolean and no error.
type CapacityCache interface {
	Get(ctx context.Context, station string) (int, bool, error)
	Set(ctx context.Context, station string, maxUnitsPerDay int) error
	Invalidate(ctx context.Context, station string) error
}
