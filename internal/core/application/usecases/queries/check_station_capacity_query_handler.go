package queries

import (
	"context"
	"log/slog"

	"manufacturing/internal/core/domain/services"
	"manufacturing/internal/core/ports"

	"gorm.io/gorm"
)

// CheckStationCapacityQueryHandler resolves the station's daily limit
// (cache, then station_capacity, then the configured default), sums the
// units already planned on non-cancelled schedule entries and runs the
// capacity check.
//
// The cache is optional. Cache failures are logged and treated as misses.
type CheckStationCapacityQueryHandler struct {
	db              *gorm.DB
	cache           ports.CapacityCache
	defaultCapacity int
	checker         services.CapacityChecker
	logger          *slog.Logger
}

func NewCheckStationCapacityQueryHandler(
	db *gorm.DB,
	cache ports.CapacityCache,
	defaultCapacity int,
	logger *slog.Logger,
) CheckStationCapacityQueryHandler {
	return CheckStationCapacityQueryHandler{
		db:              db,
		cache:           cache,
		defaultCapacity: defaultCapacity,
		checker:         services.NewCapacityChecker(),
		logger:          logger.With("component", "CheckStationCapacityQueryHandler"),
	}
}

func (h CheckStationCapacityQueryHandler) Handle(
	ctx context.Context,
	query CheckStationCapacityQuery,
) (services.CapacityReport, error) {
	if err := query.Validate(); err != nil {
		return services.CapacityReport{}, err
	}

	maxCapacity, err := h.maxCapacity(ctx, query.Station())
	if err != nil {
		return services.CapacityReport{}, err
	}

	var planned int
	err = h.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(planned_quantity), 0)
		FROM production_schedule
		WHERE station = ?
			AND scheduled_date = ?::date
			AND status <> 'cancelled'
	`, query.Station(), query.Date().String()).Row().Scan(&planned)
	if err != nil {
		return services.CapacityReport{}, err
	}

	return h.checker.Check(query.Station(), query.Date(), maxCapacity, planned, query.Additional())
}

func (h CheckStationCapacityQueryHandler) maxCapacity(ctx context.Context, station string) (int, error) {
	if h.cache != nil {
		limit, ok, err := h.cache.Get(ctx, station)
		switch {
		case err != nil:
			h.logger.WarnContext(ctx, "capacity cache read failed", "station", station, "error", err)
		case ok:
			return limit, nil
		}
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT max_units_per_day
		FROM station_capacity
		WHERE station = ?
	`, station).Rows()
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return 0, err
		}
		return h.defaultCapacity, nil
	}
	var limit int
	if err = rows.Scan(&limit); err != nil {
		return 0, err
	}

	if h.cache != nil {
		if err = h.cache.Set(ctx, station, limit); err != nil {
			h.logger.WarnContext(ctx, "capacity cache write failed", "station", station, "error", err)
		}
	}
	return limit, nil
}
