package queries

import (
	"context"
	"errors"
	"strings"
	"time"

	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/pkg/errs"
	"manufacturing/internal/pkg/guard"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrListScheduleQueryIsNotConstructed = errors.New(
	"ListScheduleQuery must be created via NewListScheduleQuery constructor",
)

// ListScheduleQuery lists the non-cancelled schedule between two days,
// inclusive, optionally for one station.
type ListScheduleQuery struct {
	from, to kernel.Date
	station  string

	guard guard.ConstructorGuard
}

func NewListScheduleQuery(from, to kernel.Date, station string) (ListScheduleQuery, error) {
	if err := errors.Join(from.Validate(), to.Validate()); err != nil {
		return ListScheduleQuery{}, err
	}
	if to.Time().Before(from.Time()) {
		return ListScheduleQuery{}, errs.NewValueIsOutOfRangeError("date range end", to.String(), from.String(), "")
	}
	return ListScheduleQuery{
		from:    from,
		to:      to,
		station: strings.TrimSpace(station),
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (q ListScheduleQuery) From() kernel.Date { return q.from }
func (q ListScheduleQuery) To() kernel.Date { return q.to }
func (q ListScheduleQuery) Station() string { return q.station }

func (q ListScheduleQuery) Validate() error {
	return q.guard.Validate(ErrListScheduleQueryIsNotConstructed)
}

type ScheduleEntryResponse struct {
	ID              kernel.UUID
	OrderID         kernel.UUID
	OrderItemID     kernel.UUID
	OrderNumber     string
	ProductName     string
	Zone            string
	Station         string
	ScheduledDate   kernel.Date
	PlannedQuantity int
	Priority        int
	RunOrder        int
	Status          string
	ItemStatus      string
}

type ListScheduleQueryHandler struct {
	db *gorm.DB
}

func NewListScheduleQueryHandler(db *gorm.DB) ListScheduleQueryHandler {
	return ListScheduleQueryHandler{db: db}
}

// Handle orders entries by day, zone and station, then highest priority and
// run order first, which is the sequence the floor works them in.
func (h ListScheduleQueryHandler) Handle(ctx context.Context, query ListScheduleQuery) ([]ScheduleEntryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			se.id,
			se.order_id,
			se.order_item_id,
			COALESCE(o.number, ''),
			COALESCE(oi.product_name, ''),
			se.zone,
			COALESCE(se.station, ''),
			se.scheduled_date,
			se.planned_quantity,
			se.priority,
			se.run_order,
			se.status,
			COALESCE(oi.status, '')
		FROM production_schedule se
		LEFT JOIN order_items oi ON oi.id = se.order_item_id
		LEFT JOIN orders o ON o.id = se.order_id
		WHERE se.scheduled_date BETWEEN ?::date AND ?::date
			AND se.status <> 'cancelled'
			AND (?::text = '' OR se.station = ?)
		ORDER BY se.scheduled_date, se.zone, se.station, se.priority DESC, se.run_order
	`, query.from.String(), query.to.String(), query.station, query.station).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]ScheduleEntryResponse, 0)
	for rows.Next() {
		var (
			resp                ScheduleEntryResponse
			id, orderID, itemID uuid.UUID
			scheduled           time.Time
		)
		err = rows.Scan(
			&id,
			&orderID,
			&itemID,
			&resp.OrderNumber,
			&resp.ProductName,
			&resp.Zone,
			&resp.Station,
			&scheduled,
			&resp.PlannedQuantity,
			&resp.Priority,
			&resp.RunOrder,
			&resp.Status,
			&resp.ItemStatus,
		)
		if err != nil {
			return nil, err
		}

		for _, pair := range []struct {
			dst *kernel.UUID
			raw uuid.UUID
		}{{&resp.ID, id}, {&resp.OrderID, orderID}, {&resp.OrderItemID, itemID}} {
			if *pair.dst, err = kernel.UUIDFromBytes(pair.raw[:]); err != nil {
				return nil, err
			}
		}
		resp.ScheduledDate = kernel.NewDate(scheduled)
		entries = append(entries, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}
