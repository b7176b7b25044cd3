package schedule

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/pkg/errs"
	"manufacturing/internal/pkg/guard"
)

var ErrEntryIsNotConstructed = errors.New("Entry must be created via NewEntry or RestoreEntry")

// Status is the state of a schedule entry. Cancelled entries no longer count
// towards station capacity.
type Status string

const (
	StatusPlanned    Status = "planned"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPlanned, StatusInProgress, StatusCompleted, StatusCancelled:
		return Status(s), nil
	}
	return "", errs.NewValueIsInvalidErrorWithCause("schedule status",
		fmt.Errorf("%q is not one of planned, in_progress, completed, cancelled", s))
}

// Entry plans a quantity of an order item on a station for a day.
type Entry struct {
	id              kernel.UUID
	orderID         kernel.UUID
	orderItemID     kernel.UUID
	zone            string
	station         string
	scheduledDate   kernel.Date
	plannedQuantity int
	priority        int
	runOrder        int
	status          Status
	notes           string
	createdBy       kernel.UUID
	createdAt       time.Time

	guard guard.ConstructorGuard
}

// NewEntryParams describe a planned unit of work.
type NewEntryParams struct {
	ID              kernel.UUID
	OrderID         kernel.UUID
	OrderItemID     kernel.UUID
	Zone            string
	Station         string
	ScheduledDate   kernel.Date
	PlannedQuantity int
	Priority        int
	RunOrder        int
	Notes           string
	CreatedBy       kernel.UUID
	CreatedAt       time.Time
}

func NewEntry(p NewEntryParams) (*Entry, error) {
	var errList []error
	errList = append(errList,
		p.ID.Validate(), p.OrderID.Validate(), p.OrderItemID.Validate(),
		p.ScheduledDate.Validate(), p.CreatedBy.Validate(),
	)
	if strings.TrimSpace(p.Zone) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("zone"))
	}
	if p.PlannedQuantity <= 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("planned quantity",
			fmt.Errorf("%d is not greater than 0", p.PlannedQuantity)))
	}
	if err := errors.Join(errList...); err != nil {
		return nil, err
	}

	return &Entry{
		id:              p.ID,
		orderID:         p.OrderID,
		orderItemID:     p.OrderItemID,
		zone:            strings.TrimSpace(p.Zone),
		station:         strings.TrimSpace(p.Station),
		scheduledDate:   p.ScheduledDate,
		plannedQuantity: p.PlannedQuantity,
		priority:        p.Priority,
		runOrder:        p.RunOrder,
		status:          StatusPlanned,
		notes:           p.Notes,
		createdBy:       p.CreatedBy,
		createdAt:       p.CreatedAt,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

// EntryRecord is the persisted state of an entry.
type EntryRecord struct {
	NewEntryParams
	Status Status
}

func RestoreEntry(rec EntryRecord) (*Entry, error) {
	if _, err := ParseStatus(string(rec.Status)); err != nil {
		return nil, err
	}
	e, err := NewEntry(rec.NewEntryParams)
	if err != nil {
		return nil, err
	}
	e.status = rec.Status
	return e, nil
}

func (e *Entry) Validate() error {
	if e == nil {
		return ErrEntryIsNotConstructed
	}
	return e.guard.Validate(ErrEntryIsNotConstructed)
}

func (e *Entry) ID() kernel.UUID { return e.id }
func (e *Entry) OrderID() kernel.UUID { return e.orderID }
func (e *Entry) OrderItemID() kernel.UUID { return e.orderItemID }
func (e *Entry) Zone() string { return e.zone }
func (e *Entry) Station() string { return e.station }
func (e *Entry) ScheduledDate() kernel.Date { return e.scheduledDate }
func (e *Entry) PlannedQuantity() int { return e.plannedQuantity }
func (e *Entry) Priority() int { return e.priority }
func (e *Entry) RunOrder() int { return e.runOrder }
func (e *Entry) Status() Status { return e.status }
func (e *Entry) Notes() string { return e.notes }
func (e *Entry) CreatedBy() kernel.UUID { return e.createdBy }
func (e *Entry) CreatedAt() time.Time { return e.createdAt }

// Cancel withdraws a planned or in-progress entry.
func (e *Entry) Cancel() error {
	switch e.status {
	case StatusCancelled:
		return nil
	case StatusCompleted:
		return errs.NewTransitionIsForbiddenError("schedule entry", string(e.status), string(StatusCancelled),
			"completed entries cannot be cancelled")
	}
	e.status = StatusCancelled
	return nil
}
