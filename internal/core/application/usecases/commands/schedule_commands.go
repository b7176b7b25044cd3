package commands

import (
	"errors"
	"fmt"
	"strings"

	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/pkg/errs"
	"manufacturing/internal/pkg/guard"
)

var (
	ErrCreateScheduleEntryCommandIsNotConstructed = errors.New(
		"CreateScheduleEntryCommand must be created via NewCreateScheduleEntryCommand constructor",
	)
	ErrCancelScheduleEntryCommandIsNotConstructed = errors.New(
		"CancelScheduleEntryCommand must be created via NewCancelScheduleEntryCommand constructor",
	)
	ErrSetStationCapacityCommandIsNotConstructed = errors.New(
		"SetStationCapacityCommand must be created via NewSetStationCapacityCommand constructor",
	)
)

// CreateScheduleEntryParams plan an item on a station for a day. A zero
// planned quantity means the item's ordered quantity.
type CreateScheduleEntryParams struct {
	EntryID         kernel.UUID
	OrderItemID     kernel.UUID
	Zone            string
	Station         string
	ScheduledDate   kernel.Date
	PlannedQuantity int
	Priority        int
	RunOrder        int
	Notes           string
	Actor           kernel.Actor
}

type CreateScheduleEntryCommand struct { //nolint:recvcheck //using for validation
	params CreateScheduleEntryParams

	guard guard.ConstructorGuard
}

func NewCreateScheduleEntryCommand(p CreateScheduleEntryParams) (CreateScheduleEntryCommand, error) {
	var errList []error
	errList = append(errList, p.EntryID.Validate(), p.OrderItemID.Validate(), p.ScheduledDate.Validate(), p.Actor.Validate())
	p.Zone = strings.TrimSpace(p.Zone)
	if p.Zone == "" {
		errList = append(errList, errs.NewValueIsRequiredError("zone"))
	}
	p.Station = strings.TrimSpace(p.Station)
	if p.PlannedQuantity < 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("planned quantity",
			fmt.Errorf("%d is negative", p.PlannedQuantity)))
	}
	if err := errors.Join(errList...); err != nil {
		return CreateScheduleEntryCommand{}, err
	}
	return CreateScheduleEntryCommand{params: p, guard: guard.NewConstructorGuard()}, nil
}

func (c CreateScheduleEntryCommand) Validate() error {
	return c.guard.Validate(ErrCreateScheduleEntryCommandIsNotConstructed)
}

func (c CreateScheduleEntryCommand) Params() CreateScheduleEntryParams { return c.params }

type CancelScheduleEntryCommand struct { //nolint:recvcheck //using for validation
	entryID kernel.UUID

	guard guard.ConstructorGuard
}

func NewCancelScheduleEntryCommand(entryID kernel.UUID) (CancelScheduleEntryCommand, error) {
	if err := entryID.Validate(); err != nil {
		return CancelScheduleEntryCommand{}, err
	}
	return CancelScheduleEntryCommand{entryID: entryID, guard: guard.NewConstructorGuard()}, nil
}

func (c CancelScheduleEntryCommand) Validate() error {
	return c.guard.Validate(ErrCancelScheduleEntryCommandIsNotConstructed)
}

func (c CancelScheduleEntryCommand) EntryID() kernel.UUID { return c.entryID }

// SetStationCapacityCommand configures a station's daily unit limit.
type SetStationCapacityCommand struct { //nolint:recvcheck //using for validation
	station        string
	maxUnitsPerDay int

	guard guard.ConstructorGuard
}

func NewSetStationCapacityCommand(station string, maxUnitsPerDay int) (SetStationCapacityCommand, error) {
	var errList []error
	station = strings.TrimSpace(station)
	if station == "" {
		errList = append(errList, errs.NewValueIsRequiredError("station"))
	}
	if maxUnitsPerDay <= 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("max units per day",
			fmt.Errorf("%d is not greater than 0", maxUnitsPerDay)))
	}
	if err := errors.Join(errList...); err != nil {
		return SetStationCapacityCommand{}, err
	}
	return SetStationCapacityCommand{station: station, maxUnitsPerDay: maxUnitsPerDay, guard: guard.NewConstructorGuard()}, nil
}

func (c SetStationCapacityCommand) Validate() error {
	return c.guard.Validate(ErrSetStationCapacityCommandIsNotConstructed)
}

func (c SetStationCapacityCommand) Station() string { return c.station }
func (c SetStationCapacityCommand) MaxUnitsPerDay() int { return c.maxUnitsPerDay }
