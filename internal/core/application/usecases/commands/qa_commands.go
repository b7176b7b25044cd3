package commands

import (
	"errors"
	"fmt"

	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/core/domain/model/qa"
	"manufacturing/internal/pkg/errs"
	"manufacturing/internal/pkg/guard"
)

var (
	ErrApproveQAInspectionCommandIsNotConstructed = errors.New(
		"ApproveQAInspectionCommand must be created via NewApproveQAInspectionCommand constructor",
	)
	ErrRecordQAInspectionCommandIsNotConstructed = errors.New(
		"RecordQAInspectionCommand must be created via NewRecordQAInspectionCommand constructor",
	)
)

type ApproveQAInspectionCommand struct { //nolint:recvcheck //using for validation
	inspectionID kernel.UUID
	actor        kernel.Actor

	guard guard.ConstructorGuard
}

func NewApproveQAInspectionCommand(inspectionID kernel.UUID, actor kernel.Actor) (ApproveQAInspectionCommand, error) {
	if err := errors.Join(inspectionID.Validate(), actor.Validate()); err != nil {
		return ApproveQAInspectionCommand{}, err
	}
	return ApproveQAInspectionCommand{inspectionID: inspectionID, actor: actor, guard: guard.NewConstructorGuard()}, nil
}

func (c ApproveQAInspectionCommand) Validate() error {
	return c.guard.Validate(ErrApproveQAInspectionCommandIsNotConstructed)
}

func (c ApproveQAInspectionCommand) InspectionID() kernel.UUID { return c.inspectionID }
func (c ApproveQAInspectionCommand) Actor() kernel.Actor { return c.actor }

// DefectInput is one defect row of a recorded inspection.
type DefectInput struct {
	Type        string
	Quantity    int
	Description string
}

// RecordQAInspectionParams describe a manual inspection. An empty type means batch.
type RecordQAInspectionParams struct {
	InspectionID kernel.UUID
	OrderItemID  *kernel.UUID
	SessionID    *kernel.UUID
	Type         string
	BatchSize    int
	Passed       bool
	Notes        string
	Defects      []DefectInput
	Actor        kernel.Actor
}

// RecordQAInspectionCommand stores an inspection already carried out. It
// never changes item status.
type RecordQAInspectionCommand struct { //nolint:recvcheck //using for validation
	params         RecordQAInspectionParams
	inspectionType qa.Type

	guard guard.ConstructorGuard
}

func NewRecordQAInspectionCommand(p RecordQAInspectionParams) (RecordQAInspectionCommand, error) {
	var errList []error
	errList = append(errList, p.InspectionID.Validate(), p.Actor.Validate())
	if p.OrderItemID != nil {
		errList = append(errList, p.OrderItemID.Validate())
	}
	if p.SessionID != nil {
		errList = append(errList, p.SessionID.Validate())
	}
	inspectionType, err := qa.ParseType(p.Type)
	errList = append(errList, err)
	if p.BatchSize < 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("batch size", fmt.Errorf("%d is negative", p.BatchSize)))
	}
	for i, d := range p.Defects {
		if _, err := qa.ParseDefectType(d.Type); err != nil {
			errList = append(errList, fmt.Errorf("defect %d: %w", i, err))
		}
		if d.Quantity <= 0 {
			errList = append(errList, fmt.Errorf("defect %d: %w", i,
				errs.NewValueIsInvalidErrorWithCause("defect quantity", fmt.Errorf("%d is not greater than 0", d.Quantity))))
		}
	}
	if err := errors.Join(errList...); err != nil {
		return RecordQAInspectionCommand{}, err
	}

	p.Defects = append([]DefectInput(nil), p.Defects...)
	return RecordQAInspectionCommand{params: p, inspectionType: inspectionType, guard: guard.NewConstructorGuard()}, nil
}

func (c RecordQAInspectionCommand) Validate() error {
	return c.guard.Validate(ErrRecordQAInspectionCommandIsNotConstructed)
}

func (c RecordQAInspectionCommand) InspectionID() kernel.UUID { return c.params.InspectionID }
func (c RecordQAInspectionCommand) OrderItemID() *kernel.UUID { return c.params.OrderItemID }
func (c RecordQAInspectionCommand) SessionID() *kernel.UUID { return c.params.SessionID }
func (c RecordQAInspectionCommand) Type() qa.Type { return c.inspectionType }
func (c RecordQAInspectionCommand) BatchSize() int { return c.params.BatchSize }
func (c RecordQAInspectionCommand) Passed() bool { return c.params.Passed }
func (c RecordQAInspectionCommand) Notes() string { return c.params.Notes }
func (c RecordQAInspectionCommand) Actor() kernel.Actor { return c.params.Actor }
func (c RecordQAInspectionCommand) Defects() []DefectInput {
	return append([]DefectInput(nil), c.params.Defects...)
}
