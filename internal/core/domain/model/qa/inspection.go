package qa

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/pkg/errs"
	"manufacturing/internal/pkg/guard"
)

var ErrInspectionIsNotConstructed = errors.New("Inspection must be created via NewInspection, NewPendingInspection or RestoreInspection")

// Type is the kind of check an inspection records.
type Type string

const (
	TypeBatch          Type = "batch"
	TypeSetup          Type = "setup"
	TypeRandomAudit    Type = "random_audit"
	TypePostProduction Type = "post_production"
	TypeFinal          Type = "final"
)

var types = []Type{TypeBatch, TypeSetup, TypeRandomAudit, TypePostProduction, TypeFinal}

func ParseType(s string) (Type, error) {
	if s == "" {
		return TypeBatch, nil
	}
	t := Type(s)
	if !slices.Contains(types, t) {
		return "", errs.NewValueIsInvalidErrorWithCause("inspection type", fmt.Errorf("%q must be one of %v", s, types))
	}
	return t, nil
}

// Result is the outcome of an inspection. Pending inspections are waiting on
// a QA lead.
type Result string

const (
	ResultPending Result = "pending"
	ResultPassed  Result = "passed"
	ResultFailed  Result = "failed"
)

func ParseResult(s string) (Result, error) {
	switch Result(s) {
	case ResultPending, ResultPassed, ResultFailed:
		return Result(s), nil
	}
	return "", errs.NewValueIsInvalidErrorWithCause("inspection result", fmt.Errorf("%q is not pending, passed or failed", s))
}

// Inspection is a QA record against an order item and, optionally, the
// session that produced it. Approving an inspection is what releases an item
// from P to F.
type Inspection struct {
	id             kernel.UUID
	orderItemID    *kernel.UUID
	sessionID      *kernel.UUID
	inspectionType Type
	batchSize      int
	result         Result
	inspectorID    *kernel.UUID
	inspectedAt    *time.Time
	notes          string
	createdAt      time.Time
	defects        []Defect

	guard guard.ConstructorGuard
}

// NewPendingInspection opens the final inspection that gates an item's
// release after production.
func NewPendingInspection(id, orderItemID kernel.UUID, sessionID *kernel.UUID, batchSize int, notes string, createdAt time.Time) (*Inspection, error) {
	if err := errors.Join(id.Validate(), orderItemID.Validate()); err != nil {
		return nil, err
	}
	if batchSize < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("batch size", fmt.Errorf("%d is negative", batchSize))
	}

	return &Inspection{
		id:             id,
		orderItemID:    &orderItemID,
		sessionID:      sessionID,
		inspectionType: TypeFinal,
		batchSize:      batchSize,
		result:         ResultPending,
		notes:          notes,
		createdAt:      createdAt,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// NewInspectionParams describe a manually recorded inspection.
type NewInspectionParams struct {
	ID          kernel.UUID
	OrderItemID *kernel.UUID
	SessionID   *kernel.UUID
	Type        Type
	BatchSize   int
	Passed      bool
	InspectorID kernel.UUID
	Notes       string
	InspectedAt time.Time
}

// NewInspection records a completed inspection; an empty type means batch.
// It never changes item status.
func NewInspection(p NewInspectionParams) (*Inspection, error) {
	var errList []error
	errList = append(errList, p.ID.Validate(), p.InspectorID.Validate())
	inspectionType, typeErr := ParseType(string(p.Type))
	errList = append(errList, typeErr)
	if p.BatchSize < 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("batch size", fmt.Errorf("%d is negative", p.BatchSize)))
	}
	if err := errors.Join(errList...); err != nil {
		return nil, err
	}

	result := ResultFailed
	if p.Passed {
		result = ResultPassed
	}
	inspector, at := p.InspectorID, p.InspectedAt
	return &Inspection{
		id:             p.ID,
		orderItemID:    p.OrderItemID,
		sessionID:      p.SessionID,
		inspectionType: inspectionType,
		batchSize:      p.BatchSize,
		result:         result,
		inspectorID:    &inspector,
		inspectedAt:    &at,
		notes:          strings.TrimSpace(p.Notes),
		createdAt:      p.InspectedAt,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// InspectionRecord is the persisted state of an inspection.
type InspectionRecord struct {
	ID          kernel.UUID
	OrderItemID *kernel.UUID
	SessionID   *kernel.UUID
	Type        Type
	BatchSize   int
	Result      Result
	InspectorID *kernel.UUID
	InspectedAt *time.Time
	Notes       string
	CreatedAt   time.Time
}

func RestoreInspection(rec InspectionRecord, defects []Defect) (*Inspection, error) {
	if err := rec.ID.Validate(); err != nil {
		return nil, err
	}
	if _, err := ParseType(string(rec.Type)); err != nil {
		return nil, err
	}
	if _, err := ParseResult(string(rec.Result)); err != nil {
		return nil, err
	}

	return &Inspection{
		id:             rec.ID,
		orderItemID:    rec.OrderItemID,
		sessionID:      rec.SessionID,
		inspectionType: rec.Type,
		batchSize:      rec.BatchSize,
		result:         rec.Result,
		inspectorID:    rec.InspectorID,
		inspectedAt:    rec.InspectedAt,
		notes:          rec.Notes,
		createdAt:      rec.CreatedAt,
		defects:        defects,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (i *Inspection) Validate() error {
	if i == nil {
		return ErrInspectionIsNotConstructed
	}
	return i.guard.Validate(ErrInspectionIsNotConstructed)
}

func (i *Inspection) ID() kernel.UUID { return i.id }
func (i *Inspection) OrderItemID() *kernel.UUID { return i.orderItemID }
func (i *Inspection) SessionID() *kernel.UUID { return i.sessionID }
func (i *Inspection) Type() Type { return i.inspectionType }
func (i *Inspection) BatchSize() int { return i.batchSize }
func (i *Inspection) Result() Result { return i.result }
func (i *Inspection) IsPending() bool { return i.result == ResultPending }
func (i *Inspection) InspectorID() *kernel.UUID { return i.inspectorID }
func (i *Inspection) InspectedAt() *time.Time { return i.inspectedAt }
func (i *Inspection) Notes() string { return i.notes }
func (i *Inspection) CreatedAt() time.Time { return i.createdAt }
func (i *Inspection) Defects() []Defect { return slices.Clone(i.defects) }

// Approve passes the inspection on behalf of a QA-approving role. Approving
// an inspection that already passed changes nothing and reports false.
func (i *Inspection) Approve(actor kernel.Actor, now time.Time) (bool, error) {
	if err := actor.Validate(); err != nil {
		return false, err
	}
	if err := actor.Require(actor.CanApproveQA(), "approve a QA inspection"); err != nil {
		return false, err
	}
	if i.result == ResultPassed {
		return false, nil
	}

	inspector := actor.ID()
	i.result = ResultPassed
	i.inspectorID = &inspector
	i.inspectedAt = &now
	return true, nil
}

// AddDefect records units found defective during the inspection.
func (i *Inspection) AddDefect(id kernel.UUID, defectType DefectType, quantity int, description string, at time.Time) (Defect, error) {
	d, err := newDefect(id, defectType, quantity, description, at)
	if err != nil {
		return Defect{}, err
	}
	i.defects = append(i.defects, d)
	return d, nil
}
