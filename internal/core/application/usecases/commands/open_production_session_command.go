package commands

import (
	"errors"
	"fmt"
	"strings"

	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/pkg/errs"
	"manufacturing/internal/pkg/guard"
)

var ErrOpenProductionSessionCommandIsNotConstructed = errors.New(
	"OpenProductionSessionCommand must be created via NewOpenProductionSessionCommand constructor",
)

// OpenProductionSessionCommand starts work at a station, optionally against
// an order item. A zero target means the item's ordered quantity.
type OpenProductionSessionCommand struct { //nolint:recvcheck //using for validation
	params OpenProductionSessionParams

	guard guard.ConstructorGuard
}

type OpenProductionSessionParams struct {
	SessionID      kernel.UUID
	OrderItemID    *kernel.UUID
	Zone           string
	Station        string
	TargetQuantity int
	IsSubAssembly  bool
	Notes          string
	Actor          kernel.Actor
}

func NewOpenProductionSessionCommand(p OpenProductionSessionParams) (OpenProductionSessionCommand, error) {
	var errList []error
	errList = append(errList, p.SessionID.Validate(), p.Actor.Validate())
	if p.OrderItemID != nil {
		errList = append(errList, p.OrderItemID.Validate())
	}
	p.Zone = strings.TrimSpace(p.Zone)
	if p.Zone == "" {
		errList = append(errList, errs.NewValueIsRequiredError("zone"))
	}
	p.Station = strings.TrimSpace(p.Station)
	if p.Station == "" {
		errList = append(errList, errs.NewValueIsRequiredError("station"))
	}
	if p.TargetQuantity < 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("target quantity",
			fmt.Errorf("%d is negative", p.TargetQuantity)))
	}
	if err := errors.Join(errList...); err != nil {
		return OpenProductionSessionCommand{}, err
	}

	return OpenProductionSessionCommand{params: p, guard: guard.NewConstructorGuard()}, nil
}

func (c OpenProductionSessionCommand) Validate() error {
	return c.guard.Validate(ErrOpenProductionSessionCommandIsNotConstructed)
}

func (c OpenProductionSessionCommand) SessionID() kernel.UUID { return c.params.SessionID }
func (c OpenProductionSessionCommand) OrderItemID() *kernel.UUID { return c.params.OrderItemID }
func (c OpenProductionSessionCommand) Zone() string { return c.params.Zone }
func (c OpenProductionSessionCommand) Station() string { return c.params.Station }
func (c OpenProductionSessionCommand) TargetQuantity() int { return c.params.TargetQuantity }
func (c OpenProductionSessionCommand) IsSubAssembly() bool { return c.params.IsSubAssembly }
func (c OpenProductionSessionCommand) Notes() string { return c.params.Notes }
func (c OpenProductionSessionCommand) Actor() kernel.Actor { return c.params.Actor }
