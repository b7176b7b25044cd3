package commands

import (
	"errors"
	"fmt"

	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/pkg/errs"
	"manufacturing/internal/pkg/guard"
)

var ErrCompleteProductionSessionCommandIsNotConstructed = errors.New(
	"CompleteProductionSessionCommand must be created via NewCompleteProductionSessionCommand constructor",
)

// CompleteProductionSessionCommand closes a session. finalQuantity, when set,
// replaces the session's counted total. force asks for QA even though the
// item target is not met and needs a force-complete role.
type CompleteProductionSessionCommand struct { //nolint:recvcheck //using for validation
	sessionID     kernel.UUID
	finalQuantity *int
	force         bool
	actor         kernel.Actor

	guard guard.ConstructorGuard
}

func NewCompleteProductionSessionCommand(
	sessionID kernel.UUID,
	finalQuantity *int,
	force bool,
	actor kernel.Actor,
) (CompleteProductionSessionCommand, error) {
	var errList []error
	errList = append(errList, sessionID.Validate(), actor.Validate())
	if finalQuantity != nil && *finalQuantity < 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("produced quantity",
			fmt.Errorf("%d is negative", *finalQuantity)))
	}
	if err := errors.Join(errList...); err != nil {
		return CompleteProductionSessionCommand{}, err
	}

	return CompleteProductionSessionCommand{
		sessionID:     sessionID,
		finalQuantity: finalQuantity,
		force:         force,
		actor:         actor,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (c CompleteProductionSessionCommand) Validate() error {
	return c.guard.Validate(ErrCompleteProductionSessionCommandIsNotConstructed)
}

func (c CompleteProductionSessionCommand) SessionID() kernel.UUID { return c.sessionID }
func (c CompleteProductionSessionCommand) FinalQuantity() *int { return c.finalQuantity }
func (c CompleteProductionSessionCommand) Force() bool { return c.force }
func (c CompleteProductionSessionCommand) Actor() kernel.Actor { return c.actor }
