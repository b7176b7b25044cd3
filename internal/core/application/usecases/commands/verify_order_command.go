package commands

import (
	"errors"

	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/pkg/guard"
)

var ErrVerifyOrderCommandIsNotConstructed = errors.New(
	"VerifyOrderCommand must be created via NewVerifyOrderCommand constructor",
)

// VerifyOrderCommand acknowledges a tendered order on behalf of an office user.
type VerifyOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   kernel.Actor

	guard guard.ConstructorGuard
}

func NewVerifyOrderCommand(orderID kernel.UUID, actor kernel.Actor) (VerifyOrderCommand, error) {
	if err := errors.Join(orderID.Validate(), actor.Validate()); err != nil {
		return VerifyOrderCommand{}, err
	}
	return VerifyOrderCommand{orderID: orderID, actor: actor, guard: guard.NewConstructorGuard()}, nil
}

func (c VerifyOrderCommand) Validate() error {
	return c.guard.Validate(ErrVerifyOrderCommandIsNotConstructed)
}

func (c VerifyOrderCommand) OrderID() kernel.UUID { return c.orderID }
func (c VerifyOrderCommand) Actor() kernel.Actor { return c.actor }
