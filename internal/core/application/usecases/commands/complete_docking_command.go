package commands

import (
	"errors"

	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/pkg/guard"
)

var (
	ErrCompleteOrderDockingCommandIsNotConstructed = errors.New(
		"CompleteOrderDockingCommand must be created via NewCompleteOrderDockingCommand constructor",
	)
	ErrCompleteItemDockingCommandIsNotConstructed = errors.New(
		"CompleteItemDockingCommand must be created via NewCompleteItemDockingCommand constructor",
	)
)

// CompleteOrderDockingCommand releases every cut-list item of an order to ready.
type CompleteOrderDockingCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   kernel.Actor

	guard guard.ConstructorGuard
}

func NewCompleteOrderDockingCommand(orderID kernel.UUID, actor kernel.Actor) (CompleteOrderDockingCommand, error) {
	if err := errors.Join(orderID.Validate(), actor.Validate()); err != nil {
		return CompleteOrderDockingCommand{}, err
	}
	return CompleteOrderDockingCommand{orderID: orderID, actor: actor, guard: guard.NewConstructorGuard()}, nil
}

func (c CompleteOrderDockingCommand) Validate() error {
	return c.guard.Validate(ErrCompleteOrderDockingCommandIsNotConstructed)
}

func (c CompleteOrderDockingCommand) OrderID() kernel.UUID { return c.orderID }
func (c CompleteOrderDockingCommand) Actor() kernel.Actor { return c.actor }

// CompleteItemDockingCommand releases a single cut-list item to ready.
type CompleteItemDockingCommand struct { //nolint:recvcheck //using for validation
	itemID kernel.UUID
	actor  kernel.Actor

	guard guard.ConstructorGuard
}

func NewCompleteItemDockingCommand(itemID kernel.UUID, actor kernel.Actor) (CompleteItemDockingCommand, error) {
	if err := errors.Join(itemID.Validate(), actor.Validate()); err != nil {
		return CompleteItemDockingCommand{}, err
	}
	return CompleteItemDockingCommand{itemID: itemID, actor: actor, guard: guard.NewConstructorGuard()}, nil
}

func (c CompleteItemDockingCommand) Validate() error {
	return c.guard.Validate(ErrCompleteItemDockingCommandIsNotConstructed)
}

func (c CompleteItemDockingCommand) ItemID() kernel.UUID { return c.itemID }
func (c CompleteItemDockingCommand) Actor() kernel.Actor { return c.actor }
