package commands

import (
	"errors"

	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/core/domain/model/order"
	"manufacturing/internal/pkg/guard"
)

var (
	ErrSetItemStatusCommandIsNotConstructed = errors.New(
		"SetItemStatusCommand must be created via NewSetItemStatusCommand constructor",
	)
	ErrSetOrderStatusCommandIsNotConstructed = errors.New(
		"SetOrderStatusCommand must be created via NewSetOrderStatusCommand constructor",
	)
)

// SetItemStatusCommand is the generic item status update. status is a wire
// code such as "P" or "F".
type SetItemStatusCommand struct { //nolint:recvcheck //using for validation
	itemID kernel.UUID
	status order.ItemStatus
	actor  kernel.Actor

	guard guard.ConstructorGuard
}

func NewSetItemStatusCommand(itemID kernel.UUID, status string, actor kernel.Actor) (SetItemStatusCommand, error) {
	target, err := order.ParseItemStatus(status)
	if err = errors.Join(itemID.Validate(), err, actor.Validate()); err != nil {
		return SetItemStatusCommand{}, err
	}
	return SetItemStatusCommand{itemID: itemID, status: target, actor: actor, guard: guard.NewConstructorGuard()}, nil
}

func (c SetItemStatusCommand) Validate() error {
	return c.guard.Validate(ErrSetItemStatusCommandIsNotConstructed)
}

func (c SetItemStatusCommand) ItemID() kernel.UUID { return c.itemID }
func (c SetItemStatusCommand) Status() order.ItemStatus { return c.status }
func (c SetItemStatusCommand) Actor() kernel.Actor { return c.actor }

// SetOrderStatusCommand is the generic order status update.
type SetOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	status  order.OrderStatus
	actor   kernel.Actor

	guard guard.ConstructorGuard
}

func NewSetOrderStatusCommand(orderID kernel.UUID, status string, actor kernel.Actor) (SetOrderStatusCommand, error) {
	target, err := order.ParseOrderStatus(status)
	if err = errors.Join(orderID.Validate(), err, actor.Validate()); err != nil {
		return SetOrderStatusCommand{}, err
	}
	return SetOrderStatusCommand{orderID: orderID, status: target, actor: actor, guard: guard.NewConstructorGuard()}, nil
}

func (c SetOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrSetOrderStatusCommandIsNotConstructed)
}

func (c SetOrderStatusCommand) OrderID() kernel.UUID { return c.orderID }
func (c SetOrderStatusCommand) Status() order.OrderStatus { return c.status }
func (c SetOrderStatusCommand) Actor() kernel.Actor { return c.actor }
