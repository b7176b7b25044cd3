package commands

import (
	"errors"

	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/pkg/guard"
)

var (
	ErrDispatchOrderCommandIsNotConstructed = errors.New(
		"DispatchOrderCommand must be created via NewDispatchOrderCommand constructor",
	)
	ErrRecordDeliveryCommandIsNotConstructed = errors.New(
		"RecordDeliveryCommand must be created via NewRecordDeliveryCommand constructor",
	)
	ErrSyncOrderStatusCommandIsNotConstructed = errors.New(
		"SyncOrderStatusCommand must be created via NewSyncOrderStatusCommand constructor",
	)
)

// DispatchOrderCommand ships the finished items of an order.
type DispatchOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewDispatchOrderCommand(orderID kernel.UUID) (DispatchOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return DispatchOrderCommand{}, err
	}
	return DispatchOrderCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (c DispatchOrderCommand) Validate() error {
	return c.guard.Validate(ErrDispatchOrderCommandIsNotConstructed)
}

func (c DispatchOrderCommand) OrderID() kernel.UUID { return c.orderID }

// RecordDeliveryCommand closes a dispatched order once the driver or the
// yard confirms the hand-over.
type RecordDeliveryCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewRecordDeliveryCommand(orderID kernel.UUID) (RecordDeliveryCommand, error) {
	if err := orderID.Validate(); err != nil {
		return RecordDeliveryCommand{}, err
	}
	return RecordDeliveryCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (c RecordDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrRecordDeliveryCommandIsNotConstructed)
}

func (c RecordDeliveryCommand) OrderID() kernel.UUID { return c.orderID }

// SyncOrderStatusCommand recomputes an order's status and progress from its
// items. It is safe to send any number of times.
type SyncOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewSyncOrderStatusCommand(orderID kernel.UUID) (SyncOrderStatusCommand, error) {
	if err := orderID.Validate(); err != nil {
		return SyncOrderStatusCommand{}, err
	}
	return SyncOrderStatusCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (c SyncOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrSyncOrderStatusCommandIsNotConstructed)
}

func (c SyncOrderStatusCommand) OrderID() kernel.UUID { return c.orderID }
