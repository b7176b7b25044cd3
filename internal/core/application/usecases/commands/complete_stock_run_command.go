package commands

import (
	"context"
	"errors"

	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/core/domain/model/order"
	"manufacturing/internal/pkg/guard"
)

var ErrCompleteStockRunCommandIsNotConstructed = errors.New(
	"CompleteStockRunCommand must be created via NewCompleteStockRunCommand constructor",
)

// CompleteStockRunCommand closes a stock-run order into inventory.
type CompleteStockRunCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewCompleteStockRunCommand(orderID kernel.UUID) (CompleteStockRunCommand, error) {
	if err := orderID.Validate(); err != nil {
		return CompleteStockRunCommand{}, err
	}
	return CompleteStockRunCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (c CompleteStockRunCommand) Validate() error {
	return c.guard.Validate(ErrCompleteStockRunCommandIsNotConstructed)
}

func (c CompleteStockRunCommand) OrderID() kernel.UUID { return c.orderID }

// CompleteStockRunCommandHandler finishes every item of a stock run and adds
// the produced units to inventory in the same transaction.
type CompleteStockRunCommandHandler struct {
	uowFactory StockUoWFactory
}

func NewCompleteStockRunCommandHandler(uowFactory StockUoWFactory) CompleteStockRunCommandHandler {
	return CompleteStockRunCommandHandler{uowFactory: uowFactory}
}

// Handle returns the inventory receipts that were booked.
func (h *CompleteStockRunCommandHandler) Handle(ctx context.Context, cmd CompleteStockRunCommand) ([]order.StockReceipt, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}
	receipts, err := o.CompleteStockRun()
	if err != nil {
		return nil, err
	}
	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	inventory := uow.InventoryRepository()
	for _, r := range receipts {
		if err = inventory.AddUnits(ctx, r.SKU, r.Quantity); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return receipts, nil
}
