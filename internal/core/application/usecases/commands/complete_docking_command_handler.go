package commands

import (
	"context"
	"time"
)

// CompleteOrderDockingCommandHandler is the batch docking path, the only way
// besides CompleteItemDockingCommandHandler for an item to reach R.
type CompleteOrderDockingCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewCompleteOrderDockingCommandHandler(uowFactory OrderUoWFactory) CompleteOrderDockingCommandHandler {
	return CompleteOrderDockingCommandHandler{uowFactory: uowFactory}
}

// Handle returns the number of items released to R.
func (h *CompleteOrderDockingCommandHandler) Handle(ctx context.Context, cmd CompleteOrderDockingCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	o, err := repo.Get(ctx, cmd.OrderID())
	if err != nil {
		return 0, err
	}
	released, err := o.CompleteDocking(cmd.Actor(), time.Now().UTC())
	if err != nil {
		return 0, err
	}
	if err = repo.Update(ctx, o); err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}
	return released, nil
}

type CompleteItemDockingCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewCompleteItemDockingCommandHandler(uowFactory OrderUoWFactory) CompleteItemDockingCommandHandler {
	return CompleteItemDockingCommandHandler{uowFactory: uowFactory}
}

func (h *CompleteItemDockingCommandHandler) Handle(ctx context.Context, cmd CompleteItemDockingCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	o, err := repo.GetByItemID(ctx, cmd.ItemID())
	if err != nil {
		return err
	}
	if err = o.CompleteItemDocking(cmd.ItemID(), cmd.Actor(), time.Now().UTC()); err != nil {
		return err
	}
	if err = repo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
