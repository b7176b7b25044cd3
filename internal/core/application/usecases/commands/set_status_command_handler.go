package commands

import (
	"context"
	"time"

	"manufacturing/internal/core/domain/model/order"
)

// SetItemStatusCommandHandler never releases C to R; the order rejects that
// move and names docking completion instead.
type SetItemStatusCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewSetItemStatusCommandHandler(uowFactory OrderUoWFactory) SetItemStatusCommandHandler {
	return SetItemStatusCommandHandler{uowFactory: uowFactory}
}

func (h *SetItemStatusCommandHandler) Handle(ctx context.Context, cmd SetItemStatusCommand) error {
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
	if err = o.SetItemStatus(cmd.ItemID(), cmd.Status(), cmd.Actor()); err != nil {
		return err
	}
	if err = repo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// SetOrderStatusCommandHandler applies an order-level target to the items.
// Reaching dispatched this way enqueues the same notice as DispatchOrder.
type SetOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewSetOrderStatusCommandHandler(uowFactory OrderUoWFactory) SetOrderStatusCommandHandler {
	return SetOrderStatusCommandHandler{uowFactory: uowFactory}
}

func (h *SetOrderStatusCommandHandler) Handle(ctx context.Context, cmd SetOrderStatusCommand) error {
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
	o, err := repo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	before := o.Status()
	if err = o.SetStatus(cmd.Status(), cmd.Actor(), now); err != nil {
		return err
	}
	if err = repo.Update(ctx, o); err != nil {
		return err
	}
	if before != order.OrderDispatched && o.Status() == order.OrderDispatched {
		if err = enqueueDispatchNotice(ctx, uow.NotificationRepository(), o, now); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
