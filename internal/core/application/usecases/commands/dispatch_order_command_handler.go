package commands

import (
	"context"
	"time"

	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/core/domain/model/notification"
	"manufacturing/internal/core/domain/model/order"
	"manufacturing/internal/core/ports"
)

type DispatchOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewDispatchOrderCommandHandler(uowFactory OrderUoWFactory) DispatchOrderCommandHandler {
	return DispatchOrderCommandHandler{uowFactory: uowFactory}
}

func (h *DispatchOrderCommandHandler) Handle(ctx context.Context, cmd DispatchOrderCommand) error {
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
	if err = o.Dispatch(now); err != nil {
		return err
	}
	if err = repo.Update(ctx, o); err != nil {
		return err
	}
	if err = enqueueDispatchNotice(ctx, uow.NotificationRepository(), o, now); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// enqueueDispatchNotice queues the dispatch or collection-ready message for
// orders that carry a contact email.
func enqueueDispatchNotice(ctx context.Context, repo ports.NotificationRepository, o *order.Order, now time.Time) error {
	if o.ContactEmail() == "" {
		return nil
	}
	msg, err := notification.DispatchNotice(kernel.NewUUID(), o.ID(), o.Number(), o.ContactEmail(),
		o.DeliveryType() == order.DeliveryTypeCollection, now)
	if err != nil {
		return err
	}
	return repo.Enqueue(ctx, msg)
}

type RecordDeliveryCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewRecordDeliveryCommandHandler(uowFactory OrderUoWFactory) RecordDeliveryCommandHandler {
	return RecordDeliveryCommandHandler{uowFactory: uowFactory}
}

func (h *RecordDeliveryCommandHandler) Handle(ctx context.Context, cmd RecordDeliveryCommand) error {
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
	if err = o.RecordDelivery(time.Now().UTC()); err != nil {
		return err
	}
	if err = repo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

type SyncOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewSyncOrderStatusCommandHandler(uowFactory OrderUoWFactory) SyncOrderStatusCommandHandler {
	return SyncOrderStatusCommandHandler{uowFactory: uowFactory}
}

// Handle reports whether the stored status or progress was stale. Nothing is
// written when it was not.
func (h *SyncOrderStatusCommandHandler) Handle(ctx context.Context, cmd SyncOrderStatusCommand) (bool, error) {
	if err := cmd.Validate(); err != nil {
		return false, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	o, err := repo.Get(ctx, cmd.OrderID())
	if err != nil {
		return false, err
	}
	if !o.SyncStatus() {
		return false, nil
	}
	if err = repo.Update(ctx, o); err != nil {
		return false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return false, err
	}
	return true, nil
}
