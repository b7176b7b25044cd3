package commands

import (
	"context"
	"time"

	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/core/domain/model/notification"
)

// VerifyOrderCommandHandler moves a tendered order's items to the cut list.
// The first verification of an order with a contact email enqueues an
// acknowledgement in the same transaction.
type VerifyOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewVerifyOrderCommandHandler(uowFactory OrderUoWFactory) VerifyOrderCommandHandler {
	return VerifyOrderCommandHandler{uowFactory: uowFactory}
}

func (h *VerifyOrderCommandHandler) Handle(ctx context.Context, cmd VerifyOrderCommand) error {
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
	firstVerification := !o.IsVerified()
	if err = o.Verify(cmd.Actor(), now); err != nil {
		return err
	}
	if err = repo.Update(ctx, o); err != nil {
		return err
	}

	if firstVerification && o.ContactEmail() != "" {
		msg, err := notification.OrderAcknowledgement(kernel.NewUUID(), o.ID(), o.Number(), o.ContactEmail(), now)
		if err != nil {
			return err
		}
		if err = uow.NotificationRepository().Enqueue(ctx, msg); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
