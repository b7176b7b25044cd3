package commands

import (
	"context"
	"time"

	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/core/domain/model/order"
)

// CreateOrderCommandHandler stores a new tendered order.
// A duplicate order number surfaces as errs.ConflictError from the repository.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	o, err := order.NewOrder(order.NewOrderParams{
		ID:           cmd.OrderID(),
		Number:       cmd.Number(),
		ClientID:     cmd.ClientID(),
		ContactEmail: cmd.ContactEmail(),
		DeliveryType: cmd.DeliveryType(),
		ETADate:      cmd.ETADate(),
		IsStockRun:   cmd.IsStockRun(),
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return err
	}
	for _, spec := range cmd.Items() {
		if _, err = o.AddItem(kernel.NewUUID(), spec); err != nil {
			return err
		}
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
