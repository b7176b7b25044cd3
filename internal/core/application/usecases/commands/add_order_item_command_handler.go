package commands

import "context"

// AddOrderItemCommandHandler adds a tendered line and re-aggregates the order.
// Shipped orders reject new lines.
type AddOrderItemCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewAddOrderItemCommandHandler(uowFactory OrderUoWFactory) AddOrderItemCommandHandler {
	return AddOrderItemCommandHandler{uowFactory: uowFactory}
}

func (h *AddOrderItemCommandHandler) Handle(ctx context.Context, cmd AddOrderItemCommand) error {
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
	if _, err = o.AddItem(cmd.ItemID(), cmd.Spec()); err != nil {
		return err
	}
	if err = repo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
