package commands

import "context"

type SplitOrderItemCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewSplitOrderItemCommandHandler(uowFactory OrderUoWFactory) SplitOrderItemCommandHandler {
	return SplitOrderItemCommandHandler{uowFactory: uowFactory}
}

func (h *SplitOrderItemCommandHandler) Handle(ctx context.Context, cmd SplitOrderItemCommand) error {
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
	if _, err = o.SplitItem(cmd.ItemID(), cmd.NewItemID(), cmd.NewQuantity()); err != nil {
		return err
	}
	if err = repo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
