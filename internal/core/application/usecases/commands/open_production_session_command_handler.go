package commands

import (
	"context"
	"time"

	"manufacturing/internal/core/domain/model/production"
)

// OpenProductionSessionCommandHandler opens a session and, when it targets a
// ready item, moves that item into production. Items in any other status are
// left where they are; the session still opens.
type OpenProductionSessionCommandHandler struct {
	uowFactory ProductionUoWFactory
}

func NewOpenProductionSessionCommandHandler(uowFactory ProductionUoWFactory) OpenProductionSessionCommandHandler {
	return OpenProductionSessionCommandHandler{uowFactory: uowFactory}
}

func (h *OpenProductionSessionCommandHandler) Handle(ctx context.Context, cmd OpenProductionSessionCommand) error {
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

	target := cmd.TargetQuantity()
	if itemID := cmd.OrderItemID(); itemID != nil {
		orderRepo := uow.OrderRepository()
		o, err := orderRepo.GetByItemID(ctx, *itemID)
		if err != nil {
			return err
		}
		item, err := o.Item(*itemID)
		if err != nil {
			return err
		}
		if target == 0 {
			target = item.Quantity()
		}

		started, err := o.StartItemProduction(*itemID)
		if err != nil {
			return err
		}
		if started {
			if err = orderRepo.Update(ctx, o); err != nil {
				return err
			}
		}
	}

	session, err := production.NewSession(production.NewSessionParams{
		ID:             cmd.SessionID(),
		OrderItemID:    cmd.OrderItemID(),
		Zone:           cmd.Zone(),
		Station:        cmd.Station(),
		TargetQuantity: target,
		IsSubAssembly:  cmd.IsSubAssembly(),
		Notes:          cmd.Notes(),
		OpenedBy:       cmd.Actor().ID(),
		StartedAt:      time.Now().UTC(),
	})
	if err != nil {
		return err
	}
	if err = uow.SessionRepository().Add(ctx, session); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
