package commands

import (
	"context"
	"time"

	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/core/domain/model/order"
	"manufacturing/internal/core/domain/services"
)

// CompleteProductionSessionCommandHandler closes a session, credits its
// output to the order item and, through services.ProductionCompleter, opens
// the pending final inspection that gates the item's release. The session,
// the order and the inspection are written in one transaction.
type CompleteProductionSessionCommandHandler struct {
	uowFactory ProductionUoWFactory
	completer  services.ProductionCompleter
}

func NewCompleteProductionSessionCommandHandler(uowFactory ProductionUoWFactory) CompleteProductionSessionCommandHandler {
	return CompleteProductionSessionCommandHandler{
		uowFactory: uowFactory,
		completer:  services.NewProductionCompleter(),
	}
}

func (h *CompleteProductionSessionCommandHandler) Handle(
	ctx context.Context,
	cmd CompleteProductionSessionCommand,
) (services.CompletionResult, error) {
	if err := cmd.Validate(); err != nil {
		return services.CompletionResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return services.CompletionResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	sessionRepo := uow.SessionRepository()
	session, err := sessionRepo.Get(ctx, cmd.SessionID())
	if err != nil {
		return services.CompletionResult{}, err
	}

	var (
		o          *order.Order
		hasPending bool
	)
	if itemID := session.OrderItemID(); itemID != nil {
		if o, err = uow.OrderRepository().GetByItemID(ctx, *itemID); err != nil {
			return services.CompletionResult{}, err
		}
		if hasPending, err = uow.InspectionRepository().HasPendingForItem(ctx, *itemID); err != nil {
			return services.CompletionResult{}, err
		}
	}

	result, err := h.completer.Complete(services.CompleteProductionParams{
		Session:              session,
		Order:                o,
		FinalQuantity:        cmd.FinalQuantity(),
		Force:                cmd.Force(),
		Actor:                cmd.Actor(),
		HasPendingInspection: hasPending,
		InspectionID:         kernel.NewUUID(),
		Now:                  time.Now().UTC(),
	})
	if err != nil {
		return services.CompletionResult{}, err
	}

	if err = sessionRepo.Update(ctx, session); err != nil {
		return services.CompletionResult{}, err
	}
	if o != nil {
		if err = uow.OrderRepository().Update(ctx, o); err != nil {
			return services.CompletionResult{}, err
		}
	}
	if result.Inspection != nil {
		if err = uow.InspectionRepository().Add(ctx, result.Inspection); err != nil {
			return services.CompletionResult{}, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return services.CompletionResult{}, err
	}
	return result, nil
}
