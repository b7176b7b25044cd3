package commands

import (
	"context"
	"time"

	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/core/domain/model/qa"
)

// ApproveQAInspectionCommandHandler passes an inspection and releases its
// item from P to F. An item already finished or dispatched is left as is.
type ApproveQAInspectionCommandHandler struct {
	uowFactory ProductionUoWFactory
}

func NewApproveQAInspectionCommandHandler(uowFactory ProductionUoWFactory) ApproveQAInspectionCommandHandler {
	return ApproveQAInspectionCommandHandler{uowFactory: uowFactory}
}

func (h *ApproveQAInspectionCommandHandler) Handle(ctx context.Context, cmd ApproveQAInspectionCommand) error {
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

	inspectionRepo := uow.InspectionRepository()
	inspection, err := inspectionRepo.Get(ctx, cmd.InspectionID())
	if err != nil {
		return err
	}
	changed, err := inspection.Approve(cmd.Actor(), time.Now().UTC())
	if err != nil {
		return err
	}

	if itemID := inspection.OrderItemID(); itemID != nil {
		orderRepo := uow.OrderRepository()
		o, err := orderRepo.GetByItemID(ctx, *itemID)
		if err != nil {
			return err
		}
		item, err := o.Item(*itemID)
		if err != nil {
			return err
		}
		if !item.Status().IsDone() {
			if err = o.FinishItem(*itemID); err != nil {
				return err
			}
			if err = orderRepo.Update(ctx, o); err != nil {
				return err
			}
		}
	}

	if changed {
		if err = inspectionRepo.Update(ctx, inspection); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}

// RecordQAInspectionCommandHandler stores a manual inspection with its
// defects. A referenced item must exist.
type RecordQAInspectionCommandHandler struct {
	uowFactory ProductionUoWFactory
}

func NewRecordQAInspectionCommandHandler(uowFactory ProductionUoWFactory) RecordQAInspectionCommandHandler {
	return RecordQAInspectionCommandHandler{uowFactory: uowFactory}
}

func (h *RecordQAInspectionCommandHandler) Handle(ctx context.Context, cmd RecordQAInspectionCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()
	inspection, err := qa.NewInspection(qa.NewInspectionParams{
		ID:          cmd.InspectionID(),
		OrderItemID: cmd.OrderItemID(),
		SessionID:   cmd.SessionID(),
		Type:        cmd.Type(),
		BatchSize:   cmd.BatchSize(),
		Passed:      cmd.Passed(),
		InspectorID: cmd.Actor().ID(),
		Notes:       cmd.Notes(),
		InspectedAt: now,
	})
	if err != nil {
		return err
	}
	for _, d := range cmd.Defects() {
		if _, err = inspection.AddDefect(kernel.NewUUID(), qa.DefectType(d.Type), d.Quantity, d.Description, now); err != nil {
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

	if itemID := cmd.OrderItemID(); itemID != nil {
		if _, err = uow.OrderRepository().GetByItemID(ctx, *itemID); err != nil {
			return err
		}
	}
	if err = uow.InspectionRepository().Add(ctx, inspection); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
