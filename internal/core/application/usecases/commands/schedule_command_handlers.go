package commands

import (
	"context"
	"log/slog"
	"time"

	"manufacturing/internal/core/domain/model/schedule"
	"manufacturing/internal/core/ports"
)

// CreateScheduleEntryCommandHandler plans an item and queues it for docking
// when it is still tendered. Station capacity is advisory and not checked
// here; callers ask CheckStationCapacityQuery first.
type CreateScheduleEntryCommandHandler struct {
	uowFactory ScheduleUoWFactory
}

func NewCreateScheduleEntryCommandHandler(uowFactory ScheduleUoWFactory) CreateScheduleEntryCommandHandler {
	return CreateScheduleEntryCommandHandler{uowFactory: uowFactory}
}

func (h *CreateScheduleEntryCommandHandler) Handle(ctx context.Context, cmd CreateScheduleEntryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	p := cmd.Params()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetByItemID(ctx, p.OrderItemID)
	if err != nil {
		return err
	}
	item, err := o.Item(p.OrderItemID)
	if err != nil {
		return err
	}
	planned := p.PlannedQuantity
	if planned == 0 {
		planned = item.Quantity()
	}

	assigned, err := o.ScheduleItem(p.OrderItemID, p.Zone, p.Station, p.ScheduledDate)
	if err != nil {
		return err
	}
	if assigned {
		if err = orderRepo.Update(ctx, o); err != nil {
			return err
		}
	}

	entry, err := schedule.NewEntry(schedule.NewEntryParams{
		ID:              p.EntryID,
		OrderID:         o.ID(),
		OrderItemID:     p.OrderItemID,
		Zone:            p.Zone,
		Station:         p.Station,
		ScheduledDate:   p.ScheduledDate,
		PlannedQuantity: planned,
		Priority:        p.Priority,
		RunOrder:        p.RunOrder,
		Notes:           p.Notes,
		CreatedBy:       p.Actor.ID(),
		CreatedAt:       time.Now().UTC(),
	})
	if err != nil {
		return err
	}
	if err = uow.ScheduleRepository().Add(ctx, entry); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

type CancelScheduleEntryCommandHandler struct {
	uowFactory ScheduleUoWFactory
}

func NewCancelScheduleEntryCommandHandler(uowFactory ScheduleUoWFactory) CancelScheduleEntryCommandHandler {
	return CancelScheduleEntryCommandHandler{uowFactory: uowFactory}
}

func (h *CancelScheduleEntryCommandHandler) Handle(ctx context.Context, cmd CancelScheduleEntryCommand) error {
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

	repo := uow.ScheduleRepository()
	entry, err := repo.Get(ctx, cmd.EntryID())
	if err != nil {
		return err
	}
	if err = entry.Cancel(); err != nil {
		return err
	}
	if err = repo.Update(ctx, entry); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// SetStationCapacityCommandHandler stores the limit and drops the cached
// value once the change is committed. A failed invalidation is logged; the
// cache entry then expires on its own. The cache is optional.
type SetStationCapacityCommandHandler struct {
	uowFactory ScheduleUoWFactory
	cache      ports.CapacityCache
	logger     *slog.Logger
}

func NewSetStationCapacityCommandHandler(
	uowFactory ScheduleUoWFactory,
	cache ports.CapacityCache,
	logger *slog.Logger,
) SetStationCapacityCommandHandler {
	return SetStationCapacityCommandHandler{
		uowFactory: uowFactory,
		cache:      cache,
		logger:     logger.With("component", "SetStationCapacityCommandHandler"),
	}
}

func (h *SetStationCapacityCommandHandler) Handle(ctx context.Context, cmd SetStationCapacityCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	capacity, err := schedule.NewStationCapacity(cmd.Station(), cmd.MaxUnitsPerDay())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.CapacityRepository().Upsert(ctx, capacity); err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if h.cache == nil {
		return nil
	}
	if err = h.cache.Invalidate(ctx, capacity.Station()); err != nil {
		h.logger.WarnContext(ctx, "capacity cache invalidation failed", "station", capacity.Station(), "error", err)
	}
	return nil
}
