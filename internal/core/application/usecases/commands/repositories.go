// Package commands contains the operations that change order, production,
// QA, scheduling and inventory state.
// Every handler runs inside one unit of work: validate, begin, mutate the
// aggregates, persist, commit.
package commands

import (
	"context"

	"manufacturing/internal/core/ports"
)

// Each handler depends on the narrowest unit of work that covers the
// repositories it touches. postgres.GormUnitOfWork satisfies all of them.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	SessionRepoFactory interface {
		SessionRepository() ports.SessionRepository
	}

	InspectionRepoFactory interface {
		InspectionRepository() ports.InspectionRepository
	}

	ScheduleRepoFactory interface {
		ScheduleRepository() ports.ScheduleRepository
	}

	CapacityRepoFactory interface {
		CapacityRepository() ports.CapacityRepository
	}

	InventoryRepoFactory interface {
		InventoryRepository() ports.InventoryRepository
	}

	NotificationRepoFactory interface {
		NotificationRepository() ports.NotificationRepository
	}

	// OrderUoW covers order intake and lifecycle changes. Notifications are
	// enqueued in the same transaction as the change that triggers them.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		NotificationRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// ProductionUoW covers sessions and the QA inspections they open, together
	// with the order owning the session's item.
	//
	// Example:
	//   uow := factory.Create()
	//   if err := uow.Begin(ctx); err != nil { return err }
	//   defer func() { _ = uow.Rollback(ctx) }()
	//
	//   session, err := uow.SessionRepository().Get(ctx, id)
	//   // ... mutate, Update
	//
	//   return uow.Commit(ctx)
	ProductionUoW interface {
		TxManager
		OrderRepoFactory
		SessionRepoFactory
		InspectionRepoFactory
	}

	ProductionUoWFactory interface {
		Create() ProductionUoW
	}

	ScheduleUoW interface {
		TxManager
		OrderRepoFactory
		ScheduleRepoFactory
		CapacityRepoFactory
	}

	ScheduleUoWFactory interface {
		Create() ScheduleUoW
	}

	// StockUoW completes stock runs into inventory.
	StockUoW interface {
		TxManager
		OrderRepoFactory
		InventoryRepoFactory
	}

	StockUoWFactory interface {
		Create() StockUoW
	}

	NotificationUoW interface {
		TxManager
		NotificationRepoFactory
	}

	NotificationUoWFactory interface {
		Create() NotificationUoW
	}
)
