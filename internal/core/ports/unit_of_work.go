package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary. Repositories it
// returns after Begin are bound to the open transaction.
type UnitOfWork interface {
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository
	SessionRepository() SessionRepository
	InspectionRepository() InspectionRepository
	ScheduleRepository() ScheduleRepository
	CapacityRepository() CapacityRepository
	InventoryRepository() InventoryRepository
	NotificationRepository() NotificationRepository
}
