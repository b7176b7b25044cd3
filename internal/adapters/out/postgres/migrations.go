package postgres

import (
	"context"

	"manufacturing/internal/adapters/out/postgres/inventoryrepo"
	"manufacturing/internal/adapters/out/postgres/notificationrepo"
	"manufacturing/internal/adapters/out/postgres/orderrepo"
	"manufacturing/internal/adapters/out/postgres/qarepo"
	"manufacturing/internal/adapters/out/postgres/schedulerepo"
	"manufacturing/internal/adapters/out/postgres/sessionrepo"

	"gorm.io/gorm"
)

// Models lists every persisted table in dependency order.
func Models() []any {
	return []any{
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
		&sessionrepo.SessionDTO{},
		&sessionrepo.WorkerDTO{},
		&sessionrepo.PauseDTO{},
		&sessionrepo.LogDTO{},
		&qarepo.InspectionDTO{},
		&qarepo.DefectDTO{},
		&schedulerepo.EntryDTO{},
		&schedulerepo.CapacityDTO{},
		&inventoryrepo.InventoryDTO{},
		&notificationrepo.MessageDTO{},
	}
}

// Migrate brings the schema up to date.
func Migrate(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).AutoMigrate(Models()...)
}
