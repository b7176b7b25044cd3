// Package inventoryrepo keeps finished-goods stock levels per SKU.
package inventoryrepo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"manufacturing/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type InventoryDTO struct {
	SKU         string `gorm:"column:sku;type:varchar(64);primaryKey"`
	UnitsOnHand int    `gorm:"not null;default:0"`
	UpdatedAt   time.Time
}

func (InventoryDTO) TableName() string {
	return "inventory"
}

type GormInventoryRepository struct {
	db *gorm.DB
}

func NewGormInventoryRepository(db *gorm.DB) *GormInventoryRepository {
	return &GormInventoryRepository{db: db}
}

// AddUnits increments units_on_hand in a single upsert statement.
func (r *GormInventoryRepository) AddUnits(ctx context.Context, sku string, quantity int) error {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return errs.NewValueIsRequiredError("sku")
	}
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}

	dto := InventoryDTO{SKU: sku, UnitsOnHand: quantity}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "sku"}},
		DoUpdates: clause.Assignments(map[string]any{
			"units_on_hand": gorm.Expr("inventory.units_on_hand + EXCLUDED.units_on_hand"),
			"updated_at":    gorm.Expr("EXCLUDED.updated_at"),
		}),
	}).Create(&dto).Error
}

// UnitsOnHand returns the stock level of a SKU, zero when it was never stocked.
func (r *GormInventoryRepository) UnitsOnHand(ctx context.Context, sku string) (int, error) {
	var dto InventoryDTO
	err := r.db.WithContext(ctx).Where("sku = ?", sku).Limit(1).Find(&dto).Error
	return dto.UnitsOnHand, err
}
