package ports

import "context"

// InventoryRepository tracks finished units on hand per SKU.
type InventoryRepository interface {
	// AddUnits increments units on hand, creating the SKU row when missing.
	AddUnits(ctx context.Context, sku string, quantity int) error
}
