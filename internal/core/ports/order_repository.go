// Package ports defines the persistence and outbound contracts the
// application layer depends on. Adapters under internal/adapters implement
// them.
package ports

import (
	"context"

	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// An order is always stored and loaded together with all of its items.
type OrderRepository interface {
	// Add persists a new order and its items.
	// Returns errs.ConflictError when the order number is already taken.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists the order header and every item, inserting items that
	// were added or split since the order was loaded.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get loads an order with its items.
	// Returns errs.ObjectNotFoundError when no order has the id.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByItemID loads the order owning the given item.
	GetByItemID(ctx context.Context, itemID kernel.UUID) (*order.Order, error)
}
