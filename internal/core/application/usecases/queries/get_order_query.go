// Package queries contains the read side of the service. Handlers read
// straight from the database with raw SQL and return flat read models; they
// never load or mutate aggregates.
package queries

import (
	"errors"
	"time"

	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery reads one order with its items, the per-status item counts
// and the progress summary.
//
// Example:
//
//	query, err := NewGetOrderQuery(orderID)
//	if err != nil {
//	    return err
//	}
//	view, err := handler.Handle(ctx, query)
//	fmt.Println(view.Status, view.Progress) // "P", "1/3 items complete"
type GetOrderQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) OrderID() kernel.UUID { return q.orderID }

// GetOrderQueryResponse is the order read model. Status fields carry wire
// codes (T, C, R, P, F, dispatched, delivered, collected).
type GetOrderQueryResponse struct {
	ID           kernel.UUID
	Number       string
	ClientID     *kernel.UUID
	ContactEmail string
	DeliveryType string
	ETADate      *kernel.Date
	IsStockRun   bool
	Status       string
	Progress     string
	TotalCents   int64
	IsVerified   bool
	DispatchedAt *time.Time
	DeliveredAt  *time.Time
	CreatedAt    time.Time

	Items []OrderItemResponse
	// StatusBreakdown counts items per status code.
	StatusBreakdown map[string]int
}

type OrderItemResponse struct {
	ID               kernel.UUID
	SKU              string
	ProductName      string
	Quantity         int
	ProducedQuantity int
	UnitPriceCents   int64
	LineTotalCents   int64
	Zone             string
	Station          string
	ScheduledDate    *kernel.Date
	SplitFromItemID  *kernel.UUID
	Status           string
}
