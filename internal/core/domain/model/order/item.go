package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/pkg/errs"
)

var ErrItemIsNotConstructed = errors.New("Item must be created via Order.AddItem or RestoreItem")

// ItemSpec carries the attributes of a new order line.
type ItemSpec struct {
	SKU                 string
	ProductName         string
	Quantity            int
	UnitPriceCents      int64
	DrawingNumber       string
	SpecialInstructions string
	ETA                 *kernel.Date
}

func (s ItemSpec) validate() error {
	var errList []error
	if strings.TrimSpace(s.ProductName) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("product name"))
	}
	if s.Quantity <= 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"quantity", fmt.Errorf("%d is not greater than 0", s.Quantity)))
	}
	if s.UnitPriceCents < 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"unit price", fmt.Errorf("%d is negative", s.UnitPriceCents)))
	}
	return errors.Join(errList...)
}

// ItemRecord is the persisted state of an item, used to rebuild it.
type ItemRecord struct {
	ID                  kernel.UUID
	OrderID             kernel.UUID
	SKU                 string
	ProductName         string
	Quantity            int
	ProducedQuantity    int
	UnitPriceCents      int64
	Zone                string
	Station             string
	ScheduledDate       *kernel.Date
	ETA                 *kernel.Date
	DrawingNumber       string
	SpecialInstructions string
	SplitFromItemID     *kernel.UUID
	Status              ItemStatus
	DockingCompletedAt  *time.Time
}

// Item is one manufacturing line of an order. It is owned by its Order:
// every change to it goes through an Order method so the order status is
// recomputed in the same operation.
type Item struct {
	id                  kernel.UUID
	orderID             kernel.UUID
	sku                 string
	productName         string
	quantity            int
	producedQuantity    int
	unitPriceCents      int64
	zone                string
	station             string
	scheduledDate       *kernel.Date
	eta                 *kernel.Date
	drawingNumber       string
	specialInstructions string
	splitFromItemID     *kernel.UUID
	status              ItemStatus
	dockingCompletedAt  *time.Time
	isConstructed       bool
}

// RestoreItem rebuilds an item from storage.
func RestoreItem(rec ItemRecord) (*Item, error) {
	if err := errors.Join(rec.ID.Validate(), rec.OrderID.Validate(), rec.Status.Validate()); err != nil {
		return nil, err
	}
	if rec.Quantity <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", rec.Quantity))
	}

	return &Item{
		id:                  rec.ID,
		orderID:             rec.OrderID,
		sku:                 rec.SKU,
		productName:         rec.ProductName,
		quantity:            rec.Quantity,
		producedQuantity:    max(0, rec.ProducedQuantity),
		unitPriceCents:      rec.UnitPriceCents,
		zone:                rec.Zone,
		station:             rec.Station,
		scheduledDate:       rec.ScheduledDate,
		eta:                 rec.ETA,
		drawingNumber:       rec.DrawingNumber,
		specialInstructions: rec.SpecialInstructions,
		splitFromItemID:     rec.SplitFromItemID,
		status:              rec.Status,
		dockingCompletedAt:  rec.DockingCompletedAt,
		isConstructed:       true,
	}, nil
}

func (i *Item) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

func (i *Item) ID() kernel.UUID { return i.id }
func (i *Item) OrderID() kernel.UUID { return i.orderID }
func (i *Item) SKU() string { return i.sku }
func (i *Item) ProductName() string { return i.productName }
func (i *Item) Quantity() int { return i.quantity }
func (i *Item) ProducedQuantity() int { return i.producedQuantity }
func (i *Item) UnitPriceCents() int64 { return i.unitPriceCents }
func (i *Item) Zone() string { return i.zone }
func (i *Item) Station() string { return i.station }
func (i *Item) ScheduledDate() *kernel.Date { return i.scheduledDate }
func (i *Item) ETA() *kernel.Date { return i.eta }
func (i *Item) DrawingNumber() string { return i.drawingNumber }
func (i *Item) SpecialInstructions() string { return i.specialInstructions }
func (i *Item) SplitFromItemID() *kernel.UUID { return i.splitFromItemID }
func (i *Item) Status() ItemStatus { return i.status }
func (i *Item) DockingCompletedAt() *time.Time { return i.dockingCompletedAt }

// LineTotalCents is quantity times unit price.
func (i *Item) LineTotalCents() int64 {
	return int64(i.quantity) * i.unitPriceCents
}

// TargetMet reports whether produced quantity has reached the ordered quantity.
func (i *Item) TargetMet() bool {
	return i.producedQuantity >= i.quantity
}
