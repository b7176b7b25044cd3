package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Transition records one item status change made through the aggregate.
type Transition struct {
	ItemID kernel.UUID
	From   ItemStatus
	To     ItemStatus
}

// StockReceipt is the inventory a completed stock run puts on hand.
type StockReceipt struct {
	SKU      string
	Quantity int
}

// Order is the aggregate root for a client purchase order or a stock run.
// It exclusively owns its items.
//
// Order follows these invariants:
//   - Every item status change is made by an Order method, and every such
//     method ends by recomputing the order status and progress from the
//     items (see AggregateStatus), so the two can never disagree
//   - Item statuses only move forward; C to R happens only through docking
//   - delivered and collected are never recomputed away
//   - Items cannot be added or split once the order has shipped
type Order struct {
	id           kernel.UUID
	number       string
	clientID     *kernel.UUID
	contactEmail string
	deliveryType DeliveryType
	etaDate      *kernel.Date
	isStockRun   bool

	status     OrderStatus
	progress   string
	totalCents int64

	isVerified         bool
	verifiedBy         *kernel.UUID
	verifiedAt         *time.Time
	dockingCompletedAt *time.Time
	dispatchedAt       *time.Time
	deliveredAt        *time.Time
	createdAt          time.Time

	items       []*Item
	transitions []Transition

	isConstructed bool
}

// NewOrderParams are the intake attributes of a new order.
type NewOrderParams struct {
	ID           kernel.UUID
	Number       string
	ClientID     *kernel.UUID
	ContactEmail string
	DeliveryType DeliveryType
	ETADate      *kernel.Date
	IsStockRun   bool
	CreatedAt    time.Time
}

// NewOrder creates a tendered order without items.
//
// A client is required unless the order is a stock run.
//
// Example:
//
//	o, err := order.NewOrder(order.NewOrderParams{
//	    ID:           kernel.NewUUID(),
//	    Number:       "ORD-1042",
//	    ClientID:     &clientID,
//	    DeliveryType: order.DeliveryTypeDelivery,
//	    CreatedAt:    time.Now(),
//	})
func NewOrder(p NewOrderParams) (*Order, error) {
	var errList []error
	errList = append(errList, p.ID.Validate())
	if strings.TrimSpace(p.Number) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("order number"))
	}
	if p.ClientID == nil && !p.IsStockRun {
		errList = append(errList, errs.NewValueIsRequiredError("client"))
	}
	if p.ClientID != nil {
		errList = append(errList, p.ClientID.Validate())
	}
	if _, err := ParseDeliveryType(string(p.DeliveryType)); err != nil || p.DeliveryType == "" {
		errList = append(errList, errs.NewValueIsInvalidError("delivery type"))
	}
	if err := errors.Join(errList...); err != nil {
		return nil, err
	}

	o := &Order{
		id:            p.ID,
		number:        strings.TrimSpace(p.Number),
		clientID:      p.ClientID,
		contactEmail:  strings.TrimSpace(p.ContactEmail),
		deliveryType:  p.DeliveryType,
		etaDate:       p.ETADate,
		isStockRun:    p.IsStockRun,
		status:        OrderTendered,
		createdAt:     p.CreatedAt,
		isConstructed: true,
	}
	o.sync()
	return o, nil
}

// OrderRecord is the persisted state of an order header.
type OrderRecord struct {
	ID                 kernel.UUID
	Number             string
	ClientID           *kernel.UUID
	ContactEmail       string
	DeliveryType       DeliveryType
	ETADate            *kernel.Date
	IsStockRun         bool
	Status             OrderStatus
	Progress           string
	IsVerified         bool
	VerifiedBy         *kernel.UUID
	VerifiedAt         *time.Time
	DockingCompletedAt *time.Time
	DispatchedAt       *time.Time
	DeliveredAt        *time.Time
	CreatedAt          time.Time
}

// RestoreOrder rebuilds an order and its items from storage. The stored
// status and progress are taken as they are; SyncStatus repairs them.
func RestoreOrder(rec OrderRecord, items []*Item) (*Order, error) {
	if err := errors.Join(rec.ID.Validate(), rec.Status.Validate()); err != nil {
		return nil, err
	}
	for _, it := range items {
		if err := it.Validate(); err != nil {
			return nil, err
		}
		if !it.orderID.IsEqual(rec.ID) {
			return nil, errs.NewValueIsInvalidErrorWithCause("item",
				fmt.Errorf("item %s belongs to order %s", it.id, it.orderID))
		}
	}

	o := &Order{
		id:                 rec.ID,
		number:             rec.Number,
		clientID:           rec.ClientID,
		contactEmail:       rec.ContactEmail,
		deliveryType:       rec.DeliveryType,
		etaDate:            rec.ETADate,
		isStockRun:         rec.IsStockRun,
		status:             rec.Status,
		progress:           rec.Progress,
		isVerified:         rec.IsVerified,
		verifiedBy:         rec.VerifiedBy,
		verifiedAt:         rec.VerifiedAt,
		dockingCompletedAt: rec.DockingCompletedAt,
		dispatchedAt:       rec.DispatchedAt,
		deliveredAt:        rec.DeliveredAt,
		createdAt:          rec.CreatedAt,
		items:              items,
		isConstructed:      true,
	}
	o.totalCents = o.sumLineTotals()
	if o.progress == "" {
		o.progress = Progress(o.ItemStatuses())
	}
	return o, nil
}

// Validate ensures the Order was built by a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) ID() kernel.UUID { return o.id }
func (o *Order) Number() string { return o.number }
func (o *Order) ClientID() *kernel.UUID { return o.clientID }
func (o *Order) ContactEmail() string { return o.contactEmail }
func (o *Order) DeliveryType() DeliveryType { return o.deliveryType }
func (o *Order) ETADate() *kernel.Date { return o.etaDate }
func (o *Order) IsStockRun() bool { return o.isStockRun }
func (o *Order) Status() OrderStatus { return o.status }
func (o *Order) Progress() string { return o.progress }
func (o *Order) TotalCents() int64 { return o.totalCents }
func (o *Order) IsVerified() bool { return o.isVerified }
func (o *Order) VerifiedBy() *kernel.UUID { return o.verifiedBy }
func (o *Order) VerifiedAt() *time.Time { return o.verifiedAt }
func (o *Order) DockingCompletedAt() *time.Time { return o.dockingCompletedAt }
func (o *Order) DispatchedAt() *time.Time { return o.dispatchedAt }
func (o *Order) DeliveredAt() *time.Time { return o.deliveredAt }
func (o *Order) CreatedAt() time.Time { return o.createdAt }

// Items returns the order lines. The slice is a copy; the items are not.
func (o *Order) Items() []*Item {
	return append([]*Item(nil), o.items...)
}

// Item looks up one of the order's lines.
func (o *Order) Item(itemID kernel.UUID) (*Item, error) {
	for _, it := range o.items {
		if it.id.IsEqual(itemID) {
			return it, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("order item", itemID.String())
}

// ItemStatuses lists the status of every item, in item order.
func (o *Order) ItemStatuses() []ItemStatus {
	statuses := make([]ItemStatus, 0, len(o.items))
	for _, it := range o.items {
		statuses = append(statuses, it.status)
	}
	return statuses
}

// PullTransitions returns and clears the item status changes made since the
// last call.
func (o *Order) PullTransitions() []Transition {
	t := o.transitions
	o.transitions = nil
	return t
}

// AddItem appends a tendered line to the order.
func (o *Order) AddItem(itemID kernel.UUID, spec ItemSpec) (*Item, error) {
	if err := itemID.Validate(); err != nil {
		return nil, err
	}
	if err := spec.validate(); err != nil {
		return nil, err
	}
	if err := o.ensureNotShipped("add item"); err != nil {
		return nil, err
	}

	it := &Item{
		id:                  itemID,
		orderID:             o.id,
		sku:                 strings.TrimSpace(spec.SKU),
		productName:         strings.TrimSpace(spec.ProductName),
		quantity:            spec.Quantity,
		unitPriceCents:      spec.UnitPriceCents,
		eta:                 spec.ETA,
		drawingNumber:       spec.DrawingNumber,
		specialInstructions: spec.SpecialInstructions,
		status:              ItemTendered,
		isConstructed:       true,
	}
	o.items = append(o.items, it)
	o.sync()
	return it, nil
}

// Verify acknowledges a tendered order and queues its tendered items for docking.
// The order must still be at T or C.
func (o *Order) Verify(actor kernel.Actor, now time.Time) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if err := o.status.CanVerify(); err != nil {
		return err
	}

	for _, it := range o.items {
		if it.status != ItemTendered {
			continue
		}
		if err := o.moveItem(it, it.status.QueueForDocking); err != nil {
			return err
		}
	}

	actorID := actor.ID()
	o.isVerified = true
	o.verifiedBy = &actorID
	o.verifiedAt = &now
	o.sync()
	return nil
}

// CompleteDocking releases every cut-list item of the order to ready and
// returns how many were released.
func (o *Order) CompleteDocking(actor kernel.Actor, now time.Time) (int, error) {
	if err := actor.Require(actor.CanConfirmDocking(), "complete docking"); err != nil {
		return 0, err
	}

	released := 0
	for _, it := range o.items {
		if it.status != ItemCutList {
			continue
		}
		if err := o.moveItem(it, it.status.CompleteDocking); err != nil {
			return 0, err
		}
		it.dockingCompletedAt = &now
		released++
	}
	if released == 0 {
		return 0, errs.NewTransitionIsForbiddenError("order", o.status.String(), OrderReady.String(),
			"no items are in Cut List/Docking status (C)")
	}

	o.dockingCompletedAt = &now
	o.sync()
	return released, nil
}

// CompleteItemDocking releases a single cut-list item to ready.
func (o *Order) CompleteItemDocking(itemID kernel.UUID, actor kernel.Actor, now time.Time) error {
	if err := actor.Require(actor.CanConfirmDocking(), "complete docking"); err != nil {
		return err
	}
	it, err := o.Item(itemID)
	if err != nil {
		return err
	}
	if err = o.moveItem(it, it.status.CompleteDocking); err != nil {
		return err
	}

	it.dockingCompletedAt = &now
	o.sync()
	return nil
}

// ScheduleItem assigns a station and date to an item. Tendered items are
// queued for docking; items on the cut list get the new assignment; items
// further along keep theirs and the call reports false.
func (o *Order) ScheduleItem(itemID kernel.UUID, zone, station string, date kernel.Date) (bool, error) {
	it, err := o.Item(itemID)
	if err != nil {
		return false, err
	}
	if it.status != ItemTendered && it.status != ItemCutList {
		return false, nil
	}
	if err = o.moveItem(it, it.status.QueueForDocking); err != nil {
		return false, err
	}

	it.zone = zone
	it.station = station
	it.scheduledDate = &date
	o.sync()
	return true, nil
}

// StartItemProduction moves a ready item into production. Items in any other
// status are left alone and the call reports false.
func (o *Order) StartItemProduction(itemID kernel.UUID) (bool, error) {
	it, err := o.Item(itemID)
	if err != nil {
		return false, err
	}
	if it.status != ItemReady {
		return false, nil
	}
	if err = o.moveItem(it, it.status.StartProduction); err != nil {
		return false, err
	}

	o.sync()
	return true, nil
}

// RecordItemProduction adds delta units to an item's produced quantity,
// clamping the total at zero. Finished and dispatched items are locked.
func (o *Order) RecordItemProduction(itemID kernel.UUID, delta int) error {
	it, err := o.Item(itemID)
	if err != nil {
		return err
	}
	if it.status.IsDone() {
		return errs.NewTransitionIsForbiddenError("order item", it.status.String(), it.status.String(),
			"produced quantity is locked once the item is finished")
	}

	it.producedQuantity = max(0, it.producedQuantity+delta)
	return nil
}

// FinishItem moves an in-production item to finished. It is the QA release path.
func (o *Order) FinishItem(itemID kernel.UUID) error {
	it, err := o.Item(itemID)
	if err != nil {
		return err
	}
	if err = o.moveItem(it, it.status.Finish); err != nil {
		return err
	}

	o.sync()
	return nil
}

// Dispatch ships every finished item. All items must be finished or already
// dispatched, and at least one must be finished.
func (o *Order) Dispatch(now time.Time) error {
	if o.status.IsShipped() && o.status != OrderDispatched {
		return errs.NewTransitionIsForbiddenError("order", o.status.String(), OrderDispatched.String(),
			"order has already been handed over")
	}

	finished := 0
	for _, it := range o.items {
		switch it.status {
		case ItemFinished:
			finished++
		case ItemDispatched:
		default:
			return errs.NewTransitionIsForbiddenError("order", o.status.String(), OrderDispatched.String(),
				fmt.Sprintf("item %s is at status %s, every item must be finished (F) before dispatch", it.id, it.status))
		}
	}
	if finished == 0 {
		return errs.NewTransitionIsForbiddenError("order", o.status.String(), OrderDispatched.String(),
			"no finished items to dispatch")
	}

	for _, it := range o.items {
		if it.status != ItemFinished {
			continue
		}
		if err := o.moveItem(it, it.status.Dispatch); err != nil {
			return err
		}
	}

	o.dispatchedAt = &now
	o.sync()
	return nil
}

// RecordDelivery closes a dispatched order as delivered or collected,
// according to its delivery type. Items keep the dispatched status.
func (o *Order) RecordDelivery(now time.Time) error {
	next, err := o.status.Deliver(o.deliveryType)
	if err != nil {
		return err
	}

	o.status = next
	o.deliveredAt = &now
	o.sync()
	return nil
}

// SetStatus is the generic order status update. It never regresses and never
// promotes C to R, which is reserved to docking completion. The order status
// after the call is whatever the aggregation yields from the moved items.
//
// Targets:
//   - C queues tendered items for docking
//   - P starts production on ready items
//   - F finishes in-production items; requires a force-complete role and
//     every unshipped item to be at least in production
//   - dispatched dispatches the order (see Dispatch)
//   - delivered or collected records the hand-over matching the delivery type
func (o *Order) SetStatus(target OrderStatus, actor kernel.Actor, now time.Time) error {
	if err := target.Validate(); err != nil {
		return err
	}
	if err := actor.Validate(); err != nil {
		return err
	}
	if target == o.status {
		return nil
	}
	if target.rank() < o.status.rank() || o.status.IsTerminal() {
		return errs.NewTransitionIsForbiddenError("order", o.status.String(), target.String(),
			"order status cannot regress")
	}

	switch target {
	case OrderCutList:
		return o.moveAll(ItemTendered, func(it *Item) func() (ItemStatus, error) { return it.status.QueueForDocking })
	case OrderReady:
		return directDockingError("order", o.status.String(), target.String())
	case OrderInProduction:
		return o.moveAll(ItemReady, func(it *Item) func() (ItemStatus, error) { return it.status.StartProduction })
	case OrderFinished:
		return o.forceFinishAll(actor)
	case OrderDispatched:
		return o.Dispatch(now)
	case OrderDelivered, OrderCollected:
		if target != o.deliveryType.Outcome() {
			return errs.NewValueIsInvalidErrorWithCause("order status",
				fmt.Errorf("%s does not match delivery type %s", target, o.deliveryType))
		}
		return o.RecordDelivery(now)
	default:
		return errs.NewTransitionIsForbiddenError("order", o.status.String(), target.String(), "")
	}
}

// SetItemStatus is the generic item status update. Items advance one step at
// a time; C to R is rejected in favour of docking completion and P to F
// requires a force-complete role.
func (o *Order) SetItemStatus(itemID kernel.UUID, target ItemStatus, actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	it, err := o.Item(itemID)
	if err != nil {
		return err
	}
	next, err := it.status.Advance(target)
	if err != nil {
		return err
	}
	if next == it.status {
		return nil
	}
	if next == ItemFinished {
		if err = actor.Require(actor.CanForceComplete(), "force-complete an item"); err != nil {
			return err
		}
	}
	if next == ItemDispatched {
		return errs.NewTransitionIsForbiddenError("order item", it.status.String(), next.String(),
			"items are dispatched with their order, use the order dispatch action")
	}

	if err = o.moveItem(it, func() (ItemStatus, error) { return next, nil }); err != nil {
		return err
	}
	o.sync()
	return nil
}

// SplitItem carves newQuantity units off an item into a new tendered line
// that keeps the SKU, pricing, placement and schedule of the original.
// newQuantity must satisfy 0 < newQuantity < original quantity.
//
// The new line starts at T, so re-aggregation can move the order back to T
// (an all-F order becomes T). That is an order status change, not an item
// transition, and PullTransitions does not report it.
func (o *Order) SplitItem(itemID, newItemID kernel.UUID, newQuantity int) (*Item, error) {
	if err := newItemID.Validate(); err != nil {
		return nil, err
	}
	it, err := o.Item(itemID)
	if err != nil {
		return nil, err
	}
	if newQuantity <= 0 || newQuantity >= it.quantity {
		return nil, errs.NewValueIsOutOfRangeErrorWithCause("new quantity", newQuantity, 1, it.quantity-1,
			fmt.Errorf("split quantity must be greater than 0 and less than %d", it.quantity))
	}
	if err = o.ensureNotShipped("split item"); err != nil {
		return nil, err
	}

	originalID := it.id
	split := &Item{
		id:                  newItemID,
		orderID:             o.id,
		sku:                 it.sku,
		productName:         it.productName,
		quantity:            newQuantity,
		unitPriceCents:      it.unitPriceCents,
		zone:                it.zone,
		station:             it.station,
		scheduledDate:       it.scheduledDate,
		eta:                 it.eta,
		drawingNumber:       it.drawingNumber,
		specialInstructions: it.specialInstructions,
		splitFromItemID:     &originalID,
		status:              ItemTendered,
		isConstructed:       true,
	}
	it.quantity -= newQuantity
	o.items = append(o.items, split)
	o.sync()
	return split, nil
}

// CompleteStockRun closes out a stock-run order: every item not yet finished
// becomes finished and the produced units are returned as inventory receipts.
// Items without a SKU produce no receipt.
func (o *Order) CompleteStockRun() ([]StockReceipt, error) {
	if !o.isStockRun {
		return nil, errs.NewValueIsInvalidErrorWithCause("order", fmt.Errorf("order %s is not a stock run", o.number))
	}
	if o.status.rank() >= OrderFinished.rank() {
		return nil, errs.NewTransitionIsForbiddenError("order", o.status.String(), OrderFinished.String(),
			"stock run is already complete")
	}
	if len(o.items) == 0 {
		return nil, errs.NewValueIsRequiredError("stock run items")
	}

	receipts := make([]StockReceipt, 0, len(o.items))
	for _, it := range o.items {
		if !it.status.IsDone() {
			if err := o.moveItem(it, func() (ItemStatus, error) { return ItemFinished, nil }); err != nil {
				return nil, err
			}
		}
		if it.sku == "" {
			continue
		}
		qty := it.producedQuantity
		if qty == 0 {
			qty = it.quantity
		}
		receipts = append(receipts, StockReceipt{SKU: it.sku, Quantity: qty})
	}

	o.sync()
	return receipts, nil
}

// SyncStatus recomputes status and progress from the items. It is idempotent
// and reports whether anything changed.
func (o *Order) SyncStatus() bool {
	status, progress := o.status, o.progress
	o.sync()
	return status != o.status || progress != o.progress
}

func (o *Order) sync() {
	statuses := o.ItemStatuses()
	o.status = AggregateStatus(o.status, statuses)
	o.progress = Progress(statuses)
	o.totalCents = o.sumLineTotals()
}

// moveItem applies a status transition to an item and records it.
func (o *Order) moveItem(it *Item, transition func() (ItemStatus, error)) error {
	next, err := transition()
	if err != nil {
		return err
	}
	if next != it.status {
		o.transitions = append(o.transitions, Transition{ItemID: it.id, From: it.status, To: next})
		it.status = next
	}
	return nil
}

func (o *Order) moveAll(from ItemStatus, transition func(*Item) func() (ItemStatus, error)) error {
	for _, it := range o.items {
		if it.status != from {
			continue
		}
		if err := o.moveItem(it, transition(it)); err != nil {
			return err
		}
	}
	o.sync()
	return nil
}

func (o *Order) forceFinishAll(actor kernel.Actor) error {
	if err := actor.Require(actor.CanForceComplete(), "force-complete an order"); err != nil {
		return err
	}
	for _, it := range o.items {
		if it.status < ItemInProduction {
			return errs.NewTransitionIsForbiddenError("order", o.status.String(), OrderFinished.String(),
				fmt.Sprintf("item %s is at status %s and has not reached production", it.id, it.status))
		}
	}
	return o.moveAll(ItemInProduction, func(it *Item) func() (ItemStatus, error) { return it.status.Finish })
}

func (o *Order) ensureNotShipped(action string) error {
	if o.status.IsShipped() {
		return errs.NewTransitionIsForbiddenError("order", o.status.String(), o.status.String(),
			fmt.Sprintf("cannot %s on an order that has been dispatched", action))
	}
	return nil
}

func (o *Order) sumLineTotals() int64 {
	var total int64
	for _, it := range o.items {
		total += it.LineTotalCents()
	}
	return total
}
