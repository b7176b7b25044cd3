package order

import (
	"fmt"

	"manufacturing/internal/pkg/errs"
)

// ItemStatus is the production state of a single order line.
//
// State transitions:
//
//	Tendered ──> CutList ──> Ready ──> InProduction ──> Finished ──> Dispatched
//	   (T)         (C)        (R)          (P)             (F)
//
// CutList to Ready happens only through docking completion. An item can
// never hold a delivery outcome; those exist on OrderStatus alone.
type ItemStatus int

const (
	// ItemUnknown catches uninitialised values.
	ItemUnknown ItemStatus = iota
	ItemTendered
	ItemCutList
	ItemReady
	ItemInProduction
	ItemFinished
	ItemDispatched
)

// OrderStatus is the summary state of an order. It shares the item
// enumeration and adds the two delivery outcomes.
type OrderStatus int

const (
	OrderUnknown OrderStatus = iota
	OrderTendered
	OrderCutList
	OrderReady
	OrderInProduction
	OrderFinished
	OrderDispatched
	OrderDelivered
	OrderCollected
)

var statusCodes = map[int]string{
	1: "T",
	2: "C",
	3: "R",
	4: "P",
	5: "F",
	6: "dispatched",
	7: "delivered",
	8: "collected",
}

// ParseItemStatus maps a wire code (T, C, R, P, F, dispatched) to an ItemStatus.
func ParseItemStatus(code string) (ItemStatus, error) {
	for s := ItemTendered; s <= ItemDispatched; s++ {
		if statusCodes[int(s)] == code {
			return s, nil
		}
	}
	return ItemUnknown, errs.NewValueIsInvalidErrorWithCause(
		"item status",
		fmt.Errorf("%q is not one of T, C, R, P, F, dispatched", code),
	)
}

// ParseOrderStatus maps a wire code to an OrderStatus, accepting the item
// codes plus delivered and collected.
func ParseOrderStatus(code string) (OrderStatus, error) {
	for s := OrderTendered; s <= OrderCollected; s++ {
		if statusCodes[int(s)] == code {
			return s, nil
		}
	}
	return OrderUnknown, errs.NewValueIsInvalidErrorWithCause(
		"order status",
		fmt.Errorf("%q is not one of T, C, R, P, F, dispatched, delivered, collected", code),
	)
}

// String returns the wire code, or "Unknown".
func (s ItemStatus) String() string {
	if code, ok := statusCodes[int(s)]; ok && s <= ItemDispatched {
		return code
	}
	return "Unknown"
}

func (s ItemStatus) Validate() error {
	if s < ItemTendered || s > ItemDispatched {
		return errs.NewValueIsInvalidErrorWithCause("item status", fmt.Errorf("%d is not a valid item status", s))
	}
	return nil
}

// OrderStatus lifts an item status into the order enumeration.
func (s ItemStatus) OrderStatus() OrderStatus {
	return OrderStatus(s)
}

// IsDone reports F or dispatched, the states counted as complete in progress.
func (s ItemStatus) IsDone() bool {
	return s == ItemFinished || s == ItemDispatched
}

// QueueForDocking moves a tendered item onto the cut list. An item already
// on the cut list stays there.
func (s ItemStatus) QueueForDocking() (ItemStatus, error) {
	if s != ItemTendered && s != ItemCutList {
		return ItemUnknown, itemTransitionError(s, ItemCutList, "only tendered items can be queued for docking")
	}
	return ItemCutList, nil
}

// CompleteDocking releases a cut-list item to ready.
func (s ItemStatus) CompleteDocking() (ItemStatus, error) {
	if s != ItemCutList {
		return ItemUnknown, itemTransitionError(s, ItemReady,
			"item must be in Cut List/Docking status (C) to complete docking")
	}
	return ItemReady, nil
}

// StartProduction moves a ready item into production.
func (s ItemStatus) StartProduction() (ItemStatus, error) {
	if s != ItemReady {
		return ItemUnknown, itemTransitionError(s, ItemInProduction, "item must be ready (R) to start production")
	}
	return ItemInProduction, nil
}

// Finish marks an in-production item as finished.
func (s ItemStatus) Finish() (ItemStatus, error) {
	if s != ItemInProduction {
		return ItemUnknown, itemTransitionError(s, ItemFinished, "item must be in production (P) to finish")
	}
	return ItemFinished, nil
}

// Dispatch ships a finished item.
func (s ItemStatus) Dispatch() (ItemStatus, error) {
	if s != ItemFinished {
		return ItemUnknown, itemTransitionError(s, ItemDispatched, "item must be finished (F) to dispatch")
	}
	return ItemDispatched, nil
}

// Advance is the generic status-update path. It allows staying put and
// single forward steps, and rejects regressions, jumps and the direct
// C to R step, which belongs to docking completion.
func (s ItemStatus) Advance(target ItemStatus) (ItemStatus, error) {
	if err := target.Validate(); err != nil {
		return ItemUnknown, err
	}
	switch {
	case target == s:
		return s, nil
	case target < s:
		return ItemUnknown, itemTransitionError(s, target, "item status cannot regress")
	case s == ItemCutList && target == ItemReady:
		return ItemUnknown, directDockingError("order item", s.String(), target.String())
	case target != s+1:
		return ItemUnknown, itemTransitionError(s, target, "item status advances one step at a time")
	}
	return target, nil
}

// String returns the wire code, or "Unknown".
func (s OrderStatus) String() string {
	if code, ok := statusCodes[int(s)]; ok {
		return code
	}
	return "Unknown"
}

func (s OrderStatus) Validate() error {
	if s < OrderTendered || s > OrderCollected {
		return errs.NewValueIsInvalidErrorWithCause("order status", fmt.Errorf("%d is not a valid order status", s))
	}
	return nil
}

// IsTerminal reports delivered or collected. Terminal statuses are never
// recomputed from items.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderDelivered || s == OrderCollected
}

// IsShipped reports dispatched or any delivery outcome.
func (s OrderStatus) IsShipped() bool {
	return s >= OrderDispatched
}

// rank orders statuses along the lifecycle. Both delivery outcomes share the
// final rank.
func (s OrderStatus) rank() int {
	if s == OrderCollected {
		return int(OrderDelivered)
	}
	return int(s)
}

// CanVerify reports whether the order may still be verified.
func (s OrderStatus) CanVerify() error {
	if s != OrderTendered && s != OrderCutList {
		return errs.NewTransitionIsForbiddenError("order", s.String(), OrderCutList.String(),
			fmt.Sprintf("order is already at status %q, cannot re-verify", s.String()))
	}
	return nil
}

// Deliver closes a dispatched order with the outcome matching its delivery type.
func (s OrderStatus) Deliver(deliveryType DeliveryType) (OrderStatus, error) {
	target := deliveryType.Outcome()
	if s != OrderDispatched {
		return OrderUnknown, errs.NewTransitionIsForbiddenError("order", s.String(), target.String(),
			"order must be dispatched before delivery is recorded")
	}
	return target, nil
}

// directDockingError rejects moving C to R outside docking completion.
func directDockingError(subject, from, to string) error {
	return errs.NewTransitionIsForbiddenError(subject, from, to,
		"cannot promote C to R directly, use the docking complete action instead; docking is a mandatory gate")
}

func itemTransitionError(from, to ItemStatus, reason string) error {
	return errs.NewTransitionIsForbiddenError("order item", from.String(), to.String(), reason)
}
