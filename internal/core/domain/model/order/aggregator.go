package order

import "fmt"

// AggregateStatus derives an order's status from its items' statuses.
//
// Precedence, highest first:
//  1. delivered or collected on the order is kept as is
//  2. every item F or dispatched, at least one dispatched: dispatched
//  3. every item F: F
//  4. any item P: P
//  5. any item R: R
//  6. any item C: C
//  7. otherwise T
//
// An order without items keeps its current status.
func AggregateStatus(current OrderStatus, items []ItemStatus) OrderStatus {
	if current.IsTerminal() || len(items) == 0 {
		return current
	}

	counts := Breakdown(items)
	done := counts[ItemFinished] + counts[ItemDispatched]

	switch {
	case done == len(items) && counts[ItemDispatched] > 0:
		return OrderDispatched
	case counts[ItemFinished] == len(items):
		return OrderFinished
	case counts[ItemInProduction] > 0:
		return OrderInProduction
	case counts[ItemReady] > 0:
		return OrderReady
	case counts[ItemCutList] > 0:
		return OrderCutList
	default:
		return OrderTendered
	}
}

// Progress renders "{done}/{total} items complete", counting F and dispatched as done.
func Progress(items []ItemStatus) string {
	done := 0
	for _, s := range items {
		if s.IsDone() {
			done++
		}
	}
	return fmt.Sprintf("%d/%d items complete", done, len(items))
}

// Breakdown counts items per status.
func Breakdown(items []ItemStatus) map[ItemStatus]int {
	counts := make(map[ItemStatus]int, len(items))
	for _, s := range items {
		counts[s]++
	}
	return counts
}
