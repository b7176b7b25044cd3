// Package order provides the Order aggregate and the production lifecycle of
// its items.
//
// The package includes:
//   - ItemStatus and OrderStatus: two enumerations sharing the lifecycle
//     T -> C -> R -> P -> F -> dispatched, with delivered and collected
//     available to orders only
//   - AggregateStatus and Progress: the derivation of an order's status and
//     progress string from its items
//   - Order and Item: the aggregate root and the lines it owns
//
// Key business rules:
//   - Item statuses only move forward
//   - C to R happens only through docking completion, never through the
//     generic status update
//   - P to F happens through QA release or a force-complete by an authorised role
//   - Every item change recomputes the order status in the same call
//   - Splitting an item preserves the total quantity across both lines
package order
