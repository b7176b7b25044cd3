// Package qa holds quality inspections. A pending final inspection is opened
// when production on an item completes; approving it is the gate that moves
// the item from P to F.
package qa
