// Package services provides domain services for rules that span more than
// one aggregate of the manufacturing domain.
//
// The package includes:
//   - CapacityChecker: compares planned load on a station and day against its
//     configured daily limit
//   - ProductionCompleter: closes a production session, feeds its output into
//     the order item and opens the pending QA inspection that gates release
package services
