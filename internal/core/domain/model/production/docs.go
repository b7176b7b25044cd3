// Package production models the work episodes on factory stations.
//
// A Session tracks the units produced at one station, optionally against an
// order item, along with the workers scanned on and the pauses taken. The
// session itself never changes an item's status: its completion feeds the
// QA gate, see services.ProductionCompleter.
package production
