// Package schedule plans order items onto stations and days, and holds the
// daily capacity configured per station.
package schedule
