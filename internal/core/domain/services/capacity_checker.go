package services

import (
	"fmt"
	"strings"

	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/pkg/errs"
)

// CapacityReport is the outcome of a capacity check for a station and day.
type CapacityReport struct {
	Station            string
	Date               kernel.Date
	MaxCapacity        int
	CurrentTotal       int
	AdditionalQuantity int
	NewTotal           int
	WouldExceed        bool
	RemainingCapacity  int
}

// CapacityChecker is advisory: it warns before a station is over-committed
// and never rejects scheduling.
//
// Example:
//
//	report, _ := services.NewCapacityChecker().Check("VIK-1", day, 500, 450, 100)
//	// report.WouldExceed == true, report.RemainingCapacity == 50
type CapacityChecker struct{}

func NewCapacityChecker() CapacityChecker {
	return CapacityChecker{}
}

// Check adds additional units to the current planned total and compares the
// result with maxCapacity. Remaining capacity is measured before the
// addition and never drops below zero.
func (CapacityChecker) Check(station string, date kernel.Date, maxCapacity, currentTotal, additional int) (CapacityReport, error) {
	if strings.TrimSpace(station) == "" {
		return CapacityReport{}, errs.NewValueIsRequiredError("station")
	}
	if err := date.Validate(); err != nil {
		return CapacityReport{}, err
	}
	if maxCapacity <= 0 {
		return CapacityReport{}, errs.NewValueIsInvalidErrorWithCause("max capacity", fmt.Errorf("%d is not greater than 0", maxCapacity))
	}
	if additional < 0 || currentTotal < 0 {
		return CapacityReport{}, errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("quantities cannot be negative"))
	}

	newTotal := currentTotal + additional
	return CapacityReport{
		Station:            station,
		Date:               date,
		MaxCapacity:        maxCapacity,
		CurrentTotal:       currentTotal,
		AdditionalQuantity: additional,
		NewTotal:           newTotal,
		WouldExceed:        newTotal > maxCapacity,
		RemainingCapacity:  max(0, maxCapacity-currentTotal),
	}, nil
}
