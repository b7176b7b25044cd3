package schedule

import (
	"fmt"
	"strings"

	"manufacturing/internal/pkg/errs"
)

// StationCapacity is the configured daily unit limit of a station.
type StationCapacity struct {
	station        string
	maxUnitsPerDay int
}

func NewStationCapacity(station string, maxUnitsPerDay int) (StationCapacity, error) {
	station = strings.TrimSpace(station)
	if station == "" {
		return StationCapacity{}, errs.NewValueIsRequiredError("station")
	}
	if maxUnitsPerDay <= 0 {
		return StationCapacity{}, errs.NewValueIsInvalidErrorWithCause("max units per day",
			fmt.Errorf("%d is not greater than 0", maxUnitsPerDay))
	}
	return StationCapacity{station: station, maxUnitsPerDay: maxUnitsPerDay}, nil
}

func (c StationCapacity) Station() string { return c.station }
func (c StationCapacity) MaxUnitsPerDay() int { return c.maxUnitsPerDay }
