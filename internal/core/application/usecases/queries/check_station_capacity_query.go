package queries

import (
	"errors"
	"fmt"
	"strings"

	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/pkg/errs"
	"manufacturing/internal/pkg/guard"
)

var ErrCheckStationCapacityQueryIsNotConstructed = errors.New(
	"CheckStationCapacityQuery must be created via NewCheckStationCapacityQuery constructor",
)

// CheckStationCapacityQuery asks whether planning additional units on a
// station for a day would exceed its daily limit.
type CheckStationCapacityQuery struct {
	station    string
	date       kernel.Date
	additional int

	guard guard.ConstructorGuard
}

func NewCheckStationCapacityQuery(station string, date kernel.Date, additional int) (CheckStationCapacityQuery, error) {
	var errList []error
	station = strings.TrimSpace(station)
	if station == "" {
		errList = append(errList, errs.NewValueIsRequiredError("station"))
	}
	errList = append(errList, date.Validate())
	if additional < 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("additional quantity",
			fmt.Errorf("%d is negative", additional)))
	}
	if err := errors.Join(errList...); err != nil {
		return CheckStationCapacityQuery{}, err
	}

	return CheckStationCapacityQuery{
		station:    station,
		date:       date,
		additional: additional,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (q CheckStationCapacityQuery) Validate() error {
	return q.guard.Validate(ErrCheckStationCapacityQueryIsNotConstructed)
}

func (q CheckStationCapacityQuery) Station() string  { return q.station }
func (q CheckStationCapacityQuery) Date() kernel.Date { return q.date }
func (q CheckStationCapacityQuery) Additional() int   { return q.additional }
