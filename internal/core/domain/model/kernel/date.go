package kernel

import (
	"fmt"
	"time"

	"manufacturing/internal/pkg/errs"
	"manufacturing/internal/pkg/guard"
)

// DateLayout is the wire and storage format of a calendar day.
const DateLayout = "2006-01-02"

var ErrDateIsNotConstructed = errs.NewValueIsRequiredError("Date must be created via NewDate or ParseDate")

// Date is a calendar day without time of day, used for scheduled
// production dates, ETAs and capacity lookups.
type Date struct {
	t     time.Time
	guard guard.ConstructorGuard
}

// NewDate normalises t to midnight UTC of its calendar day.
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{t: time.Date(y, m, d, 0, 0, 0, 0, time.UTC), guard: guard.NewConstructorGuard()}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, errs.NewValueIsInvalidErrorWithCause("date", fmt.Errorf("%q is not YYYY-MM-DD", s))
	}
	return NewDate(t), nil
}

func (d Date) Validate() error {
	return d.guard.Validate(ErrDateIsNotConstructed)
}

func (d Date) Time() time.Time {
	return d.t
}

func (d Date) String() string {
	if d.Validate() != nil {
		return ""
	}
	return d.t.Format(DateLayout)
}

func (d Date) IsEqual(other Date) bool {
	return d.t.Equal(other.t)
}

// DatePtr converts an optional time into an optional Date.
func DatePtr(t *time.Time) *Date {
	if t == nil {
		return nil
	}
	d := NewDate(*t)
	return &d
}
