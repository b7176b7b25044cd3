package production

import (
	"fmt"
	"slices"

	"manufacturing/internal/pkg/errs"
)

// Status is the state of a production session.
//
//	active <──> paused
//	   │           │
//	   └──> completed <┘
type Status string

const (
	StatusActive    Status = "active"
	StatusPaused    Status = "paused"
	StatusCompleted Status = "completed"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusActive, StatusPaused, StatusCompleted:
		return Status(s), nil
	}
	return "", errs.NewValueIsInvalidErrorWithCause("session status",
		fmt.Errorf("%q is not one of active, paused, completed", s))
}

// PauseReason is why a station stopped work during a session.
type PauseReason string

const (
	PauseMaterial         PauseReason = "material"
	PauseCleaning         PauseReason = "cleaning"
	PauseBreak            PauseReason = "break"
	PauseBreakdown        PauseReason = "breakdown"
	PauseForklift         PauseReason = "forklift"
	PauseUrgentChangeover PauseReason = "urgent_changeover"
	PauseOther            PauseReason = "other"
)

var pauseReasons = []PauseReason{
	PauseMaterial, PauseCleaning, PauseBreak, PauseBreakdown,
	PauseForklift, PauseUrgentChangeover, PauseOther,
}

func ParsePauseReason(s string) (PauseReason, error) {
	r := PauseReason(s)
	if !slices.Contains(pauseReasons, r) {
		return "", errs.NewValueIsInvalidErrorWithCause("pause reason",
			fmt.Errorf("%q must be one of %v", s, pauseReasons))
	}
	return r, nil
}
