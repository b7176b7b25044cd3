package production

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/pkg/errs"
	"manufacturing/internal/pkg/guard"
)

var ErrSessionIsNotConstructed = errors.New("Session must be created via NewSession or RestoreSession")

// Worker is one scan-on of a user at a session's station.
type Worker struct {
	ID        kernel.UUID
	UserID    kernel.UUID
	ScanOnAt  time.Time
	ScanOffAt *time.Time
}

func (w Worker) IsActive() bool {
	return w.ScanOffAt == nil
}

// Pause is one stoppage of a session. ResumedAt and DurationMinutes stay
// empty until the session is resumed or completed.
type Pause struct {
	ID              kernel.UUID
	Reason          PauseReason
	Notes           string
	PausedAt        time.Time
	ResumedAt       *time.Time
	DurationMinutes *float64
}

// Log is an immutable quantity adjustment with the running total it produced.
type Log struct {
	ID             kernel.UUID
	SessionID      kernel.UUID
	UserID         kernel.UUID
	QuantityChange int
	RunningTotal   int
	LoggedAt       time.Time
}

// Session is one work episode at a station, optionally against an order item.
//
// Business rules:
//   - Only active sessions accept quantity logs
//   - The produced quantity never drops below zero; every adjustment is
//     kept as a Log with the resulting running total
//   - Completing a session scans every worker off and closes an open pause
//   - A completed session accepts no further changes
type Session struct {
	id               kernel.UUID
	orderItemID      *kernel.UUID
	zone             string
	station          string
	targetQuantity   int
	producedQuantity int
	isSubAssembly    bool
	notes            string
	status           Status
	startedAt        time.Time
	endedAt          *time.Time

	workers []Worker
	pauses  []Pause
	newLogs []Log

	guard guard.ConstructorGuard
}

// NewSessionParams describe a session being opened on the floor.
type NewSessionParams struct {
	ID             kernel.UUID
	OrderItemID    *kernel.UUID
	Zone           string
	Station        string
	TargetQuantity int
	IsSubAssembly  bool
	Notes          string
	OpenedBy       kernel.UUID
	StartedAt      time.Time
}

// NewSession opens an active session with the opening user scanned on.
func NewSession(p NewSessionParams) (*Session, error) {
	var errList []error
	errList = append(errList, p.ID.Validate(), p.OpenedBy.Validate())
	if p.OrderItemID != nil {
		errList = append(errList, p.OrderItemID.Validate())
	}
	if strings.TrimSpace(p.Zone) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("zone"))
	}
	if strings.TrimSpace(p.Station) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("station"))
	}
	if p.TargetQuantity < 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("target quantity",
			fmt.Errorf("%d is negative", p.TargetQuantity)))
	}
	if err := errors.Join(errList...); err != nil {
		return nil, err
	}

	return &Session{
		id:             p.ID,
		orderItemID:    p.OrderItemID,
		zone:           strings.TrimSpace(p.Zone),
		station:        strings.TrimSpace(p.Station),
		targetQuantity: p.TargetQuantity,
		isSubAssembly:  p.IsSubAssembly,
		notes:          p.Notes,
		status:         StatusActive,
		startedAt:      p.StartedAt,
		workers:        []Worker{{ID: kernel.NewUUID(), UserID: p.OpenedBy, ScanOnAt: p.StartedAt}},
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// SessionRecord is the persisted state of a session header.
type SessionRecord struct {
	ID               kernel.UUID
	OrderItemID      *kernel.UUID
	Zone             string
	Station          string
	TargetQuantity   int
	ProducedQuantity int
	IsSubAssembly    bool
	Notes            string
	Status           Status
	StartedAt        time.Time
	EndedAt          *time.Time
}

// RestoreSession rebuilds a session with its workers and pauses from storage.
func RestoreSession(rec SessionRecord, workers []Worker, pauses []Pause) (*Session, error) {
	if err := rec.ID.Validate(); err != nil {
		return nil, err
	}
	if _, err := ParseStatus(string(rec.Status)); err != nil {
		return nil, err
	}

	return &Session{
		id:               rec.ID,
		orderItemID:      rec.OrderItemID,
		zone:             rec.Zone,
		station:          rec.Station,
		targetQuantity:   rec.TargetQuantity,
		producedQuantity: max(0, rec.ProducedQuantity),
		isSubAssembly:    rec.IsSubAssembly,
		notes:            rec.Notes,
		status:           rec.Status,
		startedAt:        rec.StartedAt,
		endedAt:          rec.EndedAt,
		workers:          workers,
		pauses:           pauses,
		guard:            guard.NewConstructorGuard(),
	}, nil
}

func (s *Session) Validate() error {
	if s == nil {
		return ErrSessionIsNotConstructed
	}
	return s.guard.Validate(ErrSessionIsNotConstructed)
}

func (s *Session) ID() kernel.UUID { return s.id }
func (s *Session) OrderItemID() *kernel.UUID { return s.orderItemID }
func (s *Session) Zone() string { return s.zone }
func (s *Session) Station() string { return s.station }
func (s *Session) TargetQuantity() int { return s.targetQuantity }
func (s *Session) ProducedQuantity() int { return s.producedQuantity }
func (s *Session) IsSubAssembly() bool { return s.isSubAssembly }
func (s *Session) Notes() string { return s.notes }
func (s *Session) Status() Status { return s.status }
func (s *Session) StartedAt() time.Time { return s.startedAt }
func (s *Session) EndedAt() *time.Time { return s.endedAt }
func (s *Session) Workers() []Worker { return slices.Clone(s.workers) }
func (s *Session) Pauses() []Pause { return slices.Clone(s.pauses) }

// PullLogs returns and clears the quantity logs written since the last call.
func (s *Session) PullLogs() []Log {
	logs := s.newLogs
	s.newLogs = nil
	return logs
}

// LogQuantity applies delta to the produced quantity, clamping the total at
// zero, and records the adjustment.
func (s *Session) LogQuantity(delta int, userID kernel.UUID, at time.Time) (Log, error) {
	if err := userID.Validate(); err != nil {
		return Log{}, err
	}
	if s.status != StatusActive {
		return Log{}, s.transitionError(s.status, "session is not active")
	}

	s.producedQuantity = max(0, s.producedQuantity+delta)
	entry := Log{
		ID:             kernel.NewUUID(),
		SessionID:      s.id,
		UserID:         userID,
		QuantityChange: delta,
		RunningTotal:   s.producedQuantity,
		LoggedAt:       at,
	}
	s.newLogs = append(s.newLogs, entry)
	return entry, nil
}

// Pause stops an active session for the given reason.
func (s *Session) Pause(reason PauseReason, notes string, at time.Time) error {
	if _, err := ParsePauseReason(string(reason)); err != nil {
		return err
	}
	if s.status != StatusActive {
		return s.transitionError(StatusPaused, "session is not active")
	}

	s.status = StatusPaused
	s.pauses = append(s.pauses, Pause{ID: kernel.NewUUID(), Reason: reason, Notes: notes, PausedAt: at})
	return nil
}

// Resume restarts a paused session and closes its open pause.
func (s *Session) Resume(at time.Time) error {
	if s.status != StatusPaused {
		return s.transitionError(StatusActive, "session is not paused")
	}

	s.closeOpenPause(at)
	s.status = StatusActive
	return nil
}

// AddWorker scans a user on. A user already scanned on is a conflict.
func (s *Session) AddWorker(userID kernel.UUID, at time.Time) (Worker, error) {
	if err := userID.Validate(); err != nil {
		return Worker{}, err
	}
	if s.status == StatusCompleted {
		return Worker{}, s.transitionError(s.status, "session is completed")
	}
	for _, w := range s.workers {
		if w.IsActive() && w.UserID.IsEqual(userID) {
			return Worker{}, errs.NewConflictError("session worker", userID.String())
		}
	}

	w := Worker{ID: kernel.NewUUID(), UserID: userID, ScanOnAt: at}
	s.workers = append(s.workers, w)
	return w, nil
}

// Complete closes the session. finalQuantity replaces the produced quantity
// when given. It returns the correction the final quantity made to the
// logged total.
func (s *Session) Complete(finalQuantity *int, at time.Time) (int, error) {
	if s.status == StatusCompleted {
		return 0, s.transitionError(s.status, "session is already completed")
	}
	final := s.producedQuantity
	if finalQuantity != nil {
		if *finalQuantity < 0 {
			return 0, errs.NewValueIsInvalidErrorWithCause("produced quantity",
				fmt.Errorf("%d is negative", *finalQuantity))
		}
		final = *finalQuantity
	}

	delta := final - s.producedQuantity
	s.producedQuantity = final
	s.closeOpenPause(at)
	for i := range s.workers {
		if s.workers[i].IsActive() {
			s.workers[i].ScanOffAt = &at
		}
	}
	s.status = StatusCompleted
	s.endedAt = &at
	return delta, nil
}

func (s *Session) closeOpenPause(at time.Time) {
	for i := range s.pauses {
		p := &s.pauses[i]
		if p.ResumedAt != nil {
			continue
		}
		minutes := math.Round(at.Sub(p.PausedAt).Minutes()*100) / 100
		p.ResumedAt = &at
		p.DurationMinutes = &minutes
	}
}

func (s *Session) transitionError(to Status, reason string) error {
	return errs.NewTransitionIsForbiddenError("production session", string(s.status), string(to), reason)
}
