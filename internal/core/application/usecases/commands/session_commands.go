package commands

import (
	"errors"
	"strings"

	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/core/domain/model/production"
	"manufacturing/internal/pkg/errs"
	"manufacturing/internal/pkg/guard"
)

var (
	ErrLogProductionQuantityCommandIsNotConstructed = errors.New(
		"LogProductionQuantityCommand must be created via NewLogProductionQuantityCommand constructor",
	)
	ErrPauseProductionSessionCommandIsNotConstructed = errors.New(
		"PauseProductionSessionCommand must be created via NewPauseProductionSessionCommand constructor",
	)
	ErrResumeProductionSessionCommandIsNotConstructed = errors.New(
		"ResumeProductionSessionCommand must be created via NewResumeProductionSessionCommand constructor",
	)
	ErrAddSessionWorkerCommandIsNotConstructed = errors.New(
		"AddSessionWorkerCommand must be created via NewAddSessionWorkerCommand constructor",
	)
)

// LogProductionQuantityCommand adjusts a session's produced count. Negative
// deltas correct miscounts.
type LogProductionQuantityCommand struct { //nolint:recvcheck //using for validation
	sessionID kernel.UUID
	delta     int
	userID    kernel.UUID

	guard guard.ConstructorGuard
}

func NewLogProductionQuantityCommand(sessionID kernel.UUID, delta int, userID kernel.UUID) (LogProductionQuantityCommand, error) {
	var errList []error
	errList = append(errList, sessionID.Validate(), userID.Validate())
	if delta == 0 {
		errList = append(errList, errs.NewValueIsRequiredError("quantity change"))
	}
	if err := errors.Join(errList...); err != nil {
		return LogProductionQuantityCommand{}, err
	}
	return LogProductionQuantityCommand{
		sessionID: sessionID,
		delta:     delta,
		userID:    userID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c LogProductionQuantityCommand) Validate() error {
	return c.guard.Validate(ErrLogProductionQuantityCommandIsNotConstructed)
}

func (c LogProductionQuantityCommand) SessionID() kernel.UUID { return c.sessionID }
func (c LogProductionQuantityCommand) Delta() int { return c.delta }
func (c LogProductionQuantityCommand) UserID() kernel.UUID { return c.userID }

type PauseProductionSessionCommand struct { //nolint:recvcheck //using for validation
	sessionID kernel.UUID
	reason    production.PauseReason
	notes     string

	guard guard.ConstructorGuard
}

func NewPauseProductionSessionCommand(sessionID kernel.UUID, reason, notes string) (PauseProductionSessionCommand, error) {
	r, err := production.ParsePauseReason(reason)
	if err = errors.Join(sessionID.Validate(), err); err != nil {
		return PauseProductionSessionCommand{}, err
	}
	return PauseProductionSessionCommand{
		sessionID: sessionID,
		reason:    r,
		notes:     strings.TrimSpace(notes),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c PauseProductionSessionCommand) Validate() error {
	return c.guard.Validate(ErrPauseProductionSessionCommandIsNotConstructed)
}

func (c PauseProductionSessionCommand) SessionID() kernel.UUID { return c.sessionID }
func (c PauseProductionSessionCommand) Reason() production.PauseReason { return c.reason }
func (c PauseProductionSessionCommand) Notes() string { return c.notes }

type ResumeProductionSessionCommand struct { //nolint:recvcheck //using for validation
	sessionID kernel.UUID

	guard guard.ConstructorGuard
}

func NewResumeProductionSessionCommand(sessionID kernel.UUID) (ResumeProductionSessionCommand, error) {
	if err := sessionID.Validate(); err != nil {
		return ResumeProductionSessionCommand{}, err
	}
	return ResumeProductionSessionCommand{sessionID: sessionID, guard: guard.NewConstructorGuard()}, nil
}

func (c ResumeProductionSessionCommand) Validate() error {
	return c.guard.Validate(ErrResumeProductionSessionCommandIsNotConstructed)
}

func (c ResumeProductionSessionCommand) SessionID() kernel.UUID { return c.sessionID }

// AddSessionWorkerCommand scans a user on to a running session.
type AddSessionWorkerCommand struct { //nolint:recvcheck //using for validation
	sessionID kernel.UUID
	userID    kernel.UUID

	guard guard.ConstructorGuard
}

func NewAddSessionWorkerCommand(sessionID, userID kernel.UUID) (AddSessionWorkerCommand, error) {
	if err := errors.Join(sessionID.Validate(), userID.Validate()); err != nil {
		return AddSessionWorkerCommand{}, err
	}
	return AddSessionWorkerCommand{sessionID: sessionID, userID: userID, guard: guard.NewConstructorGuard()}, nil
}

func (c AddSessionWorkerCommand) Validate() error {
	return c.guard.Validate(ErrAddSessionWorkerCommandIsNotConstructed)
}

func (c AddSessionWorkerCommand) SessionID() kernel.UUID { return c.sessionID }
func (c AddSessionWorkerCommand) UserID() kernel.UUID { return c.userID }
