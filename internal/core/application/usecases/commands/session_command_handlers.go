package commands

import (
	"context"
	"time"

	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/core/domain/model/production"
)

// mutateSession loads a session, applies fn and stores the result in one
// transaction.
func mutateSession(ctx context.Context, factory ProductionUoWFactory, id kernel.UUID, fn func(*production.Session) error) error {
	uow := factory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.SessionRepository()
	session, err := repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if err = fn(session); err != nil {
		return err
	}
	if err = repo.Update(ctx, session); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// LogProductionQuantityCommandHandler appends an immutable log row; the
// running total never drops below zero.
type LogProductionQuantityCommandHandler struct {
	uowFactory ProductionUoWFactory
}

func NewLogProductionQuantityCommandHandler(uowFactory ProductionUoWFactory) LogProductionQuantityCommandHandler {
	return LogProductionQuantityCommandHandler{uowFactory: uowFactory}
}

// Handle returns the log written, carrying the new running total.
func (h *LogProductionQuantityCommandHandler) Handle(ctx context.Context, cmd LogProductionQuantityCommand) (production.Log, error) {
	if err := cmd.Validate(); err != nil {
		return production.Log{}, err
	}

	var entry production.Log
	err := mutateSession(ctx, h.uowFactory, cmd.SessionID(), func(s *production.Session) error {
		var err error
		entry, err = s.LogQuantity(cmd.Delta(), cmd.UserID(), time.Now().UTC())
		return err
	})
	if err != nil {
		return production.Log{}, err
	}
	return entry, nil
}

type PauseProductionSessionCommandHandler struct {
	uowFactory ProductionUoWFactory
}

func NewPauseProductionSessionCommandHandler(uowFactory ProductionUoWFactory) PauseProductionSessionCommandHandler {
	return PauseProductionSessionCommandHandler{uowFactory: uowFactory}
}

func (h *PauseProductionSessionCommandHandler) Handle(ctx context.Context, cmd PauseProductionSessionCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return mutateSession(ctx, h.uowFactory, cmd.SessionID(), func(s *production.Session) error {
		return s.Pause(cmd.Reason(), cmd.Notes(), time.Now().UTC())
	})
}

type ResumeProductionSessionCommandHandler struct {
	uowFactory ProductionUoWFactory
}

func NewResumeProductionSessionCommandHandler(uowFactory ProductionUoWFactory) ResumeProductionSessionCommandHandler {
	return ResumeProductionSessionCommandHandler{uowFactory: uowFactory}
}

func (h *ResumeProductionSessionCommandHandler) Handle(ctx context.Context, cmd ResumeProductionSessionCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return mutateSession(ctx, h.uowFactory, cmd.SessionID(), func(s *production.Session) error {
		return s.Resume(time.Now().UTC())
	})
}

type AddSessionWorkerCommandHandler struct {
	uowFactory ProductionUoWFactory
}

func NewAddSessionWorkerCommandHandler(uowFactory ProductionUoWFactory) AddSessionWorkerCommandHandler {
	return AddSessionWorkerCommandHandler{uowFactory: uowFactory}
}

func (h *AddSessionWorkerCommandHandler) Handle(ctx context.Context, cmd AddSessionWorkerCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return mutateSession(ctx, h.uowFactory, cmd.SessionID(), func(s *production.Session) error {
		_, err := s.AddWorker(cmd.UserID(), time.Now().UTC())
		return err
	})
}
