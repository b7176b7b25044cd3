package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"manufacturing/internal/core/domain/model/notification"
	"manufacturing/internal/core/ports"
	"manufacturing/internal/pkg/errs"
	"manufacturing/internal/pkg/guard"
)

var ErrDispatchNotificationsCommandIsNotConstructed = errors.New(
	"DispatchNotificationsCommand must be created via NewDispatchNotificationsCommand constructor",
)

// DispatchNotificationsCommand drains up to batchSize queued messages.
type DispatchNotificationsCommand struct { //nolint:recvcheck //using for validation
	batchSize int

	guard guard.ConstructorGuard
}

func NewDispatchNotificationsCommand(batchSize int) (DispatchNotificationsCommand, error) {
	if batchSize <= 0 {
		return DispatchNotificationsCommand{}, errs.NewValueIsInvalidErrorWithCause("batch size",
			fmt.Errorf("%d is not greater than 0", batchSize))
	}
	return DispatchNotificationsCommand{batchSize: batchSize, guard: guard.NewConstructorGuard()}, nil
}

func (c DispatchNotificationsCommand) Validate() error {
	return c.guard.Validate(ErrDispatchNotificationsCommandIsNotConstructed)
}

func (c DispatchNotificationsCommand) BatchSize() int { return c.batchSize }

// NotificationRecorder observes delivery outcomes.
type NotificationRecorder interface {
	RecordNotification(status string)
}

// DispatchNotificationsResult counts the outcome of one drain.
type DispatchNotificationsResult struct {
	Sent   int
	Failed int
}

// DispatchNotificationsCommandHandler hands queued outbox messages to the
// mailer and records each outcome on the message. A failed send marks only
// that message failed; failed messages are not retried.
type DispatchNotificationsCommandHandler struct {
	uowFactory NotificationUoWFactory
	mailer     ports.Mailer
	recorder   NotificationRecorder
}

func NewDispatchNotificationsCommandHandler(
	uowFactory NotificationUoWFactory,
	mailer ports.Mailer,
	recorder NotificationRecorder,
) DispatchNotificationsCommandHandler {
	return DispatchNotificationsCommandHandler{uowFactory: uowFactory, mailer: mailer, recorder: recorder}
}

func (h *DispatchNotificationsCommandHandler) Handle(
	ctx context.Context,
	cmd DispatchNotificationsCommand,
) (DispatchNotificationsResult, error) {
	if err := cmd.Validate(); err != nil {
		return DispatchNotificationsResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return DispatchNotificationsResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.NotificationRepository()
	queued, err := repo.ListQueued(ctx, cmd.BatchSize())
	if err != nil {
		return DispatchNotificationsResult{}, err
	}

	var result DispatchNotificationsResult
	for _, msg := range queued {
		if sendErr := h.mailer.Send(ctx, msg.Recipient(), msg.Subject(), msg.Body()); sendErr != nil {
			msg.MarkFailed(sendErr)
			result.Failed++
		} else {
			msg.MarkSent(time.Now().UTC())
			result.Sent++
		}
		if err = repo.Update(ctx, msg); err != nil {
			return DispatchNotificationsResult{}, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return DispatchNotificationsResult{}, err
	}

	if h.recorder != nil {
		for range result.Sent {
			h.recorder.RecordNotification(string(notification.StatusSent))
		}
		for range result.Failed {
			h.recorder.RecordNotification(string(notification.StatusFailed))
		}
	}
	return result, nil
}
