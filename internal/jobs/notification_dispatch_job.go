package jobs

import (
	"context"
	"log/slog"
	"time"

	"manufacturing/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// NotificationDispatcher drains the notification outbox once.
type NotificationDispatcher interface {
	Handle(ctx context.Context, cmd commands.DispatchNotificationsCommand) (commands.DispatchNotificationsResult, error)
}

// NotificationDispatchJob periodically hands queued notifications to the
// mailer. Runs never overlap: a slow drain makes the next tick skip.
type NotificationDispatchJob struct {
	handler   NotificationDispatcher
	spec      string
	batchSize int
	timeout   time.Duration
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewNotificationDispatchJob creates the job. spec is a six-field cron
// expression (seconds first).
func NewNotificationDispatchJob(
	handler NotificationDispatcher,
	spec string,
	batchSize int,
	timeout time.Duration,
	logger *slog.Logger,
) *NotificationDispatchJob {
	logger = logger.With("component", "notification_dispatch_job")
	return &NotificationDispatchJob{
		handler:   handler,
		spec:      spec,
		batchSize: batchSize,
		timeout:   timeout,
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		logger: logger,
	}
}

// Start schedules the job and starts its cron runner.
func (j *NotificationDispatchJob) Start() error {
	if _, err := j.cron.AddFunc(j.spec, j.run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Notification dispatch job started", "schedule", j.spec)
	return nil
}

// Stop stops scheduling and waits for a running drain to finish.
func (j *NotificationDispatchJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Notification dispatch job stopped")
}

func (j *NotificationDispatchJob) run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	cmd, err := commands.NewDispatchNotificationsCommand(j.batchSize)
	if err != nil {
		j.logger.ErrorContext(ctx, "Notification dispatch job misconfigured", "error", err)
		return
	}

	result, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Notification dispatch job failed", "error", err)
		return
	}
	if result.Sent > 0 || result.Failed > 0 {
		j.logger.InfoContext(ctx, "Notifications dispatched", "sent", result.Sent, "failed", result.Failed)
	}
}
