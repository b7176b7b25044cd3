// Package jobs provides scheduled background tasks for the manufacturing
// service, built on github.com/robfig/cron/v3.
//
// # Available Jobs
//
// NotificationDispatchJob drains the notification outbox: queued order
// acknowledgements and dispatch notices are handed to the mailer and marked
// sent or failed. Lifecycle operations only enqueue, so a slow or failing
// mail path never blocks them.
//
// # Usage
//
//	job := jobs.NewNotificationDispatchJob(handler, "*/30 * * * * *", 50, 20*time.Second, logger)
//	manager := jobs.NewJobManager(job)
//	if err := manager.StartAll(); err != nil {
//		return err
//	}
//	defer manager.StopAll()
//
// A failed drain is logged and messages still queued are picked up on the
// next tick. Messages the mailer rejected stay failed.
package jobs
