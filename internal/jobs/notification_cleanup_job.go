package jobs

import (
	"context"
	"log/slog"
	"time"

	"marketplace/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// notificationRetention is how long notifications are kept before the daily
// cleanup removes them.
const notificationRetention = 30 * 24 * time.Hour

// NotificationCleanupJob deletes notifications past the retention window.
type NotificationCleanupJob struct {
	notifications ports.NotificationRepository
	cron          *cron.Cron
	logger        *slog.Logger
}

// NewNotificationCleanupJob creates the daily retention job.
func NewNotificationCleanupJob(
	notifications ports.NotificationRepository,
	logger *slog.Logger,
) *NotificationCleanupJob {
	return &NotificationCleanupJob{
		notifications: notifications,
		cron:          cron.New(),
		logger:        logger.With("component", "notification_cleanup_job"),
	}
}

// Start begins the notification cleanup job.
func (j *NotificationCleanupJob) Start() error {
	_, err := j.cron.AddFunc("@daily", func() {
		ctx := context.Background()
		cutoff := time.Now().UTC().Add(-notificationRetention)

		removed, cleanupErr := j.notifications.DeleteOlderThan(ctx, cutoff)
		if cleanupErr != nil {
			j.logger.ErrorContext(ctx, "Notification cleanup job failed", "error", cleanupErr)
			return
		}
		if removed > 0 {
			j.logger.InfoContext(ctx, "Deleted expired notifications", "removed", removed, "cutoff", cutoff)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Notification cleanup job started (running daily)")
	return nil
}

// Stop stops the notification cleanup job.
func (j *NotificationCleanupJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Notification cleanup job stopped")
}
