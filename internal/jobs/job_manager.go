package jobs

import (
	"fmt"
	"log/slog"

	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/cache"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	cacheSweepJob          *CacheSweepJob
	notificationCleanupJob *NotificationCleanupJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	counts *cache.Cache[int],
	notifications ports.NotificationRepository,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		cacheSweepJob:          NewCacheSweepJob(counts, logger),
		notificationCleanupJob: NewNotificationCleanupJob(notifications, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.cacheSweepJob.Start(); err != nil {
		return fmt.Errorf("failed to start cache sweep job: %w", err)
	}

	if err := jm.notificationCleanupJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.cacheSweepJob.Stop()
		return fmt.Errorf("failed to start notification cleanup job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.notificationCleanupJob.Stop()
	jm.cacheSweepJob.Stop()
}
