// Package jobs provides scheduled background tasks for the marketplace order
// core, implemented with github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. CacheSweepJob - Runs every five minutes to purge expired unread-count
// cache entries so idle keys do not accumulate between reads.
//
// 2. NotificationCleanupJob - Runs daily to delete notifications older than
// the 30-day retention window.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(counts, notifications, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// Failed job starts stop any already running jobs.
package jobs
