package jobs

import (
	"context"
	"log/slog"

	"marketplace/internal/pkg/cache"

	"github.com/robfig/cron/v3"
)

// CacheSweepJob periodically purges expired unread-count cache entries.
// Reads already evict expired entries lazily; the sweep reclaims memory for
// keys nobody asks about anymore.
type CacheSweepJob struct {
	counts *cache.Cache[int]
	cron   *cron.Cron
	logger *slog.Logger
}

// NewCacheSweepJob creates a job sweeping the given cache every five minutes.
func NewCacheSweepJob(counts *cache.Cache[int], logger *slog.Logger) *CacheSweepJob {
	return &CacheSweepJob{
		counts: counts,
		cron:   cron.New(),
		logger: logger.With("component", "cache_sweep_job"),
	}
}

// Start begins the cache sweep job.
func (j *CacheSweepJob) Start() error {
	_, err := j.cron.AddFunc("@every 5m", func() {
		removed := j.counts.Sweep()
		if removed > 0 {
			j.logger.DebugContext(context.Background(), "Swept expired cache entries", "removed", removed)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Cache sweep job started (running every 5 minutes)")
	return nil
}

// Stop stops the cache sweep job.
func (j *CacheSweepJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Cache sweep job stopped")
}
