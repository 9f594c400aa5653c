// Package scheduler runs periodic maintenance jobs on a cron schedule.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/fintrack/backend/internal/metrics"
)

const purgeJob = "purge_expired_recommendations"

// Config holds the scheduler configuration
type Config struct {
	// Schedule is a standard five-field cron expression, e.g. "15 3 * * *".
	Schedule string
	// Timeout bounds a single run of the job.
	Timeout time.Duration
	Enabled bool
}

// DefaultConfig returns the default scheduler configuration
func DefaultConfig() Config {
	return Config{
		Schedule: "15 3 * * *", // daily at 03:15
		Timeout:  2 * time.Minute,
		Enabled:  true,
	}
}

// Purger deletes stale savings recommendations and reports how many went.
type Purger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

// Scheduler manages the recommendation purge job.
type Scheduler struct {
	cron    *cron.Cron
	purger  Purger
	config  Config
	logger  *slog.Logger
	metrics metrics.Recorder
	entryID cron.EntryID
}

// New creates a new Scheduler instance
func New(cfg Config, purger Purger, rec metrics.Recorder, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	if rec == nil {
		rec = metrics.Nop{}
	}

	return &Scheduler{
		cron:    cron.New(cron.WithSeconds()),
		purger:  purger,
		config:  cfg,
		logger:  logger,
		metrics: rec,
	}
}

// Start registers the job and starts the cron runner.
func (s *Scheduler) Start() error {
	if !s.config.Enabled {
		s.logger.Info("Scheduler is disabled, skipping start")
		return nil
	}

	// The runner parses six fields; pin the seconds to 0.
	entryID, err := s.cron.AddFunc("0 "+s.config.Schedule, s.runPurgeJob)
	if err != nil {
		return err
	}

	s.entryID = entryID
	s.cron.Start()

	s.logger.Info("Scheduler started",
		slog.String("schedule", s.config.Schedule),
		slog.Duration("timeout", s.config.Timeout),
	)

	return nil
}

// Stop halts the runner; the returned context is done once a running job
// has returned.
func (s *Scheduler) Stop() context.Context {
	s.logger.Info("Stopping scheduler...")
	return s.cron.Stop()
}

// RunNow triggers an immediate purge in the background.
func (s *Scheduler) RunNow() {
	go s.runPurgeJob()
}

func (s *Scheduler) runPurgeJob() {
	ctx, cancel := context.WithTimeout(context.Background(), s.config.Timeout)
	defer cancel()

	start := time.Now()
	n, err := s.purger.PurgeExpired(ctx)
	duration := time.Since(start)
	s.metrics.ObserveJob(purgeJob, duration, err)

	if err != nil {
		s.logger.Error("Purge job failed",
			slog.String("error", err.Error()),
			slog.Duration("duration", duration),
		)
		return
	}

	s.logger.Info("Purge job completed",
		slog.Int64("recommendations_purged", n),
		slog.Duration("duration", duration),
	)
}

// NextRun returns the next scheduled run, or the zero time when not started.
func (s *Scheduler) NextRun() time.Time {
	if s.entryID == 0 {
		return time.Time{}
	}
	return s.cron.Entry(s.entryID).Next
}

// IsRunning reports whether the job has been registered.
func (s *Scheduler) IsRunning() bool {
	return s.cron != nil && len(s.cron.Entries()) > 0
}
