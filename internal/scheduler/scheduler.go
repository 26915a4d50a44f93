package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const reloadTimeout = 2 * time.Minute

// Reloader re-reads reference data.
type Reloader interface {
	Reload(ctx context.Context) error
}

// Sweeper drops idle sessions.
type Sweeper interface {
	Sweep() int
}

// Scheduler manages scheduled tasks. Specs use the standard five-field cron
// syntax or the "@every" descriptors.
type Scheduler struct {
	cron   *cron.Cron
	logger *zap.Logger
}

// NewScheduler creates a new scheduler instance.
func NewScheduler(logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Scheduler{
		cron:   cron.New(),
		logger: logger,
	}
}

// RefreshCatalog schedules a reference data reload.
func (s *Scheduler) RefreshCatalog(spec string, reloader Reloader) error {
	if _, err := s.cron.AddFunc(spec, func() { s.refreshCatalog(reloader) }); err != nil {
		return fmt.Errorf("schedule catalog refresh %q: %w", spec, err)
	}
	s.logger.Info("catalog refresh scheduled", zap.String("spec", spec))
	return nil
}

// SweepSessions schedules the removal of idle sessions.
func (s *Scheduler) SweepSessions(spec string, sweeper Sweeper) error {
	if _, err := s.cron.AddFunc(spec, func() { s.sweepSessions(sweeper) }); err != nil {
		return fmt.Errorf("schedule session sweep %q: %w", spec, err)
	}
	s.logger.Info("session sweep scheduled", zap.String("spec", spec))
	return nil
}

// Start starts the scheduler.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.Int("jobs", len(s.cron.Entries())))
	s.cron.Start()
}

// Stop stops the scheduler and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) refreshCatalog(reloader Reloader) {
	s.logger.Info("refreshing catalog")
	ctx, cancel := context.WithTimeout(context.Background(), reloadTimeout)
	defer cancel()

	start := time.Now()
	if err := reloader.Reload(ctx); err != nil {
		s.logger.Error("failed to refresh catalog", zap.Error(err))
		return
	}
	s.logger.Info("catalog refreshed", zap.Duration("duration", time.Since(start)))
}

func (s *Scheduler) sweepSessions(sweeper Sweeper) {
	if removed := sweeper.Sweep(); removed > 0 {
		s.logger.Info("idle sessions removed", zap.Int("count", removed))
	}
}
