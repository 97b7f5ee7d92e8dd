// Package scheduler drives background sync checks: one at startup, then one
// per configured interval.
package scheduler

import (
	"context"
	"time"

	"github.com/MrSnakeDoc/navsync/internal/logger"
	"github.com/MrSnakeDoc/navsync/internal/models"
	"github.com/MrSnakeDoc/navsync/internal/syncer"
)

type Syncer interface {
	PerformSync(ctx context.Context, force bool) (syncer.Result, error)
}

type SettingsLoader interface {
	LoadSettings(ctx context.Context) (models.SyncSettings, error)
}

type Option func(*Scheduler)

// WithStartupDelay postpones the first check after Run starts.
func WithStartupDelay(d time.Duration) Option {
	return func(s *Scheduler) { s.startupDelay = d }
}

// WithInterval overrides how the period is derived from the settings.
func WithInterval(fn func(models.SyncSettings) time.Duration) Option {
	return func(s *Scheduler) { s.interval = fn }
}

type Scheduler struct {
	sync         Syncer
	settings     SettingsLoader
	startupDelay time.Duration
	interval     func(models.SyncSettings) time.Duration
}

func New(sy Syncer, settings SettingsLoader, opts ...Option) *Scheduler {
	s := &Scheduler{
		sync:     sy,
		settings: settings,
		interval: models.SyncSettings.IntervalDuration,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run blocks until ctx is done. The interval is re-read from the settings
// before every wait, so edits apply from the next cycle.
func (s *Scheduler) Run(ctx context.Context) error {
	if s.startupDelay > 0 {
		if !sleep(ctx, s.startupDelay) {
			return nil
		}
	}
	s.Background(ctx, "startup")

	for {
		d := s.nextInterval(ctx)
		logger.Debug("scheduler: next check in %s", d)
		if !sleep(ctx, d) {
			return nil
		}
		s.Background(ctx, "periodic")
	}
}

// Background runs a non-forced check and swallows its error. The
// coordinator has already recorded the failure in the status.
func (s *Scheduler) Background(ctx context.Context, reason string) {
	res, err := s.sync.PerformSync(ctx, false)
	switch {
	case err != nil:
		logger.Warn("%s sync failed: %v", reason, err)
	case res.Skipped != syncer.SkipNone:
		logger.Debug("scheduler: %s sync skipped (%s)", reason, res.Skipped)
	default:
		logger.Debug("scheduler: %s sync: %s", reason, res.Summary)
	}
}

func (s *Scheduler) nextInterval(ctx context.Context) time.Duration {
	st, err := s.settings.LoadSettings(ctx)
	if err != nil {
		logger.Debug("scheduler: settings unreadable, using default interval: %v", err)
		st = models.DefaultSyncSettings()
	}
	return s.interval(st)
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
