// Package syncer reconciles the local document with its remote copy.
//
// Config and stats are versioned independently and each resolves by
// last-write-wins on its own timestamp. A Coordinator runs at most one
// reconciliation at a time and records every outcome in the sync settings.
package syncer

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/MrSnakeDoc/navsync/internal/logger"
	"github.com/MrSnakeDoc/navsync/internal/metrics"
	"github.com/MrSnakeDoc/navsync/internal/models"
	"github.com/MrSnakeDoc/navsync/internal/notifier"
	"github.com/MrSnakeDoc/navsync/internal/remote"
	"github.com/MrSnakeDoc/navsync/internal/store"
)

const (
	channelConfig = "config"
	channelStats  = "stats"
)

// BackendFactory opens the remote backend described by the settings.
type BackendFactory func(ctx context.Context, st models.SyncSettings) (remote.Backend, error)

type SkipReason string

const (
	SkipNone     SkipReason = ""
	SkipBusy     SkipReason = "busy"
	SkipDisabled SkipReason = "disabled"
)

// Result describes what one PerformSync call did.
type Result struct {
	Skipped SkipReason
	Config  Action
	Stats   Action
	Summary string
}

type Option func(*Coordinator)

// WithClock replaces time.Now for status timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Coordinator) { c.now = now }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Coordinator) { c.metrics = m }
}

type Coordinator struct {
	store   store.Store
	open    BackendFactory
	pub     notifier.Publisher
	now     func() time.Time
	metrics *metrics.Metrics
	lock    runLock

	committedConfigTS atomic.Int64
}

func New(st store.Store, open BackendFactory, pub notifier.Publisher, opts ...Option) *Coordinator {
	c := &Coordinator{
		store: st,
		open:  open,
		pub:   pub,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// PerformSync runs one reconciliation. A call made while another run is in
// progress returns at once with Skipped set to SkipBusy. Unless force is
// set, a disabled configuration returns SkipDisabled without touching the
// remote store or the status fields.
//
// Any failure after the check has started is recorded as
// "error: <message>" in the settings and returned as an *Error.
func (c *Coordinator) PerformSync(ctx context.Context, force bool) (Result, error) {
	release, ok := c.lock.tryAcquire()
	if !ok {
		logger.Debug("sync: run already in progress, skipping")
		c.metrics.ObserveRun(metrics.OutcomeBusy, 0)
		return Result{Skipped: SkipBusy}, nil
	}
	defer release()

	st, err := c.store.LoadSettings(ctx)
	if err != nil {
		return Result{}, asSyncError("load settings", err)
	}
	if !force && !st.Enabled {
		logger.Debug("sync: disabled, skipping")
		c.metrics.ObserveRun(metrics.OutcomeDisabled, 0)
		return Result{Skipped: SkipDisabled}, nil
	}

	started := c.now().UTC()
	if err := c.store.UpdateSettings(ctx, func(s *models.SyncSettings) error {
		s.LastCheckTime = started
		return nil
	}); err != nil {
		return Result{}, asSyncError("record check time", err)
	}

	res, err := c.reconcile(ctx, st, force)
	elapsed := c.now().Sub(started)
	if err != nil {
		serr := asSyncError("sync", err)
		c.recordStatus(ctx, func(s *models.SyncSettings) {
			s.LastSyncStatus = "error: " + serr.Error()
		})
		c.metrics.ObserveFailure(string(serr.Kind))
		c.metrics.ObserveRun(metrics.OutcomeError, elapsed)
		return res, serr
	}

	res.Summary = summarize(res.Config, res.Stats)
	finished := c.now().UTC()
	c.recordStatus(ctx, func(s *models.SyncSettings) {
		s.LastSyncStatus = res.Summary
		s.LastSyncSuccessTime = finished
	})
	c.metrics.ObserveRun(metrics.OutcomeSuccess, elapsed)
	logger.Debug("sync: %s (%s)", res.Summary, elapsed.Truncate(time.Millisecond))
	return res, nil
}

// staged holds pulled content until it is committed in one write.
type staged struct {
	config   *models.Config
	configTS int64
	stats    *models.Statistics
	statsTS  int64
}

func (c *Coordinator) reconcile(ctx context.Context, st models.SyncSettings, force bool) (Result, error) {
	res := Result{Config: ActionNone, Stats: ActionNone}

	if err := remote.Validate(st); err != nil {
		return res, configurationError(err)
	}
	backend, err := c.open(ctx, st)
	if err != nil {
		return res, configurationError(err)
	}
	rs := remote.NewStore(backend)

	if err := rs.CheckReachable(ctx); err != nil {
		return res, connectivityError(err)
	}

	doc, err := c.store.LoadDocument(ctx)
	if err != nil {
		return res, asSyncError("load document", err)
	}
	lc, ls := doc.UpdateTimestamp, doc.StatsTimestamp

	rv, err := readRemoteVersions(ctx, rs)
	if err != nil {
		return res, err
	}
	rc, rst := rv.config, rv.stats
	logger.Debug("sync: config local=%d remote=%d, stats local=%d remote=%d", lc, rc, ls, rst)

	var pulled staged

	res.Config = decide(lc, rc)
	switch res.Config {
	case ActionPush:
		if err := rs.WriteConfig(ctx, models.RemoteConfigFile{
			Version:         doc.Version,
			Config:          doc.Config,
			UpdateTimestamp: lc,
		}); err != nil {
			return res, transferError("write", remote.ConfigFile, err)
		}
		rc = lc
	case ActionPull:
		f := rv.configFile
		if f == nil {
			if f, err = rs.ReadConfig(ctx); err != nil {
				return res, transferError("read", remote.ConfigFile, err)
			}
		}
		if f == nil {
			return res, transferError("read", remote.ConfigFile, errors.New("remote reports a newer version but the file is missing"))
		}
		pulled.config = &f.Config
		pulled.configTS = max(rc, f.UpdateTimestamp)
	}

	res.Stats = decide(ls, rst)
	switch res.Stats {
	case ActionPush:
		if err := rs.WriteStats(ctx, models.RemoteStatsFile{
			Statistics:     doc.Statistics,
			StatsTimestamp: ls,
		}); err != nil {
			return res, transferError("write", remote.StatsFile, err)
		}
		rst = ls
	case ActionPull:
		f := rv.statsFile
		if f == nil {
			if f, err = rs.ReadStats(ctx); err != nil {
				return res, transferError("read", remote.StatsFile, err)
			}
		}
		if f == nil {
			return res, transferError("read", remote.StatsFile, errors.New("remote reports a newer version but the file is missing"))
		}
		pulled.stats = &f.Statistics
		pulled.statsTS = max(rst, f.StatsTimestamp)
	}

	if res.Config == ActionPush || res.Stats == ActionPush {
		if err := rs.WriteMeta(ctx, models.RemoteMeta{
			UpdateTimestamp: rc,
			StatsUpdateTime: rst,
		}); err != nil {
			return res, transferError("write", remote.MetaFile, err)
		}
	}
	if res.Config == ActionPush {
		c.metrics.ObserveTransfer(channelConfig, string(ActionPush))
	}
	if res.Stats == ActionPush {
		c.metrics.ObserveTransfer(channelStats, string(ActionPush))
	}

	var applied appliedChannels
	if pulled.config != nil || pulled.stats != nil {
		if applied, err = c.commit(ctx, pulled, lc, ls); err != nil {
			return res, err
		}
	}
	if pulled.config != nil && !applied.config {
		logger.Info("sync: local config changed during sync, keeping local version")
		res.Config = ActionNone
	}
	if pulled.stats != nil && !applied.stats {
		logger.Debug("sync: local stats changed during sync, keeping local version")
		res.Stats = ActionNone
	}
	if applied.config {
		c.metrics.ObserveTransfer(channelConfig, string(ActionPull))
	}
	if applied.stats {
		c.metrics.ObserveTransfer(channelStats, string(ActionPull))
	}

	switch {
	case applied.config:
		c.notify(ctx, notifier.Event{
			Kind: notifier.KindRefresh,
			Message: fmt.Sprintf("sync complete: local bookmarks updated (%d -> %d icons)",
				doc.Config.IconCount(), pulled.config.IconCount()),
		})
	case force && res.Stats != ActionNone:
		c.notify(ctx, notifier.Event{
			Kind:    notifier.KindToast,
			Message: "sync complete: usage statistics " + statsVerb(res.Stats),
		})
	}
	return res, nil
}

func statsVerb(a Action) string {
	if a == ActionPush {
		return "uploaded"
	}
	return "updated"
}

type appliedChannels struct {
	config bool
	stats  bool
}

// commit writes the pulled channels in a single document update. A channel
// is applied only if its local timestamp is still the one the run compared
// against; a newer local edit wins and is pushed on the next run.
// CommittedConfigTimestamp returns the config timestamp of the last pulled
// config written to the local document, or 0 if none was.
func (c *Coordinator) CommittedConfigTimestamp() int64 {
	return c.committedConfigTS.Load()
}

func (c *Coordinator) commit(ctx context.Context, pulled staged, lc, ls int64) (appliedChannels, error) {
	var applied appliedChannels

	if err := c.store.BackupDocument(ctx); err != nil {
		logger.Warn("sync: could not back up local document: %v", err)
	}

	err := c.store.UpdateDocument(ctx, func(d *models.Document) error {
		applied = appliedChannels{}
		if pulled.config != nil && d.UpdateTimestamp == lc {
			d.Config = *pulled.config
			d.UpdateTimestamp = pulled.configTS
			applied.config = true
		}
		if pulled.stats != nil && d.StatsTimestamp == ls {
			d.Statistics = *pulled.stats
			d.StatsTimestamp = pulled.statsTS
			applied.stats = true
		}
		if !applied.config && !applied.stats {
			return store.ErrAbort
		}
		d.Normalize()
		if applied.config {
			// Stored before the write so a watcher woken by it already sees it.
			c.committedConfigTS.Store(pulled.configTS)
		}
		return nil
	})
	if err != nil {
		return appliedChannels{}, asSyncError("commit document", err)
	}
	return applied, nil
}

func (c *Coordinator) notify(ctx context.Context, ev notifier.Event) {
	if c.pub == nil {
		return
	}
	c.metrics.ObserveNotification(string(ev.Kind))
	c.pub.Publish(ctx, ev)
}

// recordStatus re-reads the settings inside the update so concurrent edits
// to the configuration fields survive.
func (c *Coordinator) recordStatus(ctx context.Context, fn func(*models.SyncSettings)) {
	if err := c.store.UpdateSettings(ctx, func(s *models.SyncSettings) error {
		fn(s)
		return nil
	}); err != nil {
		logger.LogError("sync: could not record status: %v", err)
	}
}
