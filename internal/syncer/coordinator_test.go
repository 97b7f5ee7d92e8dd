package syncer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/MrSnakeDoc/navsync/internal/config"
	"github.com/MrSnakeDoc/navsync/internal/logger"
	"github.com/MrSnakeDoc/navsync/internal/metrics"
	"github.com/MrSnakeDoc/navsync/internal/models"
	"github.com/MrSnakeDoc/navsync/internal/notifier"
	"github.com/MrSnakeDoc/navsync/internal/remote"
	"github.com/MrSnakeDoc/navsync/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.UseTestMode()
	os.Exit(m.Run())
}

// --- harness ---

type recordingPublisher struct {
	mu     sync.Mutex
	events []notifier.Event
}

func (p *recordingPublisher) Publish(_ context.Context, ev notifier.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
}

func (p *recordingPublisher) kinds() []notifier.Kind {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]notifier.Kind, 0, len(p.events))
	for _, ev := range p.events {
		out = append(out, ev.Kind)
	}
	return out
}

type harness struct {
	t       *testing.T
	dir     string
	fs      *store.FS
	backend *remote.MockBackend
	remote  *remote.Store
	pub     *recordingPublisher
	coord   *Coordinator
	now     time.Time
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	dir := t.TempDir()
	fs, err := store.NewFS(dir)
	require.NoError(t, err)

	h := &harness{
		t:       t,
		dir:     dir,
		fs:      fs,
		backend: remote.NewMockBackend(),
		pub:     &recordingPublisher{},
		now:     time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	h.remote = remote.NewStore(h.backend)
	h.coord = h.newCoordinator(fs)
	return h
}

func (h *harness) newCoordinator(st store.Store) *Coordinator {
	open := func(context.Context, models.SyncSettings) (remote.Backend, error) {
		return h.backend, nil
	}
	return New(st, open, h.pub,
		WithClock(func() time.Time { return h.now }),
		WithMetrics(metrics.New()),
	)
}

func enabledSettings() models.SyncSettings {
	st := models.DefaultSyncSettings()
	st.Enabled = true
	st.ServerURL = "https://dav.example.com/navsync/"
	st.Username = "alice"
	st.Password = "secret"
	return st
}

func (h *harness) setSettings(st models.SyncSettings) {
	h.t.Helper()
	require.NoError(h.t, h.fs.UpdateSettings(context.Background(), func(s *models.SyncSettings) error {
		*s = st
		return nil
	}))
}

func (h *harness) settings() models.SyncSettings {
	h.t.Helper()
	st, err := h.fs.LoadSettings(context.Background())
	require.NoError(h.t, err)
	return st
}

func (h *harness) setLocal(configTS, statsTS int64, icons int) {
	h.t.Helper()
	require.NoError(h.t, h.fs.UpdateDocument(context.Background(), func(d *models.Document) error {
		d.Config = configWithIcons("local", icons)
		d.UpdateTimestamp = configTS
		d.StatsTimestamp = statsTS
		return nil
	}))
}

func (h *harness) local() models.Document {
	h.t.Helper()
	doc, err := h.fs.LoadDocument(context.Background())
	require.NoError(h.t, err)
	return doc
}

func (h *harness) seedRemote(meta *models.RemoteMeta, cfg *models.RemoteConfigFile, stats *models.RemoteStatsFile) {
	h.t.Helper()
	ctx := context.Background()
	if meta != nil {
		require.NoError(h.t, h.remote.WriteMeta(ctx, *meta))
	}
	if cfg != nil {
		require.NoError(h.t, h.remote.WriteConfig(ctx, *cfg))
	}
	if stats != nil {
		require.NoError(h.t, h.remote.WriteStats(ctx, *stats))
	}
	h.backend.ResetCalls()
}

func (h *harness) remoteMeta() *models.RemoteMeta {
	h.t.Helper()
	m, err := h.remote.ReadMeta(context.Background())
	require.NoError(h.t, err)
	return m
}

func configWithIcons(tabName string, n int) models.Config {
	tab := models.Tab{ID: "tab-1", Name: tabName, Icons: []models.Icon{}}
	for i := 0; i < n; i++ {
		tab.Icons = append(tab.Icons, models.Icon{
			ID:   tabName + "-icon-" + string(rune('a'+i)),
			Name: "site",
			URL:  "https://example.com",
		})
	}
	return models.Config{Tabs: []models.Tab{tab}}
}

// --- scenarios ---

func TestPerformSync_InitialPush(t *testing.T) {
	h := newHarness(t)
	h.setSettings(enabledSettings())
	h.setLocal(1000, 0, 2)

	res, err := h.coord.PerformSync(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, ActionPush, res.Config)
	assert.Equal(t, ActionNone, res.Stats)

	cfg, err := h.remote.ReadConfig(context.Background())
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, int64(1000), cfg.UpdateTimestamp)
	assert.Equal(t, 2, cfg.Config.IconCount())
	assert.NotNil(t, cfg.Statistics, "placeholder statistics are written")

	meta := h.remoteMeta()
	require.NotNil(t, meta)
	assert.Equal(t, int64(1000), meta.UpdateTimestamp)
	assert.Equal(t, int64(0), meta.StatsUpdateTime)

	assert.Equal(t, 0, h.backend.PutCount(remote.StatsFile))
	assert.Empty(t, h.pub.kinds())

	st := h.settings()
	assert.Equal(t, "success: config pushed", st.LastSyncStatus)
	assert.Equal(t, h.now, st.LastCheckTime)
	assert.Equal(t, h.now, st.LastSyncSuccessTime)
}

func TestPerformSync_PullWhenRemoteNewer(t *testing.T) {
	h := newHarness(t)
	h.setSettings(enabledSettings())
	h.setLocal(1000, 0, 3)

	remoteCfg := configWithIcons("remote", 5)
	h.seedRemote(
		&models.RemoteMeta{UpdateTimestamp: 2000},
		&models.RemoteConfigFile{Version: models.DocumentVersion, Config: remoteCfg, UpdateTimestamp: 2000},
		nil,
	)

	res, err := h.coord.PerformSync(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, ActionPull, res.Config)

	doc := h.local()
	assert.Equal(t, remoteCfg, doc.Config)
	assert.Equal(t, int64(2000), doc.UpdateTimestamp)

	require.Equal(t, []notifier.Kind{notifier.KindRefresh}, h.pub.kinds())
	assert.Equal(t, "sync complete: local bookmarks updated (3 -> 5 icons)", h.pub.events[0].Message)

	assert.Equal(t, 0, h.backend.TotalPuts(), "a pull never writes the remote store")

	_, err = os.Stat(filepath.Join(h.dir, config.BackupFile))
	assert.NoError(t, err, "previous document is backed up before the pull is committed")
}

func TestPerformSync_DisabledNotForcedIsNoop(t *testing.T) {
	h := newHarness(t)
	st := enabledSettings()
	st.Enabled = false
	st.LastSyncStatus = "success: already up to date"
	h.setSettings(st)
	h.setLocal(1000, 0, 1)
	before := h.settings()

	res, err := h.coord.PerformSync(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, SkipDisabled, res.Skipped)

	assert.Equal(t, 0, h.backend.TotalCalls())
	assert.Equal(t, before, h.settings())
}

func TestPerformSync_StatsOnlyForced(t *testing.T) {
	h := newHarness(t)
	h.setSettings(enabledSettings())
	h.setLocal(1000, 50, 1)
	h.seedRemote(
		&models.RemoteMeta{UpdateTimestamp: 1000, StatsUpdateTime: 10},
		&models.RemoteConfigFile{Config: configWithIcons("local", 1), UpdateTimestamp: 1000},
		&models.RemoteStatsFile{StatsTimestamp: 10},
	)

	res, err := h.coord.PerformSync(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, ActionNone, res.Config)
	assert.Equal(t, ActionPush, res.Stats)

	assert.Equal(t, 0, h.backend.PutCount(remote.ConfigFile))
	assert.Equal(t, 1, h.backend.PutCount(remote.StatsFile))
	assert.Equal(t, 1, h.backend.PutCount(remote.MetaFile))

	meta := h.remoteMeta()
	assert.Equal(t, int64(1000), meta.UpdateTimestamp)
	assert.Equal(t, int64(50), meta.StatsUpdateTime)

	require.Equal(t, []notifier.Kind{notifier.KindToast}, h.pub.kinds())
	assert.Equal(t, "sync complete: usage statistics uploaded", h.pub.events[0].Message)
}

func TestPerformSync_StatsPullForcedToasts(t *testing.T) {
	h := newHarness(t)
	h.setSettings(enabledSettings())
	h.setLocal(1000, 10, 1)
	h.seedRemote(
		&models.RemoteMeta{UpdateTimestamp: 1000, StatsUpdateTime: 50},
		nil,
		&models.RemoteStatsFile{
			Statistics:     models.Statistics{IconStats: map[string]models.IconStat{"i1": {TotalClicks: 7}}},
			StatsTimestamp: 50,
		},
	)

	_, err := h.coord.PerformSync(context.Background(), true)
	require.NoError(t, err)

	require.Equal(t, []notifier.Kind{notifier.KindToast}, h.pub.kinds())
	assert.Equal(t, "sync complete: usage statistics updated", h.pub.events[0].Message)
	doc := h.local()
	assert.Equal(t, int64(50), doc.StatsTimestamp)
	assert.Equal(t, 7, doc.Statistics.IconStats["i1"].TotalClicks)
	assert.Equal(t, int64(1000), doc.UpdateTimestamp)
	assert.Equal(t, 0, h.backend.PutCount(remote.MetaFile), "a pull-only run never writes meta")
}

func TestPerformSync_StatsPullBackgroundIsSilent(t *testing.T) {
	h := newHarness(t)
	h.setSettings(enabledSettings())
	h.setLocal(1000, 10, 1)
	h.seedRemote(
		&models.RemoteMeta{UpdateTimestamp: 1000, StatsUpdateTime: 50},
		nil,
		&models.RemoteStatsFile{StatsTimestamp: 50},
	)

	res, err := h.coord.PerformSync(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, ActionPull, res.Stats)
	assert.Empty(t, h.pub.kinds())
}

// --- properties ---

func TestPerformSync_Idempotent(t *testing.T) {
	h := newHarness(t)
	h.setSettings(enabledSettings())
	h.setLocal(1000, 40, 2)

	_, err := h.coord.PerformSync(context.Background(), true)
	require.NoError(t, err)
	first := h.settings()

	h.backend.ResetCalls()
	h.now = h.now.Add(time.Minute)

	res, err := h.coord.PerformSync(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, ActionNone, res.Config)
	assert.Equal(t, ActionNone, res.Stats)
	assert.Equal(t, 0, h.backend.TotalPuts())

	second := h.settings()
	assert.True(t, second.LastCheckTime.After(first.LastCheckTime))
	assert.Equal(t, "success: already up to date", second.LastSyncStatus)
}

func TestPerformSync_MetaIsMonotonic(t *testing.T) {
	tests := []struct {
		name                string
		localCfg, localSt   int64
		remoteCfg, remoteSt int64
	}{
		{"both newer locally", 300, 300, 100, 100},
		{"config newer locally, stats newer remotely", 300, 100, 100, 300},
		{"config newer remotely, stats newer locally", 100, 300, 300, 100},
		{"both newer remotely", 100, 100, 300, 300},
		{"equal", 200, 200, 200, 200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.setSettings(enabledSettings())
			h.setLocal(tt.localCfg, tt.localSt, 1)
			h.seedRemote(
				&models.RemoteMeta{UpdateTimestamp: tt.remoteCfg, StatsUpdateTime: tt.remoteSt},
				&models.RemoteConfigFile{Config: configWithIcons("remote", 2), UpdateTimestamp: tt.remoteCfg},
				&models.RemoteStatsFile{StatsTimestamp: tt.remoteSt},
			)

			_, err := h.coord.PerformSync(context.Background(), true)
			require.NoError(t, err)

			meta := h.remoteMeta()
			assert.GreaterOrEqual(t, meta.UpdateTimestamp, tt.remoteCfg)
			assert.GreaterOrEqual(t, meta.StatsUpdateTime, tt.remoteSt)

			doc := h.local()
			assert.Equal(t, max(tt.localCfg, tt.remoteCfg), doc.UpdateTimestamp)
			assert.Equal(t, max(tt.localSt, tt.remoteSt), doc.StatsTimestamp)
		})
	}
}

func TestPerformSync_ChannelIsolation(t *testing.T) {
	h := newHarness(t)
	h.setSettings(enabledSettings())
	h.setLocal(900, 70, 1)
	h.seedRemote(
		&models.RemoteMeta{UpdateTimestamp: 500, StatsUpdateTime: 70},
		&models.RemoteConfigFile{UpdateTimestamp: 500},
		&models.RemoteStatsFile{StatsTimestamp: 70},
	)

	_, err := h.coord.PerformSync(context.Background(), true)
	require.NoError(t, err)

	assert.Equal(t, 0, h.backend.PutCount(remote.StatsFile))
	assert.NotContains(t, h.backend.Gets, remote.StatsFile)
	meta := h.remoteMeta()
	assert.Equal(t, int64(900), meta.UpdateTimestamp)
	assert.Equal(t, int64(70), meta.StatsUpdateTime)
}

func TestPerformSync_SingleFlight(t *testing.T) {
	h := newHarness(t)
	h.setSettings(enabledSettings())
	h.setLocal(1000, 0, 1)

	entered := make(chan struct{})
	proceed := make(chan struct{})
	var once sync.Once
	h.backend.OnReachable = func() {
		once.Do(func() {
			close(entered)
			<-proceed
		})
	}

	type outcome struct {
		res Result
		err error
	}
	first := make(chan outcome, 1)
	go func() {
		res, err := h.coord.PerformSync(context.Background(), true)
		first <- outcome{res, err}
	}()

	<-entered
	res, err := h.coord.PerformSync(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, SkipBusy, res.Skipped)

	close(proceed)
	got := <-first
	require.NoError(t, got.err)
	assert.Equal(t, SkipNone, got.res.Skipped)

	assert.Equal(t, 1, h.backend.ReachableCalls)
	assert.Equal(t, 1, h.backend.PutCount(remote.ConfigFile))
}

func TestPerformSync_LockReleasedAfterError(t *testing.T) {
	h := newHarness(t)
	h.setSettings(enabledSettings())
	h.backend.ReachableErr = errors.New("dial tcp: connection refused")

	_, err := h.coord.PerformSync(context.Background(), true)
	require.Error(t, err)

	h.backend.ReachableErr = nil
	res, err := h.coord.PerformSync(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, SkipNone, res.Skipped)
}

// --- failures ---

func TestPerformSync_ConfigurationError(t *testing.T) {
	h := newHarness(t)
	st := models.DefaultSyncSettings()
	st.Username = "alice"
	st.Password = "secret"
	h.setSettings(st)

	_, err := h.coord.PerformSync(context.Background(), true)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConfiguration)
	assert.Equal(t, KindConfiguration, KindOf(err))
	assert.Equal(t, 0, h.backend.TotalCalls())

	got := h.settings()
	assert.Equal(t, "error: invalid sync settings: server url is empty", got.LastSyncStatus)
	assert.Equal(t, h.now, got.LastCheckTime, "the check is recorded before validation")
	assert.True(t, got.LastSyncSuccessTime.IsZero())
}

func TestPerformSync_FactoryErrorIsConfiguration(t *testing.T) {
	h := newHarness(t)
	h.setSettings(enabledSettings())
	coord := New(h.fs, func(context.Context, models.SyncSettings) (remote.Backend, error) {
		return nil, errors.New(`invalid url "::"`)
	}, h.pub)

	_, err := coord.PerformSync(context.Background(), true)
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestPerformSync_ConnectivityError(t *testing.T) {
	h := newHarness(t)
	h.setSettings(enabledSettings())
	h.setLocal(1000, 0, 1)
	h.backend.ReachableErr = errors.New("dial tcp: i/o timeout")

	_, err := h.coord.PerformSync(context.Background(), false)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConnectivity)
	assert.NotErrorIs(t, err, ErrTransfer)

	assert.Empty(t, h.backend.Gets, "nothing is read once the probe fails")
	assert.Equal(t, 0, h.backend.TotalPuts())
	assert.True(t, strings.HasPrefix(h.settings().LastSyncStatus, "error: remote unreachable"))
}

func TestPerformSync_TransferErrorIsRecorded(t *testing.T) {
	h := newHarness(t)
	prev := enabledSettings()
	prev.LastSyncSuccessTime = time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	h.setSettings(prev)
	h.setLocal(1000, 0, 1)
	h.backend.PutErrs[remote.ConfigFile] = errors.New("507 insufficient storage")

	_, err := h.coord.PerformSync(context.Background(), true)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransfer)

	var se *Error
	require.ErrorAs(t, err, &se)
	assert.Equal(t, remote.ConfigFile, se.File)

	st := h.settings()
	assert.Equal(t, "error: write navsync_config.json.gz: 507 insufficient storage", st.LastSyncStatus)
	assert.Equal(t, prev.LastSyncSuccessTime, st.LastSyncSuccessTime)
	assert.Equal(t, 0, h.backend.PutCount(remote.MetaFile))
}

func TestPerformSync_PullWithMissingFileFails(t *testing.T) {
	h := newHarness(t)
	h.setSettings(enabledSettings())
	h.setLocal(1000, 0, 1)
	h.seedRemote(&models.RemoteMeta{UpdateTimestamp: 2000}, nil, nil)

	_, err := h.coord.PerformSync(context.Background(), false)
	assert.ErrorIs(t, err, ErrTransfer)
	assert.Equal(t, int64(1000), h.local().UpdateTimestamp)
}

func TestPerformSync_CorruptPayloadIsTransferError(t *testing.T) {
	h := newHarness(t)
	h.setSettings(enabledSettings())
	h.setLocal(1000, 0, 1)
	h.seedRemote(&models.RemoteMeta{UpdateTimestamp: 2000}, nil, nil)
	h.backend.Objects[remote.ConfigFile] = []byte("{not json")

	_, err := h.coord.PerformSync(context.Background(), false)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransfer)

	var de *remote.DecodeError
	assert.ErrorAs(t, err, &de)
}

// --- meta fallback ---

func TestPerformSync_MetaAbsentFallsBackToFiles(t *testing.T) {
	h := newHarness(t)
	h.setSettings(enabledSettings())
	h.setLocal(1000, 0, 1)
	remoteCfg := configWithIcons("legacy", 4)
	h.seedRemote(nil, &models.RemoteConfigFile{Config: remoteCfg, UpdateTimestamp: 3000}, nil)

	res, err := h.coord.PerformSync(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, ActionPull, res.Config)
	assert.Equal(t, remoteCfg, h.local().Config)

	configGets := 0
	for _, name := range h.backend.Gets {
		if name == remote.ConfigFile {
			configGets++
		}
	}
	assert.Equal(t, 1, configGets, "the fallback read is reused for the pull")
}

func TestPerformSync_MetaUnreadableFallsBackToFiles(t *testing.T) {
	h := newHarness(t)
	h.setSettings(enabledSettings())
	h.setLocal(5000, 0, 1)
	h.seedRemote(nil, &models.RemoteConfigFile{UpdateTimestamp: 3000}, nil)
	h.backend.Objects[remote.MetaFile] = []byte("<html>gateway error</html>")

	res, err := h.coord.PerformSync(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, ActionPush, res.Config)

	meta := h.remoteMeta()
	require.NotNil(t, meta, "the push rewrites a readable meta record")
	assert.Equal(t, int64(5000), meta.UpdateTimestamp)
}

func TestPerformSync_ZeroMetaChannelFallsBackToFile(t *testing.T) {
	h := newHarness(t)
	h.setSettings(enabledSettings())
	h.setLocal(1000, 40, 1)
	remoteCfg := configWithIcons("remote", 3)
	h.seedRemote(
		&models.RemoteMeta{UpdateTimestamp: 0, StatsUpdateTime: 40},
		&models.RemoteConfigFile{Config: remoteCfg, UpdateTimestamp: 3000},
		&models.RemoteStatsFile{StatsTimestamp: 40},
	)

	res, err := h.coord.PerformSync(context.Background(), false)
	require.NoError(t, err)

	assert.Equal(t, ActionPull, res.Config, "the file's timestamp wins over a zero meta value")
	assert.Equal(t, ActionNone, res.Stats)
	assert.Equal(t, 0, h.backend.PutCount(remote.ConfigFile))
	assert.Equal(t, remoteCfg, h.local().Config)
	assert.Equal(t, int64(3000), h.local().UpdateTimestamp)
	assert.NotContains(t, h.backend.Gets, remote.StatsFile, "a non-zero meta value is trusted")
}

// --- commit guard and concurrent edits ---

type backupHookStore struct {
	*store.FS
	beforeBackup func()
}

func (s *backupHookStore) BackupDocument(ctx context.Context) error {
	if s.beforeBackup != nil {
		s.beforeBackup()
	}
	return s.FS.BackupDocument(ctx)
}

func TestPerformSync_LocalEditDuringRunWins(t *testing.T) {
	h := newHarness(t)
	h.setSettings(enabledSettings())
	h.setLocal(1000, 0, 1)
	h.seedRemote(
		&models.RemoteMeta{UpdateTimestamp: 2000},
		&models.RemoteConfigFile{Config: configWithIcons("remote", 6), UpdateTimestamp: 2000},
		nil,
	)

	hooked := &backupHookStore{FS: h.fs, beforeBackup: func() {
		require.NoError(t, h.fs.UpdateDocument(context.Background(), func(d *models.Document) error {
			d.Config = configWithIcons("edited", 2)
			d.UpdateTimestamp = 2500
			return nil
		}))
	}}
	coord := h.newCoordinator(hooked)

	res, err := coord.PerformSync(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, ActionNone, res.Config)

	doc := h.local()
	assert.Equal(t, int64(2500), doc.UpdateTimestamp)
	assert.Equal(t, "edited", doc.Config.Tabs[0].Name)
	assert.Empty(t, h.pub.kinds())
}

func TestPerformSync_PreservesConcurrentSettingsEdit(t *testing.T) {
	h := newHarness(t)
	h.setSettings(enabledSettings())
	h.setLocal(1000, 0, 1)

	h.backend.OnReachable = func() {
		_ = h.fs.UpdateSettings(context.Background(), func(s *models.SyncSettings) error {
			s.Password = "rotated"
			s.Interval = 5
			return nil
		})
	}

	_, err := h.coord.PerformSync(context.Background(), true)
	require.NoError(t, err)

	st := h.settings()
	assert.Equal(t, "rotated", st.Password)
	assert.Equal(t, 5, st.Interval)
	assert.Equal(t, "success: config pushed", st.LastSyncStatus)
}

func TestPerformSync_BothChannelsZeroIsNoop(t *testing.T) {
	h := newHarness(t)
	h.setSettings(enabledSettings())

	res, err := h.coord.PerformSync(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, ActionNone, res.Config)
	assert.Equal(t, ActionNone, res.Stats)
	assert.Equal(t, 0, h.backend.TotalPuts())
}
