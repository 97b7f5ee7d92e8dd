package document

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/MrSnakeDoc/navsync/internal/logger"
	"github.com/MrSnakeDoc/navsync/internal/models"
	"github.com/MrSnakeDoc/navsync/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.UseTestMode()
	os.Exit(m.Run())
}

func newTagger(t *testing.T, now *time.Time, opts ...Option) (*Tagger, *store.FS) {
	t.Helper()
	fs, err := store.NewFS(t.TempDir())
	require.NoError(t, err)
	opts = append([]Option{WithClock(func() time.Time { return *now })}, opts...)
	return NewTagger(fs, opts...), fs
}

func TestAddTab_StampsConfigOnly(t *testing.T) {
	now := time.UnixMilli(5000)
	tg, fs := newTagger(t, &now)

	tab, err := tg.AddTab(context.Background(), "  Work ")
	require.NoError(t, err)
	assert.Equal(t, "Work", tab.Name)
	assert.Equal(t, 1, tab.Order, "the default Home tab comes first")

	doc, err := fs.LoadDocument(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(5000), doc.UpdateTimestamp)
	assert.Equal(t, int64(0), doc.StatsTimestamp)
	require.Len(t, doc.Config.Tabs, 2)
	assert.Equal(t, "Home", doc.Config.Tabs[0].Name)
}

func TestMutate_TimestampNeverMovesBack(t *testing.T) {
	now := time.UnixMilli(9000)
	tg, _ := newTagger(t, &now)
	ctx := context.Background()

	_, err := tg.AddTab(ctx, "a")
	require.NoError(t, err)

	now = time.UnixMilli(100)
	doc, err := tg.Mutate(ctx, ChannelConfig, func(*models.Document) error { return nil })
	require.NoError(t, err)
	assert.Equal(t, int64(9001), doc.UpdateTimestamp)
}

func TestMutate_FailedEditDoesNotStamp(t *testing.T) {
	now := time.UnixMilli(1000)
	hooked := 0
	tg, fs := newTagger(t, &now, WithConfigHook(func() { hooked++ }))

	_, err := tg.AddIcon(context.Background(), "missing-tab", "x", "https://x")
	assert.ErrorIs(t, err, ErrTabNotFound)

	doc, err := fs.LoadDocument(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), doc.UpdateTimestamp)
	assert.Equal(t, 0, hooked)
}

func TestMutate_UnknownChannel(t *testing.T) {
	now := time.UnixMilli(1000)
	tg, _ := newTagger(t, &now)
	_, err := tg.Mutate(context.Background(), Channel("layout"), func(*models.Document) error { return nil })
	assert.Error(t, err)
}

func TestConfigHook_FiresForConfigEditsOnly(t *testing.T) {
	now := time.UnixMilli(1000)
	hooked := 0
	tg, _ := newTagger(t, &now, WithConfigHook(func() { hooked++ }))
	ctx := context.Background()

	tab, err := tg.AddTab(ctx, "Dev")
	require.NoError(t, err)
	icon, err := tg.AddIcon(ctx, tab.ID, "Go", "https://go.dev")
	require.NoError(t, err)
	assert.Equal(t, 2, hooked)

	for i := 0; i < 5; i++ {
		_, err := tg.RecordClick(ctx, icon.ID)
		require.NoError(t, err)
	}
	assert.Equal(t, 2, hooked, "clicks never schedule a sync")
}

func TestRecordClick(t *testing.T) {
	now := time.UnixMilli(2000)
	tg, fs := newTagger(t, &now)
	ctx := context.Background()

	tab, err := tg.AddTab(ctx, "Dev")
	require.NoError(t, err)
	icon, err := tg.AddIcon(ctx, tab.ID, "Go", "https://go.dev")
	require.NoError(t, err)

	before, err := fs.LoadDocument(ctx)
	require.NoError(t, err)

	now = time.UnixMilli(3000)
	stat, err := tg.RecordClick(ctx, icon.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stat.TotalClicks)
	assert.Equal(t, []int64{3000}, stat.Timestamps)

	after, err := fs.LoadDocument(ctx)
	require.NoError(t, err)
	assert.Equal(t, before.UpdateTimestamp, after.UpdateTimestamp, "config timestamp is untouched")
	assert.Equal(t, int64(3000), after.StatsTimestamp)

	_, err = tg.RecordClick(ctx, "icon-unknown")
	assert.True(t, errors.Is(err, ErrIconNotFound))
}

func TestRemoveIcon(t *testing.T) {
	now := time.UnixMilli(2000)
	tg, fs := newTagger(t, &now)
	ctx := context.Background()

	tab, err := tg.AddTab(ctx, "Dev")
	require.NoError(t, err)
	icon, err := tg.AddIcon(ctx, tab.ID, "Go", "https://go.dev")
	require.NoError(t, err)

	require.NoError(t, tg.RemoveIcon(ctx, icon.ID))
	doc, err := fs.LoadDocument(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, doc.Config.IconCount())

	assert.ErrorIs(t, tg.RemoveIcon(ctx, icon.ID), ErrIconNotFound)
}

func TestAddTab_EmptyName(t *testing.T) {
	now := time.UnixMilli(1)
	tg, _ := newTagger(t, &now)
	_, err := tg.AddTab(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyName)
}
