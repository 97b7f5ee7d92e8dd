// Package document applies local edits and stamps the channel they touch.
package document

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MrSnakeDoc/navsync/internal/logger"
	"github.com/MrSnakeDoc/navsync/internal/models"
	"github.com/MrSnakeDoc/navsync/internal/store"
	"github.com/google/uuid"
)

type Channel string

const (
	ChannelConfig Channel = "config"
	ChannelStats  Channel = "stats"
)

var (
	ErrTabNotFound  = errors.New("tab not found")
	ErrIconNotFound = errors.New("icon not found")
	ErrEmptyName    = errors.New("name is empty")
)

type Option func(*Tagger)

func WithClock(now func() time.Time) Option {
	return func(t *Tagger) { t.now = now }
}

// WithConfigHook registers fn to run after every committed config edit.
// Stats edits never call it.
func WithConfigHook(fn func()) Option {
	return func(t *Tagger) { t.onConfigChange = fn }
}

// Tagger is the only writer of local edits. Each edit updates exactly one
// channel timestamp, which never moves backwards.
type Tagger struct {
	store          store.Store
	now            func() time.Time
	onConfigChange func()
}

func NewTagger(st store.Store, opts ...Option) *Tagger {
	t := &Tagger{store: st, now: time.Now}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Mutate applies fn to the document and stamps ch. The stamp is the current
// time in milliseconds, or one past the previous stamp if the clock lags.
func (t *Tagger) Mutate(ctx context.Context, ch Channel, fn func(*models.Document) error) (models.Document, error) {
	var out models.Document
	err := t.store.UpdateDocument(ctx, func(d *models.Document) error {
		if err := fn(d); err != nil {
			return err
		}
		now := t.now().UnixMilli()
		switch ch {
		case ChannelConfig:
			d.UpdateTimestamp = max(now, d.UpdateTimestamp+1)
		case ChannelStats:
			d.StatsTimestamp = max(now, d.StatsTimestamp+1)
		default:
			return fmt.Errorf("unknown channel %q", ch)
		}
		out = *d
		return nil
	})
	if err != nil {
		return models.Document{}, err
	}

	logger.Debug("document: %s channel stamped", ch)
	if ch == ChannelConfig && t.onConfigChange != nil {
		t.onConfigChange()
	}
	return out, nil
}

func (t *Tagger) AddTab(ctx context.Context, name string) (models.Tab, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Tab{}, ErrEmptyName
	}

	var tab models.Tab
	_, err := t.Mutate(ctx, ChannelConfig, func(d *models.Document) error {
		tab = models.Tab{
			ID:    t.newID("tab"),
			Name:  name,
			Order: len(d.Config.Tabs),
			Icons: []models.Icon{},
		}
		d.Config.Tabs = append(d.Config.Tabs, tab)
		return nil
	})
	return tab, err
}

func (t *Tagger) AddIcon(ctx context.Context, tabID, name, rawURL string) (models.Icon, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Icon{}, ErrEmptyName
	}

	var icon models.Icon
	_, err := t.Mutate(ctx, ChannelConfig, func(d *models.Document) error {
		for i := range d.Config.Tabs {
			if d.Config.Tabs[i].ID != tabID {
				continue
			}
			icon = models.Icon{
				ID:   t.newID("icon"),
				Name: name,
				URL:  strings.TrimSpace(rawURL),
			}
			d.Config.Tabs[i].Icons = append(d.Config.Tabs[i].Icons, icon)
			return nil
		}
		return fmt.Errorf("%w: %s", ErrTabNotFound, tabID)
	})
	return icon, err
}

// RemoveIcon deletes the icon from config. Its click counters stay in
// stats until the next stats edit, so the config edit does not move the
// stats timestamp.
func (t *Tagger) RemoveIcon(ctx context.Context, iconID string) error {
	_, err := t.Mutate(ctx, ChannelConfig, func(d *models.Document) error {
		for i := range d.Config.Tabs {
			icons := d.Config.Tabs[i].Icons
			for j := range icons {
				if icons[j].ID == iconID {
					d.Config.Tabs[i].Icons = append(icons[:j], icons[j+1:]...)
					return nil
				}
			}
		}
		return fmt.Errorf("%w: %s", ErrIconNotFound, iconID)
	})
	return err
}

// RecordClick bumps the click counter of an existing icon.
func (t *Tagger) RecordClick(ctx context.Context, iconID string) (models.IconStat, error) {
	var stat models.IconStat
	_, err := t.Mutate(ctx, ChannelStats, func(d *models.Document) error {
		if !hasIcon(d.Config, iconID) {
			return fmt.Errorf("%w: %s", ErrIconNotFound, iconID)
		}
		stat = d.Statistics.IconStats[iconID]
		stat.TotalClicks++
		stat.Timestamps = append(stat.Timestamps, t.now().UnixMilli())
		d.Statistics.IconStats[iconID] = stat
		return nil
	})
	return stat, err
}

func (t *Tagger) newID(prefix string) string {
	return fmt.Sprintf("%s-%d-%s", prefix, t.now().UnixMilli(), uuid.NewString()[:8])
}

func hasIcon(c models.Config, iconID string) bool {
	for _, tab := range c.Tabs {
		for _, icon := range tab.Icons {
			if icon.ID == iconID {
				return true
			}
		}
	}
	return false
}
