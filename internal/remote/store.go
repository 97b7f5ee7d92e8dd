package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MrSnakeDoc/navsync/internal/logger"
	"github.com/MrSnakeDoc/navsync/internal/models"
	"github.com/MrSnakeDoc/navsync/internal/utils"
)

// Fixed names shared by every device syncing the same document.
const (
	ConfigFile = "navsync_config.json.gz"
	StatsFile  = "navsync_stats.json.gz"
	MetaFile   = "meta.json"
)

// DecodeError reports a remote payload that does not match its schema.
type DecodeError struct {
	Name string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Name, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

type Store struct {
	backend Backend
}

func NewStore(b Backend) *Store {
	return &Store{backend: b}
}

func (s *Store) CheckReachable(ctx context.Context) error {
	return s.backend.Reachable(ctx)
}

// ReadMeta returns nil, nil when the meta record does not exist.
func (s *Store) ReadMeta(ctx context.Context) (*models.RemoteMeta, error) {
	var m models.RemoteMeta
	found, err := s.getJSON(ctx, MetaFile, &m)
	if err != nil || !found {
		return nil, err
	}
	if m.UpdateTimestamp < 0 || m.StatsUpdateTime < 0 {
		return nil, &DecodeError{Name: MetaFile, Err: errors.New("negative timestamp")}
	}
	return &m, nil
}

// ReadConfig returns nil, nil when the config file does not exist.
func (s *Store) ReadConfig(ctx context.Context) (*models.RemoteConfigFile, error) {
	var f models.RemoteConfigFile
	found, err := s.getJSON(ctx, ConfigFile, &f)
	if err != nil || !found {
		return nil, err
	}
	if f.UpdateTimestamp < 0 {
		return nil, &DecodeError{Name: ConfigFile, Err: errors.New("negative update_timestamp")}
	}
	if f.Config.Tabs == nil {
		f.Config.Tabs = []models.Tab{}
	}
	return &f, nil
}

// ReadStats returns nil, nil when the stats file does not exist.
func (s *Store) ReadStats(ctx context.Context) (*models.RemoteStatsFile, error) {
	var f models.RemoteStatsFile
	found, err := s.getJSON(ctx, StatsFile, &f)
	if err != nil || !found {
		return nil, err
	}
	if f.StatsTimestamp < 0 {
		return nil, &DecodeError{Name: StatsFile, Err: errors.New("negative stats_timestamp")}
	}
	if f.Statistics.IconStats == nil {
		f.Statistics.IconStats = map[string]models.IconStat{}
	}
	return &f, nil
}

func (s *Store) WriteConfig(ctx context.Context, f models.RemoteConfigFile) error {
	if f.Statistics == nil {
		f.Statistics = map[string]any{}
	}
	return s.putCompressed(ctx, ConfigFile, f)
}

func (s *Store) WriteStats(ctx context.Context, f models.RemoteStatsFile) error {
	return s.putCompressed(ctx, StatsFile, f)
}

// WriteMeta stores the meta record uncompressed so it stays cheap to read.
func (s *Store) WriteMeta(ctx context.Context, m models.RemoteMeta) error {
	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode %s: %w", MetaFile, err)
	}
	return s.backend.Put(ctx, MetaFile, data, contentTypeJSON)
}

// --- internals ---

func (s *Store) getJSON(ctx context.Context, name string, out any) (bool, error) {
	raw, err := s.backend.Get(ctx, name)
	if errors.Is(err, ErrNotFound) {
		logger.Debug("remote: %s not found", name)
		return false, nil
	}
	if err != nil {
		return false, err
	}

	// Payloads written compressed or plain are both accepted.
	data, err := utils.GunzipBytes(raw)
	if err != nil {
		return false, &DecodeError{Name: name, Err: err}
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false, &DecodeError{Name: name, Err: err}
	}
	return true, nil
}

func (s *Store) putCompressed(ctx context.Context, name string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	gz, err := utils.GzipBytes(data)
	if err != nil {
		return fmt.Errorf("compress %s: %w", name, err)
	}
	logger.Debug("remote: put %s (%d bytes, %d compressed)", name, len(data), len(gz))
	return s.backend.Put(ctx, name, gz, contentTypeGzip)
}
