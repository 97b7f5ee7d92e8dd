package syncer

import (
	"context"

	"github.com/MrSnakeDoc/navsync/internal/logger"
	"github.com/MrSnakeDoc/navsync/internal/models"
	"github.com/MrSnakeDoc/navsync/internal/remote"
)

// remoteVersions carries the remote timestamps of both channels. When they
// had to be read from the full files, the files are kept so a pull does not
// download them twice.
type remoteVersions struct {
	config     int64
	stats      int64
	configFile *models.RemoteConfigFile
	statsFile  *models.RemoteStatsFile
}

// readRemoteVersions prefers the meta record. A channel whose meta value is
// missing or zero, and every channel when meta is absent or cannot be
// decoded, falls back to the timestamp embedded in its file. Missing files
// count as 0.
func readRemoteVersions(ctx context.Context, rs *remote.Store) (remoteVersions, error) {
	var rv remoteVersions

	meta, err := rs.ReadMeta(ctx)
	switch {
	case err != nil:
		logger.Warn("sync: %s unreadable, reading channel files instead: %v", remote.MetaFile, err)
	case meta == nil:
		logger.Debug("sync: no %s, reading channel files", remote.MetaFile)
	default:
		rv.config, rv.stats = meta.UpdateTimestamp, meta.StatsUpdateTime
	}

	if rv.config == 0 {
		cfg, err := rs.ReadConfig(ctx)
		if err != nil {
			return rv, transferError("read", remote.ConfigFile, err)
		}
		if cfg != nil {
			rv.config = cfg.UpdateTimestamp
			rv.configFile = cfg
		}
	}

	if rv.stats == 0 {
		stats, err := rs.ReadStats(ctx)
		if err != nil {
			return rv, transferError("read", remote.StatsFile, err)
		}
		if stats != nil {
			rv.stats = stats.StatsTimestamp
			rv.statsFile = stats
		}
	}
	return rv, nil
}
