package models

import "strconv"

// RemoteConfigFile is the compressed config payload shared across devices.
// Statistics is kept as an empty placeholder for older readers.
type RemoteConfigFile struct {
	Version         string         `json:"version"`
	Config          Config         `json:"config"`
	Statistics      map[string]any `json:"statistics"`
	UpdateTimestamp int64          `json:"update_timestamp"`
}

// RemoteStatsFile is the compressed stats payload.
type RemoteStatsFile struct {
	Statistics     Statistics `json:"statistics"`
	StatsTimestamp int64      `json:"stats_timestamp"`
}

// RemoteMeta mirrors the last pushed timestamp of each channel.
type RemoteMeta struct {
	UpdateTimestamp int64 `json:"update_timestamp"`
	StatsUpdateTime int64 `json:"stats_updatetime"`
}

func formatMillis(ms int64) string {
	return strconv.FormatInt(ms, 10)
}
