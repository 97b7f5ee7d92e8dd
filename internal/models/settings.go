package models

import "time"

const (
	BackendWebDAV = "webdav"
	BackendS3     = "s3"
	BackendDir    = "dir"

	DefaultIntervalMinutes = 30
)

// SyncSettings holds the user-owned configuration fields and the status
// fields written only by the sync coordinator.
type SyncSettings struct {
	Enabled   bool   `json:"enabled"`
	Backend   string `json:"backend,omitempty"`
	ServerURL string `json:"server_url"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	Bucket    string `json:"bucket,omitempty"`
	Region    string `json:"region,omitempty"`
	Interval  int    `json:"interval"`

	LastCheckTime       time.Time `json:"last_check_time"`
	LastSyncSuccessTime time.Time `json:"last_sync_success_time"`
	LastSyncStatus      string    `json:"last_sync_status"`
}

func DefaultSyncSettings() SyncSettings {
	return SyncSettings{
		Backend:  BackendWebDAV,
		Interval: DefaultIntervalMinutes,
	}
}

// BackendName returns the configured backend, defaulting to WebDAV.
func (s SyncSettings) BackendName() string {
	if s.Backend == "" {
		return BackendWebDAV
	}
	return s.Backend
}

// IntervalDuration returns the periodic check interval, never below one minute.
func (s SyncSettings) IntervalDuration() time.Duration {
	if s.Interval < 1 {
		return DefaultIntervalMinutes * time.Minute
	}
	return time.Duration(s.Interval) * time.Minute
}
