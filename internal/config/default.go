package config

import "time"

const (
	DefaultDataDir = ".local/share/navsync"

	DocumentFile = "document.json"
	BackupFile   = "document.backup.json"
	SettingsFile = "settings.json"
)

type DaemonConfig struct {
	// Debounce is the quiet window that collapses bursts of config edits.
	Debounce time.Duration
	// Listen is the address of the status/notification HTTP surface.
	Listen string
	// StartupDelay postpones the app-start check so the listener comes up first.
	StartupDelay time.Duration
}

type RemoteConfig struct {
	// Timeout bounds one HTTP round trip to the remote store.
	Timeout time.Duration
}

func DefaultDaemonConfig() DaemonConfig {
	return DaemonConfig{
		Debounce:     2 * time.Second,
		Listen:       "127.0.0.1:7878",
		StartupDelay: 0,
	}
}

func DefaultRemoteConfig() RemoteConfig {
	return RemoteConfig{Timeout: 30 * time.Second}
}
