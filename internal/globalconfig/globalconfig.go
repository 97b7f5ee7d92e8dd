package globalconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/MrSnakeDoc/navsync/internal/config"
	"github.com/MrSnakeDoc/navsync/internal/utils/pathutils"

	"gopkg.in/yaml.v3"
)

type PersistentConfig struct {
	DataDir    string `yaml:"data_dir"`
	Listen     string `yaml:"listen,omitempty"`
	LogFile    string `yaml:"log_file,omitempty"`
	DebounceMS int    `yaml:"debounce_ms,omitempty"`
}

const (
	configDir  = ".config/navsync"
	configFile = "config.yml"
)

func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, configDir), nil
}

// Default returns the config written by `navsync init` when no flag overrides it.
func Default() (*PersistentConfig, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}
	d := config.DefaultDaemonConfig()
	return &PersistentConfig{
		DataDir:    filepath.Join(home, config.DefaultDataDir),
		Listen:     d.Listen,
		DebounceMS: int(d.Debounce.Milliseconds()),
	}, nil
}

func LoadPersistentConfig() (*PersistentConfig, error) {
	fullConfigDir, err := GetConfigDir()
	if err != nil {
		return nil, err
	}
	configPath := filepath.Join(fullConfigDir, configFile)

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("no configuration found. Please run 'navsync init' first")
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg PersistentConfig
	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config file: %w", err)
	}
	if cfg.DataDir == "" {
		return nil, fmt.Errorf("config file %s has no data_dir", configPath)
	}

	absPath, err := pathutils.ToAbsolutePath(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data dir: %w", err)
	}
	cfg.DataDir = absPath

	if cfg.LogFile != "" {
		if cfg.LogFile, err = pathutils.ToAbsolutePath(cfg.LogFile); err != nil {
			return nil, fmt.Errorf("failed to resolve log file: %w", err)
		}
	}

	return &cfg, nil
}

// DaemonConfig overlays the persisted values on the built-in daemon defaults.
func (c *PersistentConfig) DaemonConfig() config.DaemonConfig {
	d := config.DefaultDaemonConfig()
	if c.Listen != "" {
		d.Listen = c.Listen
	}
	if c.DebounceMS > 0 {
		d.Debounce = time.Duration(c.DebounceMS) * time.Millisecond
	}
	return d
}

func (c *PersistentConfig) Save() error {
	configDirRights := 0o755
	configFileRights := 0o644

	fullConfigDir, err := GetConfigDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(fullConfigDir, os.FileMode(configDirRights)); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	out := *c
	homePath, err := pathutils.ToHomePathFormat(c.DataDir)
	if err != nil {
		return fmt.Errorf("failed to convert to home path format: %w", err)
	}
	out.DataDir = homePath

	data, err := yaml.Marshal(&out)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	err = os.WriteFile(filepath.Join(fullConfigDir, configFile), data, os.FileMode(configFileRights))
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
