package initiator

import (
	"context"
	"fmt"

	"github.com/MrSnakeDoc/navsync/internal/globalconfig"
	"github.com/MrSnakeDoc/navsync/internal/logger"
	"github.com/MrSnakeDoc/navsync/internal/models"
	"github.com/MrSnakeDoc/navsync/internal/store"
	"github.com/MrSnakeDoc/navsync/internal/utils"
	"github.com/MrSnakeDoc/navsync/internal/utils/pathutils"
)

type Initiator struct {
	// DataDir overrides the default data directory when set.
	DataDir string
}

func New(dataDir string) *Initiator {
	return &Initiator{DataDir: dataDir}
}

// Execute writes config.yml and seeds the data dir with the first-run
// document and default settings. Existing files are left untouched.
func (i *Initiator) Execute(ctx context.Context) (*globalconfig.PersistentConfig, error) {
	cfg, err := globalconfig.Default()
	if err != nil {
		return nil, err
	}
	if i.DataDir != "" {
		if cfg.DataDir, err = pathutils.ToAbsolutePath(i.DataDir); err != nil {
			return nil, err
		}
	}

	fs, err := store.NewFS(cfg.DataDir)
	if err != nil {
		return nil, err
	}

	if ok, _ := utils.FileExists(fs.DocumentPath()); !ok {
		if err := fs.UpdateDocument(ctx, func(*models.Document) error { return nil }); err != nil {
			return nil, fmt.Errorf("failed to create document: %w", err)
		}
		logger.Success("Created %s", fs.DocumentPath())
	}

	// Writing the defaults back is a no-op for an existing settings file.
	if err := fs.UpdateSettings(ctx, func(*models.SyncSettings) error { return nil }); err != nil {
		return nil, fmt.Errorf("failed to create settings: %w", err)
	}

	if err := cfg.Save(); err != nil {
		return nil, err
	}
	return cfg, nil
}
