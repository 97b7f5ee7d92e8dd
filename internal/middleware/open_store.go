package middleware

import (
	"context"
	"fmt"

	"github.com/MrSnakeDoc/navsync/internal/globalconfig"
	"github.com/MrSnakeDoc/navsync/internal/store"
	"github.com/spf13/cobra"
)

// OpenStore opens the local document store under the configured data dir.
// It must run after RequireConfig.
func OpenStore(cmd *cobra.Command, args []string, next func(cmd *cobra.Command, args []string) error) error {
	pconf, err := Get[*globalconfig.PersistentConfig](cmd, CtxKeyPConfig)
	if err != nil {
		return err
	}

	fs, err := store.NewFS(pconf.DataDir)
	if err != nil {
		return fmt.Errorf("open data dir: %w", err)
	}

	ctx := context.WithValue(cmd.Context(), CtxKeyStore, store.Store(fs))
	cmd.SetContext(ctx)

	return next(cmd, args)
}
