package internal

import (
	"context"

	"github.com/MrSnakeDoc/navsync/internal/config"
	"github.com/MrSnakeDoc/navsync/internal/document"
	"github.com/MrSnakeDoc/navsync/internal/logger"
	"github.com/MrSnakeDoc/navsync/internal/metrics"
	"github.com/MrSnakeDoc/navsync/internal/middleware"
	"github.com/MrSnakeDoc/navsync/internal/models"
	"github.com/MrSnakeDoc/navsync/internal/notifier"
	"github.com/MrSnakeDoc/navsync/internal/remote"
	"github.com/MrSnakeDoc/navsync/internal/store"
	"github.com/MrSnakeDoc/navsync/internal/syncer"

	"github.com/spf13/cobra"
)

func storeFrom(cmd *cobra.Command) (store.Store, error) {
	return middleware.Get[store.Store](cmd, middleware.CtxKeyStore)
}

// openBackend is the production backend factory. Tests replace it.
var openBackend syncer.BackendFactory = func(ctx context.Context, st models.SyncSettings) (remote.Backend, error) {
	return remote.Open(ctx, st, config.DefaultRemoteConfig())
}

func newCoordinator(st store.Store, pub notifier.Publisher, m *metrics.Metrics) *syncer.Coordinator {
	return syncer.New(st, openBackend, pub, syncer.WithMetrics(m))
}

// newTagger returns the tagger used by the editing commands. After a config
// edit it tells the user whether the change will reach the remote on its own.
func newTagger(ctx context.Context, st store.Store) *document.Tagger {
	return document.NewTagger(st, document.WithConfigHook(func() {
		settings, err := st.LoadSettings(ctx)
		if err != nil {
			logger.Debug("settings unreadable after edit: %v", err)
			return
		}
		if settings.Enabled {
			logger.Debug("background sync is on, a running daemon will upload this change")
			return
		}
		logger.Info("Background sync is off; run 'navsync sync' to upload this change")
	}))
}
