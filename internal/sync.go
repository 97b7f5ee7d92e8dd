package internal

import (
	"errors"

	"github.com/MrSnakeDoc/navsync/internal/logger"
	"github.com/MrSnakeDoc/navsync/internal/notifier"
	"github.com/MrSnakeDoc/navsync/internal/syncer"

	"github.com/spf13/cobra"
)

func NewSyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Sync now, even when background sync is disabled",
		Long: `Run one reconciliation against the remote store immediately.
Each channel (config, stats) is pushed if the local copy is newer, pulled if
the remote copy is newer, and left alone when both match.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := storeFrom(cmd)
			if err != nil {
				return err
			}

			bus := notifier.NewBus()
			bus.Subscribe(notifier.Console{Out: logger.Out()})

			res, err := newCoordinator(st, bus, nil).PerformSync(cmd.Context(), true)
			if err != nil {
				if errors.Is(err, syncer.ErrConfiguration) {
					logger.Warn("Configure sync with: navsync settings --url ... --username ... --password ...")
				}
				return err
			}
			if res.Skipped == syncer.SkipBusy {
				logger.Warn("Another sync is already running")
				return nil
			}

			logger.Success("%s", res.Summary)
			return nil
		},
	}
}
