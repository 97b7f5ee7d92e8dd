package internal

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MrSnakeDoc/navsync/internal/debounce"
	"github.com/MrSnakeDoc/navsync/internal/globalconfig"
	"github.com/MrSnakeDoc/navsync/internal/logger"
	"github.com/MrSnakeDoc/navsync/internal/metrics"
	"github.com/MrSnakeDoc/navsync/internal/middleware"
	"github.com/MrSnakeDoc/navsync/internal/notifier"
	"github.com/MrSnakeDoc/navsync/internal/scheduler"
	"github.com/MrSnakeDoc/navsync/internal/server"
	"github.com/MrSnakeDoc/navsync/internal/watcher"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const flushTimeout = time.Minute

func NewDaemonCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "daemon",
		Short: "Run background sync with a local status and notification endpoint",
		Long: `Run navsync in the foreground as a long-lived process.
The daemon checks the remote at startup and then every configured interval,
syncs shortly after any local bookmark edit, and serves:
  GET  /status   current sync settings and last outcome
  POST /sync     run a sync now
  GET  /ws       live refresh and toast notifications
  GET  /metrics  Prometheus metrics`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pconf, err := middleware.Get[*globalconfig.PersistentConfig](cmd, middleware.CtxKeyPConfig)
			if err != nil {
				return err
			}
			st, err := storeFrom(cmd)
			if err != nil {
				return err
			}

			if listen, _ := cmd.Flags().GetString("listen"); listen != "" {
				pconf.Listen = listen
			}
			if pconf.LogFile != "" {
				logger.FlagLogFile = pconf.LogFile
				logger.ConfigureLoggerFromFlags()
			}
			dc := pconf.DaemonConfig()

			bus := notifier.NewBus()
			if !logger.FlagJSON {
				bus.Subscribe(notifier.Console{Out: logger.Out()})
			}
			m := metrics.New()
			coord := newCoordinator(st, bus, m)
			sched := scheduler.New(coord, st, scheduler.WithStartupDelay(dc.StartupDelay))

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			// Detached from ctx so a sync still pending at shutdown can be flushed.
			auto := debounce.New(dc.Debounce, func() {
				runCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), flushTimeout)
				defer cancel()
				sched.Background(runCtx, "auto")
			})
			defer auto.Stop()

			w := watcher.New(st, func() {
				settings, err := st.LoadSettings(ctx)
				if err != nil {
					logger.Debug("daemon: settings unreadable, not scheduling sync: %v", err)
					return
				}
				if settings.Enabled {
					auto.Trigger()
				}
			}, watcher.WithIgnore(func(ts int64) bool {
				return ts == coord.CommittedConfigTimestamp()
			}))

			srv := server.New(server.Deps{
				Syncer:   coord,
				Settings: st,
				Live:     notifier.NewHub(bus),
				Metrics:  m.Handler(),
			})

			logger.Info("navsync daemon started (data: %s, listen: %s)", pconf.DataDir, dc.Listen)

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error { return sched.Run(gctx) })
			g.Go(func() error { return w.Run(gctx) })
			g.Go(func() error { return srv.Run(gctx, dc.Listen) })

			err = g.Wait()
			if auto.Pending() {
				logger.Info("Uploading pending bookmark edits before exit")
				auto.Flush()
			}
			logger.Info("navsync daemon stopped")
			if err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().String("listen", "", "Override the listen address from config.yml")
	return cmd
}
