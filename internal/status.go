package internal

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/MrSnakeDoc/navsync/internal/logger"
	"github.com/MrSnakeDoc/navsync/internal/printer"
	"github.com/MrSnakeDoc/navsync/internal/server"
	"github.com/MrSnakeDoc/navsync/internal/utils"

	"github.com/spf13/cobra"
)

func NewStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the last sync check, last success and last status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := storeFrom(cmd)
			if err != nil {
				return err
			}
			asJSON, err := cmd.Flags().GetBool("json")
			if err != nil {
				return err
			}

			settings, err := st.LoadSettings(cmd.Context())
			if err != nil {
				return err
			}
			doc, err := st.LoadDocument(cmd.Context())
			if err != nil {
				return err
			}

			status := server.NewStatus(settings)
			if asJSON {
				data, err := json.MarshalIndent(status, "", "  ")
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return err
			}

			p := printer.NewColorPrinter()
			enabled := p.Warning("disabled")
			if status.Enabled {
				enabled = p.Success("enabled")
			}
			utils.CreateFieldTable("Sync status", []utils.Field{
				{Name: "Background sync", Value: enabled},
				{Name: "Backend", Value: status.Backend},
				{Name: "Remote", Value: orDash(status.ServerURL)},
				{Name: "Interval", Value: fmt.Sprintf("%d min", settings.IntervalDuration()/time.Minute)},
				{Name: "Last check", Value: formatTime(settings.LastCheckTime)},
				{Name: "Last success", Value: formatTime(settings.LastSyncSuccessTime)},
				{Name: "Last status", Value: p.Status(status.LastSyncStatus)},
				{Name: "Icons", Value: fmt.Sprintf("%d", doc.Config.IconCount())},
				{Name: "Config version", Value: formatMillis(doc.UpdateTimestamp)},
				{Name: "Stats version", Value: formatMillis(doc.StatsTimestamp)},
			})
			logger.Debug("status: document at %s", st.DocumentPath())
			return nil
		},
	}

	cmd.Flags().Bool("json", false, "Print status as JSON")
	return cmd
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(time.DateTime)
}

func formatMillis(ms int64) string {
	if ms == 0 {
		return "-"
	}
	return time.UnixMilli(ms).Local().Format(time.DateTime)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
