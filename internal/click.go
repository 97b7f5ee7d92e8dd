package internal

import (
	"github.com/MrSnakeDoc/navsync/internal/logger"

	"github.com/spf13/cobra"
)

func NewClickCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "click <icon-id>",
		Short: "Record a click on an icon",
		Long: `Record a click on an icon. Clicks only move the statistics version, so
they never cause bookmarks edited elsewhere to be overwritten.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := storeFrom(cmd)
			if err != nil {
				return err
			}
			stat, err := newTagger(cmd.Context(), st).RecordClick(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			logger.Success("%s: %d clicks", args[0], stat.TotalClicks)
			return nil
		},
	}
}
