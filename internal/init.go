package internal

import (
	"github.com/MrSnakeDoc/navsync/internal/initiator"
	"github.com/MrSnakeDoc/navsync/internal/logger"

	"github.com/spf13/cobra"
)

func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize navsync configuration and data directory",
		Long: `Initialize navsync.
This command will:
- Create the configuration file ~/.config/navsync/config.yml
- Create the data directory (default ~/.local/share/navsync)
- Seed it with an empty document and default sync settings`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dataDir, err := cmd.Flags().GetString("data-dir")
			if err != nil {
				return err
			}

			cfg, err := initiator.New(dataDir).Execute(cmd.Context())
			if err != nil {
				return err
			}

			logger.Success("Initialized navsync in %s", cfg.DataDir)
			return nil
		},
	}

	cmd.Flags().String("data-dir", "", "Directory holding the document and sync settings")
	return cmd
}
