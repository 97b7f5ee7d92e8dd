package internal

import (
	"os"
	"strings"

	"github.com/MrSnakeDoc/navsync/internal/logger"
	"github.com/MrSnakeDoc/navsync/internal/version"

	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "navsync",
		Short: "Sync a start-page bookmark document across devices",
		Long: `navsync keeps a local start-page document (tabs of bookmark icons and their
click statistics) in sync with a copy held on WebDAV, S3 or a shared directory.

Config and statistics are versioned separately and each resolves by
last-write-wins, so clicking on one device never overwrites bookmarks
edited on another.`,
		Example: `navsync init
navsync settings --enable --url https://dav.example.com/navsync --username me --password ...
navsync sync`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			logger.ConfigureLoggerFromFlags()
		},
		Run: func(cmd *cobra.Command, _ []string) {
			versionFlag, _ := cmd.Flags().GetBool("version")
			if versionFlag {
				version.Print(cmd.OutOrStdout())
				return
			}
			_ = cmd.Help()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().BoolP("version", "v", false, "Print version information")
	cmd.PersistentFlags().CountVarP(&logger.FlagVerboseCount, "verbose", "V", "Increase verbosity (-V, -VV)")
	cmd.PersistentFlags().BoolVarP(&logger.FlagQuiet, "quiet", "q", false, "Only print errors")
	cmd.PersistentFlags().BoolVar(&logger.FlagJSON, "json-logs", false, "Emit logs as JSON lines")

	RegisterSubCommands(cmd)

	return cmd
}

func Execute() error {
	root := NewRootCmd()

	if os.Getenv("COMP_LINE") != "" ||
		(len(os.Args) > 1 && strings.HasPrefix(os.Args[1], "__complete")) {
		return root.Execute()
	}

	if err := root.Execute(); err != nil {
		logger.Debug("Failed to execute root command: %v", err)
		return err
	}
	return nil
}
