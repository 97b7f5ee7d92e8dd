package internal

import (
	"github.com/MrSnakeDoc/navsync/internal/middleware"
	"github.com/spf13/cobra"
)

var withStore = middleware.UseMiddlewareChain(middleware.RequireConfig, middleware.OpenStore)

var defaultCommands = []middleware.CommandFactory{
	NewInitCmd,
	withStore(NewSettingsCmd),
	withStore(NewSyncCmd),
	withStore(NewStatusCmd),
	withStore(NewDaemonCmd),
	NewTabCmd,
	NewIconCmd,
	withStore(NewClickCmd),
}

func RegisterSubCommands(cmd *cobra.Command) {
	for _, factory := range defaultCommands {
		cmd.AddCommand(factory())
	}
}
