package internal

import (
	"github.com/MrSnakeDoc/navsync/internal/logger"

	"github.com/spf13/cobra"
)

func NewIconCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "icon",
		Short: "Manage bookmark icons",
	}
	cmd.AddCommand(withStore(newIconAddCmd)(), withStore(newIconRemoveCmd)())
	return cmd
}

func newIconAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "add <tab-id> <name> <url>",
		Short:   "Add an icon to a tab",
		Example: `navsync icon add tab-1712000000000 GitHub https://github.com`,
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := storeFrom(cmd)
			if err != nil {
				return err
			}
			icon, err := newTagger(cmd.Context(), st).AddIcon(cmd.Context(), args[0], args[1], args[2])
			if err != nil {
				return err
			}
			logger.Success("Added icon %q (%s)", icon.Name, icon.ID)
			return nil
		},
	}
}

func newIconRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <icon-id>",
		Aliases: []string{"rm"},
		Short:   "Remove an icon",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := storeFrom(cmd)
			if err != nil {
				return err
			}
			if err := newTagger(cmd.Context(), st).RemoveIcon(cmd.Context(), args[0]); err != nil {
				return err
			}
			logger.Success("Removed icon %s", args[0])
			return nil
		},
	}
}
