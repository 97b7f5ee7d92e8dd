package internal

import (
	"fmt"
	"strings"

	"github.com/MrSnakeDoc/navsync/internal/logger"

	"github.com/spf13/cobra"
)

func NewTabCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tab",
		Short: "Manage bookmark tabs",
	}
	cmd.AddCommand(withStore(newTabAddCmd)(), withStore(newTabListCmd)())
	return cmd
}

func newTabAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>",
		Short: "Add an empty tab",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := storeFrom(cmd)
			if err != nil {
				return err
			}
			tab, err := newTagger(cmd.Context(), st).AddTab(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			logger.Success("Added tab %q (%s)", tab.Name, tab.ID)
			return nil
		},
	}
}

func newTabListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tabs and their icons",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := storeFrom(cmd)
			if err != nil {
				return err
			}
			doc, err := st.LoadDocument(cmd.Context())
			if err != nil {
				return err
			}

			table := logger.CreateTable([]string{"Tab", "Icon", "ID", "Clicks", "URL"})
			for _, tab := range doc.Config.Tabs {
				if err := table.Append([]string{tab.Name, "", tab.ID, "", ""}); err != nil {
					return err
				}
				for _, icon := range tab.Icons {
					clicks := doc.Statistics.IconStats[icon.ID].TotalClicks
					row := []string{"", icon.Name, icon.ID, fmt.Sprintf("%d", clicks), icon.URL}
					if err := table.Append(row); err != nil {
						return err
					}
				}
			}
			return table.Render()
		},
	}
}
