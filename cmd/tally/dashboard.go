package main

import (
	"context"
	"io"

	"github.com/Veraticus/tally/internal/tracker"
	"github.com/Veraticus/tally/internal/tui"
	"github.com/spf13/cobra"
)

func dashboardCmd(a *app) *cobra.Command {
	var inline bool

	cmd := &cobra.Command{
		Use:     "dashboard",
		Aliases: []string{"ui"},
		Short:   "Open the interactive dashboard",
		Long: `Open a live view of the summary and the transaction list.
Select a transaction and press d to remove it. Problems while the dashboard
is open show in its status line.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withTracker(cmd, func(ctx context.Context, tr *tracker.Tracker) error {
				// Log lines written under the dashboard would tear through it.
				if err := setupLogging(a.settings, io.Discard); err != nil {
					return err
				}
				defer func() {
					_ = setupLogging(a.settings, cmd.ErrOrStderr())
				}()

				return tui.Run(ctx, tr,
					tui.WithCurrency(a.settings.Currency),
					tui.WithAltScreen(!inline),
				)
			})
		},
	}

	cmd.Flags().BoolVar(&inline, "inline", false, "draw below the prompt instead of taking over the terminal")

	return cmd
}
