package main

import (
	"context"
	"fmt"

	"github.com/Veraticus/tally/internal/cli"
	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/tracker"
	"github.com/spf13/cobra"
)

func summaryCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show budget, incomes, spending and what remains",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withTracker(cmd, func(_ context.Context, tr *tracker.Tracker) error {
				a.renderer(cmd).Summary(tr.Budget(), tr.Totals())
				return nil
			})
		},
	}
}

func guideCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "guide",
		Short: "Split total income by the 50/30/20 rule",
		Long: `Show how total income divides into needs (50%), wants (30%) and
savings (20%).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withTracker(cmd, func(_ context.Context, tr *tracker.Tracker) error {
				a.renderer(cmd).Guide(tr.Guide())
				return nil
			})
		},
	}
}

func budgetCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budget",
		Short: "Show or set the budget",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the current budget",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withTracker(cmd, func(_ context.Context, tr *tracker.Tracker) error {
				fmt.Fprintf(cmd.OutOrStdout(), "Budget: %s\n", cli.Money(a.settings.Currency, tr.Budget()))
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set <amount>",
		Short: "Set the budget",
		Long: `Set the amount available to spend. Both "1500.50" and "1500,50" are
accepted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withTracker(cmd, func(ctx context.Context, tr *tracker.Tracker) error {
				value, err := tr.SetBudget(ctx, args[0])
				if err != nil && !common.IsStorage(err) {
					return err
				}
				a.renderer(cmd).Success("Budget set to %s", cli.Money(a.settings.Currency, value))
				return a.reportChange(cmd, err)
			})
		},
	})

	return cmd
}
