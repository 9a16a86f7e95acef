package main

import (
	"context"
	"fmt"

	"github.com/Veraticus/tally/internal/cli"
	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/tracker"
	"github.com/spf13/cobra"
)

func categoriesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "categories",
		Aliases: []string{"cat"},
		Short:   "Manage expense categories",
		Long:    `List, add and remove the categories expenses are sorted into.`,
	}

	cmd.AddCommand(listCategoriesCmd(a))
	cmd.AddCommand(addCategoryCmd(a))
	cmd.AddCommand(removeCategoryCmd(a))

	return cmd
}

func listCategoriesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List categories and what was spent in each",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withTracker(cmd, func(_ context.Context, tr *tracker.Tracker) error {
				a.renderer(cmd).Categories(tr.SpendingByCategory())
				return nil
			})
		},
	}
}

func addCategoryCmd(a *app) *cobra.Command {
	var color string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a new category",
		Long: `Create a new expense category. The color is a hex value such as
"#22c55e"; a neutral gray is used when none is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withTracker(cmd, func(ctx context.Context, tr *tracker.Tracker) error {
				c, err := tr.AddCategory(ctx, args[0], color)
				if err != nil && !common.IsStorage(err) {
					return err
				}
				a.renderer(cmd).Success("Created category %s (ID: %s)", cli.Badge(c), c.ID)
				return a.reportChange(cmd, err)
			})
		},
	}

	cmd.Flags().StringVar(&color, "color", "", "hex color used for the category badge")

	return cmd
}

func removeCategoryCmd(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a category",
		Long: `Remove a category. Expenses filed under it keep their reference and
are listed without a badge from then on.`,
		Aliases: []string{"rm"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			return a.withTracker(cmd, func(ctx context.Context, tr *tracker.Tracker) error {
				if !yes {
					ok, err := a.confirmCategoryRemoval(ctx, cmd, tr, id)
					if err != nil {
						return err
					}
					if !ok {
						fmt.Fprintln(cmd.OutOrStdout(), cli.FormatInfo("Canceled"))
						return nil
					}
				}

				removed, err := tr.RemoveCategory(ctx, id)
				if removed {
					a.renderer(cmd).Success("Removed category %s", id)
				} else if err == nil {
					fmt.Fprintln(cmd.OutOrStdout(), cli.FormatInfo(fmt.Sprintf("No category with ID %s", id)))
				}
				return a.reportChange(cmd, err)
			})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "remove without asking, even when expenses use it")

	return cmd
}

// confirmCategoryRemoval asks before removing a category that expenses still
// refer to. Unused or unknown categories need no confirmation.
func (a *app) confirmCategoryRemoval(ctx context.Context, cmd *cobra.Command, tr *tracker.Tracker, id string) (bool, error) {
	c, ok := tr.Category(id)
	if !ok {
		return true, nil
	}

	used := 0
	for _, tx := range tr.Transactions() {
		if tx.IsExpense() && tx.CategoryID() == id {
			used++
		}
	}
	if used == 0 {
		return true, nil
	}

	question := fmt.Sprintf("%d expense(s) are filed under %q. Remove it anyway?", used, c.Name)
	return cli.Confirm(ctx, cli.NewNonBlockingReader(a.stdin), cmd.OutOrStdout(), question)
}
