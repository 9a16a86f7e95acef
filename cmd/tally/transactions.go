package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/Veraticus/tally/internal/cli"
	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/ledger"
	"github.com/Veraticus/tally/internal/model"
	"github.com/Veraticus/tally/internal/tracker"
	"github.com/spf13/cobra"
)

func transactionsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "transactions",
		Aliases: []string{"tx"},
		Short:   "Record, list and remove incomes and expenses",
	}

	cmd.AddCommand(addTransactionCmd(a))
	cmd.AddCommand(listTransactionsCmd(a))
	cmd.AddCommand(removeTransactionCmd(a))

	return cmd
}

func addTransactionCmd(a *app) *cobra.Command {
	var (
		txType     string
		categoryID string
	)

	cmd := &cobra.Command{
		Use:   "add <description> <amount>",
		Short: "Record an income or an expense",
		Long: `Record an income or an expense. Expenses need the ID of an existing
category; incomes never have one. The amount is entered without a sign.

Examples:
  # Record a salary payment
  tally tx add "Salary" 2000 --type income

  # Record lunch under Food
  tally tx add "Lunch" 12,50 --category cat_1`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := ledger.NewTransaction{
				Description: args[0],
				Amount:      args[1],
				Type:        model.TransactionType(strings.ToLower(txType)),
				CategoryID:  categoryID,
			}

			return a.withTracker(cmd, func(ctx context.Context, tr *tracker.Tracker) error {
				tx, err := tr.AddTransaction(ctx, in)
				if err != nil && !common.IsStorage(err) {
					return err
				}
				a.renderer(cmd).Success("Recorded %s %s (ID: %s)",
					tx.Type, cli.SignedMoney(a.settings.Currency, tx.Amount), tx.ID)
				return a.reportChange(cmd, err)
			})
		},
	}

	cmd.Flags().StringVarP(&txType, "type", "t", string(model.TypeExpense), "income or expense")
	cmd.Flags().StringVarP(&categoryID, "category", "c", "", "category ID, required for expenses")

	return cmd
}

func listTransactionsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List all transactions, oldest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withTracker(cmd, func(_ context.Context, tr *tracker.Tracker) error {
				a.renderer(cmd).Transactions(tr.Transactions(), tr.Categories())
				return nil
			})
		},
	}
}

func removeTransactionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <id>...",
		Aliases: []string{"rm"},
		Short:   "Remove transactions by ID",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withTracker(cmd, func(ctx context.Context, tr *tracker.Tracker) error {
				for _, id := range args {
					removed, err := tr.RemoveTransaction(ctx, id)
					if removed {
						a.renderer(cmd).Success("Removed transaction %s", id)
					} else if err == nil {
						fmt.Fprintln(cmd.OutOrStdout(), cli.FormatInfo(fmt.Sprintf("No transaction with ID %s", id)))
					}
					if err := a.reportChange(cmd, err); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
}
