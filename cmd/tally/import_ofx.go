package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/Veraticus/tally/internal/cli"
	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/ofx"
	"github.com/Veraticus/tally/internal/storage"
	"github.com/Veraticus/tally/internal/tracker"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

// defaultImportCategory is the built-in "Other" category.
const defaultImportCategory = "cat_5"

func importOFXCmd(a *app) *cobra.Command {
	var (
		categoryID string
		dryRun     bool
	)

	cmd := &cobra.Command{
		Use:   "import-ofx [files...]",
		Short: "Import transactions from OFX/QFX files",
		Long: `Import transactions from OFX or QFX (Quicken) files exported from your bank.
Debits become expenses in the given category and credits become incomes.
Entries that appear in more than one file are imported once. The ids of
imported entries are kept in storage, so importing the same statement again
only adds the entries that are new since the last import.

Examples:
  # Import single file
  tally import-ofx ~/Downloads/checking_jan_2025.qfx

  # Import all QFX files in a directory, filing expenses under Bills
  tally import-ofx ~/Downloads/*.qfx --category cat_4`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := expandFiles(args)
			if err != nil {
				return err
			}

			entries, err := readEntries(cmd.Context(), files)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatInfo("No transactions found to import"))
				return nil
			}

			return a.withSession(cmd, func(ctx context.Context, tr *tracker.Tracker, store *storage.Store) error {
				history, err := ofx.LoadHistory(ctx, store)
				if err != nil {
					a.renderer(cmd).Warn(err)
				}

				fresh := make([]ofx.Entry, 0, len(entries))
				for _, e := range entries {
					if !history.Has(e) {
						fresh = append(fresh, e)
					}
				}
				if already := len(entries) - len(fresh); already > 0 {
					fmt.Fprintln(cmd.OutOrStdout(), cli.FormatInfo(fmt.Sprintf("%d transaction(s) already imported", already)))
				}
				if len(fresh) == 0 {
					return nil
				}

				if dryRun {
					a.previewEntries(cmd.OutOrStdout(), fresh)
					return nil
				}

				if _, ok := tr.Category(categoryID); !ok {
					return common.NewUserError(fmt.Sprintf("category %q does not exist", categoryID), nil)
				}
				return a.importEntries(ctx, cmd.OutOrStdout(), tr, history, fresh, categoryID)
			})
		},
	}

	cmd.Flags().StringVarP(&categoryID, "category", "c", defaultImportCategory, "category ID for imported expenses")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "d", false, "Preview import without saving")

	return cmd
}

// expandFiles resolves glob patterns into file paths.
func expandFiles(patterns []string) ([]string, error) {
	var files []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		if len(matches) == 0 {
			// If no glob matches, check if it's a direct file
			if _, err := os.Stat(pattern); err == nil {
				files = append(files, pattern)
			} else {
				slog.Warn("No files found matching pattern", "pattern", pattern)
			}
			continue
		}
		files = append(files, matches...)
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("no files found to import")
	}
	return files, nil
}

// readEntries parses every file and drops entries already seen in an
// earlier one. Files that cannot be parsed are skipped.
func readEntries(ctx context.Context, files []string) ([]ofx.Entry, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	parser := ofx.NewParser()
	seen := make(map[string]bool)
	var entries []ofx.Entry

	for _, path := range files {
		f, err := os.Open(path)
		if err != nil {
			common.LogError(err, "Failed to open file", common.Fields{"file": path})
			continue
		}

		parsed, err := parser.ParseFile(ctx, f)
		f.Close()
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			common.LogError(err, "Failed to parse OFX file", common.Fields{"file": path})
			continue
		}

		added := 0
		for _, e := range parsed {
			if e.FITID != "" && seen[e.Key()] {
				continue
			}
			seen[e.Key()] = true
			entries = append(entries, e)
			added++
		}

		common.LogInfo("Processed file", common.Fields{
			"file":               filepath.Base(path),
			"transactions_found": len(parsed),
			"added":              added,
			"duplicates":         len(parsed) - added,
		})
	}

	return entries, nil
}

func (a *app) previewEntries(w io.Writer, entries []ofx.Entry) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", "Date", "Type", "Amount", "Description")
	for _, e := range entries {
		typ := "INCOME"
		if e.IsDebit() {
			typ = "EXPENSE"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			e.Posted.Format("2006-01-02"),
			typ,
			cli.SignedMoney(a.settings.Currency, e.Amount),
			e.Description)
	}
	fmt.Fprintf(tw, "\n%d transaction(s) would be imported\n", len(entries))
}

// importEntries adds entries one at a time so an interrupt keeps everything
// added so far. Every added entry is recorded in history.
func (a *app) importEntries(ctx context.Context, w io.Writer, tr *tracker.Tracker, history *ofx.History, entries []ofx.Entry, categoryID string) error {
	saveCtx := context.WithoutCancel(ctx)
	handler := cli.NewInterruptHandler(w)
	ctx, stop := handler.HandleInterrupts(ctx, "Import")
	defer stop()

	bar := progressbar.NewOptions(len(entries),
		progressbar.OptionSetWriter(w),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]Importing transactions...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			if _, err := fmt.Fprintln(w); err != nil {
				slog.Warn("Failed to write newline after progress bar", "error", err)
			}
		}),
	)

	var imported, skipped int
	var saveErr error

	for _, e := range entries {
		if ctx.Err() != nil {
			break
		}

		_, err := tr.AddTransaction(ctx, e.Transaction(categoryID))
		switch {
		case err == nil:
			imported++
			history.Mark(e)
		case common.IsStorage(err):
			imported++
			history.Mark(e)
			saveErr = err
		default:
			skipped++
			common.LogWarn(err, "Skipped OFX entry", common.Fields{
				"fitid":       e.FITID,
				"description": e.Description,
			})
		}

		if err := bar.Add(1); err != nil {
			slog.Warn("Failed to update progress bar", "error", err)
		}
	}

	historyErr := history.Save(saveCtx)

	if handler.WasInterrupted() {
		return nil
	}

	r := cli.NewRenderer(w, a.settings.Currency)
	r.Success("Imported %d transaction(s), skipped %d", imported, skipped)
	if saveErr != nil {
		r.Warn(saveErr)
	}
	if historyErr != nil {
		r.Warn(historyErr)
	}
	return nil
}
