package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/Veraticus/tally/internal/ledger"
	"github.com/Veraticus/tally/internal/model"
	"github.com/Veraticus/tally/internal/totals"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// Renderer writes tally's listings and summaries.
type Renderer struct {
	w        io.Writer
	currency string
}

// NewRenderer creates a renderer writing to w. Amounts use currency as
// their symbol.
func NewRenderer(w io.Writer, currency string) *Renderer {
	return &Renderer{w: w, currency: currency}
}

// Money formats d with the renderer's currency.
func (r *Renderer) Money(d decimal.Decimal) string {
	return Money(r.currency, d)
}

// Summary writes the budget, income, spent and remaining figures.
func (r *Renderer) Summary(budget decimal.Decimal, t model.Totals) {
	rows := []string{
		r.card("Budget", BudgetStyle.Render(r.Money(budget))),
		r.card("Incomes", IncomeStyle.Render(r.Money(t.Income))),
		r.card("Spent", ExpenseStyle.Render(r.Money(t.Expense))),
		r.card("Remaining", AmountStyle(t.Remaining).Bold(true).Render(r.Money(t.Remaining))),
	}
	fmt.Fprintln(r.w, summaryBox(ChartIcon+" Summary", lipgloss.JoinVertical(lipgloss.Left, rows...)))
}

func (r *Renderer) card(label, value string) string {
	return fmt.Sprintf("%-10s %s", LabelStyle.Render(label), value)
}

// Badge renders a category as a colored dot followed by its name.
func Badge(c model.Category) string {
	dot := lipgloss.NewStyle().Foreground(lipgloss.Color(c.Color)).Render(SwatchIcon)
	return dot + " " + c.Name
}

// Transactions writes the ledger, oldest first. Expenses whose category no
// longer exists are shown without a badge.
func (r *Renderer) Transactions(txns []model.Transaction, cats []model.Category) {
	if len(txns) == 0 {
		fmt.Fprintln(r.w, FormatInfo("No transactions yet. Use 'tally transactions add' to record one."))
		return
	}

	w := tabwriter.NewWriter(r.w, 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", "ID", "Date", "Type", "Amount", "Description", "Category")
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
		strings.Repeat("-", 8),
		strings.Repeat("-", 10),
		strings.Repeat("-", 7),
		strings.Repeat("-", 10),
		strings.Repeat("-", 20),
		strings.Repeat("-", 12))

	for _, tx := range txns {
		badge := ""
		if c, ok := ledger.FindCategory(tx, cats); ok {
			badge = Badge(c)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			tx.ID,
			tx.CreatedAt.Local().Format("2006-01-02"),
			strings.ToUpper(string(tx.Type)),
			AmountStyle(tx.Amount).Render(SignedMoney(r.currency, tx.Amount)),
			tx.Description,
			badge)
	}
}

// Categories writes the categories with what has been spent in each.
func (r *Renderer) Categories(spend []totals.CategorySpend) {
	known := 0
	for _, row := range spend {
		if row.Known {
			known++
		}
	}
	if known == 0 {
		fmt.Fprintln(r.w, FormatInfo("No categories yet. Use 'tally categories add' to create one."))
	}
	if len(spend) == 0 {
		return
	}

	w := tabwriter.NewWriter(r.w, 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", "ID", "Color", "Spent", "Share", "Name")
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
		strings.Repeat("-", 8),
		strings.Repeat("-", 7),
		strings.Repeat("-", 10),
		strings.Repeat("-", 6),
		strings.Repeat("-", 20))

	for _, row := range spend {
		name := Badge(row.Category)
		if !row.Known {
			name = LabelStyle.Render("(deleted category)")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			row.Category.ID,
			row.Category.Color,
			r.Money(row.Total),
			row.Share.StringFixed(1)+"%",
			name)
	}
}

// Guide writes the 50/30/20 split of total income.
func (r *Renderer) Guide(slices []totals.GuideSlice) {
	fmt.Fprintln(r.w, FormatTitle("50/30/20 Budget Guide"))

	w := tabwriter.NewWriter(r.w, 0, 0, 2, ' ', 0)
	defer w.Flush()

	for _, s := range slices {
		fmt.Fprintf(w, "%s (%d%%)\t%s\n", s.Name, s.Percent, r.Money(s.Amount))
	}
}

// Warn writes a non-fatal problem, such as a change that could not be
// saved.
func (r *Renderer) Warn(err error) {
	fmt.Fprintln(r.w, FormatWarning(err.Error()))
}

// Success writes a confirmation line.
func (r *Renderer) Success(format string, args ...any) {
	fmt.Fprintln(r.w, FormatSuccess(fmt.Sprintf(format, args...)))
}
