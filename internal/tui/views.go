package tui

import (
	"fmt"
	"strings"

	"github.com/Veraticus/tally/internal/cli"
	"github.com/Veraticus/tally/internal/ledger"
	"github.com/Veraticus/tally/internal/totals"
	"github.com/Veraticus/tally/internal/tracker"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

const (
	dateWidth     = 10
	amountWidth   = 14
	categoryWidth = 16
	minDescWidth  = 12
	// Rows taken by the title, cards, status line and help.
	chromeHeight = 12
)

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{
		m.theme.Title.Render(cli.WalletIcon + " tally"),
		m.renderCards(),
	}

	if m.showSpending {
		sections = append(sections, m.renderSpending())
	} else {
		sections = append(sections, m.renderTable())
	}

	sections = append(sections, m.renderStatus(), m.help.View(m.keymap))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderCards() string {
	t := m.snapshot.Totals
	cards := []string{
		m.card("Budget", m.theme.Budget.Render(cli.Money(m.config.Currency, m.snapshot.Budget))),
		m.card("Incomes", m.theme.Income.Render(cli.Money(m.config.Currency, t.Income))),
		m.card("Spent", m.theme.Expense.Render(cli.Money(m.config.Currency, t.Expense))),
		m.card("Remaining", m.theme.Amount(t.Remaining).Render(cli.Money(m.config.Currency, t.Remaining))),
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func (m Model) card(label, value string) string {
	content := lipgloss.JoinVertical(lipgloss.Left, m.theme.Label.Render(label), value)
	return m.theme.Card.Render(content)
}

func (m Model) renderTable() string {
	if len(m.ids) == 0 {
		return m.theme.Placeholder.Render("No transactions yet. Add one with 'tally transactions add'.")
	}
	return m.table.View()
}

func (m Model) renderSpending() string {
	rows := totals.ByCategory(m.snapshot.Transactions, m.snapshot.Categories)

	var b strings.Builder
	b.WriteString(m.theme.Title.UnsetMargins().Render("Spending by category"))
	b.WriteString("\n")
	for _, row := range rows {
		name := row.Category.Name
		if !row.Known {
			name = "(deleted category)"
		}
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(row.Category.Color)).Render(cli.SwatchIcon)
		fmt.Fprintf(&b, "%s %-*s %*s %6s%%\n",
			swatch,
			categoryWidth, truncate(name, categoryWidth),
			amountWidth, cli.Money(m.config.Currency, row.Total),
			row.Share.StringFixed(1))
	}
	return b.String()
}

func (m Model) renderStatus() string {
	if m.lastError != nil {
		return m.theme.Warning.Render(cli.WarningIcon + " " + m.lastError.Error())
	}
	if m.status != "" {
		return m.theme.Status.Render(m.status)
	}
	return ""
}

// buildRows lists transactions newest first. ids[i] is the id of rows[i].
func buildRows(snap tracker.Snapshot, currency string) ([]table.Row, []string) {
	n := len(snap.Transactions)
	rows := make([]table.Row, 0, n)
	ids := make([]string, 0, n)

	for i := n - 1; i >= 0; i-- {
		tx := snap.Transactions[i]
		category := ""
		if c, ok := ledger.FindCategory(tx, snap.Categories); ok {
			category = c.Name
		}
		rows = append(rows, table.Row{
			tx.CreatedAt.Local().Format("2006-01-02"),
			tx.Description,
			category,
			cli.SignedMoney(currency, tx.Amount),
		})
		ids = append(ids, tx.ID)
	}
	return rows, ids
}

func columns(width int) []table.Column {
	desc := width - dateWidth - categoryWidth - amountWidth - 8
	if desc < minDescWidth {
		desc = minDescWidth
	}
	return []table.Column{
		{Title: "Date", Width: dateWidth},
		{Title: "Description", Width: desc},
		{Title: "Category", Width: categoryWidth},
		{Title: "Amount", Width: amountWidth},
	}
}

func tableHeight(height int) int {
	return max(height-chromeHeight, 3)
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-1]) + "…"
}
