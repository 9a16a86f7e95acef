// Package themes holds the dashboard colors.
package themes

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// Theme styles each part of the dashboard.
type Theme struct {
	// Title is the app name above the summary cards.
	Title lipgloss.Style
	// Card frames one summary figure; Label is the figure's name inside it.
	Card  lipgloss.Style
	Label lipgloss.Style
	// Budget, Income and Expense color amounts.
	Budget  lipgloss.Style
	Income  lipgloss.Style
	Expense lipgloss.Style
	// Header and Selected style the transaction table.
	Header   lipgloss.Style
	Selected lipgloss.Style
	// Placeholder is shown instead of an empty table.
	Placeholder lipgloss.Style
	Status      lipgloss.Style
	Warning     lipgloss.Style
}

// Amount picks Income or Expense by the sign of d. Zero counts as income.
func (t Theme) Amount(d decimal.Decimal) lipgloss.Style {
	if d.IsNegative() {
		return t.Expense
	}
	return t.Income
}

// Default is slate with a sky accent; incomes are emerald and expenses rose.
var Default = Theme{
	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#f1f5f9")).
		MarginBottom(1),
	Card: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#1e293b")).
		Padding(0, 2),
	Label: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#64748b")),
	Budget: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#38bdf8")).
		Bold(true),
	Income: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#34d399")).
		Bold(true),
	Expense: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#f43f5e")).
		Bold(true),
	Header: lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#1e293b")).
		BorderBottom(true).
		Bold(true).
		Padding(0, 1),
	Selected: lipgloss.NewStyle().
		Background(lipgloss.Color("#0284c7")).
		Foreground(lipgloss.Color("#f1f5f9")).
		Bold(true),
	Placeholder: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#94a3b8")).
		MarginBottom(1),
	Status: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#3b82f6")),
	Warning: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#f59e0b")).
		Bold(true),
}
