// Package cli renders tally's output for the terminal: amounts colored by
// direction, category badges, summary boxes and one-line messages.
package cli

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	sky     = lipgloss.Color("#38bdf8")
	emerald = lipgloss.Color("#34d399")
	amber   = lipgloss.Color("#f59e0b")
	rose    = lipgloss.Color("#f43f5e")
	slate   = lipgloss.Color("#64748b")
	outline = lipgloss.Color("#334155")
)

// Amount styles. Money coming in is green and money going out is red.
var (
	IncomeStyle  = lipgloss.NewStyle().Foreground(emerald)
	ExpenseStyle = lipgloss.NewStyle().Foreground(rose)
	BudgetStyle  = lipgloss.NewStyle().Foreground(sky)
	// LabelStyle is for field names and placeholders next to amounts.
	LabelStyle = lipgloss.NewStyle().Foreground(slate)
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(sky)
	promptStyle = lipgloss.NewStyle().Bold(true).Foreground(sky)
	boxStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(outline).
			Padding(1, 2)
)

// Icons.
const (
	WalletIcon  = "👛"
	ChartIcon   = "📊"
	SwatchIcon  = "●"
	WarningIcon = "⚠️"
)

// message is a one-line status: an icon and a color.
type message struct {
	icon  string
	style lipgloss.Style
}

var (
	successMessage = message{icon: "✓", style: lipgloss.NewStyle().Foreground(emerald)}
	errorMessage   = message{icon: "✗", style: lipgloss.NewStyle().Foreground(rose)}
	warningMessage = message{icon: WarningIcon, style: lipgloss.NewStyle().Foreground(amber)}
	infoMessage    = message{icon: "ℹ️", style: lipgloss.NewStyle().Foreground(slate)}
)

func (m message) format(text string) string {
	return m.style.Render(m.icon + " " + text)
}

// FormatSuccess formats a confirmation such as "Recorded expense".
func FormatSuccess(text string) string { return successMessage.format(text) }

// FormatError formats a failed command.
func FormatError(text string) string { return errorMessage.format(text) }

// FormatWarning formats a problem that did not stop the command, such as a
// change that could not be saved.
func FormatWarning(text string) string { return warningMessage.format(text) }

// FormatInfo formats a neutral notice.
func FormatInfo(text string) string { return infoMessage.format(text) }

// FormatTitle formats a section title with the wallet icon.
func FormatTitle(title string) string {
	return titleStyle.MarginBottom(1).Render(WalletIcon + " " + title)
}

// FormatPrompt formats a question that waits for an answer.
func FormatPrompt(prompt string) string {
	return promptStyle.Render(prompt + " → ")
}

// summaryBox frames content under a bold title.
func summaryBox(title, content string) string {
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(title), content))
}
