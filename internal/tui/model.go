// Package tui implements the interactive dashboard: summary cards and the
// transaction list, kept current through a tracker subscription.
package tui

import (
	"context"

	"github.com/Veraticus/tally/internal/tracker"
	"github.com/Veraticus/tally/internal/tui/themes"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
)

// Tracker is the part of *tracker.Tracker the dashboard needs.
type Tracker interface {
	Snapshot() tracker.Snapshot
	RemoveTransaction(ctx context.Context, id string) (bool, error)
	Subscribe(fn tracker.Observer) func()
}

// Model holds the dashboard state.
type Model struct {
	ctx          context.Context
	tracker      Tracker
	lastError    error
	theme        themes.Theme
	status       string
	config       Config
	snapshot     tracker.Snapshot
	help         help.Model
	keymap       KeyMap
	ids          []string
	table        table.Model
	width        int
	height       int
	showSpending bool
	quitting     bool
}

// newModel creates a new model with the given configuration.
func newModel(ctx context.Context, t Tracker, cfg Config) Model {
	tbl := table.New(
		table.WithColumns(columns(cfg.Width)),
		table.WithFocused(true),
		table.WithHeight(tableHeight(cfg.Height)),
	)
	styles := table.DefaultStyles()
	styles.Header = cfg.Theme.Header
	styles.Selected = cfg.Theme.Selected
	tbl.SetStyles(styles)

	h := help.New()
	h.ShowAll = cfg.ShowHelp

	return Model{
		ctx:     ctx,
		tracker: t,
		config:  cfg,
		theme:   cfg.Theme,
		keymap:  DefaultKeyMap(),
		table:   tbl,
		help:    h,
		width:   cfg.Width,
		height:  cfg.Height,
	}
}

// Init loads the first snapshot.
func (m Model) Init() tea.Cmd {
	return m.loadSnapshot()
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.handleResize()
		return m, nil

	case snapshotMsg:
		m.apply(msg.snapshot)
		return m, nil

	case removedMsg:
		m.apply(msg.snapshot)
		m.lastError = msg.err
		switch {
		case msg.removed:
			m.status = "Removed " + msg.description
		case msg.err == nil:
			m.status = "Nothing to remove"
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.ForceQuit), key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keymap.ToggleHelp):
		m.help.ShowAll = !m.help.ShowAll
		m.handleResize()
		return m, nil

	case key.Matches(msg, m.keymap.ToggleSpending):
		m.showSpending = !m.showSpending
		return m, nil

	case key.Matches(msg, m.keymap.Refresh):
		return m, m.loadSnapshot()

	case key.Matches(msg, m.keymap.Delete):
		id, description, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.status = "Removing " + description + "..."
		return m, m.remove(id, description)
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// selected returns the transaction under the cursor.
func (m Model) selected() (id, description string, ok bool) {
	cursor := m.table.Cursor()
	if cursor < 0 || cursor >= len(m.ids) {
		return "", "", false
	}
	row := m.table.SelectedRow()
	if len(row) > 1 {
		description = row[1]
	}
	return m.ids[cursor], description, true
}

func (m Model) loadSnapshot() tea.Cmd {
	t := m.tracker
	return func() tea.Msg {
		return snapshotMsg{snapshot: t.Snapshot()}
	}
}

func (m Model) remove(id, description string) tea.Cmd {
	ctx, t := m.ctx, m.tracker
	return func() tea.Msg {
		removed, err := t.RemoveTransaction(ctx, id)
		return removedMsg{
			id:          id,
			description: description,
			removed:     removed,
			err:         err,
			snapshot:    t.Snapshot(),
		}
	}
}

// apply replaces the displayed state with snap.
func (m *Model) apply(snap tracker.Snapshot) {
	m.snapshot = snap

	rows, ids := buildRows(snap, m.config.Currency)
	m.ids = ids
	m.table.SetRows(rows)

	if len(rows) == 0 {
		m.table.SetCursor(0)
	} else if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(len(rows) - 1)
	}
}

func (m *Model) handleResize() {
	m.table.SetColumns(columns(m.width))
	m.table.SetWidth(m.width)
	m.table.SetHeight(tableHeight(m.height))
	m.help.Width = m.width
}
