package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/Veraticus/tally/internal/tracker"
	tea "github.com/charmbracelet/bubbletea"
)

// Run shows the dashboard until the user quits or ctx is canceled. Changes
// made to t while the dashboard is open are reflected immediately.
func Run(ctx context.Context, t Tracker, opts ...Option) error {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	progOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if cfg.AltScreen {
		progOpts = append(progOpts, tea.WithAltScreen())
	}

	p := tea.NewProgram(newModel(ctx, t, cfg), progOpts...)

	unsubscribe := t.Subscribe(func(s tracker.Snapshot) {
		p.Send(snapshotMsg{snapshot: s})
	})
	defer unsubscribe()

	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("dashboard failed: %w", err)
	}
	return nil
}
