package tui

import (
	"github.com/Veraticus/tally/internal/tui/themes"
)

// Config holds TUI configuration.
type Config struct {
	Theme     themes.Theme
	Currency  string
	Width     int
	Height    int
	ShowHelp  bool
	AltScreen bool
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Theme:     themes.Default,
		Currency:  "€",
		Width:     80,
		Height:    24,
		AltScreen: true,
	}
}

// WithCurrency sets the symbol amounts are shown with.
func WithCurrency(symbol string) Option {
	return func(c *Config) {
		c.Currency = symbol
	}
}

// WithAltScreen controls whether the dashboard takes over the whole
// terminal.
func WithAltScreen(enabled bool) Option {
	return func(c *Config) {
		c.AltScreen = enabled
	}
}
