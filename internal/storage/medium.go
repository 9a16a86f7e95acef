package storage

import (
	"context"
	"fmt"

	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/config"
)

// Medium is a key-value store of text values. It plays the part browser
// local storage plays for a single-page app.
type Medium interface {
	// Get returns the stored text. found is false when the key is absent;
	// that is not an error.
	Get(ctx context.Context, key string) (text string, found bool, err error)
	// Set replaces the value stored under key.
	Set(ctx context.Context, key, text string) error
	Close() error
}

// Backend names accepted by Open.
const (
	BackendMemory   = "memory"
	BackendJSONFile = "jsonfile"
	BackendSQLite   = "sqlite"
)

// Open creates a medium from a "backend:path" location such as
// "jsonfile:~/.local/share/tally/tally.json", "sqlite:/tmp/tally.db" or
// "memory:".
func Open(ctx context.Context, location string) (Medium, error) {
	loc, err := config.ParseLocation(location)
	if err != nil {
		return nil, err
	}

	switch loc.Backend {
	case BackendMemory:
		return NewMemoryMedium(), nil
	case BackendJSONFile:
		return NewJSONFileMedium(loc.Path)
	case BackendSQLite:
		m, err := NewSQLiteMedium(loc.Path)
		if err != nil {
			return nil, err
		}
		if err := m.Migrate(ctx); err != nil {
			_ = m.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		return m, nil
	default:
		return nil, fmt.Errorf("%w: unknown storage backend %q", common.ErrInvalidConfig, loc.Backend)
	}
}
