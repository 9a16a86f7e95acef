package storage

import (
	"context"
	"sync"
)

// MemoryMedium keeps values in a map. Nothing survives the process.
type MemoryMedium struct {
	values map[string]string
	mu     sync.RWMutex
}

// NewMemoryMedium creates an empty in-memory medium.
func NewMemoryMedium() *MemoryMedium {
	return &MemoryMedium{values: make(map[string]string)}
}

// Get implements Medium.
func (m *MemoryMedium) Get(ctx context.Context, key string) (string, bool, error) {
	if err := validateContext(ctx); err != nil {
		return "", false, err
	}
	if err := validateKey(key); err != nil {
		return "", false, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	text, ok := m.values[key]
	return text, ok, nil
}

// Set implements Medium.
func (m *MemoryMedium) Set(ctx context.Context, key, text string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateKey(key); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = text
	return nil
}

// Close implements Medium.
func (m *MemoryMedium) Close() error {
	return nil
}
