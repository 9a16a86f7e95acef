package storage

import (
	"context"
	"encoding/json"

	"github.com/Veraticus/tally/internal/common"
)

// Store serializes values to JSON text on top of a Medium. Every failure it
// returns is a *common.StorageError.
type Store struct {
	medium Medium
}

// NewStore wraps a medium.
func NewStore(medium Medium) *Store {
	return &Store{medium: medium}
}

// Close closes the underlying medium.
func (s *Store) Close() error {
	return s.medium.Close()
}

// LoadText returns the raw text stored under key.
func (s *Store) LoadText(ctx context.Context, key string) (string, bool, error) {
	text, found, err := s.medium.Get(ctx, key)
	if err != nil {
		return "", false, common.NewStorageError("load", key, err)
	}
	return text, found, nil
}

// SaveText stores raw text under key.
func (s *Store) SaveText(ctx context.Context, key, text string) error {
	if err := s.medium.Set(ctx, key, text); err != nil {
		return common.NewStorageError("save", key, err)
	}
	common.LogDebug("saved key", common.Fields{"key": key, "bytes": len(text)})
	return nil
}

// Load decodes the value stored under key into dst. A missing key leaves dst
// untouched and reports found == false.
func (s *Store) Load(ctx context.Context, key string, dst any) (bool, error) {
	text, found, err := s.LoadText(ctx, key)
	if err != nil || !found {
		return false, err
	}
	if err := json.Unmarshal([]byte(text), dst); err != nil {
		return false, common.NewStorageError("decode", key, err)
	}
	return true, nil
}

// Save encodes value as JSON and stores it under key.
func (s *Store) Save(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return common.NewStorageError("encode", key, err)
	}
	return s.SaveText(ctx, key, string(data))
}

// LoadOr returns the value stored under key, or def when the key is absent.
// When the stored value cannot be read or decoded it also returns def, along
// with the *common.StorageError describing why.
func LoadOr[T any](ctx context.Context, s *Store, key string, def T) (T, error) {
	var v T
	found, err := s.Load(ctx, key, &v)
	if err != nil {
		return def, err
	}
	if !found {
		return def, nil
	}
	return v, nil
}
