package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// JSONFileMedium stores every key in one JSON object on disk. The file is
// re-read on every call and rewritten atomically on every Set, so separate
// processes see each other's writes (last writer wins per key).
type JSONFileMedium struct {
	filename string
	mu       sync.Mutex
	closed   bool
}

// NewJSONFileMedium creates a medium backed by filename, creating its
// directory if needed. The file itself is created on the first Set.
func NewJSONFileMedium(filename string) (*JSONFileMedium, error) {
	if err := validateString(filename, "filename"); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(filename), 0750); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	return &JSONFileMedium{filename: filename}, nil
}

// Get implements Medium.
func (f *JSONFileMedium) Get(ctx context.Context, key string) (string, bool, error) {
	if err := validateContext(ctx); err != nil {
		return "", false, err
	}
	if err := validateKey(key); err != nil {
		return "", false, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return "", false, ErrClosed
	}

	values, err := f.read()
	if err != nil {
		return "", false, err
	}
	text, ok := values[key]
	return text, ok, nil
}

// Set implements Medium.
func (f *JSONFileMedium) Set(ctx context.Context, key, text string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateKey(key); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return ErrClosed
	}

	values, err := f.read()
	if err != nil {
		var syntaxErr *json.SyntaxError
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &syntaxErr) && !errors.As(err, &typeErr) {
			return err
		}
		// Unreadable file: keep it aside rather than overwrite it.
		backup := fmt.Sprintf("%s.corrupt-%d", f.filename, time.Now().Unix())
		if renameErr := os.Rename(f.filename, backup); renameErr != nil {
			return fmt.Errorf("failed to move aside corrupt storage file: %w", renameErr)
		}
		slog.Warn("storage file was corrupt, starting fresh",
			"path", f.filename,
			"backup", backup,
			"error", err)
		values = make(map[string]string)
	}

	values[key] = text
	return f.write(values)
}

// Close implements Medium.
func (f *JSONFileMedium) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *JSONFileMedium) read() (map[string]string, error) {
	data, err := os.ReadFile(f.filename)
	if errors.Is(err, os.ErrNotExist) {
		return make(map[string]string), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read storage file: %w", err)
	}

	values := make(map[string]string)
	if len(data) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("failed to decode storage file: %w", err)
	}
	return values, nil
}

func (f *JSONFileMedium) write(values map[string]string) error {
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.filename), filepath.Base(f.filename)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write storage file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write storage file: %w", err)
	}
	if err := os.Rename(tmpName, f.filename); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to replace storage file: %w", err)
	}
	return nil
}
