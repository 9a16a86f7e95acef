package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/Veraticus/tally/internal/common"
)

func TestOpen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	tests := []struct {
		check    func(*testing.T, Medium)
		name     string
		location string
		wantErr  bool
	}{
		{
			name:     "memory",
			location: "memory:",
			check: func(t *testing.T, m Medium) {
				t.Helper()
				if _, ok := m.(*MemoryMedium); !ok {
					t.Errorf("expected *MemoryMedium, got %T", m)
				}
			},
		},
		{
			name:     "jsonfile",
			location: "jsonfile:" + filepath.Join(dir, "a.json"),
			check: func(t *testing.T, m Medium) {
				t.Helper()
				f, ok := m.(*JSONFileMedium)
				if !ok {
					t.Fatalf("expected *JSONFileMedium, got %T", m)
				}
				if f.filename != filepath.Join(dir, "a.json") {
					t.Errorf("filename = %q", f.filename)
				}
			},
		},
		{
			name:     "sqlite is migrated",
			location: "sqlite:" + filepath.Join(dir, "a.db"),
			check: func(t *testing.T, m Medium) {
				t.Helper()
				if err := m.Set(ctx, "k", "v"); err != nil {
					t.Errorf("Set() on opened sqlite medium: %v", err)
				}
			},
		},
		{name: "missing scheme", location: "tally.json", wantErr: true},
		{name: "unknown backend", location: "es8:http://localhost:9200", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Open(ctx, tt.location)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Open() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, common.ErrInvalidConfig) {
					t.Errorf("expected ErrInvalidConfig, got %v", err)
				}
				return
			}
			defer m.Close()
			tt.check(t, m)
		})
	}
}
