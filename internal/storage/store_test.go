package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/Veraticus/tally/internal/common"
)

// failingMedium fails every call with err.
type failingMedium struct {
	err error
}

func (f failingMedium) Get(context.Context, string) (string, bool, error) { return "", false, f.err }
func (f failingMedium) Set(context.Context, string, string) error         { return f.err }
func (f failingMedium) Close() error                                      { return nil }

type record struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewStore(NewMemoryMedium())

	in := []record{{ID: "1", Name: "a"}, {ID: "2", Name: "b"}, {ID: "3", Name: "c"}}
	if err := s.Save(ctx, "records", in); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	var out []record
	found, err := s.Load(ctx, "records", &out)
	if err != nil || !found {
		t.Fatalf("Load() found=%v err=%v", found, err)
	}
	if len(out) != len(in) {
		t.Fatalf("expected %d records, got %d", len(in), len(out))
	}
	for i := range in {
		if out[i] != in[i] {
			t.Errorf("record %d = %+v, want %+v", i, out[i], in[i])
		}
	}
}

func TestLoadOr(t *testing.T) {
	ctx := context.Background()
	def := []record{{ID: "default"}}

	tests := []struct {
		setup     func(*MemoryMedium)
		name      string
		wantID    string
		wantError bool
	}{
		{
			name:   "missing key returns default",
			setup:  func(*MemoryMedium) {},
			wantID: "default",
		},
		{
			name: "stored value wins",
			setup: func(m *MemoryMedium) {
				_ = m.Set(ctx, "k", `[{"id":"stored","name":"x"}]`)
			},
			wantID: "stored",
		},
		{
			name: "corrupt value falls back with storage error",
			setup: func(m *MemoryMedium) {
				_ = m.Set(ctx, "k", `[{"id":`)
			},
			wantID:    "default",
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMemoryMedium()
			tt.setup(m)

			got, err := LoadOr(ctx, NewStore(m), "k", def)
			if (err != nil) != tt.wantError {
				t.Fatalf("LoadOr() error = %v, wantError %v", err, tt.wantError)
			}
			if err != nil && !common.IsStorage(err) {
				t.Errorf("expected storage error, got %T", err)
			}
			if len(got) == 0 || got[0].ID != tt.wantID {
				t.Errorf("LoadOr() = %+v, want id %q", got, tt.wantID)
			}
		})
	}
}

func TestStore_WrapsMediumFailures(t *testing.T) {
	ctx := context.Background()
	cause := errors.New("quota exceeded")
	s := NewStore(failingMedium{err: cause})

	err := s.Save(ctx, "k", 1)
	if !common.IsStorage(err) || !errors.Is(err, cause) {
		t.Errorf("Save() error = %v, want storage error wrapping cause", err)
	}

	got, err := LoadOr(ctx, s, "k", 42)
	if got != 42 {
		t.Errorf("LoadOr() = %d, want default", got)
	}
	if !common.IsStorage(err) {
		t.Errorf("LoadOr() error = %v, want storage error", err)
	}
}

func TestStore_EncodeFailure(t *testing.T) {
	s := NewStore(NewMemoryMedium())
	err := s.Save(context.Background(), "k", func() {})
	if !common.IsStorage(err) {
		t.Errorf("expected storage error for unencodable value, got %v", err)
	}
}

func TestMemoryMedium_Validation(t *testing.T) {
	m := NewMemoryMedium()

	//nolint:staticcheck // nil context is the point of the test
	if _, _, err := m.Get(nil, "k"); !errors.Is(err, ErrNilContext) {
		t.Errorf("expected ErrNilContext, got %v", err)
	}
	if err := m.Set(context.Background(), "  ", "v"); !errors.Is(err, ErrEmptyString) {
		t.Errorf("expected ErrEmptyString, got %v", err)
	}
}
