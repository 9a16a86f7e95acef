package budget

import (
	"context"
	"testing"

	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/storage"
	"github.com/shopspring/decimal"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		stored    string
		want      string
		store     bool
		wantError bool
	}{
		{name: "nothing stored", want: "0"},
		{name: "number", stored: "250.5", store: true, want: "250.5"},
		{name: "quoted number", stored: `"300"`, store: true, want: "300"},
		{name: "negative", stored: "-20", store: true, want: "-20"},
		{name: "garbage falls back to zero", stored: "lots", store: true, want: "0", wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			medium := storage.NewMemoryMedium()
			if tt.store {
				_ = medium.Set(ctx, StorageKey, tt.stored)
			}

			s, err := Load(ctx, storage.NewStore(medium))
			if (err != nil) != tt.wantError {
				t.Fatalf("Load() error = %v, wantError %v", err, tt.wantError)
			}
			if err != nil && !common.IsStorage(err) {
				t.Errorf("expected storage error, got %v", err)
			}
			if !s.Value().Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("Value() = %s, want %s", s.Value(), tt.want)
			}
		})
	}
}

func TestSetting_Set(t *testing.T) {
	ctx := context.Background()
	medium := storage.NewMemoryMedium()
	s, _ := Load(ctx, storage.NewStore(medium))

	got, err := s.Set(ctx, " 1500,75 ")
	if err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if !got.Equal(decimal.RequireFromString("1500.75")) {
		t.Errorf("Set() = %s", got)
	}

	text, _, _ := medium.Get(ctx, StorageKey)
	if text != "1500.75" {
		t.Errorf("stored %q, want %q", text, "1500.75")
	}

	reloaded, err := Load(ctx, storage.NewStore(medium))
	if err != nil {
		t.Fatal(err)
	}
	if !reloaded.Value().Equal(got) {
		t.Errorf("reloaded %s, want %s", reloaded.Value(), got)
	}
}

func TestSetting_SetRejectsNonNumbers(t *testing.T) {
	ctx := context.Background()
	medium := storage.NewMemoryMedium()
	s := New(storage.NewStore(medium), decimal.NewFromInt(100))

	for _, raw := range []string{"abc", "", "  ", "1.2.3"} {
		_, err := s.Set(ctx, raw)
		if !common.IsValidation(err) {
			t.Errorf("Set(%q) error = %v, want validation error", raw, err)
		}
	}

	if !s.Value().Equal(decimal.NewFromInt(100)) {
		t.Errorf("budget changed to %s", s.Value())
	}
	if _, found, _ := medium.Get(ctx, StorageKey); found {
		t.Error("rejected set should not write")
	}
}
