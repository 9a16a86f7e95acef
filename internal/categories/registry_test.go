package categories

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/model"
	"github.com/Veraticus/tally/internal/storage"
)

func sequentialIDs() model.IDFunc {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

type brokenMedium struct{}

func (brokenMedium) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("disk unplugged")
}
func (brokenMedium) Set(context.Context, string, string) error { return errors.New("disk unplugged") }
func (brokenMedium) Close() error                              { return nil }

func TestLoad_SeedsDefaultsWithoutWriting(t *testing.T) {
	ctx := context.Background()
	medium := storage.NewMemoryMedium()

	r, err := Load(ctx, storage.NewStore(medium), sequentialIDs())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	got := r.All()
	want := model.DefaultCategories()
	if len(got) != len(want) {
		t.Fatalf("expected %d default categories, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("category %d = %+v, want %+v", i, got[i], want[i])
		}
	}

	if _, found, _ := medium.Get(ctx, StorageKey); found {
		t.Error("defaults should not be persisted on load")
	}
}

func TestLoad_StoredEmptyListStaysEmpty(t *testing.T) {
	ctx := context.Background()
	medium := storage.NewMemoryMedium()
	_ = medium.Set(ctx, StorageKey, "[]")

	r, err := Load(ctx, storage.NewStore(medium), nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(r.All()) != 0 {
		t.Errorf("expected an empty registry, got %d categories", len(r.All()))
	}
}

func TestLoad_FailureFallsBackToDefaults(t *testing.T) {
	r, err := Load(context.Background(), storage.NewStore(brokenMedium{}), nil)
	if !common.IsStorage(err) {
		t.Fatalf("expected storage error, got %v", err)
	}
	if len(r.All()) != len(model.DefaultCategories()) {
		t.Errorf("expected defaults after failed load, got %d categories", len(r.All()))
	}
}

func TestRegistry_Add(t *testing.T) {
	tests := []struct {
		name      string
		inName    string
		inColor   string
		wantName  string
		wantColor string
		wantErr   bool
	}{
		{name: "trimmed name", inName: "  Groceries ", inColor: "#10b981", wantName: "Groceries", wantColor: "#10b981"},
		{name: "default color", inName: "Gifts", wantName: "Gifts", wantColor: model.DefaultCategoryColor},
		{name: "upper case color normalised", inName: "Pets", inColor: "#ABCDEF", wantName: "Pets", wantColor: "#abcdef"},
		{name: "empty name", inName: "", inColor: "#10b981", wantErr: true},
		{name: "whitespace name", inName: "   ", wantErr: true},
		{name: "not a color", inName: "Pets", inColor: "blue", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			r := New(storage.NewStore(storage.NewMemoryMedium()), sequentialIDs(), model.DefaultCategories())
			before := len(r.All())

			c, err := r.Add(ctx, tt.inName, tt.inColor)
			if tt.wantErr {
				if !common.IsValidation(err) {
					t.Fatalf("expected validation error, got %v", err)
				}
				if len(r.All()) != before {
					t.Error("registry changed after a rejected add")
				}
				return
			}
			if err != nil {
				t.Fatalf("Add() error = %v", err)
			}

			if c.ID != "id-1" || c.Name != tt.wantName || c.Color != tt.wantColor {
				t.Errorf("Add() = %+v", c)
			}
			all := r.All()
			if all[len(all)-1] != c {
				t.Error("new category should be appended last")
			}
		})
	}
}

func TestRegistry_AddPersistsFullCollection(t *testing.T) {
	ctx := context.Background()
	store := storage.NewStore(storage.NewMemoryMedium())

	r, _ := Load(ctx, store, sequentialIDs())
	if _, err := r.Add(ctx, "Groceries", "#10b981"); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	reloaded, err := Load(ctx, store, nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	got, want := reloaded.All(), r.All()
	if len(got) != len(want) {
		t.Fatalf("reloaded %d categories, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("category %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestRegistry_AddKeepsChangeWhenSaveFails(t *testing.T) {
	r := New(storage.NewStore(brokenMedium{}), sequentialIDs(), nil)

	c, err := r.Add(context.Background(), "Groceries", "")
	if !common.IsStorage(err) {
		t.Fatalf("expected storage error, got %v", err)
	}
	if _, ok := r.Find(c.ID); !ok {
		t.Error("category should stay in memory when persisting fails")
	}
}

func TestRegistry_Remove(t *testing.T) {
	ctx := context.Background()
	medium := storage.NewMemoryMedium()
	r := New(storage.NewStore(medium), nil, model.DefaultCategories())

	removed, err := r.Remove(ctx, "cat_3")
	if err != nil || !removed {
		t.Fatalf("Remove() = %v, %v", removed, err)
	}
	if _, ok := r.Find("cat_3"); ok {
		t.Error("cat_3 should be gone")
	}

	wantOrder := []string{"cat_1", "cat_2", "cat_4", "cat_5"}
	for i, c := range r.All() {
		if c.ID != wantOrder[i] {
			t.Errorf("position %d = %s, want %s", i, c.ID, wantOrder[i])
		}
	}

	// Second removal is a no-op and does not write.
	_ = medium.Set(ctx, StorageKey, "sentinel")
	removed, err = r.Remove(ctx, "cat_3")
	if err != nil || removed {
		t.Fatalf("second Remove() = %v, %v", removed, err)
	}
	if text, _, _ := medium.Get(ctx, StorageKey); text != "sentinel" {
		t.Error("removing an unknown id should not write")
	}
}

func TestRegistry_AllReturnsCopy(t *testing.T) {
	r := New(storage.NewStore(storage.NewMemoryMedium()), nil, model.DefaultCategories())
	all := r.All()
	all[0].Name = "Changed"

	if c, _ := r.Find("cat_1"); c.Name != "Food" {
		t.Error("mutating All() result changed the registry")
	}
}
