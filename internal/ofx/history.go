package ofx

import (
	"context"
	"slices"

	"github.com/Veraticus/tally/internal/storage"
)

// HistoryKey is the storage key holding the statement entries already
// imported.
const HistoryKey = "tally_ofx_imported"

// History remembers which statement entries were imported so that importing
// the same statement again adds nothing. Entries without a FITID cannot be
// identified and are never remembered.
type History struct {
	store *storage.Store
	seen  map[string]bool
}

// LoadHistory reads the import history from store. When it cannot be read
// the history starts empty and the storage error is returned with it.
func LoadHistory(ctx context.Context, store *storage.Store) (*History, error) {
	keys, err := storage.LoadOr(ctx, store, HistoryKey, []string{})
	h := &History{store: store, seen: make(map[string]bool, len(keys))}
	for _, k := range keys {
		h.seen[k] = true
	}
	return h, err
}

// Has reports whether e was imported before.
func (h *History) Has(e Entry) bool {
	return e.FITID != "" && h.seen[e.Key()]
}

// Mark records e as imported. Call Save to persist it.
func (h *History) Mark(e Entry) {
	if e.FITID != "" {
		h.seen[e.Key()] = true
	}
}

// Save persists the history.
func (h *History) Save(ctx context.Context) error {
	keys := make([]string, 0, len(h.seen))
	for k := range h.seen {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return h.store.Save(ctx, HistoryKey, keys)
}
