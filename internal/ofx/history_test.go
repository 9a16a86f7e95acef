package ofx

import (
	"context"
	"strings"
	"testing"

	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryPersistsAcrossLoads(t *testing.T) {
	ctx := context.Background()
	store := storage.NewStore(storage.NewMemoryMedium())

	entries, err := NewParser().ParseFile(ctx, strings.NewReader(sampleBankOFX))
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	h, err := LoadHistory(ctx, store)
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, h.Has(e), "fresh history has %s", e.FITID)
		h.Mark(e)
	}
	require.NoError(t, h.Save(ctx))

	reloaded, err := LoadHistory(ctx, store)
	require.NoError(t, err)
	for _, e := range entries {
		assert.True(t, reloaded.Has(e), "reloaded history misses %s", e.FITID)
	}

	// The same FITID in another account is a different entry.
	other := entries[0]
	other.Account = "other"
	assert.False(t, reloaded.Has(other))
}

func TestHistoryIgnoresEntriesWithoutFITID(t *testing.T) {
	ctx := context.Background()
	store := storage.NewStore(storage.NewMemoryMedium())

	h, err := LoadHistory(ctx, store)
	require.NoError(t, err)

	e := Entry{Account: "1234567890", Description: "Cash"}
	h.Mark(e)
	assert.False(t, h.Has(e))
}

func TestHistoryUnreadableStartsEmpty(t *testing.T) {
	ctx := context.Background()
	medium := storage.NewMemoryMedium()
	require.NoError(t, medium.Set(ctx, HistoryKey, "not json"))

	h, err := LoadHistory(ctx, storage.NewStore(medium))
	assert.True(t, common.IsStorage(err))
	require.NotNil(t, h)
	assert.False(t, h.Has(Entry{Account: "1234567890", FITID: "2025010201"}))
}
