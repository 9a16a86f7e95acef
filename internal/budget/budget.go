// Package budget holds the single total budget amount.
package budget

import (
	"context"
	"strings"

	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/model"
	"github.com/Veraticus/tally/internal/storage"
	"github.com/Veraticus/tally/internal/validation"
	"github.com/shopspring/decimal"
)

// StorageKey is the key the budget is persisted under.
const StorageKey = "incomes_expenses_budget"

type budgetInput struct {
	Budget string `json:"budget" validate:"amount"`
}

// Setting is the user's total budget. It defaults to zero and is only ever
// replaced wholesale.
type Setting struct {
	store *storage.Store
	value decimal.Decimal
}

// Load reads the persisted budget, or zero when none is stored. Unreadable
// values fall back to zero and are reported as a storage error.
func Load(ctx context.Context, store *storage.Store) (*Setting, error) {
	s := New(store, decimal.Zero)

	text, found, err := store.LoadText(ctx, StorageKey)
	if err != nil {
		return s, err
	}
	if !found {
		return s, nil
	}

	v, err := model.ParseAmount(strings.Trim(text, `"`))
	if err != nil {
		return s, common.NewStorageError("decode", StorageKey, err)
	}
	s.value = v
	return s, nil
}

// New creates a setting holding value without touching the store.
func New(store *storage.Store, value decimal.Decimal) *Setting {
	return &Setting{store: store, value: value}
}

// Set replaces the budget with the number in raw and persists it. Input that
// is not a number returns a validation error and leaves the budget alone.
func (s *Setting) Set(ctx context.Context, raw string) (decimal.Decimal, error) {
	if err := validation.Default().Struct(budgetInput{Budget: raw}); err != nil {
		return s.value, err
	}
	v, err := model.ParseAmount(raw)
	if err != nil {
		return s.value, common.NewValidationError("budget", "must be a number")
	}

	s.value = v
	common.LogDebug("budget set", common.Fields{"value": v.String()})

	return v, s.store.SaveText(ctx, StorageKey, v.String())
}

// Value returns the current budget.
func (s *Setting) Value() decimal.Decimal {
	return s.value
}
