// Package testutil provides test helpers for tally: a memory-backed tracker
// with deterministic ids and clock, and random transaction input.
package testutil

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/Veraticus/tally/internal/ledger"
	"github.com/Veraticus/tally/internal/model"
	"github.com/Veraticus/tally/internal/storage"
	"github.com/Veraticus/tally/internal/tracker"
	"github.com/brianvoe/gofakeit/v7"
)

// Epoch is the first timestamp handed out by the test clock.
var Epoch = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

// TestTracker is a tracker over an in-memory medium.
type TestTracker struct {
	*tracker.Tracker
	Medium *storage.MemoryMedium
	Store  *storage.Store
	t      testing.TB
}

// SetupTestTracker creates a tracker over a fresh in-memory medium. Ids are
// "id-1", "id-2", ... and each new transaction is stamped one minute after
// the previous one, starting at Epoch.
//
// Example:
//
//	tt := testutil.SetupTestTracker(t)
//	tx := tt.MustAddExpense("Lunch", "12.50", "cat_1")
func SetupTestTracker(t testing.TB) *TestTracker {
	t.Helper()
	return SetupTestTrackerWithMedium(t, storage.NewMemoryMedium())
}

// SetupTestTrackerWithMedium is SetupTestTracker over an existing medium,
// which is how tests simulate a restart.
func SetupTestTrackerWithMedium(t testing.TB, medium *storage.MemoryMedium) *TestTracker {
	t.Helper()

	store := storage.NewStore(medium)
	tr, err := tracker.Load(context.Background(), store,
		tracker.WithIDGenerator(SequentialIDs("id")),
		tracker.WithClock(StepClock(Epoch, time.Minute)),
	)
	if err != nil {
		t.Fatalf("failed to load tracker: %v", err)
	}

	return &TestTracker{
		Tracker: tr,
		Medium:  medium,
		Store:   store,
		t:       t,
	}
}

// MustAddIncome adds an income or fails the test.
func (tt *TestTracker) MustAddIncome(description, amount string) model.Transaction {
	tt.t.Helper()
	return tt.mustAdd(ledger.NewTransaction{
		Description: description,
		Amount:      amount,
		Type:        model.TypeIncome,
	})
}

// MustAddExpense adds an expense or fails the test.
func (tt *TestTracker) MustAddExpense(description, amount, categoryID string) model.Transaction {
	tt.t.Helper()
	return tt.mustAdd(ledger.NewTransaction{
		Description: description,
		Amount:      amount,
		Type:        model.TypeExpense,
		CategoryID:  categoryID,
	})
}

func (tt *TestTracker) mustAdd(in ledger.NewTransaction) model.Transaction {
	tt.t.Helper()
	tx, err := tt.AddTransaction(context.Background(), in)
	if err != nil {
		tt.t.Fatalf("failed to add transaction %q: %v", in.Description, err)
	}
	return tx
}

// MustAddCategory adds a category or fails the test.
func (tt *TestTracker) MustAddCategory(name, color string) model.Category {
	tt.t.Helper()
	c, err := tt.AddCategory(context.Background(), name, color)
	if err != nil {
		tt.t.Fatalf("failed to add category %q: %v", name, err)
	}
	return c
}

// SequentialIDs returns an id generator yielding prefix-1, prefix-2, ...
func SequentialIDs(prefix string) model.IDFunc {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

// StepClock returns a clock that starts at start and advances by step on
// every call.
func StepClock(start time.Time, step time.Duration) func() time.Time {
	next := start
	return func() time.Time {
		now := next
		next = next.Add(step)
		return now
	}
}

// RandomTransaction returns valid input for a random income or expense.
// Expenses use one of the default category ids. Amounts are positive with
// at most two decimals, as a user would type them.
func RandomTransaction(f *gofakeit.Faker) ledger.NewTransaction {
	in := ledger.NewTransaction{
		Description: strings.TrimSpace(f.ProductName()),
		Amount:      fmt.Sprintf("%.2f", f.Price(0.01, 5000)),
		Type:        model.TypeIncome,
	}
	if in.Description == "" {
		in.Description = "Item"
	}
	if f.Bool() {
		cats := model.DefaultCategories()
		in.Type = model.TypeExpense
		in.CategoryID = cats[f.IntN(len(cats))].ID
	}
	return in
}
