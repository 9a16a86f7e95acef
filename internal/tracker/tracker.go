// Package tracker owns the application state: categories, transactions and
// the budget. Every change goes through a Tracker, which persists the
// affected collection and notifies subscribers with a fresh snapshot.
package tracker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Veraticus/tally/internal/budget"
	"github.com/Veraticus/tally/internal/categories"
	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/ledger"
	"github.com/Veraticus/tally/internal/model"
	"github.com/Veraticus/tally/internal/storage"
	"github.com/Veraticus/tally/internal/totals"
	"github.com/shopspring/decimal"
)

// Snapshot is a consistent copy of the state with totals already derived.
type Snapshot struct {
	Budget       decimal.Decimal
	Totals       model.Totals
	Categories   []model.Category
	Transactions []model.Transaction
}

// Observer receives a snapshot after every state change.
type Observer func(Snapshot)

// Option configures a Tracker.
type Option func(*options)

type options struct {
	newID model.IDFunc
	now   func() time.Time
}

// WithIDGenerator sets the id generator for new categories and transactions.
func WithIDGenerator(fn model.IDFunc) Option {
	return func(o *options) {
		o.newID = fn
	}
}

// WithClock sets the clock used to stamp new transactions.
func WithClock(fn func() time.Time) Option {
	return func(o *options) {
		o.now = fn
	}
}

// Tracker is safe for concurrent use. Observers are called without the lock
// held, so they may read from the tracker.
type Tracker struct {
	categories *categories.Registry
	ledger     *ledger.Ledger
	budget     *budget.Setting
	observers  map[int]Observer
	mu         sync.Mutex
	nextID     int
}

// Load builds a tracker from whatever is persisted in store. Collections
// that cannot be read fall back to their defaults; the returned error then
// joins the storage errors, but the tracker is always usable.
func Load(ctx context.Context, store *storage.Store, opts ...Option) (*Tracker, error) {
	o := options{
		newID: model.NewID,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}

	t := &Tracker{observers: make(map[int]Observer)}

	var errs []error
	var err error

	t.categories, err = categories.Load(ctx, store, o.newID)
	errs = append(errs, err)

	t.ledger, err = ledger.Load(ctx, store,
		ledger.WithIDGenerator(o.newID),
		ledger.WithClock(o.now),
		ledger.WithCategoryLookup(func(id string) bool {
			// Called from Add with t.mu already held.
			_, ok := t.categories.Find(id)
			return ok
		}),
	)
	errs = append(errs, err)

	t.budget, err = budget.Load(ctx, store)
	errs = append(errs, err)

	return t, errors.Join(errs...)
}

// AddCategory adds an expense category.
func (t *Tracker) AddCategory(ctx context.Context, name, color string) (model.Category, error) {
	t.mu.Lock()
	c, err := t.categories.Add(ctx, name, color)
	return c, t.finish(changed(err), err)
}

// RemoveCategory deletes a category. Transactions that refer to it keep the
// reference.
func (t *Tracker) RemoveCategory(ctx context.Context, id string) (bool, error) {
	t.mu.Lock()
	removed, err := t.categories.Remove(ctx, id)
	return removed, t.finish(removed, err)
}

// AddTransaction records an income or expense. An expense must name a
// category that exists.
func (t *Tracker) AddTransaction(ctx context.Context, in ledger.NewTransaction) (model.Transaction, error) {
	t.mu.Lock()
	tx, err := t.ledger.Add(ctx, in)
	return tx, t.finish(changed(err), err)
}

// RemoveTransaction deletes a transaction.
func (t *Tracker) RemoveTransaction(ctx context.Context, id string) (bool, error) {
	t.mu.Lock()
	removed, err := t.ledger.Remove(ctx, id)
	return removed, t.finish(removed, err)
}

// SetBudget replaces the budget with the number in raw.
func (t *Tracker) SetBudget(ctx context.Context, raw string) (decimal.Decimal, error) {
	t.mu.Lock()
	v, err := t.budget.Set(ctx, raw)
	return v, t.finish(changed(err), err)
}

// Categories returns the categories in display order.
func (t *Tracker) Categories() []model.Category {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.categories.All()
}

// Transactions returns the transactions, oldest first.
func (t *Tracker) Transactions() []model.Transaction {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.ledger.All()
}

// Budget returns the current budget.
func (t *Tracker) Budget() decimal.Decimal {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.budget.Value()
}

// Totals recomputes the derived totals.
func (t *Tracker) Totals() model.Totals {
	t.mu.Lock()
	defer t.mu.Unlock()
	return totals.Compute(t.ledger.All(), t.budget.Value())
}

// Snapshot returns a consistent copy of the whole state.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snapshotLocked()
}

// FindCategory resolves the category of tx against the current registry.
func (t *Tracker) FindCategory(tx model.Transaction) (model.Category, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return ledger.FindCategory(tx, t.categories.All())
}

// Category returns the category with the given id.
func (t *Tracker) Category(id string) (model.Category, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.categories.Find(id)
}

// SpendingByCategory totals expenses per category.
func (t *Tracker) SpendingByCategory() []totals.CategorySpend {
	t.mu.Lock()
	defer t.mu.Unlock()
	return totals.ByCategory(t.ledger.All(), t.categories.All())
}

// Guide splits total income by the 50/30/20 rule.
func (t *Tracker) Guide() []totals.GuideSlice {
	return totals.Guide(t.Totals().Income)
}

// Subscribe registers fn to be called after every state change. The
// returned function unsubscribes; calling it more than once is harmless.
func (t *Tracker) Subscribe(fn Observer) func() {
	t.mu.Lock()
	defer t.mu.Unlock()

	id := t.nextID
	t.nextID++
	t.observers[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			t.mu.Lock()
			defer t.mu.Unlock()
			delete(t.observers, id)
		})
	}
}

func (t *Tracker) snapshotLocked() Snapshot {
	txns := t.ledger.All()
	value := t.budget.Value()
	return Snapshot{
		Budget:       value,
		Totals:       totals.Compute(txns, value),
		Categories:   t.categories.All(),
		Transactions: txns,
	}
}

// finish releases the lock taken by a mutation and, when state changed,
// notifies observers. It returns err unchanged.
func (t *Tracker) finish(didChange bool, err error) error {
	if !didChange {
		t.mu.Unlock()
		return err
	}

	snap := t.snapshotLocked()
	observers := make([]Observer, 0, len(t.observers))
	for _, fn := range t.observers {
		observers = append(observers, fn)
	}
	t.mu.Unlock()

	for _, fn := range observers {
		fn(snap)
	}
	return err
}

// changed reports whether a mutation that returned err modified state. A
// storage failure still leaves the in-memory change in place.
func changed(err error) bool {
	return err == nil || common.IsStorage(err)
}
