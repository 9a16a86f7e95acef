// Package ledger keeps the ordered list of income and expense transactions.
package ledger

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/model"
	"github.com/Veraticus/tally/internal/storage"
	"github.com/Veraticus/tally/internal/validation"
)

// StorageKey is the key the transaction collection is persisted under.
const StorageKey = "incomes_expenses_transactions"

// NewTransaction is the user input for a transaction. Amount is the raw
// text as typed; its sign is ignored in favour of Type.
type NewTransaction struct {
	Description string                `json:"description" validate:"notblank"`
	Amount      string                `json:"amount" validate:"amount"`
	Type        model.TransactionType `json:"type" validate:"transaction_type"`
	CategoryID  string                `json:"category" validate:"required_if=Type expense"`
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithIDGenerator sets the function used to generate transaction ids.
func WithIDGenerator(fn model.IDFunc) Option {
	return func(l *Ledger) {
		if fn != nil {
			l.newID = fn
		}
	}
}

// WithClock sets the function used to stamp createdAt.
func WithClock(fn func() time.Time) Option {
	return func(l *Ledger) {
		if fn != nil {
			l.now = fn
		}
	}
}

// WithCategoryLookup makes Add reject expenses whose category id is not
// known to exist.
func WithCategoryLookup(exists func(id string) bool) Option {
	return func(l *Ledger) {
		l.categoryExists = exists
	}
}

// Ledger is the ordered transaction collection, newest last. A Ledger is not
// safe for concurrent use.
type Ledger struct {
	store          *storage.Store
	newID          model.IDFunc
	now            func() time.Time
	categoryExists func(id string) bool
	items          []model.Transaction
}

// Load reads the persisted transactions, or starts empty when nothing is
// stored. A read failure still returns a usable empty ledger together with
// the storage error.
func Load(ctx context.Context, store *storage.Store, opts ...Option) (*Ledger, error) {
	items, err := storage.LoadOr(ctx, store, StorageKey, []model.Transaction{})
	return New(store, normalize(items), opts...), err
}

// New creates a ledger over items without touching the store.
func New(store *storage.Store, items []model.Transaction, opts ...Option) *Ledger {
	if items == nil {
		items = []model.Transaction{}
	}
	l := &Ledger{
		store: store,
		newID: model.NewID,
		now:   time.Now,
		items: items,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Add validates in and appends the resulting transaction. Expenses are
// stored with a negative amount and incomes with a positive one, whatever
// sign was typed. Income never carries a category.
//
// Invalid input returns a validation error and leaves the ledger unchanged.
// When persisting fails the transaction is still added and the returned
// error is a storage error.
func (l *Ledger) Add(ctx context.Context, in NewTransaction) (model.Transaction, error) {
	in.Description = strings.TrimSpace(in.Description)
	in.CategoryID = strings.TrimSpace(in.CategoryID)

	if err := validation.Default().Struct(in); err != nil {
		return model.Transaction{}, err
	}
	if in.Type == model.TypeExpense && l.categoryExists != nil && !l.categoryExists(in.CategoryID) {
		return model.Transaction{}, common.NewValidationError("category", "does not exist")
	}

	raw, err := model.ParseAmount(in.Amount)
	if err != nil {
		return model.Transaction{}, err
	}

	tx := model.Transaction{
		ID:          l.newID(),
		Description: in.Description,
		Amount:      model.SignedAmount(in.Type, raw),
		Type:        in.Type,
		CreatedAt:   l.now().UTC(),
	}
	if in.Type == model.TypeExpense {
		category := in.CategoryID
		tx.Category = &category
	}

	l.items = append(l.items, tx)
	common.LogDebug("transaction added", common.Fields{
		"id":     tx.ID,
		"type":   tx.Type,
		"amount": tx.Amount.String(),
	})

	return tx, l.save(ctx)
}

// Remove deletes the transaction with the given id. Removing an unknown id
// does nothing and writes nothing.
func (l *Ledger) Remove(ctx context.Context, id string) (bool, error) {
	idx := l.index(id)
	if idx < 0 {
		return false, nil
	}

	l.items = slices.Delete(l.items, idx, idx+1)
	common.LogDebug("transaction removed", common.Fields{"id": id})

	return true, l.save(ctx)
}

// All returns a copy of the transactions, oldest first.
func (l *Ledger) All() []model.Transaction {
	out := make([]model.Transaction, len(l.items))
	copy(out, l.items)
	return out
}

// Find returns the transaction with the given id.
func (l *Ledger) Find(id string) (model.Transaction, bool) {
	idx := l.index(id)
	if idx < 0 {
		return model.Transaction{}, false
	}
	return l.items[idx], true
}

// FindCategory resolves the category a transaction refers to. Incomes and
// references to deleted categories resolve to nothing; that is not an error.
func FindCategory(tx model.Transaction, categories []model.Category) (model.Category, bool) {
	id := tx.CategoryID()
	if id == "" {
		return model.Category{}, false
	}
	for _, c := range categories {
		if c.ID == id {
			return c, true
		}
	}
	return model.Category{}, false
}

func (l *Ledger) index(id string) int {
	for i, tx := range l.items {
		if tx.ID == id {
			return i
		}
	}
	return -1
}

func (l *Ledger) save(ctx context.Context) error {
	return l.store.Save(ctx, StorageKey, l.items)
}

// normalize repairs records whose amount sign disagrees with their type, and
// drops categories from incomes. The repair is only written back with the
// next change.
func normalize(items []model.Transaction) []model.Transaction {
	for i := range items {
		tx := &items[i]
		if !tx.Type.Valid() {
			continue
		}
		if signed := model.SignedAmount(tx.Type, tx.Amount); !signed.Equal(tx.Amount) {
			slog.Warn("normalizing transaction amount sign",
				"id", tx.ID,
				"type", tx.Type,
				"amount", tx.Amount.String())
			tx.Amount = signed
		}
		if tx.Type == model.TypeIncome && tx.Category != nil {
			tx.Category = nil
		}
	}
	return items
}
