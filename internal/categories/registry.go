// Package categories holds the ordered set of expense categories.
package categories

import (
	"context"
	"slices"
	"strings"

	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/model"
	"github.com/Veraticus/tally/internal/storage"
	"github.com/Veraticus/tally/internal/validation"
)

// StorageKey is the key the category collection is persisted under.
const StorageKey = "incomes_expenses_categories"

type newCategory struct {
	Name  string `json:"name" validate:"notblank"`
	Color string `json:"color" validate:"omitempty,hexcolor"`
}

// Registry is an ordered collection of categories. Insertion order is
// display order. A Registry is not safe for concurrent use.
type Registry struct {
	store *storage.Store
	newID model.IDFunc
	items []model.Category
}

// Load reads the persisted categories, or seeds the built-in defaults when
// nothing is stored. The defaults are not written until the first change.
// A read failure still returns a usable registry holding the defaults,
// together with the storage error.
func Load(ctx context.Context, store *storage.Store, newID model.IDFunc) (*Registry, error) {
	items, err := storage.LoadOr(ctx, store, StorageKey, model.DefaultCategories())
	return New(store, newID, items), err
}

// New creates a registry over items without touching the store.
func New(store *storage.Store, newID model.IDFunc, items []model.Category) *Registry {
	if newID == nil {
		newID = model.NewID
	}
	if items == nil {
		items = []model.Category{}
	}
	return &Registry{
		store: store,
		newID: newID,
		items: items,
	}
}

// Add appends a category. name is trimmed and must not be blank; an empty
// color falls back to model.DefaultCategoryColor. When persisting fails the
// category is still added and the returned error is a storage error.
func (r *Registry) Add(ctx context.Context, name, color string) (model.Category, error) {
	in := newCategory{
		Name:  strings.TrimSpace(name),
		Color: strings.TrimSpace(color),
	}
	if err := validation.Default().Struct(in); err != nil {
		return model.Category{}, err
	}
	if in.Color == "" {
		in.Color = model.DefaultCategoryColor
	}

	c := model.Category{
		ID:    r.newID(),
		Name:  in.Name,
		Color: strings.ToLower(in.Color),
	}
	r.items = append(r.items, c)
	common.LogDebug("category added", common.Fields{"id": c.ID, "name": c.Name})

	return c, r.save(ctx)
}

// Remove deletes the category with the given id. Transactions referring to
// it are left alone. Removing an unknown id does nothing and writes nothing.
func (r *Registry) Remove(ctx context.Context, id string) (bool, error) {
	idx := r.index(id)
	if idx < 0 {
		return false, nil
	}

	r.items = slices.Delete(r.items, idx, idx+1)
	common.LogDebug("category removed", common.Fields{"id": id})

	return true, r.save(ctx)
}

// All returns a copy of the categories in display order.
func (r *Registry) All() []model.Category {
	out := make([]model.Category, len(r.items))
	copy(out, r.items)
	return out
}

// Find returns the category with the given id.
func (r *Registry) Find(id string) (model.Category, bool) {
	idx := r.index(id)
	if idx < 0 {
		return model.Category{}, false
	}
	return r.items[idx], true
}

func (r *Registry) index(id string) int {
	for i, c := range r.items {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func (r *Registry) save(ctx context.Context) error {
	return r.store.Save(ctx, StorageKey, r.items)
}
