package model

// DefaultCategoryColor is used when a category is added without a color.
const DefaultCategoryColor = "#6b7280"

// Category is a user-defined expense category. Transactions reference it by
// ID; removing a category leaves those references dangling.
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

var defaultCategories = []Category{
	{ID: "cat_1", Name: "Food", Color: "#f59e0b"},
	{ID: "cat_2", Name: "Transport", Color: "#3b82f6"},
	{ID: "cat_3", Name: "Entertainment", Color: "#ec4899"},
	{ID: "cat_4", Name: "Bills", Color: "#ef4444"},
	{ID: "cat_5", Name: "Other", Color: DefaultCategoryColor},
}

// DefaultCategories returns a fresh copy of the built-in category set used
// when nothing has been persisted yet.
func DefaultCategories() []Category {
	out := make([]Category, len(defaultCategories))
	copy(out, defaultCategories)
	return out
}
