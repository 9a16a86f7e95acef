// Package totals derives summary figures from the ledger and the budget.
// Everything here is a pure function of its inputs.
package totals

import (
	"github.com/Veraticus/tally/internal/model"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Compute returns the income, expense and remaining totals.
// Income sums income amounts, Expense sums the magnitudes of expense
// amounts, and Remaining is budget + Income - Expense.
func Compute(transactions []model.Transaction, budget decimal.Decimal) model.Totals {
	income := decimal.Zero
	expense := decimal.Zero

	for _, tx := range transactions {
		switch tx.Type {
		case model.TypeIncome:
			income = income.Add(tx.Amount)
		case model.TypeExpense:
			expense = expense.Add(tx.Amount.Abs())
		}
	}

	return model.Totals{
		Income:    income,
		Expense:   expense,
		Remaining: budget.Add(income).Sub(expense),
	}
}

// CategorySpend is the expense total for one category id.
type CategorySpend struct {
	Category model.Category
	// Known is false for ids no longer in the registry.
	Known bool
	Total decimal.Decimal
	// Share is the percentage of all expenses, 0 when there are none.
	Share decimal.Decimal
}

// ByCategory totals expenses per category. Every registered category is
// listed in registry order, followed by ids that no longer resolve. Expenses
// without a category are not listed.
func ByCategory(transactions []model.Transaction, categories []model.Category) []CategorySpend {
	sums := make(map[string]decimal.Decimal)
	var dangling []string
	known := make(map[string]bool, len(categories))
	for _, c := range categories {
		known[c.ID] = true
	}

	total := decimal.Zero
	for _, tx := range transactions {
		if !tx.IsExpense() {
			continue
		}
		amount := tx.Amount.Abs()
		total = total.Add(amount)

		id := tx.CategoryID()
		if id == "" {
			continue
		}
		if _, seen := sums[id]; !seen && !known[id] {
			dangling = append(dangling, id)
		}
		sums[id] = sums[id].Add(amount)
	}

	out := make([]CategorySpend, 0, len(categories)+len(dangling))
	for _, c := range categories {
		out = append(out, CategorySpend{
			Category: c,
			Known:    true,
			Total:    sums[c.ID],
			Share:    share(sums[c.ID], total),
		})
	}
	for _, id := range dangling {
		out = append(out, CategorySpend{
			Category: model.Category{ID: id, Color: model.DefaultCategoryColor},
			Total:    sums[id],
			Share:    share(sums[id], total),
		})
	}
	return out
}

func share(part, total decimal.Decimal) decimal.Decimal {
	if total.IsZero() {
		return decimal.Zero
	}
	return part.Mul(hundred).Div(total)
}

// GuideSlice is one part of the 50/30/20 budgeting guide.
type GuideSlice struct {
	Name    string
	Percent int
	Amount  decimal.Decimal
}

var guideSplit = []struct {
	name    string
	percent int64
}{
	{"Needs", 50},
	{"Wants", 30},
	{"Savings", 20},
}

// Guide splits total income by the 50/30/20 rule.
func Guide(totalIncome decimal.Decimal) []GuideSlice {
	out := make([]GuideSlice, 0, len(guideSplit))
	for _, s := range guideSplit {
		out = append(out, GuideSlice{
			Name:    s.name,
			Percent: int(s.percent),
			Amount:  totalIncome.Mul(decimal.NewFromInt(s.percent)).Div(hundred),
		})
	}
	return out
}
