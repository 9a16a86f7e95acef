package totals

import (
	"testing"

	"github.com/Veraticus/tally/internal/model"
	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func income(amount string) model.Transaction {
	return model.Transaction{Type: model.TypeIncome, Amount: d(amount)}
}

func expense(amount, category string) model.Transaction {
	tx := model.Transaction{Type: model.TypeExpense, Amount: d(amount)}
	if category != "" {
		tx.Category = &category
	}
	return tx
}

func TestCompute(t *testing.T) {
	tests := []struct {
		name          string
		budget        string
		wantIncome    string
		wantExpense   string
		wantRemaining string
		txns          []model.Transaction
	}{
		{
			name:   "empty ledger",
			budget: "0", wantIncome: "0", wantExpense: "0", wantRemaining: "0",
		},
		{
			name:   "budget only",
			budget: "300", wantIncome: "0", wantExpense: "0", wantRemaining: "300",
		},
		{
			name:   "salary and lunch",
			txns:   []model.Transaction{income("1000"), expense("-12.50", "cat_1")},
			budget: "0", wantIncome: "1000", wantExpense: "12.5", wantRemaining: "987.5",
		},
		{
			name:   "overspent",
			txns:   []model.Transaction{income("100"), expense("-250", "cat_4")},
			budget: "50", wantIncome: "100", wantExpense: "250", wantRemaining: "-100",
		},
		{
			name:   "no float drift",
			txns:   []model.Transaction{income("0.1"), income("0.2")},
			budget: "0", wantIncome: "0.3", wantExpense: "0", wantRemaining: "0.3",
		},
		{
			name:   "dangling category still counted",
			txns:   []model.Transaction{expense("-5", "cat_gone")},
			budget: "10", wantIncome: "0", wantExpense: "5", wantRemaining: "5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compute(tt.txns, d(tt.budget))
			if !got.Income.Equal(d(tt.wantIncome)) {
				t.Errorf("Income = %s, want %s", got.Income, tt.wantIncome)
			}
			if !got.Expense.Equal(d(tt.wantExpense)) {
				t.Errorf("Expense = %s, want %s", got.Expense, tt.wantExpense)
			}
			if !got.Remaining.Equal(d(tt.wantRemaining)) {
				t.Errorf("Remaining = %s, want %s", got.Remaining, tt.wantRemaining)
			}
		})
	}
}

func TestByCategory(t *testing.T) {
	cats := []model.Category{
		{ID: "cat_1", Name: "Food"},
		{ID: "cat_2", Name: "Transport"},
	}
	txns := []model.Transaction{
		income("1000"),
		expense("-30", "cat_1"),
		expense("-10", "cat_1"),
		expense("-40", "cat_gone"),
		expense("-20", ""),
	}

	got := ByCategory(txns, cats)
	if len(got) != 3 {
		t.Fatalf("expected 3 rows, got %d: %+v", len(got), got)
	}

	want := []struct {
		id    string
		total string
		share string
		known bool
	}{
		{"cat_1", "40", "40", true},
		{"cat_2", "0", "0", true},
		{"cat_gone", "40", "40", false},
	}
	for i, w := range want {
		row := got[i]
		if row.Category.ID != w.id || row.Known != w.known {
			t.Errorf("row %d = %s known=%v, want %s known=%v", i, row.Category.ID, row.Known, w.id, w.known)
		}
		if !row.Total.Equal(d(w.total)) {
			t.Errorf("row %d total = %s, want %s", i, row.Total, w.total)
		}
		if !row.Share.Equal(d(w.share)) {
			t.Errorf("row %d share = %s, want %s", i, row.Share, w.share)
		}
	}
}

func TestByCategory_NoExpenses(t *testing.T) {
	got := ByCategory([]model.Transaction{income("10")}, model.DefaultCategories())
	for _, row := range got {
		if !row.Total.IsZero() || !row.Share.IsZero() {
			t.Errorf("expected zero row, got %+v", row)
		}
	}
}

func TestGuide(t *testing.T) {
	got := Guide(d("1234.50"))
	want := []struct {
		name    string
		amount  string
		percent int
	}{
		{"Needs", "617.25", 50},
		{"Wants", "370.35", 30},
		{"Savings", "246.9", 20},
	}

	if len(got) != len(want) {
		t.Fatalf("expected %d slices, got %d", len(want), len(got))
	}
	sum := decimal.Zero
	for i, w := range want {
		if got[i].Name != w.name || got[i].Percent != w.percent || !got[i].Amount.Equal(d(w.amount)) {
			t.Errorf("slice %d = %+v, want %+v", i, got[i], w)
		}
		sum = sum.Add(got[i].Amount)
	}
	if !sum.Equal(d("1234.50")) {
		t.Errorf("slices sum to %s", sum)
	}
}
