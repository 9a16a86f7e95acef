package themes

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestThemeAmount(t *testing.T) {
	tests := []struct {
		amount string
		want   string
	}{
		{amount: "12.5", want: "income"},
		{amount: "0", want: "income"},
		{amount: "-12.5", want: "expense"},
	}

	for _, tt := range tests {
		got := Default.Amount(decimal.RequireFromString(tt.amount)).GetForeground()
		want := Default.Income.GetForeground()
		if tt.want == "expense" {
			want = Default.Expense.GetForeground()
		}
		if got != want {
			t.Errorf("Amount(%s) foreground = %v, want %s color %v", tt.amount, got, tt.want, want)
		}
	}
}
