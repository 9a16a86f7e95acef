package model

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Amounts are persisted as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// TransactionType distinguishes money coming in from money going out.
type TransactionType string

const (
	// TypeIncome is money received. Its amount is never negative.
	TypeIncome TransactionType = "income"
	// TypeExpense is money spent. Its amount is never positive.
	TypeExpense TransactionType = "expense"
)

// Valid reports whether t is one of the known transaction types.
func (t TransactionType) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// Transaction is a single ledger entry. Records are immutable once created.
type Transaction struct {
	CreatedAt   time.Time       `json:"createdAt"`
	Category    *string         `json:"category"`
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Type        TransactionType `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
}

// CategoryID returns the referenced category id, or "" when there is none.
func (t Transaction) CategoryID() string {
	if t.Category == nil {
		return ""
	}
	return *t.Category
}

// IsExpense reports whether the transaction is an expense.
func (t Transaction) IsExpense() bool {
	return t.Type == TypeExpense
}

// SignedAmount applies the sign convention for typ to the magnitude of raw:
// expenses are negative, incomes positive.
func SignedAmount(typ TransactionType, raw decimal.Decimal) decimal.Decimal {
	if typ == TypeExpense {
		return raw.Abs().Neg()
	}
	return raw.Abs()
}

// Totals are the values derived from the ledger and the budget. They are
// never stored.
type Totals struct {
	Income    decimal.Decimal `json:"totalIncome"`
	Expense   decimal.Decimal `json:"totalExpense"`
	Remaining decimal.Decimal `json:"totalRemaining"`
}
