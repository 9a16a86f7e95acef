package cli

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// Money formats d with two decimals after the currency symbol. The sign
// goes in front of the symbol: -€12.50.
func Money(currency string, d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
	}
	return sign + currency + d.Abs().StringFixed(2)
}

// SignedMoney is Money with an explicit + for positive amounts, as used in
// transaction lists.
func SignedMoney(currency string, d decimal.Decimal) string {
	if d.IsPositive() {
		return "+" + Money(currency, d)
	}
	return Money(currency, d)
}

// AmountStyle colors an amount by direction: green at or above zero, red
// below it. Signed transaction amounts and the remaining balance both use it.
func AmountStyle(d decimal.Decimal) lipgloss.Style {
	if d.IsNegative() {
		return ExpenseStyle
	}
	return IncomeStyle
}
