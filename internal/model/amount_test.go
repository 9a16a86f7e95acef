package model

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in  string
		out string
		ok  bool
	}{
		{"1", "1", true},
		{"12.50", "12.5", true},
		{"12,50", "12.5", true},
		{" 2.50 ", "2.5", true},
		{"-40", "-40", true},
		{"1e3", "1000", true},
		{"0", "0", true},
		{"", "", false},
		{"   ", "", false},
		{"abc", "", false},
		{"1.2.3", "", false},
		{"1,234.5", "", false},
		{"NaN", "", false},
		{"Infinity", "", false},
		{"1e308", "1e308", true},
		{"-1e308", "-1e308", true},
		{"1e-300", "1e-300", true},
		{"1e400", "", false},
		{"-1e400", "", false},
		{"1.8e308", "", false},
		{"1e50000000", "", false},
		{"1e-50000000", "", false},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.ok {
			if err != nil || !got.Equal(decimal.RequireFromString(tc.out)) {
				t.Fatalf("%q expected %s, got %s (err=%v)", tc.in, tc.out, got, err)
			}
		} else if err == nil {
			t.Fatalf("%q expected error, got %s", tc.in, got)
		}
	}
}

func TestSignedAmount(t *testing.T) {
	cases := []struct {
		typ  TransactionType
		raw  string
		want string
	}{
		{TypeExpense, "12.5", "-12.5"},
		{TypeExpense, "-12.5", "-12.5"},
		{TypeIncome, "1000", "1000"},
		{TypeIncome, "-1000", "1000"},
	}
	for _, tc := range cases {
		got := SignedAmount(tc.typ, decimal.RequireFromString(tc.raw))
		if !got.Equal(decimal.RequireFromString(tc.want)) {
			t.Errorf("SignedAmount(%s, %s) = %s, want %s", tc.typ, tc.raw, got, tc.want)
		}
	}
}
