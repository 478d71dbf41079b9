// Package model defines domain types for moneylens transactions and aggregates.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Kind classifies a transaction row. The numeric values are fixed by the
// Money Manager database layout (DO_TYPE column) and must not be reordered.
type Kind int

const (
	KindIncome  Kind = 0
	KindExpense Kind = 1
	// Transfer legs appear in app-created databases. They are recognized so
	// listings can label them, but every aggregation excludes them.
	KindTransferOut Kind = 3
	KindTransferIn  Kind = 4
)

// String returns the display label for a kind.
func (k Kind) String() string {
	switch k {
	case KindIncome:
		return "income"
	case KindExpense:
		return "expense"
	case KindTransferOut:
		return "transfer-out"
	case KindTransferIn:
		return "transfer-in"
	}
	return "unknown"
}

// Analyzable reports whether the kind participates in statistics.
func (k Kind) Analyzable() bool {
	return k == KindIncome || k == KindExpense
}

// Transaction is one INOUTCOME row with its category and asset resolved.
type Transaction struct {
	UID          int64
	Date         time.Time
	Amount       decimal.Decimal // non-negative magnitude; Kind carries the sign
	Kind         Kind
	Category     string // sub-category name as stored (may be empty)
	MainCategory string // parent category, or Category when top-level
	Asset        string // payment method display name
	Note         string
}

// Signed returns the amount with expense rows negated, for running balances.
func (t Transaction) Signed() decimal.Decimal {
	if t.Kind == KindExpense || t.Kind == KindTransferOut {
		return t.Amount.Neg()
	}
	return t.Amount
}
