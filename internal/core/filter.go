package core

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// FilterType selects a view over the transaction collection. ALL and
// THIS_MONTH are expense views; the category filters narrow to one bucket.
type FilterType string

const (
	FilterAll       FilterType = "ALL"
	FilterNeed      FilterType = "NEED"
	FilterWant      FilterType = "WANT"
	FilterSaving    FilterType = "SAVING"
	FilterThisMonth FilterType = "THIS_MONTH"
)

// ParseFilterType returns the filter matching s, case-insensitively.
func ParseFilterType(s string) (FilterType, bool) {
	switch FilterType(strings.ToUpper(strings.TrimSpace(s))) {
	case FilterAll:
		return FilterAll, true
	case FilterNeed:
		return FilterNeed, true
	case FilterWant:
		return FilterWant, true
	case FilterSaving:
		return FilterSaving, true
	case FilterThisMonth:
		return FilterThisMonth, true
	default:
		return "", false
	}
}

func (f FilterType) String() string {
	return string(f)
}

// Filter derives the expense view selected by filter. Income rows are
// excluded from every result. Input order is preserved: the store keeps
// transactions date-descending, so the newest row stays first.
//
// now anchors the THIS_MONTH comparison so callers and tests control the
// clock.
func Filter(txns []Transaction, filter FilterType, now time.Time) []Transaction {
	out := make([]Transaction, 0, len(txns))
	for _, txn := range txns {
		if !txn.Category.IsExpense() {
			continue
		}
		switch filter {
		case FilterNeed, FilterWant, FilterSaving:
			if txn.Category != Category(filter) {
				continue
			}
		case FilterThisMonth:
			if !IsThisMonth(txn.Date, now) {
				continue
			}
		}
		out = append(out, txn)
	}
	return out
}

// IncomeOnly returns only income transactions, order preserved.
func IncomeOnly(txns []Transaction) []Transaction {
	out := make([]Transaction, 0, len(txns))
	for _, txn := range txns {
		if txn.Category == Income {
			out = append(out, txn)
		}
	}
	return out
}

// SumAmounts returns the sum over the input, zero for an empty sequence.
// Decimal arithmetic keeps the result exact regardless of summation order.
func SumAmounts(txns []Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, txn := range txns {
		total = total.Add(txn.Amount)
	}
	return total
}

// IsThisMonth reports whether date falls in the same calendar month and year
// as now.
func IsThisMonth(date, now time.Time) bool {
	return date.Month() == now.Month() && date.Year() == now.Year()
}
