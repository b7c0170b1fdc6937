// Package ledger holds the transaction store and the pure aggregation
// functions the rollup calculator is fed from.
package ledger

import (
	"github.com/shopspring/decimal"

	"planner/internal/core"
)

// WeekBuckets is the fixed number of day-of-month spend buckets per
// month. Days 1-7 map to bucket 0, 8-14 to 1, 15-21 to 2 and everything
// from day 22 on folds into bucket 3, regardless of month length.
const WeekBuckets = 4

// Sum adds the amounts of all transactions matching pred. No matches
// sum to zero.
func Sum(txns []core.Transaction, pred func(core.Transaction) bool) decimal.Decimal {
	total := decimal.Zero
	for _, t := range txns {
		if pred(t) {
			total = total.Add(t.Amount)
		}
	}
	return total
}

// SumByType adds the amounts of all transactions of one type.
func SumByType(txns []core.Transaction, typ core.TxnType) decimal.Decimal {
	return Sum(txns, func(t core.Transaction) bool { return t.Type == typ })
}

// MonthFilter returns the transactions dated within the given calendar
// month (1-12).
func MonthFilter(txns []core.Transaction, year, month int) []core.Transaction {
	var out []core.Transaction
	for _, t := range txns {
		if t.InMonth(year, month) {
			out = append(out, t)
		}
	}
	return out
}

// BucketForDay maps a day of month to its week bucket.
func BucketForDay(day int) int {
	b := (day - 1) / 7
	if b > WeekBuckets-1 {
		b = WeekBuckets - 1
	}
	if b < 0 {
		b = 0
	}
	return b
}

// WeeklyBuckets sums the month's expense transactions for one category
// into the four fixed week buckets. A category id nothing references
// yields four zeros.
func WeeklyBuckets(txns []core.Transaction, categoryID string, year, month int) [WeekBuckets]decimal.Decimal {
	var buckets [WeekBuckets]decimal.Decimal
	for i := range buckets {
		buckets[i] = decimal.Zero
	}
	for _, t := range txns {
		if t.Type != core.Expense || t.CategoryID != categoryID || !t.InMonth(year, month) {
			continue
		}
		b := BucketForDay(t.Date.Day())
		buckets[b] = buckets[b].Add(t.Amount)
	}
	return buckets
}

// NetIncomeForMonth returns income minus expenses for the month. This is
// the snapshot's auto-computed net income when ledger-driven.
func NetIncomeForMonth(txns []core.Transaction, year, month int) decimal.Decimal {
	scoped := MonthFilter(txns, year, month)
	return SumByType(scoped, core.Income).Sub(SumByType(scoped, core.Expense))
}

// NetIncome returns income minus expenses over the whole ledger,
// unscoped by month.
func NetIncome(txns []core.Transaction) decimal.Decimal {
	return SumByType(txns, core.Income).Sub(SumByType(txns, core.Expense))
}

// CategoryExpenseSum returns the month's expense total for one category.
func CategoryExpenseSum(txns []core.Transaction, categoryID string, year, month int) decimal.Decimal {
	return Sum(txns, func(t core.Transaction) bool {
		return t.Type == core.Expense && t.CategoryID == categoryID && t.InMonth(year, month)
	})
}
