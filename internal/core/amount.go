// Package core provides the planner's domain model: ledger entries,
// plan snapshots and the permissive amount parsing both are built on.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount converts user-entered amount text to a decimal.
//
// Parsing is deliberately permissive: empty or unparseable text yields
// zero, never an error, so every aggregate has a defined value for
// partial input. Both dot and comma decimal separators are accepted.
//
// Examples:
//
//	ParseAmount("12.34") -> 12.34
//	ParseAmount("12,34") -> 12.34
//	ParseAmount("")      -> 0
//	ParseAmount("abc")   -> 0
func ParseAmount(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// SumAmounts adds the parsed amounts of a list of rows.
func SumAmounts(rows []Row) decimal.Decimal {
	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(ParseAmount(r.Amount))
	}
	return total
}

// Round2 rounds to two decimal places, half away from zero. All
// user-facing derived amounts are presented at cent precision.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
