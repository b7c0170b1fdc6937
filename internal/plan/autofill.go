package plan

import (
	"github.com/shopspring/decimal"

	"planner/internal/core"
)

var hundred = decimal.NewFromInt(100)

// Available returns the funds the autofill distributes: net income minus
// debts, savings and the previous month's overspend. This is the same
// quantity the rollup reports as the liquid total.
func Available(snap core.Snapshot, netIncome decimal.Decimal) decimal.Decimal {
	return netIncome.
		Sub(core.SumAmounts(snap.Debts)).
		Sub(core.SumAmounts(snap.Savings)).
		Sub(core.ParseAmount(snap.PrevOverspend))
}

// Autofill recomputes every allocation entry's predicted amount as its
// percent share of the available funds, rounded to cents, and writes the
// result into the matching predicted row. It is a one-shot overwrite:
// prior predicted values are not consulted, so the operation is
// idempotent for unchanged inputs. Percents are independent and may sum
// to anything; over- or under-allocation simply shows up in Remaining.
func Autofill(snap core.Snapshot, netIncome decimal.Decimal) core.Snapshot {
	available := Available(snap, netIncome)

	alloc := make([]core.PlanCategory, len(snap.Allocation))
	byID := make(map[string]decimal.Decimal, len(snap.Allocation))
	for i, a := range snap.Allocation {
		a.Predicted = core.Round2(available.Mul(decimal.NewFromFloat(a.Percent)).Div(hundred))
		alloc[i] = a
		byID[a.ID] = a.Predicted
	}
	snap.Allocation = alloc

	predicted := make([]core.Row, len(snap.Predicted))
	copy(predicted, snap.Predicted)
	for i := range predicted {
		if amount, ok := byID[predicted[i].ID]; ok {
			predicted[i].Amount = amount.StringFixed(2)
		}
	}
	snap.Predicted = predicted

	return snap
}
