package plan

import (
	"github.com/shopspring/decimal"

	"planner/internal/core"
	"planner/internal/ledger"
)

type (
	// Rollup is the full set of derived monetary aggregates for one
	// month's snapshot. Four layers reconcile exactly:
	//
	//	LiquidTotal    = NetIncome - DebtTotal - SavingTotal - PrevOverspend
	//	BillsTotal     = LiquidTotal - RecurringTotal
	//	PredictedTotal = sum of predicted rows + cash rows
	//	Remaining      = BillsTotal - PredictedTotal
	Rollup struct {
		NetIncome      decimal.Decimal `json:"netIncome"`
		DebtTotal      decimal.Decimal `json:"debtTotal"`
		SavingTotal    decimal.Decimal `json:"savingTotal"`
		LiquidTotal    decimal.Decimal `json:"liquidTotal"`
		RecurringTotal decimal.Decimal `json:"recurringTotal"`
		BillsTotal     decimal.Decimal `json:"billsTotal"`
		PredictedTotal decimal.Decimal `json:"predictedTotal"`
		Remaining      decimal.Decimal `json:"remaining"`

		WeekTotals [ledger.WeekBuckets]decimal.Decimal `json:"weekTotals"`
		Categories []CategoryProgress                  `json:"categories,omitempty"`
	}

	// CategoryProgress is the per-predicted-category spend breakdown.
	// Positive Diff and PercentOver mean overspent (unfavorable);
	// negative means under or at budget.
	CategoryProgress struct {
		ID          string                              `json:"id"`
		Name        string                              `json:"name"`
		Planned     decimal.Decimal                     `json:"planned"`
		Spent       decimal.Decimal                     `json:"spent"`
		Diff        decimal.Decimal                     `json:"diff"`
		PercentOver float64                             `json:"percentOver"`
		Weeks       [ledger.WeekBuckets]decimal.Decimal `json:"weeks"`
	}
)

// Compute derives every aggregate from a snapshot and the month's
// transactions. It is pure: no side effects, total for arbitrary input,
// unparseable amounts counting as zero throughout.
func Compute(snap core.Snapshot, txns []core.Transaction) Rollup {
	r := Rollup{
		NetIncome:   ledger.NetIncomeForMonth(txns, snap.Year, snap.Month),
		DebtTotal:   core.SumAmounts(snap.Debts),
		SavingTotal: core.SumAmounts(snap.Savings),
	}

	r.LiquidTotal = r.NetIncome.
		Sub(r.DebtTotal).
		Sub(r.SavingTotal).
		Sub(core.ParseAmount(snap.PrevOverspend))

	r.RecurringTotal = core.SumAmounts(snap.RecurringDebts).
		Add(core.SumAmounts(snap.RecurringSavings)).
		Add(core.SumAmounts(snap.RecurringOther))

	r.BillsTotal = r.LiquidTotal.Sub(r.RecurringTotal)

	r.PredictedTotal = core.SumAmounts(snap.Predicted).Add(core.SumAmounts(snap.Cash))
	r.Remaining = r.BillsTotal.Sub(r.PredictedTotal)

	for i := range r.WeekTotals {
		r.WeekTotals[i] = decimal.Zero
	}

	for _, p := range snap.Predicted {
		cp := CategoryProgress{
			ID:      p.ID,
			Name:    p.Name,
			Planned: core.ParseAmount(p.Amount),
			Spent:   decimal.Zero,
			Weeks:   ledger.WeeklyBuckets(txns, p.ID, snap.Year, snap.Month),
		}
		for w, b := range cp.Weeks {
			cp.Spent = cp.Spent.Add(b)
			r.WeekTotals[w] = r.WeekTotals[w].Add(b)
		}
		cp.Diff = cp.Spent.Sub(cp.Planned)
		if cp.Planned.IsPositive() {
			ratio, _ := cp.Spent.Div(cp.Planned).Float64()
			cp.PercentOver = (ratio - 1) * 100
		}
		r.Categories = append(r.Categories, cp)
	}

	return r
}
