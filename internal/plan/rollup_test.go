package plan

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"planner/internal/core"
)

func expense(amount, categoryID string, year, month, day int) core.Transaction {
	return core.Transaction{
		Type:       core.Expense,
		Amount:     decimal.RequireFromString(amount),
		CategoryID: categoryID,
		Date:       time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC),
	}
}

func income(amount string, year, month, day int) core.Transaction {
	return core.Transaction{
		Type:       core.Income,
		Amount:     decimal.RequireFromString(amount),
		CategoryID: "salary",
		Date:       time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC),
	}
}

func TestComputeTotalLayers(t *testing.T) {
	snap := core.Snapshot{
		Year:          2025,
		Month:         3,
		PrevOverspend: "50",
		Debts: []core.Row{
			{ID: "d1", Name: "Credit card", Amount: "100"},
			{ID: "d2", Name: "Broken", Amount: "oops"}, // counts as 0
		},
		Savings:          []core.Row{{ID: "s1", Name: "Emergency", Amount: "150"}},
		RecurringDebts:   []core.Row{{ID: "r1", Name: "Mortgage", Amount: "200"}},
		RecurringSavings: []core.Row{{ID: "r2", Name: "Pension", Amount: "60"}},
		RecurringOther:   []core.Row{{ID: "r3", Name: "Gym", Amount: "40"}},
		Predicted: []core.Row{
			{ID: "food", Name: "Food", Amount: "120"},
			{ID: "fun", Name: "Fun", Amount: ""},
		},
		Cash: []core.Row{{ID: "c1", Name: "Pocket", Amount: "80"}},
	}
	txns := []core.Transaction{
		income("1500", 2025, 3, 1),
		expense("90", "food", 2025, 3, 5),
		expense("30", "food", 2025, 3, 20),
		expense("25", "fun", 2025, 3, 28),
	}

	r := Compute(snap, txns)

	check := func(name string, got decimal.Decimal, want string) {
		t.Helper()
		if got.String() != want {
			t.Errorf("%s = %s, want %s", name, got, want)
		}
	}

	// netIncome = 1500 - 145 = 1355
	check("NetIncome", r.NetIncome, "1355")
	check("DebtTotal", r.DebtTotal, "100")
	check("SavingTotal", r.SavingTotal, "150")
	// liquid = 1355 - 100 - 150 - 50
	check("LiquidTotal", r.LiquidTotal, "1055")
	check("RecurringTotal", r.RecurringTotal, "300")
	check("BillsTotal", r.BillsTotal, "755")
	// predicted rows 120 + 0, cash 80
	check("PredictedTotal", r.PredictedTotal, "200")
	check("Remaining", r.Remaining, "555")

	// The four layers must reconcile exactly.
	bills := r.NetIncome.Sub(r.DebtTotal).Sub(r.SavingTotal).
		Sub(decimal.RequireFromString("50")).Sub(r.RecurringTotal)
	if !r.BillsTotal.Equal(bills) {
		t.Errorf("bills layer does not reconcile: %s vs %s", r.BillsTotal, bills)
	}
	if !r.Remaining.Equal(r.BillsTotal.Sub(r.PredictedTotal)) {
		t.Errorf("remaining layer does not reconcile")
	}
}

func TestComputeWeekTotalsAndProgress(t *testing.T) {
	snap := core.Snapshot{
		Year:  2025,
		Month: 3,
		Predicted: []core.Row{
			{ID: "food", Name: "Food", Amount: "100"},
			{ID: "fun", Name: "Fun", Amount: "50"},
		},
	}
	txns := []core.Transaction{
		expense("10", "food", 2025, 3, 3),  // bucket 0
		expense("20", "food", 2025, 3, 10), // bucket 1
		expense("90", "food", 2025, 3, 25), // bucket 3
		expense("40", "fun", 2025, 3, 25),  // bucket 3
	}

	r := Compute(snap, txns)

	wantWeeks := [4]string{"10", "20", "0", "130"}
	for i, w := range r.WeekTotals {
		if w.String() != wantWeeks[i] {
			t.Errorf("week total %d = %s, want %s", i, w, wantWeeks[i])
		}
	}

	if len(r.Categories) != 2 {
		t.Fatalf("want 2 category progress rows, got %d", len(r.Categories))
	}

	food := r.Categories[0]
	if food.Spent.String() != "120" {
		t.Errorf("food spent = %s, want 120", food.Spent)
	}
	// Overspent by 20: positive diff, +20 percent.
	if food.Diff.String() != "20" {
		t.Errorf("food diff = %s, want 20", food.Diff)
	}
	if food.PercentOver < 19.999 || food.PercentOver > 20.001 {
		t.Errorf("food percentOver = %v, want 20", food.PercentOver)
	}

	fun := r.Categories[1]
	if fun.Diff.String() != "-10" {
		t.Errorf("fun diff = %s, want -10 (under budget)", fun.Diff)
	}
	if fun.PercentOver >= 0 {
		t.Errorf("under budget must be negative, got %v", fun.PercentOver)
	}
}

func TestComputeZeroPlannedHasZeroPercent(t *testing.T) {
	snap := core.Snapshot{
		Year:      2025,
		Month:     3,
		Predicted: []core.Row{{ID: "food", Name: "Food", Amount: ""}},
	}
	txns := []core.Transaction{expense("15", "food", 2025, 3, 2)}

	r := Compute(snap, txns)
	if r.Categories[0].PercentOver != 0 {
		t.Errorf("percentOver with zero plan = %v, want 0", r.Categories[0].PercentOver)
	}
	if r.Categories[0].Spent.String() != "15" {
		t.Errorf("spent = %s, want 15", r.Categories[0].Spent)
	}
}

func TestComputeEmptyInputs(t *testing.T) {
	r := Compute(core.EmptySnapshot(2025, 3), nil)
	for _, d := range []decimal.Decimal{
		r.NetIncome, r.DebtTotal, r.SavingTotal, r.LiquidTotal,
		r.RecurringTotal, r.BillsTotal, r.PredictedTotal, r.Remaining,
	} {
		if !d.IsZero() {
			t.Fatalf("empty inputs must produce all-zero totals: %+v", r)
		}
	}
	if len(r.Categories) != 0 {
		t.Fatalf("no predicted rows, no progress rows")
	}
}
