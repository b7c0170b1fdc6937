package core

import (
	"encoding/json"
	"testing"
)

func TestMonthKey(t *testing.T) {
	if got := MonthKey(2025, 3); got != "planner-2025-3" {
		t.Fatalf("MonthKey = %q", got)
	}
}

func TestPrevMonth(t *testing.T) {
	cases := []struct {
		year, month         int
		wantYear, wantMonth int
	}{
		{2025, 3, 2025, 2},
		{2025, 1, 2024, 12},
		{2025, 12, 2025, 11},
	}
	for _, tc := range cases {
		y, m := PrevMonth(tc.year, tc.month)
		if y != tc.wantYear || m != tc.wantMonth {
			t.Fatalf("PrevMonth(%d, %d) = %d, %d, want %d, %d",
				tc.year, tc.month, y, m, tc.wantYear, tc.wantMonth)
		}
	}
}

func TestCarryForward(t *testing.T) {
	prev := Snapshot{
		Year:          2025,
		Month:         2,
		PrevOverspend: "80",
		Debts:         []Row{{ID: "a", Name: "Rent", Amount: "500"}},
		Predicted:     []Row{{ID: "cat1", Name: "Food", Amount: "300"}},
		Weekly: []WeeklyRow{
			{ID: "cat1", Name: "Food", Weeks: [4]string{"10", "20", "", "5"}},
		},
		Allocation: []PlanCategory{{ID: "cat1", Percent: 25}},
	}

	next := CarryForward(prev, 2025, 3)

	if next.Year != 2025 || next.Month != 3 {
		t.Fatalf("month key not set: %d-%d", next.Year, next.Month)
	}
	if next.PrevOverspend != "" {
		t.Errorf("prev overspend should be cleared, got %q", next.PrevOverspend)
	}
	if len(next.Debts) != 1 || next.Debts[0].ID != "a" || next.Debts[0].Name != "Rent" {
		t.Fatalf("debt row identity not preserved: %+v", next.Debts)
	}
	if next.Debts[0].Amount != "" {
		t.Errorf("debt amount should be cleared, got %q", next.Debts[0].Amount)
	}
	if next.Predicted[0].Amount != "" {
		t.Errorf("predicted amount should be cleared, got %q", next.Predicted[0].Amount)
	}
	if next.Weekly[0].Weeks != [4]string{} {
		t.Errorf("weekly buckets should be cleared, got %v", next.Weekly[0].Weeks)
	}
	if next.Allocation[0].Percent != 25 {
		t.Errorf("allocation percent should survive, got %v", next.Allocation[0].Percent)
	}
	if !next.Allocation[0].Predicted.IsZero() {
		t.Errorf("allocation predicted should be reset, got %s", next.Allocation[0].Predicted)
	}

	// Carrying forward must not alias the previous month's rows.
	next.Debts[0].Name = "changed"
	if prev.Debts[0].Name != "Rent" {
		t.Errorf("carry-forward mutated the source snapshot")
	}
}

func TestSnapshotJSONFieldNames(t *testing.T) {
	snap := Snapshot{
		RecurringDebts: []Row{{ID: "r", Name: "Loan", Amount: "50"}},
	}
	raw, err := json.Marshal(snap)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, want := range []string{"prevOver", "debts", "savings", "regDebts", "regSavings", "regOther", "predicted", "cash"} {
		if _, ok := fields[want]; !ok {
			t.Errorf("missing field %q in %s", want, raw)
		}
	}
	if _, ok := fields["Year"]; ok {
		t.Errorf("year must not be persisted inside the blob")
	}
}
