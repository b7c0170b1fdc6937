package plan

import (
	"fmt"
	"testing"

	"planner/internal/core"
)

type seqIDs struct{ n int }

func (g *seqIDs) NewID() string {
	g.n++
	return fmt.Sprintf("row-%d", g.n)
}

func TestAddRow(t *testing.T) {
	gen := &seqIDs{}
	rows := AddRow(nil, gen)
	rows = AddRow(rows, gen)

	if len(rows) != 2 {
		t.Fatalf("want 2 rows, got %d", len(rows))
	}
	if rows[0].ID == rows[1].ID {
		t.Fatalf("ids must be unique: %q", rows[0].ID)
	}
	if rows[0].Name != "" || rows[0].Amount != "" {
		t.Fatalf("new row must be empty: %+v", rows[0])
	}
}

func TestUpdateRow(t *testing.T) {
	rows := []core.Row{{ID: "a", Name: "Rent", Amount: "500"}}

	cases := []struct {
		name  string
		id    string
		field RowField
		value string
		want  core.Row
	}{
		{"set name", "a", FieldName, "Mortgage", core.Row{ID: "a", Name: "Mortgage", Amount: "500"}},
		{"set amount", "a", FieldAmount, "600", core.Row{ID: "a", Name: "Rent", Amount: "600"}},
		{"unknown id is a no-op", "zzz", FieldName, "x", core.Row{ID: "a", Name: "Rent", Amount: "500"}},
		{"unknown field is a no-op", "a", RowField("color"), "red", core.Row{ID: "a", Name: "Rent", Amount: "500"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := UpdateRow(rows, tc.id, tc.field, tc.value)
			if got[0] != tc.want {
				t.Fatalf("got %+v, want %+v", got[0], tc.want)
			}
			// The input list must be left untouched.
			if rows[0] != (core.Row{ID: "a", Name: "Rent", Amount: "500"}) {
				t.Fatalf("input mutated: %+v", rows[0])
			}
		})
	}
}

func TestDeleteRow(t *testing.T) {
	rows := []core.Row{
		{ID: "a", Name: "Rent"},
		{ID: "b", Name: "Food"},
	}
	got := DeleteRow(rows, "a")
	if len(got) != 1 || got[0].ID != "b" {
		t.Fatalf("delete: %+v", got)
	}
	if got := DeleteRow(rows, "nope"); len(got) != 2 {
		t.Fatalf("unknown id must be a no-op, got %+v", got)
	}
}

func TestUpdateWeeklyBucket(t *testing.T) {
	weekly := []core.WeeklyRow{{ID: "food", Name: "Food", Weeks: [4]string{"10", "", "", ""}}}

	got := UpdateWeeklyBucket(weekly, "food", 2, "25.50")
	if got[0].Weeks != [4]string{"10", "", "25.50", ""} {
		t.Fatalf("buckets = %v", got[0].Weeks)
	}
	if weekly[0].Weeks[2] != "" {
		t.Fatalf("input mutated: %v", weekly[0].Weeks)
	}

	if got := UpdateWeeklyBucket(weekly, "nope", 0, "1"); got[0].Weeks != weekly[0].Weeks {
		t.Fatalf("unknown id must be a no-op, got %v", got[0].Weeks)
	}
	for _, week := range []int{-1, 4} {
		if got := UpdateWeeklyBucket(weekly, "food", week, "1"); got[0].Weeks != weekly[0].Weeks {
			t.Fatalf("week %d must be a no-op, got %v", week, got[0].Weeks)
		}
	}
}

func TestSetAllocationPercent(t *testing.T) {
	alloc := []core.PlanCategory{{ID: "food", Percent: 10}, {ID: "home", Percent: 90}}

	got := SetAllocationPercent(alloc, "food", 35)
	if got[0].Percent != 35 || got[1].Percent != 90 {
		t.Fatalf("percents = %v / %v", got[0].Percent, got[1].Percent)
	}
	if alloc[0].Percent != 10 {
		t.Fatalf("input mutated: %v", alloc[0].Percent)
	}

	// Percents are independent; the column may sum past 100.
	got = SetAllocationPercent(got, "home", 110)
	if got[1].Percent != 110 {
		t.Fatalf("percent = %v, want 110", got[1].Percent)
	}

	if got := SetAllocationPercent(alloc, "nope", 5); got[0].Percent != 10 || got[1].Percent != 90 {
		t.Fatalf("unknown id must be a no-op, got %+v", got)
	}
}
