package plan

import "planner/internal/core"

// ReconcileWeekly syncs the weekly-bucket rows to the current predicted
// row set: rows whose id no longer exists are dropped, every predicted
// row lacking one gains a fresh empty-bucket row, and retained rows keep
// their buckets untouched. Idempotent and order-independent.
func ReconcileWeekly(weekly []core.WeeklyRow, predicted []core.Row) []core.WeeklyRow {
	existing := make(map[string]core.WeeklyRow, len(weekly))
	for _, w := range weekly {
		existing[w.ID] = w
	}

	out := make([]core.WeeklyRow, 0, len(predicted))
	for _, p := range predicted {
		if w, ok := existing[p.ID]; ok {
			w.Name = p.Name
			out = append(out, w)
			continue
		}
		out = append(out, core.WeeklyRow{ID: p.ID, Name: p.Name})
	}
	return out
}

// ReconcileAllocation keeps the percent allocation list in 1:1 sync with
// the expense category set: entries for removed categories are dropped,
// new categories get a zero entry, existing entries keep their values.
func ReconcileAllocation(alloc []core.PlanCategory, categories []core.Category) []core.PlanCategory {
	existing := make(map[string]core.PlanCategory, len(alloc))
	for _, a := range alloc {
		existing[a.ID] = a
	}

	out := make([]core.PlanCategory, 0, len(categories))
	for _, c := range categories {
		if a, ok := existing[c.ID]; ok {
			out = append(out, a)
			continue
		}
		out = append(out, core.PlanCategory{ID: c.ID})
	}
	return out
}

// ReconcilePredicted keeps the predicted row list aligned with the
// expense category set, one row per category with id = category id and
// the category's display name. Amounts of retained rows are preserved.
func ReconcilePredicted(predicted []core.Row, categories []core.Category) []core.Row {
	existing := make(map[string]core.Row, len(predicted))
	for _, p := range predicted {
		existing[p.ID] = p
	}

	out := make([]core.Row, 0, len(categories))
	for _, c := range categories {
		if p, ok := existing[c.ID]; ok {
			p.Name = c.Name
			out = append(out, p)
			continue
		}
		out = append(out, core.Row{ID: c.ID, Name: c.Name})
	}
	return out
}

// ReconcileSnapshot applies every category-linked sync to a snapshot in
// one pass: predicted rows against the expense categories, weekly rows
// against predicted, allocation against the expense categories.
func ReconcileSnapshot(snap core.Snapshot, categories []core.Category) core.Snapshot {
	snap.Predicted = ReconcilePredicted(snap.Predicted, categories)
	snap.Weekly = ReconcileWeekly(snap.Weekly, snap.Predicted)
	snap.Allocation = ReconcileAllocation(snap.Allocation, categories)
	return snap
}
