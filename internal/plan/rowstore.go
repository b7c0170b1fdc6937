// Package plan implements the planning side of the engine: row list
// editing, snapshot reconciliation, the rollup calculator and the
// percentage autofill.
package plan

import "planner/internal/core"

const (
	FieldName   RowField = "name"
	FieldAmount RowField = "amount"
)

// RowField names the editable fields of a Row.
type RowField string

// AddRow appends a fresh empty row. All row operations are total: they
// return the new list and never fail.
func AddRow(rows []core.Row, ids core.IDGenerator) []core.Row {
	return append(rows, core.Row{ID: ids.NewID()})
}

// UpdateRow sets one field of the row with the given id. Unknown ids and
// unknown fields are no-ops.
func UpdateRow(rows []core.Row, id string, field RowField, value string) []core.Row {
	out := make([]core.Row, len(rows))
	copy(out, rows)
	for i := range out {
		if out[i].ID != id {
			continue
		}
		switch field {
		case FieldName:
			out[i].Name = value
		case FieldAmount:
			out[i].Amount = value
		}
	}
	return out
}

// DeleteRow removes the row with the given id, if present.
func DeleteRow(rows []core.Row, id string) []core.Row {
	out := make([]core.Row, 0, len(rows))
	for _, r := range rows {
		if r.ID != id {
			out = append(out, r)
		}
	}
	return out
}

// UpdateWeeklyBucket sets one week's planned value on the weekly row
// with the given id. Unknown ids and out-of-range weeks are no-ops.
func UpdateWeeklyBucket(weekly []core.WeeklyRow, id string, week int, value string) []core.WeeklyRow {
	out := make([]core.WeeklyRow, len(weekly))
	copy(out, weekly)
	if week < 0 || week >= len(core.WeeklyRow{}.Weeks) {
		return out
	}
	for i := range out {
		if out[i].ID == id {
			out[i].Weeks[week] = value
		}
	}
	return out
}

// SetAllocationPercent sets the autofill percentage for one allocation
// entry. Unknown ids are no-ops; the percent is stored as given, even
// when the column no longer sums to 100.
func SetAllocationPercent(alloc []core.PlanCategory, id string, percent float64) []core.PlanCategory {
	out := make([]core.PlanCategory, len(alloc))
	copy(out, alloc)
	for i := range out {
		if out[i].ID == id {
			out[i].Percent = percent
		}
	}
	return out
}
