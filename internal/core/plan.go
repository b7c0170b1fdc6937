package core

import (
	"fmt"

	"github.com/shopspring/decimal"
)

const weekBuckets = 4

type (
	// Row is a generic named-amount line item used for debts, savings,
	// recurring bills, predicted category spend and cash withdrawals.
	// Amount is decimal-as-text; empty or garbage text counts as zero.
	Row struct {
		ID     string `json:"id"`
		Name   string `json:"name"`
		Amount string `json:"amount"`
	}

	// WeeklyRow mirrors a predicted Row and holds four fixed day-of-month
	// spend buckets for that category.
	WeeklyRow struct {
		ID    string              `json:"id"`
		Name  string              `json:"name"`
		Weeks [weekBuckets]string `json:"weeks"`
	}

	// PlanCategory carries the optional percent-of-available-funds
	// allocation for one expense category.
	PlanCategory struct {
		ID        string          `json:"id"`
		Percent   float64         `json:"percent"`
		Predicted decimal.Decimal `json:"predicted"`
	}

	// Snapshot is the complete set of planning rows and scalars for one
	// calendar month. It is persisted whole on every mutation and never
	// deleted automatically.
	Snapshot struct {
		Year  int `json:"-"`
		Month int `json:"-"`

		PrevOverspend    string         `json:"prevOver"`
		Debts            []Row          `json:"debts"`
		Savings          []Row          `json:"savings"`
		RecurringDebts   []Row          `json:"regDebts"`
		RecurringSavings []Row          `json:"regSavings"`
		RecurringOther   []Row          `json:"regOther"`
		Predicted        []Row          `json:"predicted"`
		Cash             []Row          `json:"cash"`
		Weekly           []WeeklyRow    `json:"weekly,omitempty"`
		Allocation       []PlanCategory `json:"allocation,omitempty"`
	}
)

// MonthKey derives the storage key for a snapshot. Months are 1-12.
func MonthKey(year, month int) string {
	return fmt.Sprintf("planner-%d-%d", year, month)
}

// PrevMonth returns the month preceding the given one, rolling the year
// back across January.
func PrevMonth(year, month int) (int, int) {
	if month <= 1 {
		return year - 1, 12
	}
	return year, month - 1
}

// EmptySnapshot returns a fully empty snapshot for the given month.
func EmptySnapshot(year, month int) Snapshot {
	return Snapshot{Year: year, Month: month}
}

// CarryForward builds a new month's snapshot from the previous one:
// structural rows keep their id and name, every amount is cleared, weekly
// buckets are cleared, allocation percents survive with predicted reset.
func CarryForward(prev Snapshot, year, month int) Snapshot {
	next := Snapshot{
		Year:             year,
		Month:            month,
		Debts:            clearAmounts(prev.Debts),
		Savings:          clearAmounts(prev.Savings),
		RecurringDebts:   clearAmounts(prev.RecurringDebts),
		RecurringSavings: clearAmounts(prev.RecurringSavings),
		RecurringOther:   clearAmounts(prev.RecurringOther),
		Predicted:        clearAmounts(prev.Predicted),
		Cash:             clearAmounts(prev.Cash),
	}
	for _, w := range prev.Weekly {
		next.Weekly = append(next.Weekly, WeeklyRow{ID: w.ID, Name: w.Name})
	}
	for _, a := range prev.Allocation {
		next.Allocation = append(next.Allocation, PlanCategory{ID: a.ID, Percent: a.Percent})
	}
	return next
}

func clearAmounts(rows []Row) []Row {
	if rows == nil {
		return nil
	}
	out := make([]Row, len(rows))
	for i, r := range rows {
		out[i] = Row{ID: r.ID, Name: r.Name}
	}
	return out
}
