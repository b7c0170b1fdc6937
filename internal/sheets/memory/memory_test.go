package memory

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"planner/internal/plan"
)

func TestWriteRollupAndReadBack(t *testing.T) {
	m := New()

	r := plan.Rollup{Remaining: decimal.NewFromInt(120)}
	if err := m.WriteRollup(context.Background(), 2026, 4, r); err != nil {
		t.Fatalf("WriteRollup() error = %v", err)
	}

	got, ok := m.Rollup(2026, 4)
	if !ok {
		t.Fatal("expected rollup for 2026-04")
	}
	if !got.Remaining.Equal(r.Remaining) {
		t.Errorf("Remaining = %s, want %s", got.Remaining, r.Remaining)
	}
}

func TestWriteRollupReplacesSameMonth(t *testing.T) {
	m := New()
	ctx := context.Background()

	m.WriteRollup(ctx, 2026, 4, plan.Rollup{Remaining: decimal.NewFromInt(10)})
	m.WriteRollup(ctx, 2026, 4, plan.Rollup{Remaining: decimal.NewFromInt(99)})

	if m.Len() != 1 {
		t.Errorf("Len() = %d, want 1", m.Len())
	}
	got, _ := m.Rollup(2026, 4)
	if !got.Remaining.Equal(decimal.NewFromInt(99)) {
		t.Errorf("Remaining = %s, want 99", got.Remaining)
	}
}

func TestWriteRollupInvalidMonth(t *testing.T) {
	m := New()
	if err := m.WriteRollup(context.Background(), 2026, 13, plan.Rollup{}); err == nil {
		t.Error("expected error for month 13")
	}
	if err := m.WriteRollup(context.Background(), 2026, 0, plan.Rollup{}); err == nil {
		t.Error("expected error for month 0")
	}
}
