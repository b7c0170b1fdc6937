package memory

import (
	"context"
	"fmt"
	"sync"

	"planner/internal/plan"
)

// Mirror keeps the last rollup written per month. Useful for local
// runs and tests where no spreadsheet is configured.
type Mirror struct {
	mu      sync.Mutex
	rollups map[string]plan.Rollup
}

func New() *Mirror {
	return &Mirror{rollups: make(map[string]plan.Rollup)}
}

// WriteRollup replaces the stored rollup for the given month.
func (m *Mirror) WriteRollup(_ context.Context, year, month int, r plan.Rollup) error {
	if month < 1 || month > 12 {
		return fmt.Errorf("invalid month %d", month)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rollups[monthKey(year, month)] = r
	return nil
}

// Rollup returns the stored rollup for a month, if any.
func (m *Mirror) Rollup(year, month int) (plan.Rollup, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rollups[monthKey(year, month)]
	return r, ok
}

// Len returns the number of months mirrored so far.
func (m *Mirror) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rollups)
}

func monthKey(year, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}
