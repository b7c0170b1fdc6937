// Package snapshot loads and saves per-month plan snapshots, carrying
// structure forward from the previous month when a month is opened for
// the first time.
package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"planner/internal/core"
	"planner/internal/kv"
)

// Manager resolves (year, month) keys to snapshots over a KV store.
// Storage failures never surface as errors here: a failed read degrades
// to the carry-forward or empty branch, and a failed save is superseded
// by the next one since every save is a full replacement.
type Manager struct {
	kv kv.Store
}

func NewManager(store kv.Store) *Manager {
	return &Manager{kv: store}
}

// Load returns the snapshot for the given month. Resolution order:
// the stored blob for the month itself; else a carry-forward of the
// previous month's structure with amounts cleared; else a fully empty
// snapshot.
func (m *Manager) Load(ctx context.Context, year, month int) core.Snapshot {
	if snap, ok := m.read(ctx, year, month); ok {
		return snap
	}
	prevYear, prevMonth := core.PrevMonth(year, month)
	if prev, ok := m.read(ctx, prevYear, prevMonth); ok {
		return core.CarryForward(prev, year, month)
	}
	return core.EmptySnapshot(year, month)
}

func (m *Manager) read(ctx context.Context, year, month int) (core.Snapshot, bool) {
	key := core.MonthKey(year, month)
	raw, ok, err := m.kv.Get(ctx, key)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to read snapshot, treating as absent",
			"key", key, "error", err)
		return core.Snapshot{}, false
	}
	if !ok {
		return core.Snapshot{}, false
	}

	var snap core.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		slog.ErrorContext(ctx, "Failed to decode snapshot, treating as absent",
			"key", key, "error", err)
		return core.Snapshot{}, false
	}
	snap.Year = year
	snap.Month = month
	return snap, true
}

// Save persists the snapshot whole under its month key, overwriting any
// prior value. Callers invoke it after every mutation; writes are
// idempotent full replacements, so at-least-once delivery is fine.
func (m *Manager) Save(ctx context.Context, snap core.Snapshot) error {
	key := core.MonthKey(snap.Year, snap.Month)
	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot %s: %w", key, err)
	}
	if err := m.kv.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("store snapshot %s: %w", key, err)
	}
	slog.DebugContext(ctx, "Snapshot saved", "key", key, "bytes", len(raw))
	return nil
}
