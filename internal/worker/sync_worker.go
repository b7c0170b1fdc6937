package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"planner/internal/amqp"
	"planner/internal/ledger"
	"planner/internal/plan"
	"planner/internal/sheets"
	"planner/internal/snapshot"
)

// SyncWorker mirrors monthly rollups to an external sheet. It always
// recomputes from the current snapshot and ledger, so a redelivered or
// stale message still produces an up-to-date mirror.
type SyncWorker struct {
	snapshots *snapshot.Manager
	ledger    *ledger.Store
	mirror    sheets.RollupWriter
}

func NewSyncWorker(snapshots *snapshot.Manager, ledger *ledger.Store, mirror sheets.RollupWriter) *SyncWorker {
	return &SyncWorker{
		snapshots: snapshots,
		ledger:    ledger,
		mirror:    mirror,
	}
}

// HandleSyncMessage processes a single snapshot sync message from AMQP.
func (w *SyncWorker) HandleSyncMessage(ctx context.Context, msg *amqp.SnapshotSyncMessage) error {
	slog.InfoContext(ctx, "Processing sync message",
		"year", msg.Year,
		"month", msg.Month)

	if err := w.SyncMonth(ctx, msg.Year, msg.Month); err != nil {
		return fmt.Errorf("sync month %d-%d: %w", msg.Year, msg.Month, err)
	}
	return nil
}

// SyncMonth recomputes the rollup for one month and writes it to the
// mirror.
func (w *SyncWorker) SyncMonth(ctx context.Context, year, month int) error {
	if month < 1 || month > 12 {
		return fmt.Errorf("invalid month %d", month)
	}

	snap := w.snapshots.Load(ctx, year, month)
	state := w.ledger.Load(ctx)

	rollup := plan.Compute(snap, state.Transactions)

	if err := w.mirror.WriteRollup(ctx, year, month, rollup); err != nil {
		return fmt.Errorf("write rollup to mirror: %w", err)
	}

	slog.InfoContext(ctx, "Mirrored rollup",
		"year", year,
		"month", month,
		"remaining", rollup.Remaining.StringFixed(2))

	return nil
}

// SyncCurrentMonth mirrors the month in progress. This is the backup
// path run periodically in case AMQP messages are lost.
func (w *SyncWorker) SyncCurrentMonth(ctx context.Context) error {
	now := time.Now()
	return w.SyncMonth(ctx, now.Year(), int(now.Month()))
}

// RunPeriodicSync mirrors the current month on a fixed interval until
// the context is cancelled. Failures are logged and the loop keeps
// going.
func (w *SyncWorker) RunPeriodicSync(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// One pass at startup to recover from downtime.
	if err := w.SyncCurrentMonth(ctx); err != nil {
		slog.ErrorContext(ctx, "Startup sync failed", "error", err)
	}

	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "Stopping periodic sync", "reason", ctx.Err())
			return ctx.Err()
		case <-ticker.C:
			if err := w.SyncCurrentMonth(ctx); err != nil {
				slog.ErrorContext(ctx, "Periodic sync failed", "error", err)
			}
		}
	}
}
