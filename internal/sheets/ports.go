package sheets

import (
	"context"

	"planner/internal/plan"
)

// Ports for outbound mirror adapters.
type (
	// RollupWriter mirrors the computed rollup for one month to an
	// external destination. Writing the same month twice replaces the
	// previous mirror, so redeliveries are safe.
	RollupWriter interface {
		WriteRollup(ctx context.Context, year, month int, r plan.Rollup) error
	}
)
