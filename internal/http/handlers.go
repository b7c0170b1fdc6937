package http

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"planner/internal/core"
	"planner/internal/ledger"
	"planner/internal/plan"
)

// handleCategories serves the ledger category set.
func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		state := s.budget.Load(r.Context())
		writeJSON(w, http.StatusOK, state.Categories)

	case http.MethodPost:
		var req struct {
			Name string       `json:"name"`
			Type core.TxnType `json:"type"`
		}
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		cat, err := s.budget.AddCategory(r.Context(), sanitizeInput(req.Name), req.Type)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		// The category set shapes every month's predicted rows, so the
		// whole rollup cache is stale now.
		s.rollupCache.Clear()
		writeJSON(w, http.StatusCreated, cat)

	case http.MethodDelete:
		id := strings.TrimSpace(r.URL.Query().Get("id"))
		if id == "" {
			writeError(w, http.StatusBadRequest, "missing id")
			return
		}
		if err := s.budget.DeleteCategory(r.Context(), id); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		s.rollupCache.Clear()
		w.WriteHeader(http.StatusNoContent)

	default:
		methodNotAllowed(w, "GET", "POST", "DELETE")
	}
}

// handleTransactions serves the ledger transaction list for one month
// and accepts new entries.
func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		year, month := parseYearMonth(r)
		state := s.budget.Load(r.Context())
		writeJSON(w, http.StatusOK, ledger.MonthFilter(state.Transactions, year, month))

	case http.MethodPost:
		var txn core.Transaction
		if err := readJSON(r, &txn); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		txn.Description = sanitizeInput(txn.Description)
		created, err := s.budget.AddTransaction(r.Context(), txn)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		s.invalidateRollup(created.Date.Year(), int(created.Date.Month()))
		s.publishSync(r.Context(), created.Date.Year(), int(created.Date.Month()))
		writeJSON(w, http.StatusCreated, created)

	case http.MethodDelete:
		id := strings.TrimSpace(r.URL.Query().Get("id"))
		if id == "" {
			writeError(w, http.StatusBadRequest, "missing id")
			return
		}
		if err := s.budget.DeleteTransaction(r.Context(), id); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		// The deleted entry's month is unknown here; drop everything.
		s.rollupCache.Clear()
		w.WriteHeader(http.StatusNoContent)

	default:
		methodNotAllowed(w, "GET", "POST", "DELETE")
	}
}

// planResponse wraps a snapshot with the month it belongs to, since the
// stored blob doesn't carry it.
type planResponse struct {
	Year  int           `json:"year"`
	Month int           `json:"month"`
	Plan  core.Snapshot `json:"plan"`
}

// handlePlan reads or replaces a month's plan snapshot.
func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	year, month := parseYearMonth(r)

	switch r.Method {
	case http.MethodGet:
		snap := s.loadPlan(r.Context(), year, month)
		writeJSON(w, http.StatusOK, planResponse{Year: year, Month: month, Plan: snap})

	case http.MethodPut:
		var snap core.Snapshot
		if err := readJSON(r, &snap); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		snap.Year, snap.Month = year, month
		if err := s.savePlan(r.Context(), snap); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, planResponse{Year: year, Month: month, Plan: snap})

	default:
		methodNotAllowed(w, "GET", "PUT")
	}
}

type rowRequest struct {
	Year    int    `json:"year"`
	Month   int    `json:"month"`
	Section string `json:"section"`
	Op      string `json:"op"`
	ID      string `json:"id,omitempty"`
	Field   string `json:"field,omitempty"`
	Value   string `json:"value,omitempty"`
}

// handlePlanRows applies a single row edit (add, update, delete) to one
// section of a month's plan.
func (s *Server) handlePlanRows(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, "POST")
		return
	}

	var req rowRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Month < 1 || req.Month > 12 {
		writeError(w, http.StatusBadRequest, "month must be 1-12")
		return
	}

	// Predicted rows are kept 1:1 with the expense categories by
	// reconciliation; rows added or deleted by hand would be undone on
	// the next load, so only amount/name updates are accepted there.
	if req.Section == "predicted" && req.Op != "update" {
		writeError(w, http.StatusUnprocessableEntity, "predicted rows follow the category set; only updates are allowed")
		return
	}

	snap := s.loadPlan(r.Context(), req.Year, req.Month)
	rows, ok := sectionRows(&snap, req.Section)
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown section "+strconv.Quote(req.Section))
		return
	}

	switch req.Op {
	case "add":
		*rows = plan.AddRow(*rows, s.budget.IDs())
	case "update":
		*rows = plan.UpdateRow(*rows, req.ID, plan.RowField(req.Field), sanitizeInput(req.Value))
	case "delete":
		*rows = plan.DeleteRow(*rows, req.ID)
	default:
		writeError(w, http.StatusBadRequest, "unknown op "+strconv.Quote(req.Op))
		return
	}

	if err := s.savePlan(r.Context(), snap); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, planResponse{Year: req.Year, Month: req.Month, Plan: snap})
}

// sectionRows maps a section name to its row list within the snapshot.
func sectionRows(snap *core.Snapshot, section string) (*[]core.Row, bool) {
	switch section {
	case "debts":
		return &snap.Debts, true
	case "savings":
		return &snap.Savings, true
	case "regDebts":
		return &snap.RecurringDebts, true
	case "regSavings":
		return &snap.RecurringSavings, true
	case "regOther":
		return &snap.RecurringOther, true
	case "predicted":
		return &snap.Predicted, true
	case "cash":
		return &snap.Cash, true
	}
	return nil, false
}

// handlePlanWeekly sets one weekly spend bucket on a month's plan.
func (s *Server) handlePlanWeekly(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, "POST")
		return
	}

	var req struct {
		Year  int    `json:"year"`
		Month int    `json:"month"`
		ID    string `json:"id"`
		Week  int    `json:"week"`
		Value string `json:"value"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Week < 0 || req.Week >= ledger.WeekBuckets {
		writeError(w, http.StatusBadRequest, "week must be 0-3")
		return
	}

	snap := s.loadPlan(r.Context(), req.Year, req.Month)
	snap.Weekly = plan.UpdateWeeklyBucket(snap.Weekly, req.ID, req.Week, sanitizeInput(req.Value))

	if err := s.savePlan(r.Context(), snap); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, planResponse{Year: req.Year, Month: req.Month, Plan: snap})
}

// handlePlanAllocation sets the autofill percent for one category.
func (s *Server) handlePlanAllocation(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, "POST")
		return
	}

	var req struct {
		Year    int     `json:"year"`
		Month   int     `json:"month"`
		ID      string  `json:"id"`
		Percent float64 `json:"percent"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	snap := s.loadPlan(r.Context(), req.Year, req.Month)
	snap.Allocation = plan.SetAllocationPercent(snap.Allocation, req.ID, req.Percent)

	if err := s.savePlan(r.Context(), snap); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, planResponse{Year: req.Year, Month: req.Month, Plan: snap})
}

// handleAutofill distributes the month's available funds over the
// allocation percentages and stores the result.
func (s *Server) handleAutofill(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, "POST")
		return
	}

	var req struct {
		Year  int `json:"year"`
		Month int `json:"month"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Month < 1 || req.Month > 12 {
		writeError(w, http.StatusBadRequest, "month must be 1-12")
		return
	}

	state := s.budget.Load(r.Context())
	snap := s.loadPlan(r.Context(), req.Year, req.Month)
	netIncome := ledger.NetIncomeForMonth(state.Transactions, req.Year, req.Month)

	snap = plan.Autofill(snap, netIncome)

	if err := s.savePlan(r.Context(), snap); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, planResponse{Year: req.Year, Month: req.Month, Plan: snap})
}

// handleRollup serves the derived monthly aggregates, cached per month.
func (s *Server) handleRollup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}

	year, month := parseYearMonth(r)
	key := rollupKey(year, month)

	if cached, found := s.rollupCache.Get(key); found {
		slog.DebugContext(r.Context(), "Rollup cache hit", "year", year, "month", month)
		writeJSON(w, http.StatusOK, cached)
		return
	}

	snap := s.loadPlan(r.Context(), year, month)
	state := s.budget.Load(r.Context())
	rollup := plan.Compute(snap, state.Transactions)

	s.rollupCache.Set(key, rollup)
	writeJSON(w, http.StatusOK, rollup)
}

// loadPlan loads a month's snapshot and reconciles its category-linked
// rows with the current expense category set.
func (s *Server) loadPlan(ctx context.Context, year, month int) core.Snapshot {
	snap := s.snapshots.Load(ctx, year, month)
	state := s.budget.Load(ctx)
	return plan.ReconcileSnapshot(snap, state.ExpenseCategories())
}

// savePlan persists the snapshot, drops the month's cached rollup and
// announces the change for mirroring.
func (s *Server) savePlan(ctx context.Context, snap core.Snapshot) error {
	if err := s.snapshots.Save(ctx, snap); err != nil {
		return err
	}
	s.invalidateRollup(snap.Year, snap.Month)
	s.publishSync(ctx, snap.Year, snap.Month)
	return nil
}

func (s *Server) invalidateRollup(year, month int) {
	s.rollupCache.Delete(rollupKey(year, month))
}

// publishSync is best effort: the snapshot is already saved, so a
// broker failure only delays the mirror until the periodic sync.
func (s *Server) publishSync(ctx context.Context, year, month int) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishSnapshotSync(ctx, year, month); err != nil {
		slog.WarnContext(ctx, "Failed to publish sync message",
			"error", err, "year", year, "month", month)
	}
}

func rollupKey(year, month int) string {
	return strconv.Itoa(year) + "-" + strconv.Itoa(month)
}
