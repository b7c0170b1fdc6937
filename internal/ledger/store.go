package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"planner/internal/core"
	"planner/internal/kv"
)

// StorageKey is where the whole ledger blob lives.
const StorageKey = "budget-data"

// State is the persisted ledger blob: category definitions plus the
// dated transaction list.
type State struct {
	Categories   []core.Category    `json:"categories"`
	Transactions []core.Transaction `json:"transactions"`
}

// DefaultCategories seeds a first-run ledger so the planner has
// something to predict against.
func DefaultCategories() []core.Category {
	return []core.Category{
		{ID: "home", Name: "Home", Type: core.Expense},
		{ID: "groceries", Name: "Groceries", Type: core.Expense},
		{ID: "clothing", Name: "Clothing", Type: core.Expense},
		{ID: "salary", Name: "Salary", Type: core.Income},
	}
}

// Store owns the transaction ledger and category set, persisted as one
// blob under StorageKey. A missing or unreadable blob degrades to the
// seeded default state; it is never an error to load.
type Store struct {
	mu  sync.Mutex
	kv  kv.Store
	ids core.IDGenerator
}

func NewStore(store kv.Store, ids core.IDGenerator) *Store {
	return &Store{kv: store, ids: ids}
}

// IDs exposes the store's id generator so plan row edits mint ids from
// the same source as ledger entities.
func (s *Store) IDs() core.IDGenerator {
	return s.ids
}

// Load reads the current ledger state.
func (s *Store) Load(ctx context.Context) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

func (s *Store) load(ctx context.Context) State {
	raw, ok, err := s.kv.Get(ctx, StorageKey)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to load ledger, using defaults",
			"key", StorageKey, "error", err)
		return State{Categories: DefaultCategories()}
	}
	if !ok {
		return State{Categories: DefaultCategories()}
	}
	var st State
	if err := json.Unmarshal(raw, &st); err != nil {
		slog.ErrorContext(ctx, "Failed to decode ledger, using defaults",
			"key", StorageKey, "error", err)
		return State{Categories: DefaultCategories()}
	}
	return st
}

func (s *Store) save(ctx context.Context, st State) error {
	raw, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode ledger: %w", err)
	}
	if err := s.kv.Set(ctx, StorageKey, raw); err != nil {
		return fmt.Errorf("store ledger: %w", err)
	}
	return nil
}

// AddCategory creates a category with a fresh id and persists the ledger.
func (s *Store) AddCategory(ctx context.Context, name string, typ core.TxnType) (core.Category, error) {
	cat := core.Category{ID: s.ids.NewID(), Name: name, Type: typ}
	if err := cat.Validate(); err != nil {
		return core.Category{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.load(ctx)
	st.Categories = append(st.Categories, cat)
	if err := s.save(ctx, st); err != nil {
		return core.Category{}, err
	}
	return cat, nil
}

// DeleteCategory removes a category definition. Transactions and plan
// rows referencing it are left in place and become orphaned; aggregates
// treat the missing id as contributing nothing.
func (s *Store) DeleteCategory(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.load(ctx)
	kept := st.Categories[:0]
	for _, c := range st.Categories {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	st.Categories = kept
	return s.save(ctx, st)
}

// AddTransaction validates and persists a new ledger entry.
func (s *Store) AddTransaction(ctx context.Context, txn core.Transaction) (core.Transaction, error) {
	txn.ID = s.ids.NewID()
	if err := txn.Validate(); err != nil {
		return core.Transaction{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.load(ctx)
	st.Transactions = append(st.Transactions, txn)
	if err := s.save(ctx, st); err != nil {
		return core.Transaction{}, err
	}
	return txn, nil
}

// DeleteTransaction removes a ledger entry. Unknown ids are a no-op.
func (s *Store) DeleteTransaction(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.load(ctx)
	kept := st.Transactions[:0]
	for _, t := range st.Transactions {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	st.Transactions = kept
	return s.save(ctx, st)
}

// ExpenseCategories returns the expense-typed category definitions, in
// ledger order.
func (st State) ExpenseCategories() []core.Category {
	var out []core.Category
	for _, c := range st.Categories {
		if c.Type == core.Expense {
			out = append(out, c)
		}
	}
	return out
}

// CategoryName resolves a category id to its display name. Missing ids
// resolve to false, not an error.
func (st State) CategoryName(id string) (string, bool) {
	for _, c := range st.Categories {
		if c.ID == id {
			return c.Name, true
		}
	}
	return "", false
}
