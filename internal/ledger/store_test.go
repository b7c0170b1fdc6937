package ledger

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"planner/internal/core"
	"planner/internal/kv"
)

type seqIDs struct{ n int }

func (g *seqIDs) NewID() string {
	g.n++
	return fmt.Sprintf("id-%d", g.n)
}

type failingKV struct{}

func (failingKV) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("disk gone")
}

func (failingKV) Set(context.Context, string, []byte) error {
	return errors.New("disk gone")
}

func TestStoreFirstLoadSeedsDefaults(t *testing.T) {
	s := NewStore(kv.NewMemory(), &seqIDs{})
	st := s.Load(context.Background())
	if len(st.Categories) == 0 {
		t.Fatalf("first load should seed default categories")
	}
	if len(st.Transactions) != 0 {
		t.Fatalf("first load should have no transactions")
	}
}

func TestStoreAddAndDeleteTransaction(t *testing.T) {
	ctx := context.Background()
	s := NewStore(kv.NewMemory(), &seqIDs{})

	added, err := s.AddTransaction(ctx, core.Transaction{
		Type:       core.Expense,
		Amount:     decimal.RequireFromString("12.50"),
		CategoryID: "groceries",
		Date:       time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if added.ID != "id-1" {
		t.Fatalf("id not assigned from generator: %q", added.ID)
	}

	st := s.Load(ctx)
	if len(st.Transactions) != 1 {
		t.Fatalf("transaction not persisted")
	}

	if err := s.DeleteTransaction(ctx, "id-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if st = s.Load(ctx); len(st.Transactions) != 0 {
		t.Fatalf("transaction not deleted")
	}

	// Deleting an unknown id is a no-op, not an error.
	if err := s.DeleteTransaction(ctx, "nope"); err != nil {
		t.Fatalf("delete unknown id: %v", err)
	}
}

func TestStoreRejectsInvalidTransaction(t *testing.T) {
	s := NewStore(kv.NewMemory(), &seqIDs{})
	_, err := s.AddTransaction(context.Background(), core.Transaction{
		Type:       core.Expense,
		Amount:     decimal.RequireFromString("-1"),
		CategoryID: "groceries",
		Date:       time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC),
	})
	if !errors.Is(err, core.ErrNegativeAmount) {
		t.Fatalf("want ErrNegativeAmount, got %v", err)
	}
}

func TestStoreDeleteCategoryLeavesTransactions(t *testing.T) {
	ctx := context.Background()
	s := NewStore(kv.NewMemory(), &seqIDs{})

	if _, err := s.AddTransaction(ctx, core.Transaction{
		Type:       core.Expense,
		Amount:     decimal.RequireFromString("5"),
		CategoryID: "groceries",
		Date:       time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC),
	}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := s.DeleteCategory(ctx, "groceries"); err != nil {
		t.Fatalf("delete category: %v", err)
	}

	st := s.Load(ctx)
	if _, ok := st.CategoryName("groceries"); ok {
		t.Fatalf("category should be gone")
	}
	if len(st.Transactions) != 1 {
		t.Fatalf("transactions must survive category deletion")
	}
}

func TestStoreLoadDegradesOnStorageFailure(t *testing.T) {
	s := NewStore(failingKV{}, &seqIDs{})
	st := s.Load(context.Background())
	if len(st.Categories) == 0 || len(st.Transactions) != 0 {
		t.Fatalf("failed read must degrade to seeded defaults, got %+v", st)
	}
}

func TestStateExpenseCategories(t *testing.T) {
	st := State{Categories: DefaultCategories()}
	for _, c := range st.ExpenseCategories() {
		if c.Type != core.Expense {
			t.Errorf("category %s has type %s", c.ID, c.Type)
		}
	}
	if name, ok := st.CategoryName("salary"); !ok || name != "Salary" {
		t.Errorf("CategoryName(salary) = %q, %v", name, ok)
	}
}
