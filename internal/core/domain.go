package core

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	Income  TxnType = "income"
	Expense TxnType = "expense"
)

type (
	TxnType string

	// Category is a named income/expense bucket owned by the ledger.
	// Transactions and plan rows reference it by ID; the reference is weak,
	// so deleting a category leaves referrers orphaned rather than cascading.
	Category struct {
		ID   string  `json:"id"`
		Name string  `json:"name"`
		Type TxnType `json:"type"`
	}

	// Transaction is a single dated ledger entry. Amount is always
	// non-negative; the sign of its contribution is derived from Type.
	Transaction struct {
		ID          string          `json:"id"`
		Type        TxnType         `json:"type"`
		Amount      decimal.Decimal `json:"amount"`
		CategoryID  string          `json:"categoryId"`
		Description string          `json:"description,omitempty"`
		Date        time.Time       `json:"date"`
	}
)

var (
	ErrInvalidType    = errors.New("invalid transaction type")
	ErrNegativeAmount = errors.New("amount must not be negative")
	ErrEmptyName      = errors.New("empty name")
	ErrEmptyCategory  = errors.New("empty category id")
	ErrZeroDate       = errors.New("date cannot be zero")
)

func (t TxnType) Valid() bool {
	return t == Income || t == Expense
}

func (c Category) Validate() error {
	if !c.Type.Valid() {
		return ErrInvalidType
	}
	if len(strings.TrimSpace(c.Name)) == 0 {
		return ErrEmptyName
	}
	return nil
}

// Validate checks a transaction on creation. Data already stored is never
// re-validated; reads stay permissive.
func (t Transaction) Validate() error {
	if !t.Type.Valid() {
		return ErrInvalidType
	}
	if t.Amount.IsNegative() {
		return ErrNegativeAmount
	}
	if strings.TrimSpace(t.CategoryID) == "" {
		return ErrEmptyCategory
	}
	if t.Date.IsZero() {
		return ErrZeroDate
	}
	return nil
}

// InMonth reports whether the transaction's date falls in the given
// calendar month (1-12).
func (t Transaction) InMonth(year, month int) bool {
	return t.Date.Year() == year && int(t.Date.Month()) == month
}
