// Package model defines the core domain types shared across the application.
package model

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind is the directional classification of a transaction. The stored amount
// is always non-negative; direction is carried solely by the kind.
type Kind string

const (
	// KindIncome marks money coming in.
	KindIncome Kind = "income"
	// KindExpense marks money going out.
	KindExpense Kind = "expense"
)

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	return k == KindIncome || k == KindExpense
}

// Transaction represents a single financial movement.
type Transaction struct {
	Description string
	Category    string
	Date        string // display form, DD/MM/YYYY
	Kind        Kind
	ID          int64
	Amount      float64
}

// DedupKey identifies a transaction for import deduplication. Two records
// with the same description, date text and amount are considered the same
// movement regardless of their store identity.
type DedupKey struct {
	Description string
	Date        string
	Amount      float64
}

// DedupKey returns the (description, date, amount) triple for t.
func (t *Transaction) DedupKey() DedupKey {
	return DedupKey{
		Description: t.Description,
		Date:        t.Date,
		Amount:      t.Amount,
	}
}

// ErrInvalidAmount is returned when user input cannot be read as a
// non-negative decimal amount.
var ErrInvalidAmount = errors.New("invalid amount")

// ParseAmount reads a user-entered amount. Both decimal comma and decimal
// point are accepted. Negative and non-finite values are rejected; the sign
// of a movement belongs to its kind, never to the stored magnitude.
func ParseAmount(s string) (float64, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if cleaned == "" {
		return 0, fmt.Errorf("%w: empty value", ErrInvalidAmount)
	}

	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if v < 0 {
		return 0, fmt.Errorf("%w: amount must not be negative", ErrInvalidAmount)
	}

	return v, nil
}
