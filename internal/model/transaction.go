// Package model defines the core domain models used throughout the application.
package model

import (
	"crypto/sha256"
	"fmt"
	"time"
)

// Direction indicates whether a transaction moves money in or out.
type Direction string

// Transaction direction constants.
const (
	DirectionIncome  Direction = "income"
	DirectionExpense Direction = "expense"
)

// Transaction represents a single financial transaction from any source.
// Amount is always a non-negative magnitude; the sign lives in Direction.
// After creation only Category may change, via explicit re-categorization.
type Transaction struct {
	Date            time.Time
	ID              string
	Description     string // Display description of the transaction
	Amount          float64
	Direction       Direction
	Category        Category

	// Optional statement metadata used only for display and merge heuristics.
	StatementLine   string // Raw "line type" from the statement
	StatementDetail string // Free-text detail from the statement
	DocumentNumber  string
}

// GenerateHash creates a stable hash for a transaction, used as a storage key
// when no explicit ID was assigned.
func (t *Transaction) GenerateHash() string {
	data := fmt.Sprintf("%s:%.2f:%s:%s",
		t.Date.Format("2006-01-02"),
		t.Amount,
		t.Description,
		t.Direction)
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}

// SignedAmount returns the amount with its direction applied: negative for
// expenses, positive for income.
func (t *Transaction) SignedAmount() float64 {
	if t.Direction == DirectionExpense {
		return -t.Amount
	}
	return t.Amount
}
