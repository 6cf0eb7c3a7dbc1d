package model

import (
	"crypto/sha256"
	"fmt"
	"time"
)

// TransactionType distinguishes money leaving the account from money
// arriving in it.
type TransactionType string

const (
	// TypeExpense marks an outgoing transaction. Amounts are negative.
	TypeExpense TransactionType = "expense"
	// TypeIncome marks an incoming transaction. Amounts are positive.
	TypeIncome TransactionType = "income"
)

// Transaction represents a single financial transaction from any source.
// The behavior engine treats transactions as read-only input.
type Transaction struct {
	Date        time.Time
	ID          string
	Description string // Raw transaction description
	CategoryID  string
	AccountID   string
	Hash        string
	Type        TransactionType
	Amount      float64 // Negative for expenses, positive for income
}

// IsExpense reports whether the transaction represents outgoing money.
func (t *Transaction) IsExpense() bool {
	return t.Type == TypeExpense || (t.Type == "" && t.Amount < 0)
}

// IsIncome reports whether the transaction represents incoming money.
func (t *Transaction) IsIncome() bool {
	return t.Type == TypeIncome || (t.Type == "" && t.Amount > 0)
}

// AbsAmount returns the magnitude of the transaction amount.
func (t *Transaction) AbsAmount() float64 {
	if t.Amount < 0 {
		return -t.Amount
	}
	return t.Amount
}

// Validate checks the structural integrity of a transaction. A zero date
// is the one malformed shape the detectors refuse to skip silently, since
// dropping records would corrupt confidence math without any signal to
// the caller.
func (t *Transaction) Validate() error {
	if t.Date.IsZero() {
		return fmt.Errorf("transaction %q: missing date", t.ID)
	}
	return nil
}

// GenerateHash creates a unique hash for duplicate detection.
func (t *Transaction) GenerateHash() string {
	data := fmt.Sprintf("%s:%.2f:%s:%s",
		t.Date.Format("2006-01-02"),
		t.Amount,
		t.Description,
		t.AccountID)
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}
