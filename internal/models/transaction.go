// Package models provides the data structures used throughout the application.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies the direction of a transaction.
type TransactionType string

const (
	TypeIncome   TransactionType = "Income"
	TypeExpense  TransactionType = "Expense"
	TypeTransfer TransactionType = "Transfer"
)

// Date key layouts used for range filtering and month bucketing.
// Range checks compare YYYY-MM-DD keys lexically so that no timezone
// conversion can shift a transaction across a day boundary.
const (
	DateKeyLayout  = "2006-01-02"
	MonthKeyLayout = "2006-01"
)

// Transaction is a fully normalized, immutable financial record.
// Amount is always a non-negative magnitude; the sign of a flow is derived
// from Type. Instances are produced by the normalize package and never
// mutated afterwards.
type Transaction struct {
	Date        time.Time       `json:"date" yaml:"date"`
	DateKey     string          `json:"date_key" yaml:"date_key"` // YYYY-MM-DD, empty when the source date was unparseable
	Amount      decimal.Decimal `json:"amount" yaml:"amount"`
	Type        TransactionType `json:"type" yaml:"type"`
	Category    string          `json:"category" yaml:"category"`
	Subcategory string          `json:"subcategory,omitempty" yaml:"subcategory,omitempty"`
	Description string          `json:"description,omitempty" yaml:"description,omitempty"`
	Note        string          `json:"note,omitempty" yaml:"note,omitempty"`
	Account     string          `json:"account,omitempty" yaml:"account,omitempty"`
}

// IsIncome returns true if the transaction is an income flow.
func (t Transaction) IsIncome() bool {
	return t.Type == TypeIncome
}

// IsExpense returns true if the transaction is an expense flow.
func (t Transaction) IsExpense() bool {
	return t.Type == TypeExpense
}

// IsTransfer returns true if the transaction moves money between own accounts.
func (t Transaction) IsTransfer() bool {
	return t.Type == TypeTransfer
}

// HasDate reports whether the transaction carries a usable calendar date.
// Records with unparseable dates keep an empty DateKey and are excluded
// from every date-range filter.
func (t Transaction) HasDate() bool {
	return t.DateKey != ""
}

// MonthKey returns the YYYY-MM bucket key for the transaction date,
// or an empty string when the date is unusable.
func (t Transaction) MonthKey() string {
	if !t.HasDate() {
		return ""
	}
	return t.Date.Format(MonthKeyLayout)
}

// InDateRange reports whether the transaction date key falls inside the
// inclusive [start, end] range of YYYY-MM-DD keys.
func (t Transaction) InDateRange(start, end string) bool {
	if !t.HasDate() {
		return false
	}
	return t.DateKey >= start && t.DateKey <= end
}
