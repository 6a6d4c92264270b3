package normalize

import (
	"testing"

	"fjacquet/finlytics/internal/enginerrors"
	"fjacquet/finlytics/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNormalize_CompleteRecord(t *testing.T) {
	n := New(nil)

	txns, diags := n.Normalize([]RawTransaction{{
		Date:        "2024-01-15",
		Amount:      "1250.50",
		Type:        "Expense",
		Category:    "Food",
		Description: "Grocery run",
		Account:     "Checking",
	}})

	assert.Empty(t, diags)
	if assert.Len(t, txns, 1) {
		txn := txns[0]
		assert.Equal(t, "2024-01-15", txn.DateKey)
		assert.True(t, txn.Amount.Equal(decimal.NewFromFloat(1250.50)))
		assert.Equal(t, models.TypeExpense, txn.Type)
		assert.Equal(t, "Food", txn.Category)
		assert.Equal(t, "Checking", txn.Account)
	}
}

func TestNormalize_MissingCategoryDefaults(t *testing.T) {
	n := New(nil)

	txns, diags := n.Normalize([]RawTransaction{{
		Date: "2024-01-15", Amount: "10", Type: "Expense",
	}})

	assert.Empty(t, diags)
	assert.Equal(t, DefaultCategory, txns[0].Category)
}

func TestNormalize_BadAmountDefaultsToZero(t *testing.T) {
	n := New(nil)

	txns, diags := n.Normalize([]RawTransaction{{
		Date: "2024-01-15", Amount: "not-a-number", Type: "Expense", Category: "Food",
	}})

	assert.Len(t, diags, 1)
	assert.True(t, txns[0].Amount.IsZero())

	var recErr *enginerrors.RecordError
	assert.ErrorAs(t, diags[0], &recErr)
	assert.Equal(t, "amount", recErr.Field)
	assert.Equal(t, 0, recErr.Index)
}

func TestNormalize_BadDateExcludedFromRangeFilters(t *testing.T) {
	n := New(nil)

	txns, diags := n.Normalize([]RawTransaction{{
		Date: "someday", Amount: "10", Type: "Expense", Category: "Food",
	}})

	assert.Len(t, diags, 1)
	assert.False(t, txns[0].HasDate())
	assert.False(t, txns[0].InDateRange("0000-01-01", "9999-12-31"))
}

func TestNormalize_SignedAmountFoldedToMagnitude(t *testing.T) {
	n := New(nil)

	txns, diags := n.Normalize([]RawTransaction{{
		Date: "2024-01-15", Amount: "-42.00", Type: "Expense", Category: "Food",
	}})

	assert.Empty(t, diags)
	assert.True(t, txns[0].Amount.Equal(decimal.NewFromInt(42)))
}

func TestNormalize_ThousandsSeparators(t *testing.T) {
	n := New(nil)

	txns, diags := n.Normalize([]RawTransaction{{
		Date: "2024-01-15", Amount: "1,250,000.25", Type: "Income", Category: "Salary",
	}})

	assert.Empty(t, diags)
	assert.True(t, txns[0].Amount.Equal(decimal.NewFromFloat(1250000.25)))
}

func TestNormalize_TypeMapping(t *testing.T) {
	tests := []struct {
		raw      string
		expected models.TransactionType
		wantDiag bool
	}{
		{"Income", models.TypeIncome, false},
		{"credit", models.TypeIncome, false},
		{"CRDT", models.TypeIncome, false},
		{"Expense", models.TypeExpense, false},
		{"debit", models.TypeExpense, false},
		{"DBIT", models.TypeExpense, false},
		{"", models.TypeExpense, false},
		{"Transfer", models.TypeTransfer, false},
		{"mystery", models.TypeExpense, true},
	}

	n := New(nil)
	for _, tt := range tests {
		txns, diags := n.Normalize([]RawTransaction{{
			Date: "2024-01-15", Amount: "10", Type: tt.raw, Category: "X",
		}})

		assert.Equal(t, tt.expected, txns[0].Type, "type %q", tt.raw)
		if tt.wantDiag {
			assert.Len(t, diags, 1, "type %q", tt.raw)
		} else {
			assert.Empty(t, diags, "type %q", tt.raw)
		}
	}
}

func TestNormalize_OneBadRecordNeverAbortsTheBatch(t *testing.T) {
	n := New(nil)

	txns, diags := n.Normalize([]RawTransaction{
		{Date: "2024-01-01", Amount: "10", Type: "Expense", Category: "A"},
		{Date: "junk", Amount: "junk", Type: "junk", Category: ""},
		{Date: "2024-01-03", Amount: "30", Type: "Income", Category: "C"},
	})

	assert.Len(t, txns, 3, "output keeps input length and order")
	assert.Len(t, diags, 3, "one diagnostic per defaulted field")
	assert.Equal(t, "A", txns[0].Category)
	assert.Equal(t, DefaultCategory, txns[1].Category)
	assert.Equal(t, "C", txns[2].Category)
}

func TestNormalize_EmptyBatch(t *testing.T) {
	txns, diags := New(nil).Normalize(nil)

	assert.Empty(t, txns)
	assert.Empty(t, diags)
}
