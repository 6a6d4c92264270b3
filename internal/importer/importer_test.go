package importer

import (
	"os"
	"path/filepath"
	"testing"

	"fjacquet/finlytics/internal/enginerrors"
	"fjacquet/finlytics/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func writeFixture(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "transactions.csv")
	assert.NoError(t, os.WriteFile(path, []byte(contents), 0600))
	return path
}

func TestImportTransactions(t *testing.T) {
	path := writeFixture(t,
		"Date,Amount,Type,Category,Subcategory,Description,Note,Account\n"+
			"2024-01-05,1200.50,expense,Housing,Rent,January rent,,Checking\n"+
			"2024-01-10,5000,income,Salary,,Monthly salary,,Checking\n")

	txns, diags, err := ImportTransactions(path, nil)

	assert.NoError(t, err)
	assert.Empty(t, diags)
	if assert.Len(t, txns, 2) {
		assert.Equal(t, "2024-01-05", txns[0].DateKey)
		assert.True(t, txns[0].Amount.Equal(decimal.NewFromFloat(1200.50)))
		assert.Equal(t, models.TypeExpense, txns[0].Type)
		assert.Equal(t, "Housing", txns[0].Category)
		assert.Equal(t, models.TypeIncome, txns[1].Type)
	}
}

func TestImportTransactions_DefaultsMalformedRecords(t *testing.T) {
	path := writeFixture(t,
		"Date,Amount,Type,Category,Subcategory,Description,Note,Account\n"+
			"2024-01-05,not-a-number,expense,,,Mystery charge,,\n")

	txns, diags, err := ImportTransactions(path, nil)

	assert.NoError(t, err)
	if assert.Len(t, txns, 1) {
		assert.True(t, txns[0].Amount.IsZero())
		assert.Equal(t, "Uncategorized", txns[0].Category)
	}
	// The category default is silent; only the amount produces a diagnostic.
	if assert.Len(t, diags, 1) {
		var recErr *enginerrors.RecordError
		assert.ErrorAs(t, diags[0], &recErr)
		assert.Equal(t, "amount", recErr.Field)
	}
}

func TestImportTransactions_MissingFile(t *testing.T) {
	_, _, err := ImportTransactions(filepath.Join(t.TempDir(), "absent.csv"), nil)
	assert.Error(t, err)
}

func TestExportTransactions_RoundTrip(t *testing.T) {
	txns := []models.Transaction{
		{
			DateKey:     "2024-02-01",
			Amount:      decimal.NewFromFloat(499),
			Type:        models.TypeExpense,
			Category:    "Entertainment",
			Subcategory: "Streaming",
			Description: "Netflix",
			Account:     "Credit Card",
		},
		{
			DateKey:     "2024-02-03",
			Amount:      decimal.NewFromInt(5000),
			Type:        models.TypeIncome,
			Category:    "Salary",
			Description: "Monthly salary",
			Account:     "Checking",
		},
	}
	path := filepath.Join(t.TempDir(), "out", "export.csv")

	assert.NoError(t, ExportTransactions(txns, path, nil))

	reread, diags, err := ImportTransactions(path, nil)
	assert.NoError(t, err)
	assert.Empty(t, diags)
	if assert.Len(t, reread, 2) {
		assert.Equal(t, txns[0].DateKey, reread[0].DateKey)
		assert.True(t, reread[0].Amount.Equal(txns[0].Amount))
		assert.Equal(t, txns[0].Type, reread[0].Type)
		assert.Equal(t, txns[1].Description, reread[1].Description)
	}
}

func TestExportTransactions_NilInput(t *testing.T) {
	err := ExportTransactions(nil, filepath.Join(t.TempDir(), "x.csv"), nil)
	assert.Error(t, err)
}
