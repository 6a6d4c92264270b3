// Package period aggregates transactions over an explicit date range into a
// PeriodSummary. Range bounds are inclusive YYYY-MM-DD keys compared as
// strings, so a transaction is never shifted across a day boundary by
// timezone arithmetic.
package period

import (
	"sort"

	"fjacquet/finlytics/internal/models"

	"github.com/shopspring/decimal"
)

// Options controls optional aggregation behavior.
type Options struct {
	// Label names the summary, e.g. "January 2024". Defaults to "start..end".
	Label string
	// IncludeTransferCategories adds Transfer transactions to the category
	// map (as expense-side entries). Transfers never count toward income or
	// expense totals either way.
	IncludeTransferCategories bool
}

// Summarize builds a PeriodSummary over the inclusive [start, end] range of
// YYYY-MM-DD keys. An empty range yields an all-zero summary with
// SavingsRate 0.
func Summarize(txns []models.Transaction, start, end string) models.PeriodSummary {
	return SummarizeWithOptions(txns, start, end, Options{})
}

// SummarizeWithOptions is Summarize with explicit Options.
func SummarizeWithOptions(txns []models.Transaction, start, end string, opts Options) models.PeriodSummary {
	label := opts.Label
	if label == "" {
		label = start + ".." + end
	}

	summary := models.PeriodSummary{
		Label:      label,
		Income:     decimal.Zero,
		Expense:    decimal.Zero,
		Savings:    decimal.Zero,
		Transfers:  decimal.Zero,
		Categories: make(map[string]models.CategoryBreakdown),
	}

	for _, txn := range txns {
		if !txn.InDateRange(start, end) {
			continue
		}
		summary.TransactionCount++

		switch txn.Type {
		case models.TypeIncome:
			summary.Income = summary.Income.Add(txn.Amount)
			bd := summary.Categories[txn.Category]
			bd.Income = bd.Income.Add(txn.Amount)
			summary.Categories[txn.Category] = bd
		case models.TypeExpense:
			summary.Expense = summary.Expense.Add(txn.Amount)
			bd := summary.Categories[txn.Category]
			bd.Expense = bd.Expense.Add(txn.Amount)
			summary.Categories[txn.Category] = bd
		case models.TypeTransfer:
			summary.Transfers = summary.Transfers.Add(txn.Amount)
			if opts.IncludeTransferCategories {
				bd := summary.Categories[txn.Category]
				bd.Expense = bd.Expense.Add(txn.Amount)
				summary.Categories[txn.Category] = bd
			}
		}
	}

	summary.Savings = summary.Income.Sub(summary.Expense)
	if summary.Income.IsPositive() {
		rate, _ := summary.Savings.Div(summary.Income).Mul(decimal.NewFromInt(100)).Float64()
		summary.SavingsRate = rate
	}
	return summary
}

// TopExpenses returns the n largest expense transactions in the range,
// sorted by amount descending. Ties keep original input order.
func TopExpenses(txns []models.Transaction, start, end string, n int) []models.Transaction {
	if n <= 0 {
		n = 10
	}

	var expenses []models.Transaction
	for _, txn := range txns {
		if txn.IsExpense() && txn.InDateRange(start, end) {
			expenses = append(expenses, txn)
		}
	}

	sort.SliceStable(expenses, func(i, j int) bool {
		return expenses[i].Amount.GreaterThan(expenses[j].Amount)
	})

	if len(expenses) > n {
		expenses = expenses[:n]
	}
	return expenses
}
