// Package summary handles the period summary command
package summary

import (
	"fjacquet/finlytics/cmd/root"
	"fjacquet/finlytics/internal/period"

	"github.com/spf13/cobra"
)

var topN int

// Cmd represents the summary command
var Cmd = &cobra.Command{
	Use:   "summary",
	Short: "Summarize income, expense and savings over a date range",
	Long: `Summarize aggregates transactions over the --from/--to range into
income, expense, savings, savings rate and per-category totals, and lists
the largest expenses of the range.`,
	Run: summaryFunc,
}

func init() {
	Cmd.Flags().IntVar(&topN, "top", 0, "Also list the N largest expenses of the range")
}

func summaryFunc(cmd *cobra.Command, args []string) {
	txns, err := root.LoadTransactions()
	if err != nil {
		root.Log.Fatalf("Error loading transactions: %v", err)
	}

	start, end := root.DateRange(txns)
	summary := period.Summarize(txns, start, end)
	root.Render(summary)

	if topN > 0 {
		root.Render(period.TopExpenses(txns, start, end, topN))
	}
}
