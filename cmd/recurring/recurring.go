// Package recurring handles the recurring pattern command
package recurring

import (
	"fjacquet/finlytics/cmd/root"
	"fjacquet/finlytics/internal/recurring"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var tolerance float64

// Cmd represents the recurring command
var Cmd = &cobra.Command{
	Use:   "recurring",
	Short: "Detect recurring expense patterns",
	Long: `Recurring groups expense transactions by description and amount
bucket, and reports the groups that repeat: their average amount, interval,
frequency label and next expected date.`,
	Run: recurringFunc,
}

func init() {
	Cmd.Flags().Float64Var(&tolerance, "tolerance", 0, "Amount bucket size for grouping (default from configuration)")
}

func recurringFunc(cmd *cobra.Command, args []string) {
	txns, err := root.LoadTransactions()
	if err != nil {
		root.Log.Fatalf("Error loading transactions: %v", err)
	}

	tol := tolerance
	if tol == 0 && root.AppConfig != nil {
		tol = root.AppConfig.Analysis.RecurringBucket
	}

	patterns, err := recurring.Detect(txns, recurring.Config{Tolerance: decimal.NewFromFloat(tol)})
	if err != nil {
		root.Log.Fatalf("Error detecting recurring patterns: %v", err)
	}
	root.Render(patterns)
}
