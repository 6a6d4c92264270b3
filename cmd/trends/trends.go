// Package trends handles the category trend command
package trends

import (
	"fjacquet/finlytics/cmd/root"
	"fjacquet/finlytics/internal/trends"

	"github.com/spf13/cobra"
)

var topN int

// Cmd represents the trends command
var Cmd = &cobra.Command{
	Use:   "trends",
	Short: "Analyze per-category monthly spending trends",
	Long: `Trends buckets expense amounts by category and calendar month,
classifies each category as increasing, decreasing or stable, and ranks
the categories by total spend.`,
	Run: trendsFunc,
}

func init() {
	Cmd.Flags().IntVar(&topN, "top", 0, "Number of categories to report (default from configuration)")
}

func trendsFunc(cmd *cobra.Command, args []string) {
	txns, err := root.LoadTransactions()
	if err != nil {
		root.Log.Fatalf("Error loading transactions: %v", err)
	}

	n := topN
	if n == 0 && root.AppConfig != nil {
		n = root.AppConfig.Analysis.TopN
	}
	root.Render(trends.Analyze(txns, n))
}
