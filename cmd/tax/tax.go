// Package tax handles the tax planning command
package tax

import (
	"fjacquet/finlytics/cmd/root"
	"fjacquet/finlytics/internal/investment"
	"fjacquet/finlytics/internal/tax"

	"github.com/spf13/cobra"
)

var (
	fiscalYear string
	regime     string
)

// Cmd represents the tax command
var Cmd = &cobra.Command{
	Use:   "tax",
	Short: "Compute the tax position for a fiscal year",
	Long: `Tax decomposes income into salary, bonus, RSU and other components,
applies the configured slab table and cess for the selected regime, tracks
deduction utilization and projects the year-end liability.`,
	Run: taxFunc,
}

func init() {
	Cmd.Flags().StringVar(&fiscalYear, "fy", tax.ScopeOverall, "Fiscal year label (e.g. FY2024-25) or 'overall'")
	Cmd.Flags().StringVar(&regime, "regime", "", "Tax regime (old or new, default from configuration)")
}

func taxFunc(cmd *cobra.Command, args []string) {
	txns, err := root.LoadTransactions()
	if err != nil {
		root.Log.Fatalf("Error loading transactions: %v", err)
	}

	cfg := tax.DefaultConfig()
	if root.AppConfig != nil {
		cfg = root.AppConfig.TaxConfig()
	}
	if regime != "" {
		cfg.Regime = regime
	}

	calc, err := tax.New(cfg, root.EngineLogger())
	if err != nil {
		root.Log.Fatalf("Invalid tax configuration: %v", err)
	}

	invest := investment.New(nil, nil, root.EngineLogger()).Calculate(txns)
	data, err := calc.Compute(txns, fiscalYear, &invest)
	if err != nil {
		root.Log.Fatalf("Error computing tax position: %v", err)
	}
	root.Render(data)
}
