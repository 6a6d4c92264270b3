// Package forecast handles the cash flow forecast command
package forecast

import (
	"fjacquet/finlytics/cmd/root"
	"fjacquet/finlytics/internal/forecast"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	balance float64
	horizon int
)

// Cmd represents the forecast command
var Cmd = &cobra.Command{
	Use:   "forecast",
	Short: "Project cash flow over a horizon",
	Long: `Forecast derives the average daily income and expense from the
observed transaction span and projects the balance linearly over the
forecast horizon.`,
	Run: forecastFunc,
}

func init() {
	Cmd.Flags().Float64VarP(&balance, "balance", "b", 0, "Current balance to project from")
	Cmd.Flags().IntVar(&horizon, "horizon", 0, "Forecast horizon in days (default from configuration)")
}

func forecastFunc(cmd *cobra.Command, args []string) {
	txns, err := root.LoadTransactions()
	if err != nil {
		root.Log.Fatalf("Error loading transactions: %v", err)
	}

	cfg := forecast.Config{HorizonDays: horizon}
	if horizon == 0 && root.AppConfig != nil {
		cfg.HorizonDays = root.AppConfig.Analysis.ForecastHorizon
	}
	if root.AppConfig != nil {
		cfg.PositiveAbove = decimal.NewFromFloat(root.AppConfig.Analysis.PositiveAbove)
		cfg.CriticalBelow = decimal.NewFromFloat(root.AppConfig.Analysis.CriticalBelow)
	}

	result, err := forecast.Project(txns, decimal.NewFromFloat(balance), cfg)
	if err != nil {
		root.Log.Fatalf("Error projecting cash flow: %v", err)
	}
	root.Render(result)
}
