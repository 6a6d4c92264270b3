// Package insights handles the insight generation command
package insights

import (
	"time"

	"fjacquet/finlytics/cmd/root"
	"fjacquet/finlytics/internal/anomaly"
	"fjacquet/finlytics/internal/dateutils"
	"fjacquet/finlytics/internal/forecast"
	"fjacquet/finlytics/internal/insight"
	"fjacquet/finlytics/internal/investment"
	"fjacquet/finlytics/internal/models"
	"fjacquet/finlytics/internal/period"
	"fjacquet/finlytics/internal/recurring"
	"fjacquet/finlytics/internal/tax"
	"fjacquet/finlytics/internal/trends"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	month   string
	balance float64
)

// Cmd represents the insights command
var Cmd = &cobra.Command{
	Use:   "insights",
	Short: "Generate natural-language insights for a month",
	Long: `Insights runs every analyzer, compares the selected month against
the previous one, and emits ordered natural-language statements about
income, spending, savings, categories, anomalies and forecasts.`,
	Run: insightsFunc,
}

func init() {
	Cmd.Flags().StringVarP(&month, "month", "m", "", "Month to analyze (YYYY-MM, default latest with data)")
	Cmd.Flags().Float64VarP(&balance, "balance", "b", 0, "Current balance for the cash flow forecast")
}

func insightsFunc(cmd *cobra.Command, args []string) {
	txns, err := root.LoadTransactions()
	if err != nil {
		root.Log.Fatalf("Error loading transactions: %v", err)
	}

	cur := month
	if cur == "" {
		cur = latestMonth(txns)
	}
	if cur == "" {
		root.Render([]models.Insight{})
		return
	}

	curStart, curEnd, prevStart, prevEnd, prevKey := monthBounds(cur)

	current := period.SummarizeWithOptions(txns, curStart, curEnd, period.Options{Label: cur})
	previous := period.SummarizeWithOptions(txns, prevStart, prevEnd, period.Options{Label: prevKey})

	cfg := insight.Config{}
	th := 0.0
	recTol := 0.0
	fcCfg := forecast.Config{}
	taxCfg := tax.DefaultConfig()
	if root.AppConfig != nil {
		cfg = insight.Config{
			IncomeChangePercent:  root.AppConfig.Analysis.InsightIncomePct,
			ExpenseChangePercent: root.AppConfig.Analysis.InsightExpensePct,
			SavingsRatePoints:    root.AppConfig.Analysis.InsightSavingsPts,
			VolumeSwingPercent:   root.AppConfig.Analysis.InsightVolumePct,
		}
		th = root.AppConfig.Analysis.AnomalyThreshold
		recTol = root.AppConfig.Analysis.RecurringBucket
		fcCfg = forecast.Config{
			HorizonDays:   root.AppConfig.Analysis.ForecastHorizon,
			PositiveAbove: decimal.NewFromFloat(root.AppConfig.Analysis.PositiveAbove),
			CriticalBelow: decimal.NewFromFloat(root.AppConfig.Analysis.CriticalBelow),
		}
		taxCfg = root.AppConfig.TaxConfig()
	}

	topN := 0
	if root.AppConfig != nil {
		topN = root.AppConfig.Analysis.TopN
	}
	categoryTrends := trends.Analyze(txns, topN)

	patterns, err := recurring.Detect(txns, recurring.Config{Tolerance: decimal.NewFromFloat(recTol)})
	if err != nil {
		root.Log.Fatalf("Error detecting recurring patterns: %v", err)
	}
	anomalies, err := anomaly.Detect(txns, th)
	if err != nil {
		root.Log.Fatalf("Error detecting anomalies: %v", err)
	}
	cashFlow, err := forecast.Project(txns, decimal.NewFromFloat(balance), fcCfg)
	if err != nil {
		root.Log.Fatalf("Error projecting cash flow: %v", err)
	}

	invest := investment.New(nil, nil, root.EngineLogger()).Calculate(txns)

	taxCalc, err := tax.New(taxCfg, root.EngineLogger())
	if err != nil {
		root.Log.Fatalf("Invalid tax configuration: %v", err)
	}
	taxData, err := taxCalc.Compute(txns, tax.ScopeOverall, &invest)
	if err != nil {
		root.Log.Fatalf("Error computing tax position: %v", err)
	}

	gen, err := insight.New(cfg, root.EngineLogger())
	if err != nil {
		root.Log.Fatalf("Invalid insight configuration: %v", err)
	}
	root.Render(gen.Generate(insight.Inputs{
		Current:    &current,
		Previous:   &previous,
		Trends:     categoryTrends,
		Recurring:  patterns,
		Anomalies:  anomalies,
		Forecast:   &cashFlow,
		Investment: &invest,
		Tax:        &taxData,
	}))
}

// latestMonth returns the most recent YYYY-MM key with dated transactions.
func latestMonth(txns []models.Transaction) string {
	latest := ""
	for _, txn := range txns {
		if key := txn.MonthKey(); key > latest {
			latest = key
		}
	}
	return latest
}

// monthBounds returns the inclusive date key ranges of a month and the
// month before it.
func monthBounds(monthKey string) (curStart, curEnd, prevStart, prevEnd, prevKey string) {
	first, err := time.Parse(models.MonthKeyLayout, monthKey)
	if err != nil {
		return monthKey + "-01", monthKey + "-31", "", "", ""
	}
	prev := first.AddDate(0, -1, 0)

	curStart = dateutils.DateKey(dateutils.StartOfMonth(first))
	curEnd = dateutils.DateKey(dateutils.EndOfMonth(first))
	prevStart = dateutils.DateKey(dateutils.StartOfMonth(prev))
	prevEnd = dateutils.DateKey(dateutils.EndOfMonth(prev))
	prevKey = dateutils.MonthKey(prev)
	return curStart, curEnd, prevStart, prevEnd, prevKey
}
