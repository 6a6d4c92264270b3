// Package insight turns the outputs of the other analyzers into ordered
// natural-language statements. It is a threshold-rule layer over already
// computed results: it compares and formats, it never recomputes statistics.
package insight

import (
	"fmt"
	"math"
	"sort"

	"fjacquet/finlytics/internal/enginerrors"
	"fjacquet/finlytics/internal/logging"
	"fjacquet/finlytics/internal/models"

	"github.com/shopspring/decimal"
)

// Insight topics, in emission order.
const (
	TopicIncome     = "income"
	TopicExpense    = "expense"
	TopicSavings    = "savings"
	TopicCategory   = "category"
	TopicVolume     = "volume"
	TopicRecurring  = "recurring"
	TopicAnomaly    = "anomaly"
	TopicForecast   = "forecast"
	TopicInvestment = "investment"
	TopicTax        = "tax"
)

// Default rule thresholds.
const (
	DefaultIncomeChangePercent  = 5.0
	DefaultExpenseChangePercent = 5.0
	DefaultSavingsRatePoints    = 3.0
	DefaultVolumeSwingPercent   = 15.0
)

// Config holds the rule trigger thresholds. Zero values take the defaults;
// negative values are a caller contract violation.
type Config struct {
	IncomeChangePercent  float64
	ExpenseChangePercent float64
	SavingsRatePoints    float64
	VolumeSwingPercent   float64
}

// Inputs carries the upstream analyzer outputs the generator reads. Any
// field may be nil or empty; rules that lack their input simply stay quiet.
type Inputs struct {
	Current    *models.PeriodSummary
	Previous   *models.PeriodSummary
	Trends     []models.CategoryTrend
	Recurring  []models.RecurringPattern
	Anomalies  []models.Anomaly
	Forecast   *models.CashFlowForecast
	Investment *models.InvestmentPerformanceData
	Tax        *models.ComprehensiveTaxData
}

// Generator evaluates the insight rules.
type Generator struct {
	cfg    Config
	logger logging.Logger
}

// New creates a Generator. Zero thresholds take defaults; negative ones
// return a ConfigError.
func New(cfg Config, logger logging.Logger) (*Generator, error) {
	if cfg.IncomeChangePercent < 0 {
		return nil, enginerrors.NewConfigError("insight", "income_change_percent", cfg.IncomeChangePercent, "must be non-negative")
	}
	if cfg.ExpenseChangePercent < 0 {
		return nil, enginerrors.NewConfigError("insight", "expense_change_percent", cfg.ExpenseChangePercent, "must be non-negative")
	}
	if cfg.SavingsRatePoints < 0 {
		return nil, enginerrors.NewConfigError("insight", "savings_rate_points", cfg.SavingsRatePoints, "must be non-negative")
	}
	if cfg.VolumeSwingPercent < 0 {
		return nil, enginerrors.NewConfigError("insight", "volume_swing_percent", cfg.VolumeSwingPercent, "must be non-negative")
	}
	if cfg.IncomeChangePercent == 0 {
		cfg.IncomeChangePercent = DefaultIncomeChangePercent
	}
	if cfg.ExpenseChangePercent == 0 {
		cfg.ExpenseChangePercent = DefaultExpenseChangePercent
	}
	if cfg.SavingsRatePoints == 0 {
		cfg.SavingsRatePoints = DefaultSavingsRatePoints
	}
	if cfg.VolumeSwingPercent == 0 {
		cfg.VolumeSwingPercent = DefaultVolumeSwingPercent
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &Generator{cfg: cfg, logger: logger}, nil
}

// Generate runs every rule against the inputs and returns the statements in
// a fixed topic order. Same inputs always yield the same statements.
func (g *Generator) Generate(in Inputs) []models.Insight {
	var insights []models.Insight
	add := func(topic, format string, args ...interface{}) {
		insights = append(insights, models.Insight{Topic: topic, Message: fmt.Sprintf(format, args...)})
	}

	if in.Current != nil && in.Previous != nil {
		g.comparePeriods(*in.Current, *in.Previous, add)
	}

	if name, pct, ok := steepestIncreasingTrend(in.Trends, g.cfg.ExpenseChangePercent); ok {
		add(TopicCategory, "%s spending is on an increasing trend, up %.1f%% since its first observed month", name, pct)
	}

	if len(in.Recurring) > 0 {
		top := in.Recurring[0]
		add(TopicRecurring, "%d recurring expense patterns detected; the most frequent is %s (%s, about every %.0f days)",
			len(in.Recurring), top.Description, top.Frequency, top.IntervalDays)
	}

	if len(in.Anomalies) > 0 {
		high := 0
		for _, a := range in.Anomalies {
			if a.Severity == models.SeverityHigh {
				high++
			}
		}
		if high > 0 {
			add(TopicAnomaly, "%d unusually large transactions found, %d of them high severity", len(in.Anomalies), high)
		} else {
			add(TopicAnomaly, "%d unusually large transactions found", len(in.Anomalies))
		}
	}

	if in.Forecast != nil {
		switch in.Forecast.Status {
		case models.CashFlowCritical:
			if in.Forecast.DaysUntilZero != models.NoDepletion {
				add(TopicForecast, "Cash flow is critical: at the current net daily rate the balance depletes in about %.0f days", in.Forecast.DaysUntilZero)
			} else {
				add(TopicForecast, "Cash flow is critical: daily spending far exceeds daily income")
			}
		case models.CashFlowWarning:
			add(TopicForecast, "Cash flow is negative: spending slightly exceeds income on a daily basis")
		case models.CashFlowPositive:
			add(TopicForecast, "Cash flow is strongly positive: projected surplus of %s over the next %d days",
				in.Forecast.TotalProjected.StringFixed(0), in.Forecast.HorizonDays)
		}
	}

	if in.Investment != nil && in.Investment.TotalCapitalDeployed.IsPositive() {
		if in.Investment.NetProfitLoss.IsNegative() {
			add(TopicInvestment, "Investments are down %s net (%.1f%% return on deployed capital)",
				in.Investment.NetProfitLoss.Abs().StringFixed(0), in.Investment.ReturnPercentage)
		} else {
			add(TopicInvestment, "Investments are up %s net (%.1f%% return on deployed capital)",
				in.Investment.NetProfitLoss.StringFixed(0), in.Investment.ReturnPercentage)
		}
	}

	if in.Tax != nil {
		if in.Tax.Projection != nil && in.Tax.Projection.AdditionalTaxLiability.IsPositive() {
			add(TopicTax, "Estimated additional tax of %s due by fiscal year end under the %s regime",
				in.Tax.Projection.AdditionalTaxLiability.StringFixed(0), in.Tax.Regime)
		} else if in.Tax.TotalTaxLiability.IsPositive() {
			add(TopicTax, "Total tax liability for %s is %s under the %s regime",
				in.Tax.FiscalYear, in.Tax.TotalTaxLiability.StringFixed(0), in.Tax.Regime)
		}
	}

	g.logger.Debug("insights generated", logging.Field{Key: "count", Value: len(insights)})
	return insights
}

// comparePeriods emits the period-over-period statements.
func (g *Generator) comparePeriods(cur, prev models.PeriodSummary, add func(topic, format string, args ...interface{})) {
	if pct, ok := percentChange(prev.Income, cur.Income); ok && math.Abs(pct) >= g.cfg.IncomeChangePercent {
		add(TopicIncome, "Income %s %.1f%% versus %s", rose(pct), math.Abs(pct), prev.Label)
	}
	if pct, ok := percentChange(prev.Expense, cur.Expense); ok && math.Abs(pct) >= g.cfg.ExpenseChangePercent {
		add(TopicExpense, "Spending %s %.1f%% versus %s", rose(pct), math.Abs(pct), prev.Label)
	}

	shift := cur.SavingsRate - prev.SavingsRate
	if math.Abs(shift) >= g.cfg.SavingsRatePoints {
		add(TopicSavings, "Savings rate %s %.1f points to %.1f%%", rose(shift), math.Abs(shift), cur.SavingsRate)
	}

	if name, delta, ok := biggestExpenseDelta(prev, cur); ok {
		add(TopicCategory, "Biggest category change: %s %s by %s", name, rose(deltaSign(delta)), delta.Abs().StringFixed(0))
	}
	for _, name := range appearedCategories(prev, cur) {
		add(TopicCategory, "New spending category: %s", name)
	}
	for _, name := range appearedCategories(cur, prev) {
		add(TopicCategory, "No more spending in: %s", name)
	}

	if prev.TransactionCount > 0 {
		swing := float64(cur.TransactionCount-prev.TransactionCount) / float64(prev.TransactionCount) * 100
		if math.Abs(swing) >= g.cfg.VolumeSwingPercent {
			add(TopicVolume, "Transaction volume %s %.0f%% (%d versus %d)",
				rose(swing), math.Abs(swing), cur.TransactionCount, prev.TransactionCount)
		}
	}
}

// percentChange returns (to-from)/from*100. Not ok when from is zero.
func percentChange(from, to decimal.Decimal) (float64, bool) {
	if from.IsZero() {
		return 0, false
	}
	pct, _ := to.Sub(from).Div(from).Mul(decimal.NewFromInt(100)).Float64()
	return pct, true
}

func rose(v float64) string {
	if v < 0 {
		return "fell"
	}
	return "rose"
}

func deltaSign(d decimal.Decimal) float64 {
	if d.IsNegative() {
		return -1
	}
	return 1
}

// steepestIncreasingTrend returns the increasing-direction trend with the
// largest percent change, when that change reaches the threshold. Ties keep
// the earlier (higher-ranked) trend.
func steepestIncreasingTrend(trends []models.CategoryTrend, threshold float64) (string, float64, bool) {
	best := ""
	bestPct := 0.0
	for _, t := range trends {
		if t.Direction != models.TrendIncreasing {
			continue
		}
		if t.TrendPercent > bestPct {
			best, bestPct = t.Category, t.TrendPercent
		}
	}
	if best == "" || bestPct < threshold {
		return "", 0, false
	}
	return best, bestPct, true
}

// biggestExpenseDelta finds the category with the largest absolute change in
// expense total between the two summaries. Ties resolve to the first
// category in name order.
func biggestExpenseDelta(prev, cur models.PeriodSummary) (string, decimal.Decimal, bool) {
	names := make(map[string]bool)
	for name := range prev.Categories {
		names[name] = true
	}
	for name := range cur.Categories {
		names[name] = true
	}

	sorted := make([]string, 0, len(names))
	for name := range names {
		sorted = append(sorted, name)
	}
	sort.Strings(sorted)

	best := ""
	bestDelta := decimal.Zero
	for _, name := range sorted {
		delta := cur.Categories[name].Expense.Sub(prev.Categories[name].Expense)
		if delta.Abs().GreaterThan(bestDelta.Abs()) {
			best, bestDelta = name, delta
		}
	}
	if best == "" || bestDelta.IsZero() {
		return "", decimal.Zero, false
	}
	return best, bestDelta, true
}

// appearedCategories lists categories with expense activity in b but none
// in a, in name order.
func appearedCategories(a, b models.PeriodSummary) []string {
	var names []string
	for name, bd := range b.Categories {
		if !bd.Expense.IsPositive() {
			continue
		}
		if !a.Categories[name].Expense.IsPositive() {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
