// Package report renders analyzer result structures for the CLI, as
// indented JSON or aligned plain text.
package report

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"fjacquet/finlytics/internal/logging"
	"fjacquet/finlytics/internal/models"
)

// Supported output formats.
const (
	FormatJSON = "json"
	FormatText = "text"
)

// Generator renders result structures in the requested format.
type Generator struct {
	logger logging.Logger
}

// NewGenerator creates a Generator. A nil logger discards diagnostics.
func NewGenerator(logger logging.Logger) *Generator {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Generator{logger: logger}
}

// Generate renders any result structure. JSON works for every type; text
// rendering is implemented per result type and falls back to JSON for
// anything unknown.
func (g *Generator) Generate(result interface{}, format string) ([]byte, error) {
	switch format {
	case FormatJSON:
		return g.generateJSON(result)
	case FormatText:
		return []byte(g.generateText(result)), nil
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}

func (g *Generator) generateJSON(result interface{}) ([]byte, error) {
	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal JSON report")
		return nil, fmt.Errorf("failed to marshal JSON report: %w", err)
	}
	return out, nil
}

func (g *Generator) generateText(result interface{}) string {
	switch v := result.(type) {
	case models.PeriodSummary:
		return renderSummary(v)
	case *models.PeriodSummary:
		return renderSummary(*v)
	case []models.CategoryTrend:
		return renderTrends(v)
	case []models.RecurringPattern:
		return renderRecurring(v)
	case []models.Anomaly:
		return renderAnomalies(v)
	case models.CashFlowForecast:
		return renderForecast(v)
	case *models.CashFlowForecast:
		return renderForecast(*v)
	case models.InvestmentPerformanceData:
		return renderInvestments(v)
	case *models.InvestmentPerformanceData:
		return renderInvestments(*v)
	case models.ComprehensiveTaxData:
		return renderTax(v)
	case *models.ComprehensiveTaxData:
		return renderTax(*v)
	case []models.Insight:
		return renderInsights(v)
	case []models.Transaction:
		return renderTransactions(v)
	default:
		out, err := g.generateJSON(result)
		if err != nil {
			return fmt.Sprintf("%+v\n", result)
		}
		return string(out) + "\n"
	}
}

func renderSummary(s models.PeriodSummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Period: %s\n", s.Label)
	fmt.Fprintf(&b, "  Income:       %12s\n", s.Income.StringFixed(2))
	fmt.Fprintf(&b, "  Expense:      %12s\n", s.Expense.StringFixed(2))
	fmt.Fprintf(&b, "  Savings:      %12s (%.1f%%)\n", s.Savings.StringFixed(2), s.SavingsRate)
	fmt.Fprintf(&b, "  Transfers:    %12s\n", s.Transfers.StringFixed(2))
	fmt.Fprintf(&b, "  Transactions: %12d\n", s.TransactionCount)

	if len(s.Categories) > 0 {
		names := make([]string, 0, len(s.Categories))
		for name := range s.Categories {
			names = append(names, name)
		}
		sort.Strings(names)

		b.WriteString("  Categories:\n")
		for _, name := range names {
			bd := s.Categories[name]
			fmt.Fprintf(&b, "    %-24s income %12s  expense %12s\n",
				name, bd.Income.StringFixed(2), bd.Expense.StringFixed(2))
		}
	}
	return b.String()
}

func renderTrends(trends []models.CategoryTrend) string {
	if len(trends) == 0 {
		return "No category trends (need expense activity in at least one month).\n"
	}
	var b strings.Builder
	b.WriteString("Category trends (by total spend):\n")
	for _, t := range trends {
		fmt.Fprintf(&b, "  %-24s total %12s  avg/month %12s  months %2d  %-10s %+.1f%%\n",
			t.Category, t.Total.StringFixed(2), t.MonthlyAverage.StringFixed(2),
			t.MonthCount, t.Direction, t.TrendPercent)
	}
	return b.String()
}

func renderRecurring(patterns []models.RecurringPattern) string {
	if len(patterns) == 0 {
		return "No recurring expense patterns detected.\n"
	}
	var b strings.Builder
	b.WriteString("Recurring expense patterns:\n")
	for _, p := range patterns {
		fmt.Fprintf(&b, "  %-28s %-10s every %5.1f days  avg %10s  seen %dx  next ~%s\n",
			p.Description, p.Frequency, p.IntervalDays,
			p.AverageAmount.StringFixed(2), p.OccurrenceCount,
			p.NextExpectedDate.Format(models.DateKeyLayout))
	}
	return b.String()
}

func renderAnomalies(anomalies []models.Anomaly) string {
	if len(anomalies) == 0 {
		return "No anomalous transactions detected.\n"
	}
	var b strings.Builder
	b.WriteString("Anomalous transactions:\n")
	for _, a := range anomalies {
		fmt.Fprintf(&b, "  [%-6s] %s  %12s  %.1f std devs above mean  %s\n",
			a.Severity, a.Transaction.DateKey, a.Transaction.Amount.StringFixed(2),
			a.Deviations, a.Transaction.Description)
	}
	return b.String()
}

func renderForecast(f models.CashFlowForecast) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Cash flow forecast (%d days, based on %d observed days):\n", f.HorizonDays, f.SpanDays)
	fmt.Fprintf(&b, "  Daily income:     %12s\n", f.DailyIncome.StringFixed(2))
	fmt.Fprintf(&b, "  Daily expense:    %12s\n", f.DailyExpense.StringFixed(2))
	fmt.Fprintf(&b, "  Net daily:        %12s\n", f.NetDaily.StringFixed(2))
	fmt.Fprintf(&b, "  Projected change: %12s\n", f.TotalProjected.StringFixed(2))
	fmt.Fprintf(&b, "  Balance:          %12s -> %s\n", f.CurrentBalance.StringFixed(2), f.ForecastedBalance.StringFixed(2))
	fmt.Fprintf(&b, "  Status:           %s\n", f.Status)
	if f.DaysUntilZero != models.NoDepletion {
		fmt.Fprintf(&b, "  Days until zero:  %.0f\n", f.DaysUntilZero)
	}
	return b.String()
}

func renderInvestments(inv models.InvestmentPerformanceData) string {
	var b strings.Builder
	b.WriteString("Investment performance:\n")
	fmt.Fprintf(&b, "  Capital deployed: %12s\n", inv.TotalCapitalDeployed.StringFixed(2))
	fmt.Fprintf(&b, "  Withdrawals:      %12s\n", inv.TotalWithdrawals.StringFixed(2))
	fmt.Fprintf(&b, "  Holdings:         %12s\n", inv.CurrentHoldings.StringFixed(2))
	fmt.Fprintf(&b, "  RSU holdings:     %12s\n", inv.RSUHoldings.StringFixed(2))
	fmt.Fprintf(&b, "  Realized P/L:     %12s / %s\n", inv.RealizedProfits.StringFixed(2), inv.RealizedLosses.StringFixed(2))
	fmt.Fprintf(&b, "  Dividends:        %12s\n", inv.Dividends.StringFixed(2))
	fmt.Fprintf(&b, "  Interest:         %12s\n", inv.Interest.StringFixed(2))
	fmt.Fprintf(&b, "  Brokerage fees:   %12s\n", inv.BrokerageFees.StringFixed(2))
	fmt.Fprintf(&b, "  Net P/L:          %12s (%.2f%% return)\n", inv.NetProfitLoss.StringFixed(2), inv.ReturnPercentage)

	if len(inv.Platforms) > 0 {
		b.WriteString("  Platforms:\n")
		for _, p := range inv.Platforms {
			fmt.Fprintf(&b, "    %-20s capital %12s  holdings %12s  P/L %s/%s\n",
				p.Platform, p.CapitalDeployed.StringFixed(2), p.Holdings.StringFixed(2),
				p.RealizedProfits.StringFixed(2), p.RealizedLosses.StringFixed(2))
		}
	}
	return b.String()
}

func renderTax(data models.ComprehensiveTaxData) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Tax position (%s, %s regime):\n", data.FiscalYear, data.Regime)
	fmt.Fprintf(&b, "  Salary:             %12s\n", data.Salary.StringFixed(2))
	fmt.Fprintf(&b, "  Bonus:              %12s\n", data.Bonus.StringFixed(2))
	fmt.Fprintf(&b, "  RSU gross/net:      %12s / %s\n", data.RSUGross.StringFixed(2), data.RSUNet.StringFixed(2))
	fmt.Fprintf(&b, "  Other income:       %12s\n", data.OtherIncome.StringFixed(2))
	fmt.Fprintf(&b, "  Gross income:       %12s\n", data.GrossIncome.StringFixed(2))
	fmt.Fprintf(&b, "  Standard deduction: %12s\n", data.StandardDeduction.StringFixed(2))
	fmt.Fprintf(&b, "  Taxable income:     %12s\n", data.TaxableIncome.StringFixed(2))
	fmt.Fprintf(&b, "  Estimated tax:      %12s\n", data.EstimatedTax.StringFixed(2))
	fmt.Fprintf(&b, "  Cess:               %12s\n", data.Cess.StringFixed(2))
	fmt.Fprintf(&b, "  Total liability:    %12s\n", data.TotalTaxLiability.StringFixed(2))

	if len(data.Deductions) > 0 {
		b.WriteString("  Deductions:\n")
		for _, d := range data.Deductions {
			fmt.Fprintf(&b, "    %-8s used %12s of %12s (remaining %s)\n",
				d.Name, d.Amount.StringFixed(2), d.Limit.StringFixed(2), d.Remaining.StringFixed(2))
		}
	}
	if data.Projection != nil {
		p := data.Projection
		b.WriteString("  Year-end projection:\n")
		fmt.Fprintf(&b, "    Trailing monthly salary: %12s\n", p.TrailingMonthlySalary.StringFixed(2))
		fmt.Fprintf(&b, "    Months remaining:        %12d\n", p.MonthsRemaining)
		fmt.Fprintf(&b, "    Projected annual income: %12s\n", p.ProjectedAnnualIncome.StringFixed(2))
		fmt.Fprintf(&b, "    Projected total tax:     %12s\n", p.ProjectedTotalTax.StringFixed(2))
		fmt.Fprintf(&b, "    Additional liability:    %12s\n", p.AdditionalTaxLiability.StringFixed(2))
	}
	for _, r := range data.Recommendations {
		fmt.Fprintf(&b, "  [%-6s] %s -> %s\n", r.Priority, r.Message, r.Action)
	}
	return b.String()
}

func renderTransactions(txns []models.Transaction) string {
	if len(txns) == 0 {
		return "No transactions.\n"
	}
	var b strings.Builder
	b.WriteString("Transactions:\n")
	for _, txn := range txns {
		fmt.Fprintf(&b, "  %s  %12s  %-24s %s\n",
			txn.DateKey, txn.Amount.StringFixed(2), txn.Category, txn.Description)
	}
	return b.String()
}

func renderInsights(insights []models.Insight) string {
	if len(insights) == 0 {
		return "No insights for this period.\n"
	}
	var b strings.Builder
	b.WriteString("Insights:\n")
	for _, ins := range insights {
		fmt.Fprintf(&b, "  [%-10s] %s\n", ins.Topic, ins.Message)
	}
	return b.String()
}
