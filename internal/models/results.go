package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CategoryBreakdown holds the income and expense totals of one category
// inside a period summary.
type CategoryBreakdown struct {
	Income  decimal.Decimal `json:"income" yaml:"income"`
	Expense decimal.Decimal `json:"expense" yaml:"expense"`
}

// PeriodSummary is the derived aggregate of a date range. It is rebuilt from
// the transaction collection on every query and never persisted.
type PeriodSummary struct {
	Label            string                       `json:"label" yaml:"label"`
	Income           decimal.Decimal              `json:"income" yaml:"income"`
	Expense          decimal.Decimal              `json:"expense" yaml:"expense"`
	Savings          decimal.Decimal              `json:"savings" yaml:"savings"`
	SavingsRate      float64                      `json:"savings_rate" yaml:"savings_rate"` // percent, 0 when income is 0
	Transfers        decimal.Decimal              `json:"transfers" yaml:"transfers"`
	TransactionCount int                          `json:"transaction_count" yaml:"transaction_count"`
	Categories       map[string]CategoryBreakdown `json:"categories" yaml:"categories"`
}

// Frequency labels emitted by the recurring pattern detector. Bucket bounds
// are inclusive below and exclusive above, in days.
const (
	FrequencyWeekly    = "weekly"     // interval < 10
	FrequencyBiWeekly  = "bi-weekly"  // 10 <= interval < 20
	FrequencyMonthly   = "monthly"    // 20 <= interval < 45
	FrequencyBiMonthly = "bi-monthly" // 45 <= interval < 100
	FrequencyQuarterly = "quarterly"  // interval >= 100
)

// RecurringPattern describes a cluster of similar expense transactions that
// repeat at a roughly fixed interval.
type RecurringPattern struct {
	Description      string          `json:"description" yaml:"description"`
	Category         string          `json:"category" yaml:"category"`
	AverageAmount    decimal.Decimal `json:"average_amount" yaml:"average_amount"`
	IntervalDays     float64         `json:"interval_days" yaml:"interval_days"`
	Frequency        string          `json:"frequency" yaml:"frequency"`
	OccurrenceCount  int             `json:"occurrence_count" yaml:"occurrence_count"`
	NextExpectedDate time.Time       `json:"next_expected_date" yaml:"next_expected_date"`
	// IsMonthly folds weekly, bi-weekly and monthly into a single
	// "happens at least monthly" badge. Flagged for product clarification;
	// the behavior is preserved as-is.
	IsMonthly bool `json:"is_monthly" yaml:"is_monthly"`
}

// Anomaly severity levels.
const (
	SeverityMedium = "medium"
	SeverityHigh   = "high"
)

// Anomaly is a transaction whose magnitude is a statistical outlier against
// its comparison set.
type Anomaly struct {
	Transaction Transaction `json:"transaction" yaml:"transaction"`
	Severity    string      `json:"severity" yaml:"severity"`
	// Deviations is how many standard deviations the magnitude sits above
	// the comparison-set mean.
	Deviations float64 `json:"deviations" yaml:"deviations"`
}

// Trend directions.
const (
	TrendIncreasing = "increasing"
	TrendDecreasing = "decreasing"
	TrendStable     = "stable"
)

// CategoryTrend is the per-category monthly spending trend.
type CategoryTrend struct {
	Category       string          `json:"category" yaml:"category"`
	Total          decimal.Decimal `json:"total" yaml:"total"`
	MonthlyAverage decimal.Decimal `json:"monthly_average" yaml:"monthly_average"`
	MonthCount     int             `json:"month_count" yaml:"month_count"`
	TrendPercent   float64         `json:"trend_percent" yaml:"trend_percent"`
	Direction      string          `json:"direction" yaml:"direction"`
	// Slope and RSquared come from a least-squares fit over the observed
	// monthly totals; Direction still follows the first/last month rule.
	Slope    float64 `json:"slope" yaml:"slope"`
	RSquared float64 `json:"r_squared" yaml:"r_squared"`
}

// Cash flow status classifications.
const (
	CashFlowPositive = "positive"
	CashFlowStable   = "stable"
	CashFlowWarning  = "warning"
	CashFlowCritical = "critical"
)

// NoDepletion is the DaysUntilZero sentinel for a non-negative net daily
// flow: the balance never depletes.
const NoDepletion = float64(-1)

// CashFlowForecast is a linear projection of the net daily flow over a
// forecast horizon.
type CashFlowForecast struct {
	HorizonDays       int             `json:"horizon_days" yaml:"horizon_days"`
	SpanDays          int             `json:"span_days" yaml:"span_days"`
	DailyIncome       decimal.Decimal `json:"daily_income" yaml:"daily_income"`
	DailyExpense      decimal.Decimal `json:"daily_expense" yaml:"daily_expense"`
	NetDaily          decimal.Decimal `json:"net_daily" yaml:"net_daily"`
	TotalProjected    decimal.Decimal `json:"total_projected" yaml:"total_projected"`
	CurrentBalance    decimal.Decimal `json:"current_balance" yaml:"current_balance"`
	ForecastedBalance decimal.Decimal `json:"forecasted_balance" yaml:"forecasted_balance"`
	Status            string          `json:"status" yaml:"status"`
	// DaysUntilZero is NoDepletion when the net daily flow is non-negative.
	DaysUntilZero float64 `json:"days_until_zero" yaml:"days_until_zero"`
}

// Investment transaction kinds, as inferred by keyword classification.
const (
	InvestBuy        = "buy"
	InvestSell       = "sell"
	InvestDividend   = "dividend"
	InvestInterest   = "interest"
	InvestBrokerage  = "brokerage"
	InvestProfit     = "profit"
	InvestLoss       = "loss"
	InvestWithdrawal = "withdrawal"
	InvestRSUVest    = "rsu-vest"
)

// InvestmentTransaction is an investment-tagged transaction annotated with
// its inferred kind and platform label.
type InvestmentTransaction struct {
	Transaction Transaction `json:"transaction" yaml:"transaction"`
	Kind        string      `json:"kind" yaml:"kind"`
	Platform    string      `json:"platform" yaml:"platform"`
}

// PlatformPerformance aggregates investment flows for one platform.
type PlatformPerformance struct {
	Platform        string          `json:"platform" yaml:"platform"`
	CapitalDeployed decimal.Decimal `json:"capital_deployed" yaml:"capital_deployed"`
	Holdings        decimal.Decimal `json:"holdings" yaml:"holdings"`
	RealizedProfits decimal.Decimal `json:"realized_profits" yaml:"realized_profits"`
	RealizedLosses  decimal.Decimal `json:"realized_losses" yaml:"realized_losses"`
}

// InvestmentPerformanceData is the full derived investment picture.
type InvestmentPerformanceData struct {
	TotalCapitalDeployed decimal.Decimal         `json:"total_capital_deployed" yaml:"total_capital_deployed"`
	TotalWithdrawals     decimal.Decimal         `json:"total_withdrawals" yaml:"total_withdrawals"`
	CurrentHoldings      decimal.Decimal         `json:"current_holdings" yaml:"current_holdings"`
	RSUHoldings          decimal.Decimal         `json:"rsu_holdings" yaml:"rsu_holdings"`
	RealizedProfits      decimal.Decimal         `json:"realized_profits" yaml:"realized_profits"`
	RealizedLosses       decimal.Decimal         `json:"realized_losses" yaml:"realized_losses"`
	Dividends            decimal.Decimal         `json:"dividends" yaml:"dividends"`
	Interest             decimal.Decimal         `json:"interest" yaml:"interest"`
	BrokerageFees        decimal.Decimal         `json:"brokerage_fees" yaml:"brokerage_fees"`
	NetProfitLoss        decimal.Decimal         `json:"net_profit_loss" yaml:"net_profit_loss"`
	ReturnPercentage     float64                 `json:"return_percentage" yaml:"return_percentage"`
	Transactions         []InvestmentTransaction `json:"transactions" yaml:"transactions"`
	Platforms            []PlatformPerformance   `json:"platforms" yaml:"platforms"`
}

// Tax regimes.
const (
	RegimeOld = "old"
	RegimeNew = "new"
)

// DeductionStatus tracks the utilization of one deduction type.
type DeductionStatus struct {
	Name      string          `json:"name" yaml:"name"`
	Amount    decimal.Decimal `json:"amount" yaml:"amount"`
	Limit     decimal.Decimal `json:"limit" yaml:"limit"`
	Remaining decimal.Decimal `json:"remaining" yaml:"remaining"`
}

// Recommendation priorities.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// TaxRecommendation is a threshold-rule suggestion attached to tax output.
type TaxRecommendation struct {
	Priority string `json:"priority" yaml:"priority"`
	Message  string `json:"message" yaml:"message"`
	Action   string `json:"action" yaml:"action"`
}

// YearEndProjection extrapolates the trailing salary run rate to the end of
// the fiscal year.
type YearEndProjection struct {
	TrailingMonthlySalary  decimal.Decimal `json:"trailing_monthly_salary" yaml:"trailing_monthly_salary"`
	MonthsRemaining        int             `json:"months_remaining" yaml:"months_remaining"`
	ProjectedAnnualIncome  decimal.Decimal `json:"projected_annual_income" yaml:"projected_annual_income"`
	ProjectedTotalTax      decimal.Decimal `json:"projected_total_tax" yaml:"projected_total_tax"`
	AdditionalTaxLiability decimal.Decimal `json:"additional_tax_liability" yaml:"additional_tax_liability"` // floored at 0 for display
}

// ComprehensiveTaxData decomposes income and computes the slab tax position
// for one fiscal year (or the whole collection).
type ComprehensiveTaxData struct {
	FiscalYear        string              `json:"fiscal_year" yaml:"fiscal_year"` // "overall" when unscoped
	Regime            string              `json:"regime" yaml:"regime"`
	Salary            decimal.Decimal     `json:"salary" yaml:"salary"`
	Bonus             decimal.Decimal     `json:"bonus" yaml:"bonus"`
	RSUGross          decimal.Decimal     `json:"rsu_gross" yaml:"rsu_gross"`
	RSUNet            decimal.Decimal     `json:"rsu_net" yaml:"rsu_net"`
	OtherIncome       decimal.Decimal     `json:"other_income" yaml:"other_income"`
	GrossIncome       decimal.Decimal     `json:"gross_income" yaml:"gross_income"`
	StandardDeduction decimal.Decimal     `json:"standard_deduction" yaml:"standard_deduction"`
	TaxableIncome     decimal.Decimal     `json:"taxable_income" yaml:"taxable_income"`
	EstimatedTax      decimal.Decimal     `json:"estimated_tax" yaml:"estimated_tax"`
	Cess              decimal.Decimal     `json:"cess" yaml:"cess"`
	TotalTaxLiability decimal.Decimal     `json:"total_tax_liability" yaml:"total_tax_liability"`
	Deductions        []DeductionStatus   `json:"deductions" yaml:"deductions"`
	Recommendations   []TaxRecommendation `json:"recommendations" yaml:"recommendations"`
	Projection        *YearEndProjection  `json:"projection,omitempty" yaml:"projection,omitempty"`
}

// Insight is one ordered natural-language statement produced by the insight
// generator.
type Insight struct {
	Topic   string `json:"topic" yaml:"topic"`
	Message string `json:"message" yaml:"message"`
}
