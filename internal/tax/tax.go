package tax

import (
	"fmt"
	"time"

	"fjacquet/finlytics/internal/classify"
	"fjacquet/finlytics/internal/dateutils"
	"fjacquet/finlytics/internal/logging"
	"fjacquet/finlytics/internal/models"
	"fjacquet/finlytics/internal/period"

	"github.com/shopspring/decimal"
)

// ScopeOverall computes the tax position over the whole collection instead
// of a single fiscal year. Projections are omitted in this scope.
const ScopeOverall = "overall"

// trailingSalaryMonths is the window for the run-rate used by the year-end
// projection.
const trailingSalaryMonths = 3

// Calculator computes the comprehensive tax position from normalized
// transactions and, optionally, investment performance data.
type Calculator struct {
	cfg         Config
	incomeRules *classify.RuleSet
	logger      logging.Logger
}

// New creates a Calculator. A zero Config means DefaultConfig(); a nil
// logger discards diagnostics.
func New(cfg Config, logger logging.Logger) (*Calculator, error) {
	if cfg.Regime == "" {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &Calculator{
		cfg:         cfg,
		incomeRules: classify.DefaultIncomeRules(),
		logger:      logger,
	}, nil
}

// Compute builds the tax position for one fiscal year, or for the whole
// collection when fiscalYear is ScopeOverall or empty. invest may be nil;
// when present it feeds the fee-ratio recommendation.
func (c *Calculator) Compute(txns []models.Transaction, fiscalYear string, invest *models.InvestmentPerformanceData) (models.ComprehensiveTaxData, error) {
	startMonth := time.Month(c.cfg.FiscalYearStartMonth)

	scope := fiscalYear
	if scope == "" {
		scope = ScopeOverall
	}

	scoped := c.scopeTransactions(txns, scope, startMonth)

	data := models.ComprehensiveTaxData{
		FiscalYear:        scope,
		Regime:            c.cfg.Regime,
		StandardDeduction: c.cfg.standardDeduction(),
	}

	start, end := rangeOf(scoped)
	summary := period.Summarize(scoped, start, end)
	c.logger.Debug("tax scope aggregated",
		logging.Field{Key: "fiscal_year", Value: scope},
		logging.Field{Key: "transactions", Value: summary.TransactionCount},
		logging.Field{Key: "income", Value: summary.Income.String()})

	c.decomposeIncome(scoped, summary.Income, &data)

	if c.cfg.Regime == models.RegimeOld {
		data.Deductions = c.trackDeductions(scoped)
	}

	taxable := data.GrossIncome.Sub(data.StandardDeduction)
	for _, d := range data.Deductions {
		taxable = taxable.Sub(d.Amount)
	}
	if taxable.IsNegative() {
		taxable = decimal.Zero
	}
	data.TaxableIncome = taxable
	data.EstimatedTax = SlabTax(taxable, c.cfg.slabs())
	data.Cess = data.EstimatedTax.Mul(decimal.NewFromFloat(c.cfg.CessRate))
	data.TotalTaxLiability = data.EstimatedTax.Add(data.Cess)

	if scope != ScopeOverall {
		data.Projection = c.projectYearEnd(scoped, data, startMonth)
	}

	data.Recommendations = c.recommend(data, invest)
	return data, nil
}

// scopeTransactions keeps the transactions whose date falls in the named
// fiscal year. Undated transactions carry no fiscal attribution and are
// excluded from every scope.
func (c *Calculator) scopeTransactions(txns []models.Transaction, scope string, startMonth time.Month) []models.Transaction {
	var scoped []models.Transaction
	for _, txn := range txns {
		if !txn.HasDate() {
			continue
		}
		if scope == ScopeOverall || dateutils.FiscalYearLabel(txn.Date, startMonth) == scope {
			scoped = append(scoped, txn)
		}
	}
	return scoped
}

// decomposeIncome splits the aggregated income total into salary, bonus,
// RSU and other, applying the RSU withholding reversal and the salary
// gross-up. totalIncome comes from the period aggregation; classification
// only carves components out of it, and whatever the rules do not claim
// stays in OtherIncome.
func (c *Calculator) decomposeIncome(txns []models.Transaction, totalIncome decimal.Decimal, data *models.ComprehensiveTaxData) {
	salaryNet := decimal.Zero
	for _, txn := range txns {
		if !txn.IsIncome() {
			continue
		}
		label, ok := c.incomeRules.Match(txn.Description, txn.Category, txn.Subcategory, txn.Note)
		if !ok {
			continue
		}
		switch label {
		case classify.IncomeSalary:
			salaryNet = salaryNet.Add(txn.Amount)
		case classify.IncomeBonus:
			data.Bonus = data.Bonus.Add(txn.Amount)
		case classify.IncomeRSU:
			data.RSUNet = data.RSUNet.Add(txn.Amount)
		}
	}
	data.OtherIncome = totalIncome.Sub(salaryNet).Sub(data.Bonus).Sub(data.RSUNet)

	// RSU credits arrive net of flat withholding; reverse it to the gross
	// that actually enters taxable income.
	retained := decimal.NewFromFloat(1 - c.cfg.RSUWithholdingRate)
	if retained.IsPositive() {
		data.RSUGross = data.RSUNet.Div(retained)
	} else {
		data.RSUGross = data.RSUNet
	}

	data.Salary = GrossUp(salaryNet, c.cfg.GrossUp)
	data.GrossIncome = data.Salary.Add(data.Bonus).Add(data.RSUGross).Add(data.OtherIncome)
}

// trackDeductions measures the utilization of each old-regime deduction
// type against matching expense transactions, capped at the rule limit.
func (c *Calculator) trackDeductions(txns []models.Transaction) []models.DeductionStatus {
	statuses := make([]models.DeductionStatus, 0, len(c.cfg.DeductionsOld))
	for _, rule := range c.cfg.DeductionsOld {
		rs := classify.NewRuleSet(classify.Rule{Label: rule.Name, Keywords: rule.Keywords})

		spent := decimal.Zero
		for _, txn := range txns {
			if !txn.IsExpense() {
				continue
			}
			if _, ok := rs.Match(txn.Description, txn.Category, txn.Subcategory, txn.Note); ok {
				spent = spent.Add(txn.Amount)
			}
		}

		amount := spent
		if amount.GreaterThan(rule.Limit) {
			amount = rule.Limit
		}
		statuses = append(statuses, models.DeductionStatus{
			Name:      rule.Name,
			Amount:    amount,
			Limit:     rule.Limit,
			Remaining: rule.Limit.Sub(amount),
		})
	}
	return statuses
}

// projectYearEnd extrapolates the trailing salary run rate to the fiscal
// year end. Nil when the scope has no dated transactions or the year is
// already complete.
func (c *Calculator) projectYearEnd(txns []models.Transaction, data models.ComprehensiveTaxData, startMonth time.Month) *models.YearEndProjection {
	var asOf time.Time
	salaryByMonth := make(map[string]decimal.Decimal)
	for _, txn := range txns {
		if !txn.HasDate() {
			continue
		}
		if txn.Date.After(asOf) {
			asOf = txn.Date
		}
		if !txn.IsIncome() {
			continue
		}
		if label, ok := c.incomeRules.Match(txn.Description, txn.Category, txn.Subcategory, txn.Note); ok && label == classify.IncomeSalary {
			key := txn.MonthKey()
			salaryByMonth[key] = salaryByMonth[key].Add(txn.Amount)
		}
	}
	if asOf.IsZero() {
		return nil
	}

	monthsRemaining := dateutils.MonthsRemainingInFiscalYear(asOf, startMonth)
	if monthsRemaining == 0 {
		return nil
	}

	trailing := trailingSalaryAverage(salaryByMonth)
	trailingGross := GrossUp(trailing, c.cfg.GrossUp)

	projectedIncome := data.GrossIncome.Add(trailingGross.Mul(decimal.NewFromInt(int64(monthsRemaining))))

	projectedTaxable := projectedIncome.Sub(data.StandardDeduction)
	for _, d := range data.Deductions {
		projectedTaxable = projectedTaxable.Sub(d.Amount)
	}
	if projectedTaxable.IsNegative() {
		projectedTaxable = decimal.Zero
	}
	projectedTax := SlabTax(projectedTaxable, c.cfg.slabs())
	projectedTotal := projectedTax.Add(projectedTax.Mul(decimal.NewFromFloat(c.cfg.CessRate)))

	additional := projectedTotal.Sub(data.TotalTaxLiability)
	if additional.IsNegative() {
		additional = decimal.Zero
	}

	return &models.YearEndProjection{
		TrailingMonthlySalary:  trailing,
		MonthsRemaining:        monthsRemaining,
		ProjectedAnnualIncome:  projectedIncome,
		ProjectedTotalTax:      projectedTotal,
		AdditionalTaxLiability: additional,
	}
}

// trailingSalaryAverage averages the last months with salary credits, over
// a window of up to trailingSalaryMonths.
func trailingSalaryAverage(salaryByMonth map[string]decimal.Decimal) decimal.Decimal {
	keys := dateutils.SortedMonthKeys(salaryByMonth)
	if len(keys) == 0 {
		return decimal.Zero
	}
	if len(keys) > trailingSalaryMonths {
		keys = keys[len(keys)-trailingSalaryMonths:]
	}
	total := decimal.Zero
	for _, k := range keys {
		total = total.Add(salaryByMonth[k])
	}
	return total.Div(decimal.NewFromInt(int64(len(keys))))
}

// recommend evaluates the threshold rules over the computed position.
func (c *Calculator) recommend(data models.ComprehensiveTaxData, invest *models.InvestmentPerformanceData) []models.TaxRecommendation {
	var recs []models.TaxRecommendation

	if invest != nil && invest.RealizedProfits.IsPositive() {
		ratio, _ := invest.BrokerageFees.Div(invest.RealizedProfits).Float64()
		if ratio > c.cfg.BrokerageFeeAlertRatio {
			priority := models.PriorityMedium
			if ratio > 2*c.cfg.BrokerageFeeAlertRatio {
				priority = models.PriorityHigh
			}
			recs = append(recs, models.TaxRecommendation{
				Priority: priority,
				Message:  fmt.Sprintf("Brokerage fees are %.0f%% of realized profits", ratio*100),
				Action:   "Review brokerage plan or consolidate trades to reduce fee drag",
			})
		}
	}

	for _, d := range data.Deductions {
		if d.Name == "80C" && d.Remaining.IsPositive() {
			recs = append(recs, models.TaxRecommendation{
				Priority: models.PriorityMedium,
				Message:  fmt.Sprintf("80C has %s of unused headroom", d.Remaining.StringFixed(0)),
				Action:   "Invest the remaining 80C allowance before fiscal year end",
			})
		}
	}

	if data.Projection != nil && data.Projection.AdditionalTaxLiability.IsPositive() {
		recs = append(recs, models.TaxRecommendation{
			Priority: models.PriorityHigh,
			Message:  fmt.Sprintf("Projected additional tax liability of %s by fiscal year end", data.Projection.AdditionalTaxLiability.StringFixed(0)),
			Action:   "Set aside funds or increase advance tax payments",
		})
	}

	return recs
}

// rangeOf returns the inclusive date-key range spanning the dated
// transactions, for the period aggregation.
func rangeOf(txns []models.Transaction) (string, string) {
	start, end := "", ""
	for _, txn := range txns {
		if !txn.HasDate() {
			continue
		}
		key := txn.DateKey
		if start == "" || key < start {
			start = key
		}
		if key > end {
			end = key
		}
	}
	return start, end
}
