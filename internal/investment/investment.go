// Package investment derives the investment performance picture from
// investment-tagged transactions. Tagging and subtype classification are
// keyword rules over category, subcategory and note text (see classify);
// flows are accumulated into capital deployed, withdrawals, realized P&L,
// fees and a distinct RSU bucket, overall and per platform.
package investment

import (
	"sort"

	"fjacquet/finlytics/internal/classify"
	"fjacquet/finlytics/internal/logging"
	"fjacquet/finlytics/internal/models"

	"github.com/shopspring/decimal"
)

// DefaultPlatform labels transactions without an account/platform field.
const DefaultPlatform = "Unknown"

// Calculator classifies and aggregates investment flows.
type Calculator struct {
	tagRules  *classify.RuleSet
	kindRules *classify.RuleSet
	logger    logging.Logger
}

// New creates a Calculator with the default rule tables. Either rule set may
// be overridden (nil keeps the default); a nil logger is replaced by a no-op.
func New(tagRules, kindRules *classify.RuleSet, logger logging.Logger) *Calculator {
	if tagRules == nil {
		tagRules = classify.DefaultInvestmentTagRules()
	}
	if kindRules == nil {
		kindRules = classify.DefaultInvestmentKindRules()
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &Calculator{tagRules: tagRules, kindRules: kindRules, logger: logger}
}

// Calculate builds the InvestmentPerformanceData for the collection. Input
// order is preserved in the annotated transaction list; the platform
// breakdown is sorted by capital deployed descending.
func (c *Calculator) Calculate(txns []models.Transaction) models.InvestmentPerformanceData {
	data := models.InvestmentPerformanceData{
		TotalCapitalDeployed: decimal.Zero,
		TotalWithdrawals:     decimal.Zero,
		CurrentHoldings:      decimal.Zero,
		RSUHoldings:          decimal.Zero,
		RealizedProfits:      decimal.Zero,
		RealizedLosses:       decimal.Zero,
		Dividends:            decimal.Zero,
		Interest:             decimal.Zero,
		BrokerageFees:        decimal.Zero,
		NetProfitLoss:        decimal.Zero,
	}

	platforms := make(map[string]*models.PlatformPerformance)
	var platformOrder []string

	for _, txn := range txns {
		if txn.IsTransfer() {
			continue
		}
		if _, tagged := c.tagRules.Match(txn.Category, txn.Subcategory); !tagged {
			continue
		}

		kind := c.classifyKind(txn)
		platform := txn.Account
		if platform == "" {
			platform = DefaultPlatform
		}

		data.Transactions = append(data.Transactions, models.InvestmentTransaction{
			Transaction: txn,
			Kind:        kind,
			Platform:    platform,
		})

		p, ok := platforms[platform]
		if !ok {
			p = &models.PlatformPerformance{
				Platform:        platform,
				CapitalDeployed: decimal.Zero,
				Holdings:        decimal.Zero,
				RealizedProfits: decimal.Zero,
				RealizedLosses:  decimal.Zero,
			}
			platforms[platform] = p
			platformOrder = append(platformOrder, platform)
		}

		c.accumulate(&data, p, kind, txn.Amount)
	}

	// Holdings cannot go below zero: withdrawals beyond recorded buys mean
	// the buy history is incomplete, not negative capital.
	if data.CurrentHoldings.IsNegative() {
		data.CurrentHoldings = decimal.Zero
	}

	data.NetProfitLoss = data.RealizedProfits.
		Add(data.Dividends).
		Add(data.Interest).
		Sub(data.RealizedLosses).
		Sub(data.BrokerageFees)

	if data.TotalCapitalDeployed.IsPositive() {
		pct, _ := data.NetProfitLoss.Div(data.TotalCapitalDeployed).Mul(decimal.NewFromInt(100)).Float64()
		data.ReturnPercentage = pct
	}

	for _, name := range platformOrder {
		p := platforms[name]
		if p.Holdings.IsNegative() {
			p.Holdings = decimal.Zero
		}
		data.Platforms = append(data.Platforms, *p)
	}
	sort.SliceStable(data.Platforms, func(i, j int) bool {
		return data.Platforms[i].CapitalDeployed.GreaterThan(data.Platforms[j].CapitalDeployed)
	})

	return data
}

// classifyKind infers the transaction subtype from its text, falling back to
// buy for expenses and profit for income when no rule matches. The category
// is not probed here: it is the tagging dimension and its keywords (INVEST,
// SIP) would shadow the fallback.
func (c *Calculator) classifyKind(txn models.Transaction) string {
	if kind, ok := c.kindRules.Match(txn.Note, txn.Description, txn.Subcategory); ok {
		return kind
	}
	if txn.IsIncome() {
		return models.InvestProfit
	}
	return models.InvestBuy
}

func (c *Calculator) accumulate(data *models.InvestmentPerformanceData, p *models.PlatformPerformance, kind string, amount decimal.Decimal) {
	switch kind {
	case models.InvestBuy:
		data.TotalCapitalDeployed = data.TotalCapitalDeployed.Add(amount)
		data.CurrentHoldings = data.CurrentHoldings.Add(amount)
		p.CapitalDeployed = p.CapitalDeployed.Add(amount)
		p.Holdings = p.Holdings.Add(amount)
	case models.InvestSell, models.InvestWithdrawal:
		data.TotalWithdrawals = data.TotalWithdrawals.Add(amount)
		data.CurrentHoldings = data.CurrentHoldings.Sub(amount)
		p.Holdings = p.Holdings.Sub(amount)
	case models.InvestDividend:
		data.Dividends = data.Dividends.Add(amount)
	case models.InvestInterest:
		data.Interest = data.Interest.Add(amount)
	case models.InvestBrokerage:
		data.BrokerageFees = data.BrokerageFees.Add(amount)
	case models.InvestProfit:
		data.RealizedProfits = data.RealizedProfits.Add(amount)
		p.RealizedProfits = p.RealizedProfits.Add(amount)
	case models.InvestLoss:
		data.RealizedLosses = data.RealizedLosses.Add(amount)
		p.RealizedLosses = p.RealizedLosses.Add(amount)
	case models.InvestRSUVest:
		// RSUs sit in their own bucket: the gross-up at a fixed withholding
		// rate gives them a different tax treatment than capital gains.
		data.RSUHoldings = data.RSUHoldings.Add(amount)
	}
}
