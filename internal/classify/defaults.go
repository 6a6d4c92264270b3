package classify

import "fjacquet/finlytics/internal/models"

// Income component labels used by the tax calculator.
const (
	IncomeSalary = "salary"
	IncomeBonus  = "bonus"
	IncomeRSU    = "rsu"
	IncomeOther  = "other"
)

// DefaultInvestmentTagRules decides whether a transaction belongs to the
// investment universe at all. Probed against category and subcategory.
func DefaultInvestmentTagRules() *RuleSet {
	return NewRuleSet(
		Rule{Label: "investment", Keywords: []string{
			"INVEST", "STOCK", "EQUITY", "MUTUAL FUND", "SIP", "ETF",
			"SHARES", "BROKER", "DEMAT", "RSU", "ESPP", "TRADING",
		}},
	)
}

// DefaultInvestmentKindRules classifies an investment-tagged transaction
// into its subtype. Order is priority: fee and income subtypes are more
// specific than the buy/sell defaults, so they come first.
func DefaultInvestmentKindRules() *RuleSet {
	return NewRuleSet(
		Rule{Label: models.InvestBrokerage, Keywords: []string{"BROKERAGE", "BROKER FEE", "COMMISSION", "DP CHARGES", "ACCOUNT FEE"}},
		Rule{Label: models.InvestDividend, Keywords: []string{"DIVIDEND"}},
		Rule{Label: models.InvestInterest, Keywords: []string{"INTEREST"}},
		Rule{Label: models.InvestRSUVest, Keywords: []string{"RSU", "ESPP", "VEST"}},
		Rule{Label: models.InvestProfit, Keywords: []string{"PROFIT", "GAIN", "REALIZED GAIN"}},
		Rule{Label: models.InvestLoss, Keywords: []string{"LOSS"}},
		Rule{Label: models.InvestWithdrawal, Keywords: []string{"WITHDRAW", "REDEEM", "REDEMPTION", "PAYOUT"}},
		Rule{Label: models.InvestSell, Keywords: []string{"SELL", "SOLD", "SALE"}},
		Rule{Label: models.InvestBuy, Keywords: []string{"BUY", "PURCHASE", "SIP", "INVEST"}},
	)
}

// DefaultIncomeRules decomposes income transactions into the components the
// tax calculator works with. Unmatched income counts as "other".
func DefaultIncomeRules() *RuleSet {
	return NewRuleSet(
		Rule{Label: IncomeRSU, Keywords: []string{"RSU", "ESPP", "STOCK VEST"}},
		Rule{Label: IncomeBonus, Keywords: []string{"BONUS", "INCENTIVE", "VARIABLE PAY"}},
		Rule{Label: IncomeSalary, Keywords: []string{"SALARY", "PAYROLL", "WAGES", "PAY CHEQUE", "PAYCHECK"}},
	)
}
