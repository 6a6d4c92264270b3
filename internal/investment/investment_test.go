package investment

import (
	"testing"
	"time"

	"fjacquet/finlytics/internal/classify"
	"fjacquet/finlytics/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func invTxn(dateKey string, amount float64, txnType models.TransactionType, note, account string) models.Transaction {
	date, _ := time.Parse(models.DateKeyLayout, dateKey)
	return models.Transaction{
		Date:     date,
		DateKey:  dateKey,
		Amount:   decimal.NewFromFloat(amount),
		Type:     txnType,
		Category: "Investments",
		Note:     note,
		Account:  account,
	}
}

func TestCalculate_CapitalAndHoldings(t *testing.T) {
	calc := New(nil, nil, nil)

	txns := []models.Transaction{
		invTxn("2024-01-05", 10000, models.TypeExpense, "SIP purchase", "Zerodha"),
		invTxn("2024-02-05", 5000, models.TypeExpense, "Buy ETF", "Zerodha"),
		invTxn("2024-03-01", 3000, models.TypeIncome, "Sold units", "Zerodha"),
	}

	data := calc.Calculate(txns)

	assert.True(t, data.TotalCapitalDeployed.Equal(decimal.NewFromInt(15000)))
	assert.True(t, data.TotalWithdrawals.Equal(decimal.NewFromInt(3000)))
	assert.True(t, data.CurrentHoldings.Equal(decimal.NewFromInt(12000)))
	assert.Len(t, data.Transactions, 3)
}

func TestCalculate_IncomeBuckets(t *testing.T) {
	calc := New(nil, nil, nil)

	txns := []models.Transaction{
		invTxn("2024-01-05", 10000, models.TypeExpense, "Buy stock", ""),
		invTxn("2024-02-01", 500, models.TypeIncome, "Dividend INFY", ""),
		invTxn("2024-02-15", 200, models.TypeIncome, "Interest on bonds", ""),
		invTxn("2024-03-01", 1500, models.TypeIncome, "Realized gain", ""),
		invTxn("2024-03-10", 300, models.TypeExpense, "Loss booked", ""),
		invTxn("2024-03-20", 100, models.TypeExpense, "Brokerage charges", ""),
	}

	data := calc.Calculate(txns)

	assert.True(t, data.Dividends.Equal(decimal.NewFromInt(500)))
	assert.True(t, data.Interest.Equal(decimal.NewFromInt(200)))
	assert.True(t, data.RealizedProfits.Equal(decimal.NewFromInt(1500)))
	assert.True(t, data.RealizedLosses.Equal(decimal.NewFromInt(300)))
	assert.True(t, data.BrokerageFees.Equal(decimal.NewFromInt(100)))

	// (1500 + 500 + 200) - (300 + 100) = 1800
	assert.True(t, data.NetProfitLoss.Equal(decimal.NewFromInt(1800)))
	assert.InDelta(t, 18.0, data.ReturnPercentage, 1e-9)
}

func TestCalculate_ZeroCapitalReturnsZeroPercent(t *testing.T) {
	calc := New(nil, nil, nil)

	txns := []models.Transaction{
		invTxn("2024-02-01", 500, models.TypeIncome, "Dividend INFY", ""),
	}

	data := calc.Calculate(txns)

	assert.True(t, data.TotalCapitalDeployed.IsZero())
	assert.Equal(t, 0.0, data.ReturnPercentage, "return percent clamps to 0 without capital")
}

func TestCalculate_HoldingsFlooredAtZero(t *testing.T) {
	calc := New(nil, nil, nil)

	txns := []models.Transaction{
		invTxn("2024-01-05", 1000, models.TypeExpense, "Buy stock", ""),
		invTxn("2024-02-05", 5000, models.TypeIncome, "Withdrawal to bank", ""),
	}

	data := calc.Calculate(txns)

	assert.True(t, data.CurrentHoldings.IsZero(), "incomplete buy history never yields negative holdings")
}

func TestCalculate_RSUBucketIsSeparate(t *testing.T) {
	calc := New(nil, nil, nil)

	txns := []models.Transaction{
		invTxn("2024-01-05", 70000, models.TypeIncome, "RSU vest 40 units", "Employer"),
	}

	data := calc.Calculate(txns)

	assert.True(t, data.RSUHoldings.Equal(decimal.NewFromInt(70000)))
	assert.True(t, data.CurrentHoldings.IsZero())
	assert.True(t, data.TotalCapitalDeployed.IsZero())
}

func TestCalculate_PlatformBreakdown(t *testing.T) {
	calc := New(nil, nil, nil)

	txns := []models.Transaction{
		invTxn("2024-01-05", 2000, models.TypeExpense, "Buy stock", "Groww"),
		invTxn("2024-01-06", 10000, models.TypeExpense, "Buy stock", "Zerodha"),
		invTxn("2024-01-07", 500, models.TypeExpense, "Buy stock", ""),
	}

	data := calc.Calculate(txns)

	if assert.Len(t, data.Platforms, 3) {
		// Sorted by capital deployed descending.
		assert.Equal(t, "Zerodha", data.Platforms[0].Platform)
		assert.Equal(t, "Groww", data.Platforms[1].Platform)
		assert.Equal(t, DefaultPlatform, data.Platforms[2].Platform)
	}
}

func TestCalculate_UntaggedAndTransfersSkipped(t *testing.T) {
	calc := New(nil, nil, nil)
	date, _ := time.Parse(models.DateKeyLayout, "2024-01-05")

	txns := []models.Transaction{
		{Date: date, DateKey: "2024-01-05", Amount: decimal.NewFromInt(100), Type: models.TypeExpense, Category: "Groceries"},
		{Date: date, DateKey: "2024-01-05", Amount: decimal.NewFromInt(5000), Type: models.TypeTransfer, Category: "Investments"},
	}

	data := calc.Calculate(txns)

	assert.Empty(t, data.Transactions)
	assert.True(t, data.TotalCapitalDeployed.IsZero())
}

func TestCalculate_FallbackKinds(t *testing.T) {
	calc := New(nil, nil, nil)

	txns := []models.Transaction{
		invTxn("2024-01-05", 1000, models.TypeExpense, "", ""),
		invTxn("2024-02-05", 400, models.TypeIncome, "", ""),
	}

	data := calc.Calculate(txns)

	if assert.Len(t, data.Transactions, 2) {
		assert.Equal(t, models.InvestBuy, data.Transactions[0].Kind)
		assert.Equal(t, models.InvestProfit, data.Transactions[1].Kind)
	}
}

func TestCalculate_CustomKindRules(t *testing.T) {
	kindRules := classify.NewRuleSet(
		Rule("custom-fee", "PLATFORM FEE"),
	)
	calc := New(nil, kindRules, nil)

	txns := []models.Transaction{
		invTxn("2024-01-05", 99, models.TypeExpense, "Platform fee March", ""),
	}

	data := calc.Calculate(txns)

	if assert.Len(t, data.Transactions, 1) {
		assert.Equal(t, "custom-fee", data.Transactions[0].Kind)
	}
}

// Rule is a test helper for one-keyword rules.
func Rule(label, keyword string) classify.Rule {
	return classify.Rule{Label: label, Keywords: []string{keyword}}
}
