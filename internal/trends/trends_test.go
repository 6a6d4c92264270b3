package trends

import (
	"testing"
	"time"

	"fjacquet/finlytics/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func expense(dateKey string, amount float64, category string) models.Transaction {
	date, _ := time.Parse(models.DateKeyLayout, dateKey)
	return models.Transaction{
		Date:     date,
		DateKey:  dateKey,
		Amount:   decimal.NewFromFloat(amount),
		Type:     models.TypeExpense,
		Category: category,
	}
}

func TestAnalyze_SingleMonthIsStable(t *testing.T) {
	txns := []models.Transaction{
		expense("2024-03-05", 100, "Food"),
		expense("2024-03-20", 50, "Food"),
	}

	trends := Analyze(txns, 10)

	if assert.Len(t, trends, 1) {
		assert.Equal(t, "Food", trends[0].Category)
		assert.Equal(t, 1, trends[0].MonthCount)
		assert.Equal(t, 0.0, trends[0].TrendPercent)
		assert.Equal(t, models.TrendStable, trends[0].Direction)
		assert.True(t, trends[0].Total.Equal(decimal.NewFromInt(150)))
		assert.True(t, trends[0].MonthlyAverage.Equal(decimal.NewFromInt(150)))
	}
}

func TestAnalyze_DirectionClassification(t *testing.T) {
	tests := []struct {
		name      string
		first     float64
		last      float64
		percent   float64
		direction string
	}{
		{"doubling is increasing", 100, 200, 100, models.TrendIncreasing},
		{"halving is decreasing", 200, 100, -50, models.TrendDecreasing},
		{"+10 percent exactly stays stable", 100, 110, 10, models.TrendStable},
		{"-10 percent exactly stays stable", 100, 90, -10, models.TrendStable},
		{"small change is stable", 100, 105, 5, models.TrendStable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txns := []models.Transaction{
				expense("2024-01-10", tt.first, "Cat"),
				expense("2024-02-10", tt.last, "Cat"),
			}

			trends := Analyze(txns, 10)

			if assert.Len(t, trends, 1) {
				assert.InDelta(t, tt.percent, trends[0].TrendPercent, 1e-9)
				assert.Equal(t, tt.direction, trends[0].Direction)
			}
		})
	}
}

func TestAnalyze_ZeroFirstMonthGuard(t *testing.T) {
	txns := []models.Transaction{
		expense("2024-01-10", 0, "Cat"),
		expense("2024-02-10", 500, "Cat"),
	}

	trends := Analyze(txns, 10)

	if assert.Len(t, trends, 1) {
		assert.Equal(t, 0.0, trends[0].TrendPercent)
		assert.Equal(t, models.TrendStable, trends[0].Direction)
	}
}

func TestAnalyze_RankedByTotalAndTruncated(t *testing.T) {
	txns := []models.Transaction{
		expense("2024-01-01", 50, "Small"),
		expense("2024-01-02", 900, "Big"),
		expense("2024-01-03", 300, "Medium"),
	}

	trends := Analyze(txns, 2)

	if assert.Len(t, trends, 2) {
		assert.Equal(t, "Big", trends[0].Category)
		assert.Equal(t, "Medium", trends[1].Category)
	}
}

func TestAnalyze_TieBrokenByCategoryName(t *testing.T) {
	txns := []models.Transaction{
		expense("2024-01-01", 100, "Zeta"),
		expense("2024-01-02", 100, "Alpha"),
	}

	trends := Analyze(txns, 10)

	if assert.Len(t, trends, 2) {
		assert.Equal(t, "Alpha", trends[0].Category)
		assert.Equal(t, "Zeta", trends[1].Category)
	}
}

func TestAnalyze_IgnoresIncomeAndUndated(t *testing.T) {
	date, _ := time.Parse(models.DateKeyLayout, "2024-01-05")
	txns := []models.Transaction{
		{Date: date, DateKey: "2024-01-05", Amount: decimal.NewFromInt(1000), Type: models.TypeIncome, Category: "Salary"},
		{Amount: decimal.NewFromInt(77), Type: models.TypeExpense, Category: "NoDate"},
	}

	assert.Empty(t, Analyze(txns, 10))
}

func TestAnalyze_RegressionOverMonthlySeries(t *testing.T) {
	// Perfectly linear series: 100, 200, 300 over three months.
	txns := []models.Transaction{
		expense("2024-01-10", 100, "Cat"),
		expense("2024-02-10", 200, "Cat"),
		expense("2024-03-10", 300, "Cat"),
	}

	trends := Analyze(txns, 10)

	if assert.Len(t, trends, 1) {
		assert.InDelta(t, 100.0, trends[0].Slope, 1e-9)
		assert.InDelta(t, 1.0, trends[0].RSquared, 1e-9)
	}
}

func TestLinearRegression_FlatSeries(t *testing.T) {
	slope, rSquared := linearRegression([]float64{250, 250, 250})

	assert.InDelta(t, 0.0, slope, 1e-9)
	assert.InDelta(t, 1.0, rSquared, 1e-9)
}

func TestAnalyze_Idempotence(t *testing.T) {
	txns := []models.Transaction{
		expense("2024-01-10", 100, "Food"),
		expense("2024-02-10", 250, "Food"),
		expense("2024-01-15", 80, "Transport"),
	}

	assert.Equal(t, Analyze(txns, 10), Analyze(txns, 10))
}
