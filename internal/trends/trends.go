// Package trends computes per-category monthly spending trends. Expense
// amounts are bucketed by calendar month; the trend percent compares the
// first and last observed months, and the direction classification applies
// a ±10% dead band.
package trends

import (
	"sort"

	"fjacquet/finlytics/internal/dateutils"
	"fjacquet/finlytics/internal/models"

	"github.com/shopspring/decimal"
)

// DefaultTopN bounds the ranked output when the caller does not specify one.
const DefaultTopN = 10

// direction thresholds in percent
const (
	increasingAbove = 10.0
	decreasingBelow = -10.0
)

// Analyze buckets expense transactions per category and month and returns
// the categories ranked by total descending, truncated to topN (<=0 means
// DefaultTopN). Categories observed in a single month report a zero trend
// with direction "stable".
func Analyze(txns []models.Transaction, topN int) []models.CategoryTrend {
	if topN <= 0 {
		topN = DefaultTopN
	}

	// category -> month key -> total
	buckets := make(map[string]map[string]decimal.Decimal)
	for _, txn := range txns {
		if !txn.IsExpense() || !txn.HasDate() {
			continue
		}
		months, ok := buckets[txn.Category]
		if !ok {
			months = make(map[string]decimal.Decimal)
			buckets[txn.Category] = months
		}
		months[txn.MonthKey()] = months[txn.MonthKey()].Add(txn.Amount.Abs())
	}

	trends := make([]models.CategoryTrend, 0, len(buckets))
	for category, months := range buckets {
		trends = append(trends, analyzeCategory(category, months))
	}

	// Ranked by total descending; ties broken by category name so that the
	// output is deterministic over map iteration.
	sort.Slice(trends, func(i, j int) bool {
		if !trends[i].Total.Equal(trends[j].Total) {
			return trends[i].Total.GreaterThan(trends[j].Total)
		}
		return trends[i].Category < trends[j].Category
	})

	if len(trends) > topN {
		trends = trends[:topN]
	}
	return trends
}

func analyzeCategory(category string, months map[string]decimal.Decimal) models.CategoryTrend {
	keys := dateutils.SortedMonthKeys(months)

	total := decimal.Zero
	series := make([]float64, 0, len(keys))
	for _, k := range keys {
		total = total.Add(months[k])
		v, _ := months[k].Float64()
		series = append(series, v)
	}

	trend := models.CategoryTrend{
		Category:   category,
		Total:      total,
		MonthCount: len(keys),
		Direction:  models.TrendStable,
	}
	if len(keys) > 0 {
		trend.MonthlyAverage = total.Div(decimal.NewFromInt(int64(len(keys))))
	} else {
		trend.MonthlyAverage = decimal.Zero
	}

	// Trend needs at least two distinct months; a single-month category
	// reports 0 / stable.
	if len(keys) >= 2 {
		first := months[keys[0]]
		last := months[keys[len(keys)-1]]
		trend.TrendPercent = changePercent(first, last)
		switch {
		case trend.TrendPercent > increasingAbove:
			trend.Direction = models.TrendIncreasing
		case trend.TrendPercent < decreasingBelow:
			trend.Direction = models.TrendDecreasing
		}
		trend.Slope, trend.RSquared = linearRegression(series)
	}
	return trend
}

// changePercent computes (last-first)/first*100, guarded to 0 when the first
// month is zero or the result would not be finite.
func changePercent(first, last decimal.Decimal) float64 {
	if first.IsZero() {
		return 0
	}
	pct, _ := last.Sub(first).Div(first).Mul(decimal.NewFromInt(100)).Float64()
	return pct
}

// linearRegression fits y = slope*x + b over x = 0..n-1 and reports the
// slope and R². A flat series reports R² = 1.
func linearRegression(points []float64) (slope, rSquared float64) {
	n := float64(len(points))
	if n < 2 {
		return 0, 0
	}
	var sumX, sumY, sumXY, sumX2 float64
	for i, y := range points {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumX2 += x * x
	}
	denom := n*sumX2 - sumX*sumX
	if denom == 0 {
		return 0, 0
	}
	slope = (n*sumXY - sumX*sumY) / denom
	intercept := (sumY - slope*sumX) / n

	meanY := sumY / n
	var ssRes, ssTot float64
	for i, y := range points {
		predicted := slope*float64(i) + intercept
		ssRes += (y - predicted) * (y - predicted)
		ssTot += (y - meanY) * (y - meanY)
	}
	if ssTot == 0 {
		return slope, 1
	}
	return slope, 1 - ssRes/ssTot
}
