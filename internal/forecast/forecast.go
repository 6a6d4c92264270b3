// Package forecast projects cash flow linearly from the historical daily
// rate. The observed span is the calendar-day distance between the earliest
// and latest dated transactions (at least one day); the net daily flow is
// extrapolated over the forecast horizon.
package forecast

import (
	"fjacquet/finlytics/internal/dateutils"
	"fjacquet/finlytics/internal/enginerrors"
	"fjacquet/finlytics/internal/models"

	"github.com/shopspring/decimal"
)

// DefaultHorizonDays is the projection window when the caller does not set one.
const DefaultHorizonDays = 30

// Config holds the forecaster knobs. The status thresholds are currency-unit
// constants, configurable rather than hard-coded policy.
type Config struct {
	// HorizonDays is the projection window. Zero means DefaultHorizonDays;
	// negative is a contract violation.
	HorizonDays int
	// PositiveAbove classifies status "positive" when the net daily flow
	// exceeds it. Zero means the default of 500.
	PositiveAbove decimal.Decimal
	// CriticalBelow classifies status "critical" when the net daily flow is
	// below it. Zero means the default of -500.
	CriticalBelow decimal.Decimal
}

// Project computes the cash flow forecast for the given balance. An empty
// or undated collection yields a zeroed forecast with status "stable" and
// the no-depletion sentinel.
func Project(txns []models.Transaction, currentBalance decimal.Decimal, cfg Config) (models.CashFlowForecast, error) {
	horizon := cfg.HorizonDays
	if horizon == 0 {
		horizon = DefaultHorizonDays
	}
	if horizon < 0 {
		return models.CashFlowForecast{}, enginerrors.NewConfigError("forecast", "horizon_days", cfg.HorizonDays, "must be positive")
	}

	positiveAbove := cfg.PositiveAbove
	if positiveAbove.IsZero() {
		positiveAbove = decimal.NewFromInt(500)
	}
	criticalBelow := cfg.CriticalBelow
	if criticalBelow.IsZero() {
		criticalBelow = decimal.NewFromInt(-500)
	}

	fc := models.CashFlowForecast{
		HorizonDays:       horizon,
		DailyIncome:       decimal.Zero,
		DailyExpense:      decimal.Zero,
		NetDaily:          decimal.Zero,
		TotalProjected:    decimal.Zero,
		CurrentBalance:    currentBalance,
		ForecastedBalance: currentBalance,
		Status:            models.CashFlowStable,
		DaysUntilZero:     models.NoDepletion,
	}

	totalIncome := decimal.Zero
	totalExpense := decimal.Zero
	var earliest, latest models.Transaction
	seen := false

	for _, txn := range txns {
		if !txn.HasDate() {
			continue
		}
		if !seen || txn.DateKey < earliest.DateKey {
			earliest = txn
		}
		if !seen || txn.DateKey > latest.DateKey {
			latest = txn
		}
		seen = true

		switch txn.Type {
		case models.TypeIncome:
			totalIncome = totalIncome.Add(txn.Amount)
		case models.TypeExpense:
			totalExpense = totalExpense.Add(txn.Amount)
		}
	}
	if !seen {
		return fc, nil
	}

	spanDays := dateutils.DaysBetween(earliest.Date, latest.Date)
	if spanDays < 1 {
		spanDays = 1
	}
	fc.SpanDays = spanDays

	span := decimal.NewFromInt(int64(spanDays))
	fc.DailyIncome = totalIncome.Div(span)
	fc.DailyExpense = totalExpense.Div(span)
	fc.NetDaily = fc.DailyIncome.Sub(fc.DailyExpense)
	fc.TotalProjected = fc.NetDaily.Mul(decimal.NewFromInt(int64(horizon)))
	fc.ForecastedBalance = currentBalance.Add(fc.TotalProjected)
	fc.Status = classify(fc.NetDaily, positiveAbove, criticalBelow)

	if fc.NetDaily.IsNegative() {
		days, _ := currentBalance.Div(fc.NetDaily).Abs().Float64()
		fc.DaysUntilZero = days
	}
	return fc, nil
}

func classify(netDaily, positiveAbove, criticalBelow decimal.Decimal) string {
	switch {
	case netDaily.GreaterThan(positiveAbove):
		return models.CashFlowPositive
	case netDaily.LessThan(criticalBelow):
		return models.CashFlowCritical
	case netDaily.IsNegative():
		return models.CashFlowWarning
	default:
		return models.CashFlowStable
	}
}
