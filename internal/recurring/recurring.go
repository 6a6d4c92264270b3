// Package recurring detects repeating expense transactions. Expenses are
// grouped by description plus an amount bucket (rounded to the nearest
// tolerance step, so near-identical recurring charges land together); any
// group with at least two occurrences yields a pattern with its mean
// occurrence interval and a categorical frequency label.
package recurring

import (
	"sort"
	"strings"
	"time"

	"fjacquet/finlytics/internal/enginerrors"
	"fjacquet/finlytics/internal/models"

	"github.com/shopspring/decimal"
)

// DefaultTolerance is the amount bucket width in currency units.
const DefaultTolerance = 100

// Frequency bucket bounds in days: inclusive below, exclusive above.
const (
	weeklyBelow    = 10.0
	biWeeklyBelow  = 20.0
	monthlyBelow   = 45.0
	biMonthlyBelow = 100.0
)

// Config holds the detector knobs.
type Config struct {
	// Tolerance is the currency-unit bucket amounts are rounded to for
	// grouping. Zero means DefaultTolerance.
	Tolerance decimal.Decimal
}

// Detect finds recurring expense patterns. Patterns are ordered by
// occurrence count descending, ties broken by description. A negative
// tolerance is a caller contract violation.
func Detect(txns []models.Transaction, cfg Config) ([]models.RecurringPattern, error) {
	tolerance := cfg.Tolerance
	if tolerance.IsZero() {
		tolerance = decimal.NewFromInt(DefaultTolerance)
	}
	if tolerance.IsNegative() {
		return nil, enginerrors.NewConfigError("recurring", "tolerance", cfg.Tolerance.String(), "must be positive")
	}

	type group struct {
		description string
		category    string
		txns        []models.Transaction
		total       decimal.Decimal
	}

	groups := make(map[string]*group)
	var order []string // insertion order keeps grouping deterministic

	for _, txn := range txns {
		if !txn.IsExpense() || !txn.HasDate() {
			continue
		}
		desc := strings.TrimSpace(txn.Description)
		if desc == "" {
			desc = txn.Category
		}
		bucket := txn.Amount.Div(tolerance).Round(0).Mul(tolerance)
		key := strings.ToUpper(desc) + "|" + bucket.String()

		g, ok := groups[key]
		if !ok {
			g = &group{description: desc, category: txn.Category, total: decimal.Zero}
			groups[key] = g
			order = append(order, key)
		}
		g.txns = append(g.txns, txn)
		g.total = g.total.Add(txn.Amount)
	}

	var patterns []models.RecurringPattern
	for _, key := range order {
		g := groups[key]
		if len(g.txns) < 2 {
			continue
		}
		patterns = append(patterns, buildPattern(g.description, g.category, g.txns, g.total))
	}

	sort.SliceStable(patterns, func(i, j int) bool {
		if patterns[i].OccurrenceCount != patterns[j].OccurrenceCount {
			return patterns[i].OccurrenceCount > patterns[j].OccurrenceCount
		}
		return patterns[i].Description < patterns[j].Description
	})
	return patterns, nil
}

func buildPattern(description, category string, txns []models.Transaction, total decimal.Decimal) models.RecurringPattern {
	dates := make([]time.Time, 0, len(txns))
	for _, txn := range txns {
		dates = append(dates, txn.Date)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	var gapSum float64
	for i := 1; i < len(dates); i++ {
		gapSum += dates[i].Sub(dates[i-1]).Hours() / 24
	}
	interval := gapSum / float64(len(dates)-1)

	frequency := FrequencyLabel(interval)
	last := dates[len(dates)-1]

	return models.RecurringPattern{
		Description:      description,
		Category:         category,
		AverageAmount:    total.Div(decimal.NewFromInt(int64(len(txns)))),
		IntervalDays:     interval,
		Frequency:        frequency,
		OccurrenceCount:  len(txns),
		NextExpectedDate: last.Add(time.Duration(interval * 24 * float64(time.Hour))),
		IsMonthly:        isMonthly(frequency),
	}
}

// FrequencyLabel buckets a mean interval in days into a categorical label.
func FrequencyLabel(intervalDays float64) string {
	switch {
	case intervalDays < weeklyBelow:
		return models.FrequencyWeekly
	case intervalDays < biWeeklyBelow:
		return models.FrequencyBiWeekly
	case intervalDays < monthlyBelow:
		return models.FrequencyMonthly
	case intervalDays < biMonthlyBelow:
		return models.FrequencyBiMonthly
	default:
		return models.FrequencyQuarterly
	}
}

// isMonthly reports the coarse "happens at least monthly" badge: any label
// with an interval of a month or shorter carries it, including weekly and
// bi-weekly items.
func isMonthly(frequency string) bool {
	switch frequency {
	case models.FrequencyWeekly, models.FrequencyBiWeekly, models.FrequencyMonthly:
		return true
	default:
		return false
	}
}
