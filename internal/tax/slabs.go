// Package tax decomposes income, applies progressive slab taxation with a
// cess surcharge, tracks deduction utilization per regime, and projects the
// year-end position. All rates, thresholds and slab tables are configuration
// data: regime and fiscal-year specifics never live in engine logic.
package tax

import (
	"github.com/shopspring/decimal"
)

// Slab is one progressive tax band. Ceiling zero means unbounded.
type Slab struct {
	Lower   decimal.Decimal `mapstructure:"lower" yaml:"lower"`
	Ceiling decimal.Decimal `mapstructure:"ceiling" yaml:"ceiling"`
	Rate    float64         `mapstructure:"rate" yaml:"rate"`
}

// GrossUpConfig holds the reverse gross-up constants for net-recorded
// salary: gross = baseThreshold + (net - netAtThreshold) / (1 - effectiveRate)
// above the threshold. EffectiveRate bundles the marginal rate and the cess
// multiplier; the exact values are fiscal-year specific configuration.
type GrossUpConfig struct {
	Enabled        bool            `mapstructure:"enabled" yaml:"enabled"`
	BaseThreshold  decimal.Decimal `mapstructure:"base_threshold" yaml:"base_threshold"`
	NetAtThreshold decimal.Decimal `mapstructure:"net_at_threshold" yaml:"net_at_threshold"`
	EffectiveRate  float64         `mapstructure:"effective_rate" yaml:"effective_rate"`
}

// DeductionRule describes one itemized deduction type available under the
// old regime: expense transactions matching a keyword count toward it, up to
// the limit.
type DeductionRule struct {
	Name     string          `mapstructure:"name" yaml:"name"`
	Limit    decimal.Decimal `mapstructure:"limit" yaml:"limit"`
	Keywords []string        `mapstructure:"keywords" yaml:"keywords"`
}

// SlabTax computes the progressive tax before cess: for each slab, the
// taxable amount is min(taxableIncome, ceiling) - lower clamped to >= 0,
// taxed at the slab rate.
func SlabTax(taxableIncome decimal.Decimal, slabs []Slab) decimal.Decimal {
	if !taxableIncome.IsPositive() {
		return decimal.Zero
	}

	total := decimal.Zero
	for _, slab := range slabs {
		upper := taxableIncome
		if slab.Ceiling.IsPositive() && upper.GreaterThan(slab.Ceiling) {
			upper = slab.Ceiling
		}
		amount := upper.Sub(slab.Lower)
		if !amount.IsPositive() {
			continue
		}
		total = total.Add(amount.Mul(decimal.NewFromFloat(slab.Rate)))
	}
	return total
}

// GrossUp reverses a flat withholding structure: given the recorded net
// income, it returns the pre-withholding gross. At or below the threshold
// the net is returned unchanged.
func GrossUp(net decimal.Decimal, cfg GrossUpConfig) decimal.Decimal {
	if !cfg.Enabled || net.LessThanOrEqual(cfg.NetAtThreshold) {
		return net
	}
	retained := decimal.NewFromFloat(1 - cfg.EffectiveRate)
	if !retained.IsPositive() {
		return net
	}
	return cfg.BaseThreshold.Add(net.Sub(cfg.NetAtThreshold).Div(retained))
}
