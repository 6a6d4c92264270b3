package tax

import (
	"time"

	"fjacquet/finlytics/internal/enginerrors"
	"fjacquet/finlytics/internal/models"

	"github.com/shopspring/decimal"
)

// Config holds every regime- and year-specific constant the calculator
// needs. Defaults model the Indian fiscal year (April start) with the
// current new-regime slab table; all of it is overridable configuration.
type Config struct {
	Regime               string  `mapstructure:"regime" yaml:"regime"`
	FiscalYearStartMonth int     `mapstructure:"fiscal_year_start_month" yaml:"fiscal_year_start_month"`
	CessRate             float64 `mapstructure:"cess_rate" yaml:"cess_rate"`

	SlabsOld []Slab `mapstructure:"slabs_old" yaml:"slabs_old"`
	SlabsNew []Slab `mapstructure:"slabs_new" yaml:"slabs_new"`

	StandardDeductionOld decimal.Decimal `mapstructure:"standard_deduction_old" yaml:"standard_deduction_old"`
	StandardDeductionNew decimal.Decimal `mapstructure:"standard_deduction_new" yaml:"standard_deduction_new"`

	RSUWithholdingRate float64       `mapstructure:"rsu_withholding_rate" yaml:"rsu_withholding_rate"`
	GrossUp            GrossUpConfig `mapstructure:"gross_up" yaml:"gross_up"`

	// DeductionsOld lists the itemized deduction types available under the
	// old regime. The new regime allows the standard deduction only.
	DeductionsOld []DeductionRule `mapstructure:"deductions_old" yaml:"deductions_old"`

	// BrokerageFeeAlertRatio triggers a recommendation when brokerage fees
	// exceed this share of realized profits.
	BrokerageFeeAlertRatio float64 `mapstructure:"brokerage_fee_alert_ratio" yaml:"brokerage_fee_alert_ratio"`
}

// DefaultConfig returns the calculator defaults.
func DefaultConfig() Config {
	return Config{
		Regime:               models.RegimeNew,
		FiscalYearStartMonth: int(time.April),
		CessRate:             0.04,
		SlabsNew: []Slab{
			{Lower: decimal.Zero, Ceiling: decimal.NewFromInt(400_000), Rate: 0},
			{Lower: decimal.NewFromInt(400_000), Ceiling: decimal.NewFromInt(800_000), Rate: 0.05},
			{Lower: decimal.NewFromInt(800_000), Ceiling: decimal.NewFromInt(1_200_000), Rate: 0.10},
			{Lower: decimal.NewFromInt(1_200_000), Ceiling: decimal.NewFromInt(1_600_000), Rate: 0.15},
			{Lower: decimal.NewFromInt(1_600_000), Ceiling: decimal.NewFromInt(2_000_000), Rate: 0.20},
			{Lower: decimal.NewFromInt(2_000_000), Ceiling: decimal.NewFromInt(2_400_000), Rate: 0.25},
			{Lower: decimal.NewFromInt(2_400_000), Ceiling: decimal.Zero, Rate: 0.30},
		},
		SlabsOld: []Slab{
			{Lower: decimal.Zero, Ceiling: decimal.NewFromInt(250_000), Rate: 0},
			{Lower: decimal.NewFromInt(250_000), Ceiling: decimal.NewFromInt(500_000), Rate: 0.05},
			{Lower: decimal.NewFromInt(500_000), Ceiling: decimal.NewFromInt(1_000_000), Rate: 0.20},
			{Lower: decimal.NewFromInt(1_000_000), Ceiling: decimal.Zero, Rate: 0.30},
		},
		StandardDeductionOld: decimal.NewFromInt(50_000),
		StandardDeductionNew: decimal.NewFromInt(75_000),
		RSUWithholdingRate:   0.30,
		GrossUp: GrossUpConfig{
			Enabled:        false,
			BaseThreshold:  decimal.NewFromInt(2_400_000),
			NetAtThreshold: decimal.NewFromInt(2_088_000),
			EffectiveRate:  0.312,
		},
		DeductionsOld: []DeductionRule{
			{Name: "80C", Limit: decimal.NewFromInt(150_000), Keywords: []string{"PPF", "ELSS", "LIC", "LIFE INSURANCE", "EPF", "NSC", "TAX SAVER"}},
			{Name: "80D", Limit: decimal.NewFromInt(25_000), Keywords: []string{"HEALTH INSURANCE", "MEDICLAIM"}},
			{Name: "HRA", Limit: decimal.NewFromInt(100_000), Keywords: []string{"RENT"}},
		},
		BrokerageFeeAlertRatio: 0.30,
	}
}

// Validate reports a ConfigError for any contract violation.
func (c Config) Validate() error {
	if c.Regime != models.RegimeOld && c.Regime != models.RegimeNew {
		return enginerrors.NewConfigError("tax", "regime", c.Regime, "must be \"old\" or \"new\"")
	}
	if c.FiscalYearStartMonth < 1 || c.FiscalYearStartMonth > 12 {
		return enginerrors.NewConfigError("tax", "fiscal_year_start_month", c.FiscalYearStartMonth, "must be in 1..12")
	}
	if c.CessRate < 0 {
		return enginerrors.NewConfigError("tax", "cess_rate", c.CessRate, "must be non-negative")
	}
	if c.RSUWithholdingRate < 0 || c.RSUWithholdingRate >= 1 {
		return enginerrors.NewConfigError("tax", "rsu_withholding_rate", c.RSUWithholdingRate, "must be in [0, 1)")
	}
	if len(c.slabs()) == 0 {
		return enginerrors.NewConfigError("tax", "slabs", c.Regime, "slab table is empty")
	}
	return nil
}

// slabs returns the slab table for the configured regime.
func (c Config) slabs() []Slab {
	if c.Regime == models.RegimeOld {
		return c.SlabsOld
	}
	return c.SlabsNew
}

// standardDeduction returns the flat deduction for the configured regime.
func (c Config) standardDeduction() decimal.Decimal {
	if c.Regime == models.RegimeOld {
		return c.StandardDeductionOld
	}
	return c.StandardDeductionNew
}
