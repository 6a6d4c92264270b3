// Package config provides Viper-based hierarchical configuration management
// for the analytics engine: defaults, an optional YAML config file and
// FINLYTICS_-prefixed environment variables, in that precedence order.
package config

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"fjacquet/finlytics/internal/tax"

	"github.com/go-viper/mapstructure/v2"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Analysis struct {
		AnomalyThreshold  float64 `mapstructure:"anomaly_threshold" yaml:"anomaly_threshold"`
		ForecastHorizon   int     `mapstructure:"forecast_horizon" yaml:"forecast_horizon"`
		PositiveAbove     float64 `mapstructure:"positive_above" yaml:"positive_above"`
		CriticalBelow     float64 `mapstructure:"critical_below" yaml:"critical_below"`
		RecurringBucket   float64 `mapstructure:"recurring_bucket" yaml:"recurring_bucket"`
		TopN              int     `mapstructure:"top_n" yaml:"top_n"`
		InsightIncomePct  float64 `mapstructure:"insight_income_pct" yaml:"insight_income_pct"`
		InsightExpensePct float64 `mapstructure:"insight_expense_pct" yaml:"insight_expense_pct"`
		InsightSavingsPts float64 `mapstructure:"insight_savings_pts" yaml:"insight_savings_pts"`
		InsightVolumePct  float64 `mapstructure:"insight_volume_pct" yaml:"insight_volume_pct"`
	} `mapstructure:"analysis" yaml:"analysis"`

	Tax struct {
		Regime               string     `mapstructure:"regime" yaml:"regime"`
		FiscalYearStartMonth int        `mapstructure:"fiscal_year_start_month" yaml:"fiscal_year_start_month"`
		CessRate             float64    `mapstructure:"cess_rate" yaml:"cess_rate"`
		RSUWithholdingRate   float64    `mapstructure:"rsu_withholding_rate" yaml:"rsu_withholding_rate"`
		GrossUpEnabled       bool       `mapstructure:"gross_up_enabled" yaml:"gross_up_enabled"`
		SlabsOld             []tax.Slab `mapstructure:"slabs_old" yaml:"slabs_old"`
		SlabsNew             []tax.Slab `mapstructure:"slabs_new" yaml:"slabs_new"`
	} `mapstructure:"tax" yaml:"tax"`

	Rules struct {
		// Path to a YAML classification rule table. Empty means built-ins.
		File string `mapstructure:"file" yaml:"file"`
	} `mapstructure:"rules" yaml:"rules"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading.
func InitializeConfig() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.finlytics")
	v.AddConfigPath(".finlytics")
	v.AddConfigPath(".")

	v.SetEnvPrefix("FINLYTICS")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
		// Config file not found or invalid is OK, we'll use defaults and env vars
	}

	var config Config
	if err := v.Unmarshal(&config, viper.DecodeHook(decimalDecodeHook())); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// decimalDecodeHook lets mapstructure decode YAML numbers and strings into
// decimal.Decimal fields, which the tax slab tables use.
func decimalDecodeHook() mapstructure.DecodeHookFuncType {
	decimalType := reflect.TypeOf(decimal.Decimal{})
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if to != decimalType {
			return data, nil
		}
		switch v := data.(type) {
		case string:
			return decimal.NewFromString(v)
		case int:
			return decimal.NewFromInt(int64(v)), nil
		case int64:
			return decimal.NewFromInt(v), nil
		case float64:
			return decimal.NewFromFloat(v), nil
		default:
			return data, nil
		}
	}
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("analysis.anomaly_threshold", 2.0)
	v.SetDefault("analysis.forecast_horizon", 30)
	v.SetDefault("analysis.positive_above", 500.0)
	v.SetDefault("analysis.critical_below", -500.0)
	v.SetDefault("analysis.recurring_bucket", 100.0)
	v.SetDefault("analysis.top_n", 10)
	v.SetDefault("analysis.insight_income_pct", 5.0)
	v.SetDefault("analysis.insight_expense_pct", 5.0)
	v.SetDefault("analysis.insight_savings_pts", 3.0)
	v.SetDefault("analysis.insight_volume_pct", 15.0)

	taxDefaults := tax.DefaultConfig()
	v.SetDefault("tax.regime", taxDefaults.Regime)
	v.SetDefault("tax.fiscal_year_start_month", taxDefaults.FiscalYearStartMonth)
	v.SetDefault("tax.cess_rate", taxDefaults.CessRate)
	v.SetDefault("tax.rsu_withholding_rate", taxDefaults.RSUWithholdingRate)
	v.SetDefault("tax.gross_up_enabled", taxDefaults.GrossUp.Enabled)

	v.SetDefault("rules.file", "")
}

// validateConfig validates the configuration values.
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}
	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if config.Analysis.AnomalyThreshold < 0 {
		return fmt.Errorf("analysis.anomaly_threshold must be non-negative, got: %f", config.Analysis.AnomalyThreshold)
	}
	if config.Analysis.ForecastHorizon < 0 {
		return fmt.Errorf("analysis.forecast_horizon must be non-negative, got: %d", config.Analysis.ForecastHorizon)
	}
	if config.Analysis.RecurringBucket < 0 {
		return fmt.Errorf("analysis.recurring_bucket must be non-negative, got: %f", config.Analysis.RecurringBucket)
	}

	if config.Tax.Regime != "old" && config.Tax.Regime != "new" {
		return fmt.Errorf("tax.regime must be 'old' or 'new', got: %s", config.Tax.Regime)
	}
	if config.Tax.FiscalYearStartMonth < 1 || config.Tax.FiscalYearStartMonth > 12 {
		return fmt.Errorf("tax.fiscal_year_start_month must be between 1 and 12, got: %d", config.Tax.FiscalYearStartMonth)
	}

	return nil
}

// TaxConfig builds the tax calculator configuration: engine defaults
// overridden by whatever the application configuration sets.
func (c *Config) TaxConfig() tax.Config {
	cfg := tax.DefaultConfig()
	cfg.Regime = c.Tax.Regime
	cfg.FiscalYearStartMonth = c.Tax.FiscalYearStartMonth
	cfg.CessRate = c.Tax.CessRate
	cfg.RSUWithholdingRate = c.Tax.RSUWithholdingRate
	cfg.GrossUp.Enabled = c.Tax.GrossUpEnabled
	if len(c.Tax.SlabsOld) > 0 {
		cfg.SlabsOld = c.Tax.SlabsOld
	}
	if len(c.Tax.SlabsNew) > 0 {
		cfg.SlabsNew = c.Tax.SlabsNew
	}
	return cfg
}

// FiscalYearStartMonth returns the configured fiscal year start as a
// time.Month.
func (c *Config) FiscalYearStartMonth() time.Month {
	return time.Month(c.Tax.FiscalYearStartMonth)
}

// ConfigureLoggingFromConfig configures logging based on the Config struct.
func ConfigureLoggingFromConfig(config *Config) *logrus.Logger {
	logger := logrus.New()

	logLevel, err := logrus.ParseLevel(strings.ToLower(config.Log.Level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", config.Log.Level)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if strings.ToLower(config.Log.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}
