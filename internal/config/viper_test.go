package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeConfig_Defaults(t *testing.T) {
	clearTestEnvVars(t)

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "info", config.Log.Level)
	assert.Equal(t, "text", config.Log.Format)
	assert.Equal(t, 2.0, config.Analysis.AnomalyThreshold)
	assert.Equal(t, 30, config.Analysis.ForecastHorizon)
	assert.Equal(t, 500.0, config.Analysis.PositiveAbove)
	assert.Equal(t, -500.0, config.Analysis.CriticalBelow)
	assert.Equal(t, 100.0, config.Analysis.RecurringBucket)
	assert.Equal(t, 10, config.Analysis.TopN)
	assert.Equal(t, 5.0, config.Analysis.InsightIncomePct)
	assert.Equal(t, 15.0, config.Analysis.InsightVolumePct)
	assert.Equal(t, "new", config.Tax.Regime)
	assert.Equal(t, 4, config.Tax.FiscalYearStartMonth)
	assert.Equal(t, 0.04, config.Tax.CessRate)
	assert.Equal(t, 0.30, config.Tax.RSUWithholdingRate)
	assert.False(t, config.Tax.GrossUpEnabled)
	assert.Equal(t, "", config.Rules.File)
}

func TestInitializeConfig_EnvironmentVariables(t *testing.T) {
	clearTestEnvVars(t)

	t.Setenv("FINLYTICS_LOG_LEVEL", "debug")
	t.Setenv("FINLYTICS_LOG_FORMAT", "json")
	t.Setenv("FINLYTICS_ANALYSIS_ANOMALY_THRESHOLD", "3.5")
	t.Setenv("FINLYTICS_ANALYSIS_FORECAST_HORIZON", "90")
	t.Setenv("FINLYTICS_TAX_REGIME", "old")

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "debug", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
	assert.Equal(t, 3.5, config.Analysis.AnomalyThreshold)
	assert.Equal(t, 90, config.Analysis.ForecastHorizon)
	assert.Equal(t, "old", config.Tax.Regime)
}

func TestInitializeConfig_ConfigFile(t *testing.T) {
	clearTestEnvVars(t)

	tempDir := t.TempDir()
	configFile := filepath.Join(tempDir, "config.yaml")

	configContent := `
log:
  level: "warn"
analysis:
  anomaly_threshold: 2.5
  top_n: 5
tax:
  regime: "old"
  fiscal_year_start_month: 1
  slabs_new:
    - lower: 0
      ceiling: 500000
      rate: 0
    - lower: 500000
      ceiling: 0
      rate: 0.1
rules:
  file: "rules.yaml"
`

	require.NoError(t, os.WriteFile(configFile, []byte(configContent), 0644))
	chdir(t, tempDir)

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "warn", config.Log.Level)
	assert.Equal(t, 2.5, config.Analysis.AnomalyThreshold)
	assert.Equal(t, 5, config.Analysis.TopN)
	assert.Equal(t, "old", config.Tax.Regime)
	assert.Equal(t, 1, config.Tax.FiscalYearStartMonth)
	assert.Equal(t, "rules.yaml", config.Rules.File)
	assert.Equal(t, time.January, config.FiscalYearStartMonth())

	// Slabs from the file replace the built-in new-regime table.
	taxCfg := config.TaxConfig()
	require.Len(t, taxCfg.SlabsNew, 2)
	assert.Equal(t, 0.1, taxCfg.SlabsNew[1].Rate)
	// Untouched defaults survive the overlay.
	assert.Len(t, taxCfg.SlabsOld, 4)
	assert.True(t, taxCfg.StandardDeductionNew.Equal(decimal.NewFromInt(75_000)))
}

func TestInitializeConfig_HierarchicalPrecedence(t *testing.T) {
	clearTestEnvVars(t)

	tempDir := t.TempDir()
	configFile := filepath.Join(tempDir, "config.yaml")

	configContent := `
log:
  level: "warn"
analysis:
  forecast_horizon: 60
`

	require.NoError(t, os.WriteFile(configFile, []byte(configContent), 0644))
	chdir(t, tempDir)

	t.Setenv("FINLYTICS_LOG_LEVEL", "error")

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "error", config.Log.Level)         // env var wins
	assert.Equal(t, 60, config.Analysis.ForecastHorizon) // config file value
}

func TestValidateConfig_InvalidValues(t *testing.T) {
	tests := []struct {
		name         string
		modifyConfig func(*Config)
		expectError  string
	}{
		{
			name:         "invalid log level",
			modifyConfig: func(c *Config) { c.Log.Level = "invalid" },
			expectError:  "invalid log level",
		},
		{
			name:         "invalid log format",
			modifyConfig: func(c *Config) { c.Log.Format = "invalid" },
			expectError:  "invalid log format",
		},
		{
			name:         "negative anomaly threshold",
			modifyConfig: func(c *Config) { c.Analysis.AnomalyThreshold = -1 },
			expectError:  "analysis.anomaly_threshold must be non-negative",
		},
		{
			name:         "negative forecast horizon",
			modifyConfig: func(c *Config) { c.Analysis.ForecastHorizon = -5 },
			expectError:  "analysis.forecast_horizon must be non-negative",
		},
		{
			name:         "unknown tax regime",
			modifyConfig: func(c *Config) { c.Tax.Regime = "flat" },
			expectError:  "tax.regime must be 'old' or 'new'",
		},
		{
			name:         "fiscal year start month out of range",
			modifyConfig: func(c *Config) { c.Tax.FiscalYearStartMonth = 13 },
			expectError:  "tax.fiscal_year_start_month must be between 1 and 12",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := validBaseConfig()
			tt.modifyConfig(config)
			err := validateConfig(config)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectError)
		})
	}
}

func TestConfigureLoggingFromConfig(t *testing.T) {
	config := validBaseConfig()
	config.Log.Level = "debug"
	config.Log.Format = "json"

	logger := ConfigureLoggingFromConfig(config)
	assert.NotNil(t, logger)
	assert.Equal(t, "debug", logger.GetLevel().String())

	// An unparseable level falls back to info instead of failing.
	config.Log.Level = "nonsense"
	logger = ConfigureLoggingFromConfig(config)
	assert.Equal(t, "info", logger.GetLevel().String())
}

func validBaseConfig() *Config {
	config := &Config{}
	config.Log.Level = "info"
	config.Log.Format = "text"
	config.Tax.Regime = "new"
	config.Tax.FiscalYearStartMonth = 4
	return config
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	originalDir, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, os.Chdir(originalDir))
	})
	require.NoError(t, os.Chdir(dir))
}

func clearTestEnvVars(t *testing.T) {
	t.Helper()
	envVars := []string{
		"FINLYTICS_LOG_LEVEL",
		"FINLYTICS_LOG_FORMAT",
		"FINLYTICS_ANALYSIS_ANOMALY_THRESHOLD",
		"FINLYTICS_ANALYSIS_FORECAST_HORIZON",
		"FINLYTICS_ANALYSIS_RECURRING_BUCKET",
		"FINLYTICS_ANALYSIS_TOP_N",
		"FINLYTICS_TAX_REGIME",
		"FINLYTICS_TAX_FISCAL_YEAR_START_MONTH",
		"FINLYTICS_TAX_CESS_RATE",
		"FINLYTICS_TAX_RSU_WITHHOLDING_RATE",
		"FINLYTICS_RULES_FILE",
	}
	for _, envVar := range envVars {
		t.Setenv(envVar, "")
		require.NoError(t, os.Unsetenv(envVar))
	}
}
