package root_test

import (
	"testing"

	"fjacquet/finlytics/cmd/root"
	"fjacquet/finlytics/internal/models"

	"github.com/stretchr/testify/assert"
)

func init() {
	root.Init()
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "finlytics", root.Cmd.Use)
	assert.Contains(t, root.Cmd.Short, "analyze personal finance transactions")
	assert.NotNil(t, root.Cmd.Run)
	assert.NotNil(t, root.Cmd.PersistentPreRun)
}

func TestRootCommand_PersistentFlags(t *testing.T) {
	inputFlag := root.Cmd.PersistentFlags().Lookup("input")
	if assert.NotNil(t, inputFlag) {
		assert.Equal(t, "i", inputFlag.Shorthand)
		assert.Equal(t, "", inputFlag.DefValue)
	}

	formatFlag := root.Cmd.PersistentFlags().Lookup("format")
	if assert.NotNil(t, formatFlag) {
		assert.Equal(t, "f", formatFlag.Shorthand)
		assert.Equal(t, "text", formatFlag.DefValue)
	}

	assert.NotNil(t, root.Cmd.PersistentFlags().Lookup("from"))
	assert.NotNil(t, root.Cmd.PersistentFlags().Lookup("to"))
}

func TestLoadTransactions_NoInput(t *testing.T) {
	original := root.SharedFlags.Input
	defer func() { root.SharedFlags.Input = original }()

	root.SharedFlags.Input = ""
	_, err := root.LoadTransactions()
	assert.Error(t, err)
}

func TestDateRange_DefaultsToTransactionSpan(t *testing.T) {
	originalFrom, originalTo := root.SharedFlags.From, root.SharedFlags.To
	defer func() {
		root.SharedFlags.From, root.SharedFlags.To = originalFrom, originalTo
	}()

	txns := []models.Transaction{
		{DateKey: "2024-03-15"},
		{DateKey: "2024-01-02"},
		{DateKey: "2024-02-10"},
		{}, // undated records never contribute a bound
	}

	root.SharedFlags.From, root.SharedFlags.To = "", ""
	start, end := root.DateRange(txns)
	assert.Equal(t, "2024-01-02", start)
	assert.Equal(t, "2024-03-15", end)

	root.SharedFlags.From = "2024-02-01"
	start, end = root.DateRange(txns)
	assert.Equal(t, "2024-02-01", start)
	assert.Equal(t, "2024-03-15", end)

	root.SharedFlags.To = "2024-02-28"
	start, end = root.DateRange(txns)
	assert.Equal(t, "2024-02-01", start)
	assert.Equal(t, "2024-02-28", end)
}

func TestEngineLogger(t *testing.T) {
	assert.NotNil(t, root.EngineLogger())
}
