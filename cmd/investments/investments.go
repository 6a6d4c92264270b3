// Package investments handles the investment performance command
package investments

import (
	"fjacquet/finlytics/cmd/root"
	"fjacquet/finlytics/internal/classify"
	"fjacquet/finlytics/internal/investment"

	"github.com/spf13/cobra"
)

var (
	rulesFile     string
	initRulesFile string
)

// Cmd represents the investments command
var Cmd = &cobra.Command{
	Use:   "investments",
	Short: "Calculate investment performance from transaction flows",
	Long: `Investments identifies investment-tagged transactions, classifies
them into buys, sells, dividends, fees and vestings, and aggregates capital
deployed, realized profit and loss, and per-platform performance.`,
	Run: investmentsFunc,
}

func init() {
	Cmd.Flags().StringVar(&rulesFile, "rules", "", "YAML file with custom investment kind rules")
	Cmd.Flags().StringVar(&initRulesFile, "init-rules", "", "Write the built-in kind rules to a YAML file and exit")
}

func investmentsFunc(cmd *cobra.Command, args []string) {
	if initRulesFile != "" {
		if err := classify.SaveRules(classify.DefaultInvestmentKindRules(), initRulesFile); err != nil {
			root.Log.Fatalf("Error writing rule file: %v", err)
		}
		root.Log.Infof("Wrote built-in investment kind rules to %s", initRulesFile)
		return
	}

	txns, err := root.LoadTransactions()
	if err != nil {
		root.Log.Fatalf("Error loading transactions: %v", err)
	}

	var kindRules *classify.RuleSet
	file := rulesFile
	if file == "" && root.AppConfig != nil {
		file = root.AppConfig.Rules.File
	}
	if file != "" {
		kindRules, err = classify.LoadRules(file)
		if err != nil {
			root.Log.Fatalf("Error loading rule file: %v", err)
		}
	}

	calc := investment.New(nil, kindRules, root.EngineLogger())
	root.Render(calc.Calculate(txns))
}
