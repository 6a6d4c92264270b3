// Package export handles the transaction export command
package export

import (
	"fjacquet/finlytics/cmd/root"
	"fjacquet/finlytics/internal/importer"

	"github.com/spf13/cobra"
)

var output string

// Cmd represents the export command
var Cmd = &cobra.Command{
	Use:   "export",
	Short: "Export normalized transactions to a CSV file",
	Long: `Export reads the input file, runs it through normalization
(defaulted categories, parsed dates, canonical types) and writes the
cleaned transactions back out as CSV.`,
	Run: exportFunc,
}

func init() {
	Cmd.Flags().StringVarP(&output, "output", "o", "", "Destination CSV file")
}

func exportFunc(cmd *cobra.Command, args []string) {
	if output == "" {
		root.Log.Fatal("No output file given, use --output")
	}

	txns, err := root.LoadTransactions()
	if err != nil {
		root.Log.Fatalf("Error loading transactions: %v", err)
	}

	if err := importer.ExportTransactions(txns, output, root.EngineLogger()); err != nil {
		root.Log.Fatalf("Error writing transactions: %v", err)
	}
}
