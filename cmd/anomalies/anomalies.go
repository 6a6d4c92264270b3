// Package anomalies handles the anomaly detection command
package anomalies

import (
	"fjacquet/finlytics/cmd/root"
	"fjacquet/finlytics/internal/anomaly"

	"github.com/spf13/cobra"
)

var threshold float64

// Cmd represents the anomalies command
var Cmd = &cobra.Command{
	Use:   "anomalies",
	Short: "Flag transactions with unusually large amounts",
	Long: `Anomalies flags transactions whose magnitude exceeds a configurable
number of standard deviations above the mean of the collection.`,
	Run: anomaliesFunc,
}

func init() {
	Cmd.Flags().Float64VarP(&threshold, "threshold", "t", 0, "Standard deviation multiplier (default from configuration)")
}

func anomaliesFunc(cmd *cobra.Command, args []string) {
	txns, err := root.LoadTransactions()
	if err != nil {
		root.Log.Fatalf("Error loading transactions: %v", err)
	}

	th := threshold
	if th == 0 && root.AppConfig != nil {
		th = root.AppConfig.Analysis.AnomalyThreshold
	}

	anomalies, err := anomaly.Detect(txns, th)
	if err != nil {
		root.Log.Fatalf("Error detecting anomalies: %v", err)
	}
	root.Render(anomalies)
}
