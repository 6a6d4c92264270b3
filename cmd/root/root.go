// Package root contains the root command for the application
package root

import (
	"fmt"
	"os"

	"fjacquet/finlytics/internal/config"
	"fjacquet/finlytics/internal/importer"
	"fjacquet/finlytics/internal/logging"
	"fjacquet/finlytics/internal/models"
	"fjacquet/finlytics/internal/report"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Input  string
	Format string
	From   string
	To     string
}

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// AppConfig is the loaded application configuration
	AppConfig *config.Config

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "finlytics",
		Short: "A CLI tool to analyze personal finance transactions.",
		Long: `finlytics reads a transaction CSV file and runs a set of deterministic
analyzers over it: period summaries, category trends, recurring patterns,
anomalies, cash flow forecasts, investment performance, tax planning and
natural-language insights.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to finlytics!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnv()
			Log = config.ConfigureLogging()

			cfg, err := config.InitializeConfig()
			if err != nil {
				Log.Fatalf("Failed to initialize configuration: %v", err)
			}
			AppConfig = cfg
			Log = config.ConfigureLoggingFromConfig(cfg)

			if delim := os.Getenv("CSV_DELIMITER"); delim != "" {
				Log.WithField("delimiter", delim).Debug("Setting CSV delimiter from environment")
				importer.SetDelimiter([]rune(delim)[0])
			}
		},
	}

	// SharedFlags holds common flags accessible to all commands
	SharedFlags = CommonFlags{}
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input transaction CSV file")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Format, "format", "f", report.FormatText, "Output format (text or json)")
	Cmd.PersistentFlags().StringVar(&SharedFlags.From, "from", "", "Start date key (YYYY-MM-DD, inclusive)")
	Cmd.PersistentFlags().StringVar(&SharedFlags.To, "to", "", "End date key (YYYY-MM-DD, inclusive)")
}

// EngineLogger adapts the CLI logger for the engine packages.
func EngineLogger() logging.Logger {
	return logging.NewLogrusAdapterFromLogger(Log)
}

// LoadTransactions imports the transactions named by the --input flag.
func LoadTransactions() ([]models.Transaction, error) {
	if SharedFlags.Input == "" {
		return nil, fmt.Errorf("no input file given, use --input")
	}
	txns, _, err := importer.ImportTransactions(SharedFlags.Input, EngineLogger())
	return txns, err
}

// DateRange returns the --from/--to range. A missing bound defaults to the
// corresponding end of the dated transaction span.
func DateRange(txns []models.Transaction) (start, end string) {
	start, end = SharedFlags.From, SharedFlags.To
	if start != "" && end != "" {
		return start, end
	}
	for _, txn := range txns {
		if !txn.HasDate() {
			continue
		}
		if SharedFlags.From == "" && (start == "" || txn.DateKey < start) {
			start = txn.DateKey
		}
		if SharedFlags.To == "" && txn.DateKey > end {
			end = txn.DateKey
		}
	}
	return start, end
}

// Render writes a result structure to stdout in the requested format.
func Render(result interface{}) {
	out, err := report.NewGenerator(EngineLogger()).Generate(result, SharedFlags.Format)
	if err != nil {
		Log.Fatalf("Failed to render report: %v", err)
	}
	fmt.Print(string(out))
	if SharedFlags.Format == report.FormatJSON {
		fmt.Println()
	}
}
