package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fjacquet/finlytics/cmd/anomalies"
	"fjacquet/finlytics/cmd/export"
	"fjacquet/finlytics/cmd/forecast"
	"fjacquet/finlytics/cmd/insights"
	"fjacquet/finlytics/cmd/investments"
	"fjacquet/finlytics/cmd/recurring"
	"fjacquet/finlytics/cmd/root"
	"fjacquet/finlytics/cmd/summary"
	"fjacquet/finlytics/cmd/tax"
	"fjacquet/finlytics/cmd/trends"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func init() {
	// 1. Load environment variables silently first (no logging yet)
	loadEnvSilently()

	// 2. Configure global log level before any logging happens
	configureLogLevelDirectly()

	// 3. Initialize root command and flags
	root.Init()

	// 4. Add all subcommands
	root.Cmd.AddCommand(summary.Cmd)
	root.Cmd.AddCommand(trends.Cmd)
	root.Cmd.AddCommand(recurring.Cmd)
	root.Cmd.AddCommand(anomalies.Cmd)
	root.Cmd.AddCommand(forecast.Cmd)
	root.Cmd.AddCommand(investments.Cmd)
	root.Cmd.AddCommand(tax.Cmd)
	root.Cmd.AddCommand(insights.Cmd)
	root.Cmd.AddCommand(export.Cmd)
}

// loadEnvSilently loads environment variables without logging anything
func loadEnvSilently() {
	envFile := ".env"
	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		envFile = filepath.Join("..", ".env")
		if _, err := os.Stat(envFile); os.IsNotExist(err) {
			return
		}
	}
	_ = godotenv.Load(envFile)
}

// configureLogLevelDirectly sets the global log level for all logrus
// instances before any command output happens.
func configureLogLevelDirectly() {
	logLevelStr := os.Getenv("LOG_LEVEL")
	if logLevelStr == "" {
		logLevelStr = "info"
	}

	logLevel, err := logrus.ParseLevel(strings.ToLower(logLevelStr))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
