package config

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

var (
	envOnce sync.Once

	// Logger is the shared CLI logger, reconfigured once the environment
	// and the viper configuration are loaded.
	Logger = logrus.New()
)

// LoadEnv loads a .env file into the process environment, checking the
// working directory and its parent. Safe to call more than once; only the
// first call does anything.
func LoadEnv() {
	envOnce.Do(func() {
		for _, candidate := range []string{".env", filepath.Join("..", ".env")} {
			if _, err := os.Stat(candidate); err != nil {
				continue
			}
			if err := godotenv.Load(candidate); err != nil {
				Logger.Warnf("Error loading %s: %v", candidate, err)
				return
			}
			Logger.Infof("Loaded environment variables from %s", candidate)
			ConfigureLogging()
			return
		}
		Logger.Debug("No .env file found, using environment variables")
	})
}

// ConfigureLogging applies LOG_LEVEL and LOG_FORMAT from the environment to
// the shared logger and returns it. Used before the viper configuration is
// available; ConfigureLoggingFromConfig takes over afterwards.
func ConfigureLogging() *logrus.Logger {
	level, err := logrus.ParseLevel(strings.ToLower(GetEnv("LOG_LEVEL", "info")))
	if err != nil {
		Logger.Warnf("Invalid LOG_LEVEL, using 'info'")
		level = logrus.InfoLevel
	}
	Logger.SetLevel(level)

	if strings.EqualFold(os.Getenv("LOG_FORMAT"), "json") {
		Logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return Logger
}

// GetEnv reads an environment variable with a fallback for unset keys.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
