package logging

import (
	"strings"

	"github.com/sirupsen/logrus"
)

// LogrusAdapter backs the Logger interface with a logrus entry. Field
// attachment (WithError, WithField) derives new adapters from the same
// underlying logger, so configuration is shared and attachment is cheap.
type LogrusAdapter struct {
	entry *logrus.Entry
}

// NewLogrusAdapter builds a standalone adapter from a level name ("debug",
// "info", "warn", "error") and a format ("text" or "json"). An unknown
// level falls back to info rather than failing.
func NewLogrusAdapter(level, format string) Logger {
	logger := logrus.New()
	logger.SetLevel(parseLevel(logger, level))
	logger.SetFormatter(formatterFor(format))
	return &LogrusAdapter{entry: logrus.NewEntry(logger)}
}

// NewLogrusAdapterFromLogger wraps an already configured logrus.Logger,
// typically the CLI's shared instance. A nil logger gets a fresh one.
func NewLogrusAdapterFromLogger(logger *logrus.Logger) Logger {
	if logger == nil {
		logger = logrus.New()
	}
	return &LogrusAdapter{entry: logrus.NewEntry(logger)}
}

func parseLevel(logger *logrus.Logger, level string) logrus.Level {
	parsed, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", level)
		return logrus.InfoLevel
	}
	return parsed
}

func formatterFor(format string) logrus.Formatter {
	if strings.ToLower(format) == "json" {
		return &logrus.JSONFormatter{}
	}
	return &logrus.TextFormatter{FullTimestamp: true}
}

func (l *LogrusAdapter) Debug(msg string, fields ...Field) {
	l.entry.WithFields(toLogrusFields(fields)).Debug(msg)
}

func (l *LogrusAdapter) Info(msg string, fields ...Field) {
	l.entry.WithFields(toLogrusFields(fields)).Info(msg)
}

func (l *LogrusAdapter) Warn(msg string, fields ...Field) {
	l.entry.WithFields(toLogrusFields(fields)).Warn(msg)
}

func (l *LogrusAdapter) Error(msg string, fields ...Field) {
	l.entry.WithFields(toLogrusFields(fields)).Error(msg)
}

func (l *LogrusAdapter) WithError(err error) Logger {
	return &LogrusAdapter{entry: l.entry.WithError(err)}
}

func (l *LogrusAdapter) WithField(key string, value interface{}) Logger {
	return &LogrusAdapter{entry: l.entry.WithField(key, value)}
}

func toLogrusFields(fields []Field) logrus.Fields {
	out := make(logrus.Fields, len(fields))
	for _, f := range fields {
		out[f.Key] = f.Value
	}
	return out
}
