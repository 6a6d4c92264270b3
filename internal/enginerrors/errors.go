// Package enginerrors defines the error types returned by the analytics
// engine. Data sparsity (empty collections, too few samples) is never an
// error; only caller contract violations and normalization diagnostics are.
package enginerrors

import "fmt"

// ConfigError represents a configuration contract violation by the caller,
// such as a negative anomaly threshold or a non-positive forecast horizon.
type ConfigError struct {
	Analyzer string
	Param    string
	Value    interface{}
	Reason   string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: invalid %s=%v: %s", e.Analyzer, e.Param, e.Value, e.Reason)
}

// NewConfigError builds a ConfigError for the given analyzer and parameter.
func NewConfigError(analyzer, param string, value interface{}, reason string) *ConfigError {
	return &ConfigError{Analyzer: analyzer, Param: param, Value: value, Reason: reason}
}

// RecordError is a per-record normalization diagnostic. One bad record never
// aborts the whole computation; the record is default-substituted and the
// diagnostic collected for the caller to log.
type RecordError struct {
	Index int
	Field string
	Value string
	Err   error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("record %d: failed to normalize %s='%s': %v",
		e.Index, e.Field, e.Value, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}
