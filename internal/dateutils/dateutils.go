// Package dateutils provides common date and time operations used throughout
// the application. The analytics engine works on calendar days: range
// filtering uses YYYY-MM-DD string keys, month bucketing uses YYYY-MM keys,
// and fiscal years start at a configurable month.
package dateutils

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Common date format constants used throughout the application
const (
	DateLayoutISO      = "2006-01-02"
	DateLayoutEuropean = "02.01.2006"
	DateLayoutUS       = "01/02/2006"
	DateLayoutFull     = "2006-01-02 15:04:05"
	MonthLayout        = "2006-01"
)

// CommonFormats is a list of standard formats to try when parsing dates
var CommonFormats = []string{
	DateLayoutISO,
	DateLayoutEuropean,
	DateLayoutFull,
	"2006-01-02T15:04:05Z",
	"02/01/2006",
	DateLayoutUS,
	"02-01-2006",
	"2006/01/02",
	"2-Jan-2006",
	"Jan 2, 2006",
	"January 2, 2006",
}

// ParseDate attempts to parse a date string using multiple common formats.
// Returns the parsed time and the detected format.
func ParseDate(dateStr string) (time.Time, string, error) {
	dateStr = strings.TrimSpace(dateStr)

	for _, format := range CommonFormats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return t, format, nil
		}
	}

	return time.Time{}, "", fmt.Errorf("unable to parse date: %s", dateStr)
}

// DateKey returns the YYYY-MM-DD key for a date. Keys compare lexically in
// chronological order, which lets range filters avoid timezone arithmetic.
func DateKey(date time.Time) string {
	return date.Format(DateLayoutISO)
}

// MonthKey returns the YYYY-MM bucket key for a date.
func MonthKey(date time.Time) string {
	return date.Format(MonthLayout)
}

// DaysBetween returns the whole number of days from a to b, by calendar day.
func DaysBetween(a, b time.Time) int {
	ad := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bd := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(bd.Sub(ad).Hours() / 24)
}

// StartOfMonth returns the first day of the month for a given date
func StartOfMonth(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
}

// EndOfMonth returns the last day of the month for a given date
func EndOfMonth(date time.Time) time.Time {
	return StartOfMonth(date).AddDate(0, 1, -1)
}

// FiscalYear identifies the 12-month accounting window a date falls in, for
// a fiscal year starting at startMonth (1-12). The label names the calendar
// year the fiscal year begins in, e.g. "FY2024-25" for startMonth=4 and any
// date from 2024-04-01 through 2025-03-31.
func FiscalYear(date time.Time, startMonth time.Month) (label string, start, end time.Time) {
	startYear := date.Year()
	if date.Month() < startMonth {
		startYear--
	}
	start = time.Date(startYear, startMonth, 1, 0, 0, 0, 0, time.UTC)
	end = start.AddDate(1, 0, -1)
	if startMonth == time.January {
		label = fmt.Sprintf("FY%d", startYear)
	} else {
		label = fmt.Sprintf("FY%d-%02d", startYear, (startYear+1)%100)
	}
	return label, start, end
}

// FiscalYearLabel returns just the label for the fiscal year containing date.
func FiscalYearLabel(date time.Time, startMonth time.Month) string {
	label, _, _ := FiscalYear(date, startMonth)
	return label
}

// MonthsRemainingInFiscalYear counts the whole months after the month of
// date, up to and including the last month of its fiscal year.
func MonthsRemainingInFiscalYear(date time.Time, startMonth time.Month) int {
	_, _, end := FiscalYear(date, startMonth)
	months := (end.Year()-date.Year())*12 + int(end.Month()) - int(date.Month())
	if months < 0 {
		return 0
	}
	return months
}

// SortedMonthKeys returns the keys of a month-bucketed map in chronological
// order. YYYY-MM keys sort lexically.
func SortedMonthKeys[V any](buckets map[string]V) []string {
	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
