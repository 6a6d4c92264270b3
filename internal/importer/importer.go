// Package importer reads transaction CSV files into normalized transactions
// and writes them back out. All file I/O lives here; the analyzers only ever
// see the normalized in-memory collection.
package importer

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"fjacquet/finlytics/internal/logging"
	"fjacquet/finlytics/internal/models"
	"fjacquet/finlytics/internal/normalize"

	"github.com/gocarina/gocsv"
)

// Delimiter is the CSV delimiter used for both import and export.
var Delimiter rune = ','

func init() {
	if val := os.Getenv("CSV_DELIMITER"); val != "" {
		SetDelimiter([]rune(val)[0])
	}
}

// SetDelimiter sets the delimiter for CSV input and output.
func SetDelimiter(delim rune) {
	Delimiter = delim
	gocsv.TagSeparator = fmt.Sprintf("%c", delim)
}

// ReadCSVFile reads CSV data into a slice of structs using gocsv.
func ReadCSVFile[TCSVRow any](filePath string, logger logging.Logger) ([]TCSVRow, error) {
	if logger == nil {
		logger = logging.Nop()
	}
	logger.Info("Reading CSV file", logging.Field{Key: "file", Value: filePath})

	file, err := os.Open(filePath)
	if err != nil {
		logger.WithError(err).Error("Failed to open CSV file")
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close file")
		}
	}()

	var rows []TCSVRow
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		logger.WithError(err).Error("Failed to parse CSV file")
		return nil, fmt.Errorf("error parsing CSV file: %w", err)
	}

	logger.Info("Successfully read CSV data", logging.Field{Key: "count", Value: len(rows)})
	return rows, nil
}

// ImportTransactions reads a transaction CSV file and normalizes it. The
// error slice carries per-record normalization diagnostics; a non-nil error
// return means the file itself could not be read.
func ImportTransactions(filePath string, logger logging.Logger) ([]models.Transaction, []error, error) {
	if logger == nil {
		logger = logging.Nop()
	}

	raw, err := ReadCSVFile[normalize.RawTransaction](filePath, logger)
	if err != nil {
		return nil, nil, err
	}

	txns, diags := normalize.New(logger).Normalize(raw)
	for _, diag := range diags {
		logger.WithError(diag).Warn("Record defaulted during normalization")
	}

	logger.Info("Imported transactions",
		logging.Field{Key: "file", Value: filePath},
		logging.Field{Key: "count", Value: len(txns)},
		logging.Field{Key: "defaulted", Value: len(diags)})
	return txns, diags, nil
}

// exportRow is the CSV shape for transaction export. Mirrors the import
// columns so an exported file round-trips through ImportTransactions.
type exportRow struct {
	Date        string `csv:"Date"`
	Amount      string `csv:"Amount"`
	Type        string `csv:"Type"`
	Category    string `csv:"Category"`
	Subcategory string `csv:"Subcategory"`
	Description string `csv:"Description"`
	Note        string `csv:"Note"`
	Account     string `csv:"Account"`
}

// ExportTransactions writes normalized transactions to a CSV file.
func ExportTransactions(txns []models.Transaction, csvFile string, logger logging.Logger) error {
	if txns == nil {
		return fmt.Errorf("cannot write nil transactions to CSV")
	}
	if logger == nil {
		logger = logging.Nop()
	}

	logger.Info("Writing transactions to CSV file",
		logging.Field{Key: "file", Value: csvFile},
		logging.Field{Key: "count", Value: len(txns)})

	dir := filepath.Dir(csvFile)
	if err := os.MkdirAll(dir, 0750); err != nil {
		logger.WithError(err).Error("Failed to create directory")
		return fmt.Errorf("error creating directory: %w", err)
	}

	file, err := os.Create(csvFile)
	if err != nil {
		logger.WithError(err).Error("Failed to create CSV file")
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close file")
		}
	}()

	rows := make([]exportRow, 0, len(txns))
	for _, txn := range txns {
		rows = append(rows, exportRow{
			Date:        txn.DateKey,
			Amount:      txn.Amount.StringFixed(2),
			Type:        string(txn.Type),
			Category:    txn.Category,
			Subcategory: txn.Subcategory,
			Description: txn.Description,
			Note:        txn.Note,
			Account:     txn.Account,
		})
	}

	csvWriter := csv.NewWriter(file)
	csvWriter.Comma = Delimiter
	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		logger.WithError(err).Error("Failed to marshal transactions to CSV")
		return fmt.Errorf("error writing CSV data: %w", err)
	}

	logger.Info("Successfully wrote transactions to CSV file",
		logging.Field{Key: "file", Value: csvFile},
		logging.Field{Key: "count", Value: len(txns)})
	return nil
}
