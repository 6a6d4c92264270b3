// Package normalize turns raw imported records into canonical, fully
// defaulted transactions. Every downstream analyzer assumes completeness:
// a missing category becomes "Uncategorized", a missing amount becomes zero,
// and an unparseable date leaves an empty date key so the record is excluded
// from date-range filters. One bad record never aborts the batch.
package normalize

import (
	"fmt"
	"strings"

	"fjacquet/finlytics/internal/dateutils"
	"fjacquet/finlytics/internal/enginerrors"
	"fjacquet/finlytics/internal/logging"
	"fjacquet/finlytics/internal/models"

	"github.com/shopspring/decimal"
)

// DefaultCategory is substituted when a record carries no category.
const DefaultCategory = "Uncategorized"

// RawTransaction is a transaction record as imported, before validation and
// defaulting. All fields are strings; the importer maps CSV columns onto it.
type RawTransaction struct {
	Date        string `csv:"Date"`
	Amount      string `csv:"Amount"`
	Type        string `csv:"Type"`
	Category    string `csv:"Category"`
	Subcategory string `csv:"Subcategory"`
	Description string `csv:"Description"`
	Note        string `csv:"Note"`
	Account     string `csv:"Account"`
}

// Normalizer validates and defaults raw records.
type Normalizer struct {
	logger logging.Logger
}

// New creates a Normalizer. A nil-safe no-op logger is used when logger is nil.
func New(logger logging.Logger) *Normalizer {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Normalizer{logger: logger}
}

// Normalize converts a batch of raw records into canonical transactions.
// The returned diagnostics list one RecordError per unparseable field;
// absent optional fields (category, amount) default silently. The
// transaction slice always has the same length and order as the input.
func (n *Normalizer) Normalize(raw []RawTransaction) ([]models.Transaction, []error) {
	txns := make([]models.Transaction, 0, len(raw))
	var diags []error

	for i, r := range raw {
		txn, errs := n.normalizeOne(i, r)
		txns = append(txns, txn)
		diags = append(diags, errs...)
	}

	if len(diags) > 0 {
		n.logger.Warn("normalized batch with defaulted records",
			logging.Field{Key: "records", Value: len(raw)},
			logging.Field{Key: "diagnostics", Value: len(diags)})
	}
	return txns, diags
}

func (n *Normalizer) normalizeOne(index int, r RawTransaction) (models.Transaction, []error) {
	var errs []error

	txn := models.Transaction{
		Category:    strings.TrimSpace(r.Category),
		Subcategory: strings.TrimSpace(r.Subcategory),
		Description: strings.TrimSpace(r.Description),
		Note:        strings.TrimSpace(r.Note),
		Account:     strings.TrimSpace(r.Account),
	}

	if txn.Category == "" {
		txn.Category = DefaultCategory
	}

	// Date: unparseable dates keep the zero time and an empty key, which
	// excludes the record from every date-range filter.
	if date, _, err := dateutils.ParseDate(r.Date); err == nil {
		txn.Date = date
		txn.DateKey = dateutils.DateKey(date)
	} else {
		errs = append(errs, &enginerrors.RecordError{
			Index: index, Field: "date", Value: r.Date, Err: err,
		})
	}

	// Amount: stored as a magnitude. Source data is expected to be
	// non-negative; a signed value is folded to its absolute value rather
	// than rejected, since the sign is derived from Type.
	txn.Amount = decimal.Zero
	amountStr := strings.TrimSpace(r.Amount)
	if amountStr != "" {
		if amt, err := decimal.NewFromString(strings.ReplaceAll(amountStr, ",", "")); err == nil {
			txn.Amount = amt.Abs()
		} else {
			errs = append(errs, &enginerrors.RecordError{
				Index: index, Field: "amount", Value: r.Amount, Err: err,
			})
		}
	}

	txnType, err := parseType(r.Type)
	if err != nil {
		errs = append(errs, &enginerrors.RecordError{
			Index: index, Field: "type", Value: r.Type, Err: err,
		})
	}
	txn.Type = txnType

	return txn, errs
}

// parseType maps the free-form type column onto a TransactionType. Unknown
// values default to Expense, the most common flow in real imports.
func parseType(s string) (models.TransactionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "income", "credit", "crdt":
		return models.TypeIncome, nil
	case "expense", "debit", "dbit", "":
		return models.TypeExpense, nil
	case "transfer":
		return models.TypeTransfer, nil
	default:
		return models.TypeExpense, fmt.Errorf("unknown transaction type %q", s)
	}
}
