// Package parser turns free-form text, a bank SMS or a spoken transcript,
// into a structured transaction.
package parser

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/expense-tracker/backend/internal/models"
	"github.com/shopspring/decimal"
)

// ErrParse is returned when the text could not be turned into usable
// transaction data.
var ErrParse = errors.New("the text could not be parsed into a transaction")

// Result is the structured outcome of parsing free text.
type Result struct {
	Amount      decimal.Decimal
	Description string
	Category    string
	Date        string // YYYY-MM-DD
	Type        models.TransactionType
	Confidence  float64 // 0.0 to 1.0
}

// Parser extracts a transaction from free-form, possibly multi-language text.
//
// The categories are the user's configured category names. Parsers use them
// as a hint, callers still normalize the returned category themselves.
type Parser interface {
	Parse(ctx context.Context, text string, categories []string) (Result, error)
}

// NormalizeDate converts relative date words to a YYYY-MM-DD date.
//
// Strings that already are a valid YYYY-MM-DD date pass through unchanged,
// everything unknown becomes today.
func NormalizeDate(text string, now time.Time) string {
	today := now.In(time.UTC)
	lower := strings.ToLower(text)

	switch {
	case strings.Contains(lower, "day before yesterday"):
		return today.AddDate(0, 0, -2).Format("2006-01-02")
	case strings.Contains(lower, "yesterday"):
		return today.AddDate(0, 0, -1).Format("2006-01-02")
	case strings.Contains(lower, "last week"):
		return today.AddDate(0, 0, -7).Format("2006-01-02")
	case strings.Contains(lower, "today"):
		return today.Format("2006-01-02")
	}

	if _, err := time.Parse("2006-01-02", text); err == nil {
		return text
	}

	return today.Format("2006-01-02")
}
