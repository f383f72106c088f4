package parser

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/expense-tracker/backend/internal/models"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Heuristic is a deterministic keyword and regex based parser.
//
// It is less accurate than the AI parser but always available and never
// fails: unknown fields stay at their defaults and the confidence is low.
type Heuristic struct{}

var _ Parser = Heuristic{}

var amountPatterns = []*regexp.Regexp{
	regexp.MustCompile(`rs\.?\s*([0-9,]+(?:\.[0-9]{1,2})?)`),
	regexp.MustCompile(`inr\.?\s*([0-9,]+(?:\.[0-9]{1,2})?)`),
	regexp.MustCompile(`₹\s*([0-9,]+(?:\.[0-9]{1,2})?)`),
	regexp.MustCompile(`(?:debited|credited|paid|spent|received)\D{0,20}?([0-9,]+(?:\.[0-9]{1,2})?)`),
}

var merchantPatterns = []*regexp.Regexp{
	regexp.MustCompile(`at\s+([a-z][a-z ]+?)(?:\.|,|\s+avl|\s+available|\s+balance|\s+on\s+\d|$)`),
	regexp.MustCompile(`(?:to|for|on)\s+([a-z][a-z ]+?)(?:\.|,|\s+avl|\s+available|\s+balance|$)`),
}

var debitWords = []string{"debited", "debit", "paid", "purchase", "withdrawn", "spent", "sent"}

var creditWords = []string{"credited", "credit", "received", "deposit", "salary"}

// categoryKeywords maps well-known merchants and services to categories.
// The order fixes the precedence when a text matches more than one category.
var categoryKeywords = []struct {
	category string
	keywords []string
}{
	{"Food", []string{"restaurant", "cafe", "starbucks", "mcdonald", "food", "swiggy", "zomato", "dining", "groceries"}},
	{"Transport", []string{"uber", "ola", "fuel", "petrol", "metro", "taxi", "rapido", "cab"}},
	{"Shopping", []string{"amazon", "flipkart", "mall", "store", "shop", "myntra"}},
	{"Bills", []string{"electricity", "water", "gas", "mobile", "recharge", "jio", "airtel", "bill"}},
	{"Entertainment", []string{"movie", "netflix", "spotify", "hotstar", "pvr", "cinema"}},
}

var titleCaser = cases.Title(language.English)

// GuessCategory matches the text against the keyword table. The second
// return value reports whether any keyword matched.
func GuessCategory(text string) (string, bool) {
	lower := strings.ToLower(text)

	for _, entry := range categoryKeywords {
		for _, keyword := range entry.keywords {
			if strings.Contains(lower, keyword) {
				return entry.category, true
			}
		}
	}

	return "Other", false
}

// Parse extracts a transaction from the text. It never returns an error.
func (Heuristic) Parse(_ context.Context, text string, _ []string) (Result, error) {
	lower := strings.ToLower(text)

	result := Result{
		Category:   "Other",
		Date:       NormalizeDate(lower, time.Now()),
		Type:       models.TypeExpense,
		Confidence: 0.5,
	}

	for _, pattern := range amountPatterns {
		if match := pattern.FindStringSubmatch(lower); match != nil {
			amount, err := decimal.NewFromString(strings.ReplaceAll(match[1], ",", ""))
			if err == nil {
				result.Amount = amount
				break
			}
		}
	}

	for _, word := range creditWords {
		if strings.Contains(lower, word) {
			result.Type = models.TypeIncome
		}
	}

	// Debit words win over credit words: "credited to merchant account"
	// style messages describe money going out
	for _, word := range debitWords {
		if strings.Contains(lower, word) {
			result.Type = models.TypeExpense
		}
	}

	for _, pattern := range merchantPatterns {
		if match := pattern.FindStringSubmatch(lower); match != nil {
			merchant := strings.Join(strings.Fields(match[1]), " ")
			if len(merchant) > 3 {
				result.Description = titleCaser.String(merchant)
				break
			}
		}
	}

	if category, ok := GuessCategory(lower); ok {
		result.Category = category
		result.Confidence = 0.7
	}

	return result, nil
}
