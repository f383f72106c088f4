// Package spreadsheet reads and writes expense lists as CSV and Excel files.
package spreadsheet

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/expense-tracker/backend/internal/models"
	"github.com/shopspring/decimal"
)

var header = []string{"Date", "Amount", "Category", "Description", "Type"}

var ErrNoHeader = errors.New("the file does not contain a header row")

// Row is one imported expense line. Rows that do not carry a valid date and
// a positive amount are dropped during parsing.
type Row struct {
	Date        time.Time
	Amount      decimal.Decimal
	Category    string
	Description string
	Type        models.TransactionType
}

// Expense converts the row into a ledger entry for the user.
func (r Row) Expense(user models.User) models.Expense {
	return models.Expense{
		UserID:      user.ID,
		Amount:      r.Amount,
		Category:    r.Category,
		Description: r.Description,
		Date:        r.Date,
		Type:        r.Type,
	}
}

// WriteCSV writes the expenses as CSV with a header row.
func WriteCSV(w io.Writer, expenses []models.Expense) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(header); err != nil {
		return err
	}

	for _, expense := range expenses {
		record := []string{
			expense.Date.Format("2006-01-02"),
			expense.Amount.String(),
			expense.Category,
			expense.Description,
			string(expense.Type),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// ReadCSV parses a CSV file. It returns the valid rows and the number of
// rows that were skipped because they could not be parsed.
func ReadCSV(r io.Reader) ([]Row, int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, 0, err
	}

	if len(records) == 0 {
		return nil, 0, ErrNoHeader
	}

	return parseRecords(records[0], records[1:])
}

// parseRecords matches data records against the header row. Header names
// are case-insensitive so that hand-edited files import fine.
func parseRecords(headerRow []string, records [][]string) ([]Row, int, error) {
	index := make(map[string]int, len(headerRow))
	for i, name := range headerRow {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}

	for _, name := range []string{"date", "amount"} {
		if _, ok := index[name]; !ok {
			return nil, 0, ErrNoHeader
		}
	}

	field := func(record []string, name string) string {
		i, ok := index[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var rows []Row
	var skipped int

	for _, record := range records {
		date, err := time.ParseInLocation("2006-01-02", field(record, "date"), time.UTC)
		if err != nil {
			skipped++
			continue
		}

		amount, err := decimal.NewFromString(field(record, "amount"))
		if err != nil || !amount.IsPositive() {
			skipped++
			continue
		}

		category := field(record, "category")
		if category == "" {
			category = "Uncategorized"
		}

		kind := models.TransactionType(strings.ToLower(field(record, "type")))
		if !kind.Valid() {
			kind = models.TypeExpense
		}

		rows = append(rows, Row{
			Date:        date,
			Amount:      amount,
			Category:    category,
			Description: field(record, "description"),
			Type:        kind,
		})
	}

	return rows, skipped, nil
}
