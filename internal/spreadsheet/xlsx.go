package spreadsheet

import (
	"io"

	"github.com/expense-tracker/backend/internal/models"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Expenses"

// WriteXLSX renders the expenses as a styled Excel workbook.
func WriteXLSX(expenses []models.Expense) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	err := f.SetSheetName("Sheet1", sheetName)
	if err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF", Size: 12},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"667EEA"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, err
	}

	currencyFormat := "$#,##0.00"
	amountStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &currencyFormat})
	if err != nil {
		return nil, err
	}

	for i, name := range header {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheetName, cell, name); err != nil {
			return nil, err
		}
	}

	if err := f.SetCellStyle(sheetName, "A1", "E1", headerStyle); err != nil {
		return nil, err
	}

	for i, expense := range expenses {
		row := i + 2
		amount, _ := expense.Amount.Float64()

		values := []any{
			expense.Date.Format("2006-01-02"),
			amount,
			expense.Category,
			expense.Description,
			string(expense.Type),
		}

		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return nil, err
			}
		}

		cell, err := excelize.CoordinatesToCellName(2, row)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(sheetName, cell, cell, amountStyle); err != nil {
			return nil, err
		}
	}

	widths := map[string]float64{"A": 12, "B": 12, "C": 15, "D": 30, "E": 10}
	for col, width := range widths {
		if err := f.SetColWidth(sheetName, col, col, width); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// ReadXLSX parses the first sheet of an Excel workbook. Like ReadCSV it
// returns the valid rows and the number of skipped rows.
func ReadXLSX(r io.Reader) ([]Row, int, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	// Raw values, the currency format on the amount column would otherwise
	// come back as "$500.00"
	rows, err := f.GetRows(f.GetSheetName(0), excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, 0, err
	}

	if len(rows) == 0 {
		return nil, 0, ErrNoHeader
	}

	return parseRecords(rows[0], rows[1:])
}
