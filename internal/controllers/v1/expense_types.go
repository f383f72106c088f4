package v1

import (
	"time"

	"github.com/expense-tracker/backend/internal/models"
	"github.com/shopspring/decimal"
)

// ExpenseEditable contains the fields a client may set on an expense.
type ExpenseEditable struct {
	Amount      *decimal.Decimal        `json:"amount" example:"47.5"`
	Category    *string                 `json:"category" example:"Food"`
	Description *string                 `json:"description" example:"Groceries"`
	Date        *string                 `json:"date" example:"2024-01-05"`
	Type        *models.TransactionType `json:"type" example:"expense"`
}

func (editable ExpenseEditable) model() (models.Expense, error) {
	var expense models.Expense

	if editable.Amount != nil {
		expense.Amount = *editable.Amount
	}
	if editable.Category != nil {
		expense.Category = *editable.Category
	}
	if editable.Description != nil {
		expense.Description = *editable.Description
	}
	if editable.Type != nil {
		expense.Type = *editable.Type
	}

	if editable.Date != nil {
		date, err := time.ParseInLocation("2006-01-02", *editable.Date, time.UTC)
		if err != nil {
			return models.Expense{}, models.ErrInvalidDate
		}
		expense.Date = date
	}

	return expense, nil
}

func (editable ExpenseEditable) fields() []any {
	var fields []any

	if editable.Amount != nil {
		fields = append(fields, "Amount")
	}
	if editable.Category != nil {
		fields = append(fields, "Category")
	}
	if editable.Description != nil {
		fields = append(fields, "Description")
	}
	if editable.Date != nil {
		fields = append(fields, "Date")
	}
	if editable.Type != nil {
		fields = append(fields, "Type")
	}

	return fields
}

type Expense struct {
	models.DefaultModel
	Amount      decimal.Decimal        `json:"amount" example:"47.5"`
	Category    string                 `json:"category" example:"Food"`
	Description string                 `json:"description" example:"Groceries"`
	Date        time.Time              `json:"date" example:"2024-01-05T00:00:00Z"`
	Type        models.TransactionType `json:"type" example:"expense"`
}

func newExpense(model models.Expense) Expense {
	return Expense{
		DefaultModel: model.DefaultModel,
		Amount:       model.Amount,
		Category:     model.Category,
		Description:  model.Description,
		Date:         model.Date,
		Type:         model.Type,
	}
}

type ExpenseResponse struct {
	Data Expense `json:"data"`
}

type ExpenseListResponse struct {
	Data []Expense `json:"data"`
}
