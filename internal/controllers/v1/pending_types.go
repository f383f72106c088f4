package v1

import (
	"fmt"

	"github.com/expense-tracker/backend/internal/models"
	"github.com/shopspring/decimal"
)

// PendingTransactionEditable contains the fields a client may set. Fields
// that are not part of the request body stay untouched on update.
type PendingTransactionEditable struct {
	Amount      *decimal.Decimal        `json:"amount" example:"500"`
	Category    *string                 `json:"category" example:"Food"`
	Description *string                 `json:"description" example:"Coffee with Ana"`
	Date        *string                 `json:"date" example:"2024-01-05"`
	Type        *models.TransactionType `json:"type" example:"expense"`
}

// model returns the models.PendingTransaction for the Editable.
func (editable PendingTransactionEditable) model() models.PendingTransaction {
	var pending models.PendingTransaction

	if editable.Amount != nil {
		pending.Amount = *editable.Amount
	}
	if editable.Category != nil {
		pending.Category = *editable.Category
	}
	if editable.Description != nil {
		pending.Description = *editable.Description
	}
	if editable.Date != nil {
		pending.Date = *editable.Date
	}
	if editable.Type != nil {
		pending.Type = *editable.Type
	}

	return pending
}

// fields returns the names of the struct fields the request body sets, for
// use with gorm's Select.
func (editable PendingTransactionEditable) fields() []any {
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

type PendingTransactionLinks struct {
	Self  string `json:"self" example:"/v1/pending-transaction/dGVzdHRva2VuMTIzNDU2"`
	Share string `json:"share" example:"https://expenses.example.com/add-expense/dGVzdHRva2VuMTIzNDU2"`
}

type PendingTransaction struct {
	models.DefaultModel
	Token       string                  `json:"token" example:"dGVzdHRva2VuMTIzNDU2"`
	Amount      decimal.Decimal         `json:"amount" example:"500"`
	Category    string                  `json:"category" example:"Food"`
	Description string                  `json:"description" example:"Coffee with Ana"`
	Date        string                  `json:"date" example:"2024-01-05"`
	Type        models.TransactionType  `json:"type" example:"expense"`
	Status      models.PendingStatus    `json:"status" example:"pending"`
	Links       PendingTransactionLinks `json:"links"`
}

func (co Controller) newPendingTransaction(model models.PendingTransaction) PendingTransaction {
	return PendingTransaction{
		DefaultModel: model.DefaultModel,
		Token:        model.Token,
		Amount:       model.Amount,
		Category:     model.Category,
		Description:  model.Description,
		Date:         model.Date,
		Type:         model.Type,
		Status:       model.Status,
		Links: PendingTransactionLinks{
			Self:  fmt.Sprintf("/v1/pending-transaction/%s", model.Token),
			Share: co.shareURL(model.Token),
		},
	}
}

// shareURL builds the frontend link that opens the confirmation page for
// the pending transaction.
func (co Controller) shareURL(token string) string {
	return fmt.Sprintf("%s/add-expense/%s", co.Config.FrontendURL, token)
}

type PendingTransactionResponse struct {
	Data PendingTransaction `json:"data"`
}

type PendingTransactionListResponse struct {
	Data []PendingTransaction `json:"data"`
}

// ApprovalResponse is returned when a pending transaction is confirmed and
// the matching expense has been created.
type ApprovalResponse struct {
	Data struct {
		PendingTransaction PendingTransaction `json:"pendingTransaction"`
		Expense            Expense            `json:"expense"`
	} `json:"data"`
}
