package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransactionType classifies a ledger entry as money out or money in.
type TransactionType string

const (
	TypeExpense TransactionType = "expense"
	TypeIncome  TransactionType = "income"
)

// Valid reports whether the type is one of the two known transaction types.
func (t TransactionType) Valid() bool {
	return t == TypeExpense || t == TypeIncome
}

// Expense is a materialized ledger entry.
//
// Its lifecycle is independent from the pending transaction that may have
// created it: it can be edited and deleted directly.
type Expense struct {
	DefaultModel
	User        User      `json:"-"`
	UserID      uuid.UUID `gorm:"index"`
	Amount      decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Category    string
	Description string
	Date        time.Time
	Type        TransactionType
}

func (e *Expense) BeforeSave(_ *gorm.DB) error {
	if !e.Type.Valid() {
		return ErrInvalidTransactionType
	}

	e.Category = strings.TrimSpace(e.Category)
	e.Description = strings.TrimSpace(e.Description)
	e.Date = e.Date.In(time.UTC)

	return nil
}

// AfterFind sets the timezone for the Date to UTC.
func (e *Expense) AfterFind(_ *gorm.DB) error {
	e.Date = e.Date.In(time.UTC)

	return nil
}
