package models

import (
	"crypto/rand"
	"encoding/base64"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PendingStatus is the lifecycle state of a pending transaction.
//
// The only transitions are pending -> confirmed and pending -> cancelled,
// both terminal. Hard deletion is not a transition, it removes the record
// in any state.
type PendingStatus string

const (
	PendingStatusPending   PendingStatus = "pending"
	PendingStatusConfirmed PendingStatus = "confirmed"
	PendingStatusCancelled PendingStatus = "cancelled"
)

// PendingTransaction is a provisional transaction awaiting user confirmation.
//
// It is addressed by its opaque token: whoever knows the token may read,
// edit, approve or cancel the record without logging in.
type PendingTransaction struct {
	DefaultModel
	User   User       `json:"-"`
	UserID *uuid.UUID `gorm:"index"`
	Token  string     `gorm:"uniqueIndex"`

	// Payload fields. All of them are optional until approval.
	Amount      decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Category    string
	Description string
	Date        string // Calendar date in YYYY-MM-DD format
	Type        TransactionType

	Status PendingStatus

	// Provenance for records imported from Splitwise, used for deduplication only.
	SplitwiseExpenseID string `gorm:"index"`
	SplitwiseGroup     string
	SplitwiseRaw       string
}

// NewToken returns an unguessable URL-safe token.
func NewToken() string {
	b := make([]byte, 16)
	// rand.Read never returns an error, see its documentation
	_, _ = rand.Read(b)

	return base64.RawURLEncoding.EncodeToString(b)
}

func (p *PendingTransaction) BeforeCreate(tx *gorm.DB) error {
	_ = p.DefaultModel.BeforeCreate(tx)

	if p.Token == "" {
		p.Token = NewToken()
	}

	if p.Status == "" {
		p.Status = PendingStatusPending
	}

	return nil
}

func (p *PendingTransaction) BeforeSave(_ *gorm.DB) error {
	if p.Type != "" && !p.Type.Valid() {
		return ErrInvalidTransactionType
	}

	p.Category = strings.TrimSpace(p.Category)
	p.Description = strings.TrimSpace(p.Description)

	return nil
}

// Complete reports whether all five payload fields are set.
func (p PendingTransaction) Complete() bool {
	return p.Amount.IsPositive() &&
		p.Category != "" &&
		p.Description != "" &&
		p.Date != "" &&
		p.Type != ""
}

// PendingTransactionByToken fetches a pending transaction by its token.
//
// The token is the capability, there is no ownership check.
func PendingTransactionByToken(db *gorm.DB, token string) (PendingTransaction, error) {
	var pending PendingTransaction
	err := db.Where(&PendingTransaction{Token: token}).First(&pending).Error

	return pending, err
}

// Approve materializes a pending transaction into the expense ledger.
//
// The status check and the flip to confirmed happen as a single conditional
// UPDATE so that of two racing approve or cancel calls exactly one succeeds.
// The expense insert shares the transaction with the status flip: either
// both happen or neither does.
func (p *PendingTransaction) Approve(db *gorm.DB) (Expense, error) {
	if p.UserID == nil {
		return Expense{}, ErrPendingNoOwner
	}

	if !p.Complete() {
		return Expense{}, ErrIncompleteData
	}

	date, err := time.ParseInLocation("2006-01-02", p.Date, time.UTC)
	if err != nil {
		return Expense{}, ErrInvalidDate
	}

	expense := Expense{
		UserID:      *p.UserID,
		Amount:      p.Amount,
		Category:    p.Category,
		Description: p.Description,
		Date:        date,
		Type:        p.Type,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&PendingTransaction{}).
			Where("id = ? AND status = ?", p.ID, PendingStatusPending).
			Update("status", PendingStatusConfirmed)
		if res.Error != nil {
			return res.Error
		}

		// Someone else confirmed or cancelled this record first
		if res.RowsAffected == 0 {
			return ErrAlreadyProcessed
		}

		return tx.Create(&expense).Error
	})
	if err != nil {
		return Expense{}, err
	}

	p.Status = PendingStatusConfirmed
	return expense, nil
}

// Cancel transitions a pending transaction to cancelled. No expense is created.
func (p *PendingTransaction) Cancel(db *gorm.DB) error {
	res := db.Model(&PendingTransaction{}).
		Where("id = ? AND status = ?", p.ID, PendingStatusPending).
		Update("status", PendingStatusCancelled)
	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		return ErrAlreadyProcessed
	}

	p.Status = PendingStatusCancelled
	return nil
}

// UpdatePending overwrites the selected payload fields while the record is
// still pending. The status guard is part of the UPDATE statement, an edit
// racing an approval cannot win after the approval.
func (p *PendingTransaction) UpdatePending(db *gorm.DB, update PendingTransaction, fields []any) error {
	if p.Status != PendingStatusPending {
		return ErrAlreadyProcessed
	}

	res := db.Model(p).
		Where("status = ?", PendingStatusPending).
		Select("", fields...).
		Updates(update)
	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		return ErrAlreadyProcessed
	}

	return db.First(p, p.ID).Error
}

// DeletePendingTransaction removes a pending transaction regardless of its
// status. This is a hard delete for cleanup, not a state transition: callers
// that want to keep the record around use Cancel instead.
func DeletePendingTransaction(db *gorm.DB, token string) error {
	pending, err := PendingTransactionByToken(db, token)
	if err != nil {
		return err
	}

	return db.Delete(&pending).Error
}
