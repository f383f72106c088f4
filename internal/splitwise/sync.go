package splitwise

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/expense-tracker/backend/internal/models"
	"github.com/expense-tracker/backend/internal/parser"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SyncResult summarizes one sync run.
type SyncResult struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
	Failed   int `json:"failed"`
}

// Sync imports the user's Splitwise expenses since the last sync as pending
// transactions.
//
// Item failures are isolated: one bad expense is logged and counted, the
// rest of the batch continues. LastSyncedAt advances when the run completes,
// regardless of individual failures.
func Sync(ctx context.Context, db *gorm.DB, conn *models.SplitwiseConnection, client Client) (SyncResult, error) {
	started := time.Now().In(time.UTC)

	expenses, err := client.Expenses(ctx, conn.LastSyncedAt)
	if err != nil {
		return SyncResult{}, err
	}

	// Group names only label the import, a failure here must not block it
	groups, err := client.Groups(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("could not load Splitwise groups")
	}

	var result SyncResult
	for _, expense := range expenses {
		imported, err := importExpense(db, conn, groups, expense)
		if err != nil {
			log.Warn().Err(err).Int64("expense", expense.ID).Msg("skipping Splitwise expense")
			result.Failed++
			continue
		}

		if imported {
			result.Imported++
		} else {
			result.Skipped++
		}
	}

	conn.LastSyncedAt = started
	err = db.Model(conn).Update("last_synced_at", started).Error
	if err != nil {
		return result, err
	}

	return result, nil
}

// importExpense creates one pending transaction for the expense. It reports
// false without error for expenses that are skipped on purpose: deleted
// items, items the user owes nothing on, and items already imported.
func importExpense(db *gorm.DB, conn *models.SplitwiseConnection, groups map[int64]string, expense Expense) (bool, error) {
	if expense.DeletedAt != nil {
		return false, nil
	}

	owed := owedShare(expense, conn.SplitwiseUserID)
	if !owed.IsPositive() {
		return false, nil
	}

	externalID := strconv.FormatInt(expense.ID, 10)

	// A second sync must not import the same expense again
	var count int64
	err := db.Model(&models.PendingTransaction{}).
		Where("user_id = ? AND splitwise_expense_id = ?", conn.UserID, externalID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	category, _ := parser.GuessCategory(expense.Description)

	raw, err := json.Marshal(expense)
	if err != nil {
		return false, err
	}

	pending := models.PendingTransaction{
		UserID:             &conn.UserID,
		Amount:             owed,
		Category:           category,
		Description:        expense.Description,
		Date:               expense.Date.In(time.UTC).Format("2006-01-02"),
		Type:               models.TypeExpense,
		SplitwiseExpenseID: externalID,
		SplitwiseGroup:     groupLabel(groups, expense.GroupID),
		SplitwiseRaw:       string(raw),
	}

	err = db.Create(&pending).Error
	if err != nil {
		return false, err
	}

	return true, nil
}

func owedShare(expense Expense, splitwiseUserID int64) decimal.Decimal {
	for _, user := range expense.Users {
		if user.UserID == splitwiseUserID {
			return user.OwedShare
		}
	}

	return decimal.Zero
}

func groupLabel(groups map[int64]string, groupID *int64) string {
	if groupID == nil {
		return ""
	}

	if name, ok := groups[*groupID]; ok {
		return name
	}

	return strconv.FormatInt(*groupID, 10)
}
