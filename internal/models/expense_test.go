package models_test

import (
	"time"

	"github.com/expense-tracker/backend/internal/models"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestExpenseInvalidType() {
	user := suite.createTestUser(models.User{})

	expense := models.Expense{
		UserID: user.ID,
		Amount: decimal.NewFromInt(10),
		Date:   time.Now(),
		Type:   "transfer",
	}

	err := models.DB.Create(&expense).Error
	suite.Assert().ErrorIs(err, models.ErrInvalidTransactionType)

	expense.Type = ""
	err = models.DB.Create(&expense).Error
	suite.Assert().ErrorIs(err, models.ErrInvalidTransactionType)
}

func (suite *TestSuiteStandard) TestExpenseTrimsStrings() {
	user := suite.createTestUser(models.User{})

	expense := suite.createTestExpense(models.Expense{
		UserID:      user.ID,
		Amount:      decimal.NewFromInt(10),
		Category:    " Food ",
		Description: " Coffee ",
		Date:        time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
		Type:        models.TypeExpense,
	})

	suite.Assert().Equal("Food", expense.Category)
	suite.Assert().Equal("Coffee", expense.Description)
}

func (suite *TestSuiteStandard) TestExpenseDateUTC() {
	user := suite.createTestUser(models.User{})

	cet := time.FixedZone("CET", 3600)

	expense := suite.createTestExpense(models.Expense{
		UserID: user.ID,
		Amount: decimal.NewFromInt(10),
		Date:   time.Date(2024, 1, 5, 10, 0, 0, 0, cet),
		Type:   models.TypeExpense,
	})

	var loaded models.Expense
	suite.Require().Nil(models.DB.First(&loaded, expense.ID).Error)
	suite.Assert().Equal(time.UTC, loaded.Date.Location())
}
