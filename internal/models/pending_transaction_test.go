package models_test

import (
	"time"

	"github.com/expense-tracker/backend/internal/models"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestPendingTransactionDefaults() {
	user := suite.createTestUser(models.User{})
	pending := suite.createTestPendingTransaction(models.PendingTransaction{UserID: &user.ID})

	suite.Assert().NotEmpty(pending.Token)
	suite.Assert().Equal(models.PendingStatusPending, pending.Status)
}

func (suite *TestSuiteStandard) TestPendingTransactionTokenUnique() {
	tokens := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token := models.NewToken()
		suite.Assert().False(tokens[token], "token %s was generated twice", token)
		tokens[token] = true
	}
}

func (suite *TestSuiteStandard) TestPendingTransactionComplete() {
	pending := models.PendingTransaction{
		Amount:      decimal.NewFromInt(500),
		Category:    "Food",
		Description: "Coffee",
		Date:        "2024-01-05",
		Type:        models.TypeExpense,
	}
	suite.Assert().True(pending.Complete())

	pending.Description = ""
	suite.Assert().False(pending.Complete())

	pending.Description = "Coffee"
	pending.Amount = decimal.Zero
	suite.Assert().False(pending.Complete())
}

func (suite *TestSuiteStandard) TestApproveCreatesExpense() {
	user := suite.createTestUser(models.User{})
	pending := suite.createTestPendingTransaction(models.PendingTransaction{UserID: &user.ID})

	expense, err := pending.Approve(models.DB)
	suite.Require().Nil(err)

	suite.Assert().Equal(models.PendingStatusConfirmed, pending.Status)
	suite.Assert().Equal(user.ID, expense.UserID)
	suite.Assert().True(decimal.NewFromInt(500).Equal(expense.Amount), "amount is %s", expense.Amount)
	suite.Assert().Equal("Food", expense.Category)
	suite.Assert().Equal("Coffee", expense.Description)
	suite.Assert().Equal(time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), expense.Date)
	suite.Assert().Equal(models.TypeExpense, expense.Type)

	var count int64
	suite.Require().Nil(models.DB.Model(&models.Expense{}).Count(&count).Error)
	suite.Assert().Equal(int64(1), count)
}

func (suite *TestSuiteStandard) TestApproveTwice() {
	user := suite.createTestUser(models.User{})
	pending := suite.createTestPendingTransaction(models.PendingTransaction{UserID: &user.ID})

	_, err := pending.Approve(models.DB)
	suite.Require().Nil(err)

	// Approving the same record again must not create a second expense
	again, err := models.PendingTransactionByToken(models.DB, pending.Token)
	suite.Require().Nil(err)

	_, err = again.Approve(models.DB)
	suite.Assert().ErrorIs(err, models.ErrAlreadyProcessed)

	var count int64
	suite.Require().Nil(models.DB.Model(&models.Expense{}).Count(&count).Error)
	suite.Assert().Equal(int64(1), count)
}

func (suite *TestSuiteStandard) TestApproveAfterCancel() {
	user := suite.createTestUser(models.User{})
	pending := suite.createTestPendingTransaction(models.PendingTransaction{UserID: &user.ID})

	suite.Require().Nil(pending.Cancel(models.DB))

	again, err := models.PendingTransactionByToken(models.DB, pending.Token)
	suite.Require().Nil(err)

	_, err = again.Approve(models.DB)
	suite.Assert().ErrorIs(err, models.ErrAlreadyProcessed)

	var count int64
	suite.Require().Nil(models.DB.Model(&models.Expense{}).Count(&count).Error)
	suite.Assert().Equal(int64(0), count)
}

func (suite *TestSuiteStandard) TestCancelAfterApprove() {
	user := suite.createTestUser(models.User{})
	pending := suite.createTestPendingTransaction(models.PendingTransaction{UserID: &user.ID})

	_, err := pending.Approve(models.DB)
	suite.Require().Nil(err)

	again, err := models.PendingTransactionByToken(models.DB, pending.Token)
	suite.Require().Nil(err)

	suite.Assert().ErrorIs(again.Cancel(models.DB), models.ErrAlreadyProcessed)
	suite.Assert().Equal(models.PendingStatusConfirmed, again.Status)
}

func (suite *TestSuiteStandard) TestCancelCreatesNoExpense() {
	user := suite.createTestUser(models.User{})
	pending := suite.createTestPendingTransaction(models.PendingTransaction{UserID: &user.ID})

	suite.Require().Nil(pending.Cancel(models.DB))
	suite.Assert().Equal(models.PendingStatusCancelled, pending.Status)

	var count int64
	suite.Require().Nil(models.DB.Model(&models.Expense{}).Count(&count).Error)
	suite.Assert().Equal(int64(0), count)
}

func (suite *TestSuiteStandard) TestApproveIncomplete() {
	user := suite.createTestUser(models.User{})
	pending := suite.createTestPendingTransaction(models.PendingTransaction{UserID: &user.ID})

	suite.Require().Nil(pending.UpdatePending(models.DB, models.PendingTransaction{Description: ""}, []any{"Description"}))

	_, err := pending.Approve(models.DB)
	suite.Assert().ErrorIs(err, models.ErrIncompleteData)

	// A failed approval does not transition the record
	again, err := models.PendingTransactionByToken(models.DB, pending.Token)
	suite.Require().Nil(err)
	suite.Assert().Equal(models.PendingStatusPending, again.Status)
}

func (suite *TestSuiteStandard) TestApproveWithoutOwner() {
	pending := suite.createTestPendingTransaction(models.PendingTransaction{})

	_, err := pending.Approve(models.DB)
	suite.Assert().ErrorIs(err, models.ErrPendingNoOwner)
}

func (suite *TestSuiteStandard) TestApproveInvalidDate() {
	user := suite.createTestUser(models.User{})
	pending := suite.createTestPendingTransaction(models.PendingTransaction{
		UserID: &user.ID,
		Date:   "05.01.2024",
	})

	_, err := pending.Approve(models.DB)
	suite.Assert().ErrorIs(err, models.ErrInvalidDate)
}

func (suite *TestSuiteStandard) TestUpdatePendingPartial() {
	user := suite.createTestUser(models.User{})
	pending := suite.createTestPendingTransaction(models.PendingTransaction{UserID: &user.ID})

	update := models.PendingTransaction{Amount: decimal.NewFromInt(750)}
	suite.Require().Nil(pending.UpdatePending(models.DB, update, []any{"Amount"}))

	suite.Assert().True(decimal.NewFromInt(750).Equal(pending.Amount), "amount is %s", pending.Amount)

	// Fields outside the selection stay untouched
	suite.Assert().Equal("Coffee", pending.Description)
}

func (suite *TestSuiteStandard) TestUpdateAfterApprove() {
	user := suite.createTestUser(models.User{})
	pending := suite.createTestPendingTransaction(models.PendingTransaction{UserID: &user.ID})

	_, err := pending.Approve(models.DB)
	suite.Require().Nil(err)

	again, err := models.PendingTransactionByToken(models.DB, pending.Token)
	suite.Require().Nil(err)

	update := models.PendingTransaction{Amount: decimal.NewFromInt(1)}
	err = again.UpdatePending(models.DB, update, []any{"Amount"})
	suite.Assert().ErrorIs(err, models.ErrAlreadyProcessed)
}

func (suite *TestSuiteStandard) TestDeleteAnyStatus() {
	user := suite.createTestUser(models.User{})

	for _, transition := range []string{"pending", "confirmed", "cancelled"} {
		pending := suite.createTestPendingTransaction(models.PendingTransaction{UserID: &user.ID})

		switch transition {
		case "confirmed":
			_, err := pending.Approve(models.DB)
			suite.Require().Nil(err)
		case "cancelled":
			suite.Require().Nil(pending.Cancel(models.DB))
		}

		suite.Require().Nil(models.DeletePendingTransaction(models.DB, pending.Token), "delete failed for %s record", transition)

		_, err := models.PendingTransactionByToken(models.DB, pending.Token)
		suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
	}
}

func (suite *TestSuiteStandard) TestDeleteUnknownToken() {
	err := models.DeletePendingTransaction(models.DB, "does-not-exist")
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestPendingTransactionInvalidType() {
	user := suite.createTestUser(models.User{})

	pending := models.PendingTransaction{
		UserID: &user.ID,
		Amount: decimal.NewFromInt(10),
		Type:   "transfer",
	}

	err := models.DB.Create(&pending).Error
	suite.Assert().ErrorIs(err, models.ErrInvalidTransactionType)
}
