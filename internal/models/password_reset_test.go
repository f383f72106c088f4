package models_test

import (
	"time"

	"github.com/expense-tracker/backend/internal/models"
)

func (suite *TestSuiteStandard) TestResetTokenGenerated() {
	user := suite.createTestUser(models.User{})

	reset := models.PasswordResetToken{
		UserID:    user.ID,
		ExpiresAt: time.Now().In(time.UTC).Add(time.Hour),
	}
	suite.Require().Nil(models.DB.Create(&reset).Error)

	suite.Assert().NotEmpty(reset.Token)
}

func (suite *TestSuiteStandard) TestResetTokenSingleUse() {
	user := suite.createTestUser(models.User{})

	reset := models.PasswordResetToken{
		UserID:    user.ID,
		ExpiresAt: time.Now().In(time.UTC).Add(time.Hour),
	}
	suite.Require().Nil(models.DB.Create(&reset).Error)

	suite.Require().Nil(reset.Consume(models.DB))
	suite.Assert().NotNil(reset.UsedAt)

	// The second use has to lose, even when it starts from a fresh read
	var again models.PasswordResetToken
	suite.Require().Nil(models.DB.First(&again, reset.ID).Error)
	suite.Assert().ErrorIs(again.Consume(models.DB), models.ErrResetTokenUsed)
}

func (suite *TestSuiteStandard) TestResetTokenExpired() {
	user := suite.createTestUser(models.User{})

	reset := models.PasswordResetToken{
		UserID:    user.ID,
		ExpiresAt: time.Now().In(time.UTC).Add(-time.Minute),
	}
	suite.Require().Nil(models.DB.Create(&reset).Error)

	suite.Assert().ErrorIs(reset.Consume(models.DB), models.ErrResetTokenExpired)
}
