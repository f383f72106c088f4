package models_test

import (
	"github.com/expense-tracker/backend/internal/models"
)

func (suite *TestSuiteStandard) TestPasswordRoundTrip() {
	var user models.User
	suite.Require().Nil(user.SetPassword("correct horse battery staple"))

	suite.Assert().True(user.CheckPassword("correct horse battery staple"))
	suite.Assert().False(user.CheckPassword("incorrect horse"))
	suite.Assert().NotContains(user.HashedPassword, "correct horse")
}

func (suite *TestSuiteStandard) TestLongPassword() {
	// bcrypt only reads 72 bytes of input, the SHA-256 prehash keeps longer
	// passwords fully significant
	long := make([]byte, 100)
	for i := range long {
		long[i] = 'a'
	}

	var user models.User
	suite.Require().Nil(user.SetPassword(string(long)))

	suite.Assert().True(user.CheckPassword(string(long)))
	suite.Assert().False(user.CheckPassword(string(long) + "b"))
}

func (suite *TestSuiteStandard) TestUsernameUnique() {
	suite.createTestUser(models.User{Username: "maria"})

	second := models.User{Username: "maria", Email: "maria2@example.com"}
	suite.Require().Nil(second.SetPassword("test-password"))

	err := models.DB.Create(&second).Error
	suite.Assert().ErrorIs(err, models.ErrUsernameTaken)
}

func (suite *TestSuiteStandard) TestEmailUnique() {
	suite.createTestUser(models.User{Email: "maria@example.com"})

	second := models.User{Username: "maria2", Email: "maria@example.com"}
	suite.Require().Nil(second.SetPassword("test-password"))

	err := models.DB.Create(&second).Error
	suite.Assert().ErrorIs(err, models.ErrEmailTaken)
}

func (suite *TestSuiteStandard) TestEmailNormalized() {
	user := suite.createTestUser(models.User{Username: "maria", Email: " Maria@Example.com "})

	suite.Assert().Equal("maria@example.com", user.Email)
}
