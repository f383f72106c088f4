package models_test

import (
	"github.com/expense-tracker/backend/internal/models"
)

func (suite *TestSuiteStandard) TestCategoryNameUniquePerUser() {
	user := suite.createTestUser(models.User{})
	suite.createTestCategory(models.Category{UserID: user.ID, Name: "Food"})

	err := models.DB.Create(&models.Category{UserID: user.ID, Name: "Food"}).Error
	suite.Assert().ErrorIs(err, models.ErrCategoryNameNotUnique)

	// The same name is fine for another user
	other := suite.createTestUser(models.User{})
	suite.createTestCategory(models.Category{UserID: other.ID, Name: "Food"})
}

func (suite *TestSuiteStandard) TestCategoryNames() {
	user := suite.createTestUser(models.User{})
	suite.createTestCategory(models.Category{UserID: user.ID, Name: "Transport"})
	suite.createTestCategory(models.Category{UserID: user.ID, Name: "Food"})

	// Another user's category must not leak into the list
	other := suite.createTestUser(models.User{})
	suite.createTestCategory(models.Category{UserID: other.ID, Name: "Bills"})

	names, err := models.CategoryNames(models.DB, user.ID)
	suite.Require().Nil(err)
	suite.Assert().Equal([]string{"Food", "Transport"}, names)
}

func (suite *TestSuiteStandard) TestFallbackCategory() {
	tests := []struct {
		name     string
		category string
		names    []string
		want     string
	}{
		{"exact match", "Food", []string{"Food", "Other"}, "Food"},
		{"case insensitive match", "food", []string{"Food", "Other"}, "Food"},
		{"unknown falls back to Other", "Gadgets", []string{"Food", "Other"}, "Other"},
		{"unknown falls back to first", "Gadgets", []string{"Food", "Transport"}, "Food"},
		{"no categories", "Gadgets", nil, "Other"},
	}

	for _, tt := range tests {
		suite.Assert().Equal(tt.want, models.FallbackCategory(tt.category, tt.names), tt.name)
	}
}
