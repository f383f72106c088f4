package models

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category represents a user configured expense category.
type Category struct {
	DefaultModel
	User   User      `json:"-"`
	UserID uuid.UUID `gorm:"uniqueIndex:category_name_user_id"`
	Name   string    `gorm:"uniqueIndex:category_name_user_id"`
}

func (c *Category) BeforeSave(_ *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)

	return nil
}

// CategoryNames returns the names of all categories of a user.
func CategoryNames(db *gorm.DB, userID uuid.UUID) ([]string, error) {
	var names []string
	err := db.Model(&Category{}).Where(&Category{UserID: userID}).Order("name ASC").Pluck("name", &names).Error
	if err != nil {
		return nil, err
	}

	return names, nil
}

// FallbackCategory resolves a parsed category against the user's configured
// category list.
//
// When the parsed category is unknown, "Other" wins if the user has it,
// otherwise the first configured category. Users without categories get the
// literal "Other".
func FallbackCategory(category string, names []string) string {
	for _, name := range names {
		if strings.EqualFold(name, category) {
			return name
		}
	}

	for _, name := range names {
		if name == "Other" {
			return name
		}
	}

	if len(names) > 0 {
		return names[0]
	}

	return "Other"
}
