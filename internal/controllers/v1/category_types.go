package v1

import "github.com/expense-tracker/backend/internal/models"

// CategoryEditable contains the fields a client may set on a category.
type CategoryEditable struct {
	Name *string `json:"name" example:"Food"`
}

func (editable CategoryEditable) model() models.Category {
	var category models.Category

	if editable.Name != nil {
		category.Name = *editable.Name
	}

	return category
}

func (editable CategoryEditable) fields() []any {
	var fields []any

	if editable.Name != nil {
		fields = append(fields, "Name")
	}

	return fields
}

type Category struct {
	models.DefaultModel
	Name string `json:"name" example:"Food"`
}

func newCategory(model models.Category) Category {
	return Category{
		DefaultModel: model.DefaultModel,
		Name:         model.Name,
	}
}

type CategoryResponse struct {
	Data Category `json:"data"`
}

type CategoryListResponse struct {
	Data []Category `json:"data"`
}
