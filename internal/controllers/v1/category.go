package v1

import (
	"net/http"

	"github.com/expense-tracker/backend/internal/httputil"
	"github.com/expense-tracker/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// OptionsCategories returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Tags			Categories
//	@Success		204
//	@Router			/v1/categories [options]
func OptionsCategories(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// userCategory fetches a category by ID, scoped to the authenticated user.
func userCategory(c *gin.Context) (models.Category, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return models.Category{}, errInvalidUUID
	}

	user := currentUser(c)

	var category models.Category
	err = models.DB.Where(&models.Category{UserID: user.ID}).First(&category, id).Error

	return category, err
}

// @Summary		List categories
// @Tags			Categories
// @Produce		json
// @Success		200	{object}	CategoryListResponse
// @Router			/v1/categories [get]
func (co Controller) GetCategories(c *gin.Context) {
	user := currentUser(c)

	var categories []models.Category
	err := models.DB.Where(&models.Category{UserID: user.ID}).Order("name ASC").Find(&categories).Error
	if err != nil {
		httputil.NewError(c, http.StatusInternalServerError, models.ErrGeneral)
		return
	}

	data := make([]Category, 0, len(categories))
	for _, category := range categories {
		data = append(data, newCategory(category))
	}

	c.JSON(http.StatusOK, CategoryListResponse{Data: data})
}

// @Summary		Create a category
// @Tags			Categories
// @Produce		json
// @Success		201			{object}	CategoryResponse
// @Failure		400			{object}	httputil.HTTPError
// @Param			category	body		CategoryEditable	true	"Category data"
// @Router			/v1/categories [post]
func (co Controller) CreateCategory(c *gin.Context) {
	var editable CategoryEditable
	if err := httputil.BindData(c, &editable); err != nil {
		httputil.NewError(c, status(err), err)
		return
	}

	category := editable.model()
	if category.Name == "" {
		httputil.NewError(c, http.StatusBadRequest, models.ErrIncompleteData)
		return
	}

	user := currentUser(c)
	category.UserID = user.ID

	if err := models.DB.Create(&category).Error; err != nil {
		httputil.NewError(c, status(err), err)
		return
	}

	c.JSON(http.StatusCreated, CategoryResponse{Data: newCategory(category)})
}

// @Summary		Rename a category
// @Tags			Categories
// @Produce		json
// @Success		200			{object}	CategoryResponse
// @Failure		400			{object}	httputil.HTTPError
// @Failure		404			{object}	httputil.HTTPError
// @Param			id			path		string				true	"ID formatted as string"
// @Param			category	body		CategoryEditable	true	"Fields to update"
// @Router			/v1/categories/{id} [patch]
func (co Controller) UpdateCategory(c *gin.Context) {
	category, err := userCategory(c)
	if err != nil {
		httputil.NewError(c, status(err), err)
		return
	}

	var editable CategoryEditable
	if err := httputil.BindData(c, &editable); err != nil {
		httputil.NewError(c, status(err), err)
		return
	}

	err = models.DB.Model(&category).Select("", editable.fields()...).Updates(editable.model()).Error
	if err != nil {
		httputil.NewError(c, status(err), err)
		return
	}

	c.JSON(http.StatusOK, CategoryResponse{Data: newCategory(category)})
}

// @Summary		Delete a category
// @Description	Deletes the category. Expenses keep their category string, it just no longer appears in the configured list.
// @Tags			Categories
// @Success		204
// @Failure		404	{object}	httputil.HTTPError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/categories/{id} [delete]
func (co Controller) DeleteCategory(c *gin.Context) {
	category, err := userCategory(c)
	if err != nil {
		httputil.NewError(c, status(err), err)
		return
	}

	if err := models.DB.Delete(&category).Error; err != nil {
		httputil.NewError(c, status(err), err)
		return
	}

	c.Status(http.StatusNoContent)
}
