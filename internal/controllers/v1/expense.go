package v1

import (
	"errors"
	"net/http"
	"time"

	"github.com/expense-tracker/backend/internal/httputil"
	"github.com/expense-tracker/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var errInvalidUUID = errors.New("the id in the URL is not a valid UUID")

// OptionsExpenses returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Tags			Expenses
//	@Success		204
//	@Router			/v1/expenses [options]
func OptionsExpenses(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// OptionsExpenseDetail returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Tags			Expenses
//	@Success		204
//	@Param			id	path	string	true	"ID formatted as string"
//	@Router			/v1/expenses/{id} [options]
func OptionsExpenseDetail(c *gin.Context) {
	httputil.OptionsGetPutPatchDelete(c)
}

// userExpense fetches an expense by ID, scoped to the authenticated user.
func userExpense(c *gin.Context) (models.Expense, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return models.Expense{}, errInvalidUUID
	}

	user := currentUser(c)

	var expense models.Expense
	err = models.DB.Where(&models.Expense{UserID: user.ID}).First(&expense, id).Error

	return expense, err
}

// @Summary		List expenses
// @Description	Returns the authenticated user's expenses, newest first. Supports filtering by category, type and date range.
// @Tags			Expenses
// @Produce		json
// @Success		200			{object}	ExpenseListResponse
// @Param			category	query		string	false	"Filter by category"
// @Param			type		query		string	false	"Filter by type"	Enums(expense, income)
// @Param			from		query		string	false	"Earliest date, YYYY-MM-DD"
// @Param			to			query		string	false	"Latest date, YYYY-MM-DD"
// @Router			/v1/expenses [get]
func (co Controller) GetExpenses(c *gin.Context) {
	user := currentUser(c)

	query := models.DB.
		Where(&models.Expense{UserID: user.ID}).
		Order("date DESC, created_at DESC")

	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	if transactionType := c.Query("type"); transactionType != "" {
		query = query.Where("type = ?", transactionType)
	}

	if from := c.Query("from"); from != "" {
		date, err := time.ParseInLocation("2006-01-02", from, time.UTC)
		if err != nil {
			httputil.NewError(c, http.StatusBadRequest, models.ErrInvalidDate)
			return
		}
		query = query.Where("date >= ?", date)
	}

	if to := c.Query("to"); to != "" {
		date, err := time.ParseInLocation("2006-01-02", to, time.UTC)
		if err != nil {
			httputil.NewError(c, http.StatusBadRequest, models.ErrInvalidDate)
			return
		}
		query = query.Where("date <= ?", date)
	}

	var expenses []models.Expense
	if err := query.Find(&expenses).Error; err != nil {
		httputil.NewError(c, http.StatusInternalServerError, models.ErrGeneral)
		return
	}

	data := make([]Expense, 0, len(expenses))
	for _, expense := range expenses {
		data = append(data, newExpense(expense))
	}

	c.JSON(http.StatusOK, ExpenseListResponse{Data: data})
}

// @Summary		Create an expense
// @Tags			Expenses
// @Produce		json
// @Success		201		{object}	ExpenseResponse
// @Failure		400		{object}	httputil.HTTPError
// @Param			expense	body		ExpenseEditable	true	"Expense data"
// @Router			/v1/expenses [post]
func (co Controller) CreateExpense(c *gin.Context) {
	var editable ExpenseEditable
	if err := httputil.BindData(c, &editable); err != nil {
		httputil.NewError(c, status(err), err)
		return
	}

	expense, err := editable.model()
	if err != nil {
		httputil.NewError(c, status(err), err)
		return
	}

	if editable.Amount != nil && !editable.Amount.IsPositive() {
		httputil.NewError(c, http.StatusBadRequest, models.ErrAmountNotPositive)
		return
	}

	if editable.Amount == nil || expense.Category == "" || expense.Date.IsZero() {
		httputil.NewError(c, http.StatusBadRequest, models.ErrIncompleteData)
		return
	}

	if expense.Type == "" {
		expense.Type = models.TypeExpense
	}

	user := currentUser(c)
	expense.UserID = user.ID

	if err := models.DB.Create(&expense).Error; err != nil {
		httputil.NewError(c, status(err), err)
		return
	}

	c.JSON(http.StatusCreated, ExpenseResponse{Data: newExpense(expense)})
}

// @Summary		Get an expense
// @Tags			Expenses
// @Produce		json
// @Success		200	{object}	ExpenseResponse
// @Failure		404	{object}	httputil.HTTPError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/expenses/{id} [get]
func (co Controller) GetExpense(c *gin.Context) {
	expense, err := userExpense(c)
	if err != nil {
		httputil.NewError(c, status(err), err)
		return
	}

	c.JSON(http.StatusOK, ExpenseResponse{Data: newExpense(expense)})
}

// @Summary		Update an expense
// @Tags			Expenses
// @Produce		json
// @Success		200		{object}	ExpenseResponse
// @Failure		400		{object}	httputil.HTTPError
// @Failure		404		{object}	httputil.HTTPError
// @Param			id		path		string			true	"ID formatted as string"
// @Param			expense	body		ExpenseEditable	true	"Fields to update"
// @Router			/v1/expenses/{id} [patch]
func (co Controller) UpdateExpense(c *gin.Context) {
	expense, err := userExpense(c)
	if err != nil {
		httputil.NewError(c, status(err), err)
		return
	}

	var editable ExpenseEditable
	if err := httputil.BindData(c, &editable); err != nil {
		httputil.NewError(c, status(err), err)
		return
	}

	update, err := editable.model()
	if err != nil {
		httputil.NewError(c, status(err), err)
		return
	}

	err = models.DB.Model(&expense).Select("", editable.fields()...).Updates(update).Error
	if err != nil {
		httputil.NewError(c, status(err), err)
		return
	}

	c.JSON(http.StatusOK, ExpenseResponse{Data: newExpense(expense)})
}

// @Summary		Delete an expense
// @Tags			Expenses
// @Success		204
// @Failure		404	{object}	httputil.HTTPError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/expenses/{id} [delete]
func (co Controller) DeleteExpense(c *gin.Context) {
	expense, err := userExpense(c)
	if err != nil {
		httputil.NewError(c, status(err), err)
		return
	}

	if err := models.DB.Delete(&expense).Error; err != nil {
		httputil.NewError(c, status(err), err)
		return
	}

	c.Status(http.StatusNoContent)
}
