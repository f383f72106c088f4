package v1

import (
	"net/http"

	"github.com/expense-tracker/backend/internal/httputil"
	"github.com/expense-tracker/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// OptionsPendingTransactionDetail returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Tags			Pending Transactions
//	@Success		204
//	@Param			token	path	string	true	"Token of the pending transaction"
//	@Router			/v1/pending-transaction/{token} [options]
func OptionsPendingTransactionDetail(c *gin.Context) {
	httputil.OptionsGetPutPatchDelete(c)
}

// @Summary		Create a payment URL
// @Description	Creates a pending transaction owned by the authenticated user and returns the link to its confirmation page. The payload fields are optional, they can be filled in later via the token.
// @Tags			Pending Transactions
// @Produce		json
// @Success		201			{object}	PendingTransactionResponse
// @Failure		400			{object}	httputil.HTTPError
// @Param			transaction	body		PendingTransactionEditable	false	"Prefilled payload"
// @Router			/v1/generate-payment-url [post]
func (co Controller) GeneratePaymentURL(c *gin.Context) {
	co.createPending(c)
}

// @Summary		Create a pending transaction
// @Tags			Pending Transactions
// @Produce		json
// @Success		201			{object}	PendingTransactionResponse
// @Failure		400			{object}	httputil.HTTPError
// @Param			transaction	body		PendingTransactionEditable	false	"Payload"
// @Router			/v1/pending-transaction [post]
func (co Controller) CreatePendingTransaction(c *gin.Context) {
	co.createPending(c)
}

func (co Controller) createPending(c *gin.Context) {
	var editable PendingTransactionEditable

	// An empty body creates an empty pending transaction
	if c.Request.ContentLength != 0 {
		if err := httputil.BindData(c, &editable); err != nil {
			httputil.NewError(c, status(err), err)
			return
		}
	}

	user := currentUser(c)

	pending := editable.model()
	pending.UserID = &user.ID

	if err := models.DB.Create(&pending).Error; err != nil {
		httputil.NewError(c, status(err), err)
		return
	}

	c.JSON(http.StatusCreated, PendingTransactionResponse{Data: co.newPendingTransaction(pending)})
}

// @Summary		List pending transactions
// @Description	Returns the authenticated user's pending transactions. By default only records in pending state are returned, pass ?status= to filter differently or ?status=all for everything.
// @Tags			Pending Transactions
// @Produce		json
// @Success		200		{object}	PendingTransactionListResponse
// @Param			status	query		string	false	"Status filter"	Enums(pending, confirmed, cancelled, all)
// @Router			/v1/pending-transactions [get]
func (co Controller) GetPendingTransactions(c *gin.Context) {
	user := currentUser(c)

	query := models.DB.
		Where(&models.PendingTransaction{UserID: &user.ID}).
		Order("created_at DESC")

	status := c.DefaultQuery("status", string(models.PendingStatusPending))
	if status != "all" {
		query = query.Where("status = ?", status)
	}

	var pendings []models.PendingTransaction
	if err := query.Find(&pendings).Error; err != nil {
		httputil.NewError(c, http.StatusInternalServerError, models.ErrGeneral)
		return
	}

	data := make([]PendingTransaction, 0, len(pendings))
	for _, pending := range pendings {
		data = append(data, co.newPendingTransaction(pending))
	}

	c.JSON(http.StatusOK, PendingTransactionListResponse{Data: data})
}

// @Summary		Get a pending transaction
// @Tags			Pending Transactions
// @Produce		json
// @Success		200		{object}	PendingTransactionResponse
// @Failure		404		{object}	httputil.HTTPError
// @Param			token	path		string	true	"Token of the pending transaction"
// @Router			/v1/pending-transaction/{token} [get]
func (co Controller) GetPendingTransaction(c *gin.Context) {
	pending, err := models.PendingTransactionByToken(models.DB, c.Param("token"))
	if err != nil {
		httputil.NewError(c, status(err), err)
		return
	}

	c.JSON(http.StatusOK, PendingTransactionResponse{Data: co.newPendingTransaction(pending)})
}

// @Summary		Update a pending transaction
// @Description	Updates the payload fields of a pending transaction. Only records in pending state can be edited.
// @Tags			Pending Transactions
// @Produce		json
// @Success		200			{object}	PendingTransactionResponse
// @Failure		404			{object}	httputil.HTTPError
// @Failure		409			{object}	httputil.HTTPError	"The record was already confirmed or cancelled"
// @Param			token		path		string						true	"Token of the pending transaction"
// @Param			transaction	body		PendingTransactionEditable	true	"Fields to update"
// @Router			/v1/pending-transaction/{token} [patch]
func (co Controller) UpdatePendingTransaction(c *gin.Context) {
	pending, err := models.PendingTransactionByToken(models.DB, c.Param("token"))
	if err != nil {
		httputil.NewError(c, status(err), err)
		return
	}

	var editable PendingTransactionEditable
	if err := httputil.BindData(c, &editable); err != nil {
		httputil.NewError(c, status(err), err)
		return
	}

	if err := pending.UpdatePending(models.DB, editable.model(), editable.fields()); err != nil {
		httputil.NewError(c, status(err), err)
		return
	}

	c.JSON(http.StatusOK, PendingTransactionResponse{Data: co.newPendingTransaction(pending)})
}

// @Summary		Approve a pending transaction
// @Description	Confirms the pending transaction and creates the expense from its payload. Fails with 409 when the record has already been confirmed or cancelled, and with 400 when the payload is incomplete.
// @Tags			Pending Transactions
// @Produce		json
// @Success		201		{object}	ApprovalResponse
// @Failure		400		{object}	httputil.HTTPError
// @Failure		404		{object}	httputil.HTTPError
// @Failure		409		{object}	httputil.HTTPError
// @Param			token	path		string	true	"Token of the pending transaction"
// @Router			/v1/pending-transaction/{token}/approve [post]
func (co Controller) ApprovePendingTransaction(c *gin.Context) {
	pending, err := models.PendingTransactionByToken(models.DB, c.Param("token"))
	if err != nil {
		httputil.NewError(c, status(err), err)
		return
	}

	expense, err := pending.Approve(models.DB)
	if err != nil {
		httputil.NewError(c, status(err), err)
		return
	}

	var response ApprovalResponse
	response.Data.PendingTransaction = co.newPendingTransaction(pending)
	response.Data.Expense = newExpense(expense)

	c.JSON(http.StatusCreated, response)
}

// @Summary		Cancel a pending transaction
// @Description	Cancels the pending transaction. No expense is created and the record is kept for bookkeeping.
// @Tags			Pending Transactions
// @Produce		json
// @Success		200		{object}	PendingTransactionResponse
// @Failure		404		{object}	httputil.HTTPError
// @Failure		409		{object}	httputil.HTTPError
// @Param			token	path		string	true	"Token of the pending transaction"
// @Router			/v1/pending-transaction/{token}/cancel [post]
func (co Controller) CancelPendingTransaction(c *gin.Context) {
	pending, err := models.PendingTransactionByToken(models.DB, c.Param("token"))
	if err != nil {
		httputil.NewError(c, status(err), err)
		return
	}

	if err := pending.Cancel(models.DB); err != nil {
		httputil.NewError(c, status(err), err)
		return
	}

	c.JSON(http.StatusOK, PendingTransactionResponse{Data: co.newPendingTransaction(pending)})
}

// @Summary		Delete a pending transaction
// @Description	Removes the record entirely, in any state. Use cancel to keep the record around.
// @Tags			Pending Transactions
// @Success		204
// @Failure		404		{object}	httputil.HTTPError
// @Param			token	path		string	true	"Token of the pending transaction"
// @Router			/v1/pending-transaction/{token} [delete]
func (co Controller) DeletePendingTransaction(c *gin.Context) {
	if err := models.DeletePendingTransaction(models.DB, c.Param("token")); err != nil {
		httputil.NewError(c, status(err), err)
		return
	}

	c.Status(http.StatusNoContent)
}
