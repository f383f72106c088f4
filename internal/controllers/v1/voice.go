package v1

import (
	"net/http"

	"github.com/expense-tracker/backend/internal/httputil"
	"github.com/expense-tracker/backend/internal/models"
	"github.com/gin-gonic/gin"
)

type ParseVoiceRequest struct {
	Text string `json:"text" example:"I spent five hundred rupees on coffee yesterday"`
}

// @Summary		Parse a voice transcript
// @Description	Parses a spoken transaction into a structured result using the AI parser. Unlike SMS parsing there is no heuristic fallback, a parse failure is returned to the caller for retry.
// @Tags			Parsing
// @Produce		json
// @Success		200		{object}	ParsedTransactionResponse
// @Failure		400		{object}	httputil.HTTPError
// @Failure		502		{object}	httputil.HTTPError	"The AI parser failed, retry the request"
// @Failure		503		{object}	httputil.HTTPError	"AI parsing is not configured"
// @Param			voice	body		ParseVoiceRequest	true	"Transcript"
// @Router			/v1/voice/parse-transaction [post]
func (co Controller) ParseVoiceTransaction(c *gin.Context) {
	if co.AI == nil {
		httputil.NewError(c, status(errAINotConfigured), errAINotConfigured)
		return
	}

	var request ParseVoiceRequest
	if err := httputil.BindData(c, &request); err != nil {
		httputil.NewError(c, status(err), err)
		return
	}

	user := currentUser(c)

	categories, err := models.CategoryNames(models.DB, user.ID)
	if err != nil {
		httputil.NewError(c, http.StatusInternalServerError, models.ErrGeneral)
		return
	}

	result, err := co.AI.Parse(c.Request.Context(), request.Text, categories)
	if err != nil {
		httputil.NewError(c, status(err), err)
		return
	}

	result.Category = models.FallbackCategory(result.Category, categories)

	c.JSON(http.StatusOK, ParsedTransactionResponse{Data: newParsedTransaction(result, "ai")})
}
