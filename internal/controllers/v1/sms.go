package v1

import (
	"net/http"
	"net/url"

	"github.com/expense-tracker/backend/internal/httputil"
	"github.com/expense-tracker/backend/internal/models"
	"github.com/expense-tracker/backend/internal/parser"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

type ParseSMSRequest struct {
	SMS string `json:"sms" example:"INR 450.00 debited from your account at STARBUCKS on 05-01-24"`
}

// ParsedTransaction is the structured result of parsing free-form text.
type ParsedTransaction struct {
	Amount      decimal.Decimal        `json:"amount" example:"450"`
	Description string                 `json:"description" example:"Starbucks"`
	Category    string                 `json:"category" example:"Food"`
	Date        string                 `json:"date" example:"2024-01-05"`
	Type        models.TransactionType `json:"type" example:"expense"`
	Confidence  float64                `json:"confidence" example:"0.7"`

	// Source is "ai" or "heuristic", depending on which parser produced
	// the result.
	Source string `json:"source" example:"heuristic"`
}

type ParsedTransactionResponse struct {
	Data ParsedTransaction `json:"data"`
}

func newParsedTransaction(result parser.Result, source string) ParsedTransaction {
	return ParsedTransaction{
		Amount:      result.Amount,
		Description: result.Description,
		Category:    result.Category,
		Date:        result.Date,
		Type:        result.Type,
		Confidence:  result.Confidence,
		Source:      source,
	}
}

// parseText runs the AI parser when it is configured and falls back to the
// heuristic parser when the AI fails. The heuristic parser never fails, so
// neither does parseText.
func (co Controller) parseText(c *gin.Context, text string, categories []string) (parser.Result, string) {
	if co.AI != nil {
		result, err := co.AI.Parse(c.Request.Context(), text, categories)
		if err == nil {
			return result, "ai"
		}

		log.Warn().Str("request-id", requestid.Get(c)).Err(err).Msg("AI parse failed, falling back to heuristic")
	}

	result, _ := co.Heuristic.Parse(c.Request.Context(), text, categories)
	return result, "heuristic"
}

// @Summary		Parse an SMS
// @Description	Parses a bank notification SMS into a structured transaction. Uses the AI parser when configured, falls back to heuristics otherwise.
// @Tags			Parsing
// @Produce		json
// @Success		200	{object}	ParsedTransactionResponse
// @Failure		400	{object}	httputil.HTTPError
// @Param			sms	body		ParseSMSRequest	true	"SMS text"
// @Router			/v1/sms/parse [post]
func (co Controller) ParseSMS(c *gin.Context) {
	var request ParseSMSRequest
	if err := httputil.BindData(c, &request); err != nil {
		httputil.NewError(c, status(err), err)
		return
	}

	result, source := co.parseText(c, request.SMS, nil)

	c.JSON(http.StatusOK, ParsedTransactionResponse{Data: newParsedTransaction(result, source)})
}

// @Summary		Parse an SMS and open the confirmation page
// @Description	Parses the sms query parameter, prefills the pending transaction behind the token and redirects to its confirmation page with the parsed values as query parameters. Built for messaging automations that can only follow a URL.
// @Tags			Parsing
// @Success		302
// @Failure		404		{object}	httputil.HTTPError
// @Param			token	path		string	true	"Token of the pending transaction"
// @Param			sms		query		string	false	"SMS text"
// @Router			/v1/sms/generate-url/{token} [get]
func (co Controller) GenerateURLFromSMS(c *gin.Context) {
	pending, err := models.PendingTransactionByToken(models.DB, c.Param("token"))
	if err != nil {
		httputil.NewError(c, status(err), err)
		return
	}

	text := c.Query("sms")
	if text == "" {
		c.Redirect(http.StatusFound, co.shareURL(pending.Token))
		return
	}

	var categories []string
	if pending.UserID != nil {
		categories, _ = models.CategoryNames(models.DB, *pending.UserID)
	}

	result, _ := co.parseText(c, text, categories)
	result.Category = models.FallbackCategory(result.Category, categories)

	update := models.PendingTransaction{
		Amount:      result.Amount,
		Category:    result.Category,
		Description: result.Description,
		Date:        result.Date,
		Type:        result.Type,
	}

	fields := []any{"Amount", "Category", "Description", "Date", "Type"}
	if err := pending.UpdatePending(models.DB, update, fields); err != nil {
		// The record was approved or cancelled in the meantime. Send the
		// user to the page anyway, it shows the current state.
		log.Warn().Str("request-id", requestid.Get(c)).Err(err).Msg("could not prefill pending transaction")
		c.Redirect(http.StatusFound, co.shareURL(pending.Token))
		return
	}

	values := url.Values{}
	values.Set("amount", result.Amount.String())
	values.Set("note", result.Description)
	values.Set("category", result.Category)
	values.Set("type", string(result.Type))

	c.Redirect(http.StatusFound, co.shareURL(pending.Token)+"?"+values.Encode())
}
