// Package v1 contains the HTTP handlers for API v1.
package v1

import (
	"context"

	"github.com/expense-tracker/backend/internal/config"
	"github.com/expense-tracker/backend/internal/mail"
	"github.com/expense-tracker/backend/internal/parser"
	"github.com/expense-tracker/backend/internal/splitwise"
	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
)

// Controller bundles the configuration and the external collaborators the
// handlers need. It is built once at startup and passed to RegisterRoutes.
type Controller struct {
	Config *config.Config

	// AI is nil when no API key is configured. SMS parsing then uses the
	// heuristic parser only, voice parsing is unavailable.
	AI        parser.Parser
	Heuristic parser.Parser

	Mail      *mail.Client
	Splitwise *splitwise.Service

	// SplitwiseClient builds an API client from a token. Tests replace it
	// with a stub.
	SplitwiseClient func(ctx context.Context, token *oauth2.Token) (splitwise.Client, oauth2.TokenSource)
}

// NewController wires the default collaborators for the configuration.
func NewController(cfg *config.Config) Controller {
	co := Controller{
		Config:    cfg,
		Heuristic: parser.Heuristic{},
		Mail:      mail.New(cfg.SMTP),
		Splitwise: splitwise.NewService(cfg.Splitwise),
	}

	if cfg.AnthropicAPIKey != "" {
		co.AI = parser.NewClaude(cfg.AnthropicAPIKey, cfg.ParseTimeout)
	}

	co.SplitwiseClient = co.Splitwise.Client

	return co
}

// RegisterRoutes registers all v1 routes with the RouterGroup that is passed.
func RegisterRoutes(co Controller, r *gin.RouterGroup) {
	// Authentication
	{
		r.POST("/signup", co.Signup)
		r.POST("/login", co.Login)
		r.POST("/forgot-password", co.ForgotPassword)
		r.POST("/reset-password", co.ResetPassword)
	}

	// Pending transactions, addressed by token. The token is the
	// capability, these routes work without login.
	{
		r.OPTIONS("/pending-transaction/:token", OptionsPendingTransactionDetail)
		r.GET("/pending-transaction/:token", co.GetPendingTransaction)
		r.PATCH("/pending-transaction/:token", co.UpdatePendingTransaction)
		r.PUT("/pending-transaction/:token", co.UpdatePendingTransaction)
		r.DELETE("/pending-transaction/:token", co.DeletePendingTransaction)
		r.POST("/pending-transaction/:token/approve", co.ApprovePendingTransaction)
		r.POST("/pending-transaction/:token/cancel", co.CancelPendingTransaction)

		// Route names used by earlier API revisions
		r.POST("/confirm-pending/:token", co.ApprovePendingTransaction)
		r.POST("/cancel-pending/:token", co.CancelPendingTransaction)
	}

	// SMS parsing is public: the iOS shortcut calling it only knows the
	// pending transaction token
	{
		r.POST("/sms/parse", co.ParseSMS)
		r.GET("/sms/generate-url/:token", co.GenerateURLFromSMS)
	}

	// Splitwise sends the user's browser here after authorization, the
	// request carries no bearer token. The state parameter authenticates it.
	r.GET("/splitwise/callback", co.SplitwiseCallback)

	authenticated := r.Group("", co.Authenticate())
	{
		authenticated.GET("/me", co.Me)

		authenticated.OPTIONS("/expenses", OptionsExpenses)
		authenticated.GET("/expenses", co.GetExpenses)
		authenticated.POST("/expenses", co.CreateExpense)
		authenticated.OPTIONS("/expenses/:id", OptionsExpenseDetail)
		authenticated.GET("/expenses/:id", co.GetExpense)
		authenticated.PATCH("/expenses/:id", co.UpdateExpense)
		authenticated.PUT("/expenses/:id", co.UpdateExpense)
		authenticated.DELETE("/expenses/:id", co.DeleteExpense)

		authenticated.OPTIONS("/categories", OptionsCategories)
		authenticated.GET("/categories", co.GetCategories)
		authenticated.POST("/categories", co.CreateCategory)
		authenticated.PATCH("/categories/:id", co.UpdateCategory)
		authenticated.DELETE("/categories/:id", co.DeleteCategory)

		authenticated.POST("/generate-payment-url", co.GeneratePaymentURL)
		authenticated.GET("/pending-transactions", co.GetPendingTransactions)
		authenticated.POST("/pending-transaction", co.CreatePendingTransaction)

		authenticated.POST("/voice/parse-transaction", co.ParseVoiceTransaction)

		authenticated.GET("/export", co.Export)
		authenticated.POST("/import", co.Import)

		authenticated.GET("/splitwise/status", co.SplitwiseStatus)
		authenticated.POST("/splitwise/connect", co.SplitwiseConnect)
		authenticated.POST("/splitwise/sync", co.SplitwiseSync)
		authenticated.DELETE("/splitwise/disconnect", co.SplitwiseDisconnect)
	}
}
