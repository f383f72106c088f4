package v1

import (
	"errors"
	"net/http"

	"github.com/expense-tracker/backend/internal/mail"
	"github.com/expense-tracker/backend/internal/models"
	"github.com/expense-tracker/backend/internal/parser"
)

// status returns the appropriate HTTP status for an error.
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	if errors.Is(err, models.ErrAlreadyProcessed) {
		return http.StatusConflict
	}

	// The upstream AI service failed, the caller may retry
	if errors.Is(err, parser.ErrParse) {
		return http.StatusBadGateway
	}

	if errors.Is(err, mail.ErrNotConfigured) || errors.Is(err, errAINotConfigured) || errors.Is(err, errSplitwiseNotConfigured) {
		return http.StatusServiceUnavailable
	}

	return http.StatusBadRequest
}

// Authentication errors
var (
	errInvalidCredentials = errors.New("incorrect username or password")
	errInvalidToken       = errors.New("the access token is invalid or expired")
	errFieldsMissing      = errors.New("username, email and password must all be set")
)

// Parser errors
var errAINotConfigured = errors.New("AI parsing is not configured on this server")

// Import errors
var (
	errNoFilePost      = errors.New("you must send a file to this endpoint")
	errWrongFileSuffix = errors.New("this endpoint only supports .csv and .xlsx files")
	errUnknownFormat   = errors.New("the format parameter must be csv or xlsx")
)

// Splitwise errors
var (
	errSplitwiseNotConfigured = errors.New("the Splitwise integration is not configured on this server")
	errSplitwiseNotConnected  = errors.New("your account is not connected to Splitwise")
	errSplitwiseBadState      = errors.New("the state parameter is invalid or expired, please restart the authorization")
)
