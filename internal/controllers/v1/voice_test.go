package v1_test

import (
	"context"
	"net/http"

	v1 "github.com/expense-tracker/backend/internal/controllers/v1"
	"github.com/expense-tracker/backend/internal/models"
	"github.com/expense-tracker/backend/internal/parser"
	"github.com/expense-tracker/backend/test"
	"github.com/shopspring/decimal"
)

// stubParser returns a fixed result or error.
type stubParser struct {
	result parser.Result
	err    error
}

func (s stubParser) Parse(_ context.Context, _ string, _ []string) (parser.Result, error) {
	return s.result, s.err
}

func (suite *TestSuiteStandard) TestParseVoiceNotConfigured() {
	co := suite.controller()
	headers := suite.signup(co, "maria")

	recorder := test.Request(co, suite.T(), http.MethodPost, "/v1/voice/parse-transaction", v1.ParseVoiceRequest{Text: "coffee for 500"}, headers)
	suite.Assert().Equal(http.StatusServiceUnavailable, recorder.Code, recorder.Body.String())
}

func (suite *TestSuiteStandard) TestParseVoice() {
	co := suite.controller()
	co.AI = stubParser{result: parser.Result{
		Amount:      decimal.NewFromInt(500),
		Description: "Coffee",
		Category:    "food",
		Date:        "2024-01-05",
		Type:        models.TypeExpense,
		Confidence:  0.9,
	}}

	headers := suite.signup(co, "maria")
	suite.createCategory(co, headers, "Food")

	recorder := test.Request(co, suite.T(), http.MethodPost, "/v1/voice/parse-transaction", v1.ParseVoiceRequest{Text: "I spent 500 on coffee"}, headers)
	suite.Assert().Equal(http.StatusOK, recorder.Code, recorder.Body.String())

	var response v1.ParsedTransactionResponse
	suite.decode(recorder.Body.Bytes(), &response)

	suite.Assert().Equal("ai", response.Data.Source)

	// The parsed category is normalized against the user's category list
	suite.Assert().Equal("Food", response.Data.Category)
}

func (suite *TestSuiteStandard) TestParseVoiceFailure() {
	co := suite.controller()
	co.AI = stubParser{err: parser.ErrParse}

	headers := suite.signup(co, "maria")

	// No heuristic fallback for voice, the caller retries
	recorder := test.Request(co, suite.T(), http.MethodPost, "/v1/voice/parse-transaction", v1.ParseVoiceRequest{Text: "mumble"}, headers)
	suite.Assert().Equal(http.StatusBadGateway, recorder.Code, recorder.Body.String())
}

func (suite *TestSuiteStandard) TestParseSMSFallsBack() {
	co := suite.controller()
	co.AI = stubParser{err: parser.ErrParse}

	// SMS parsing falls back to the heuristic parser when the AI fails
	recorder := test.Request(co, suite.T(), http.MethodPost, "/v1/sms/parse", v1.ParseSMSRequest{
		SMS: "Rs. 450.00 debited at Starbucks",
	})
	suite.Assert().Equal(http.StatusOK, recorder.Code, recorder.Body.String())

	var response v1.ParsedTransactionResponse
	suite.decode(recorder.Body.Bytes(), &response)
	suite.Assert().Equal("heuristic", response.Data.Source)
}
