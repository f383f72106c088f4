package v1_test

import (
	"context"
	"net/http"
	"net/url"
	"time"

	v1 "github.com/expense-tracker/backend/internal/controllers/v1"
	"github.com/expense-tracker/backend/internal/models"
	"github.com/expense-tracker/backend/internal/splitwise"
	"github.com/expense-tracker/backend/test"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"golang.org/x/oauth2"
)

// stubSplitwiseClient serves canned API answers for the sync tests.
type stubSplitwiseClient struct {
	user     splitwise.User
	expenses []splitwise.Expense
}

func (s stubSplitwiseClient) CurrentUser(_ context.Context) (splitwise.User, error) {
	return s.user, nil
}

func (s stubSplitwiseClient) Expenses(_ context.Context, _ time.Time) ([]splitwise.Expense, error) {
	return s.expenses, nil
}

func (s stubSplitwiseClient) Groups(_ context.Context) (map[int64]string, error) {
	return map[int64]string{}, nil
}

// connectSplitwise stores a connection for the user identified by the headers.
func (suite *TestSuiteStandard) connectSplitwise(co v1.Controller, headers map[string]string) models.SplitwiseConnection {
	recorder := test.Request(co, suite.T(), http.MethodGet, "/v1/me", nil, headers)
	suite.Require().Equal(http.StatusOK, recorder.Code)

	var me v1.UserResponse
	suite.decode(recorder.Body.Bytes(), &me)

	conn := models.SplitwiseConnection{UserID: me.Data.ID, SplitwiseUserID: 42}
	suite.Require().Nil(models.DB.Create(&conn).Error)

	return conn
}

func (suite *TestSuiteStandard) TestSplitwiseStatusNotConnected() {
	co := suite.controller()
	headers := suite.signup(co, "maria")

	recorder := test.Request(co, suite.T(), http.MethodGet, "/v1/splitwise/status", nil, headers)
	suite.Assert().Equal(http.StatusOK, recorder.Code, recorder.Body.String())

	var response v1.SplitwiseStatusResponse
	suite.decode(recorder.Body.Bytes(), &response)
	suite.Assert().False(response.Data.Configured)
	suite.Assert().False(response.Data.Connected)
}

func (suite *TestSuiteStandard) TestSplitwiseConnectNotConfigured() {
	co := suite.controller()
	headers := suite.signup(co, "maria")

	recorder := test.Request(co, suite.T(), http.MethodPost, "/v1/splitwise/connect", nil, headers)
	suite.Assert().Equal(http.StatusServiceUnavailable, recorder.Code, recorder.Body.String())
}

func (suite *TestSuiteStandard) TestSplitwiseConnect() {
	co := suite.controller()
	co.Config.Splitwise.ClientID = "client-id"
	co.Config.Splitwise.ClientSecret = "client-secret"
	co.Splitwise = splitwise.NewService(co.Config.Splitwise)

	headers := suite.signup(co, "maria")

	recorder := test.Request(co, suite.T(), http.MethodPost, "/v1/splitwise/connect", nil, headers)
	suite.Assert().Equal(http.StatusOK, recorder.Code, recorder.Body.String())

	var response v1.SplitwiseConnectResponse
	suite.decode(recorder.Body.Bytes(), &response)

	authURL, err := url.Parse(response.Data.URL)
	suite.Require().Nil(err)
	suite.Assert().Equal("secure.splitwise.com", authURL.Host)
	suite.Assert().Equal("client-id", authURL.Query().Get("client_id"))
	suite.Assert().NotEmpty(authURL.Query().Get("state"))
}

func (suite *TestSuiteStandard) TestStateTokenGrantsNoAPIAccess() {
	co := suite.controller()
	suite.signup(co, "maria")

	// The OAuth state travels through the authorize URL and browser
	// history, it must never work as an access token
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   "maria",
		Audience:  jwt.ClaimStrings{"splitwise-oauth"},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(10 * time.Minute)),
	}
	state, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	suite.Require().Nil(err)

	recorder := test.Request(co, suite.T(), http.MethodGet, "/v1/me", nil, map[string]string{"Authorization": "Bearer " + state})
	suite.Assert().Equal(http.StatusUnauthorized, recorder.Code, recorder.Body.String())
}

func (suite *TestSuiteStandard) TestSplitwiseSyncNotConnected() {
	co := suite.controller()
	headers := suite.signup(co, "maria")

	recorder := test.Request(co, suite.T(), http.MethodPost, "/v1/splitwise/sync", nil, headers)
	suite.Assert().Equal(http.StatusBadRequest, recorder.Code, recorder.Body.String())
}

func (suite *TestSuiteStandard) TestSplitwiseSync() {
	co := suite.controller()
	co.SplitwiseClient = func(_ context.Context, _ *oauth2.Token) (splitwise.Client, oauth2.TokenSource) {
		return stubSplitwiseClient{
			expenses: []splitwise.Expense{
				{
					ID:          100,
					Description: "Dinner",
					Date:        time.Date(2024, 1, 5, 12, 0, 0, 0, time.UTC),
					Users: []splitwise.ExpenseUser{
						{UserID: 42, OwedShare: decimal.RequireFromString("250.00")},
					},
				},
			},
		}, nil
	}

	headers := suite.signup(co, "maria")
	suite.connectSplitwise(co, headers)

	recorder := test.Request(co, suite.T(), http.MethodPost, "/v1/splitwise/sync", nil, headers)
	suite.Assert().Equal(http.StatusOK, recorder.Code, recorder.Body.String())

	var response v1.SplitwiseSyncResponse
	suite.decode(recorder.Body.Bytes(), &response)
	suite.Assert().Equal(splitwise.SyncResult{Imported: 1}, response.Data)

	// The imported record shows up as an open pending transaction
	recorder = test.Request(co, suite.T(), http.MethodGet, "/v1/pending-transactions", nil, headers)
	var pendings v1.PendingTransactionListResponse
	suite.decode(recorder.Body.Bytes(), &pendings)
	suite.Require().Len(pendings.Data, 1)
	suite.Assert().Equal("Dinner", pendings.Data[0].Description)

	// Approving the import creates the expense like any other record
	recorder = test.Request(co, suite.T(), http.MethodPost, pendings.Data[0].Links.Self+"/approve", nil)
	suite.Assert().Equal(http.StatusCreated, recorder.Code, recorder.Body.String())
}

func (suite *TestSuiteStandard) TestSplitwiseDisconnect() {
	co := suite.controller()
	headers := suite.signup(co, "maria")
	suite.connectSplitwise(co, headers)

	recorder := test.Request(co, suite.T(), http.MethodDelete, "/v1/splitwise/disconnect", nil, headers)
	suite.Assert().Equal(http.StatusNoContent, recorder.Code)

	recorder = test.Request(co, suite.T(), http.MethodGet, "/v1/splitwise/status", nil, headers)
	var response v1.SplitwiseStatusResponse
	suite.decode(recorder.Body.Bytes(), &response)
	suite.Assert().False(response.Data.Connected)
}
