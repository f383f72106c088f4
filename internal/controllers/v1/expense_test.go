package v1_test

import (
	"net/http"

	v1 "github.com/expense-tracker/backend/internal/controllers/v1"
	"github.com/expense-tracker/backend/internal/models"
	"github.com/expense-tracker/backend/test"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) createExpense(co v1.Controller, headers map[string]string, editable map[string]any) v1.Expense {
	recorder := test.Request(co, suite.T(), http.MethodPost, "/v1/expenses", editable, headers)
	if recorder.Code != http.StatusCreated {
		suite.Assert().FailNow("expense could not be created", "status %d, body %s", recorder.Code, recorder.Body.String())
	}

	var response v1.ExpenseResponse
	suite.decode(recorder.Body.Bytes(), &response)

	return response.Data
}

func expenseEditable(amount, category, date string) map[string]any {
	return map[string]any{
		"amount":      amount,
		"category":    category,
		"description": "test expense",
		"date":        date,
		"type":        "expense",
	}
}

func (suite *TestSuiteStandard) TestCreateExpense() {
	co := suite.controller()
	headers := suite.signup(co, "maria")

	expense := suite.createExpense(co, headers, expenseEditable("47.5", "Food", "2024-01-05"))

	suite.Assert().True(decimal.RequireFromString("47.5").Equal(expense.Amount), "amount is %s", expense.Amount)
	suite.Assert().Equal("Food", expense.Category)
}

func (suite *TestSuiteStandard) TestCreateExpenseInvalid() {
	co := suite.controller()
	headers := suite.signup(co, "maria")

	tests := []struct {
		name string
		body map[string]any
	}{
		{"no amount", map[string]any{"category": "Food", "date": "2024-01-05"}},
		{"negative amount", expenseEditable("-5", "Food", "2024-01-05")},
		{"no date", map[string]any{"amount": "5", "category": "Food"}},
		{"bad date", expenseEditable("5", "Food", "05.01.2024")},
	}

	for _, tt := range tests {
		recorder := test.Request(co, suite.T(), http.MethodPost, "/v1/expenses", tt.body, headers)
		suite.Assert().Equal(http.StatusBadRequest, recorder.Code, "%s: %s", tt.name, recorder.Body.String())
	}
}

func (suite *TestSuiteStandard) TestCreateExpenseAmountNotPositive() {
	co := suite.controller()
	headers := suite.signup(co, "maria")

	for _, amount := range []string{"0", "-5"} {
		recorder := test.Request(co, suite.T(), http.MethodPost, "/v1/expenses", expenseEditable(amount, "Food", "2024-01-05"), headers)
		suite.Assert().Equal(http.StatusBadRequest, recorder.Code, recorder.Body.String())
		suite.Assert().Equal(models.ErrAmountNotPositive.Error(), test.DecodeError(suite.T(), recorder.Body.Bytes()))
	}
}

func (suite *TestSuiteStandard) TestGetExpensesFiltered() {
	co := suite.controller()
	headers := suite.signup(co, "maria")

	suite.createExpense(co, headers, expenseEditable("5", "Food", "2024-01-05"))
	suite.createExpense(co, headers, expenseEditable("10", "Transport", "2024-02-01"))

	recorder := test.Request(co, suite.T(), http.MethodGet, "/v1/expenses?category=Food", nil, headers)
	suite.Assert().Equal(http.StatusOK, recorder.Code)

	var response v1.ExpenseListResponse
	suite.decode(recorder.Body.Bytes(), &response)
	suite.Require().Len(response.Data, 1)
	suite.Assert().Equal("Food", response.Data[0].Category)

	recorder = test.Request(co, suite.T(), http.MethodGet, "/v1/expenses?from=2024-01-15", nil, headers)
	suite.decode(recorder.Body.Bytes(), &response)
	suite.Require().Len(response.Data, 1)
	suite.Assert().Equal("Transport", response.Data[0].Category)

	recorder = test.Request(co, suite.T(), http.MethodGet, "/v1/expenses?to=2024-01-15", nil, headers)
	suite.decode(recorder.Body.Bytes(), &response)
	suite.Require().Len(response.Data, 1)
	suite.Assert().Equal("Food", response.Data[0].Category)
}

func (suite *TestSuiteStandard) TestExpenseIsolation() {
	co := suite.controller()
	headers := suite.signup(co, "maria")
	otherHeaders := suite.signup(co, "other")

	expense := suite.createExpense(co, headers, expenseEditable("5", "Food", "2024-01-05"))

	// Another user cannot see, edit or delete the expense
	recorder := test.Request(co, suite.T(), http.MethodGet, "/v1/expenses/"+expense.ID.String(), nil, otherHeaders)
	suite.Assert().Equal(http.StatusNotFound, recorder.Code, recorder.Body.String())

	recorder = test.Request(co, suite.T(), http.MethodDelete, "/v1/expenses/"+expense.ID.String(), nil, otherHeaders)
	suite.Assert().Equal(http.StatusNotFound, recorder.Code, recorder.Body.String())

	recorder = test.Request(co, suite.T(), http.MethodGet, "/v1/expenses", nil, otherHeaders)
	var response v1.ExpenseListResponse
	suite.decode(recorder.Body.Bytes(), &response)
	suite.Assert().Len(response.Data, 0)
}

func (suite *TestSuiteStandard) TestUpdateExpense() {
	co := suite.controller()
	headers := suite.signup(co, "maria")
	expense := suite.createExpense(co, headers, expenseEditable("5", "Food", "2024-01-05"))

	recorder := test.Request(co, suite.T(), http.MethodPatch, "/v1/expenses/"+expense.ID.String(), map[string]any{"amount": "7.5"}, headers)
	suite.Assert().Equal(http.StatusOK, recorder.Code, recorder.Body.String())

	recorder = test.Request(co, suite.T(), http.MethodGet, "/v1/expenses/"+expense.ID.String(), nil, headers)
	var response v1.ExpenseResponse
	suite.decode(recorder.Body.Bytes(), &response)

	suite.Assert().True(decimal.RequireFromString("7.5").Equal(response.Data.Amount), "amount is %s", response.Data.Amount)
	suite.Assert().Equal("Food", response.Data.Category)
}

func (suite *TestSuiteStandard) TestDeleteExpense() {
	co := suite.controller()
	headers := suite.signup(co, "maria")
	expense := suite.createExpense(co, headers, expenseEditable("5", "Food", "2024-01-05"))

	recorder := test.Request(co, suite.T(), http.MethodDelete, "/v1/expenses/"+expense.ID.String(), nil, headers)
	suite.Assert().Equal(http.StatusNoContent, recorder.Code)

	recorder = test.Request(co, suite.T(), http.MethodGet, "/v1/expenses/"+expense.ID.String(), nil, headers)
	suite.Assert().Equal(http.StatusNotFound, recorder.Code)
}

func (suite *TestSuiteStandard) TestExpenseInvalidID() {
	co := suite.controller()
	headers := suite.signup(co, "maria")

	recorder := test.Request(co, suite.T(), http.MethodGet, "/v1/expenses/not-a-uuid", nil, headers)
	suite.Assert().Equal(http.StatusBadRequest, recorder.Code, recorder.Body.String())
}
