package interfaces

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fintrackapp/fintrack/internal/finance/domain"
	financeErrors "github.com/fintrackapp/fintrack/internal/finance/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const handlerTestUserID = "7ac83fd7-19a1-49cd-ab02-0b9b84b843d7"

func authenticatedRequest(method, target, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	return req.WithContext(context.WithValue(req.Context(), "userID", handlerTestUserID))
}

func decodeResponse(t *testing.T, res *http.Response) map[string]interface{} {
	t.Helper()
	var response map[string]interface{}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&response))
	return response
}

func TestCreateTransaction_Success(t *testing.T) {
	body := `{"account_id":"a1","category_id":"c1","type":"expense","amount":"25.50","date":"2026-03-10T00:00:00Z"}`
	req := authenticatedRequest(http.MethodPost, "/api/transactions", body)
	w := httptest.NewRecorder()

	mockService := &MockTransactionService{}
	handler := NewTransactionHandler(mockService, respondJSON, respondError)
	handler.CreateTransaction(w, req)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusCreated, res.StatusCode)
	require.NotNil(t, mockService.Created)
	assert.Equal(t, handlerTestUserID, mockService.Created.UserID)
	assert.True(t, mockService.Created.Amount.Equal(decimal.NewFromFloat(25.50)))

	response := decodeResponse(t, res)
	assert.Equal(t, "success", response["status"])
}

func TestCreateTransaction_InvalidBody(t *testing.T) {
	req := authenticatedRequest(http.MethodPost, "/api/transactions", "{not json")
	w := httptest.NewRecorder()

	handler := NewTransactionHandler(&MockTransactionService{}, respondJSON, respondError)
	handler.CreateTransaction(w, req)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "Invalid request body", decodeResponse(t, res)["message"])
}

func TestCreateTransaction_Unauthorized(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/transactions", strings.NewReader(`{}`))
	w := httptest.NewRecorder()

	handler := NewTransactionHandler(&MockTransactionService{}, respondJSON, respondError)
	handler.CreateTransaction(w, req)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestCreateTransaction_InsufficientFunds(t *testing.T) {
	body := `{"account_id":"a1","category_id":"c1","type":"expense","amount":"100","date":"2026-03-10T00:00:00Z"}`
	req := authenticatedRequest(http.MethodPost, "/api/transactions", body)
	w := httptest.NewRecorder()

	mockService := &MockTransactionService{Err: financeErrors.ErrInsufficientFunds}
	handler := NewTransactionHandler(mockService, respondJSON, respondError)
	handler.CreateTransaction(w, req)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "Insufficient balance in the selected account", decodeResponse(t, res)["message"])
}

func TestUpdateTransaction_SetsIDFromPath(t *testing.T) {
	body := `{"account_id":"a1","category_id":"c1","type":"income","amount":"40","date":"2026-03-10T00:00:00Z"}`
	req := authenticatedRequest(http.MethodPut, "/api/transactions/tx-1", body)
	req.SetPathValue("transactionID", "tx-1")
	w := httptest.NewRecorder()

	mockService := &MockTransactionService{}
	handler := NewTransactionHandler(mockService, respondJSON, respondError)
	handler.UpdateTransaction(w, req)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusOK, res.StatusCode)
	require.NotNil(t, mockService.Updated)
	assert.Equal(t, "tx-1", mockService.Updated.ID)
	assert.Equal(t, handlerTestUserID, mockService.Updated.UserID)
}

func TestUpdateTransaction_NotFound(t *testing.T) {
	body := `{"account_id":"a1","category_id":"c1","type":"income","amount":"40","date":"2026-03-10T00:00:00Z"}`
	req := authenticatedRequest(http.MethodPut, "/api/transactions/missing", body)
	req.SetPathValue("transactionID", "missing")
	w := httptest.NewRecorder()

	mockService := &MockTransactionService{Err: financeErrors.ErrTransactionNotFound}
	handler := NewTransactionHandler(mockService, respondJSON, respondError)
	handler.UpdateTransaction(w, req)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestDeleteTransaction_Success(t *testing.T) {
	req := authenticatedRequest(http.MethodDelete, "/api/transactions/tx-1", "")
	req.SetPathValue("transactionID", "tx-1")
	w := httptest.NewRecorder()

	mockService := &MockTransactionService{}
	handler := NewTransactionHandler(mockService, respondJSON, respondError)
	handler.DeleteTransaction(w, req)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "tx-1", mockService.Deleted)
}

func TestGetUserTransactions_ReturnsDataAndTotals(t *testing.T) {
	req := authenticatedRequest(http.MethodGet, "/api/transactions?type=expense", "")
	w := httptest.NewRecorder()

	mockService := &MockTransactionService{
		Transactions: []domain.Transaction{
			{ID: "tx-1", Type: domain.TransactionTypeExpense, Amount: decimal.NewFromInt(200)},
		},
		Totals: domain.TransactionTotals{
			Expense: decimal.NewFromInt(200),
			Net:     decimal.NewFromInt(-200),
		},
	}
	handler := NewTransactionHandler(mockService, respondJSON, respondError)
	handler.GetUserTransactions(w, req)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusOK, res.StatusCode)
	response := decodeResponse(t, res)
	data, ok := response["data"].([]interface{})
	require.True(t, ok)
	assert.Len(t, data, 1)
	totals, ok := response["totals"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "-200", totals["net"])
}

func TestGetUserTransactions_InvalidType(t *testing.T) {
	req := authenticatedRequest(http.MethodGet, "/api/transactions?type=transfer", "")
	w := httptest.NewRecorder()

	handler := NewTransactionHandler(&MockTransactionService{}, respondJSON, respondError)
	handler.GetUserTransactions(w, req)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "Invalid transaction type", decodeResponse(t, res)["message"])
}

func TestGetUserTransactions_InvalidDate(t *testing.T) {
	req := authenticatedRequest(http.MethodGet, "/api/transactions?start_date=10-03-2026", "")
	w := httptest.NewRecorder()

	handler := NewTransactionHandler(&MockTransactionService{}, respondJSON, respondError)
	handler.GetUserTransactions(w, req)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestGetTransaction_NotFound(t *testing.T) {
	req := authenticatedRequest(http.MethodGet, "/api/transactions/missing", "")
	req.SetPathValue("transactionID", "missing")
	w := httptest.NewRecorder()

	handler := NewTransactionHandler(&MockTransactionService{}, respondJSON, respondError)
	handler.GetTransaction(w, req)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestGetTransactionSummary_Success(t *testing.T) {
	req := authenticatedRequest(http.MethodGet, "/api/transactions/summary?start_date=2026-01-01&end_date=2026-06-30", "")
	w := httptest.NewRecorder()

	handler := NewTransactionHandler(&MockTransactionService{}, respondJSON, respondError)
	handler.GetTransactionSummary(w, req)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "success", decodeResponse(t, res)["status"])
}
