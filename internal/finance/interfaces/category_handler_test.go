package interfaces

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fintrackapp/fintrack/internal/finance/domain"
	financeErrors "github.com/fintrackapp/fintrack/internal/finance/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetUserCategories_ValidTypeIncome(t *testing.T) {
	req := authenticatedRequest(http.MethodGet, "/api/categories?type=income", "")
	w := httptest.NewRecorder()

	mockService := &MockCategoryHandlerService{
		Categories: []domain.Category{
			{ID: "c1", Name: "Salary", Type: domain.TransactionTypeIncome},
			{ID: "c2", Name: "Food", Type: domain.TransactionTypeExpense},
		},
	}
	handler := NewCategoryHandler(mockService, respondJSON, respondError)
	handler.GetUserCategories(w, req)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusOK, res.StatusCode)
	response := decodeResponse(t, res)
	data, ok := response["data"].([]interface{})
	require.True(t, ok)
	assert.Len(t, data, 1)
}

func TestGetUserCategories_InvalidType(t *testing.T) {
	req := authenticatedRequest(http.MethodGet, "/api/categories?type=invalidType", "")
	w := httptest.NewRecorder()

	handler := NewCategoryHandler(&MockCategoryHandlerService{}, respondJSON, respondError)
	handler.GetUserCategories(w, req)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "Invalid category type", decodeResponse(t, res)["message"])
}

func TestGetUserCategories_ErrorFromService(t *testing.T) {
	req := authenticatedRequest(http.MethodGet, "/api/categories", "")
	w := httptest.NewRecorder()

	mockService := &MockCategoryHandlerService{Err: errMockFailure}
	handler := NewCategoryHandler(mockService, respondJSON, respondError)
	handler.GetUserCategories(w, req)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, res.StatusCode)
	assert.Equal(t, "Failed to retrieve categories", decodeResponse(t, res)["message"])
}

func TestCreateCategory_Success(t *testing.T) {
	body := `{"name":"Pets","type":"expense","color":"#EF4444"}`
	req := authenticatedRequest(http.MethodPost, "/api/categories", body)
	w := httptest.NewRecorder()

	mockService := &MockCategoryHandlerService{}
	handler := NewCategoryHandler(mockService, respondJSON, respondError)
	handler.CreateCategory(w, req)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusCreated, res.StatusCode)
	require.NotNil(t, mockService.Created)
	assert.Equal(t, handlerTestUserID, mockService.Created.UserID)
}

func TestUpdateCategory_TypeLockedConflict(t *testing.T) {
	body := `{"name":"Pets","type":"income"}`
	req := authenticatedRequest(http.MethodPut, "/api/categories/c1", body)
	req.SetPathValue("categoryID", "c1")
	w := httptest.NewRecorder()

	mockService := &MockCategoryHandlerService{Err: financeErrors.ErrCategoryTypeLocked}
	handler := NewCategoryHandler(mockService, respondJSON, respondError)
	handler.UpdateCategory(w, req)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusConflict, res.StatusCode)
}

func TestDeleteCategory_ConflictWhileReferenced(t *testing.T) {
	req := authenticatedRequest(http.MethodDelete, "/api/categories/c1", "")
	req.SetPathValue("categoryID", "c1")
	w := httptest.NewRecorder()

	mockService := &MockCategoryHandlerService{Err: financeErrors.ErrCategoryHasTransactions}
	handler := NewCategoryHandler(mockService, respondJSON, respondError)
	handler.DeleteCategory(w, req)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusConflict, res.StatusCode)
}

func TestCreateDefaultCategories_Success(t *testing.T) {
	req := authenticatedRequest(http.MethodPost, "/api/categories/defaults", "")
	w := httptest.NewRecorder()

	mockService := &MockCategoryHandlerService{
		Categories: []domain.Category{
			{ID: "c1", Name: "Salary", Type: domain.TransactionTypeIncome},
		},
	}
	handler := NewCategoryHandler(mockService, respondJSON, respondError)
	handler.CreateDefaultCategories(w, req)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusCreated, res.StatusCode)
	assert.Equal(t, "success", decodeResponse(t, res)["status"])
}
