package interfaces

import (
	"errors"
	"time"

	"github.com/fintrackapp/fintrack/internal/finance/application"
	"github.com/fintrackapp/fintrack/internal/finance/domain"
	financeErrors "github.com/fintrackapp/fintrack/internal/finance/errors"
)

var errMockFailure = errors.New("mock service failure")

type MockTransactionService struct {
	Transactions []domain.Transaction
	Totals       domain.TransactionTotals
	Err          error

	Created *domain.Transaction
	Updated *domain.Transaction
	Deleted string
}

func (m *MockTransactionService) CreateTransaction(transaction *domain.Transaction) error {
	if m.Err != nil {
		return m.Err
	}
	m.Created = transaction
	return nil
}

func (m *MockTransactionService) UpdateTransaction(transaction *domain.Transaction) error {
	if m.Err != nil {
		return m.Err
	}
	m.Updated = transaction
	return nil
}

func (m *MockTransactionService) DeleteTransaction(transactionID, userID string) error {
	if m.Err != nil {
		return m.Err
	}
	m.Deleted = transactionID
	return nil
}

func (m *MockTransactionService) GetTransaction(transactionID, userID string) (*domain.Transaction, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for i := range m.Transactions {
		if m.Transactions[i].ID == transactionID {
			return &m.Transactions[i], nil
		}
	}
	return nil, financeErrors.ErrTransactionNotFound
}

func (m *MockTransactionService) GetUserTransactions(userID string, filter domain.TransactionFilter) ([]domain.Transaction, domain.TransactionTotals, error) {
	if m.Err != nil {
		return nil, domain.TransactionTotals{}, m.Err
	}
	return m.Transactions, m.Totals, nil
}

func (m *MockTransactionService) GetTransactionSummary(userID string, startDate, endDate time.Time) (map[int]application.TransactionSummary, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return map[int]application.TransactionSummary{}, nil
}

type MockAccountHandlerService struct {
	Accounts []domain.Account
	Summary  domain.AccountSummary
	Err      error

	Created *domain.Account
	Deleted string
}

func (m *MockAccountHandlerService) CreateAccount(account *domain.Account) error {
	if m.Err != nil {
		return m.Err
	}
	m.Created = account
	return nil
}

func (m *MockAccountHandlerService) GetAccount(accountID, userID string) (*domain.Account, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for i := range m.Accounts {
		if m.Accounts[i].ID == accountID {
			return &m.Accounts[i], nil
		}
	}
	return nil, financeErrors.ErrAccountNotFound
}

func (m *MockAccountHandlerService) GetUserAccounts(userID string) ([]domain.Account, *domain.AccountSummary, error) {
	if m.Err != nil {
		return nil, nil, m.Err
	}
	return m.Accounts, &m.Summary, nil
}

func (m *MockAccountHandlerService) UpdateAccount(account *domain.Account) error {
	return m.Err
}

func (m *MockAccountHandlerService) DeleteAccount(accountID, userID string) error {
	if m.Err != nil {
		return m.Err
	}
	m.Deleted = accountID
	return nil
}

type MockCategoryHandlerService struct {
	Categories []domain.Category
	Err        error

	Created *domain.Category
}

func (m *MockCategoryHandlerService) CreateCategory(category *domain.Category) error {
	if m.Err != nil {
		return m.Err
	}
	m.Created = category
	return nil
}

func (m *MockCategoryHandlerService) GetUserCategories(userID, categoryType string) ([]domain.Category, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if categoryType == "" {
		return m.Categories, nil
	}
	var filtered []domain.Category
	for _, category := range m.Categories {
		if category.Type == categoryType {
			filtered = append(filtered, category)
		}
	}
	return filtered, nil
}

func (m *MockCategoryHandlerService) UpdateCategory(category *domain.Category) error {
	return m.Err
}

func (m *MockCategoryHandlerService) DeleteCategory(categoryID, userID string) error {
	return m.Err
}

func (m *MockCategoryHandlerService) CreateDefaultCategories(userID string) ([]domain.Category, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Categories, nil
}
