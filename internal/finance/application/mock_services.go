package application

import (
	"github.com/fintrackapp/fintrack/internal/finance/domain"
	financeErrors "github.com/fintrackapp/fintrack/internal/finance/errors"
	"github.com/fintrackapp/fintrack/internal/finance/infrastructure"
)

// MockAccountService resolves accounts straight from a MockLedger so
// service tests see the same state the maintainer mutates.
type MockAccountService struct {
	Ledger *infrastructure.MockLedger
}

func (m *MockAccountService) GetAccount(accountID, userID string) (*domain.Account, error) {
	account, ok := m.Ledger.Accounts[accountID]
	if !ok || account.UserID != userID {
		return nil, financeErrors.ErrAccountNotFound
	}
	copied := *account
	return &copied, nil
}

type MockCategoryService struct {
	Categories map[string]*domain.Category
}

func (m *MockCategoryService) GetCategory(categoryID, userID string) (*domain.Category, error) {
	category, ok := m.Categories[categoryID]
	if !ok || category.UserID != userID {
		return nil, financeErrors.ErrCategoryNotFound
	}
	copied := *category
	return &copied, nil
}
