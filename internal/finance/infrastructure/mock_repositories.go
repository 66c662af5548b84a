package infrastructure

import (
	"sort"

	"github.com/fintrackapp/fintrack/internal/finance/domain"
	financeErrors "github.com/fintrackapp/fintrack/internal/finance/errors"
	"github.com/shopspring/decimal"
)

// MockAccountRepository is an in-memory AccountRepository for service tests.
// ReferencedAccounts marks accounts that still have transactions, which the
// real repository detects through the foreign key constraint.
type MockAccountRepository struct {
	Accounts           map[string]*domain.Account
	ReferencedAccounts map[string]bool
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{
		Accounts:           make(map[string]*domain.Account),
		ReferencedAccounts: make(map[string]bool),
	}
}

func (m *MockAccountRepository) Save(account domain.Account) error {
	stored := account
	m.Accounts[account.ID] = &stored
	return nil
}

func (m *MockAccountRepository) FindByUser(userID string) ([]domain.Account, error) {
	var accounts []domain.Account
	for _, account := range m.Accounts {
		if account.UserID == userID {
			accounts = append(accounts, *account)
		}
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].Name < accounts[j].Name })
	return accounts, nil
}

func (m *MockAccountRepository) FindByID(accountID, userID string) (*domain.Account, error) {
	account, ok := m.Accounts[accountID]
	if !ok || account.UserID != userID {
		return nil, financeErrors.ErrAccountNotFound
	}
	copied := *account
	return &copied, nil
}

func (m *MockAccountRepository) Update(account domain.Account) error {
	existing, ok := m.Accounts[account.ID]
	if !ok || existing.UserID != account.UserID {
		return financeErrors.ErrAccountNotFound
	}
	stored := account
	stored.Balance = existing.Balance
	stored.InitialBalance = existing.InitialBalance
	m.Accounts[account.ID] = &stored
	return nil
}

func (m *MockAccountRepository) Delete(accountID, userID string) error {
	existing, ok := m.Accounts[accountID]
	if !ok || existing.UserID != userID {
		return financeErrors.ErrAccountNotFound
	}
	if m.ReferencedAccounts[accountID] {
		return financeErrors.ErrAccountHasTransactions
	}
	delete(m.Accounts, accountID)
	return nil
}

func (m *MockAccountRepository) Summary(userID string) (*domain.AccountSummary, error) {
	summary := &domain.AccountSummary{TotalBalance: decimal.Zero}
	for _, account := range m.Accounts {
		if account.UserID != userID {
			continue
		}
		summary.Count++
		if account.IsActive {
			summary.ActiveCount++
		}
		summary.TotalBalance = summary.TotalBalance.Add(account.Balance)
	}
	return summary, nil
}

// MockCategoryRepository is an in-memory CategoryRepository for service
// tests. ReferencedCategories plays the role of the transactions foreign key.
type MockCategoryRepository struct {
	Categories           map[string]*domain.Category
	ReferencedCategories map[string]bool
}

func NewMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{
		Categories:           make(map[string]*domain.Category),
		ReferencedCategories: make(map[string]bool),
	}
}

func (m *MockCategoryRepository) Save(category domain.Category) error {
	for _, existing := range m.Categories {
		if existing.UserID == category.UserID && existing.Name == category.Name {
			return financeErrors.NewValidationError("A category with this name already exists")
		}
	}
	stored := category
	m.Categories[category.ID] = &stored
	return nil
}

func (m *MockCategoryRepository) FindByUser(userID, categoryType string) ([]domain.Category, error) {
	var categories []domain.Category
	for _, category := range m.Categories {
		if category.UserID != userID {
			continue
		}
		if categoryType != "" && category.Type != categoryType {
			continue
		}
		categories = append(categories, *category)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Name < categories[j].Name })
	return categories, nil
}

func (m *MockCategoryRepository) FindByID(categoryID, userID string) (*domain.Category, error) {
	category, ok := m.Categories[categoryID]
	if !ok || category.UserID != userID {
		return nil, financeErrors.ErrCategoryNotFound
	}
	copied := *category
	return &copied, nil
}

func (m *MockCategoryRepository) Update(category domain.Category) error {
	existing, ok := m.Categories[category.ID]
	if !ok || existing.UserID != category.UserID {
		return financeErrors.ErrCategoryNotFound
	}
	stored := category
	m.Categories[category.ID] = &stored
	return nil
}

func (m *MockCategoryRepository) Delete(categoryID, userID string) error {
	existing, ok := m.Categories[categoryID]
	if !ok || existing.UserID != userID {
		return financeErrors.ErrCategoryNotFound
	}
	if m.ReferencedCategories[categoryID] {
		return financeErrors.ErrCategoryHasTransactions
	}
	delete(m.Categories, categoryID)
	return nil
}

func (m *MockCategoryRepository) CountByUser(userID string) (int, error) {
	count := 0
	for _, category := range m.Categories {
		if category.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (m *MockCategoryRepository) HasTransactions(categoryID string) (bool, error) {
	return m.ReferencedCategories[categoryID], nil
}
