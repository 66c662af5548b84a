package infrastructure

import (
	"time"

	"github.com/fintrackapp/fintrack/internal/finance/domain"
	financeErrors "github.com/fintrackapp/fintrack/internal/finance/errors"
	"github.com/shopspring/decimal"
)

// MockLedger is an in-memory stand-in for the PostgreSQL transaction
// repository. InTransaction snapshots the state up front and restores it
// when the unit fails, mirroring the all-or-nothing behavior of the real
// database transaction.
type MockLedger struct {
	Accounts     map[string]*domain.Account
	Transactions map[string]*domain.Transaction

	// FailApplyDelta, when set, makes every balance adjustment fail. Used
	// to exercise rollback behavior.
	FailApplyDelta error
}

func NewMockLedger() *MockLedger {
	return &MockLedger{
		Accounts:     make(map[string]*domain.Account),
		Transactions: make(map[string]*domain.Transaction),
	}
}

func (m *MockLedger) AddAccount(account domain.Account) *domain.Account {
	stored := account
	m.Accounts[account.ID] = &stored
	return &stored
}

func (m *MockLedger) snapshot() (map[string]*domain.Account, map[string]*domain.Transaction) {
	accounts := make(map[string]*domain.Account, len(m.Accounts))
	for id, account := range m.Accounts {
		copied := *account
		accounts[id] = &copied
	}
	transactions := make(map[string]*domain.Transaction, len(m.Transactions))
	for id, transaction := range m.Transactions {
		copied := *transaction
		transactions[id] = &copied
	}
	return accounts, transactions
}

func (m *MockLedger) InTransaction(fn func(ledger domain.LedgerTx) error) error {
	accounts, transactions := m.snapshot()
	if err := fn(m); err != nil {
		m.Accounts = accounts
		m.Transactions = transactions
		return err
	}
	return nil
}

func (m *MockLedger) Save(transaction domain.Transaction) error {
	stored := transaction
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	m.Transactions[transaction.ID] = &stored
	return nil
}

func (m *MockLedger) FindForUpdate(transactionID, userID string) (*domain.Transaction, error) {
	transaction, ok := m.Transactions[transactionID]
	if !ok || transaction.UserID != userID {
		return nil, financeErrors.ErrTransactionNotFound
	}
	copied := *transaction
	return &copied, nil
}

func (m *MockLedger) Update(transaction domain.Transaction) error {
	existing, ok := m.Transactions[transaction.ID]
	if !ok || existing.UserID != transaction.UserID {
		return financeErrors.ErrTransactionNotFound
	}
	stored := transaction
	stored.CreatedAt = existing.CreatedAt
	stored.UpdatedAt = time.Now()
	m.Transactions[transaction.ID] = &stored
	return nil
}

func (m *MockLedger) Delete(transactionID, userID string) error {
	existing, ok := m.Transactions[transactionID]
	if !ok || existing.UserID != userID {
		return financeErrors.ErrTransactionNotFound
	}
	delete(m.Transactions, transactionID)
	return nil
}

func (m *MockLedger) AccountBalanceForUpdate(accountID, userID string) (decimal.Decimal, error) {
	account, ok := m.Accounts[accountID]
	if !ok || account.UserID != userID {
		return decimal.Zero, financeErrors.ErrAccountNotFound
	}
	return account.Balance, nil
}

func (m *MockLedger) ApplyBalanceDelta(accountID string, delta decimal.Decimal) error {
	if m.FailApplyDelta != nil {
		return m.FailApplyDelta
	}
	account, ok := m.Accounts[accountID]
	if !ok {
		// Matches the real repository: zero rows updated is a no-op.
		return nil
	}
	account.Balance = account.Balance.Add(delta)
	return nil
}

func (m *MockLedger) FindByID(transactionID, userID string) (*domain.Transaction, error) {
	return m.FindForUpdate(transactionID, userID)
}

func (m *MockLedger) FindByUser(userID string, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	var transactions []domain.Transaction
	for _, transaction := range m.Transactions {
		if transaction.UserID != userID {
			continue
		}
		if !filter.StartDate.IsZero() && transaction.Date.Before(filter.StartDate) {
			continue
		}
		if !filter.EndDate.IsZero() && transaction.Date.After(filter.EndDate) {
			continue
		}
		if filter.AccountID != "" && transaction.AccountID != filter.AccountID {
			continue
		}
		if filter.CategoryID != "" && transaction.CategoryID != filter.CategoryID {
			continue
		}
		if filter.Type != "" && transaction.Type != filter.Type {
			continue
		}
		transactions = append(transactions, *transaction)
	}
	return transactions, nil
}

func (m *MockLedger) Totals(userID string, filter domain.TransactionFilter) (domain.TransactionTotals, error) {
	transactions, err := m.FindByUser(userID, filter)
	if err != nil {
		return domain.TransactionTotals{}, err
	}
	var totals domain.TransactionTotals
	for _, transaction := range transactions {
		if transaction.Type == domain.TransactionTypeIncome {
			totals.Income = totals.Income.Add(transaction.Amount)
		} else {
			totals.Expense = totals.Expense.Add(transaction.Amount)
		}
	}
	totals.Net = totals.Income.Sub(totals.Expense)
	return totals, nil
}

func (m *MockLedger) GetTransactionsInDateRange(userID string, startDate, endDate time.Time) ([]domain.Transaction, error) {
	return m.FindByUser(userID, domain.TransactionFilter{StartDate: startDate, EndDate: endDate})
}
