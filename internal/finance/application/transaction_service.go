package application

import (
	"time"

	"github.com/fintrackapp/fintrack/internal/finance/domain"
	financeErrors "github.com/fintrackapp/fintrack/internal/finance/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type AccountServiceInterface interface {
	GetAccount(accountID, userID string) (*domain.Account, error)
}

type CategoryServiceInterface interface {
	GetCategory(categoryID, userID string) (*domain.Category, error)
}

// TransactionService owns the transaction lifecycle and keeps account
// balances consistent with it. Every create, update and delete runs the
// entity write and the balance adjustment inside one database transaction.
type TransactionService struct {
	repo            domain.TransactionRepository
	accountService  AccountServiceInterface
	categoryService CategoryServiceInterface
}

func NewTransactionService(repo domain.TransactionRepository, accountService AccountServiceInterface, categoryService CategoryServiceInterface) *TransactionService {
	return &TransactionService{repo: repo, accountService: accountService, categoryService: categoryService}
}

// validateReferences checks that the account and category exist, belong to
// the transaction's user, and that the category type matches the
// transaction type.
func (s *TransactionService) validateReferences(transaction *domain.Transaction) error {
	if _, err := s.accountService.GetAccount(transaction.AccountID, transaction.UserID); err != nil {
		return err
	}
	category, err := s.categoryService.GetCategory(transaction.CategoryID, transaction.UserID)
	if err != nil {
		return err
	}
	if category.Type != transaction.Type {
		return financeErrors.ErrCategoryTypeMismatch
	}
	return nil
}

func (s *TransactionService) CreateTransaction(transaction *domain.Transaction) error {
	transaction.ID = uuid.NewString()
	transaction.RoundToTwoDecimalPlaces()
	if err := transaction.Validate(); err != nil {
		return err
	}
	if err := s.validateReferences(transaction); err != nil {
		return err
	}

	return s.repo.InTransaction(func(ledger domain.LedgerTx) error {
		if transaction.Type == domain.TransactionTypeExpense {
			balance, err := ledger.AccountBalanceForUpdate(transaction.AccountID, transaction.UserID)
			if err != nil {
				return err
			}
			if balance.LessThan(transaction.Amount) {
				return financeErrors.ErrInsufficientFunds
			}
		}
		if err := ledger.Save(*transaction); err != nil {
			return err
		}
		return ledger.ApplyBalanceDelta(transaction.AccountID, transaction.Delta())
	})
}

func (s *TransactionService) UpdateTransaction(transaction *domain.Transaction) error {
	transaction.RoundToTwoDecimalPlaces()
	if err := transaction.Validate(); err != nil {
		return err
	}
	if err := s.validateReferences(transaction); err != nil {
		return err
	}

	return s.repo.InTransaction(func(ledger domain.LedgerTx) error {
		previous, err := ledger.FindForUpdate(transaction.ID, transaction.UserID)
		if err != nil {
			return err
		}
		oldDelta := previous.Delta()
		newDelta := transaction.Delta()
		sameAccount := previous.AccountID == transaction.AccountID

		if transaction.Type == domain.TransactionTypeExpense {
			available, err := ledger.AccountBalanceForUpdate(transaction.AccountID, transaction.UserID)
			if err != nil {
				return err
			}
			if sameAccount {
				// The old effect on this account is about to be reversed,
				// so it does not count against the new amount.
				available = available.Sub(oldDelta)
			}
			if available.LessThan(transaction.Amount) {
				return financeErrors.ErrInsufficientFunds
			}
		}

		if err := ledger.Update(*transaction); err != nil {
			return err
		}

		// Edits that do not change the signed effect (description, date,
		// category within the same type) leave balances untouched.
		if sameAccount && oldDelta.Equal(newDelta) {
			return nil
		}

		// Reverse the old effect before applying the new one. The order
		// matters when the transaction moves to a different account.
		if err := ledger.ApplyBalanceDelta(previous.AccountID, oldDelta.Neg()); err != nil {
			return err
		}
		return ledger.ApplyBalanceDelta(transaction.AccountID, newDelta)
	})
}

func (s *TransactionService) DeleteTransaction(transactionID, userID string) error {
	return s.repo.InTransaction(func(ledger domain.LedgerTx) error {
		previous, err := ledger.FindForUpdate(transactionID, userID)
		if err != nil {
			return err
		}
		if err := ledger.Delete(transactionID, userID); err != nil {
			return err
		}
		return ledger.ApplyBalanceDelta(previous.AccountID, previous.Delta().Neg())
	})
}

func (s *TransactionService) GetTransaction(transactionID, userID string) (*domain.Transaction, error) {
	return s.repo.FindByID(transactionID, userID)
}

func (s *TransactionService) GetUserTransactions(userID string, filter domain.TransactionFilter) ([]domain.Transaction, domain.TransactionTotals, error) {
	transactions, err := s.repo.FindByUser(userID, filter)
	if err != nil {
		return nil, domain.TransactionTotals{}, err
	}
	if transactions == nil {
		transactions = []domain.Transaction{}
	}
	totals, err := s.repo.Totals(userID, filter)
	if err != nil {
		return nil, domain.TransactionTotals{}, err
	}
	return transactions, totals, nil
}

type TransactionSummary struct {
	Year         int
	IncomeTotal  decimal.Decimal
	ExpenseTotal decimal.Decimal
	Months       map[string]MonthSummary
}

type MonthSummary struct {
	IncomeTotal  decimal.Decimal
	ExpenseTotal decimal.Decimal
	Weeks        []WeekSummary
}

type WeekSummary struct {
	Week         int
	IncomeTotal  decimal.Decimal
	ExpenseTotal decimal.Decimal
}

func (s *TransactionService) GetTransactionSummary(userID string, startDate, endDate time.Time) (map[int]TransactionSummary, error) {
	transactions, err := s.repo.GetTransactionsInDateRange(userID, startDate, endDate)
	if err != nil {
		return nil, err
	}

	summary := make(map[int]TransactionSummary)

	for _, transaction := range transactions {
		year := transaction.Date.Year()
		month := transaction.Date.Month().String()
		_, week := transaction.Date.ISOWeek()

		if _, exists := summary[year]; !exists {
			summary[year] = TransactionSummary{
				Year:   year,
				Months: make(map[string]MonthSummary),
			}
		}

		yearSummary := summary[year]

		if _, exists := yearSummary.Months[month]; !exists {
			yearSummary.Months[month] = MonthSummary{
				Weeks: []WeekSummary{},
			}
		}

		monthSummary := yearSummary.Months[month]

		if transaction.Type == domain.TransactionTypeIncome {
			yearSummary.IncomeTotal = yearSummary.IncomeTotal.Add(transaction.Amount)
			monthSummary.IncomeTotal = monthSummary.IncomeTotal.Add(transaction.Amount)
		} else {
			yearSummary.ExpenseTotal = yearSummary.ExpenseTotal.Add(transaction.Amount)
			monthSummary.ExpenseTotal = monthSummary.ExpenseTotal.Add(transaction.Amount)
		}

		found := false
		for i, weekSummary := range monthSummary.Weeks {
			if weekSummary.Week == week {
				if transaction.Type == domain.TransactionTypeIncome {
					monthSummary.Weeks[i].IncomeTotal = monthSummary.Weeks[i].IncomeTotal.Add(transaction.Amount)
				} else {
					monthSummary.Weeks[i].ExpenseTotal = monthSummary.Weeks[i].ExpenseTotal.Add(transaction.Amount)
				}
				found = true
				break
			}
		}
		if !found {
			weekSummary := WeekSummary{
				Week: week,
			}
			if transaction.Type == domain.TransactionTypeIncome {
				weekSummary.IncomeTotal = transaction.Amount
			} else {
				weekSummary.ExpenseTotal = transaction.Amount
			}
			monthSummary.Weeks = append(monthSummary.Weeks, weekSummary)
		}

		yearSummary.Months[month] = monthSummary
		summary[year] = yearSummary
	}

	return summary, nil
}
