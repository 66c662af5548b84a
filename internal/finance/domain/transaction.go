package domain

import (
	"time"

	"github.com/fintrackapp/fintrack/internal/finance/errors"
	"github.com/shopspring/decimal"
)

const (
	TransactionTypeIncome  = "income"
	TransactionTypeExpense = "expense"
)

func IsValidTransactionType(transactionType string) bool {
	return transactionType == TransactionTypeIncome || transactionType == TransactionTypeExpense
}

type Transaction struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	AccountID   string          `json:"account_id"`
	CategoryID  string          `json:"category_id"`
	Type        string          `json:"type"` // "income" or "expense"
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// Delta is the signed effect of the transaction on its account's balance:
// positive for income, negative for expense. Amount itself is always stored
// positive, the sign is derived from the type and never stored.
func (t *Transaction) Delta() decimal.Decimal {
	if t.Type == TransactionTypeIncome {
		return t.Amount
	}
	return t.Amount.Neg()
}

// RoundToTwoDecimalPlaces normalizes the amount to the fixed-point scale
// used across the ledger.
func (t *Transaction) RoundToTwoDecimalPlaces() {
	t.Amount = t.Amount.Round(2)
}

func (t *Transaction) Validate() error {
	if !t.Amount.IsPositive() {
		return errors.NewValidationError("Amount must be greater than zero")
	}
	if !IsValidTransactionType(t.Type) {
		return errors.NewValidationError("Type must be 'income' or 'expense'")
	}
	if t.AccountID == "" {
		return errors.NewValidationError("Account is required")
	}
	if t.CategoryID == "" {
		return errors.NewValidationError("Category is required")
	}
	if t.Date.IsZero() {
		return errors.NewValidationError("Transaction date is required")
	}
	now := time.Now()
	startOfTomorrow := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
	if !t.Date.Before(startOfTomorrow) {
		return errors.NewValidationError("Transaction date cannot be in the future")
	}
	if len(t.Description) > 200 {
		return errors.NewValidationError("Description must be of length less than 200")
	}
	return nil
}

// TransactionFilter narrows list and totals queries. Zero values mean
// "no constraint".
type TransactionFilter struct {
	StartDate  time.Time
	EndDate    time.Time
	AccountID  string
	CategoryID string
	Type       string
}

type TransactionTotals struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Net     decimal.Decimal `json:"net"`
}

// LedgerTx is the set of operations available inside one database
// transaction. Every transaction write and the balance adjustments it
// triggers go through a single LedgerTx so they are visible together or
// not at all.
type LedgerTx interface {
	Save(transaction Transaction) error
	// FindForUpdate loads the persisted state of a transaction and locks
	// its row for the rest of the unit.
	FindForUpdate(transactionID, userID string) (*Transaction, error)
	Update(transaction Transaction) error
	Delete(transactionID, userID string) error
	// AccountBalanceForUpdate reads an account's balance under a row lock.
	AccountBalanceForUpdate(accountID, userID string) (decimal.Decimal, error)
	// ApplyBalanceDelta adds delta to the stored balance as a db-side
	// increment. Matching zero rows is not an error: the account is being
	// torn down concurrently and its balance no longer matters.
	ApplyBalanceDelta(accountID string, delta decimal.Decimal) error
}

type TransactionRepository interface {
	InTransaction(fn func(ledger LedgerTx) error) error
	FindByID(transactionID, userID string) (*Transaction, error)
	FindByUser(userID string, filter TransactionFilter) ([]Transaction, error)
	Totals(userID string, filter TransactionFilter) (TransactionTotals, error)
	GetTransactionsInDateRange(userID string, startDate, endDate time.Time) ([]Transaction, error)
}
