package domain

import (
	"time"

	"github.com/fintrackapp/fintrack/internal/finance/errors"
	"github.com/shopspring/decimal"
)

const (
	AccountTypeChecking = "checking"
	AccountTypeSavings  = "savings"
	AccountTypeWallet   = "wallet"
)

func IsValidAccountType(accountType string) bool {
	switch accountType {
	case AccountTypeChecking, AccountTypeSavings, AccountTypeWallet:
		return true
	}
	return false
}

type Account struct {
	ID             string          `json:"id"`
	UserID         string          `json:"user_id"`
	Name           string          `json:"name"`
	BankName       string          `json:"bank_name"`
	AccountType    string          `json:"account_type"`
	Balance        decimal.Decimal `json:"balance"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
	IsActive       bool            `json:"is_active"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// AccountSummary aggregates a user's accounts for the list view.
type AccountSummary struct {
	TotalBalance decimal.Decimal `json:"total_balance"`
	Count        int             `json:"count"`
	ActiveCount  int             `json:"active_count"`
}

func (a *Account) Validate() error {
	if a.Name == "" {
		return errors.NewValidationError("Account name is required")
	}
	if len(a.Name) > 100 {
		return errors.NewValidationError("Account name must be of length less than 100")
	}
	if len(a.BankName) > 100 {
		return errors.NewValidationError("Bank name must be of length less than 100")
	}
	if !IsValidAccountType(a.AccountType) {
		return errors.NewValidationError("Account type must be 'checking', 'savings' or 'wallet'")
	}
	return nil
}

type AccountRepository interface {
	Save(account Account) error
	FindByUser(userID string) ([]Account, error)
	FindByID(accountID, userID string) (*Account, error)
	// Update persists name, bank name, type and active flag. Balance is
	// owned by the ledger and is never written through this method.
	Update(account Account) error
	Delete(accountID, userID string) error
	Summary(userID string) (*AccountSummary, error)
}
