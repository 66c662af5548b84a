package application

import (
	"testing"

	"github.com/fintrackapp/fintrack/internal/finance/domain"
	financeErrors "github.com/fintrackapp/fintrack/internal/finance/errors"
	"github.com/fintrackapp/fintrack/internal/finance/infrastructure"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAccount_OpeningBalanceBecomesInitialBalance(t *testing.T) {
	repo := infrastructure.NewMockAccountRepository()
	service := NewAccountService(repo)

	account := &domain.Account{
		UserID:      testUserID,
		Name:        "Checking",
		BankName:    "Acme Bank",
		AccountType: domain.AccountTypeChecking,
		Balance:     decimal.RequireFromString("1000.005"),
	}
	err := service.CreateAccount(account)

	require.NoError(t, err)
	assert.NotEmpty(t, account.ID)
	assert.True(t, account.Balance.Equal(decimal.RequireFromString("1000.00")))
	assert.True(t, account.InitialBalance.Equal(account.Balance))
	assert.True(t, account.IsActive)
}

func TestCreateAccount_RejectsInvalidType(t *testing.T) {
	repo := infrastructure.NewMockAccountRepository()
	service := NewAccountService(repo)

	account := &domain.Account{UserID: testUserID, Name: "Checking", AccountType: "brokerage"}
	err := service.CreateAccount(account)

	assert.True(t, financeErrors.IsValidationError(err))
}

func TestUpdateAccount_NeverTouchesBalance(t *testing.T) {
	repo := infrastructure.NewMockAccountRepository()
	service := NewAccountService(repo)

	account := &domain.Account{
		UserID:      testUserID,
		Name:        "Checking",
		AccountType: domain.AccountTypeChecking,
		Balance:     decimal.NewFromInt(1000),
	}
	require.NoError(t, service.CreateAccount(account))

	update := &domain.Account{
		ID:          account.ID,
		UserID:      testUserID,
		Name:        "Main Checking",
		BankName:    "Acme Bank",
		AccountType: domain.AccountTypeSavings,
		Balance:     decimal.NewFromInt(999999),
		IsActive:    false,
	}
	require.NoError(t, service.UpdateAccount(update))

	stored := repo.Accounts[account.ID]
	assert.Equal(t, "Main Checking", stored.Name)
	assert.Equal(t, domain.AccountTypeSavings, stored.AccountType)
	assert.False(t, stored.IsActive)
	assert.True(t, stored.Balance.Equal(decimal.NewFromInt(1000)))
	assert.True(t, update.Balance.Equal(decimal.NewFromInt(1000)))
}

func TestDeleteAccount_RefusedWhileReferenced(t *testing.T) {
	repo := infrastructure.NewMockAccountRepository()
	service := NewAccountService(repo)

	account := &domain.Account{UserID: testUserID, Name: "Checking", AccountType: domain.AccountTypeChecking}
	require.NoError(t, service.CreateAccount(account))
	repo.ReferencedAccounts[account.ID] = true

	err := service.DeleteAccount(account.ID, testUserID)

	assert.ErrorIs(t, err, financeErrors.ErrAccountHasTransactions)
	assert.Contains(t, repo.Accounts, account.ID)
}

func TestGetUserAccounts_SummaryCountsActiveAccounts(t *testing.T) {
	repo := infrastructure.NewMockAccountRepository()
	service := NewAccountService(repo)

	checking := &domain.Account{UserID: testUserID, Name: "Checking", AccountType: domain.AccountTypeChecking, Balance: decimal.NewFromInt(1000)}
	require.NoError(t, service.CreateAccount(checking))

	savings := &domain.Account{UserID: testUserID, Name: "Savings", AccountType: domain.AccountTypeSavings, Balance: decimal.NewFromInt(250)}
	require.NoError(t, service.CreateAccount(savings))

	savings.IsActive = false
	require.NoError(t, service.UpdateAccount(savings))

	accounts, summary, err := service.GetUserAccounts(testUserID)

	require.NoError(t, err)
	assert.Len(t, accounts, 2)
	assert.Equal(t, 2, summary.Count)
	assert.Equal(t, 1, summary.ActiveCount)
	assert.True(t, summary.TotalBalance.Equal(decimal.NewFromInt(1250)))
}

func TestGetAccount_NotFoundForOtherUser(t *testing.T) {
	repo := infrastructure.NewMockAccountRepository()
	service := NewAccountService(repo)

	account := &domain.Account{UserID: testUserID, Name: "Checking", AccountType: domain.AccountTypeChecking}
	require.NoError(t, service.CreateAccount(account))

	_, err := service.GetAccount(account.ID, otherUserID)

	assert.ErrorIs(t, err, financeErrors.ErrAccountNotFound)
}
