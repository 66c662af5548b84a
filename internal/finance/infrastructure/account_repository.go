package infrastructure

import (
	"database/sql"
	"errors"

	"github.com/fintrackapp/fintrack/internal/finance/domain"
	financeErrors "github.com/fintrackapp/fintrack/internal/finance/errors"
)

type AccountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) Save(account domain.Account) error {
	_, err := r.db.Exec(
		`INSERT INTO accounts
        (id, user_id, name, bank_name, account_type, balance, initial_balance, is_active)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		account.ID, account.UserID, account.Name, account.BankName, account.AccountType,
		account.Balance, account.InitialBalance, account.IsActive,
	)
	return err
}

func (r *AccountRepository) FindByUser(userID string) ([]domain.Account, error) {
	rows, err := r.db.Query(
		`SELECT id, user_id, name, bank_name, account_type, balance, initial_balance, is_active, created_at, updated_at
        FROM accounts WHERE user_id = $1 ORDER BY name`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		var account domain.Account
		if err := rows.Scan(
			&account.ID, &account.UserID, &account.Name, &account.BankName, &account.AccountType,
			&account.Balance, &account.InitialBalance, &account.IsActive, &account.CreatedAt, &account.UpdatedAt,
		); err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}
	return accounts, rows.Err()
}

func (r *AccountRepository) FindByID(accountID, userID string) (*domain.Account, error) {
	var account domain.Account
	err := r.db.QueryRow(
		`SELECT id, user_id, name, bank_name, account_type, balance, initial_balance, is_active, created_at, updated_at
        FROM accounts WHERE id = $1 AND user_id = $2`,
		accountID, userID,
	).Scan(
		&account.ID, &account.UserID, &account.Name, &account.BankName, &account.AccountType,
		&account.Balance, &account.InitialBalance, &account.IsActive, &account.CreatedAt, &account.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, financeErrors.ErrAccountNotFound
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// Update never touches balance or initial_balance: balances are mutated
// only through the ledger's atomic increment.
func (r *AccountRepository) Update(account domain.Account) error {
	result, err := r.db.Exec(
		`UPDATE accounts
        SET name = $1, bank_name = $2, account_type = $3, is_active = $4, updated_at = NOW()
        WHERE id = $5 AND user_id = $6`,
		account.Name, account.BankName, account.AccountType, account.IsActive,
		account.ID, account.UserID,
	)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return financeErrors.ErrAccountNotFound
	}
	return nil
}

func (r *AccountRepository) Delete(accountID, userID string) error {
	result, err := r.db.Exec(
		`DELETE FROM accounts WHERE id = $1 AND user_id = $2`,
		accountID, userID,
	)
	if isPgError(err, pgForeignKeyViolation) {
		return financeErrors.ErrAccountHasTransactions
	}
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return financeErrors.ErrAccountNotFound
	}
	return nil
}

func (r *AccountRepository) Summary(userID string) (*domain.AccountSummary, error) {
	var summary domain.AccountSummary
	err := r.db.QueryRow(
		`SELECT COALESCE(SUM(balance), 0), COUNT(*), COUNT(*) FILTER (WHERE is_active)
        FROM accounts WHERE user_id = $1`,
		userID,
	).Scan(&summary.TotalBalance, &summary.Count, &summary.ActiveCount)
	if err != nil {
		return nil, err
	}
	return &summary, nil
}
