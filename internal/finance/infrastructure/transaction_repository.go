package infrastructure

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/fintrackapp/fintrack/internal/finance/domain"
	financeErrors "github.com/fintrackapp/fintrack/internal/finance/errors"
	"github.com/shopspring/decimal"
)

type TransactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// InTransaction runs fn against a single database transaction. The entity
// write and the balance adjustments it triggers share this unit, so a
// failure anywhere rolls back everything.
func (r *TransactionRepository) InTransaction(fn func(ledger domain.LedgerTx) error) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	if err := fn(&ledgerTx{tx: tx}); err != nil {
		safeRollback(tx)
		return err
	}
	return tx.Commit()
}

func safeRollback(tx *sql.Tx) {
	if err := tx.Rollback(); err != nil {
		log.Printf("Error during transaction rollback: %v", err)
	}
}

type ledgerTx struct {
	tx *sql.Tx
}

func (l *ledgerTx) Save(transaction domain.Transaction) error {
	_, err := l.tx.Exec(
		`INSERT INTO transactions
        (id, user_id, account_id, category_id, type, amount, transaction_date, description)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		transaction.ID, transaction.UserID, transaction.AccountID, transaction.CategoryID,
		transaction.Type, transaction.Amount, transaction.Date, transaction.Description,
	)
	return err
}

func (l *ledgerTx) FindForUpdate(transactionID, userID string) (*domain.Transaction, error) {
	var transaction domain.Transaction
	err := l.tx.QueryRow(
		`SELECT id, user_id, account_id, category_id, type, amount, transaction_date, description, created_at, updated_at
        FROM transactions WHERE id = $1 AND user_id = $2 FOR UPDATE`,
		transactionID, userID,
	).Scan(
		&transaction.ID, &transaction.UserID, &transaction.AccountID, &transaction.CategoryID,
		&transaction.Type, &transaction.Amount, &transaction.Date, &transaction.Description,
		&transaction.CreatedAt, &transaction.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, financeErrors.ErrTransactionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &transaction, nil
}

func (l *ledgerTx) Update(transaction domain.Transaction) error {
	result, err := l.tx.Exec(
		`UPDATE transactions
        SET account_id = $1, category_id = $2, type = $3, amount = $4, transaction_date = $5, description = $6, updated_at = NOW()
        WHERE id = $7 AND user_id = $8`,
		transaction.AccountID, transaction.CategoryID, transaction.Type, transaction.Amount,
		transaction.Date, transaction.Description, transaction.ID, transaction.UserID,
	)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return financeErrors.ErrTransactionNotFound
	}
	return nil
}

func (l *ledgerTx) Delete(transactionID, userID string) error {
	result, err := l.tx.Exec(
		`DELETE FROM transactions WHERE id = $1 AND user_id = $2`,
		transactionID, userID,
	)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return financeErrors.ErrTransactionNotFound
	}
	return nil
}

func (l *ledgerTx) AccountBalanceForUpdate(accountID, userID string) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := l.tx.QueryRow(
		`SELECT balance FROM accounts WHERE id = $1 AND user_id = $2 FOR UPDATE`,
		accountID, userID,
	).Scan(&balance)
	if errors.Is(err, sql.ErrNoRows) {
		return decimal.Zero, financeErrors.ErrAccountNotFound
	}
	return balance, err
}

// ApplyBalanceDelta is the one write path for account balances after
// creation: a db-side increment, safe under concurrent writers. Zero rows
// matched means the account is being deleted concurrently and is a no-op.
func (l *ledgerTx) ApplyBalanceDelta(accountID string, delta decimal.Decimal) error {
	_, err := l.tx.Exec(
		`UPDATE accounts SET balance = balance + $1, updated_at = NOW() WHERE id = $2`,
		delta, accountID,
	)
	return err
}

func (r *TransactionRepository) FindByID(transactionID, userID string) (*domain.Transaction, error) {
	var transaction domain.Transaction
	err := r.db.QueryRow(
		`SELECT id, user_id, account_id, category_id, type, amount, transaction_date, description, created_at, updated_at
        FROM transactions WHERE id = $1 AND user_id = $2`,
		transactionID, userID,
	).Scan(
		&transaction.ID, &transaction.UserID, &transaction.AccountID, &transaction.CategoryID,
		&transaction.Type, &transaction.Amount, &transaction.Date, &transaction.Description,
		&transaction.CreatedAt, &transaction.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, financeErrors.ErrTransactionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &transaction, nil
}

func filterClauses(userID string, filter domain.TransactionFilter) (string, []interface{}) {
	where := "WHERE user_id = $1"
	args := []interface{}{userID}

	if !filter.StartDate.IsZero() {
		args = append(args, filter.StartDate)
		where += fmt.Sprintf(" AND transaction_date >= $%d", len(args))
	}
	if !filter.EndDate.IsZero() {
		args = append(args, filter.EndDate)
		where += fmt.Sprintf(" AND transaction_date <= $%d", len(args))
	}
	if filter.AccountID != "" {
		args = append(args, filter.AccountID)
		where += fmt.Sprintf(" AND account_id = $%d", len(args))
	}
	if filter.CategoryID != "" {
		args = append(args, filter.CategoryID)
		where += fmt.Sprintf(" AND category_id = $%d", len(args))
	}
	if filter.Type != "" {
		args = append(args, filter.Type)
		where += fmt.Sprintf(" AND type = $%d", len(args))
	}
	return where, args
}

func (r *TransactionRepository) FindByUser(userID string, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	where, args := filterClauses(userID, filter)
	rows, err := r.db.Query(
		`SELECT id, user_id, account_id, category_id, type, amount, transaction_date, description, created_at, updated_at
        FROM transactions `+where+` ORDER BY transaction_date DESC, created_at DESC`,
		args...,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []domain.Transaction
	for rows.Next() {
		var transaction domain.Transaction
		if err := rows.Scan(
			&transaction.ID, &transaction.UserID, &transaction.AccountID, &transaction.CategoryID,
			&transaction.Type, &transaction.Amount, &transaction.Date, &transaction.Description,
			&transaction.CreatedAt, &transaction.UpdatedAt,
		); err != nil {
			return nil, err
		}
		transactions = append(transactions, transaction)
	}
	return transactions, rows.Err()
}

func (r *TransactionRepository) Totals(userID string, filter domain.TransactionFilter) (domain.TransactionTotals, error) {
	where, args := filterClauses(userID, filter)
	var totals domain.TransactionTotals
	err := r.db.QueryRow(
		`SELECT
            COALESCE(SUM(amount) FILTER (WHERE type = 'income'), 0),
            COALESCE(SUM(amount) FILTER (WHERE type = 'expense'), 0)
        FROM transactions `+where,
		args...,
	).Scan(&totals.Income, &totals.Expense)
	if err != nil {
		return domain.TransactionTotals{}, err
	}
	totals.Net = totals.Income.Sub(totals.Expense)
	return totals, nil
}

func (r *TransactionRepository) GetTransactionsInDateRange(userID string, startDate, endDate time.Time) ([]domain.Transaction, error) {
	return r.FindByUser(userID, domain.TransactionFilter{StartDate: startDate, EndDate: endDate})
}
