package infrastructure

import (
	"context"
	"database/sql"

	"github.com/fintrackapp/fintrack/internal/finance/domain"
)

type ReconciliationRepository struct {
	db *sql.DB
}

func NewReconciliationRepository(db *sql.DB) *ReconciliationRepository {
	return &ReconciliationRepository{db: db}
}

// LedgerDrift returns every account whose stored balance disagrees with
// initial_balance plus the signed sum of its transactions. At a quiescent
// point the result should be empty.
func (r *ReconciliationRepository) LedgerDrift(ctx context.Context) ([]domain.BalanceDrift, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT a.id, a.user_id, a.balance,
            a.initial_balance + COALESCE(SUM(CASE WHEN t.type = 'income' THEN t.amount ELSE -t.amount END), 0)
        FROM accounts a
        LEFT JOIN transactions t ON t.account_id = a.id
        GROUP BY a.id
        HAVING a.balance <> a.initial_balance + COALESCE(SUM(CASE WHEN t.type = 'income' THEN t.amount ELSE -t.amount END), 0)`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var drifts []domain.BalanceDrift
	for rows.Next() {
		var drift domain.BalanceDrift
		if err := rows.Scan(&drift.AccountID, &drift.UserID, &drift.Stored, &drift.Computed); err != nil {
			return nil, err
		}
		drifts = append(drifts, drift)
	}
	return drifts, rows.Err()
}
