package application

import (
	"context"
	"errors"
	"testing"

	"github.com/fintrackapp/fintrack/internal/finance/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubReconciliationRepo struct {
	drifts []domain.BalanceDrift
	err    error
}

func (s *stubReconciliationRepo) LedgerDrift(_ context.Context) ([]domain.BalanceDrift, error) {
	return s.drifts, s.err
}

func TestAuditBalances_ReportsDrift(t *testing.T) {
	repo := &stubReconciliationRepo{drifts: []domain.BalanceDrift{
		{
			AccountID: checkingID,
			UserID:    testUserID,
			Stored:    decimal.NewFromInt(1000),
			Computed:  decimal.NewFromInt(800),
		},
	}}
	service := NewReconciliationService(repo)

	drifts, err := service.AuditBalances(context.Background())

	require.NoError(t, err)
	require.Len(t, drifts, 1)
	assert.Equal(t, checkingID, drifts[0].AccountID)
}

func TestAuditBalances_PropagatesRepositoryError(t *testing.T) {
	repo := &stubReconciliationRepo{err: errors.New("connection refused")}
	service := NewReconciliationService(repo)

	_, err := service.AuditBalances(context.Background())

	assert.Error(t, err)
}
