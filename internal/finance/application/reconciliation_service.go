package application

import (
	"context"
	"log"

	"github.com/fintrackapp/fintrack/internal/finance/domain"
)

type ReconciliationRepositoryInterface interface {
	LedgerDrift(ctx context.Context) ([]domain.BalanceDrift, error)
}

// ReconciliationService audits the balance invariant in the background.
// It only reports: the maintainer is the sole writer of balances, so a
// drifting account means a bug or out-of-band data change worth a human
// look rather than a silent rewrite.
type ReconciliationService struct {
	repo ReconciliationRepositoryInterface
}

func NewReconciliationService(repo ReconciliationRepositoryInterface) *ReconciliationService {
	return &ReconciliationService{repo: repo}
}

func (s *ReconciliationService) AuditBalances(ctx context.Context) ([]domain.BalanceDrift, error) {
	drifts, err := s.repo.LedgerDrift(ctx)
	if err != nil {
		return nil, err
	}
	for _, drift := range drifts {
		log.Printf("balance drift on account %s (user %s): stored %s, computed %s",
			drift.AccountID, drift.UserID, drift.Stored.StringFixed(2), drift.Computed.StringFixed(2))
	}
	return drifts, nil
}
