package services

import (
	"context"

	"github.com/smirnov-vv/ipledger/internal/core/domain"
	portsrepo "github.com/smirnov-vv/ipledger/internal/core/ports/repositories"
	portssvc "github.com/smirnov-vv/ipledger/internal/core/ports/services"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 500
)

// ledgerService queries the immutable operation history.
type ledgerService struct {
	store portsrepo.Store
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(store portsrepo.Store) portssvc.LedgerSvcFacade {
	return &ledgerService{store: store}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

func (s *ledgerService) ListTransactions(ctx context.Context, filter portsrepo.LedgerFilter) ([]domain.Transaction, error) {
	if filter.Limit <= 0 {
		filter.Limit = defaultHistoryLimit
	}
	if filter.Limit > maxHistoryLimit {
		filter.Limit = maxHistoryLimit
	}
	return s.store.Ledger().ListEntries(ctx, filter)
}
