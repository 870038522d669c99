package services

import (
	"context"

	"github.com/smirnov-vv/ipledger/internal/core/domain"
	portsrepo "github.com/smirnov-vv/ipledger/internal/core/ports/repositories"
	portssvc "github.com/smirnov-vv/ipledger/internal/core/ports/services"
)

// debtService is the read side of debt tracking. Debt creation and repayment
// happen inside the operation engine's unit of work.
type debtService struct {
	store portsrepo.Store
}

// NewDebtService creates a new DebtService.
func NewDebtService(store portsrepo.Store) portssvc.DebtSvcFacade {
	return &debtService{store: store}
}

var _ portssvc.DebtSvcFacade = (*debtService)(nil)

func (s *debtService) ListActiveDebts(ctx context.Context) ([]domain.Debt, error) {
	return s.store.Debts().ListActiveDebts(ctx)
}

func (s *debtService) ListDebtsByEntity(ctx context.Context, entityID string) ([]domain.Debt, []domain.Debt, error) {
	return s.store.Debts().ListActiveDebtsByEntity(ctx, entityID)
}

func (s *debtService) GetDebt(ctx context.Context, debtID string) (*domain.Debt, error) {
	return s.store.Debts().FindDebtByID(ctx, debtID)
}
