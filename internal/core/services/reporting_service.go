package services

import (
	"context"
	"fmt"
	"time"

	"github.com/smirnov-vv/ipledger/internal/apperrors"
	"github.com/smirnov-vv/ipledger/internal/core/domain"
	portsrepo "github.com/smirnov-vv/ipledger/internal/core/ports/repositories"
	portssvc "github.com/smirnov-vv/ipledger/internal/core/ports/services"
)

// reportingService aggregates the ledger, balances and open debts into
// period summaries. Read-only consumer of the stores.
type reportingService struct {
	store portsrepo.Store
	now   func() time.Time
}

// NewReportingService creates a new ReportingService.
func NewReportingService(store portsrepo.Store) portssvc.ReportingSvcFacade {
	return &reportingService{store: store, now: time.Now}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// periodStart maps a report period to its lower time bound; nil means all time.
func (s *reportingService) periodStart(period domain.ReportPeriod) (*time.Time, error) {
	now := s.now().UTC()
	switch period {
	case domain.PeriodToday:
		start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		return &start, nil
	case domain.PeriodWeek:
		start := now.AddDate(0, 0, -7)
		return &start, nil
	case domain.PeriodMonth:
		start := now.AddDate(0, 0, -30)
		return &start, nil
	case domain.PeriodAll:
		return nil, nil
	}
	return nil, fmt.Errorf("%w: unknown report period %q", apperrors.ErrValidation, period)
}

func (s *reportingService) Summary(ctx context.Context, period domain.ReportPeriod) (*domain.SummaryReport, error) {
	since, err := s.periodStart(period)
	if err != nil {
		return nil, err
	}

	totals, err := s.store.Reporting().PeriodTotals(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate period totals: %w", err)
	}

	entities, err := s.store.Entities().ListEntities(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list entities: %w", err)
	}

	debts, err := s.store.Debts().ListActiveDebts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list open debts: %w", err)
	}

	report := &domain.SummaryReport{
		Period:    period,
		Totals:    totals,
		Entities:  entities,
		OpenDebts: debts,
	}
	for _, e := range entities {
		report.TotalBank += e.BankBalance
		report.TotalDebit += e.DebitBalance
		report.TotalCash += e.CashBalance
	}
	return report, nil
}
