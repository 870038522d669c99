package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/smirnov-vv/ipledger/internal/apperrors"
	"github.com/smirnov-vv/ipledger/internal/core/domain"
	portssvc "github.com/smirnov-vv/ipledger/internal/core/ports/services"
	"github.com/smirnov-vv/ipledger/internal/core/services"
)

type ReportingServiceTestSuite struct {
	suite.Suite
	store *mockStore
	svc   portssvc.ReportingSvcFacade
	ctx   context.Context
}

func (s *ReportingServiceTestSuite) SetupTest() {
	s.store = newMockStore()
	s.svc = services.NewReportingService(s.store)
	s.ctx = context.Background()
}

func (s *ReportingServiceTestSuite) stubBalancesAndDebts(entities []domain.Entity, debts []domain.Debt) {
	s.store.entities.On("ListEntities", s.ctx).Return(entities, nil).Once()
	s.store.debts.On("ListActiveDebts", s.ctx).Return(debts, nil).Once()
}

func (s *ReportingServiceTestSuite) TestSummaryAllTime() {
	s.store.reporting.On("PeriodTotals", s.ctx, (*time.Time)(nil)).
		Return(domain.PeriodTotals{Income: 90_000, Expense: 40_000}, nil).Once()
	s.stubBalancesAndDebts([]domain.Entity{
		{EntityID: "a", BankBalance: 1_000, DebitBalance: 150, CashBalance: 200},
		{EntityID: "b", BankBalance: 2_000, DebitBalance: 50, CashBalance: 300},
	}, []domain.Debt{{DebtID: "d1", Amount: 500}})

	report, err := s.svc.Summary(s.ctx, domain.PeriodAll)

	s.Require().NoError(err)
	s.Equal(int64(90_000), report.Totals.Income)
	s.Equal(int64(40_000), report.Totals.Expense)
	s.Equal(int64(3_000), report.TotalBank)
	s.Equal(int64(200), report.TotalDebit)
	s.Equal(int64(500), report.TotalCash)
	s.Len(report.OpenDebts, 1)
	s.store.reporting.AssertExpectations(s.T())
}

func (s *ReportingServiceTestSuite) TestSummaryTodayStartsAtMidnight() {
	s.store.reporting.On("PeriodTotals", s.ctx, mock.MatchedBy(func(since *time.Time) bool {
		if since == nil {
			return false
		}
		h, m, sec := since.Clock()
		return h == 0 && m == 0 && sec == 0 && time.Since(*since) < 25*time.Hour
	})).Return(domain.PeriodTotals{}, nil).Once()
	s.stubBalancesAndDebts(nil, nil)

	_, err := s.svc.Summary(s.ctx, domain.PeriodToday)

	s.Require().NoError(err)
	s.store.reporting.AssertExpectations(s.T())
}

func (s *ReportingServiceTestSuite) TestSummaryWeekLooksBackSevenDays() {
	s.store.reporting.On("PeriodTotals", s.ctx, mock.MatchedBy(func(since *time.Time) bool {
		if since == nil {
			return false
		}
		lookback := time.Since(*since)
		return lookback > 7*24*time.Hour-time.Minute && lookback < 7*24*time.Hour+time.Minute
	})).Return(domain.PeriodTotals{}, nil).Once()
	s.stubBalancesAndDebts(nil, nil)

	_, err := s.svc.Summary(s.ctx, domain.PeriodWeek)

	s.Require().NoError(err)
	s.store.reporting.AssertExpectations(s.T())
}

func (s *ReportingServiceTestSuite) TestSummaryUnknownPeriodRejected() {
	_, err := s.svc.Summary(s.ctx, domain.ReportPeriod("quarter"))

	s.Require().ErrorIs(err, apperrors.ErrValidation)
	s.store.reporting.AssertNotCalled(s.T(), "PeriodTotals", mock.Anything, mock.Anything)
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
