package services_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/smirnov-vv/ipledger/internal/core/domain"
	portsrepo "github.com/smirnov-vv/ipledger/internal/core/ports/repositories"
)

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

var _ portsrepo.UserRepository = (*MockUserRepository)(nil)

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByIDForUpdate(ctx context.Context, userID int64) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) UpsertUser(ctx context.Context, user domain.User) (*domain.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) ListUsers(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) UpdateUserRole(ctx context.Context, userID int64, role domain.UserRole) error {
	args := m.Called(ctx, userID, role)
	return args.Error(0)
}

func (m *MockUserRepository) AdjustUserCash(ctx context.Context, userID int64, delta int64) error {
	args := m.Called(ctx, userID, delta)
	return args.Error(0)
}

// --- Mock EntityRepository ---
type MockEntityRepository struct {
	mock.Mock
}

var _ portsrepo.EntityRepository = (*MockEntityRepository)(nil)

func (m *MockEntityRepository) CreateEntity(ctx context.Context, entity domain.Entity) error {
	args := m.Called(ctx, entity)
	return args.Error(0)
}

func (m *MockEntityRepository) FindEntityByID(ctx context.Context, entityID string) (*domain.Entity, error) {
	args := m.Called(ctx, entityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entity), args.Error(1)
}

func (m *MockEntityRepository) FindEntityByIDForUpdate(ctx context.Context, entityID string) (*domain.Entity, error) {
	args := m.Called(ctx, entityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entity), args.Error(1)
}

func (m *MockEntityRepository) ListEntities(ctx context.Context) ([]domain.Entity, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Entity), args.Error(1)
}

func (m *MockEntityRepository) AdjustEntityBalances(ctx context.Context, entityID string, bankDelta, debitDelta, cashDelta int64) error {
	args := m.Called(ctx, entityID, bankDelta, debitDelta, cashDelta)
	return args.Error(0)
}

func (m *MockEntityRepository) SetEntityBalances(ctx context.Context, entityID string, bankBalance, cashBalance int64) error {
	args := m.Called(ctx, entityID, bankBalance, cashBalance)
	return args.Error(0)
}

// --- Mock LedgerRepository ---
type MockLedgerRepository struct {
	mock.Mock
}

var _ portsrepo.LedgerRepository = (*MockLedgerRepository)(nil)

func (m *MockLedgerRepository) AppendEntry(ctx context.Context, entry domain.Transaction) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockLedgerRepository) ListEntries(ctx context.Context, filter portsrepo.LedgerFilter) ([]domain.Transaction, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

// --- Mock DebtRepository ---
type MockDebtRepository struct {
	mock.Mock
}

var _ portsrepo.DebtRepository = (*MockDebtRepository)(nil)

func (m *MockDebtRepository) CreateDebt(ctx context.Context, debt domain.Debt) error {
	args := m.Called(ctx, debt)
	return args.Error(0)
}

func (m *MockDebtRepository) FindDebtByIDForUpdate(ctx context.Context, debtID string) (*domain.Debt, error) {
	args := m.Called(ctx, debtID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Debt), args.Error(1)
}

func (m *MockDebtRepository) FindDebtByID(ctx context.Context, debtID string) (*domain.Debt, error) {
	args := m.Called(ctx, debtID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Debt), args.Error(1)
}

func (m *MockDebtRepository) ListActiveDebts(ctx context.Context) ([]domain.Debt, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Debt), args.Error(1)
}

func (m *MockDebtRepository) ListActiveDebtsByEntity(ctx context.Context, entityID string) ([]domain.Debt, []domain.Debt, error) {
	args := m.Called(ctx, entityID)
	var owedTo, owedBy []domain.Debt
	if args.Get(0) != nil {
		owedTo = args.Get(0).([]domain.Debt)
	}
	if args.Get(1) != nil {
		owedBy = args.Get(1).([]domain.Debt)
	}
	return owedTo, owedBy, args.Error(2)
}

func (m *MockDebtRepository) UpdateDebt(ctx context.Context, debt domain.Debt) error {
	args := m.Called(ctx, debt)
	return args.Error(0)
}

// --- Mock ReportingRepository ---
type MockReportingRepository struct {
	mock.Mock
}

var _ portsrepo.ReportingRepository = (*MockReportingRepository)(nil)

func (m *MockReportingRepository) PeriodTotals(ctx context.Context, since *time.Time) (domain.PeriodTotals, error) {
	args := m.Called(ctx, since)
	return args.Get(0).(domain.PeriodTotals), args.Error(1)
}

// mockRepoSet bundles the repository mocks behind the Repositories interface.
type mockRepoSet struct {
	users     *MockUserRepository
	entities  *MockEntityRepository
	ledger    *MockLedgerRepository
	debts     *MockDebtRepository
	reporting *MockReportingRepository
}

func newMockRepoSet() mockRepoSet {
	return mockRepoSet{
		users:     new(MockUserRepository),
		entities:  new(MockEntityRepository),
		ledger:    new(MockLedgerRepository),
		debts:     new(MockDebtRepository),
		reporting: new(MockReportingRepository),
	}
}

func (r mockRepoSet) Users() portsrepo.UserRepository          { return r.users }
func (r mockRepoSet) Entities() portsrepo.EntityRepository     { return r.entities }
func (r mockRepoSet) Ledger() portsrepo.LedgerRepository       { return r.ledger }
func (r mockRepoSet) Debts() portsrepo.DebtRepository          { return r.debts }
func (r mockRepoSet) Reporting() portsrepo.ReportingRepository { return r.reporting }

// mockUnitOfWork is a unit of work over the mocks. Commit and Rollback just
// record whether they were called.
type mockUnitOfWork struct {
	mockRepoSet
	committed  bool
	rolledBack bool
}

var _ portsrepo.UnitOfWork = (*mockUnitOfWork)(nil)

func (u *mockUnitOfWork) Commit(ctx context.Context) error {
	u.committed = true
	return nil
}

func (u *mockUnitOfWork) Rollback(ctx context.Context) error {
	u.rolledBack = true
	return nil
}

// mockStore is a store over the mocks whose Begin hands out a fixed unit of
// work sharing the same mocks.
type mockStore struct {
	mockRepoSet
	uow *mockUnitOfWork
}

var _ portsrepo.Store = (*mockStore)(nil)

func newMockStore() *mockStore {
	rs := newMockRepoSet()
	return &mockStore{mockRepoSet: rs, uow: &mockUnitOfWork{mockRepoSet: rs}}
}

func (s *mockStore) Begin(ctx context.Context) (portsrepo.UnitOfWork, error) {
	return s.uow, nil
}
