// Package repositories defines the persistence ports used by the core
// services. Implementations live under internal/repositories/database.
package repositories

import (
	"context"
	"time"

	"github.com/smirnov-vv/ipledger/internal/core/domain"
)

// UserRepository provides access to user records.
type UserRepository interface {
	// FindUserByID returns the user or apperrors.ErrNotFound.
	FindUserByID(ctx context.Context, userID int64) (*domain.User, error)
	// FindUserByIDForUpdate behaves like FindUserByID but takes a row lock;
	// only meaningful inside a unit of work.
	FindUserByIDForUpdate(ctx context.Context, userID int64) (*domain.User, error)
	// UpsertUser registers a user on first contact or refreshes the username
	// of an existing one. The role is applied only on insert.
	UpsertUser(ctx context.Context, user domain.User) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	UpdateUserRole(ctx context.Context, userID int64, role domain.UserRole) error
	// AdjustUserCash shifts the personal cash balance by delta, which may be
	// negative. It fails with apperrors.ErrNotFound if the user is absent.
	AdjustUserCash(ctx context.Context, userID int64, delta int64) error
}

// EntityRepository provides access to entity records and their balances.
type EntityRepository interface {
	// CreateEntity persists a new entity; a name collision surfaces as
	// apperrors.ErrDuplicate.
	CreateEntity(ctx context.Context, entity domain.Entity) error
	FindEntityByID(ctx context.Context, entityID string) (*domain.Entity, error)
	// FindEntityByIDForUpdate locks the entity row for the remainder of the
	// unit of work so sufficiency checks cannot race with other writers.
	FindEntityByIDForUpdate(ctx context.Context, entityID string) (*domain.Entity, error)
	ListEntities(ctx context.Context) ([]domain.Entity, error)
	// AdjustEntityBalances shifts the three sub-balances by the given deltas.
	AdjustEntityBalances(ctx context.Context, entityID string, bankDelta, debitDelta, cashDelta int64) error
	// SetEntityBalances overwrites bank and cash balances (admin correction).
	SetEntityBalances(ctx context.Context, entityID string, bankBalance, cashBalance int64) error
}

// LedgerFilter narrows a ledger history query. Nil fields are ignored.
type LedgerFilter struct {
	UserID   *int64
	EntityID *string
	Since    *time.Time
	Limit    int
}

// LedgerRepository is the append-only transaction log. There is deliberately
// no update or delete: the ledger is the audit trail.
type LedgerRepository interface {
	AppendEntry(ctx context.Context, entry domain.Transaction) error
	// ListEntries returns matching entries ordered newest first.
	ListEntries(ctx context.Context, filter LedgerFilter) ([]domain.Transaction, error)
}

// DebtRepository tracks open and settled debts between entities.
type DebtRepository interface {
	CreateDebt(ctx context.Context, debt domain.Debt) error
	// FindDebtByIDForUpdate locks the debt row for the unit of work.
	FindDebtByIDForUpdate(ctx context.Context, debtID string) (*domain.Debt, error)
	FindDebtByID(ctx context.Context, debtID string) (*domain.Debt, error)
	ListActiveDebts(ctx context.Context) ([]domain.Debt, error)
	// ListActiveDebtsByEntity partitions the entity's open debts into those
	// owed to it (entity is creditor) and those it owes (entity is debtor).
	ListActiveDebtsByEntity(ctx context.Context, entityID string) (owedTo []domain.Debt, owedBy []domain.Debt, err error)
	// UpdateDebt persists repayment bookkeeping (amount and paid flag). It is
	// the only mutation a debt ever sees.
	UpdateDebt(ctx context.Context, debt domain.Debt) error
}

// ReportingRepository aggregates ledger entries for period summaries.
type ReportingRepository interface {
	// PeriodTotals sums income and expense kinds since the given time;
	// a nil since means all time.
	PeriodTotals(ctx context.Context, since *time.Time) (domain.PeriodTotals, error)
}

// Repositories bundles the repository set backed by a single querier, either
// the connection pool (reads) or one open transaction (a unit of work).
type Repositories interface {
	Users() UserRepository
	Entities() EntityRepository
	Ledger() LedgerRepository
	Debts() DebtRepository
	Reporting() ReportingRepository
}

// UnitOfWork is one atomic transaction boundary. Adapters open it, hand it to
// the engine, and commit or roll back after the call; the engine itself never
// manages the boundary. Rollback after a successful Commit is a no-op, so
// `defer uow.Rollback(ctx)` is always safe.
type UnitOfWork interface {
	Repositories
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Store is the durable store handle: pool-backed repositories for plain reads
// plus the ability to open a unit of work for atomic operations.
type Store interface {
	Repositories
	Begin(ctx context.Context) (UnitOfWork, error)
}
