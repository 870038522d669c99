// Package services defines the service facades the adapters depend on.
package services

import (
	"context"

	"github.com/smirnov-vv/ipledger/internal/core/domain"
	portsrepo "github.com/smirnov-vv/ipledger/internal/core/ports/repositories"
	"github.com/smirnov-vv/ipledger/internal/dto"
)

// OperationSvcFacade is the transaction engine. Both methods run entirely
// inside the caller-provided unit of work: the adapter opens it before the
// call and commits or rolls back after, so a returned error always means no
// visible effect once the adapter rolls back.
type OperationSvcFacade interface {
	Execute(ctx context.Context, uow portsrepo.UnitOfWork, actingUserID int64, req dto.OperationRequest) (*domain.Transaction, error)
	RepayDebt(ctx context.Context, uow portsrepo.UnitOfWork, debtID string, actingUserID int64, amount int64) (*domain.Transaction, error)
}

// UserSvcFacade manages user registration and roles.
type UserSvcFacade interface {
	// GetOrCreateUser registers the user on first contact. The admin role is
	// granted when the id is configured as admin or a valid invite code is
	// presented.
	GetOrCreateUser(ctx context.Context, userID int64, username string, inviteCode string) (*domain.User, error)
	GetUser(ctx context.Context, userID int64) (*domain.User, error)
	// ListUsers returns the member-visible view of every user.
	ListUsers(ctx context.Context) ([]domain.User, error)
	// ListUsersFull returns every user with role and cash balance; the acting
	// user must be an admin.
	ListUsersFull(ctx context.Context, actingUserID int64) ([]domain.User, error)
	// SetUserRole requires the acting user to be an admin; an admin cannot
	// demote themself.
	SetUserRole(ctx context.Context, actingUserID int64, targetUserID int64, role domain.UserRole) (*domain.User, error)
	// AdjustUserCash corrects the target's personal cash balance by delta;
	// the acting user must be an admin and the balance may not go negative.
	AdjustUserCash(ctx context.Context, actingUserID int64, targetUserID int64, delta int64) (*domain.User, error)
}

// EntitySvcFacade manages entities and their balances.
type EntitySvcFacade interface {
	CreateEntity(ctx context.Context, actingUserID int64, req dto.CreateEntityRequest) (*domain.Entity, error)
	GetEntity(ctx context.Context, entityID string) (*domain.Entity, error)
	ListEntities(ctx context.Context) ([]domain.Entity, error)
	UpdateEntityBalances(ctx context.Context, actingUserID int64, entityID string, bankBalance, cashBalance int64) (*domain.Entity, error)
}

// DebtSvcFacade is the read side of debt tracking; mutations go through the
// operation engine.
type DebtSvcFacade interface {
	ListActiveDebts(ctx context.Context) ([]domain.Debt, error)
	ListDebtsByEntity(ctx context.Context, entityID string) (owedTo []domain.Debt, owedBy []domain.Debt, err error)
	GetDebt(ctx context.Context, debtID string) (*domain.Debt, error)
}

// LedgerSvcFacade queries the immutable operation history.
type LedgerSvcFacade interface {
	ListTransactions(ctx context.Context, filter portsrepo.LedgerFilter) ([]domain.Transaction, error)
}

// ReportingSvcFacade assembles period summaries.
type ReportingSvcFacade interface {
	Summary(ctx context.Context, period domain.ReportPeriod) (*domain.SummaryReport, error)
}

// TokenSvcFacade issues session tokens for authenticated users.
type TokenSvcFacade interface {
	IssueToken(user domain.User) (string, error)
}

// ServiceContainer bundles every service facade for dependency injection
// into the adapters.
type ServiceContainer struct {
	Operation OperationSvcFacade
	User      UserSvcFacade
	Entity    EntitySvcFacade
	Debt      DebtSvcFacade
	Ledger    LedgerSvcFacade
	Reporting ReportingSvcFacade
	Token     TokenSvcFacade
}
