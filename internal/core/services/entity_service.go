package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/smirnov-vv/ipledger/internal/apperrors"
	"github.com/smirnov-vv/ipledger/internal/core/domain"
	portsrepo "github.com/smirnov-vv/ipledger/internal/core/ports/repositories"
	portssvc "github.com/smirnov-vv/ipledger/internal/core/ports/services"
	"github.com/smirnov-vv/ipledger/internal/dto"
	"github.com/smirnov-vv/ipledger/internal/middleware"
)

// entityService manages entities and admin balance corrections. Balance
// movements between sub-balances go through the operation engine, never here.
type entityService struct {
	store portsrepo.Store
}

// NewEntityService creates a new EntityService.
func NewEntityService(store portsrepo.Store) portssvc.EntitySvcFacade {
	return &entityService{store: store}
}

var _ portssvc.EntitySvcFacade = (*entityService)(nil)

// CreateEntity creates a new entity with its opening balances. Name
// uniqueness is enforced by the store; a collision surfaces as a validation
// error and creates no record.
func (s *entityService) CreateEntity(ctx context.Context, actingUserID int64, req dto.CreateEntityRequest) (*domain.Entity, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.requireAdmin(ctx, actingUserID); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: entity name must not be empty", apperrors.ErrValidation)
	}

	entity := domain.Entity{
		EntityID:       uuid.NewString(),
		Name:           name,
		BankBalance:    req.BankBalance,
		CashBalance:    req.CashBalance,
		InitialCapital: req.BankBalance + req.CashBalance,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.store.Entities().CreateEntity(ctx, entity); err != nil {
		return nil, fmt.Errorf("failed to create entity %q: %w", name, err)
	}

	logger.Info("entity created",
		slog.String("entity_id", entity.EntityID),
		slog.String("name", name),
		slog.Int64("initial_capital", entity.InitialCapital),
	)
	return &entity, nil
}

func (s *entityService) GetEntity(ctx context.Context, entityID string) (*domain.Entity, error) {
	return s.store.Entities().FindEntityByID(ctx, entityID)
}

func (s *entityService) ListEntities(ctx context.Context) ([]domain.Entity, error) {
	return s.store.Entities().ListEntities(ctx)
}

// UpdateEntityBalances overwrites bank and cash balances directly. This is
// the admin correction path and bypasses the ledger deliberately.
func (s *entityService) UpdateEntityBalances(ctx context.Context, actingUserID int64, entityID string, bankBalance, cashBalance int64) (*domain.Entity, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.requireAdmin(ctx, actingUserID); err != nil {
		return nil, err
	}
	if bankBalance < 0 || cashBalance < 0 {
		return nil, fmt.Errorf("%w: balances must be non-negative", apperrors.ErrValidation)
	}

	if err := s.store.Entities().SetEntityBalances(ctx, entityID, bankBalance, cashBalance); err != nil {
		return nil, fmt.Errorf("failed to set balances of entity %s: %w", entityID, err)
	}
	entity, err := s.store.Entities().FindEntityByID(ctx, entityID)
	if err != nil {
		return nil, err
	}

	logger.Info("entity balances corrected",
		slog.String("entity_id", entityID),
		slog.Int64("bank_balance", bankBalance),
		slog.Int64("cash_balance", cashBalance),
		slog.Int64("acting_user_id", actingUserID),
	)
	return entity, nil
}

func (s *entityService) requireAdmin(ctx context.Context, actingUserID int64) error {
	actor, err := s.store.Users().FindUserByID(ctx, actingUserID)
	if err != nil {
		return fmt.Errorf("acting user %d: %w", actingUserID, err)
	}
	if !actor.IsAdmin() {
		return fmt.Errorf("%w: admin role required", apperrors.ErrForbidden)
	}
	return nil
}
