package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/smirnov-vv/ipledger/internal/apperrors"
	"github.com/smirnov-vv/ipledger/internal/core/domain"
	portsrepo "github.com/smirnov-vv/ipledger/internal/core/ports/repositories"
	portssvc "github.com/smirnov-vv/ipledger/internal/core/ports/services"
	"github.com/smirnov-vv/ipledger/internal/dto"
	"github.com/smirnov-vv/ipledger/internal/middleware"
)

// operationService is the transaction engine: it interprets one operation
// request and applies it as a single atomic state transition inside the unit
// of work handed in by the adapter. Validation failures abort before any
// mutation; the adapter's rollback guarantees that a failure after partial
// mutation leaves no visible effect.
type operationService struct{}

// NewOperationService creates the operation engine.
func NewOperationService() portssvc.OperationSvcFacade {
	return &operationService{}
}

var _ portssvc.OperationSvcFacade = (*operationService)(nil)

// Execute validates and applies one operation. Order: resolve acting user,
// resolve and lock the referenced entities, check the kind-specific
// sufficiency precondition, mutate balances, append exactly one ledger entry.
func (s *operationService) Execute(ctx context.Context, uow portsrepo.UnitOfWork, actingUserID int64, req dto.OperationRequest) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}

	user, err := uow.Users().FindUserByID(ctx, actingUserID)
	if err != nil {
		return nil, fmt.Errorf("acting user %d: %w", actingUserID, err)
	}

	var entityID *string
	var targetID *string

	switch req.Kind {
	case domain.OpPurchase, domain.OpExternalExpense:
		entity, err := s.lockEntity(ctx, uow, req.EntityID)
		if err != nil {
			return nil, err
		}
		if entity.CashBalance < req.Amount {
			return nil, apperrors.NewInsufficientFunds(entity.CashBalance)
		}
		if err := uow.Entities().AdjustEntityBalances(ctx, entity.EntityID, 0, 0, -req.Amount); err != nil {
			return nil, err
		}
		entityID = &entity.EntityID

	case domain.OpIncomeMonthly, domain.OpIncomeFast, domain.OpIncomeExternal:
		entity, err := s.lockEntity(ctx, uow, req.EntityID)
		if err != nil {
			return nil, err
		}
		if err := uow.Entities().AdjustEntityBalances(ctx, entity.EntityID, 0, 0, +req.Amount); err != nil {
			return nil, err
		}
		entityID = &entity.EntityID

	case domain.OpWithdrawBank:
		entity, err := s.lockEntity(ctx, uow, req.EntityID)
		if err != nil {
			return nil, err
		}
		if entity.BankBalance < req.Amount {
			return nil, apperrors.NewInsufficientFunds(entity.BankBalance)
		}
		if err := uow.Entities().AdjustEntityBalances(ctx, entity.EntityID, -req.Amount, +req.Amount, 0); err != nil {
			return nil, err
		}
		entityID = &entity.EntityID

	case domain.OpWithdrawDebit:
		entity, err := s.lockEntity(ctx, uow, req.EntityID)
		if err != nil {
			return nil, err
		}
		if entity.DebitBalance < req.Amount {
			return nil, apperrors.NewInsufficientFunds(entity.DebitBalance)
		}
		if err := uow.Entities().AdjustEntityBalances(ctx, entity.EntityID, 0, -req.Amount, +req.Amount); err != nil {
			return nil, err
		}
		entityID = &entity.EntityID

	case domain.OpDepositBank:
		entity, err := s.lockEntity(ctx, uow, req.EntityID)
		if err != nil {
			return nil, err
		}
		if entity.CashBalance < req.Amount {
			return nil, apperrors.NewInsufficientFunds(entity.CashBalance)
		}
		if err := uow.Entities().AdjustEntityBalances(ctx, entity.EntityID, +req.Amount, 0, -req.Amount); err != nil {
			return nil, err
		}
		entityID = &entity.EntityID

	case domain.OpLoan:
		lender, borrower, err := s.lockEntityPair(ctx, uow, req.EntityID, req.TargetEntityID)
		if err != nil {
			return nil, err
		}
		if lender.CashBalance < req.Amount {
			return nil, apperrors.NewInsufficientFunds(lender.CashBalance)
		}
		if err := uow.Entities().AdjustEntityBalances(ctx, lender.EntityID, 0, 0, -req.Amount); err != nil {
			return nil, err
		}
		if err := uow.Entities().AdjustEntityBalances(ctx, borrower.EntityID, 0, 0, +req.Amount); err != nil {
			return nil, err
		}
		debt := domain.Debt{
			DebtID:           uuid.NewString(),
			CreditorEntityID: lender.EntityID,
			DebtorEntityID:   borrower.EntityID,
			Amount:           req.Amount,
			CreatedAt:        time.Now().UTC(),
		}
		if err := uow.Debts().CreateDebt(ctx, debt); err != nil {
			return nil, err
		}
		entityID = &lender.EntityID
		targetID = &borrower.EntityID

	default:
		return nil, fmt.Errorf("%w: unknown operation kind %q", apperrors.ErrValidation, req.Kind)
	}

	entry := domain.Transaction{
		TransactionID: uuid.NewString(),
		UserID:        user.UserID,
		EntityID:      entityID,
		TargetID:      targetID,
		Kind:          req.Kind,
		Amount:        req.Amount,
		Comment:       req.Comment,
		CreatedAt:     time.Now().UTC(),
	}
	if err := uow.Ledger().AppendEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to append ledger entry: %w", err)
	}

	logger.Info("operation executed",
		slog.String("kind", string(req.Kind)),
		slog.Int64("user_id", user.UserID),
		slog.Int64("amount", req.Amount),
		slog.Any("entity_id", entityID),
	)
	return &entry, nil
}

// RepayDebt settles part or all of an open debt: the debtor entity pays the
// creditor entity. Repaying more than the outstanding amount is rejected.
func (s *operationService) RepayDebt(ctx context.Context, uow portsrepo.UnitOfWork, debtID string, actingUserID int64, amount int64) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}

	user, err := uow.Users().FindUserByID(ctx, actingUserID)
	if err != nil {
		return nil, fmt.Errorf("acting user %d: %w", actingUserID, err)
	}

	debt, err := uow.Debts().FindDebtByIDForUpdate(ctx, debtID)
	if err != nil {
		return nil, fmt.Errorf("debt %s: %w", debtID, err)
	}
	if debt.IsPaid {
		return nil, fmt.Errorf("%w: debt %s is already settled", apperrors.ErrInvalidState, debtID)
	}
	if amount > debt.Amount {
		return nil, fmt.Errorf("%w: repay amount %d exceeds outstanding %d", apperrors.ErrValidation, amount, debt.Amount)
	}

	debtor, creditor, err := s.lockEntityPair(ctx, uow, &debt.DebtorEntityID, &debt.CreditorEntityID)
	if err != nil {
		return nil, err
	}
	if debtor.CashBalance < amount {
		return nil, apperrors.NewInsufficientFunds(debtor.CashBalance)
	}

	if err := uow.Entities().AdjustEntityBalances(ctx, debtor.EntityID, 0, 0, -amount); err != nil {
		return nil, err
	}
	if err := uow.Entities().AdjustEntityBalances(ctx, creditor.EntityID, 0, 0, +amount); err != nil {
		return nil, err
	}

	debt.Amount -= amount
	if debt.Amount == 0 {
		debt.IsPaid = true
	}
	if err := uow.Debts().UpdateDebt(ctx, *debt); err != nil {
		return nil, err
	}

	entry := domain.Transaction{
		TransactionID: uuid.NewString(),
		UserID:        user.UserID,
		EntityID:      &debt.DebtorEntityID,
		TargetID:      &debt.CreditorEntityID,
		Kind:          domain.OpRepayment,
		Amount:        amount,
		Comment:       fmt.Sprintf("repayment of debt %s", debtID),
		CreatedAt:     time.Now().UTC(),
	}
	if err := uow.Ledger().AppendEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to append ledger entry: %w", err)
	}

	logger.Info("debt repaid",
		slog.String("debt_id", debtID),
		slog.Int64("user_id", user.UserID),
		slog.Int64("amount", amount),
		slog.Bool("settled", debt.IsPaid),
	)
	return &entry, nil
}

// lockEntity resolves the referenced entity and takes its row lock so the
// sufficiency check and the subsequent mutation see the same balance.
func (s *operationService) lockEntity(ctx context.Context, uow portsrepo.UnitOfWork, entityID *string) (*domain.Entity, error) {
	if entityID == nil || *entityID == "" {
		return nil, fmt.Errorf("%w: entity is required for this operation", apperrors.ErrValidation)
	}
	entity, err := uow.Entities().FindEntityByIDForUpdate(ctx, *entityID)
	if err != nil {
		return nil, fmt.Errorf("entity %s: %w", *entityID, err)
	}
	return entity, nil
}

// lockEntityPair locks two entities in ascending id order so concurrent
// two-party operations cannot deadlock, then returns them in request order.
func (s *operationService) lockEntityPair(ctx context.Context, uow portsrepo.UnitOfWork, firstID, secondID *string) (*domain.Entity, *domain.Entity, error) {
	if firstID == nil || *firstID == "" || secondID == nil || *secondID == "" {
		return nil, nil, fmt.Errorf("%w: both entities are required for this operation", apperrors.ErrValidation)
	}
	if *firstID == *secondID {
		return nil, nil, fmt.Errorf("%w: source and target entity must differ", apperrors.ErrValidation)
	}

	lockOrder := []*string{firstID, secondID}
	if *secondID < *firstID {
		lockOrder[0], lockOrder[1] = secondID, firstID
	}

	locked := make(map[string]*domain.Entity, 2)
	for _, id := range lockOrder {
		entity, err := uow.Entities().FindEntityByIDForUpdate(ctx, *id)
		if err != nil {
			return nil, nil, fmt.Errorf("entity %s: %w", *id, err)
		}
		locked[*id] = entity
	}
	return locked[*firstID], locked[*secondID], nil
}
