package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/smirnov-vv/ipledger/internal/apperrors"
	"github.com/smirnov-vv/ipledger/internal/core/domain"
	portsrepo "github.com/smirnov-vv/ipledger/internal/core/ports/repositories"
)

// PgxEntityRepository persists entities and their three sub-balances.
type PgxEntityRepository struct {
	BaseRepository
}

func newPgxEntityRepository(q Querier) *PgxEntityRepository {
	return &PgxEntityRepository{BaseRepository{q: q}}
}

var _ portsrepo.EntityRepository = (*PgxEntityRepository)(nil)

const entityColumns = `entity_id, name, bank_balance, debit_balance, cash_balance, initial_capital, created_at`

func scanEntity(row pgx.Row) (*domain.Entity, error) {
	var e domain.Entity
	err := row.Scan(&e.EntityID, &e.Name, &e.BankBalance, &e.DebitBalance, &e.CashBalance, &e.InitialCapital, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan entity row: %w", err)
	}
	return &e, nil
}

func (r *PgxEntityRepository) CreateEntity(ctx context.Context, entity domain.Entity) error {
	query := `
		INSERT INTO entities (entity_id, name, bank_balance, debit_balance, cash_balance, initial_capital, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.q.Exec(ctx, query,
		entity.EntityID,
		entity.Name,
		entity.BankBalance,
		entity.DebitBalance,
		entity.CashBalance,
		entity.InitialCapital,
		entity.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: entity named %q already exists", apperrors.ErrDuplicate, entity.Name)
		}
		return fmt.Errorf("failed to insert entity %q: %w", entity.Name, err)
	}
	return nil
}

func (r *PgxEntityRepository) FindEntityByID(ctx context.Context, entityID string) (*domain.Entity, error) {
	query := `SELECT ` + entityColumns + ` FROM entities WHERE entity_id = $1;`
	return scanEntity(r.q.QueryRow(ctx, query, entityID))
}

// FindEntityByIDForUpdate takes the entity's row lock so the caller's
// sufficiency check and mutation cannot race with concurrent writers.
func (r *PgxEntityRepository) FindEntityByIDForUpdate(ctx context.Context, entityID string) (*domain.Entity, error) {
	query := `SELECT ` + entityColumns + ` FROM entities WHERE entity_id = $1 FOR UPDATE;`
	return scanEntity(r.q.QueryRow(ctx, query, entityID))
}

func (r *PgxEntityRepository) ListEntities(ctx context.Context) ([]domain.Entity, error) {
	query := `SELECT ` + entityColumns + ` FROM entities ORDER BY name;`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query entities: %w", err)
	}
	defer rows.Close()

	var entities []domain.Entity
	for rows.Next() {
		e, err := scanEntity(rows)
		if err != nil {
			return nil, err
		}
		entities = append(entities, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entity rows: %w", err)
	}
	return entities, nil
}

func (r *PgxEntityRepository) AdjustEntityBalances(ctx context.Context, entityID string, bankDelta, debitDelta, cashDelta int64) error {
	query := `
		UPDATE entities
		SET bank_balance  = bank_balance + $2,
		    debit_balance = debit_balance + $3,
		    cash_balance  = cash_balance + $4
		WHERE entity_id = $1;
	`
	cmdTag, err := r.q.Exec(ctx, query, entityID, bankDelta, debitDelta, cashDelta)
	if err != nil {
		return fmt.Errorf("failed to adjust balances of entity %s: %w", entityID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("entity %s: %w", entityID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxEntityRepository) SetEntityBalances(ctx context.Context, entityID string, bankBalance, cashBalance int64) error {
	query := `
		UPDATE entities
		SET bank_balance = $2,
		    cash_balance = $3
		WHERE entity_id = $1;
	`
	cmdTag, err := r.q.Exec(ctx, query, entityID, bankBalance, cashBalance)
	if err != nil {
		return fmt.Errorf("failed to set balances of entity %s: %w", entityID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("entity %s: %w", entityID, apperrors.ErrNotFound)
	}
	return nil
}
