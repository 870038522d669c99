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

// PgxDebtRepository persists debts between entities.
type PgxDebtRepository struct {
	BaseRepository
}

func newPgxDebtRepository(q Querier) *PgxDebtRepository {
	return &PgxDebtRepository{BaseRepository{q: q}}
}

var _ portsrepo.DebtRepository = (*PgxDebtRepository)(nil)

const debtColumns = `debt_id, creditor_entity_id, debtor_entity_id, amount, is_paid, created_at`

func scanDebt(row pgx.Row) (*domain.Debt, error) {
	var d domain.Debt
	err := row.Scan(&d.DebtID, &d.CreditorEntityID, &d.DebtorEntityID, &d.Amount, &d.IsPaid, &d.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan debt row: %w", err)
	}
	return &d, nil
}

func (r *PgxDebtRepository) CreateDebt(ctx context.Context, debt domain.Debt) error {
	query := `
		INSERT INTO debts (debt_id, creditor_entity_id, debtor_entity_id, amount, is_paid, created_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := r.q.Exec(ctx, query,
		debt.DebtID,
		debt.CreditorEntityID,
		debt.DebtorEntityID,
		debt.Amount,
		debt.IsPaid,
		debt.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: debt %s already exists", apperrors.ErrDuplicate, debt.DebtID)
		}
		return fmt.Errorf("failed to insert debt: %w", err)
	}
	return nil
}

func (r *PgxDebtRepository) FindDebtByID(ctx context.Context, debtID string) (*domain.Debt, error) {
	query := `SELECT ` + debtColumns + ` FROM debts WHERE debt_id = $1;`
	return scanDebt(r.q.QueryRow(ctx, query, debtID))
}

func (r *PgxDebtRepository) FindDebtByIDForUpdate(ctx context.Context, debtID string) (*domain.Debt, error) {
	query := `SELECT ` + debtColumns + ` FROM debts WHERE debt_id = $1 FOR UPDATE;`
	return scanDebt(r.q.QueryRow(ctx, query, debtID))
}

func (r *PgxDebtRepository) ListActiveDebts(ctx context.Context) ([]domain.Debt, error) {
	query := `SELECT ` + debtColumns + ` FROM debts WHERE NOT is_paid ORDER BY created_at;`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query active debts: %w", err)
	}
	defer rows.Close()
	return collectDebts(rows)
}

func (r *PgxDebtRepository) ListActiveDebtsByEntity(ctx context.Context, entityID string) (owedTo, owedBy []domain.Debt, err error) {
	query := `
		SELECT ` + debtColumns + `
		FROM debts
		WHERE NOT is_paid AND (creditor_entity_id = $1 OR debtor_entity_id = $1)
		ORDER BY created_at;
	`
	rows, err := r.q.Query(ctx, query, entityID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query debts of entity %s: %w", entityID, err)
	}
	defer rows.Close()

	debts, err := collectDebts(rows)
	if err != nil {
		return nil, nil, err
	}
	for _, d := range debts {
		if d.CreditorEntityID == entityID {
			owedTo = append(owedTo, d)
		} else {
			owedBy = append(owedBy, d)
		}
	}
	return owedTo, owedBy, nil
}

func (r *PgxDebtRepository) UpdateDebt(ctx context.Context, debt domain.Debt) error {
	query := `UPDATE debts SET amount = $2, is_paid = $3 WHERE debt_id = $1;`
	cmdTag, err := r.q.Exec(ctx, query, debt.DebtID, debt.Amount, debt.IsPaid)
	if err != nil {
		return fmt.Errorf("failed to update debt %s: %w", debt.DebtID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("debt %s: %w", debt.DebtID, apperrors.ErrNotFound)
	}
	return nil
}

func collectDebts(rows pgx.Rows) ([]domain.Debt, error) {
	var debts []domain.Debt
	for rows.Next() {
		d, err := scanDebt(rows)
		if err != nil {
			return nil, err
		}
		debts = append(debts, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating debt rows: %w", err)
	}
	return debts, nil
}
