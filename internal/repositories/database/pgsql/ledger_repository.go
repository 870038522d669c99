package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"

	"github.com/smirnov-vv/ipledger/internal/apperrors"
	"github.com/smirnov-vv/ipledger/internal/core/domain"
	portsrepo "github.com/smirnov-vv/ipledger/internal/core/ports/repositories"
)

// PgxLedgerRepository persists the append-only transaction log.
type PgxLedgerRepository struct {
	BaseRepository
}

func newPgxLedgerRepository(q Querier) *PgxLedgerRepository {
	return &PgxLedgerRepository{BaseRepository{q: q}}
}

var _ portsrepo.LedgerRepository = (*PgxLedgerRepository)(nil)

const transactionColumns = `transaction_id, user_id, entity_id, target_entity_id, kind, amount, comment, created_at`

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var t domain.Transaction
	var entityID, targetID, comment sql.NullString
	err := row.Scan(&t.TransactionID, &t.UserID, &entityID, &targetID, &t.Kind, &t.Amount, &comment, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan transaction row: %w", err)
	}
	if entityID.Valid {
		t.EntityID = &entityID.String
	}
	if targetID.Valid {
		t.TargetID = &targetID.String
	}
	t.Comment = comment.String
	return &t, nil
}

func (r *PgxLedgerRepository) AppendEntry(ctx context.Context, entry domain.Transaction) error {
	query := `
		INSERT INTO transactions (transaction_id, user_id, entity_id, target_entity_id, kind, amount, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), $8);
	`
	_, err := r.q.Exec(ctx, query,
		entry.TransactionID,
		entry.UserID,
		entry.EntityID,
		entry.TargetID,
		entry.Kind,
		entry.Amount,
		entry.Comment,
		entry.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: transaction %s already recorded", apperrors.ErrDuplicate, entry.TransactionID)
		}
		return fmt.Errorf("failed to append ledger entry: %w", err)
	}
	return nil
}

// ListEntries returns entries newest first, filtered by any non-nil fields of
// the filter. The WHERE clause is assembled from positional parameters only.
func (r *PgxLedgerRepository) ListEntries(ctx context.Context, filter portsrepo.LedgerFilter) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions`
	var args []any
	var conds []string

	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		conds = append(conds, "user_id = $"+strconv.Itoa(len(args)))
	}
	if filter.EntityID != nil {
		args = append(args, *filter.EntityID)
		n := strconv.Itoa(len(args))
		conds = append(conds, "(entity_id = $"+n+" OR target_entity_id = $"+n+")")
	}
	if filter.Since != nil {
		args = append(args, *filter.Since)
		conds = append(conds, "created_at >= $"+strconv.Itoa(len(args)))
	}
	for i, c := range conds {
		if i == 0 {
			query += " WHERE " + c
		} else {
			query += " AND " + c
		}
	}
	query += " ORDER BY created_at DESC, transaction_id DESC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += " LIMIT $" + strconv.Itoa(len(args))
	}
	query += ";"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ledger rows: %w", err)
	}
	return entries, nil
}
