package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/smirnov-vv/ipledger/internal/apperrors"
	"github.com/smirnov-vv/ipledger/internal/core/domain"
	portsrepo "github.com/smirnov-vv/ipledger/internal/core/ports/repositories"
)

// PgxUserRepository persists users.
type PgxUserRepository struct {
	BaseRepository
}

func newPgxUserRepository(q Querier) *PgxUserRepository {
	return &PgxUserRepository{BaseRepository{q: q}}
}

var _ portsrepo.UserRepository = (*PgxUserRepository)(nil)

const userColumns = `user_id, username, role, cash_balance, created_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	var username sql.NullString
	err := row.Scan(&u.UserID, &username, &u.Role, &u.CashBalance, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan user row: %w", err)
	}
	u.Username = username.String
	return &u, nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1;`
	return scanUser(r.q.QueryRow(ctx, query, userID))
}

func (r *PgxUserRepository) FindUserByIDForUpdate(ctx context.Context, userID int64) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1 FOR UPDATE;`
	return scanUser(r.q.QueryRow(ctx, query, userID))
}

// UpsertUser registers a user on first contact or refreshes the username of
// an existing one. The role column is only written on insert.
func (r *PgxUserRepository) UpsertUser(ctx context.Context, user domain.User) (*domain.User, error) {
	query := `
		INSERT INTO users (user_id, username, role, cash_balance, created_at)
		VALUES ($1, NULLIF($2, ''), $3, 0, $4)
		ON CONFLICT (user_id) DO UPDATE SET username = NULLIF($2, '')
		RETURNING ` + userColumns + `;
	`
	return scanUser(r.q.QueryRow(ctx, query, user.UserID, user.Username, user.Role, user.CreatedAt))
}

func (r *PgxUserRepository) ListUsers(ctx context.Context) ([]domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY username NULLS LAST, user_id;`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}
	return users, nil
}

func (r *PgxUserRepository) UpdateUserRole(ctx context.Context, userID int64, role domain.UserRole) error {
	cmdTag, err := r.q.Exec(ctx, `UPDATE users SET role = $2 WHERE user_id = $1;`, userID, role)
	if err != nil {
		return fmt.Errorf("failed to update role of user %d: %w", userID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user %d: %w", userID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxUserRepository) AdjustUserCash(ctx context.Context, userID int64, delta int64) error {
	cmdTag, err := r.q.Exec(ctx,
		`UPDATE users SET cash_balance = cash_balance + $2 WHERE user_id = $1;`,
		userID, delta)
	if err != nil {
		return fmt.Errorf("failed to adjust cash of user %d: %w", userID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user %d: %w", userID, apperrors.ErrNotFound)
	}
	return nil
}
