package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/smirnov-vv/ipledger/internal/core/ports/repositories"
)

// repoSet binds the repository implementations to one querier, either the
// connection pool or one open transaction.
type repoSet struct {
	users     *PgxUserRepository
	entities  *PgxEntityRepository
	ledger    *PgxLedgerRepository
	debts     *PgxDebtRepository
	reporting *PgxReportingRepository
}

func newRepoSet(q Querier) repoSet {
	return repoSet{
		users:     newPgxUserRepository(q),
		entities:  newPgxEntityRepository(q),
		ledger:    newPgxLedgerRepository(q),
		debts:     newPgxDebtRepository(q),
		reporting: newPgxReportingRepository(q),
	}
}

func (r repoSet) Users() portsrepo.UserRepository           { return r.users }
func (r repoSet) Entities() portsrepo.EntityRepository      { return r.entities }
func (r repoSet) Ledger() portsrepo.LedgerRepository        { return r.ledger }
func (r repoSet) Debts() portsrepo.DebtRepository           { return r.debts }
func (r repoSet) Reporting() portsrepo.ReportingRepository  { return r.reporting }

// Store is the pgx-backed durable store: pool-backed repositories for plain
// reads plus Begin for opening an atomic unit of work.
type Store struct {
	repoSet
	pool *pgxpool.Pool
}

// NewStore creates a Store over the given connection pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{repoSet: newRepoSet(pool), pool: pool}
}

var _ portsrepo.Store = (*Store)(nil)

// Begin opens a database transaction and returns a unit of work whose
// repositories all run on that transaction.
func (s *Store) Begin(ctx context.Context) (portsrepo.UnitOfWork, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &unitOfWork{repoSet: newRepoSet(tx), tx: tx}, nil
}

// unitOfWork is one open database transaction.
type unitOfWork struct {
	repoSet
	tx pgx.Tx
}

var _ portsrepo.UnitOfWork = (*unitOfWork)(nil)

func (u *unitOfWork) Commit(ctx context.Context) error {
	if err := u.tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Rollback aborts the transaction. Calling it after a successful Commit is a
// no-op, so it is safe to defer unconditionally.
func (u *unitOfWork) Rollback(ctx context.Context) error {
	if err := u.tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}
	return nil
}
