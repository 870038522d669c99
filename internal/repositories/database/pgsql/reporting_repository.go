package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/smirnov-vv/ipledger/internal/core/domain"
	portsrepo "github.com/smirnov-vv/ipledger/internal/core/ports/repositories"
)

// PgxReportingRepository aggregates ledger entries for period summaries.
type PgxReportingRepository struct {
	BaseRepository
}

func newPgxReportingRepository(q Querier) *PgxReportingRepository {
	return &PgxReportingRepository{BaseRepository{q: q}}
}

var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

// PeriodTotals sums income and expense entries since the given time in one
// aggregate query. A nil since covers all time.
func (r *PgxReportingRepository) PeriodTotals(ctx context.Context, since *time.Time) (domain.PeriodTotals, error) {
	query := `
		SELECT
			COALESCE(SUM(amount) FILTER (WHERE kind = ANY($1)), 0) AS income,
			COALESCE(SUM(amount) FILTER (WHERE kind = ANY($2)), 0) AS expense
		FROM transactions
		WHERE $3::timestamptz IS NULL OR created_at >= $3;
	`
	income := kindStrings(domain.IncomeKinds)
	expense := kindStrings(domain.ExpenseKinds)

	var totals domain.PeriodTotals
	err := r.q.QueryRow(ctx, query, income, expense, since).Scan(&totals.Income, &totals.Expense)
	if err != nil {
		return domain.PeriodTotals{}, fmt.Errorf("failed to aggregate period totals: %w", err)
	}
	return totals, nil
}

func kindStrings(kinds []domain.OperationKind) []string {
	out := make([]string, len(kinds))
	for i, k := range kinds {
		out[i] = string(k)
	}
	return out
}
