package finance

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/notluquis/bioalergia-sub009/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

func (r *repoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

func (r *repoPG) IncomeSummary(ctx context.Context, filter SummaryFilter) ([]*IncomeRow, error) {
	q := `
		SELECT date_trunc('month', starts_at) AS month, category,
			COUNT(*) AS event_count,
			COUNT(*) FILTER (WHERE attended IS TRUE) AS attended_count,
			COUNT(*) FILTER (WHERE attended IS FALSE) AS no_show_count,
			COALESCE(SUM(amount_expected), 0) AS total_expected,
			COALESCE(SUM(amount_paid), 0) AS total_paid
		FROM calendar_events
		WHERE ignored = FALSE AND starts_at IS NOT NULL`
	var args []interface{}
	if filter.From != nil {
		args = append(args, *filter.From)
		q += fmt.Sprintf(` AND starts_at >= $%d`, len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		q += fmt.Sprintf(` AND starts_at < $%d`, len(args))
	}
	if filter.Category != nil {
		args = append(args, *filter.Category)
		q += fmt.Sprintf(` AND category = $%d`, len(args))
	}
	q += ` GROUP BY 1, 2 ORDER BY 1, 2 NULLS LAST`

	rows, err := r.conn(ctx).Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []*IncomeRow
	for rows.Next() {
		var row IncomeRow
		if err := rows.Scan(&row.Month, &row.Category,
			&row.EventCount, &row.AttendedCount, &row.NoShowCount,
			&row.TotalExpected, &row.TotalPaid); err != nil {
			return nil, err
		}
		result = append(result, &row)
	}
	return result, rows.Err()
}
