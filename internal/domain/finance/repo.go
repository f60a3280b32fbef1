package finance

import "context"

type Repository interface {
	// IncomeSummary aggregates stored events into per-month, per-category
	// buckets ordered by month then category.
	IncomeSummary(ctx context.Context, filter SummaryFilter) ([]*IncomeRow, error)
}
