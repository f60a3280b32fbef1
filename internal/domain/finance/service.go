package finance

import (
	"context"
	"fmt"
	"time"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) IncomeSummary(ctx context.Context, filter SummaryFilter) ([]*IncomeRow, error) {
	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		return nil, fmt.Errorf("to must not precede from")
	}
	return s.repo.IncomeSummary(ctx, filter)
}

// parsePeriod accepts an RFC 3339 timestamp, a bare date, or a year-month.
func parsePeriod(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02", "2006-01"} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("invalid period %q", s)
}
