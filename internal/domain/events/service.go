package events

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/notluquis/bioalergia-sub009/internal/parser"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Ingest runs the extraction engine over a raw feed event and upserts the
// result keyed by the feed's UID. Repeated syncs of the same UID refresh the
// stored text and re-derive every metadata column.
func (s *Service) Ingest(ctx context.Context, raw RawEvent) (*CalendarEvent, error) {
	if raw.UID == "" {
		return nil, fmt.Errorf("uid is required")
	}
	ev := &CalendarEvent{
		SourceUID:   raw.UID,
		Summary:     raw.Summary,
		Description: raw.Description,
		StartsAt:    raw.StartsAt,
		EndsAt:      raw.EndsAt,
	}
	ev.applyParsed()
	if err := s.repo.Upsert(ctx, ev); err != nil {
		return nil, fmt.Errorf("upsert event %s: %w", raw.UID, err)
	}
	return ev, nil
}

// Reparse re-runs the engine over a stored event's text without touching the
// text itself. Used after rule changes to refresh historical rows.
func (s *Service) Reparse(ctx context.Context, id uuid.UUID) (*CalendarEvent, error) {
	ev, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	ev.applyParsed()
	if err := s.repo.Update(ctx, ev); err != nil {
		return nil, fmt.Errorf("update event %s: %w", id, err)
	}
	return ev, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*CalendarEvent, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetBySourceUID(ctx context.Context, sourceUID string) (*CalendarEvent, error) {
	return s.repo.GetBySourceUID(ctx, sourceUID)
}

func (s *Service) List(ctx context.Context, filter ListFilter, limit, offset int) ([]*CalendarEvent, int, error) {
	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		return nil, 0, fmt.Errorf("to must not precede from")
	}
	return s.repo.List(ctx, filter, limit, offset)
}

// ParseResult is the stateless parse surface: the derived metadata plus the
// ignore verdict, with nothing persisted.
type ParseResult struct {
	parser.Metadata
	Ignored bool `json:"ignored"`
}

func (s *Service) ParseText(summary, description *string) ParseResult {
	return ParseResult{
		Metadata: parser.Parse(summary, description),
		Ignored:  parser.IsIgnored(summary),
	}
}

// timeRange parses the from/to query values accepted by the list endpoint.
// Both RFC 3339 timestamps and bare dates are accepted.
func timeRange(from, to string) (*time.Time, *time.Time, error) {
	parse := func(s string) (*time.Time, error) {
		if s == "" {
			return nil, nil
		}
		for _, layout := range []string{time.RFC3339, "2006-01-02"} {
			if t, err := time.Parse(layout, s); err == nil {
				return &t, nil
			}
		}
		return nil, fmt.Errorf("invalid time %q", s)
	}
	f, err := parse(from)
	if err != nil {
		return nil, nil, err
	}
	t, err := parse(to)
	if err != nil {
		return nil, nil, err
	}
	return f, t, nil
}
