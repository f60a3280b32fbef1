package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ListFilter narrows List results. Nil fields are not applied.
type ListFilter struct {
	From           *time.Time
	To             *time.Time
	Category       *string
	Attended       *bool
	IncludeIgnored bool
}

type Repository interface {
	// Upsert inserts the event or, when its source UID already exists,
	// replaces the stored text and derived metadata.
	Upsert(ctx context.Context, ev *CalendarEvent) error
	GetByID(ctx context.Context, id uuid.UUID) (*CalendarEvent, error)
	GetBySourceUID(ctx context.Context, sourceUID string) (*CalendarEvent, error)
	Update(ctx context.Context, ev *CalendarEvent) error
	List(ctx context.Context, filter ListFilter, limit, offset int) ([]*CalendarEvent, int, error)
}
