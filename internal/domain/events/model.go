package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/notluquis/bioalergia-sub009/internal/parser"
)

// CalendarEvent maps to the calendar_events table: one row per synced
// calendar entry, carrying the raw text alongside the metadata the extraction
// engine derived from it.
type CalendarEvent struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	SourceUID   string     `db:"source_uid" json:"source_uid"`
	Summary     *string    `db:"summary" json:"summary,omitempty"`
	Description *string    `db:"description" json:"description,omitempty"`
	StartsAt    *time.Time `db:"starts_at" json:"starts_at,omitempty"`
	EndsAt      *time.Time `db:"ends_at" json:"ends_at,omitempty"`

	// Ignored records the IsIgnored verdict at sync time. The engine still
	// fills the metadata fields for ignored events; reporting filters on
	// this flag instead of guessing from a nil category.
	Ignored bool `db:"ignored" json:"ignored"`

	parser.Metadata

	SyncedAt  time.Time `db:"synced_at" json:"synced_at"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// RawEvent is the shape the upstream calendar feed hands to the service. The
// engine itself only ever sees the two text fields.
type RawEvent struct {
	UID         string     `json:"uid"`
	Summary     *string    `json:"summary,omitempty"`
	Description *string    `json:"description,omitempty"`
	StartsAt    *time.Time `json:"starts_at,omitempty"`
	EndsAt      *time.Time `json:"ends_at,omitempty"`
}

// applyParsed re-derives the extracted metadata from the event's current
// text. It is the only place the domain calls into the engine, so parse
// semantics cannot drift between ingest and reparse.
func (ev *CalendarEvent) applyParsed() {
	ev.Metadata = parser.Parse(ev.Summary, ev.Description)
	ev.Ignored = parser.IsIgnored(ev.Summary)
}
