// Package calsync pulls the clinic's ICS calendar feed and runs each event
// through the extraction engine into storage.
package calsync

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	ical "github.com/arran4/golang-ical"
)

// FeedEvent is one VEVENT from the upstream feed, reduced to the fields the
// sync pipeline needs.
type FeedEvent struct {
	UID         string
	Summary     *string
	Description *string
	StartsAt    *time.Time
	EndsAt      *time.Time
}

// Feed fetches and parses an ICS calendar over HTTP.
type Feed struct {
	url    string
	client *http.Client
}

func NewFeed(url string) *Feed {
	return &Feed{
		url:    url,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

func (f *Feed) Fetch(ctx context.Context) ([]FeedEvent, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build feed request: %w", err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch feed: unexpected status %d", resp.StatusCode)
	}
	return ParseFeed(resp.Body)
}

// ParseFeed reads an ICS payload and returns its events. VEVENTs without a
// UID are skipped; everything else is passed through untouched so the
// extraction engine sees the raw text.
func ParseFeed(r io.Reader) ([]FeedEvent, error) {
	cal, err := ical.ParseCalendar(r)
	if err != nil {
		return nil, fmt.Errorf("parse calendar: %w", err)
	}

	var events []FeedEvent
	for _, ve := range cal.Events() {
		uidProp := ve.GetProperty(ical.ComponentPropertyUniqueId)
		if uidProp == nil || uidProp.Value == "" {
			continue
		}
		ev := FeedEvent{UID: uidProp.Value}
		if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
			summary := p.Value
			ev.Summary = &summary
		}
		if p := ve.GetProperty(ical.ComponentPropertyDescription); p != nil {
			description := p.Value
			ev.Description = &description
		}
		if start, err := ve.GetStartAt(); err == nil {
			ev.StartsAt = &start
		}
		if end, err := ve.GetEndAt(); err == nil {
			ev.EndsAt = &end
		}
		events = append(events, ev)
	}
	return events, nil
}
