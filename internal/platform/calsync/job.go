package calsync

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/notluquis/bioalergia-sub009/internal/domain/events"
)

// Fetcher yields the current feed contents. Satisfied by *Feed.
type Fetcher interface {
	Fetch(ctx context.Context) ([]FeedEvent, error)
}

// TxRunner executes fn inside a storage transaction; repositories pick the
// transaction up from the context fn receives. Satisfied by a closure over
// db.WithTx. A nil runner executes fn directly.
type TxRunner func(ctx context.Context, fn func(ctx context.Context) error) error

// RunStats summarizes one sync run.
type RunStats struct {
	Fetched int `json:"fetched"`
	Synced  int `json:"synced"`
	Ignored int `json:"ignored"`
	Failed  int `json:"failed"`
}

// Job runs one full feed sync: fetch, parse, upsert.
type Job struct {
	fetcher  Fetcher
	svc      *events.Service
	txRunner TxRunner
	logger   zerolog.Logger
}

func NewJob(fetcher Fetcher, svc *events.Service, txRunner TxRunner, logger zerolog.Logger) *Job {
	return &Job{fetcher: fetcher, svc: svc, txRunner: txRunner, logger: logger}
}

// Run fetches the feed and ingests every event, inside one transaction when a
// TxRunner is configured so the whole feed lands atomically. A failing upsert
// is counted and logged but does not abort the loop; with a transaction, a
// storage-level failure surfaces at commit and nothing lands.
func (j *Job) Run(ctx context.Context) (RunStats, error) {
	feedEvents, err := j.fetcher.Fetch(ctx)
	if err != nil {
		return RunStats{}, err
	}

	stats := RunStats{Fetched: len(feedEvents)}
	ingestAll := func(ctx context.Context) error {
		for _, fe := range feedEvents {
			ev, err := j.svc.Ingest(ctx, events.RawEvent{
				UID:         fe.UID,
				Summary:     fe.Summary,
				Description: fe.Description,
				StartsAt:    fe.StartsAt,
				EndsAt:      fe.EndsAt,
			})
			if err != nil {
				stats.Failed++
				j.logger.Warn().Err(err).Str("uid", fe.UID).Msg("event sync failed")
				continue
			}
			stats.Synced++
			if ev.Ignored {
				stats.Ignored++
			}
		}
		return nil
	}

	if j.txRunner != nil {
		err = j.txRunner(ctx, ingestAll)
	} else {
		err = ingestAll(ctx)
	}
	if err != nil {
		return stats, fmt.Errorf("sync transaction: %w", err)
	}

	j.logger.Info().
		Int("fetched", stats.Fetched).
		Int("synced", stats.Synced).
		Int("ignored", stats.Ignored).
		Int("failed", stats.Failed).
		Msg("calendar sync completed")
	return stats, nil
}
