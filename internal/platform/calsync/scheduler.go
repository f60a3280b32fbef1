package calsync

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

const runTimeout = 5 * time.Minute

// Scheduler runs the sync job on a cron schedule.
type Scheduler struct {
	cron   *cron.Cron
	logger zerolog.Logger
}

// NewScheduler registers the job under the given cron spec
// (e.g. "*/15 * * * *"). The spec is validated here so a bad schedule fails
// at startup, not at first tick.
func NewScheduler(job *Job, spec string, logger zerolog.Logger) (*Scheduler, error) {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
		defer cancel()
		if _, err := job.Run(ctx); err != nil {
			logger.Error().Err(err).Msg("scheduled sync failed")
		}
	})
	if err != nil {
		return nil, err
	}
	return &Scheduler{cron: c, logger: logger}, nil
}

func (s *Scheduler) Start() {
	s.logger.Info().Msg("sync scheduler started")
	s.cron.Start()
}

// Stop halts scheduling and returns a context that is done once any running
// job has finished.
func (s *Scheduler) Stop() context.Context {
	s.logger.Info().Msg("sync scheduler stopping")
	return s.cron.Stop()
}
