package ingest

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"

	"lakesync/internal/config"
)

// Scheduler runs the stager on a cron schedule. The catalog only promises
// eventual data availability, so overlapping or missed passes are harmless;
// each pass restages every configured collection.
type Scheduler struct {
	cron    *cron.Cron
	stager  *Stager
	sources []config.SourceSpec
	logger  *slog.Logger
}

// NewScheduler creates a Scheduler over the given source collections.
func NewScheduler(stager *Stager, sources []config.SourceSpec, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		cron:    cron.New(),
		stager:  stager,
		sources: sources,
		logger:  logger.With("component", "ingest-scheduler"),
	}
}

// Start registers the staging pass under spec (standard cron syntax) and
// starts the scheduler.
func (s *Scheduler) Start(spec string) error {
	_, err := s.cron.AddFunc(spec, func() {
		ctx := context.Background()
		if _, err := s.stager.StageAll(ctx, s.sources); err != nil {
			s.logger.Warn("scheduled staging pass failed", "error", err)
		}
	})
	if err != nil {
		return err
	}
	s.cron.Start()
	s.logger.Info("ingest scheduler started", "schedule", spec, "sources", len(s.sources))
	return nil
}

// Stop gracefully stops the scheduler.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	s.logger.Info("ingest scheduler stopped")
}
