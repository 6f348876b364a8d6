// Package sync drives the per-entity-kind query → wait → fetch → transform
// → load sequence.
package sync

import (
	"context"
	"log/slog"

	"lakesync/internal/domain"
)

// Outcome is the terminal state of one entity kind within a run.
type Outcome string

// Per-kind outcomes. Aborted and Skipped both log and move on to the next
// entity kind; the run itself never stops because one kind failed.
const (
	OutcomeLoaded  Outcome = "LOADED"
	OutcomeSkipped Outcome = "SKIPPED"
	OutcomeAborted Outcome = "ABORTED"
)

// KindResult reports what happened to one entity kind.
type KindResult struct {
	Kind    domain.EntityKind
	Outcome Outcome
	Reason  string // empty for OutcomeLoaded
	Rows    int    // raw rows fetched
}

// Service orchestrates a sync run over a fixed plan of entity kinds.
type Service struct {
	submitter   domain.QuerySubmitter
	waiter      domain.StatusWaiter
	fetcher     domain.ResultFetcher
	transformer domain.EntityTransformer
	loader      domain.RecordLoader
	plan        []domain.SyncTarget
	logger      *slog.Logger
}

// NewService wires the pipeline stages to a plan.
func NewService(
	submitter domain.QuerySubmitter,
	waiter domain.StatusWaiter,
	fetcher domain.ResultFetcher,
	transformer domain.EntityTransformer,
	loader domain.RecordLoader,
	plan []domain.SyncTarget,
	logger *slog.Logger,
) *Service {
	return &Service{
		submitter:   submitter,
		waiter:      waiter,
		fetcher:     fetcher,
		transformer: transformer,
		loader:      loader,
		plan:        plan,
		logger:      logger.With("component", "sync"),
	}
}

// Run processes every entity kind in plan order, sequentially, isolating
// failures per kind. It returns one result per kind.
func (s *Service) Run(ctx context.Context) []KindResult {
	results := make([]KindResult, 0, len(s.plan))
	for _, target := range s.plan {
		logger := s.logger.With("kind", string(target.Kind))
		logger.Info("processing entity kind")

		res := s.syncKind(ctx, target, logger)
		switch res.Outcome {
		case OutcomeLoaded:
			logger.Info("entity kind loaded", "rows", res.Rows)
		case OutcomeSkipped:
			logger.Warn("entity kind skipped", "reason", res.Reason)
		case OutcomeAborted:
			logger.Error("entity kind aborted", "reason", res.Reason)
		}
		results = append(results, res)
	}
	s.logger.Info("sync run finished", "kinds", len(results))
	return results
}

func (s *Service) syncKind(ctx context.Context, target domain.SyncTarget, logger *slog.Logger) KindResult {
	res := KindResult{Kind: target.Kind}

	handle, err := s.submitter.Submit(ctx, target.Query)
	if err != nil {
		res.Outcome = OutcomeAborted
		res.Reason = err.Error()
		return res
	}

	status := s.waiter.Wait(ctx, handle)
	if status != domain.StatusSucceeded {
		res.Outcome = OutcomeSkipped
		res.Reason = "query not completed: " + string(status)
		return res
	}

	rows, err := s.fetcher.Fetch(ctx, handle)
	if err != nil {
		res.Outcome = OutcomeAborted
		res.Reason = err.Error()
		return res
	}
	res.Rows = len(rows)
	if len(rows) == 0 {
		res.Outcome = OutcomeSkipped
		res.Reason = "no rows in result"
		return res
	}

	records, derived, err := s.transformer.Transform(target.Kind, rows)
	if err != nil {
		res.Outcome = OutcomeAborted
		res.Reason = err.Error()
		return res
	}

	if err := s.loader.Load(ctx, records, target.Table); err != nil {
		res.Outcome = OutcomeAborted
		res.Reason = err.Error()
		return res
	}
	if target.JunctionTable != "" {
		if err := s.loader.Load(ctx, derived, target.JunctionTable); err != nil {
			res.Outcome = OutcomeAborted
			res.Reason = err.Error()
			return res
		}
	}

	res.Outcome = OutcomeLoaded
	return res
}
