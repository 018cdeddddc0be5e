package search

import (
	"context"
	"log/slog"
	"time"
)

// Provider performs one outbound search call
type Provider interface {
	Search(ctx context.Context, query Query) ([]RawPosting, error)
}

// Result is the outcome of a search. Jobs is never nil and is empty
// whenever Err is set.
type Result struct {
	Jobs     []JobRecord
	Err      error
	Duration time.Duration
}

// Failed reports whether the upstream call failed
func (r *Result) Failed() bool {
	return r.Err != nil
}

// Service runs preference searches against a provider
type Service struct {
	provider   Provider
	translator *Translator
	logger     *slog.Logger
}

// NewService creates a new search service
func NewService(provider Provider, translator *Translator, logger *slog.Logger) *Service {
	return &Service{
		provider:   provider,
		translator: translator,
		logger:     logger,
	}
}

// Search translates prefs, issues a single provider call and normalizes the
// postings. Provider failures are reported in Result.Err, never panicked.
func (s *Service) Search(ctx context.Context, prefs Preferences) *Result {
	start := time.Now()
	query := s.translator.Translate(prefs)

	s.logger.Debug("Translated search preferences",
		slog.String("what", query.What),
		slog.String("where", query.Where),
		slog.Int64("salary_min", query.SalaryMin),
		slog.String("category", query.Category),
	)

	raw, err := s.provider.Search(ctx, query)
	if err != nil {
		s.logger.Error("Job search failed",
			slog.String("error", err.Error()),
			slog.Int("upstream_status", UpstreamStatus(err)),
		)
		return &Result{
			Jobs:     []JobRecord{},
			Err:      err,
			Duration: time.Since(start),
		}
	}

	jobs := Normalize(raw)

	s.logger.Info("Job search completed",
		slog.Int("result_count", len(jobs)),
		slog.Duration("duration", time.Since(start)),
	)

	return &Result{
		Jobs:     jobs,
		Duration: time.Since(start),
	}
}
