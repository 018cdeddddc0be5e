package handler

import (
	"context"
	"log/slog"

	"github.com/cuongbtq/job-search-be/internal/events"
	"github.com/cuongbtq/job-search-be/internal/search"
)

// Searcher runs a preference search
type Searcher interface {
	Search(ctx context.Context, prefs search.Preferences) *search.Result
}

// EventPublisher records finished searches
type EventPublisher interface {
	PublishSearchCompleted(ctx context.Context, evt events.SearchCompleted) error
}

var _ Searcher = (*search.Service)(nil)

// Dependencies holds all dependencies needed by handlers
type Dependencies struct {
	Logger    *slog.Logger
	Searcher  Searcher
	Publisher EventPublisher // nil disables search events

	// SurfaceUpstreamErrors answers 502 instead of [] on provider failure
	SurfaceUpstreamErrors bool
}

// SearchHandler handles job search HTTP requests
type SearchHandler struct {
	logger                *slog.Logger
	searcher              Searcher
	publisher             EventPublisher
	surfaceUpstreamErrors bool
}

// NewSearchHandler creates a new SearchHandler instance
func NewSearchHandler(deps *Dependencies) *SearchHandler {
	return &SearchHandler{
		logger:                deps.Logger,
		searcher:              deps.Searcher,
		publisher:             deps.Publisher,
		surfaceUpstreamErrors: deps.SurfaceUpstreamErrors,
	}
}
