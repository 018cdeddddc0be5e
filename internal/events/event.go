package events

import (
	"time"

	"github.com/cuongbtq/job-search-be/internal/search"
)

// Outcomes recorded for a search
const (
	OutcomeOK            = "ok"
	OutcomeUpstreamError = "upstream_error"
)

// ContentTypeJSON is the content type of published events
const ContentTypeJSON = "application/json"

// SearchCompleted is published once per handled search request
type SearchCompleted struct {
	SearchID       string             `json:"search_id"`
	Preferences    search.Preferences `json:"preferences"`
	ResultCount    int                `json:"result_count"`
	Outcome        string             `json:"outcome"`
	UpstreamStatus int                `json:"upstream_status,omitempty"`
	Error          string             `json:"error,omitempty"`
	DurationMS     int64              `json:"duration_ms"`
	OccurredAt     time.Time          `json:"occurred_at"`
}

// NewSearchCompleted builds the event for a finished search
func NewSearchCompleted(searchID string, prefs search.Preferences, result *search.Result, at time.Time) SearchCompleted {
	evt := SearchCompleted{
		SearchID:    searchID,
		Preferences: prefs,
		ResultCount: len(result.Jobs),
		Outcome:     OutcomeOK,
		DurationMS:  result.Duration.Milliseconds(),
		OccurredAt:  at.UTC(),
	}

	if result.Failed() {
		evt.Outcome = OutcomeUpstreamError
		evt.UpstreamStatus = search.UpstreamStatus(result.Err)
		evt.Error = result.Err.Error()
	}

	return evt
}
