package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/cuongbtq/job-search-be/internal/events"
	"github.com/cuongbtq/job-search-be/internal/worker/domain"
	"github.com/google/uuid"
)

// processEvent decodes a search event and stores it
func (w *Worker) processEvent(ctx context.Context, body []byte) error {
	record, err := decodeSearchEvent(body)
	if err != nil {
		return err
	}

	eventCtx := ctx
	if w.eventTimeout > 0 {
		var cancel context.CancelFunc
		eventCtx, cancel = context.WithTimeout(ctx, w.eventTimeout)
		defer cancel()
	}

	if err := w.store.SaveSearch(eventCtx, record); err != nil {
		return domain.NewRetryableError(err)
	}

	w.logger.Info("Search recorded",
		slog.String("search_id", record.SearchID),
		slog.String("outcome", record.Outcome),
		slog.Int("result_count", record.ResultCount),
	)

	return nil
}

// decodeSearchEvent validates a message body and maps it to a record
func decodeSearchEvent(body []byte) (*domain.SearchRecord, error) {
	var evt events.SearchCompleted
	if err := json.Unmarshal(body, &evt); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidEvent, err)
	}

	if _, err := uuid.Parse(evt.SearchID); err != nil {
		return nil, fmt.Errorf("%w: search_id %q is not a UUID", domain.ErrInvalidEvent, evt.SearchID)
	}

	switch evt.Outcome {
	case events.OutcomeOK, events.OutcomeUpstreamError:
	default:
		return nil, fmt.Errorf("%w: unknown outcome %q", domain.ErrInvalidEvent, evt.Outcome)
	}

	if evt.OccurredAt.IsZero() {
		return nil, fmt.Errorf("%w: occurred_at is required", domain.ErrInvalidEvent)
	}

	return &domain.SearchRecord{
		SearchID:       evt.SearchID,
		JobTitle:       evt.Preferences.JobTitle,
		Location:       evt.Preferences.Location,
		MinSalary:      int64(evt.Preferences.MinSalary),
		JobType:        evt.Preferences.JobType,
		ResultCount:    evt.ResultCount,
		Outcome:        evt.Outcome,
		UpstreamStatus: evt.UpstreamStatus,
		Error:          evt.Error,
		DurationMS:     evt.DurationMS,
		OccurredAt:     evt.OccurredAt,
	}, nil
}
