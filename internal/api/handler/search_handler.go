package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/cuongbtq/job-search-be/internal/api/dto"
	"github.com/cuongbtq/job-search-be/internal/events"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SearchIDHeader carries the per-request search identifier
const SearchIDHeader = "X-Search-ID"

// publishTimeout bounds how long a slow broker can hold the response
const publishTimeout = 2 * time.Second

// Search handles POST /api/search
// Translates the preferences, queries the provider and returns the
// normalized jobs. Provider failures yield an empty list, or 502 when
// surfaceUpstreamErrors is set. The search event is published before the
// response is written, bounded by publishTimeout.
func (h *SearchHandler) Search(c *gin.Context) {
	searchID := uuid.New().String()
	c.Header(SearchIDHeader, searchID)

	req, err := bindSearchRequest(c)
	if err != nil {
		h.logger.Error("Invalid request body",
			slog.String("search_id", searchID),
			slog.String("error", err.Error()),
		)
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	prefs := req.ToPreferences()

	h.logger.Info("Received search request",
		slog.String("search_id", searchID),
		slog.String("job_title", prefs.JobTitle),
		slog.String("location", prefs.Location),
		slog.Int64("min_salary", int64(prefs.MinSalary)),
		slog.String("job_type", prefs.JobType),
	)

	result := h.searcher.Search(c.Request.Context(), prefs)

	h.publish(c.Request.Context(), events.NewSearchCompleted(searchID, prefs, result, time.Now()))

	if result.Failed() && h.surfaceUpstreamErrors {
		c.JSON(http.StatusBadGateway, dto.ErrorResponse{Error: "Upstream search failed"})
		return
	}

	c.JSON(http.StatusOK, dto.FromJobRecords(result.Jobs))
}

// bindSearchRequest decodes the body; an absent or empty body is an empty
// search request.
func bindSearchRequest(c *gin.Context) (dto.SearchRequest, error) {
	var req dto.SearchRequest

	if c.Request.Body == nil || c.Request.Body == http.NoBody {
		return req, nil
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return dto.SearchRequest{}, nil
		}
		return dto.SearchRequest{}, err
	}

	return req, nil
}

func (h *SearchHandler) publish(ctx context.Context, evt events.SearchCompleted) {
	if h.publisher == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := h.publisher.PublishSearchCompleted(ctx, evt); err != nil {
		h.logger.Warn("Failed to publish search event",
			slog.String("search_id", evt.SearchID),
			slog.String("error", err.Error()),
		)
	}
}
