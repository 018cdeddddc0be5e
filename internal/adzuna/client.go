package adzuna

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/cuongbtq/job-search-be/internal/search"
)

const (
	// DefaultBaseURL is the Adzuna jobs API root
	DefaultBaseURL = "https://api.adzuna.com/v1/api/jobs"

	// DefaultTimeout bounds a single search call
	DefaultTimeout = 15 * time.Second

	// DefaultMaxBodyBytes caps how much of a response body is read
	DefaultMaxBodyBytes int64 = 1 << 20

	// maxErrorBodyLog limits how much of an error body is logged
	maxErrorBodyLog = 512
)

// Config holds Adzuna client configuration
type Config struct {
	BaseURL      string
	AppID        string
	AppKey       string
	Timeout      time.Duration
	MaxBodyBytes int64
}

// Client calls the Adzuna search endpoint
type Client struct {
	config     *Config
	httpClient *http.Client
	logger     *slog.Logger
}

// searchResponse mirrors the top-level Adzuna JSON response
type searchResponse struct {
	Results []search.RawPosting `json:"results"`
	Count   int                 `json:"count"`
}

// NewClient creates a new Adzuna client
func NewClient(config *Config, logger *slog.Logger) *Client {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.Timeout <= 0 {
		config.Timeout = DefaultTimeout
	}
	if config.MaxBodyBytes <= 0 {
		config.MaxBodyBytes = DefaultMaxBodyBytes
	}

	return &Client{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
		logger:     logger,
	}
}

// Search issues one GET against {base}/{country}/search/{page} and returns
// the raw postings. Failures are returned as *search.UpstreamError.
func (c *Client) Search(ctx context.Context, query search.Query) ([]search.RawPosting, error) {
	endpoint := fmt.Sprintf("%s/%s/search/%d", c.config.BaseURL, query.Country, query.Page)
	params := query.Values(c.config.AppID, c.config.AppKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, search.NewUpstreamError(0, fmt.Errorf("%w: build request: %v", search.ErrUpstreamUnavailable, err))
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Info("Requesting Adzuna search",
		slog.String("endpoint", endpoint),
		slog.String("what", query.What),
		slog.String("where", query.Where),
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, search.NewUpstreamError(0, fmt.Errorf("%w: %v", search.ErrUpstreamUnavailable, redact(err, c.config.AppKey)))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.config.MaxBodyBytes))
	if err != nil {
		return nil, search.NewUpstreamError(resp.StatusCode, fmt.Errorf("%w: read body: %v", search.ErrUpstreamUnavailable, err))
	}

	c.logger.Debug("Adzuna responded",
		slog.Int("status", resp.StatusCode),
		slog.Int("body_size", len(body)),
	)

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("Adzuna returned non-success status",
			slog.Int("status", resp.StatusCode),
			slog.String("body", truncate(string(body), maxErrorBodyLog)),
		)
		return nil, search.NewUpstreamError(resp.StatusCode, search.ErrUpstreamStatus)
	}

	var apiResp searchResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, search.NewUpstreamError(resp.StatusCode, fmt.Errorf("%w: %v", search.ErrMalformedResponse, err))
	}

	if apiResp.Results == nil {
		return []search.RawPosting{}, nil
	}

	return apiResp.Results, nil
}
