package search

import (
	"errors"
	"fmt"
)

var (
	// ErrUpstreamStatus is returned when the provider answers with a non-200 status
	ErrUpstreamStatus = errors.New("upstream returned non-success status")

	// ErrUpstreamUnavailable is returned when the provider cannot be reached
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrMalformedResponse is returned when the provider body cannot be decoded
	ErrMalformedResponse = errors.New("malformed upstream response")
)

// UpstreamError describes a failed provider call
type UpstreamError struct {
	StatusCode int // 0 when no response was received
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("upstream error (status %d): %v", e.StatusCode, e.Err)
	}
	return "upstream error: " + e.Err.Error()
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// NewUpstreamError wraps err with the provider status code
func NewUpstreamError(statusCode int, err error) error {
	return &UpstreamError{StatusCode: statusCode, Err: err}
}

// UpstreamStatus extracts the provider status code from err, or 0
func UpstreamStatus(err error) int {
	var upstreamErr *UpstreamError
	if errors.As(err, &upstreamErr) {
		return upstreamErr.StatusCode
	}
	return 0
}
