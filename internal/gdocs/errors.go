package gdocs

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"google.golang.org/api/googleapi"
)

// DefaultRetryAfter is used when a 429 response carries no usable
// Retry-After header.
const DefaultRetryAfter = 60 * time.Second

// AuthenticationError indicates the remote service rejected the request's
// credentials (HTTP 401 or 403).
type AuthenticationError struct {
	StatusCode int
	Message    string
}

func (e *AuthenticationError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("authentication failed (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("authentication failed (status %d)", e.StatusCode)
}

// RateLimitError indicates the remote service throttled the request
// (HTTP 429). RetryAfter is taken from the Retry-After response header,
// defaulting to DefaultRetryAfter when absent or unparseable.
type RateLimitError struct {
	RetryAfter time.Duration
	Message    string
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limited: retry after %s", e.RetryAfter)
}

// APIError is any other non-success response from the Docs API. Message is
// the remote-provided error text when the response carried a JSON error
// envelope, otherwise a generic "API error: <status>".
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// classifyError converts transport errors from the generated Docs bindings
// into the package's typed failures. Non-HTTP errors (context cancellation,
// connection failures) pass through unchanged.
//
// Classification order: 429, then 401/403, then any other non-2xx status.
func classifyError(err error) error {
	if err == nil {
		return nil
	}

	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return err
	}

	switch {
	case gerr.Code == http.StatusTooManyRequests:
		return &RateLimitError{
			RetryAfter: retryAfterFromHeader(gerr.Header),
			Message:    gerr.Message,
		}
	case gerr.Code == http.StatusUnauthorized, gerr.Code == http.StatusForbidden:
		return &AuthenticationError{
			StatusCode: gerr.Code,
			Message:    gerr.Message,
		}
	default:
		message := gerr.Message
		if message == "" {
			message = fmt.Sprintf("API error: %d", gerr.Code)
		}
		return &APIError{
			StatusCode: gerr.Code,
			Message:    message,
		}
	}
}

// retryAfterFromHeader parses the Retry-After header as integer seconds.
// The Docs API sends delay-seconds, not HTTP dates.
func retryAfterFromHeader(h http.Header) time.Duration {
	value := h.Get("Retry-After")
	if value == "" {
		return DefaultRetryAfter
	}
	seconds, err := strconv.Atoi(value)
	if err != nil || seconds < 0 {
		return DefaultRetryAfter
	}
	return time.Duration(seconds) * time.Second
}
