package lookup

import (
	"fmt"
	"time"
)

// APIError is a non-2xx response from the search endpoint.
type APIError struct {
	StatusCode int            `json:"-"`
	Message    string         `json:"message,omitempty"`
	Raw        map[string]any `json:"-"`
	RequestID  string         `json:"-"`
}

func (e *APIError) Error() string {
	switch {
	case e.Message != "" && e.RequestID != "":
		return fmt.Sprintf("lookup error: status=%d request_id=%s message=%s", e.StatusCode, e.RequestID, e.Message)
	case e.Message != "":
		return fmt.Sprintf("lookup error: status=%d message=%s", e.StatusCode, e.Message)
	case e.RequestID != "":
		return fmt.Sprintf("lookup error: status=%d request_id=%s", e.StatusCode, e.RequestID)
	}
	return fmt.Sprintf("lookup error: status=%d", e.StatusCode)
}

// AuthError indicates the proxy rejected our credentials (401/403).
type AuthError struct{ *APIError }

func (e *AuthError) Error() string {
	return fmt.Sprintf("authentication failed: %s", e.APIError.Error())
}

// RateLimitError indicates 429 responses and may include a Retry-After.
type RateLimitError struct {
	*APIError
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limited: wait about %ds before retrying: %s", int(e.RetryAfter.Seconds()), e.APIError.Error())
	}
	return fmt.Sprintf("rate limited: %s", e.APIError.Error())
}

// NotFoundError indicates the configured endpoint does not exist.
type NotFoundError struct{ *APIError }

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("endpoint not found: %s", e.APIError.Error())
}

// BadRequestError indicates the query was rejected (400).
type BadRequestError struct{ *APIError }

func (e *BadRequestError) Error() string { return fmt.Sprintf("bad request: %s", e.APIError.Error()) }

// ServerError indicates 5xx errors from the proxy or upstream.
type ServerError struct{ *APIError }

func (e *ServerError) Error() string { return fmt.Sprintf("server error: %s", e.APIError.Error()) }

// UnreachableError indicates the endpoint could not be contacted at all.
type UnreachableError struct {
	Host string
	Err  error
}

func (e *UnreachableError) Error() string {
	if e == nil {
		return "unreachable"
	}
	if e.Host != "" {
		return fmt.Sprintf("endpoint unreachable at %s: %v", e.Host, e.Err)
	}
	return fmt.Sprintf("endpoint unreachable: %v", e.Err)
}

func (e *UnreachableError) Unwrap() error { return e.Err }
