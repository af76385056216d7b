package hubspot

import (
	"fmt"
	"time"
)

// APIError is returned when the CRM API responds with a non-2xx status other
// than 401. A 429 carries the server-directed wait in RetryAfter; the walker
// consumes those internally, so callers only see one after a terminal failure.
type APIError struct {
	StatusCode int
	Body       string
	RetryAfter time.Duration
}

func (e *APIError) Error() string {
	return fmt.Sprintf("hubspot: HTTP %d: %s", e.StatusCode, e.Body)
}

// RateLimited reports whether the error is a 429 response.
func (e *APIError) RateLimited() bool {
	return e.StatusCode == 429
}

// AuthError is returned on a 401: the credential is invalid or expired.
// It is fatal and never retried; the API's message is preserved so the
// operator can tell an expired token from a missing scope.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("hubspot: authentication failed: %s", e.Message)
}
