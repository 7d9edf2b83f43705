package riot

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

var (
	// ErrTimeout is returned when a request exceeds the client timeout.
	ErrTimeout = errors.New("riot api: request timeout")
	// ErrNoAPIKey is returned by NewClient when no key is configured.
	ErrNoAPIKey = errors.New("riot api: RIOT_API_KEY is not configured")
)

// StatusError is a non-200 response from the Riot API.
type StatusError struct {
	Op         string // e.g. "get account"
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: riot api returned %d", e.Op, e.StatusCode)
}

func statusIs(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == code
}

// IsNotFound reports a 404 anywhere in err's chain.
func IsNotFound(err error) bool { return statusIs(err, http.StatusNotFound) }

// IsForbidden reports a 401 or 403, both meaning a bad or expired key.
func IsForbidden(err error) bool {
	return statusIs(err, http.StatusForbidden) || statusIs(err, http.StatusUnauthorized)
}

// IsRateLimited reports a 429.
func IsRateLimited(err error) bool { return statusIs(err, http.StatusTooManyRequests) }

// IsTimeout reports whether err is, or wraps, ErrTimeout.
func IsTimeout(err error) bool { return errors.Is(err, ErrTimeout) }

// classifyTransport turns client-side deadline failures into ErrTimeout.
// Caller cancellation is passed through unchanged.
func classifyTransport(op string, err error) error {
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w", op, err)
	}
	var ne net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &ne) && ne.Timeout()) {
		return fmt.Errorf("%s: %w", op, ErrTimeout)
	}
	return fmt.Errorf("%s: %w", op, err)
}
