package youtube

import (
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/api/googleapi"
)

var (
	// ErrNotFound is returned when the requested identifier does not exist
	// upstream. Callers stop that branch of work.
	ErrNotFound = errors.New("resource not found")

	// ErrTransient is returned for network, rate-limit and server-side
	// failures. Callers may retry; the client itself never does.
	ErrTransient = errors.New("transient api error")
)

// IsNotFound returns true if the error is an ErrNotFound error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsTransient returns true if the error is an ErrTransient error.
func IsTransient(err error) bool {
	return errors.Is(err, ErrTransient)
}

// classifyError maps Data API failures onto the two sentinel errors above.
// Disabled comments are reported as not-found: the comment branch of that
// video simply does not exist.
func classifyError(operation string, err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == http.StatusNotFound:
			return fmt.Errorf("%s: %w", operation, ErrNotFound)
		case apiErr.Code == http.StatusForbidden:
			for _, item := range apiErr.Errors {
				if item.Reason == "commentsDisabled" {
					return fmt.Errorf("%s: %w (comments disabled)", operation, ErrNotFound)
				}
			}
			// quotaExceeded, rateLimitExceeded and friends
			return fmt.Errorf("%s: %w (%v)", operation, ErrTransient, err)
		case apiErr.Code == http.StatusTooManyRequests || apiErr.Code >= 500:
			return fmt.Errorf("%s: %w (%v)", operation, ErrTransient, err)
		default:
			return fmt.Errorf("%s: %w", operation, err)
		}
	}

	// No structured API error means the request never got a response.
	return fmt.Errorf("%s: %w (%v)", operation, ErrTransient, err)
}
