package webhook

import (
	"errors"
	"fmt"
)

// Sentinel errors reported before any network traffic.
var (
	// ErrNoURL indicates the client was constructed without a webhook URL.
	ErrNoURL = errors.New("webhook: no webhook URL configured")

	// ErrTooManyFiles indicates a message carries more than MaxFiles attachments.
	ErrTooManyFiles = errors.New("webhook: too many files")
)

// HTTPError is returned when the webhook endpoint answers with a
// non-2xx status. Body holds the response body verbatim, which for
// Discord includes the machine-readable rejection reason.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("webhook: server returned %d: %s", e.StatusCode, e.Body)
}
