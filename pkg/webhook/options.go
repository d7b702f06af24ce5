package webhook

import (
	"net/http"
	"time"
)

// DefaultTimeout bounds one webhook execution, connection setup through
// response body.
const DefaultTimeout = 30 * time.Second

// Option configures a Client.
type Option func(*options)

type options struct {
	httpClient HTTPClient
	timeout    time.Duration
}

func defaultOptions() options {
	return options{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		timeout:    DefaultTimeout,
	}
}

// WithHTTPClient sets a custom HTTP client. Useful for tests and for
// callers with proxy or TLS requirements.
func WithHTTPClient(client HTTPClient) Option {
	return func(o *options) {
		if client != nil {
			o.httpClient = client
		}
	}
}

// WithTimeout sets the per-execution timeout. Zero disables the
// client-side deadline; the underlying transport's limits still apply.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}
