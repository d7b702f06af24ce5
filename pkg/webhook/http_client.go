package webhook

import "net/http"

// HTTPClient abstracts the HTTP transport so callers can inject
// retrying clients, test doubles or instrumented transports.
// *http.Client satisfies this interface.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}
