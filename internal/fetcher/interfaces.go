package fetcher

import "net/http"

// HTTPClient is the transport used to reach the fact endpoint.
// Tests substitute a mock; production uses http.DefaultClient.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}
