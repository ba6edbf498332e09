// Package fetcher retrieves random facts from a JSON HTTP endpoint.
package fetcher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	catfacterrors "github.com/princespaghetti/catfact/internal/errors"
)

const (
	// DefaultFactURL is the default endpoint serving random cat facts.
	DefaultFactURL = "https://meowfacts.herokuapp.com/"

	// UserAgent identifies catfact to the endpoint.
	UserAgent = "catfact/1.0 (random fact client)"

	// maxBodySize caps how much of a response body is decoded.
	maxBodySize = 1 << 20
)

// factResponse is the wire shape of the endpoint: {"data": ["<fact>", ...]}.
// Only the first element is decoded; the rest may hold anything.
type factResponse struct {
	Data []json.RawMessage `json:"data"`
}

// Fetcher performs GET requests against a fact endpoint.
type Fetcher struct {
	client HTTPClient
}

// NewFetcher creates a new Fetcher with the given HTTP client.
// If client is nil, uses http.DefaultClient.
func NewFetcher(client HTTPClient) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &Fetcher{
		client: client,
	}
}

// FetchFact downloads one fact from url and returns the first element of the
// response's data array. A missing or empty array, or a first element that is
// not a string, is reported as ErrNoFact. An empty string is a valid fact.
func (f *Fetcher) FetchFact(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request fact: %w", err)
	}
	defer func() { _ = resp.Body.Close() }() // Ignore close error - body already consumed

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w %d: %s", catfacterrors.ErrUnexpectedStatus, resp.StatusCode, resp.Status)
	}

	var payload factResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodySize)).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if len(payload.Data) == 0 || bytes.Equal(bytes.TrimSpace(payload.Data[0]), []byte("null")) {
		return "", catfacterrors.ErrNoFact
	}

	var fact string
	if err := json.Unmarshal(payload.Data[0], &fact); err != nil {
		return "", fmt.Errorf("%w: first element is not a string", catfacterrors.ErrNoFact)
	}

	return fact, nil
}
