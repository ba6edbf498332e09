// Package factclient keeps an ordered history of facts fetched from a remote
// endpoint and can schedule one-shot delayed fetches.
package factclient

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/princespaghetti/catfact/internal/fetcher"
)

// Source fetches a single fact from url. fetcher.Fetcher is the production
// implementation.
type Source interface {
	FetchFact(ctx context.Context, url string) (string, error)
}

// Client fetches facts and records each successful one in its history.
// It is safe for concurrent use.
type Client struct {
	source  Source
	url     string
	clock   Clock
	log     logrus.FieldLogger
	timeout time.Duration

	mu      sync.RWMutex
	history []string
}

// Option configures a Client.
type Option func(*Client)

// WithURL overrides the endpoint the client fetches from.
func WithURL(url string) Option {
	return func(c *Client) {
		c.url = url
	}
}

// WithClock overrides the clock used by Call.
func WithClock(clock Clock) Option {
	return func(c *Client) {
		c.clock = clock
	}
}

// WithLogger sets the logger used for fetch diagnostics.
func WithLogger(log logrus.FieldLogger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// WithTimeout bounds each fetch. Zero leaves the context untouched.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// New creates a Client with an empty history.
// If source is nil, a fetcher.Fetcher over http.DefaultClient is used.
func New(source Source, opts ...Option) *Client {
	if source == nil {
		source = fetcher.NewFetcher(nil)
	}
	c := &Client{
		source:  source,
		url:     fetcher.DefaultFactURL,
		clock:   systemClock{},
		log:     logrus.StandardLogger(),
		history: []string{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// URL returns the endpoint the client fetches from.
func (c *Client) URL() string {
	return c.url
}

// Add fetches one fact and appends it to the history.
//
// Failures of any kind (transport, HTTP status, payload shape) are absorbed:
// Add returns Missing and the history is left untouched. On success the
// append is visible to History before Add returns. Concurrent calls fetch
// independently and are recorded in completion order. A nil ctx is treated
// as context.Background.
func (c *Client) Add(ctx context.Context) Result {
	if ctx == nil {
		ctx = context.Background()
	}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	fact, err := c.source.FetchFact(ctx, c.url)
	if err != nil {
		c.log.WithError(err).WithField("url", c.url).Debug("fact unavailable")
		return Missing()
	}

	c.mu.Lock()
	c.history = append(c.history, fact)
	n := len(c.history)
	c.mu.Unlock()

	c.log.WithFields(logrus.Fields{
		"url":         c.url,
		"history_len": n,
	}).Debug("fact recorded")

	return Found(fact)
}

// History returns a copy of the recorded facts, oldest first.
func (c *Client) History() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]string, len(c.history))
	copy(out, c.history)
	return out
}

// Call schedules a single Add after delay and passes its Result to callback.
// It returns immediately. The callback runs exactly once, on the timer's
// goroutine, after the fetch settles; there is no way to cancel it. A
// negative delay is treated as zero and a nil callback only records the fact.
// ctx is used for the delayed fetch itself and may be nil.
func (c *Client) Call(ctx context.Context, delay time.Duration, callback func(Result)) {
	if delay < 0 {
		delay = 0
	}

	c.log.WithField("delay", delay).Debug("fetch scheduled")

	c.clock.AfterFunc(delay, func() {
		c.log.WithField("delay", delay).Debug("scheduled fetch fired")
		result := c.Add(ctx)
		if callback != nil {
			callback(result)
		}
	})
}
