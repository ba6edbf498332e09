package factclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catfacterrors "github.com/princespaghetti/catfact/internal/errors"
	"github.com/princespaghetti/catfact/internal/fetcher"
)

// mockSource implements Source for testing
type mockSource struct {
	mu        sync.Mutex
	urls      []string
	fetchFunc func(ctx context.Context, url string) (string, error)
}

func (m *mockSource) FetchFact(ctx context.Context, url string) (string, error) {
	m.mu.Lock()
	m.urls = append(m.urls, url)
	m.mu.Unlock()
	return m.fetchFunc(ctx, url)
}

func (m *mockSource) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.urls)
}

func returning(fact string) *mockSource {
	return &mockSource{
		fetchFunc: func(ctx context.Context, url string) (string, error) {
			return fact, nil
		},
	}
}

func failing(err error) *mockSource {
	return &mockSource{
		fetchFunc: func(ctx context.Context, url string) (string, error) {
			return "", err
		},
	}
}

// sequence returns facts in order, one per call.
func sequence(facts ...string) *mockSource {
	var mu sync.Mutex
	next := 0
	return &mockSource{
		fetchFunc: func(ctx context.Context, url string) (string, error) {
			mu.Lock()
			defer mu.Unlock()
			if next >= len(facts) {
				return "", errors.New("sequence exhausted")
			}
			fact := facts[next]
			next++
			return fact, nil
		},
	}
}

func quietLogger() *logrus.Logger {
	logger, _ := test.NewNullLogger()
	return logger
}

func TestNew_EmptyHistory(t *testing.T) {
	client := New(returning("unused"))

	assert.Empty(t, client.History())
	assert.NotNil(t, client.History())
	assert.Equal(t, fetcher.DefaultFactURL, client.URL())
}

func TestNew_NilSourceUsesFetcher(t *testing.T) {
	client := New(nil)
	assert.IsType(t, &fetcher.Fetcher{}, client.source)
}

func TestAdd_Success(t *testing.T) {
	const testMsg = "cats sleep 70% of their lives"
	source := returning(testMsg)
	client := New(source, WithLogger(quietLogger()))

	result := client.Add(context.Background())

	fact, ok := result.Value()
	require.True(t, ok)
	assert.Equal(t, testMsg, fact)
	assert.Equal(t, 1, source.Calls())
	assert.Equal(t, []string{fetcher.DefaultFactURL}, source.urls)
	assert.Equal(t, []string{testMsg}, client.History())
}

func TestAdd_CustomURL(t *testing.T) {
	source := returning("fact")
	client := New(source, WithURL("http://localhost:9999/facts"), WithLogger(quietLogger()))

	client.Add(context.Background())

	assert.Equal(t, []string{"http://localhost:9999/facts"}, source.urls)
}

func TestAdd_FailureLeavesHistoryUntouched(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{name: "network error", err: errors.New("network error")},
		{name: "bad status", err: fmt.Errorf("%w 500: Internal Server Error", catfacterrors.ErrUnexpectedStatus)},
		{name: "missing data", err: catfacterrors.ErrNoFact},
		{name: "cancelled", err: context.Canceled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := New(failing(tt.err), WithLogger(quietLogger()))

			result := client.Add(context.Background())

			assert.False(t, result.OK())
			fact, ok := result.Value()
			assert.False(t, ok)
			assert.Empty(t, fact)
			assert.Empty(t, client.History())
		})
	}
}

func TestAdd_FailureAfterSuccess(t *testing.T) {
	var fail bool
	source := &mockSource{
		fetchFunc: func(ctx context.Context, url string) (string, error) {
			if fail {
				return "", errors.New("network error")
			}
			return "fact one", nil
		},
	}
	client := New(source, WithLogger(quietLogger()))

	require.True(t, client.Add(context.Background()).OK())
	before := client.History()

	fail = true
	assert.False(t, client.Add(context.Background()).OK())
	assert.Equal(t, before, client.History())
}

func TestAdd_LogsAbsorbedFailure(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	client := New(failing(errors.New("network error")), WithLogger(logger))

	client.Add(context.Background())

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.DebugLevel, entry.Level)
	assert.Equal(t, "fact unavailable", entry.Message)
	assert.Equal(t, fetcher.DefaultFactURL, entry.Data["url"])
	assert.EqualError(t, entry.Data[logrus.ErrorKey].(error), "network error")
}

func TestAdd_LogsRecordedFact(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	client := New(returning("fact"), WithLogger(logger))

	client.Add(context.Background())
	client.Add(context.Background())

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "fact recorded", entry.Message)
	assert.Equal(t, 2, entry.Data["history_len"])
}

func TestAdd_SequentialOrdering(t *testing.T) {
	facts := []string{"fact one", "fact two", "fact three"}
	client := New(sequence(facts...), WithLogger(quietLogger()))

	for _, want := range facts {
		fact, ok := client.Add(context.Background()).Value()
		require.True(t, ok)
		assert.Equal(t, want, fact)
	}

	assert.Equal(t, facts, client.History())
	assert.Len(t, client.History(), 3)
}

func TestAdd_Concurrent(t *testing.T) {
	const n = 50
	var counter int
	var mu sync.Mutex
	source := &mockSource{
		fetchFunc: func(ctx context.Context, url string) (string, error) {
			mu.Lock()
			defer mu.Unlock()
			counter++
			if counter%5 == 0 {
				return "", errors.New("flaky")
			}
			return fmt.Sprintf("fact %d", counter), nil
		},
	}
	client := New(source, WithLogger(quietLogger()))

	var wg sync.WaitGroup
	results := make(chan Result, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- client.Add(context.Background())
		}()
	}
	wg.Wait()
	close(results)

	var found []string
	for r := range results {
		if fact, ok := r.Value(); ok {
			found = append(found, fact)
		}
	}

	assert.Equal(t, n, source.Calls())
	assert.Len(t, found, n-n/5)
	assert.ElementsMatch(t, found, client.History())
}

func TestAdd_Timeout(t *testing.T) {
	source := &mockSource{
		fetchFunc: func(ctx context.Context, url string) (string, error) {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(time.Second):
				return "too late", nil
			}
		},
	}
	client := New(source, WithTimeout(10*time.Millisecond), WithLogger(quietLogger()))

	assert.False(t, client.Add(context.Background()).OK())
	assert.Empty(t, client.History())
}

func TestAdd_NoTimeoutByDefault(t *testing.T) {
	source := &mockSource{
		fetchFunc: func(ctx context.Context, url string) (string, error) {
			_, hasDeadline := ctx.Deadline()
			assert.False(t, hasDeadline)
			return "fact", nil
		},
	}
	client := New(source, WithLogger(quietLogger()))

	assert.True(t, client.Add(context.Background()).OK())
}

func TestAdd_EmptyStringIsAFact(t *testing.T) {
	client := New(returning(""), WithLogger(quietLogger()))

	result := client.Add(context.Background())

	fact, ok := result.Value()
	assert.True(t, ok)
	assert.Empty(t, fact)
	assert.NotEqual(t, Missing(), result)
	assert.Equal(t, []string{""}, client.History())
}

func TestAdd_NilContextWithTimeout(t *testing.T) {
	source := &mockSource{
		fetchFunc: func(ctx context.Context, url string) (string, error) {
			require.NotNil(t, ctx)
			_, hasDeadline := ctx.Deadline()
			assert.True(t, hasDeadline)
			return "fact", nil
		},
	}
	client := New(source, WithTimeout(time.Second), WithLogger(quietLogger()))

	//nolint:staticcheck // a nil context must not crash the client
	result := client.Add(nil)

	assert.True(t, result.OK())
	assert.Equal(t, []string{"fact"}, client.History())
}

func TestCall_NilContextWithTimeout(t *testing.T) {
	clock := &manualClock{}
	client := New(returning("scheduled fact"), WithClock(clock), WithTimeout(time.Second), WithLogger(quietLogger()))

	var calls []Result
	//nolint:staticcheck // a nil context must not crash the timer callback
	client.Call(nil, 100*time.Millisecond, func(r Result) {
		calls = append(calls, r)
	})

	require.NotPanics(t, func() { clock.Advance(100 * time.Millisecond) })
	require.Len(t, calls, 1)
	assert.Equal(t, "scheduled fact", calls[0].String())
}

func TestHistory_ReturnsCopy(t *testing.T) {
	client := New(sequence("fact one", "fact two"), WithLogger(quietLogger()))
	client.Add(context.Background())

	snapshot := client.History()
	snapshot[0] = "tampered"

	client.Add(context.Background())

	assert.Equal(t, []string{"fact one", "fact two"}, client.History())
	assert.Equal(t, []string{"tampered"}, snapshot)
}

func TestCall_DeliversFact(t *testing.T) {
	clock := &manualClock{}
	client := New(returning("scheduled fact"), WithClock(clock), WithLogger(quietLogger()))

	var calls []Result
	client.Call(context.Background(), 1000*time.Millisecond, func(r Result) {
		calls = append(calls, r)
	})

	clock.Advance(1000 * time.Millisecond)

	require.Len(t, calls, 1)
	fact, ok := calls[0].Value()
	assert.True(t, ok)
	assert.Equal(t, "scheduled fact", fact)
	assert.Equal(t, []string{"scheduled fact"}, client.History())
}

func TestCall_DeliversMissingOnFailure(t *testing.T) {
	clock := &manualClock{}
	client := New(failing(errors.New("network error")), WithClock(clock), WithLogger(quietLogger()))

	var calls []Result
	client.Call(context.Background(), 500*time.Millisecond, func(r Result) {
		calls = append(calls, r)
	})

	clock.Advance(500 * time.Millisecond)

	require.Len(t, calls, 1)
	assert.False(t, calls[0].OK())
	assert.Empty(t, client.History())
}

func TestCall_NotBeforeDelay(t *testing.T) {
	clock := &manualClock{}
	source := returning("scheduled fact")
	client := New(source, WithClock(clock), WithLogger(quietLogger()))

	calls := 0
	client.Call(context.Background(), time.Second, func(r Result) {
		calls++
	})

	clock.Advance(999 * time.Millisecond)
	assert.Equal(t, 0, calls)
	assert.Equal(t, 0, source.Calls())
	assert.Empty(t, client.History())

	clock.Advance(time.Millisecond)
	assert.Equal(t, 1, calls)

	// A one-shot timer never fires again.
	clock.Advance(time.Hour)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, source.Calls())
	assert.Equal(t, 0, clock.Pending())
}

func TestCall_NegativeDelayIsImmediate(t *testing.T) {
	clock := &manualClock{}
	client := New(returning("now"), WithClock(clock), WithLogger(quietLogger()))

	calls := 0
	client.Call(context.Background(), -5*time.Second, func(r Result) {
		calls++
	})

	clock.Advance(0)
	assert.Equal(t, 1, calls)
}

func TestCall_NilCallbackStillRecords(t *testing.T) {
	clock := &manualClock{}
	client := New(returning("quiet fact"), WithClock(clock), WithLogger(quietLogger()))

	client.Call(context.Background(), 10*time.Millisecond, nil)
	clock.Advance(10 * time.Millisecond)

	assert.Equal(t, []string{"quiet fact"}, client.History())
}

func TestCall_MultipleScheduledInDeadlineOrder(t *testing.T) {
	clock := &manualClock{}
	client := New(sequence("first", "second"), WithClock(clock), WithLogger(quietLogger()))

	var order []string
	client.Call(context.Background(), 200*time.Millisecond, func(r Result) {
		order = append(order, "late:"+r.String())
	})
	client.Call(context.Background(), 100*time.Millisecond, func(r Result) {
		order = append(order, "early:"+r.String())
	})

	clock.Advance(time.Second)

	assert.Equal(t, []string{"early:first", "late:second"}, order)
	assert.Equal(t, []string{"first", "second"}, client.History())
}

func TestCall_SystemClock(t *testing.T) {
	client := New(returning("real timer fact"), WithLogger(quietLogger()))

	done := make(chan Result, 1)
	start := time.Now()
	client.Call(context.Background(), 20*time.Millisecond, func(r Result) {
		done <- r
	})

	select {
	case r := <-done:
		assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
		assert.Equal(t, "real timer fact", r.String())
	case <-time.After(5 * time.Second):
		t.Fatal("callback was not invoked")
	}
}

func TestResult(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		r := Found("a fact")
		fact, ok := r.Value()
		assert.True(t, ok)
		assert.True(t, r.OK())
		assert.Equal(t, "a fact", fact)
		assert.Equal(t, "a fact", r.String())

		data, err := json.Marshal(r)
		require.NoError(t, err)
		assert.JSONEq(t, `"a fact"`, string(data))
	})

	t.Run("missing", func(t *testing.T) {
		r := Missing()
		fact, ok := r.Value()
		assert.False(t, ok)
		assert.False(t, r.OK())
		assert.Empty(t, fact)
		assert.Equal(t, "<no fact>", r.String())

		data, err := json.Marshal(r)
		require.NoError(t, err)
		assert.Equal(t, "null", string(data))
	})

	t.Run("zero value is missing", func(t *testing.T) {
		var r Result
		assert.Equal(t, Missing(), r)
	})
}
