package webhookclient

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/highroll-gg/bigwin-notifier/internal/config"
)

func testConfig(url string) *config.WebhookConfig {
	return &config.WebhookConfig{
		URL:                url,
		BatchSize:          5,
		PacingDelay:        time.Millisecond,
		RetryAfterFallback: 20 * time.Millisecond,
		RetryJitter:        5 * time.Millisecond,
		Timeout:            5 * time.Second,
		MaxContentLength:   1900,
	}
}

func decodeContent(t *testing.T, r *http.Request) string {
	t.Helper()
	var payload struct {
		Content string `json:"content"`
	}
	require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
	return payload.Content
}

func TestPublish(t *testing.T) {
	t.Run("empty lines is a no-op", func(t *testing.T) {
		requests := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requests++
		}))
		defer server.Close()

		posted, err := NewClient(testConfig(server.URL)).Publish(t.Context(), nil)
		require.NoError(t, err)
		assert.Zero(t, posted)
		assert.Zero(t, requests)
	})

	t.Run("joins lines and chunks by batch size", func(t *testing.T) {
		var bodies []string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			bodies = append(bodies, decodeContent(t, r))
		}))
		defer server.Close()

		lines := []string{"one", "two", "three", "four", "five", "six", "seven"}
		posted, err := NewClient(testConfig(server.URL)).Publish(t.Context(), lines)
		require.NoError(t, err)

		assert.Equal(t, 7, posted)
		require.Len(t, bodies, 2)
		assert.Equal(t, "one\ntwo\nthree\nfour\nfive", bodies[0])
		assert.Equal(t, "six\nseven", bodies[1])
	})

	t.Run("flushes early before exceeding content budget", func(t *testing.T) {
		var bodies []string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			bodies = append(bodies, decodeContent(t, r))
		}))
		defer server.Close()

		cfg := testConfig(server.URL)
		cfg.MaxContentLength = 25
		lines := []string{
			strings.Repeat("a", 10),
			strings.Repeat("b", 10),
			strings.Repeat("c", 10),
		}
		posted, err := NewClient(cfg).Publish(t.Context(), lines)
		require.NoError(t, err)

		assert.Equal(t, 3, posted)
		require.Len(t, bodies, 2)
		assert.Len(t, bodies[0], 21) // two 10-char lines plus newline
		assert.Len(t, bodies[1], 10)
		for _, body := range bodies {
			assert.LessOrEqual(t, len(body), cfg.MaxContentLength)
		}
	})

	t.Run("429 then 200 retries the same chunk once", func(t *testing.T) {
		const retryAfterSeconds = 0.05

		var bodies []string
		var requestTimes []time.Time
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestTimes = append(requestTimes, time.Now())
			bodies = append(bodies, decodeContent(t, r))
			if len(requestTimes) == 1 {
				w.WriteHeader(http.StatusTooManyRequests)
				fmt.Fprintf(w, `{"retry_after": %v}`, retryAfterSeconds)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		}))
		defer server.Close()

		posted, err := NewClient(testConfig(server.URL)).Publish(t.Context(), []string{"big win"})
		require.NoError(t, err)

		assert.Equal(t, 1, posted)
		require.Len(t, requestTimes, 2)
		assert.Equal(t, bodies[0], bodies[1], "retry must resend the same chunk")

		slept := requestTimes[1].Sub(requestTimes[0])
		assert.GreaterOrEqual(t, slept, time.Duration(retryAfterSeconds*float64(time.Second)),
			"should sleep at least the parsed retry_after")
	})

	t.Run("429 with unparseable body uses the fallback delay", func(t *testing.T) {
		var requestTimes []time.Time
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestTimes = append(requestTimes, time.Now())
			if len(requestTimes) == 1 {
				w.WriteHeader(http.StatusTooManyRequests)
				fmt.Fprint(w, "slow down")
				return
			}
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		cfg := testConfig(server.URL)
		_, err := NewClient(cfg).Publish(t.Context(), []string{"line"})
		require.NoError(t, err)

		require.Len(t, requestTimes, 2)
		assert.GreaterOrEqual(t, requestTimes[1].Sub(requestTimes[0]), cfg.RetryAfterFallback)
	})

	t.Run("persistent 429 fails after a single retry", func(t *testing.T) {
		requests := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requests++
			w.WriteHeader(http.StatusTooManyRequests)
			fmt.Fprint(w, `{"retry_after": 0.01}`)
		}))
		defer server.Close()

		_, err := NewClient(testConfig(server.URL)).Publish(t.Context(), []string{"line"})
		require.Error(t, err)
		assert.Equal(t, 2, requests)
		assert.Contains(t, err.Error(), "rate limited")
	})

	t.Run("500 fails without retry and reports status and body", func(t *testing.T) {
		requests := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requests++
			http.Error(w, "sink exploded", http.StatusInternalServerError)
		}))
		defer server.Close()

		_, err := NewClient(testConfig(server.URL)).Publish(t.Context(), []string{"line"})
		require.Error(t, err)
		assert.Equal(t, 1, requests)
		assert.Contains(t, err.Error(), "500")
		assert.Contains(t, err.Error(), "sink exploded")
	})

	t.Run("failure mid-batch keeps earlier chunks and skips the rest", func(t *testing.T) {
		requests := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requests++
			if requests == 2 {
				http.Error(w, "boom", http.StatusInternalServerError)
				return
			}
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		cfg := testConfig(server.URL)
		cfg.BatchSize = 1
		posted, err := NewClient(cfg).Publish(t.Context(), []string{"first", "second", "third"})
		require.Error(t, err)

		assert.Equal(t, 1, posted, "only the first chunk was delivered")
		assert.Equal(t, 2, requests, "third chunk must not be attempted")
	})
}

func TestParseRetryAfter(t *testing.T) {
	const fallback = time.Second

	t.Run("seconds value", func(t *testing.T) {
		assert.Equal(t, 1500*time.Millisecond, parseRetryAfter([]byte(`{"retry_after": 1.5}`), fallback))
	})
	t.Run("absent field", func(t *testing.T) {
		assert.Equal(t, fallback, parseRetryAfter([]byte(`{}`), fallback))
	})
	t.Run("garbage body", func(t *testing.T) {
		assert.Equal(t, fallback, parseRetryAfter([]byte("nope"), fallback))
	})
	t.Run("negative value", func(t *testing.T) {
		assert.Equal(t, fallback, parseRetryAfter([]byte(`{"retry_after": -3}`), fallback))
	})
}
