package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/highroll-gg/bigwin-notifier/internal/clients/eventsclient"
	"github.com/highroll-gg/bigwin-notifier/internal/config"
	"github.com/highroll-gg/bigwin-notifier/internal/services"
	"github.com/highroll-gg/bigwin-notifier/internal/types"
)

type stubStore struct {
	cursor  types.Cursor
	pingErr error
}

func (s *stubStore) Ping(ctx context.Context) error { return s.pingErr }

func (s *stubStore) GetCheckpoint(ctx context.Context) (types.Cursor, error) {
	return s.cursor, nil
}

func (s *stubStore) AdvanceCheckpoint(ctx context.Context, from, to types.Cursor) (bool, error) {
	s.cursor = to
	return true, nil
}

type stubFetcher struct {
	result *eventsclient.FetchResult
	err    error
}

func (f *stubFetcher) FetchSince(ctx context.Context, cursor types.Cursor, hardLimit int) (*eventsclient.FetchResult, error) {
	return f.result, f.err
}

type stubWebhook struct{}

func (w *stubWebhook) Publish(ctx context.Context, lines []string) (int, error) {
	return len(lines), nil
}

func testServer(store *stubStore, fetcher *stubFetcher) *Server {
	cfg := &config.Config{
		Notifier: config.NotifierConfig{
			Metric:         "payout",
			ThresholdRaw:   1_000_000,
			DisplayDivisor: 1_000_000,
			Unit:           "CHIPS",
			MaxPostsPerRun: 25,
		},
		Events: config.EventsConfig{FetchLimit: 100},
	}
	service := services.NewService(cfg, store, fetcher, &stubWebhook{}, nil)
	return New(&config.ServerConfig{Host: "127.0.0.1", Port: 8080}, service, store)
}

func TestHandleRun(t *testing.T) {
	cursor := types.Cursor{Round: 10, Intra: 0}
	store := &stubStore{cursor: cursor}
	fetcher := &stubFetcher{result: &eventsclient.FetchResult{Max: cursor}}

	rec := httptest.NewRecorder()
	testServer(store, fetcher).handleRun(rec, httptest.NewRequest(http.MethodGet, "/run", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var result services.CycleResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.True(t, result.OK)
	assert.Equal(t, cursor, result.CursorBefore)
}

func TestHandleRunFailureReturnsPartialTrace(t *testing.T) {
	store := &stubStore{}
	fetcher := &stubFetcher{err: errors.New("events api: status 502")}

	rec := httptest.NewRecorder()
	testServer(store, fetcher).handleRun(rec, httptest.NewRequest(http.MethodGet, "/run", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var result services.CycleResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.False(t, result.OK)
	assert.Contains(t, result.Error, "502")
	assert.NotEmpty(t, result.Steps)
}

func TestHandleHealth(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		rec := httptest.NewRecorder()
		testServer(&stubStore{}, &stubFetcher{}).handleHealth(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("store unreachable", func(t *testing.T) {
		store := &stubStore{pingErr: errors.New("connection refused")}
		rec := httptest.NewRecorder()
		testServer(store, &stubFetcher{}).handleHealth(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}
