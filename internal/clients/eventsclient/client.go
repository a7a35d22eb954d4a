package eventsclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/avast/retry-go/v4"
	"github.com/rs/zerolog/log"

	"github.com/highroll-gg/bigwin-notifier/internal/config"
	"github.com/highroll-gg/bigwin-notifier/internal/types"
)

// Client paginates the upstream events API. Filtering on win status and the
// metric threshold happens server-side; the client only walks pages and
// tracks the maximum position observed.
type Client struct {
	httpClient *http.Client
	cfg        *config.EventsConfig
	metric     types.Metric
	threshold  uint64
}

func NewClient(cfg *config.EventsConfig, metric types.Metric, thresholdRaw uint64) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		cfg:        cfg,
		metric:     metric,
		threshold:  thresholdRaw,
	}
}

func (c *Client) FetchSince(ctx context.Context, cursor types.Cursor, hardLimit int) (*FetchResult, error) {
	if hardLimit <= 0 {
		hardLimit = c.cfg.FetchLimit
	}

	result := &FetchResult{Max: cursor}
	for offset := 0; ; offset += c.cfg.PageSize {
		pageURL := c.pageURL(cursor.Round, offset)
		result.Requested = append(result.Requested, pageURL)

		page, err := c.fetchPage(ctx, pageURL)
		if err != nil {
			// A single failed page aborts the whole fetch; partial pages
			// must never be committed to the cursor.
			return nil, fmt.Errorf("failed to fetch events page at offset %d: %w", offset, err)
		}

		for i := range page.Data {
			event := page.Data[i]
			result.Events = append(result.Events, event)
			result.Max = result.Max.Max(event.Position())
			if len(result.Events) >= hardLimit {
				log.Ctx(ctx).Warn().
					Int("hard_limit", hardLimit).
					Msg("Fetch hit the hard limit before exhausting the feed")
				return result, nil
			}
		}

		if len(page.Data) < c.cfg.PageSize {
			// Short page: feed exhausted.
			return result, nil
		}
	}
}

func (c *Client) pageURL(roundGte uint64, offset int) string {
	params := url.Values{}
	params.Set("isWin", "true")
	params.Set("roundGte", strconv.FormatUint(roundGte, 10))
	params.Set("order", "asc")
	params.Set("limit", strconv.Itoa(c.cfg.PageSize))
	params.Set("offset", strconv.Itoa(offset))
	params.Set(c.metric.QueryParam(), strconv.FormatUint(c.threshold, 10))
	return c.cfg.APIURL + "?" + params.Encode()
}

func (c *Client) fetchPage(ctx context.Context, pageURL string) (*pageResponse, error) {
	call := func() (*pageResponse, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
		if err != nil {
			return nil, retry.Unrecoverable(err)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}

		switch {
		case resp.StatusCode == http.StatusOK:
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError:
			return nil, fmt.Errorf("events API returned %d: %s", resp.StatusCode, body)
		default:
			return nil, retry.Unrecoverable(
				fmt.Errorf("events API returned %d: %s", resp.StatusCode, body),
			)
		}

		var page pageResponse
		if err := json.Unmarshal(body, &page); err != nil {
			return nil, retry.Unrecoverable(fmt.Errorf("malformed events API response: %w", err))
		}
		return &page, nil
	}

	return retry.DoWithData(call,
		retry.Context(ctx),
		retry.Attempts(c.cfg.MaxRetryTimes),
		retry.Delay(c.cfg.RetryInterval),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.Ctx(ctx).Warn().
				Uint("attempt", n+1).
				Uint("max_attempts", c.cfg.MaxRetryTimes).
				Err(err).
				Msg("Retrying events page fetch")
		}),
	)
}
