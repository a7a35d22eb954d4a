package webhookclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/highroll-gg/bigwin-notifier/internal/config"
	"github.com/highroll-gg/bigwin-notifier/internal/observability/metrics"
)

// RateLimitError is a 429 from the sink with the retry delay it asked for.
type RateLimitError struct {
	RetryAfter time.Duration
	Body       string
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("webhook rate limited, retry after %s: %s", e.RetryAfter, e.Body)
}

// Client delivers messages to a chat webhook. Chunks are sent one at a
// time behind a pacing limiter so the sink's rate limit is respected
// deterministically.
type Client struct {
	httpClient *http.Client
	cfg        *config.WebhookConfig
	limiter    *rate.Limiter
}

func NewClient(cfg *config.WebhookConfig) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		cfg:        cfg,
		limiter:    rate.NewLimiter(rate.Every(cfg.PacingDelay), 1),
	}
}

type chunk struct {
	content string
	lines   int
}

func (c *Client) Publish(ctx context.Context, lines []string) (int, error) {
	if len(lines) == 0 {
		return 0, nil
	}

	posted := 0
	for _, ch := range c.chunkLines(lines) {
		if err := c.limiter.Wait(ctx); err != nil {
			return posted, err
		}
		if err := c.sendChunk(ctx, ch.content); err != nil {
			// Earlier chunks are already delivered and stand; the caller
			// must not advance the cursor past them.
			return posted, fmt.Errorf("failed to deliver webhook chunk (%d lines already posted): %w", posted, err)
		}
		posted += ch.lines
		log.Ctx(ctx).Debug().
			Int("lines", ch.lines).
			Int("posted_total", posted).
			Msg("Delivered webhook chunk")
	}
	return posted, nil
}

// chunkLines groups consecutive lines into chunks of at most batch-size
// lines, flushing early when the joined body would blow the content budget.
func (c *Client) chunkLines(lines []string) []chunk {
	var (
		chunks  []chunk
		current []string
		length  int
	)
	flush := func() {
		if len(current) == 0 {
			return
		}
		chunks = append(chunks, chunk{content: strings.Join(current, "\n"), lines: len(current)})
		current = nil
		length = 0
	}

	for _, line := range lines {
		joined := length + len(line)
		if len(current) > 0 {
			joined++ // newline separator
		}
		if len(current) >= c.cfg.BatchSize || (len(current) > 0 && joined > c.cfg.MaxContentLength) {
			flush()
			joined = len(line)
		}
		current = append(current, line)
		length = joined
	}
	flush()
	return chunks
}

func (c *Client) sendChunk(ctx context.Context, content string) error {
	call := func() error {
		start := time.Now()
		err := c.post(ctx, content)
		outcome := metrics.Success
		if err != nil {
			outcome = metrics.Error
		}
		metrics.RecordWebhookLatency(time.Since(start), outcome)
		return err
	}

	return retry.Do(call,
		retry.Context(ctx),
		retry.Attempts(2), // the original send plus exactly one retry
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			var rl *RateLimitError
			return errors.As(err, &rl)
		}),
		retry.DelayType(func(n uint, err error, _ *retry.Config) time.Duration {
			var rl *RateLimitError
			if errors.As(err, &rl) {
				return rl.RetryAfter + c.cfg.RetryJitter
			}
			return c.cfg.RetryAfterFallback
		}),
		retry.OnRetry(func(n uint, err error) {
			metrics.RecordRateLimitRetry()
			log.Ctx(ctx).Warn().
				Err(err).
				Msg("Webhook rate limited, retrying chunk once")
		}),
	)
}

func (c *Client) post(ctx context.Context, content string) error {
	payload, err := json.Marshal(map[string]string{"content": content})
	if err != nil {
		return retry.Unrecoverable(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL, bytes.NewReader(payload))
	if err != nil {
		return retry.Unrecoverable(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusTooManyRequests:
		return &RateLimitError{
			RetryAfter: parseRetryAfter(body, c.cfg.RetryAfterFallback),
			Body:       string(body),
		}
	default:
		return fmt.Errorf("webhook returned %d: %s", resp.StatusCode, body)
	}
}

// parseRetryAfter reads retry_after seconds from a 429 body, falling back
// when the field is absent or unparseable.
func parseRetryAfter(body []byte, fallback time.Duration) time.Duration {
	var payload struct {
		RetryAfter float64 `json:"retry_after"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || payload.RetryAfter <= 0 {
		return fallback
	}
	return time.Duration(payload.RetryAfter * float64(time.Second))
}
