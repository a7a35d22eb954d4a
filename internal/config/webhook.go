package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"
)

const (
	defaultWebhookBatchSize          = 5
	defaultWebhookPacingDelay        = 250 * time.Millisecond
	defaultWebhookRetryAfterFallback = 1 * time.Second
	defaultWebhookRetryJitter        = 50 * time.Millisecond
	defaultWebhookTimeout            = 10 * time.Second

	// Chat sinks cap message bodies around 2000 characters; leave headroom.
	defaultWebhookMaxContentLength = 1900
)

// WebhookConfig describes the chat webhook notifications are delivered to.
type WebhookConfig struct {
	URL                string        `mapstructure:"url"`
	BatchSize          int           `mapstructure:"batch-size"`
	PacingDelay        time.Duration `mapstructure:"pacing-delay"`
	RetryAfterFallback time.Duration `mapstructure:"retry-after-fallback"`
	RetryJitter        time.Duration `mapstructure:"retry-jitter"`
	Timeout            time.Duration `mapstructure:"timeout"`
	MaxContentLength   int           `mapstructure:"max-content-length"`
}

func (cfg *WebhookConfig) Validate() error {
	if cfg.URL == "" {
		return errors.New("webhook url is required")
	}
	parsed, err := url.Parse(cfg.URL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("webhook url %q is not a valid URL", cfg.URL)
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = defaultWebhookBatchSize
	}
	if cfg.PacingDelay <= 0 {
		cfg.PacingDelay = defaultWebhookPacingDelay
	}
	if cfg.RetryAfterFallback <= 0 {
		cfg.RetryAfterFallback = defaultWebhookRetryAfterFallback
	}
	if cfg.RetryJitter <= 0 {
		cfg.RetryJitter = defaultWebhookRetryJitter
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultWebhookTimeout
	}
	if cfg.MaxContentLength <= 0 {
		cfg.MaxContentLength = defaultWebhookMaxContentLength
	}
	return nil
}
