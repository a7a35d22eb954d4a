package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"
)

const (
	defaultEventsPageSize      = 100
	defaultEventsFetchLimit    = 500
	defaultEventsTimeout       = 6 * time.Second
	defaultEventsMaxRetryTimes = 3
	defaultEventsRetryInterval = 500 * time.Millisecond
)

// EventsConfig describes the upstream events API the notifier paginates.
type EventsConfig struct {
	// APIURL is the full URL of the events endpoint, e.g.
	// https://api.example.com/v1/events.
	APIURL        string        `mapstructure:"api-url"`
	PageSize      int           `mapstructure:"page-size"`
	FetchLimit    int           `mapstructure:"fetch-limit"`
	Timeout       time.Duration `mapstructure:"timeout"`
	MaxRetryTimes uint          `mapstructure:"max-retry-times"`
	RetryInterval time.Duration `mapstructure:"retry-interval"`
}

func (cfg *EventsConfig) Validate() error {
	if cfg.APIURL == "" {
		return errors.New("events api-url is required")
	}
	parsed, err := url.Parse(cfg.APIURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("events api-url %q is not a valid URL", cfg.APIURL)
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = defaultEventsPageSize
	}
	if cfg.PageSize > defaultEventsPageSize {
		return fmt.Errorf("events page-size must not exceed %d", defaultEventsPageSize)
	}
	if cfg.FetchLimit <= 0 {
		cfg.FetchLimit = defaultEventsFetchLimit
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultEventsTimeout
	}
	if cfg.MaxRetryTimes == 0 {
		cfg.MaxRetryTimes = defaultEventsMaxRetryTimes
	}
	if cfg.RetryInterval <= 0 {
		cfg.RetryInterval = defaultEventsRetryInterval
	}
	return nil
}
