package config

import (
	"errors"
	"time"

	"github.com/highroll-gg/bigwin-notifier/internal/types"
)

const defaultMaxPostsPerRun = 25

// NotifierConfig holds the big-win qualification and display parameters.
type NotifierConfig struct {
	// Metric is the compared event field: "payout" or "net_result".
	Metric string `mapstructure:"metric"`
	// ThresholdRaw is the minimum raw metric value for a win to qualify.
	ThresholdRaw uint64 `mapstructure:"threshold-raw"`
	// DisplayDivisor converts raw units into the display unit (e.g. 1e6
	// for micro-denominated payouts).
	DisplayDivisor uint64 `mapstructure:"display-divisor"`
	Unit           string `mapstructure:"unit"`
	MaxPostsPerRun int    `mapstructure:"max-posts-per-run"`
	DryRun         bool   `mapstructure:"dry-run"`
	// PollingInterval > 0 makes start-server run cycles on a ticker in
	// addition to the HTTP trigger.
	PollingInterval time.Duration `mapstructure:"polling-interval"`
}

func (cfg *NotifierConfig) Validate() error {
	if _, err := types.ParseMetric(cfg.Metric); err != nil {
		return err
	}
	if cfg.ThresholdRaw == 0 {
		return errors.New("notifier threshold-raw must be positive")
	}
	if cfg.DisplayDivisor == 0 {
		return errors.New("notifier display-divisor must be positive")
	}
	if cfg.Unit == "" {
		return errors.New("notifier unit is required")
	}
	if cfg.MaxPostsPerRun <= 0 {
		cfg.MaxPostsPerRun = defaultMaxPostsPerRun
	}
	return nil
}

// MetricSelector returns the parsed metric. Validate must have succeeded.
func (cfg *NotifierConfig) MetricSelector() types.Metric {
	m, _ := types.ParseMetric(cfg.Metric)
	return m
}
