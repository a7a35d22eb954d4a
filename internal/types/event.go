package types

import (
	"fmt"
	"time"
)

// Metric selects which event field is compared against the big-win threshold.
type Metric string

const (
	MetricPayout    Metric = "payout"
	MetricNetResult Metric = "net_result"
)

func (m Metric) String() string {
	return string(m)
}

// QueryParam returns the upstream API filter parameter for the metric.
func (m Metric) QueryParam() string {
	if m == MetricNetResult {
		return "netResultGte"
	}
	return "payoutGte"
}

func ParseMetric(s string) (Metric, error) {
	switch Metric(s) {
	case MetricPayout, MetricNetResult:
		return Metric(s), nil
	}
	return "", fmt.Errorf("unknown metric %q, should be one of {%s, %s}", s, MetricPayout, MetricNetResult)
}

// WinEvent is a single win emitted by the gaming platform's events API.
// Identity is the (round, intra) pair; events are immutable once fetched.
type WinEvent struct {
	Round     uint64    `json:"round"`
	Intra     uint64    `json:"intra"`
	Who       string    `json:"who"`
	Payout    uint64    `json:"payout"`
	NetResult int64     `json:"netResult"`
	IsWin     bool      `json:"isWin"`
	ReplayURL string    `json:"replayUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Position returns the event's (round, intra) identity as a cursor value.
func (e *WinEvent) Position() Cursor {
	return Cursor{Round: e.Round, Intra: e.Intra}
}

// MetricValue returns the raw value of the selected metric. Negative net
// results clamp to zero so display math never underflows.
func (e *WinEvent) MetricValue(m Metric) uint64 {
	if m == MetricNetResult {
		if e.NetResult < 0 {
			return 0
		}
		return uint64(e.NetResult)
	}
	return e.Payout
}
