package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorAfter(t *testing.T) {
	t.Run("round takes precedence", func(t *testing.T) {
		assert.True(t, Cursor{Round: 101, Intra: 0}.After(Cursor{Round: 100, Intra: 99}))
		assert.False(t, Cursor{Round: 100, Intra: 99}.After(Cursor{Round: 101, Intra: 0}))
	})
	t.Run("intra breaks ties", func(t *testing.T) {
		assert.True(t, Cursor{Round: 100, Intra: 1}.After(Cursor{Round: 100, Intra: 0}))
		assert.False(t, Cursor{Round: 100, Intra: 0}.After(Cursor{Round: 100, Intra: 1}))
	})
	t.Run("equal cursors are not after each other", func(t *testing.T) {
		c := Cursor{Round: 100, Intra: 5}
		assert.False(t, c.After(c))
	})
}

func TestCursorMax(t *testing.T) {
	older := Cursor{Round: 100, Intra: 3}
	newer := Cursor{Round: 100, Intra: 7}

	assert.Equal(t, newer, older.Max(newer))
	assert.Equal(t, newer, newer.Max(older))
	assert.Equal(t, older, older.Max(older))
}

func TestParseMetric(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		for _, s := range []string{"payout", "net_result"} {
			m, err := ParseMetric(s)
			require.NoError(t, err)
			assert.Equal(t, s, m.String())
		}
	})
	t.Run("unknown", func(t *testing.T) {
		_, err := ParseMetric("jackpot")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown metric")
	})
}

func TestWinEventMetricValue(t *testing.T) {
	ev := WinEvent{Payout: 5_000_000, NetResult: -1_000_000}

	assert.Equal(t, uint64(5_000_000), ev.MetricValue(MetricPayout))
	// losing net result clamps instead of wrapping around
	assert.Zero(t, ev.MetricValue(MetricNetResult))

	ev.NetResult = 2_500_000
	assert.Equal(t, uint64(2_500_000), ev.MetricValue(MetricNetResult))
}
