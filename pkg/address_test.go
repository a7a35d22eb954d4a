package pkg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShortenAddress(t *testing.T) {
	t.Run("long address", func(t *testing.T) {
		const addr = "WINNER7XKQZJVXADDRESSR4FYRL3NWEXAMPLE5ABCD"
		assert.Equal(t, "WINNER…ABCD", ShortenAddress(addr))
	})
	t.Run("short address unmodified", func(t *testing.T) {
		assert.Equal(t, "short", ShortenAddress("short"))
	})
	t.Run("boundary of 10 characters", func(t *testing.T) {
		assert.Equal(t, "0123456789", ShortenAddress("0123456789"))
		assert.Equal(t, "012345…789A", ShortenAddress("0123456789A"))
	})
	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, ShortenAddress(""))
	})
}
