package types

import "fmt"

// Cursor marks the last event fully processed, as a (round, intra) pair.
// The zero value means nothing has been processed yet.
type Cursor struct {
	Round uint64 `json:"round"`
	Intra uint64 `json:"intra"`
}

// After reports whether c is strictly newer than other under
// lexicographic (round, intra) order.
func (c Cursor) After(other Cursor) bool {
	if c.Round != other.Round {
		return c.Round > other.Round
	}
	return c.Intra > other.Intra
}

// Max returns the newer of c and other.
func (c Cursor) Max(other Cursor) Cursor {
	if other.After(c) {
		return other
	}
	return c
}

func (c Cursor) String() string {
	return fmt.Sprintf("(%d,%d)", c.Round, c.Intra)
}
