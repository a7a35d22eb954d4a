package db

import (
	"context"

	"github.com/highroll-gg/bigwin-notifier/internal/types"
)

// DbInterface is the durable cursor checkpoint store. The checkpoint marks
// the last event fully processed; losing it would re-notify the entire
// event history, so connectivity failures must surface as errors and never
// be defaulted to a zero cursor.
type DbInterface interface {
	Ping(ctx context.Context) error

	// GetCheckpoint returns the stored cursor. A checkpoint that has never
	// been written yields the zero cursor with no error.
	GetCheckpoint(ctx context.Context) (types.Cursor, error)

	// AdvanceCheckpoint moves the cursor from "from" to "to" only if the
	// stored value still equals "from" (compare-and-swap). It returns false
	// with no error when a concurrent writer advanced the cursor first.
	AdvanceCheckpoint(ctx context.Context, from, to types.Cursor) (bool, error)
}
