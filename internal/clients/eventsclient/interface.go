package eventsclient

import (
	"context"

	"github.com/highroll-gg/bigwin-notifier/internal/types"
)

type EventsInterface interface {
	// FetchSince paginates the events API from the cursor's round upward,
	// accumulating qualifying wins until the feed is exhausted or hardLimit
	// events have been collected.
	FetchSince(ctx context.Context, cursor types.Cursor, hardLimit int) (*FetchResult, error)
}
