package eventsclient

import "github.com/highroll-gg/bigwin-notifier/internal/types"

// FetchResult is the accumulated outcome of one paginated fetch.
type FetchResult struct {
	Events []types.WinEvent

	// Max is the highest (round, intra) observed across all pages, seeded
	// from the input cursor so an empty feed leaves it unchanged.
	Max types.Cursor

	// Requested lists every page URL issued, for the cycle trace.
	Requested []string
}

// pageResponse is the upstream events API page envelope.
type pageResponse struct {
	Data   []types.WinEvent `json:"data"`
	Count  int              `json:"count"`
	Params map[string]any   `json:"params"`
}
