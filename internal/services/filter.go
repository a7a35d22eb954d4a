package services

import "github.com/highroll-gg/bigwin-notifier/internal/types"

// newerThan keeps only events strictly newer than the cursor. The fetch
// already filters on roundGte, but that is round-granular: events at the
// cursor's round with a smaller or equal intra would come back forever
// without this re-filter.
func newerThan(events []types.WinEvent, cursor types.Cursor) []types.WinEvent {
	kept := make([]types.WinEvent, 0, len(events))
	for i := range events {
		if events[i].Position().After(cursor) {
			kept = append(kept, events[i])
		}
	}
	return kept
}

// capEvents truncates to at most max events, keeping the earliest ones so
// a capped cycle resumes where it left off instead of skipping a gap.
func capEvents(events []types.WinEvent, max int) []types.WinEvent {
	if max > 0 && len(events) > max {
		return events[:max]
	}
	return events
}
