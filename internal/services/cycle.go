package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/highroll-gg/bigwin-notifier/internal/observability/metrics"
	"github.com/highroll-gg/bigwin-notifier/internal/types"
)

const (
	StepReadCursor   = "ReadCursor"
	StepFetch        = "Fetch"
	StepFilterAndCap = "FilterAndCap"
	StepPublish      = "Publish"
	StepAdvance      = "AdvanceCursor"

	stepOutcomeOK      = "ok"
	stepOutcomeFailed  = "failed"
	stepOutcomeSkipped = "skipped"

	// how many events/lines the trace previews at most
	tracePreviewLimit = 5
)

type CycleStep struct {
	Name    string `json:"name"`
	Outcome string `json:"outcome"`
	Detail  string `json:"detail,omitempty"`
}

// APIResponseSummary is a compact view of what the fetch returned.
type APIResponseSummary struct {
	Count  int              `json:"count"`
	Sample []types.WinEvent `json:"sample,omitempty"`
}

// CycleConfig echoes the effective config into the trace, with the
// webhook URL redacted.
type CycleConfig struct {
	APIURL         string `json:"apiUrl"`
	Metric         string `json:"metric"`
	ThresholdRaw   uint64 `json:"thresholdRaw"`
	DisplayDivisor uint64 `json:"displayDivisor"`
	Unit           string `json:"unit"`
	MaxPostsPerRun int    `json:"maxPostsPerRun"`
	BatchSize      int    `json:"batchSize"`
	DryRun         bool   `json:"dryRun"`
	WebhookURL     string `json:"webhookUrl"`
}

// CycleResult is the structured debug trace of one poll cycle. It is
// write-only bookkeeping: every step appends its outcome, and the trigger
// endpoint returns the whole thing as JSON.
type CycleResult struct {
	OK               bool                `json:"ok"`
	Steps            []CycleStep         `json:"steps"`
	Config           CycleConfig         `json:"config"`
	CursorBefore     types.Cursor        `json:"cursorBefore"`
	Requested        []string            `json:"requested,omitempty"`
	APIResponse      *APIResponseSummary `json:"apiResponse,omitempty"`
	NewerCount       int                 `json:"newerCount"`
	ToPostCount      int                 `json:"toPostCount"`
	LinesPreview     []string            `json:"linesPreview,omitempty"`
	DiscordPosted    int                 `json:"discordPosted"`
	CursorAdvancedTo *types.Cursor       `json:"cursorAdvancedTo"`
	Error            string              `json:"error,omitempty"`
}

func (r *CycleResult) stepOK(name, detail string) {
	r.Steps = append(r.Steps, CycleStep{Name: name, Outcome: stepOutcomeOK, Detail: detail})
}

func (r *CycleResult) stepSkipped(name, detail string) {
	r.Steps = append(r.Steps, CycleStep{Name: name, Outcome: stepOutcomeSkipped, Detail: detail})
}

func (r *CycleResult) fail(name string, err error) error {
	r.Steps = append(r.Steps, CycleStep{Name: name, Outcome: stepOutcomeFailed, Detail: err.Error()})
	r.Error = err.Error()
	return err
}

// RunCycle drives one end-to-end poll cycle:
// read cursor → fetch → filter+cap → format → publish → advance cursor.
// Any failure terminates the cycle with the partial trace and leaves the
// cursor untouched. The returned CycleResult is non-nil in both cases.
func (s *Service) RunCycle(ctx context.Context) (*CycleResult, error) {
	logger := log.Ctx(ctx)

	result := &CycleResult{
		Config: CycleConfig{
			APIURL:         s.cfg.Events.APIURL,
			Metric:         s.cfg.Notifier.Metric,
			ThresholdRaw:   s.cfg.Notifier.ThresholdRaw,
			DisplayDivisor: s.cfg.Notifier.DisplayDivisor,
			Unit:           s.cfg.Notifier.Unit,
			MaxPostsPerRun: s.cfg.Notifier.MaxPostsPerRun,
			BatchSize:      s.cfg.Webhook.BatchSize,
			DryRun:         s.cfg.Notifier.DryRun,
			WebhookURL:     "[redacted]",
		},
	}

	// ReadCursor
	cursor, err := s.db.GetCheckpoint(ctx)
	if err != nil {
		// A store failure must never read as "cursor absent": a zero cursor
		// would re-notify the entire event history.
		return result, result.fail(StepReadCursor, fmt.Errorf("failed to read cursor checkpoint: %w", err))
	}
	result.CursorBefore = cursor
	result.stepOK(StepReadCursor, cursor.String())

	// Fetch
	fetch, err := s.events.FetchSince(ctx, cursor, s.cfg.Events.FetchLimit)
	if err != nil {
		return result, result.fail(StepFetch, err)
	}
	result.Requested = fetch.Requested
	result.APIResponse = &APIResponseSummary{
		Count:  len(fetch.Events),
		Sample: fetch.Events[:min(len(fetch.Events), tracePreviewLimit)],
	}
	metrics.RecordEventsFetched(len(fetch.Events))
	result.stepOK(StepFetch, fmt.Sprintf("%d events, max %s", len(fetch.Events), fetch.Max))

	// FilterAndCap
	newer := newerThan(fetch.Events, cursor)
	result.NewerCount = len(newer)
	toPost := capEvents(newer, s.cfg.Notifier.MaxPostsPerRun)
	result.ToPostCount = len(toPost)

	lines := make([]string, len(toPost))
	for i := range toPost {
		lines[i] = formatWinLine(&toPost[i], &s.cfg.Notifier)
	}
	result.LinesPreview = lines[:min(len(lines), tracePreviewLimit)]
	result.stepOK(StepFilterAndCap, fmt.Sprintf("%d newer, %d to post", len(newer), len(toPost)))

	// When the cap truncated the batch, only advance to the last event we
	// actually posted; the next cycle picks up the remainder. Otherwise
	// advance to the maximum position the fetch observed.
	advanceTo := fetch.Max
	if len(toPost) < len(newer) {
		advanceTo = toPost[len(toPost)-1].Position()
	}

	// Publish
	if s.cfg.Notifier.DryRun {
		result.stepSkipped(StepPublish, "dry run")
	} else {
		posted, err := s.webhook.Publish(ctx, lines)
		result.DiscordPosted = posted
		if err != nil {
			return result, result.fail(StepPublish, err)
		}
		metrics.RecordLinesPosted(posted)
		result.stepOK(StepPublish, fmt.Sprintf("%d lines posted", posted))
		s.announceWins(ctx, toPost)
	}

	// AdvanceCursor
	if !advanceTo.After(cursor) {
		result.stepSkipped(StepAdvance, "no newer position observed")
		result.OK = true
		return result, nil
	}
	advanced, err := s.db.AdvanceCheckpoint(ctx, cursor, advanceTo)
	if err != nil {
		return result, result.fail(StepAdvance, fmt.Errorf("failed to advance cursor checkpoint: %w", err))
	}
	if !advanced {
		// Another invocation advanced the cursor while this one ran. Fail
		// the cycle rather than clobber its position.
		return result, result.fail(StepAdvance,
			fmt.Errorf("cursor moved concurrently, expected %s", cursor))
	}
	result.CursorAdvancedTo = &advanceTo
	metrics.RecordCursorRound(advanceTo.Round)
	result.stepOK(StepAdvance, advanceTo.String())

	logger.Info().
		Stringer("cursor_before", cursor).
		Stringer("cursor_after", advanceTo).
		Int("posted", result.DiscordPosted).
		Msg("Poll cycle completed")

	result.OK = true
	return result, nil
}

// announceWins fans published wins out to the queue, best effort: a queue
// hiccup must not fail a cycle whose notifications already went out.
func (s *Service) announceWins(ctx context.Context, events []types.WinEvent) {
	for i := range events {
		if err := s.queueManager.PushWinEvent(ctx, &events[i]); err != nil {
			metrics.RecordQueueSendError()
			log.Ctx(ctx).Error().
				Err(err).
				Stringer("position", events[i].Position()).
				Msg("Failed to announce win to queue")
		}
	}
}
