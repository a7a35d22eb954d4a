package metrics

import (
	"context"
	"time"
)

// cycleFunction alias is private and should be used only here
type cycleFunction = func(ctx context.Context) error

// RecordCycleDuration wraps a cycle function with duration/outcome metrics.
func RecordCycleDuration(f cycleFunction) cycleFunction {
	return func(ctx context.Context) error {
		startTime := time.Now()
		err := f(ctx)
		duration := time.Since(startTime).Seconds()

		outcome := Success
		if err != nil {
			outcome = Error
		}
		if cycleDurationHistogram != nil {
			cycleDurationHistogram.WithLabelValues(outcome.String()).Observe(duration)
		}

		return err
	}
}
