package obs

import (
	"context"
	"time"

	"depot-router/internal/platform/logger"
)

type ctxKey string

const RunIDKey ctxKey = "run_id"

// WithRunID tags ctx with the id of the current dispatch run.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, RunIDKey, runID)
}

// RunID returns the run id stored in ctx, or "".
func RunID(ctx context.Context) string {
	id, _ := ctx.Value(RunIDKey).(string)
	return id
}

// Time logs how long an operation took. Use as
//
//	defer obs.Time(ctx, log, "depot.Preload")(&err)
func Time(ctx context.Context, log logger.Logger, name string) func(errp *error) {
	start := time.Now()
	runID := RunID(ctx)

	return func(errp *error) {
		dur := time.Since(start)

		if errp != nil && *errp != nil {
			log.Errorf("run_id=%s op=%s dur=%s err=%v", runID, name, dur, *errp)
			return
		}
		log.Debugf("run_id=%s op=%s dur=%s", runID, name, dur)
	}
}
