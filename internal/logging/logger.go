package logging

import (
	"context"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type contextKey string

const (
	runIDKey  contextKey = "run_id"
	loggerKey contextKey = "logger"
)

// InitLogger initializes the global logger used by the pipeline and its CLI consumer.
func InitLogger() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
}

// WithRun returns a context carrying a logger tagged with a fresh run ID, used to
// correlate the structured log lines emitted by a single Generate call.
func WithRun(ctx context.Context) (context.Context, string) {
	runID := uuid.New().String()
	logger := log.With().Str("run_id", runID).Logger()
	ctx = context.WithValue(ctx, runIDKey, runID)
	ctx = context.WithValue(ctx, loggerKey, logger)
	return ctx, runID
}

// FromContext returns the logger from the context, or the global logger if not found.
func FromContext(ctx context.Context) *zerolog.Logger {
	if logger, ok := ctx.Value(loggerKey).(zerolog.Logger); ok {
		return &logger
	}
	return &log.Logger
}

// RunID returns the run ID from the context, if any.
func RunID(ctx context.Context) string {
	if id, ok := ctx.Value(runIDKey).(string); ok {
		return id
	}
	return ""
}

// Phase logs the start and completion of a pipeline phase, returning a function
// to call on completion (typically deferred).
func Phase(ctx context.Context, name string) func() {
	logger := FromContext(ctx)
	start := time.Now()
	logger.Debug().Str("phase", name).Msg("phase started")
	return func() {
		logger.Info().
			Str("phase", name).
			Dur("duration_ms", time.Since(start)).
			Msg("phase completed")
	}
}
