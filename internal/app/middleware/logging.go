package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"chalet/internal/app/commands"
	"chalet/internal/app/queries"
)

var errNoLogger = errors.New("middleware: logger required")

// Logging records every dispatched command with its outcome.
func Logging(logger *slog.Logger) CommandMiddleware {
	mustHave(logger != nil, errNoLogger)
	return func(next commands.Bus) commands.Bus {
		return commandFunc(func(ctx context.Context, cmd commands.Command) (any, error) {
			start := time.Now()
			res, err := next.Dispatch(ctx, cmd)
			logOutcome(ctx, logger, "command", cmd.Key(), start, err)
			return res, err
		})
	}
}

func QueryLogging(logger *slog.Logger) QueryMiddleware {
	mustHave(logger != nil, errNoLogger)
	return func(next queries.Bus) queries.Bus {
		return queryFunc(func(ctx context.Context, q queries.Query) (any, error) {
			start := time.Now()
			res, err := next.Ask(ctx, q)
			logOutcome(ctx, logger, "query", q.Key(), start, err)
			return res, err
		})
	}
}

func logOutcome(ctx context.Context, logger *slog.Logger, kind, key string, start time.Time, err error) {
	if err != nil {
		logger.WarnContext(ctx, kind+" failed", kind, key, "duration", time.Since(start), "error", err)
		return
	}
	logger.DebugContext(ctx, kind+" handled", kind, key, "duration", time.Since(start))
}
