package middleware

import (
	"context"
	"errors"

	"chalet/internal/app/commands"
	"chalet/internal/app/outbox"
)

// OutboxFlush publishes the events a command staged once it succeeded. When
// the command fails, staged events are discarded if the outbox supports it.
func OutboxFlush(box outbox.Outbox) CommandMiddleware {
	mustHave(box != nil, errors.New("middleware: outbox required"))
	return func(next commands.Bus) commands.Bus {
		return commandFunc(func(ctx context.Context, cmd commands.Command) (any, error) {
			res, err := next.Dispatch(ctx, cmd)
			if err != nil {
				if d, ok := box.(outbox.Discarder); ok {
					err = errors.Join(err, d.Discard(ctx))
				}
				return nil, err
			}
			if err := box.Flush(ctx); err != nil {
				return nil, err
			}
			return res, nil
		})
	}
}
