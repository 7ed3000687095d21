package middleware

import (
	"context"

	"chalet/internal/app/commands"
	"chalet/internal/app/queries"
)

// Middleware decorates a bus of type B.
type Middleware[B any] func(next B) B

type (
	CommandMiddleware = Middleware[commands.Bus]
	QueryMiddleware   = Middleware[queries.Bus]
)

// Chain wraps base so that mws[0] sees a message first.
func Chain[B any](base B, mws ...Middleware[B]) B {
	wrapped := base
	for i := len(mws) - 1; i >= 0; i-- {
		if mws[i] != nil {
			wrapped = mws[i](wrapped)
		}
	}
	return wrapped
}

func ChainCommands(base commands.Bus, mws ...CommandMiddleware) commands.Bus {
	return Chain(base, mws...)
}

func ChainQueries(base queries.Bus, mws ...QueryMiddleware) queries.Bus {
	return Chain(base, mws...)
}

type commandFunc func(ctx context.Context, cmd commands.Command) (any, error)

func (f commandFunc) Dispatch(ctx context.Context, cmd commands.Command) (any, error) {
	return f(ctx, cmd)
}

type queryFunc func(ctx context.Context, query queries.Query) (any, error)

func (f queryFunc) Ask(ctx context.Context, q queries.Query) (any, error) {
	return f(ctx, q)
}
