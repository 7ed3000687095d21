package middleware

import (
	"context"
	"errors"

	"chalet/internal/app/commands"
	"chalet/internal/app/queries"
)

// Validator checks a command or query before it reaches its handler.
type Validator interface {
	Validate(ctx context.Context, message any) error
}

var errNoValidator = errors.New("middleware: validator required")

// Validation rejects commands the validator refuses; the handler never runs.
func Validation(v Validator) CommandMiddleware {
	mustHave(v != nil, errNoValidator)
	return func(next commands.Bus) commands.Bus {
		return commandFunc(func(ctx context.Context, cmd commands.Command) (any, error) {
			if err := v.Validate(ctx, cmd); err != nil {
				return nil, err
			}
			return next.Dispatch(ctx, cmd)
		})
	}
}

// QueryValidation is Validation for the query side.
func QueryValidation(v Validator) QueryMiddleware {
	mustHave(v != nil, errNoValidator)
	return func(next queries.Bus) queries.Bus {
		return queryFunc(func(ctx context.Context, q queries.Query) (any, error) {
			if err := v.Validate(ctx, q); err != nil {
				return nil, err
			}
			return next.Ask(ctx, q)
		})
	}
}

// mustHave panics at wiring time when a middleware dependency is missing.
func mustHave(ok bool, err error) {
	if !ok {
		panic(err)
	}
}
