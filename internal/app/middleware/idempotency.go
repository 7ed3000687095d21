package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"time"

	"chalet/internal/app/commands"
)

// IdempotentCommand is implemented by commands that must not be applied twice
// for the same client key, such as a double-clicked day.
type IdempotentCommand interface {
	commands.Command
	IdempotencyKey() string
	ResultPrototype() any // pointer matching the handler result type
}

// Remembered lets a result opt out of being stored. A refused click reports
// false: its outcome depends on state that may change before the retry.
type Remembered interface {
	Remember() bool
}

// IdempotencyRecord is the encoded result of a successful command.
type IdempotencyRecord struct {
	Key        string
	Payload    []byte
	OccurredAt time.Time
}

type IdempotencyStore interface {
	Get(ctx context.Context, key string) (IdempotencyRecord, bool, error)
	Save(ctx context.Context, rec IdempotencyRecord) error
}

type ResultCodec interface {
	Encode(v any) ([]byte, error)
	Decode(data []byte, out any) error
}

type JSONResultCodec struct{}

func (JSONResultCodec) Encode(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (JSONResultCodec) Decode(data []byte, out any) error {
	return json.Unmarshal(data, out)
}

var errMissingPrototype = errors.New("middleware: idempotent command requires result prototype")

// IdempotencyOptions configures Idempotency. A zero TTL keeps records forever.
type IdempotencyOptions struct {
	Store IdempotencyStore
	Codec ResultCodec
	TTL   time.Duration
	Now   func() time.Time
}

// Idempotency replays the stored result of a command whose key succeeded
// within the TTL. Errors and results that decline via Remembered are not
// stored, so a retry runs again.
func Idempotency(opts IdempotencyOptions) CommandMiddleware {
	mustHave(opts.Store != nil, errors.New("middleware: idempotency store required"))
	if opts.Codec == nil {
		opts.Codec = JSONResultCodec{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return func(next commands.Bus) commands.Bus {
		return commandFunc(func(ctx context.Context, cmd commands.Command) (any, error) {
			idCmd, ok := cmd.(IdempotentCommand)
			if !ok || idCmd.IdempotencyKey() == "" {
				return next.Dispatch(ctx, cmd)
			}
			key := idCmd.IdempotencyKey()
			rec, found, err := opts.Store.Get(ctx, key)
			if err != nil {
				return nil, err
			}
			if found && opts.fresh(rec) {
				return opts.replay(idCmd, rec)
			}

			result, err := next.Dispatch(ctx, cmd)
			if err != nil {
				return nil, err
			}
			if r, ok := result.(Remembered); ok && !r.Remember() {
				return result, nil
			}
			record := IdempotencyRecord{Key: key, OccurredAt: opts.Now().UTC()}
			if result != nil {
				if record.Payload, err = opts.Codec.Encode(result); err != nil {
					return nil, err
				}
			}
			if err := opts.Store.Save(ctx, record); err != nil {
				return nil, err
			}
			return result, nil
		})
	}
}

func (o IdempotencyOptions) fresh(rec IdempotencyRecord) bool {
	return o.TTL <= 0 || o.Now().Sub(rec.OccurredAt) < o.TTL
}

func (o IdempotencyOptions) replay(cmd IdempotentCommand, rec IdempotencyRecord) (any, error) {
	if rec.Payload == nil {
		return nil, nil
	}
	proto := cmd.ResultPrototype()
	if proto == nil || reflect.ValueOf(proto).Kind() != reflect.Ptr {
		return nil, errMissingPrototype
	}
	if err := o.Codec.Decode(rec.Payload, proto); err != nil {
		return nil, err
	}
	return proto, nil
}
