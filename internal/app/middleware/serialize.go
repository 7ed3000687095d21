package middleware

import (
	"context"
	"sync"

	"chalet/internal/app/commands"
)

// SerialCommand is implemented by commands that must not run concurrently
// with any other command sharing the same key, such as a click and a reset of
// one session.
type SerialCommand interface {
	commands.Command
	SerialKey() string
}

// Serialize runs commands with an equal SerialKey one at a time. Place it
// before Idempotency so a duplicate request waits for the first one and then
// replays its result.
func Serialize() CommandMiddleware {
	locks := &keyedMutex{held: make(map[string]*keyedEntry)}
	return func(next commands.Bus) commands.Bus {
		return commandFunc(func(ctx context.Context, cmd commands.Command) (any, error) {
			serial, ok := cmd.(SerialCommand)
			if !ok || serial.SerialKey() == "" {
				return next.Dispatch(ctx, cmd)
			}
			unlock := locks.lock(serial.SerialKey())
			defer unlock()
			return next.Dispatch(ctx, cmd)
		})
	}
}

type keyedEntry struct {
	mu   sync.Mutex
	refs int
}

// keyedMutex hands out one mutex per key and forgets it once unused.
type keyedMutex struct {
	mu   sync.Mutex
	held map[string]*keyedEntry
}

func (k *keyedMutex) lock(key string) func() {
	k.mu.Lock()
	entry, ok := k.held[key]
	if !ok {
		entry = &keyedEntry{}
		k.held[key] = entry
	}
	entry.refs++
	k.mu.Unlock()

	entry.mu.Lock()
	return func() {
		entry.mu.Unlock()
		k.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(k.held, key)
		}
		k.mu.Unlock()
	}
}
