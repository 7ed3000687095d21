package middleware

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"chalet/internal/app/commands"
)

type sessionClick struct {
	session string
	key     string
}

func (c sessionClick) Key() string            { return "test.session_click" }
func (c sessionClick) SerialKey() string      { return c.session }
func (c sessionClick) IdempotencyKey() string { return c.key }
func (c sessionClick) ResultPrototype() any   { return &clickResult{} }

func TestSerialize_SameSessionRunsOneAtATime(t *testing.T) {
	var active, overlaps, calls int32
	bus := commands.NewInMemoryBus()
	commands.RegisterHandler[sessionClick, *clickResult](bus, "test.session_click", commands.HandlerFunc[sessionClick, *clickResult](
		func(ctx context.Context, cmd sessionClick) (*clickResult, error) {
			if atomic.AddInt32(&active, 1) > 1 {
				atomic.AddInt32(&overlaps, 1)
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&active, -1)
			return &clickResult{Calls: int(atomic.AddInt32(&calls, 1))}, nil
		}))
	store := &memStore{items: map[string]IdempotencyRecord{}}
	chained := ChainCommands(bus, Serialize(), Idempotency(IdempotencyOptions{Store: store, TTL: time.Hour}))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := chained.Dispatch(context.Background(), sessionClick{session: "s1", key: "dup"}); err != nil {
				t.Errorf("dispatch: %v", err)
			}
		}()
	}
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := chained.Dispatch(context.Background(), sessionClick{session: "s1"}); err != nil {
				t.Errorf("dispatch: %v", err)
			}
		}()
	}
	wg.Wait()

	if overlaps != 0 {
		t.Fatalf("handler ran concurrently for one session %d times", overlaps)
	}
	if calls != 9 {
		t.Fatalf("calls=%d want=9 (one for the duplicated key, eight unkeyed)", calls)
	}
}

func TestKeyedMutex_ForgetsReleasedKeys(t *testing.T) {
	locks := &keyedMutex{held: make(map[string]*keyedEntry)}
	unlock := locks.lock("s1")
	other := locks.lock("s2")
	other()
	unlock()
	if len(locks.held) != 0 {
		t.Fatalf("held=%d want=0", len(locks.held))
	}
}
