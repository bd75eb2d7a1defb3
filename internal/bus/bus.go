// Package bus implements the synchronous action bus at the center of the
// session coordinator.
//
// Publish delivers an action to every registered handler, in registration
// order, on the caller's goroutine. Dispatch is deliberately non-reentrant:
// a handler publishing a new action from inside its own dispatch gets
// ErrReentrantDispatch instead of interleaved delivery. Publishers on other
// goroutines are serialized and wait for the in-flight dispatch to finish.
// This keeps every mutation triggered by one action complete before the
// next action's effects begin.
package bus

import (
	"bytes"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/dapview/dapview/pkg/types"
)

// Handler receives every action published on the bus.
type Handler func(action types.Action)

// Token identifies a registration for later removal.
type Token string

type registration struct {
	token   Token
	handler Handler
}

// Bus dispatches actions synchronously to registered handlers.
type Bus struct {
	mu       sync.Mutex
	handlers []registration

	// dispatchMu serializes dispatch turns; dispatcher pins the in-flight
	// turn to its goroutine so a nested publish can be told apart from a
	// concurrent one.
	dispatchMu sync.Mutex
	dispatcher atomic.Uint64
}

// New creates an empty bus.
func New() *Bus {
	return &Bus{}
}

// Register adds a handler and returns a token for Unregister.
// Handlers are invoked in registration order.
func (b *Bus) Register(h Handler) (Token, error) {
	if h == nil {
		return "", ErrNilHandler
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	tok := Token(uuid.New().String())
	b.handlers = append(b.handlers, registration{token: tok, handler: h})
	return tok, nil
}

// Unregister removes the handler identified by tok. It reports whether a
// registration was removed; removing an unknown token is not an error, so
// shutdown paths can call it unconditionally. Later publishes silently
// skip removed handlers.
func (b *Bus) Unregister(tok Token) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, reg := range b.handlers {
		if reg.token == tok {
			b.handlers = append(b.handlers[:i], b.handlers[i+1:]...)
			return true
		}
	}
	return false
}

// Publish delivers action to every registered handler, synchronously and
// in registration order. A nested Publish from inside a handler returns
// ErrReentrantDispatch without delivering anything; a Publish from another
// goroutine waits for the in-flight dispatch to complete and then runs.
func (b *Bus) Publish(action types.Action) error {
	gid := goroutineID()
	if b.dispatcher.Load() == gid {
		return ErrReentrantDispatch
	}

	b.dispatchMu.Lock()
	b.dispatcher.Store(gid)
	defer func() {
		b.dispatcher.Store(0)
		b.dispatchMu.Unlock()
	}()

	// Snapshot so handlers may unregister themselves mid-dispatch.
	b.mu.Lock()
	regs := make([]registration, len(b.handlers))
	copy(regs, b.handlers)
	b.mu.Unlock()

	for _, reg := range regs {
		if !b.registered(reg.token) {
			continue
		}
		reg.handler(action)
	}
	return nil
}

// Count returns the number of registered handlers.
func (b *Bus) Count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.handlers)
}

func (b *Bus) registered(tok Token) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, reg := range b.handlers {
		if reg.token == tok {
			return true
		}
	}
	return false
}

// goroutineID parses the current goroutine's id from its stack header
// ("goroutine 123 [running]:"). Goroutine ids start at 1, so 0 is free to
// mean "no dispatch in flight".
func goroutineID() uint64 {
	buf := make([]byte, 64)
	buf = buf[:runtime.Stack(buf, false)]
	fields := bytes.Fields(buf)
	if len(fields) < 2 {
		return 0
	}
	id, err := strconv.ParseUint(string(fields[1]), 10, 64)
	if err != nil {
		return 0
	}
	return id
}
