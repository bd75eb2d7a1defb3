package bus

import "errors"

// Sentinel errors for the action bus.
var (
	// ErrReentrantDispatch is returned when Publish is called from inside a
	// handler that is itself running under Publish. Nested dispatch would
	// interleave partial state mutations, so it is treated as a bug in the
	// action producer and fails fast.
	ErrReentrantDispatch = errors.New("reentrant publish during dispatch")

	// ErrNilHandler is returned when a nil handler is registered.
	ErrNilHandler = errors.New("handler cannot be nil")
)
