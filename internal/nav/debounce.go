package nav

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

// DefaultDebounceWindow is how long repeated editor-open requests are
// collapsed into one. The navigation collaborator opens duplicate views
// when invoked twice in rapid succession.
const DefaultDebounceWindow = 100 * time.Millisecond

// Debouncer implements a leading-edge debounce: the first call in a burst
// passes, later calls within the window are suppressed. The clock is
// injectable so tests do not depend on wall time.
type Debouncer struct {
	clock  clock.Clock
	window time.Duration

	mu   sync.Mutex
	last time.Time
}

// NewDebouncer creates a debouncer with the given suppression window.
// A nil clk defaults to the wall clock; a non-positive window defaults to
// DefaultDebounceWindow.
func NewDebouncer(window time.Duration, clk clock.Clock) *Debouncer {
	if clk == nil {
		clk = clock.New()
	}
	if window <= 0 {
		window = DefaultDebounceWindow
	}
	return &Debouncer{clock: clk, window: window}
}

// Allow reports whether a call arriving now should fire. The first call
// always fires and starts the window.
func (d *Debouncer) Allow() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.clock.Now()
	if !d.last.IsZero() && now.Sub(d.last) < d.window {
		return false
	}
	d.last = now
	return true
}
