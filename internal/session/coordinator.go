// Package session implements the session coordinator: the single
// authoritative holder of debugger-mode, callstack, and thread state for
// the front-end.
//
// The coordinator registers exactly one handler with the action bus and
// mutates its state only inside that handler, so dispatch turns never
// observe partial updates. Side effects that reach external collaborators
// (opening a source, highlighting a line, pinning a thread-switch message)
// run as fire-and-forget continuations on their own goroutines; each
// continuation checks a generation counter before applying its effect so a
// later ClearInterface cannot be overwritten by a stale navigation.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"github.com/dapview/dapview/internal/bus"
	"github.com/dapview/dapview/internal/nav"
	"github.com/dapview/dapview/pkg/types"
)

// Options configures optional coordinator collaborators.
type Options struct {
	// Notifier displays pinned thread-switch messages. May be nil; thread
	// switch notifications are then dropped.
	Notifier nav.Notifier

	// Logger defaults to a no-op logger.
	Logger *zap.Logger

	// DebounceWindow for editor-open requests. Zero means the default.
	DebounceWindow time.Duration

	// Clock drives the debouncer; nil means the wall clock.
	Clock clock.Clock
}

// Coordinator owns the debugger session state and serializes every
// mutation through its action bus handler.
type Coordinator struct {
	log      *zap.Logger
	bus      *bus.Bus
	token    bus.Token
	notifier *Notifier
	nav      nav.Navigator
	notes    nav.Notifier
	opener   *nav.Debouncer

	mu               sync.RWMutex
	mode             types.DebuggerMode
	callstack        []types.CallFrame
	selectedFrame    int
	threads          map[int]types.ThreadItem
	owningProcessID  int
	stopThreadID     int
	selectedThreadID int
	threadsReloading bool
	highlight        nav.Highlight
	switchNote       nav.Notification
	generation       uint64

	disposeOnce sync.Once
}

// New creates a coordinator and registers its handler with b.
func New(b *bus.Bus, navigator nav.Navigator, opts Options) (*Coordinator, error) {
	if b == nil {
		return nil, errors.New("session: bus is required")
	}
	if navigator == nil {
		return nil, errors.New("session: navigator is required")
	}

	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	c := &Coordinator{
		log:      log,
		bus:      b,
		notifier: NewNotifier(),
		nav:      navigator,
		notes:    opts.Notifier,
		opener:   nav.NewDebouncer(opts.DebounceWindow, opts.Clock),
		mode:     types.ModeStopped,
		threads:  make(map[int]types.ThreadItem),
	}

	tok, err := b.Register(c.handle)
	if err != nil {
		return nil, err
	}
	c.token = tok
	return c, nil
}

// Events returns the coordinator's change notifier so subscribers can
// attach to the callstack-changed and threads-changed channels.
func (c *Coordinator) Events() *Notifier {
	return c.notifier
}

// Dispose unregisters the bus handler and releases any held highlight and
// thread-switch notification. Safe to call more than once; resources are
// released exactly once.
func (c *Coordinator) Dispose() {
	c.disposeOnce.Do(func() {
		c.bus.Unregister(c.token)

		c.mu.Lock()
		c.generation++
		hl := c.highlight
		c.highlight = nil
		note := c.switchNote
		c.switchNote = nil
		c.mu.Unlock()

		if hl != nil {
			hl.Release()
		}
		if note != nil {
			note.Dismiss()
		}
	})
}

// handle is the single bus handler. Each branch is terminal for the
// dispatch turn; no branch publishes a nested action.
func (c *Coordinator) handle(action types.Action) {
	switch a := action.(type) {
	case types.DebuggerModeChange:
		c.applyModeChange(a.Mode)
	case types.UpdateCallstack:
		c.applyCallstack(a.Frames)
	case types.SetSelectedCallFrameIndex:
		c.applySelectedFrameIndex(a.Index)
	case types.SetSelectedCallFrameLine:
		c.applySelectedFrameLine(a.Location)
	case types.OpenSourceLocation:
		c.applyOpenSource(a.Location)
	case types.UpdateThreads:
		c.applyThreads(a.Update)
	case types.UpdateThread:
		c.applyThread(a.Thread)
	case types.UpdateStopThread:
		c.applyStopThread(a.ID)
	case types.UpdateSelectedThread:
		c.applySelectedThread(a.ID)
	case types.NotifyThreadSwitch:
		c.applyThreadSwitch(a)
	case types.ClearInterface:
		c.applyClear()
	default:
		// Unknown kinds are ignored so newer producers stay compatible.
	}
}

// --- Mode state machine ---

func (c *Coordinator) applyModeChange(next types.DebuggerMode) {
	c.mu.Lock()
	prev := c.mode
	c.mode = next
	switch {
	case next == types.ModeRunning:
		c.threadsReloading = false
	case prev == types.ModeRunning && next == types.ModePaused:
		// A stack refresh is expected after the pause.
		c.threadsReloading = true
	}
	c.mu.Unlock()

	c.log.Debug("debugger mode changed",
		zap.String("from", string(prev)),
		zap.String("to", string(next)))
	c.notifier.Fire(TopicThreadsChanged)
}

// --- Callstack operations ---

func (c *Coordinator) applyCallstack(frames []types.CallFrame) {
	stack := make([]types.CallFrame, len(frames))
	copy(stack, frames)

	c.mu.Lock()
	c.callstack = stack
	c.selectedFrame = 0
	c.mu.Unlock()

	c.notifier.Fire(TopicCallstackChanged)
}

func (c *Coordinator) applySelectedFrameIndex(index int) {
	c.mu.Lock()
	if index < 0 || index >= len(c.callstack) {
		// Callers guarantee bounds; keep the permissive assignment but
		// leave a trace for when they do not.
		c.log.Debug("selected frame index outside current callstack",
			zap.Int("index", index),
			zap.Int("frames", len(c.callstack)))
	}
	c.selectedFrame = index
	c.mu.Unlock()

	c.notifier.Fire(TopicCallstackChanged)
}

func (c *Coordinator) applySelectedFrameLine(loc *types.SourceLocation) {
	c.mu.Lock()
	hl := c.highlight
	c.highlight = nil
	c.mu.Unlock()
	if hl != nil {
		hl.Release()
	}
	if loc == nil {
		return
	}

	line := loc.Line
	c.openInEditor(*loc, func(gen uint64, src nav.Source) {
		c.nav.NavigateTo(src, line)

		// Create and store the mark under the lock so a concurrent clear
		// either precedes both or releases the stored handle.
		c.mu.Lock()
		if c.generation != gen {
			c.mu.Unlock()
			return
		}
		prev := c.highlight
		c.highlight = c.nav.HighlightLine(src, line)
		c.mu.Unlock()
		if prev != nil {
			prev.Release()
		}
	})
}

func (c *Coordinator) applyOpenSource(loc types.SourceLocation) {
	line := loc.Line
	c.openInEditor(loc, func(_ uint64, src nav.Source) {
		c.nav.NavigateTo(src, line)
	})
}

// --- Thread operations ---

func (c *Coordinator) applyThreads(u types.ThreadsUpdate) {
	c.mu.Lock()
	c.threads = make(map[int]types.ThreadItem)
	c.owningProcessID = u.OwningProcessID
	if u.StopThreadID >= 0 {
		c.stopThreadID = u.StopThreadID
		c.selectedThreadID = u.StopThreadID
	}
	c.threadsReloading = false
	for _, th := range u.Threads {
		c.upsertThreadLocked(th)
	}
	c.mu.Unlock()

	c.notifier.Fire(TopicThreadsChanged)
}

func (c *Coordinator) applyThread(th types.ThreadItem) {
	c.mu.Lock()
	c.upsertThreadLocked(th)
	c.threadsReloading = false
	c.mu.Unlock()

	c.notifier.Fire(TopicThreadsChanged)
}

// upsertThreadLocked inserts the thread, or removes it when its stop
// reason is terminal. Callers hold c.mu.
func (c *Coordinator) upsertThreadLocked(th types.ThreadItem) {
	if th.StopReason.Terminal() {
		delete(c.threads, th.ID)
		return
	}
	c.threads[th.ID] = th
}

func (c *Coordinator) applyStopThread(id int) {
	if id < 0 {
		c.log.Debug("ignoring malformed stop thread id", zap.Int("id", id))
		return
	}
	c.mu.Lock()
	c.stopThreadID = id
	c.mu.Unlock()

	c.notifier.Fire(TopicThreadsChanged)
}

func (c *Coordinator) applySelectedThread(id int) {
	if id < 0 {
		c.log.Debug("ignoring malformed selected thread id", zap.Int("id", id))
		return
	}
	c.mu.Lock()
	c.selectedThreadID = id
	c.mu.Unlock()

	c.notifier.Fire(TopicThreadsChanged)
}

// --- Thread-switch notification ---

func (c *Coordinator) applyThreadSwitch(a types.NotifyThreadSwitch) {
	if c.notes == nil {
		return
	}

	msg := a.Message
	line := a.Location.Line
	// Pin the message one line above the target so it does not cover the
	// line execution switched to.
	if line > 1 {
		line--
	}

	c.openInEditor(a.Location, func(gen uint64, src nav.Source) {
		c.mu.Lock()
		if c.generation != gen {
			c.mu.Unlock()
			return
		}
		note, err := c.notes.ShowPinnedMessage(msg, src, line)
		if err != nil {
			c.mu.Unlock()
			c.log.Debug("thread switch notification unavailable", zap.Error(err))
			return
		}
		prev := c.switchNote
		c.switchNote = note
		c.mu.Unlock()
		if prev != nil {
			prev.Dismiss()
		}
	})
}

// --- Interface clearing ---

func (c *Coordinator) applyClear() {
	c.mu.Lock()
	c.generation++
	c.selectedFrame = 0
	c.callstack = nil
	c.threads = make(map[int]types.ThreadItem)
	hl := c.highlight
	c.highlight = nil
	note := c.switchNote
	c.switchNote = nil
	c.mu.Unlock()

	if hl != nil {
		hl.Release()
	}
	if note != nil {
		note.Dismiss()
	}

	c.notifier.Fire(TopicCallstackChanged)
	c.notifier.Fire(TopicThreadsChanged)
}

// --- Editor continuations ---

// openInEditor resolves loc, applies the debounce, and opens the source on
// a separate goroutine. apply receives the generation captured at dispatch
// time; it must not run its effect if the coordinator has since advanced.
func (c *Coordinator) openInEditor(loc types.SourceLocation, apply func(gen uint64, src nav.Source)) {
	path, ok := c.nav.ResolveLocation(loc.URL)
	if !ok {
		c.log.Debug("location does not resolve to an openable source",
			zap.String("url", loc.URL))
		return
	}
	if !c.opener.Allow() {
		c.log.Debug("editor open suppressed by debounce", zap.String("path", path))
		return
	}

	c.mu.RLock()
	gen := c.generation
	c.mu.RUnlock()

	go func() {
		src, err := c.nav.OpenSource(path)
		if err != nil {
			c.log.Debug("opening source failed",
				zap.String("path", path), zap.Error(err))
			return
		}
		c.mu.RLock()
		stale := c.generation != gen
		c.mu.RUnlock()
		if stale {
			return
		}
		apply(gen, src)
	}()
}

// --- Query surface ---

// Mode returns the current debugger mode.
func (c *Coordinator) Mode() types.DebuggerMode {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.mode
}

// Callstack returns a copy of the current callstack.
func (c *Coordinator) Callstack() []types.CallFrame {
	c.mu.RLock()
	defer c.mu.RUnlock()

	stack := make([]types.CallFrame, len(c.callstack))
	copy(stack, c.callstack)
	return stack
}

// SelectedCallFrameIndex returns the selected frame index. It is only
// meaningful while the callstack is non-empty.
func (c *Coordinator) SelectedCallFrameIndex() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.selectedFrame
}

// Threads returns the known threads as an unordered snapshot.
func (c *Coordinator) Threads() []types.ThreadItem {
	c.mu.RLock()
	defer c.mu.RUnlock()

	items := make([]types.ThreadItem, 0, len(c.threads))
	for _, th := range c.threads {
		items = append(items, th)
	}
	return items
}

// Thread returns the thread with the given id, if known.
func (c *Coordinator) Thread(id int) (types.ThreadItem, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	th, ok := c.threads[id]
	return th, ok
}

// OwningProcessID returns the debuggee process id from the last wholesale
// thread update.
func (c *Coordinator) OwningProcessID() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.owningProcessID
}

// StopThreadID returns the thread that caused the most recent stop.
func (c *Coordinator) StopThreadID() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stopThreadID
}

// SelectedThreadID returns the thread the UI is inspecting.
func (c *Coordinator) SelectedThreadID() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.selectedThreadID
}

// ThreadsReloading reports whether a stack refresh is expected after a
// running-to-paused transition.
func (c *Coordinator) ThreadsReloading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.threadsReloading
}

// Snapshot returns the complete query surface in one consistent read.
func (c *Coordinator) Snapshot() types.SessionSnapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	stack := make([]types.CallFrame, len(c.callstack))
	copy(stack, c.callstack)

	items := make([]types.ThreadItem, 0, len(c.threads))
	for _, th := range c.threads {
		items = append(items, th)
	}

	return types.SessionSnapshot{
		Mode:               c.mode,
		Callstack:          stack,
		SelectedFrameIndex: c.selectedFrame,
		Threads:            items,
		OwningProcessID:    c.owningProcessID,
		StopThreadID:       c.stopThreadID,
		SelectedThreadID:   c.selectedThreadID,
		ThreadsReloading:   c.threadsReloading,
	}
}
