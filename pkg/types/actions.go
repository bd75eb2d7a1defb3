package types

// Action is the closed set of messages carried by the action bus. Each
// kind is a struct below; the unexported marker method seals the set so
// the coordinator's handler can switch exhaustively over it.
type Action interface {
	isAction()
}

// ClearInterface resets the coordinator's visible state: empty callstack,
// frame selection back to zero, thread map cleared, pending highlight and
// thread-switch notification released.
type ClearInterface struct{}

// SetSelectedCallFrameLine asks the coordinator to highlight the selected
// frame's line in its source. A nil Location only clears the previous
// highlight.
type SetSelectedCallFrameLine struct {
	Location *SourceLocation
}

// OpenSourceLocation asks the navigation collaborator to open a source and
// position its caret. Best effort; unresolvable locations are skipped.
type OpenSourceLocation struct {
	Location SourceLocation
}

// UpdateCallstack replaces the callstack wholesale and resets the selected
// frame index to zero.
type UpdateCallstack struct {
	Frames []CallFrame
}

// SetSelectedCallFrameIndex selects a frame in the current callstack.
type SetSelectedCallFrameIndex struct {
	Index int
}

// UpdateThreads replaces the thread map wholesale.
type UpdateThreads struct {
	Update ThreadsUpdate
}

// UpdateThread upserts a single thread, or removes it when its stop reason
// is terminal.
type UpdateThread struct {
	Thread ThreadItem
}

// UpdateStopThread records the thread that caused the most recent stop.
type UpdateStopThread struct {
	ID int
}

// UpdateSelectedThread records the thread the UI is inspecting.
type UpdateSelectedThread struct {
	ID int
}

// NotifyThreadSwitch asks for a one-shot pinned message anchored above the
// given location, announcing that execution moved to a different thread.
type NotifyThreadSwitch struct {
	Location SourceLocation
	Message  string
}

// DebuggerModeChange transitions the debugger-mode state machine.
type DebuggerModeChange struct {
	Mode DebuggerMode
}

func (ClearInterface) isAction()            {}
func (SetSelectedCallFrameLine) isAction()  {}
func (OpenSourceLocation) isAction()        {}
func (UpdateCallstack) isAction()           {}
func (SetSelectedCallFrameIndex) isAction() {}
func (UpdateThreads) isAction()             {}
func (UpdateThread) isAction()              {}
func (UpdateStopThread) isAction()          {}
func (UpdateSelectedThread) isAction()      {}
func (NotifyThreadSwitch) isAction()        {}
func (DebuggerModeChange) isAction()        {}
