// Package types defines the shared data model for the debugger session
// coordinator.
//
// This package provides type definitions for:
//   - DebuggerMode: execution state of the debuggee (stopped, running, paused)
//   - StopReason: why a thread stopped, including terminal reasons
//   - CallFrame / ThreadItem: the entities tracked by the coordinator
//   - Action kinds: the closed set of messages dispatched on the action bus
//     (see actions.go)
//
// These types are used throughout the codebase to maintain type safety
// and provide clear contracts between components.
package types

import (
	"github.com/google/go-dap"
)

// DebuggerMode represents the execution mode of the debuggee.
type DebuggerMode string

const (
	ModeStopped DebuggerMode = "stopped"
	ModeRunning DebuggerMode = "running"
	ModePaused  DebuggerMode = "paused"
)

// Valid reports whether m is one of the known modes.
func (m DebuggerMode) Valid() bool {
	switch m {
	case ModeStopped, ModeRunning, ModePaused:
		return true
	}
	return false
}

// StopReason tags a thread with why it last stopped (or that it is running).
type StopReason string

const (
	StopReasonRunning StopReason = "running"
	StopReasonPaused  StopReason = "paused"
	StopReasonEnd     StopReason = "end"
	StopReasonError   StopReason = "error"
	StopReasonStopped StopReason = "stopped"
)

// Terminal reports whether the reason indicates the thread is gone.
// Threads with a terminal reason are removed from the thread map rather
// than retained.
func (r StopReason) Terminal() bool {
	switch r {
	case StopReasonEnd, StopReasonError, StopReasonStopped:
		return true
	}
	return false
}

// CallFrame represents one frame of the call stack for the paused thread.
// Frames are immutable once received from the adapter.
type CallFrame struct {
	Label  string `json:"label"`
	Source string `json:"source,omitempty"` // file path or URL
	Line   int    `json:"line"`
}

// CallFrameFromDAP converts a DAP stack frame into a CallFrame.
func CallFrameFromDAP(f dap.StackFrame) CallFrame {
	cf := CallFrame{
		Label: f.Name,
		Line:  f.Line,
	}
	if f.Source != nil {
		cf.Source = f.Source.Path
	}
	return cf
}

// ThreadItem represents one debuggee thread known to the coordinator.
type ThreadItem struct {
	ID         int        `json:"id"`
	Name       string     `json:"name,omitempty"`
	StopReason StopReason `json:"stopReason"`
	Detail     string     `json:"detail,omitempty"`
}

// ThreadFromDAP converts a DAP thread into a ThreadItem with the given
// stop reason.
func ThreadFromDAP(t dap.Thread, reason StopReason) ThreadItem {
	return ThreadItem{
		ID:         t.Id,
		Name:       t.Name,
		StopReason: reason,
	}
}

// ThreadsUpdate is the payload of an UpdateThreads action: a wholesale
// replacement of the known thread set.
type ThreadsUpdate struct {
	OwningProcessID int          `json:"owningProcessId"`
	StopThreadID    int          `json:"stopThreadId"` // negative means absent
	Threads         []ThreadItem `json:"threads"`
}

// SourceLocation points at a line in a source the navigation collaborator
// may be able to open.
type SourceLocation struct {
	URL  string `json:"url"`
	Line int    `json:"line"`
}

// SessionSnapshot is a consistent read of the coordinator's complete query
// surface.
type SessionSnapshot struct {
	Mode               DebuggerMode `json:"mode"`
	Callstack          []CallFrame  `json:"callstack"`
	SelectedFrameIndex int          `json:"selectedFrameIndex"`
	Threads            []ThreadItem `json:"threads"`
	OwningProcessID    int          `json:"owningProcessId"`
	StopThreadID       int          `json:"stopThreadId"`
	SelectedThreadID   int          `json:"selectedThreadId"`
	ThreadsReloading   bool         `json:"threadsReloading"`
}
