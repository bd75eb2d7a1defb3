// Package bridge translates decoded Debug Adapter Protocol messages into
// action-bus messages for the session coordinator.
//
// The bridge is a bus producer, not a handler: it publishes from the
// adapter's read loop, outside any dispatch turn, so sequential publishes
// per DAP message are legal. Wire framing and the adapter connection
// itself are out of scope; callers hand the bridge already-decoded
// dap.Message values.
package bridge

import (
	"go.uber.org/zap"

	"github.com/google/go-dap"

	"github.com/dapview/dapview/internal/bus"
	"github.com/dapview/dapview/pkg/types"
)

// Bridge converts DAP traffic into coordinator actions.
type Bridge struct {
	log *zap.Logger
	bus *bus.Bus
}

// New creates a bridge publishing on b.
func New(b *bus.Bus, log *zap.Logger) *Bridge {
	if log == nil {
		log = zap.NewNop()
	}
	return &Bridge{log: log, bus: b}
}

// HandleMessage translates one decoded adapter message. Messages the
// coordinator has no use for are ignored.
func (b *Bridge) HandleMessage(msg dap.Message) {
	switch m := msg.(type) {
	case *dap.StoppedEvent:
		b.publish(types.DebuggerModeChange{Mode: types.ModePaused})
		// threadId is optional in the stopped event; go-dap decodes an
		// omitted field as 0, so 0 here means "not sent".
		if m.Body.ThreadId > 0 {
			b.publish(types.UpdateStopThread{ID: m.Body.ThreadId})
		}

	case *dap.ContinuedEvent:
		b.publish(types.DebuggerModeChange{Mode: types.ModeRunning})

	case *dap.ThreadEvent:
		b.publish(types.UpdateThread{Thread: types.ThreadItem{
			ID:         m.Body.ThreadId,
			StopReason: threadEventReason(m.Body.Reason),
		}})

	case *dap.ExitedEvent:
		b.publish(types.DebuggerModeChange{Mode: types.ModeStopped})
		b.publish(types.ClearInterface{})

	case *dap.TerminatedEvent:
		b.publish(types.DebuggerModeChange{Mode: types.ModeStopped})
		b.publish(types.ClearInterface{})

	case *dap.ProcessEvent:
		b.publish(types.UpdateThreads{Update: types.ThreadsUpdate{
			OwningProcessID: m.Body.SystemProcessId,
			StopThreadID:    -1,
		}})

	case *dap.ThreadsResponse:
		b.publish(types.UpdateThreads{Update: threadsUpdate(m)})

	case *dap.StackTraceResponse:
		frames := make([]types.CallFrame, 0, len(m.Body.StackFrames))
		for _, f := range m.Body.StackFrames {
			frames = append(frames, types.CallFrameFromDAP(f))
		}
		b.publish(types.UpdateCallstack{Frames: frames})

	default:
		b.log.Debug("ignoring adapter message", zap.String("type", messageName(msg)))
	}
}

func (b *Bridge) publish(a types.Action) {
	if err := b.bus.Publish(a); err != nil {
		b.log.Error("publishing adapter action failed", zap.Error(err))
	}
}

// threadsUpdate builds a wholesale replacement from a threads response.
// The response carries no stop thread, so the coordinator's stop/selected
// scalars are left untouched.
func threadsUpdate(m *dap.ThreadsResponse) types.ThreadsUpdate {
	u := types.ThreadsUpdate{StopThreadID: -1}
	for _, th := range m.Body.Threads {
		u.Threads = append(u.Threads, types.ThreadFromDAP(th, types.StopReasonRunning))
	}
	return u
}

// threadEventReason maps a DAP thread event reason onto a stop reason.
// "exited" is terminal; anything else keeps the thread alive.
func threadEventReason(reason string) types.StopReason {
	switch reason {
	case "exited":
		return types.StopReasonEnd
	case "started":
		return types.StopReasonRunning
	default:
		return types.StopReason(reason)
	}
}

func messageName(msg dap.Message) string {
	switch msg.(type) {
	case *dap.InitializedEvent:
		return "initialized"
	case *dap.OutputEvent:
		return "output"
	case *dap.BreakpointEvent:
		return "breakpoint"
	case *dap.ModuleEvent:
		return "module"
	case *dap.LoadedSourceEvent:
		return "loadedSource"
	default:
		return "unknown"
	}
}
