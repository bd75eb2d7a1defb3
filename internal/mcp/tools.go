package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// registerTools registers the session tool API
func (s *Server) registerTools() {
	// Query (both modes)
	s.registerDebugState()

	// Control (full mode only)
	if s.config.CanUseControlTools() {
		s.registerDebugSetMode()
		s.registerDebugSelectFrame()
		s.registerDebugSelectThread()
		s.registerDebugOpenSource()
		s.registerDebugClear()
		s.registerDebugAdapterMessage()
	}
}

func (s *Server) registerDebugState() {
	tool := mcp.NewTool("debug_state",
		mcp.WithDescription("Get the complete debugger session state in ONE call: mode, callstack, selected frame index, threads, stop/selected thread ids and the reloading flag. Returns: {mode, callstack, selectedFrameIndex, threads, owningProcessId, stopThreadId, selectedThreadId, threadsReloading}."),
	)
	s.mcpServer.AddTool(tool, s.handleDebugState)
}

func (s *Server) registerDebugSetMode() {
	tool := mcp.NewTool("debug_set_mode",
		mcp.WithDescription("Transition the debugger mode. Pausing while running marks the thread list as reloading until the next thread update."),
		mcp.WithString("mode",
			mcp.Required(),
			mcp.Description("Target mode: 'stopped', 'running', or 'paused'"),
		),
	)
	s.mcpServer.AddTool(tool, s.handleDebugSetMode)
}

func (s *Server) registerDebugSelectFrame() {
	tool := mcp.NewTool("debug_select_frame",
		mcp.WithDescription("Select a call frame by index in the current callstack and optionally highlight its source line."),
		mcp.WithNumber("index",
			mcp.Required(),
			mcp.Description("Zero-based index into the current callstack"),
		),
		mcp.WithBoolean("highlight",
			mcp.Description("Also open the frame's source and highlight its line (default: false)"),
		),
	)
	s.mcpServer.AddTool(tool, s.handleDebugSelectFrame)
}

func (s *Server) registerDebugSelectThread() {
	tool := mcp.NewTool("debug_select_thread",
		mcp.WithDescription("Select the thread the UI is inspecting."),
		mcp.WithNumber("threadId",
			mcp.Required(),
			mcp.Description("The thread ID to inspect"),
		),
	)
	s.mcpServer.AddTool(tool, s.handleDebugSelectThread)
}

func (s *Server) registerDebugOpenSource() {
	tool := mcp.NewTool("debug_open_source",
		mcp.WithDescription("Open a source location in the editor and position the caret. Best effort: unresolvable locations are skipped."),
		mcp.WithString("location",
			mcp.Required(),
			mcp.Description("file:// URL or workspace-relative path"),
		),
		mcp.WithNumber("line",
			mcp.Required(),
			mcp.Description("The line number to position at"),
		),
	)
	s.mcpServer.AddTool(tool, s.handleDebugOpenSource)
}

func (s *Server) registerDebugClear() {
	tool := mcp.NewTool("debug_clear",
		mcp.WithDescription("Clear the session interface: empty the callstack and thread list, reset the frame selection and release any highlight."),
	)
	s.mcpServer.AddTool(tool, s.handleDebugClear)
}

func (s *Server) registerDebugAdapterMessage() {
	tool := mcp.NewTool("debug_adapter_message",
		mcp.WithDescription("Feed one Debug Adapter Protocol message (JSON) into the session: stopped/continued/thread/exited/terminated/process events and threads/stackTrace responses update the session state; other messages are ignored. Returns the resulting session snapshot."),
		mcp.WithString("message",
			mcp.Required(),
			mcp.Description("A single DAP protocol message as JSON (event or response)"),
		),
	)
	s.mcpServer.AddTool(tool, s.handleDebugAdapterMessage)
}
