// Package mcp provides the Model Context Protocol (MCP) server
// implementation.
//
// This package exposes the session coordinator through MCP tools so UI
// action creators and inspection clients can drive and query it:
//
// Query (always available):
//   - debug_state: Get the complete session snapshot (mode, callstack,
//     selected frame, threads, scalars)
//
// Control (full mode only):
//   - debug_set_mode: Transition the debugger mode
//   - debug_select_frame: Select a call frame
//   - debug_select_thread: Select the inspected thread
//   - debug_open_source: Open a source location in the editor
//   - debug_clear: Clear the session interface
//   - debug_adapter_message: Feed one DAP protocol message into the session
package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/dapview/dapview/internal/bridge"
	"github.com/dapview/dapview/internal/bus"
	"github.com/dapview/dapview/internal/config"
	"github.com/dapview/dapview/internal/session"
	"github.com/dapview/dapview/internal/version"
)

// Server wraps the MCP server around the session coordinator
type Server struct {
	mcpServer   *server.MCPServer
	bus         *bus.Bus
	coordinator *session.Coordinator
	bridge      *bridge.Bridge
	config      *config.Config
}

// NewServer creates a new dapview MCP server
func NewServer(cfg *config.Config, b *bus.Bus, coordinator *session.Coordinator, br *bridge.Bridge) *Server {
	mcpServer := server.NewMCPServer(
		"dapview",
		version.Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)

	s := &Server{
		mcpServer:   mcpServer,
		bus:         b,
		coordinator: coordinator,
		bridge:      br,
		config:      cfg,
	}

	s.registerTools()

	return s
}

// ServeStdio starts the server using stdio transport
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// Close releases the coordinator
func (s *Server) Close() {
	s.coordinator.Dispose()
}
