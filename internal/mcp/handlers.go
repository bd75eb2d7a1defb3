package mcp

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"

	"github.com/google/go-dap"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/dapview/dapview/internal/bus"
	"github.com/dapview/dapview/internal/errors"
	"github.com/dapview/dapview/pkg/types"
)

// Query Handlers

func (s *Server) handleDebugState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(s.coordinator.Snapshot())
}

// Control Handlers

func (s *Server) handleDebugSetMode(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	modeStr, err := request.RequireString("mode")
	if err != nil {
		return mcp.NewToolResultError(errors.MissingParameter("mode",
			"Specify the target debugger mode: 'stopped', 'running', or 'paused'.").Error()), nil
	}

	mode := types.DebuggerMode(modeStr)
	if !mode.Valid() {
		return mcp.NewToolResultError(errors.UnknownMode(modeStr).Error()), nil
	}

	if err := s.bus.Publish(types.DebuggerModeChange{Mode: mode}); err != nil {
		return publishError(err), nil
	}

	return jsonResult(s.coordinator.Snapshot())
}

func (s *Server) handleDebugSelectFrame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	index, err := request.RequireFloat("index")
	if err != nil {
		return mcp.NewToolResultError(errors.MissingParameter("index",
			"Provide the zero-based index of the frame to select. Use debug_state to see the current callstack.").Error()), nil
	}

	stack := s.coordinator.Callstack()
	i := int(index)
	if i < 0 || i >= len(stack) {
		return mcp.NewToolResultError(errors.InvalidParameter("index", i,
			"an index inside the current callstack; use debug_state to see it").Error()), nil
	}

	if err := s.bus.Publish(types.SetSelectedCallFrameIndex{Index: i}); err != nil {
		return publishError(err), nil
	}

	if request.GetBool("highlight", false) {
		frame := stack[i]
		loc := &types.SourceLocation{URL: frame.Source, Line: frame.Line}
		if err := s.bus.Publish(types.SetSelectedCallFrameLine{Location: loc}); err != nil {
			return publishError(err), nil
		}
	}

	return jsonResult(s.coordinator.Snapshot())
}

func (s *Server) handleDebugSelectThread(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	threadID, err := request.RequireFloat("threadId")
	if err != nil {
		return mcp.NewToolResultError(errors.MissingParameter("threadId",
			"Provide the id of the thread to inspect. Use debug_state to list threads.").Error()), nil
	}
	if threadID < 0 {
		return mcp.NewToolResultError(errors.InvalidParameter("threadId", threadID,
			"a non-negative thread id").Error()), nil
	}

	if err := s.bus.Publish(types.UpdateSelectedThread{ID: int(threadID)}); err != nil {
		return publishError(err), nil
	}

	return jsonResult(s.coordinator.Snapshot())
}

func (s *Server) handleDebugOpenSource(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	location, err := request.RequireString("location")
	if err != nil {
		return mcp.NewToolResultError(errors.MissingParameter("location",
			"Provide a file:// URL or a workspace-relative path.").Error()), nil
	}

	line, err := request.RequireFloat("line")
	if err != nil {
		return mcp.NewToolResultError(errors.MissingParameter("line",
			"Provide the line number to position at.").Error()), nil
	}

	if err := s.bus.Publish(types.OpenSourceLocation{Location: types.SourceLocation{
		URL:  location,
		Line: int(line),
	}}); err != nil {
		return publishError(err), nil
	}

	return mcp.NewToolResultText("ok"), nil
}

func (s *Server) handleDebugAdapterMessage(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := request.RequireString("message")
	if err != nil {
		return mcp.NewToolResultError(errors.MissingParameter("message",
			"Provide one DAP protocol message as JSON.").Error()), nil
	}

	msg, err := dap.DecodeProtocolMessage([]byte(raw))
	if err != nil {
		return mcp.NewToolResultError(errors.InvalidParameter("message", raw,
			"a well-formed DAP protocol message").Error()), nil
	}

	s.bridge.HandleMessage(msg)

	return jsonResult(s.coordinator.Snapshot())
}

func (s *Server) handleDebugClear(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.bus.Publish(types.ClearInterface{}); err != nil {
		return publishError(err), nil
	}
	return jsonResult(s.coordinator.Snapshot())
}

// publishError maps a bus failure onto the structured error surface.
func publishError(err error) *mcp.CallToolResult {
	if stderrors.Is(err, bus.ErrReentrantDispatch) {
		return mcp.NewToolResultError(errors.ReentrantDispatch(err).Error())
	}
	return mcp.NewToolResultError(errors.FromError(err).Error())
}

func jsonResult(data interface{}) (*mcp.CallToolResult, error) {
	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}
