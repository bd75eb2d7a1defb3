package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dapview/dapview/internal/bridge"
	"github.com/dapview/dapview/internal/bus"
	"github.com/dapview/dapview/internal/config"
	"github.com/dapview/dapview/internal/nav"
	"github.com/dapview/dapview/internal/session"
	"github.com/dapview/dapview/pkg/types"
)

type noopNavigator struct{}

func (noopNavigator) ResolveLocation(string) (string, bool)       { return "", false }
func (noopNavigator) OpenSource(string) (nav.Source, error)       { return nil, nil }
func (noopNavigator) NavigateTo(nav.Source, int)                  {}
func (noopNavigator) HighlightLine(nav.Source, int) nav.Highlight { return nil }

func newTestServer(t *testing.T) *Server {
	t.Helper()

	b := bus.New()
	coord, err := session.New(b, noopNavigator{}, session.Options{})
	require.NoError(t, err)
	t.Cleanup(coord.Dispose)

	return NewServer(config.DefaultConfig(), b, coord, bridge.New(b, nil))
}

func callReq(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.Len(t, result.Content, 1)
	tc, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return tc.Text
}

func TestDebugAdapterMessageDrivesSession(t *testing.T) {
	s := newTestServer(t)

	for _, raw := range []string{
		`{"seq":1,"type":"event","event":"continued","body":{"threadId":1}}`,
		`{"seq":2,"type":"event","event":"stopped","body":{"reason":"breakpoint","threadId":2}}`,
	} {
		result, err := s.handleDebugAdapterMessage(context.Background(), callReq(map[string]any{"message": raw}))
		require.NoError(t, err)
		require.False(t, result.IsError)
	}

	assert.Equal(t, types.ModePaused, s.coordinator.Mode())
	assert.Equal(t, 2, s.coordinator.StopThreadID())
	assert.True(t, s.coordinator.ThreadsReloading())
}

func TestDebugAdapterMessageReturnsSnapshot(t *testing.T) {
	s := newTestServer(t)

	raw := `{"seq":1,"type":"response","command":"threads","request_seq":1,"success":true,` +
		`"body":{"threads":[{"id":3,"name":"main"}]}}`
	result, err := s.handleDebugAdapterMessage(context.Background(), callReq(map[string]any{"message": raw}))
	require.NoError(t, err)
	require.False(t, result.IsError)

	var snap types.SessionSnapshot
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &snap))
	require.Len(t, snap.Threads, 1)
	assert.Equal(t, "main", snap.Threads[0].Name)
}

func TestDebugAdapterMessageRejectsMalformed(t *testing.T) {
	s := newTestServer(t)

	result, err := s.handleDebugAdapterMessage(context.Background(), callReq(map[string]any{"message": "{not json"}))
	require.NoError(t, err)
	assert.True(t, result.IsError)

	result, err = s.handleDebugAdapterMessage(context.Background(), callReq(nil))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestDebugStateSnapshot(t *testing.T) {
	s := newTestServer(t)

	result, err := s.handleDebugState(context.Background(), callReq(nil))
	require.NoError(t, err)

	var snap types.SessionSnapshot
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &snap))
	assert.Equal(t, types.ModeStopped, snap.Mode)
	assert.Empty(t, snap.Threads)
}
