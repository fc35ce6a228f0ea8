package mcp_test

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	reelmcp "github.com/aretw0/reel/pkg/adapters/mcp"
	"github.com/aretw0/reel/pkg/adapters/memory"
	"github.com/aretw0/reel/pkg/domain"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rooftop = `
name: rooftop
title: Rooftop Standoff
cast:
  - id: Kai
steps:
  - box: true
  - wait: 1
  - say: {speaker: Kai, text: "Now!"}
  - wait: 2.5
  - box: false
`

func newServer(t *testing.T) *reelmcp.Server {
	t.Helper()
	loader, err := memory.NewLoader(domain.NewSequence(domain.Meta{
		Name:  "rooftop",
		Title: "Rooftop Standoff",
		Cast:  []domain.Character{{ID: "Kai", Role: "lead"}},
	},
		domain.Box(true),
		domain.Seconds(1),
		domain.Say("Kai", "Now!"),
		domain.Seconds(2.5),
		domain.Box(false),
	))
	require.NoError(t, err)
	return reelmcp.NewServer(loader)
}

func call(t *testing.T, s *reelmcp.Server, tool string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	registered := s.MCPServer().GetTool(tool)
	require.NotNil(t, registered, "tool %s not registered", tool)

	var req mcp.CallToolRequest
	req.Params.Name = tool
	req.Params.Arguments = args
	res, err := registered.Handler(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, res)
	return res
}

func text(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	return mcp.GetTextFromContent(res.Content[0])
}

func TestServer_ListSequences(t *testing.T) {
	res := call(t, newServer(t), "list_sequences", nil)
	require.False(t, res.IsError, text(t, res))

	list, ok := res.StructuredContent.(reelmcp.ListResponse)
	require.True(t, ok)
	assert.Equal(t, []string{"rooftop"}, list.Sequences)
}

func TestServer_InspectSequence(t *testing.T) {
	res := call(t, newServer(t), "inspect_sequence", map[string]any{"name": "rooftop"})
	require.False(t, res.IsError, text(t, res))

	view, ok := res.StructuredContent.(reelmcp.SequenceView)
	require.True(t, ok)
	assert.Equal(t, "Rooftop Standoff", view.Title)
	assert.Equal(t, 5, view.Steps)
	assert.InDelta(t, 3.5, view.Duration, 1e-9)
	require.Len(t, view.Timeline, 5)
	assert.Equal(t, "dialogue", view.Timeline[2].Kind)
	assert.InDelta(t, 1.0, view.Timeline[2].Offset, 1e-9)
	assert.InDelta(t, 3.5, view.Timeline[4].Offset, 1e-9)
}

func TestServer_InspectUnknownSequence(t *testing.T) {
	res := call(t, newServer(t), "inspect_sequence", map[string]any{"name": "missing"})
	assert.True(t, res.IsError)
	assert.Contains(t, text(t, res), "sequence not found")
}

func TestServer_ValidateScript(t *testing.T) {
	s := newServer(t)

	res := call(t, s, "validate_script", map[string]any{"script": rooftop})
	require.False(t, res.IsError, text(t, res))
	ok, _ := res.StructuredContent.(reelmcp.ValidationResponse)
	assert.True(t, ok.Valid)
	assert.Equal(t, "rooftop", ok.Name)
	assert.Equal(t, 5, ok.Steps)

	broken := strings.Replace(rooftop, "wait: 1", "wait: -1", 1)
	broken = strings.Replace(broken, "speaker: Kai", "speaker: Nobody", 1)
	res = call(t, s, "validate_script", map[string]any{"script": broken})
	require.False(t, res.IsError, text(t, res))
	bad, _ := res.StructuredContent.(reelmcp.ValidationResponse)
	assert.False(t, bad.Valid)
	assert.GreaterOrEqual(t, len(bad.Problems), 2, bad.Problems)

	res = call(t, s, "validate_script", map[string]any{"script": "  "})
	assert.True(t, res.IsError)
}

func TestServer_ExportSequence(t *testing.T) {
	s := newServer(t)

	res := call(t, s, "export_sequence", map[string]any{"name": "rooftop"})
	require.False(t, res.IsError, text(t, res))
	assert.Contains(t, text(t, res), "name: rooftop")
	assert.Contains(t, text(t, res), "wait: 2.5")

	res = call(t, s, "export_sequence", map[string]any{"name": "rooftop", "format": "mermaid"})
	require.False(t, res.IsError, text(t, res))
	assert.True(t, strings.HasPrefix(text(t, res), "gantt"), text(t, res))

	res = call(t, s, "export_sequence", map[string]any{"name": "rooftop", "format": "pdf"})
	assert.True(t, res.IsError)

	res = call(t, s, "export_sequence", map[string]any{})
	assert.True(t, res.IsError)
}

func TestServer_ToolsListOverJSONRPC(t *testing.T) {
	s := newServer(t)
	msg := s.MCPServer().HandleMessage(context.Background(),
		json.RawMessage(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`))

	raw, err := json.Marshal(msg)
	require.NoError(t, err)

	var resp struct {
		Result struct {
			Tools []struct {
				Name string `json:"name"`
			} `json:"tools"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal(raw, &resp))

	names := make([]string, 0, len(resp.Result.Tools))
	for _, tool := range resp.Result.Tools {
		names = append(names, tool.Name)
	}
	assert.Equal(t, []string{"export_sequence", "inspect_sequence", "list_sequences", "validate_script"}, names)
}

func TestServer_LibraryResource(t *testing.T) {
	s := newServer(t)
	msg := s.MCPServer().HandleMessage(context.Background(),
		json.RawMessage(`{"jsonrpc":"2.0","id":2,"method":"resources/read","params":{"uri":"reel://sequences"}}`))

	raw, err := json.Marshal(msg)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `[\"rooftop\"]`)
}

func TestServer_SSEHandler(t *testing.T) {
	s := newServer(t)
	srv := httptest.NewServer(nil)
	defer srv.Close()
	srv.Config.Handler = s.Handler(srv.URL)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/sse", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))

	scanner := bufio.NewScanner(resp.Body)
	var lines []string
	for scanner.Scan() && len(lines) < 2 {
		if line := scanner.Text(); line != "" {
			lines = append(lines, line)
		}
	}
	require.Len(t, lines, 2)
	assert.Equal(t, "event: endpoint", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "data: "+srv.URL+"/message?sessionId="), lines[1])

	optReq, err := http.NewRequest(http.MethodOptions, srv.URL+"/message", nil)
	require.NoError(t, err)
	optResp, err := http.DefaultClient.Do(optReq)
	require.NoError(t, err)
	optResp.Body.Close()
	assert.Equal(t, http.StatusOK, optResp.StatusCode)
}
