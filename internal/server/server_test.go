package server

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	s := New(Config{})
	if s == nil {
		t.Fatal("New() returned nil")
	}
	if s.maxWorkers < 1 {
		t.Fatalf("New() should default maxWorkers to at least 1, got %d", s.maxWorkers)
	}

	s = New(Config{MaxWorkers: 3, Debug: true})
	if s.maxWorkers != 3 || !s.debug {
		t.Errorf("New() ignored config: maxWorkers=%d debug=%v", s.maxWorkers, s.debug)
	}
}

func TestHandleRequest_Initialize(t *testing.T) {
	s := New(Config{})
	req := &MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "initialize",
	}

	resp := s.handleRequest(req)

	if resp == nil {
		t.Fatal("handleRequest returned nil")
	}
	if resp.Error != nil {
		t.Fatalf("Unexpected error: %v", resp.Error)
	}
	if resp.ID != 1 {
		t.Errorf("ID: got %v, want 1", resp.ID)
	}

	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatal("Result should be a map")
	}

	if result["protocolVersion"] != "2024-11-05" {
		t.Errorf("protocolVersion: got %v", result["protocolVersion"])
	}
}

func TestHandleRequest_Ping(t *testing.T) {
	s := New(Config{})
	req := &MCPRequest{
		JSONRPC: "2.0",
		ID:      "ping-1",
		Method:  "ping",
	}

	resp := s.handleRequest(req)

	if resp == nil {
		t.Fatal("handleRequest returned nil")
	}
	if resp.Error != nil {
		t.Fatalf("Unexpected error: %v", resp.Error)
	}
	if resp.ID != "ping-1" {
		t.Errorf("ID: got %v, want ping-1", resp.ID)
	}
}

func TestHandleRequest_ToolsList(t *testing.T) {
	s := New(Config{})
	req := &MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "tools/list",
	}

	resp := s.handleRequest(req)

	if resp == nil {
		t.Fatal("handleRequest returned nil")
	}
	if resp.Error != nil {
		t.Fatalf("Unexpected error: %v", resp.Error)
	}

	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatal("Result should be a map")
	}

	tools, ok := result["tools"]
	if !ok {
		t.Fatal("Result should contain 'tools' key")
	}

	toolsList, ok := tools.([]Tool)
	if !ok {
		t.Fatal("tools should be a slice of Tool")
	}

	if len(toolsList) != len(GetToolDefinitions()) {
		t.Errorf("Expected %d tools, got %d", len(GetToolDefinitions()), len(toolsList))
	}
}

func TestHandleRequest_NotificationsInitialized(t *testing.T) {
	s := New(Config{})
	req := &MCPRequest{
		JSONRPC: "2.0",
		Method:  "notifications/initialized",
	}

	resp := s.handleRequest(req)

	// Notifications don't get responses
	if resp != nil {
		t.Error("notifications/initialized should return nil response")
	}
}

func TestHandleRequest_MethodNotFound(t *testing.T) {
	s := New(Config{})
	req := &MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "nonexistent/method",
	}

	resp := s.handleRequest(req)

	if resp == nil {
		t.Fatal("handleRequest returned nil")
	}
	if resp.Error == nil {
		t.Fatal("Expected error for unknown method")
	}
	if resp.Error.Code != -32601 {
		t.Errorf("Error code: got %d, want -32601", resp.Error.Code)
	}
}

func TestHandleInitialize(t *testing.T) {
	s := New(Config{})
	req := &MCPRequest{
		JSONRPC: "2.0",
		ID:      "init-1",
	}

	resp := s.handleInitialize(req)

	if resp.ID != "init-1" {
		t.Errorf("ID: got %v, want init-1", resp.ID)
	}
	if resp.JSONRPC != "2.0" {
		t.Errorf("JSONRPC: got %s, want 2.0", resp.JSONRPC)
	}

	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatal("Result should be a map")
	}

	serverInfo, ok := result["serverInfo"].(map[string]interface{})
	if !ok {
		t.Fatal("serverInfo should be a map")
	}

	if serverInfo["name"] != "texture-prep-mcp" {
		t.Errorf("serverInfo.name: got %v", serverInfo["name"])
	}
	if serverInfo["version"] != Version {
		t.Errorf("serverInfo.version: got %v", serverInfo["version"])
	}
}

// serveLines runs Serve over the given request lines and decodes every
// response written.
func serveLines(t *testing.T, s *Server, lines ...string) []MCPResponse {
	t.Helper()

	var out bytes.Buffer
	if err := s.Serve(strings.NewReader(strings.Join(lines, "\n")), &out); err != nil {
		t.Fatalf("Serve failed: %v", err)
	}

	var resps []MCPResponse
	dec := json.NewDecoder(&out)
	for dec.More() {
		var resp MCPResponse
		if err := dec.Decode(&resp); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		resps = append(resps, resp)
	}
	return resps
}

func TestServe(t *testing.T) {
	resps := serveLines(t, New(Config{}),
		`{"jsonrpc":"2.0","id":1,"method":"initialize"}`,
		`{"jsonrpc":"2.0","method":"notifications/initialized"}`,
		``,
		`not json`,
		`{"jsonrpc":"2.0","id":"ping-2","method":"ping"}`,
		`{"jsonrpc":"2.0","id":null,"method":"nonexistent/method"}`,
	)

	if len(resps) != 4 {
		t.Fatalf("expected 4 responses, got %d: %+v", len(resps), resps)
	}

	tests := []struct {
		name     string
		resp     MCPResponse
		wantID   interface{}
		wantCode int
	}{
		{"initialize", resps[0], float64(1), 0},
		{"malformed line", resps[1], nil, -32700},
		{"string id", resps[2], "ping-2", 0},
		{"unknown method", resps[3], nil, -32601},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.resp.JSONRPC != "2.0" {
				t.Errorf("JSONRPC: got %s, want 2.0", tt.resp.JSONRPC)
			}
			if tt.resp.ID != tt.wantID {
				t.Errorf("ID: got %v (%T), want %v (%T)", tt.resp.ID, tt.resp.ID, tt.wantID, tt.wantID)
			}
			code := 0
			if tt.resp.Error != nil {
				code = tt.resp.Error.Code
			}
			if code != tt.wantCode {
				t.Errorf("Error code: got %d, want %d", code, tt.wantCode)
			}
		})
	}
}

func TestServe_ToolsCall(t *testing.T) {
	resps := serveLines(t, New(Config{}),
		`{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"texture_histogram","arguments":{"path":"/nonexistent.png"}}}`,
		`{"jsonrpc":"2.0","id":2,"method":"tools/call","params":"not an object"}`,
	)

	if len(resps) != 2 {
		t.Fatalf("expected 2 responses, got %d", len(resps))
	}

	missing := resps[0].Error
	if missing == nil || missing.Code != -32000 {
		t.Fatalf("missing file should yield -32000, got %+v", missing)
	}
	if data, _ := missing.Data.(string); !strings.Contains(data, "nonexistent.png") {
		t.Errorf("error data should name the file, got %v", missing.Data)
	}

	if bad := resps[1].Error; bad == nil || bad.Code != -32602 {
		t.Errorf("malformed params should yield -32602, got %+v", bad)
	}
}
