package server

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	s := New(true)
	if s == nil {
		t.Fatal("New() returned nil")
	}
	if s.cache == nil || s.pipeline == nil {
		t.Fatal("New() did not wire the image cache and pipeline")
	}
}

func TestHandleRequest_Routing(t *testing.T) {
	s := New(false)

	tests := []struct {
		name      string
		method    string
		id        interface{}
		wantNil   bool
		wantError int
	}{
		{"initialize", "initialize", 1, false, 0},
		{"ping", "ping", "ping-1", false, 0},
		{"tools list", "tools/list", 2, false, 0},
		{"initialized notification", "notifications/initialized", nil, true, 0},
		{"unknown method", "resources/list", 3, false, -32601},
		{"tools call without params", "tools/call", 4, false, -32602},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := s.handleRequest(&MCPRequest{JSONRPC: "2.0", ID: tt.id, Method: tt.method})
			if tt.wantNil {
				if resp != nil {
					t.Errorf("expected no response, got %+v", resp)
				}
				return
			}
			if resp == nil {
				t.Fatal("handleRequest returned nil")
			}
			if resp.ID != tt.id {
				t.Errorf("ID: got %v, want %v", resp.ID, tt.id)
			}
			if resp.JSONRPC != "2.0" {
				t.Errorf("JSONRPC: got %s, want 2.0", resp.JSONRPC)
			}
			switch {
			case tt.wantError == 0 && resp.Error != nil:
				t.Errorf("unexpected error: %+v", resp.Error)
			case tt.wantError != 0 && (resp.Error == nil || resp.Error.Code != tt.wantError):
				t.Errorf("error: got %+v, want code %d", resp.Error, tt.wantError)
			}
		})
	}
}

func TestHandleInitialize_ServerInfo(t *testing.T) {
	s := New(false)
	resp := s.handleInitialize(&MCPRequest{JSONRPC: "2.0", ID: "init-1"})

	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatal("Result should be a map")
	}
	if result["protocolVersion"] != "2024-11-05" {
		t.Errorf("protocolVersion: got %v", result["protocolVersion"])
	}

	serverInfo, ok := result["serverInfo"].(map[string]interface{})
	if !ok {
		t.Fatal("serverInfo should be a map")
	}
	if serverInfo["name"] != Name || serverInfo["version"] != Version {
		t.Errorf("serverInfo: got %v", serverInfo)
	}
}

func TestErrorResponse_OmitsEmptyData(t *testing.T) {
	s := New(false)

	data, err := json.Marshal(s.errorResponse(7, -32601, "Method not found: x", ""))
	if err != nil {
		t.Fatalf("Failed to marshal: %v", err)
	}
	if strings.Contains(string(data), `"data"`) {
		t.Errorf("empty data should be omitted: %s", data)
	}

	data, _ = json.Marshal(s.errorResponse(7, -32000, "Tool execution failed", "boom"))
	var decoded MCPResponse
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}
	if decoded.Error == nil || decoded.Error.Data != "boom" {
		t.Errorf("error data: got %+v", decoded.Error)
	}
	if decoded.Result != nil {
		t.Errorf("error response should carry no result, got %v", decoded.Result)
	}
}

// serve runs the server over the given input lines and decodes every reply
func serve(t *testing.T, s *Server, lines ...string) []MCPResponse {
	t.Helper()

	var out bytes.Buffer
	if err := s.Serve(strings.NewReader(strings.Join(lines, "\n")), &out); err != nil {
		t.Fatalf("Serve failed: %v", err)
	}

	dec := json.NewDecoder(&out)
	var responses []MCPResponse
	for dec.More() {
		var resp MCPResponse
		if err := dec.Decode(&resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		responses = append(responses, resp)
	}
	return responses
}

func TestServe(t *testing.T) {
	responses := serve(t, New(false),
		`{"jsonrpc":"2.0","id":1,"method":"initialize"}`,
		`{"jsonrpc":"2.0","method":"notifications/initialized"}`,
		``,
		`not json`,
		`{"jsonrpc":"2.0","id":2,"method":"ping"}`,
	)

	// initialize, parse error, ping; the notification gets no reply
	if len(responses) != 3 {
		t.Fatalf("got %d responses, want 3", len(responses))
	}
	if responses[0].ID != float64(1) || responses[0].Error != nil {
		t.Errorf("initialize response: %+v", responses[0])
	}
	if responses[1].Error == nil || responses[1].Error.Code != -32700 {
		t.Errorf("parse error response: %+v", responses[1])
	}
	if responses[2].ID != float64(2) || responses[2].Error != nil {
		t.Errorf("ping response: %+v", responses[2])
	}
}

func TestServe_ToolCall(t *testing.T) {
	responses := serve(t, New(false),
		`{"jsonrpc":"2.0","id":"a","method":"tools/call","params":{"name":"mosaic_nearest","arguments":{"r":-1}}}`,
		`{"jsonrpc":"2.0","id":"b","method":"tools/call","params":{"name":"image_dimensions","arguments":{"path":"/nonexistent.png"}}}`,
	)

	if len(responses) != 2 {
		t.Fatalf("got %d responses, want 2", len(responses))
	}
	for _, resp := range responses {
		if resp.Error == nil || resp.Error.Code != -32000 {
			t.Errorf("response %v: got %+v, want tool execution failure", resp.ID, resp.Error)
		}
	}
}
