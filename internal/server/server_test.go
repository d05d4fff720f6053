package server

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/shapegen/internal/config"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	s, err := New(config.Default(), log.New(io.Discard))
	require.NoError(t, err)
	return s
}

// roundTrip feeds lines to Serve and decodes every response line.
func roundTrip(t *testing.T, s *Server, lines ...string) []MCPResponse {
	t.Helper()
	var out bytes.Buffer
	require.NoError(t, s.Serve(strings.NewReader(strings.Join(lines, "\n")+"\n"), &out))

	var resps []MCPResponse
	dec := json.NewDecoder(&out)
	for dec.More() {
		var r MCPResponse
		require.NoError(t, dec.Decode(&r))
		resps = append(resps, r)
	}
	return resps
}

func TestNew(t *testing.T) {
	s := newTestServer(t)
	assert.NotNil(t, s.classes)
	assert.Equal(t, 100, s.defaults.CanvasSize)
}

func TestNew_InvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Generate.CanvasSize = 0
	_, err := New(cfg, nil)
	assert.Error(t, err)
}

func TestMCPRequest_Unmarshal(t *testing.T) {
	tests := []struct {
		name       string
		json       string
		wantID     interface{}
		wantMethod string
	}{
		{"string id", `{"jsonrpc":"2.0","id":"test-1","method":"tools/list"}`, "test-1", "tools/list"},
		{"number id", `{"jsonrpc":"2.0","id":42,"method":"ping"}`, float64(42), "ping"},
		{"null id", `{"jsonrpc":"2.0","id":null,"method":"initialize"}`, nil, "initialize"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req MCPRequest
			require.NoError(t, json.Unmarshal([]byte(tt.json), &req))
			assert.Equal(t, tt.wantID, req.ID)
			assert.Equal(t, tt.wantMethod, req.Method)
			assert.Equal(t, "2.0", req.JSONRPC)
		})
	}
}

func TestServe_Initialize(t *testing.T) {
	resps := roundTrip(t, newTestServer(t),
		`{"jsonrpc":"2.0","id":1,"method":"initialize"}`,
		`{"jsonrpc":"2.0","method":"notifications/initialized"}`,
	)
	require.Len(t, resps, 1, "notifications get no response")

	result, ok := resps[0].Result.(map[string]interface{})
	require.True(t, ok)
	info := result["serverInfo"].(map[string]interface{})
	assert.Equal(t, "shapegen", info["name"])
}

func TestServe_PingAndUnknownMethod(t *testing.T) {
	resps := roundTrip(t, newTestServer(t),
		`{"jsonrpc":"2.0","id":1,"method":"ping"}`,
		`not json`,
		`{"jsonrpc":"2.0","id":2,"method":"bogus"}`,
	)
	require.Len(t, resps, 2, "malformed lines are skipped")
	assert.Nil(t, resps[0].Error)
	require.NotNil(t, resps[1].Error)
	assert.Equal(t, -32601, resps[1].Error.Code)
}

func TestErrorResponse(t *testing.T) {
	s := newTestServer(t)
	resp := s.errorResponse(7, -32602, "Invalid params", "detail")
	assert.Equal(t, "2.0", resp.JSONRPC)
	assert.Equal(t, 7, resp.ID)
	require.NotNil(t, resp.Error)
	assert.Equal(t, -32602, resp.Error.Code)
	assert.Equal(t, "detail", resp.Error.Data)
}
