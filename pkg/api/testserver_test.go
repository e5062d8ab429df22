package api

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/SamMauldin/super-sorting-system/pkg/config"
	"github.com/SamMauldin/super-sorting-system/pkg/state"
)

// newTestServer builds a Server over a fresh State with one key
// registered per scope, returning the keys so tests can address each
// scope directly.
func newTestServer(t *testing.T) (*Server, *state.State, config.AuthConfig) {
	t.Helper()

	keys := config.AuthConfig{
		AdminAPIKeys:      []uuid.UUID{uuid.New()},
		AgentAPIKeys:      []uuid.UUID{uuid.New()},
		AutomationAPIKeys: []uuid.UUID{uuid.New()},
		DataAPIKeys:       []uuid.UUID{uuid.New()},
	}
	cfg := &config.Config{Host: "0.0.0.0", Port: 6322, Auth: keys}
	st := state.New()
	return NewServer(cfg, st), st, keys
}

// doRequest serializes body (if any) as JSON and drives it through
// the server's full Echo router, returning the recorded response.
func doRequest(t *testing.T, s *Server, method, path string, apiKey uuid.UUID, agentID *uuid.UUID, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode request body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if apiKey != (uuid.UUID{}) {
		req.Header.Set(apiKeyHeader, apiKey.String())
	}
	if agentID != nil {
		req.Header.Set(agentIDHeader, agentID.String())
	}
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)
	return rec
}
