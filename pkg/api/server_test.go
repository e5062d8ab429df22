package api

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestHealthHandlerIsUnauthenticated(t *testing.T) {
	s, _, _ := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/health", uuid.UUID{}, nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAgentEndpointRejectsMissingKey(t *testing.T) {
	s, _, _ := newTestServer(t)

	rec := doRequest(t, s, http.MethodPost, "/agent/register", uuid.UUID{}, nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAgentEndpointRejectsWrongScopeKey(t *testing.T) {
	s, _, keys := newTestServer(t)

	rec := doRequest(t, s, http.MethodPost, "/agent/register", keys.AdminAPIKeys[0], nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminStatsRequiresAdminKey(t *testing.T) {
	s, _, keys := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/admin/stats", keys.AutomationAPIKeys[0], nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(t, s, http.MethodGet, "/admin/stats", keys.AdminAPIKeys[0], nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestDataEndpointsServeEmbeddedAssets(t *testing.T) {
	s, _, keys := newTestServer(t)

	for _, path := range []string{"/data/items", "/data/enchantments", "/data/recipes"} {
		rec := doRequest(t, s, http.MethodGet, path, keys.DataAPIKeys[0], nil, nil)
		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.NotEmpty(t, rec.Body.Bytes(), path)
	}
}
