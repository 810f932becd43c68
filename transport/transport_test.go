package transport_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tickforge/engine/engine"
	"github.com/tickforge/engine/session"
	"github.com/tickforge/engine/transport"
)

func TestHealthEndpointReturnsOK(t *testing.T) {
	host := session.NewHost()
	defer host.Shutdown(time.Second)
	api := transport.NewAPIServer(host, nil, 0)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	api.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSnapshotEndpointReturnsSessionState(t *testing.T) {
	host := session.NewHost()
	defer host.Shutdown(time.Second)
	sess := host.Spawn("match-1", engine.Options{})
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, sess.Start(ctx))
	require.NoError(t, sess.Update(ctx, 4))

	api := transport.NewAPIServer(host, nil, 0)
	req := httptest.NewRequest(http.MethodGet, "/sessions/match-1", nil)
	rec := httptest.NewRecorder()
	api.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var snap session.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.Equal(t, int64(4), snap.TotalTicks)
}

func TestSnapshotEndpointReturns404ForUnknownSession(t *testing.T) {
	host := session.NewHost()
	defer host.Shutdown(time.Second)
	api := transport.NewAPIServer(host, nil, 0)

	req := httptest.NewRequest(http.MethodGet, "/sessions/nonexistent", nil)
	rec := httptest.NewRecorder()
	api.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMetricsEndpointExposesPrometheusFormat(t *testing.T) {
	host := session.NewHost()
	defer host.Shutdown(time.Second)
	api := transport.NewAPIServer(host, nil, 0)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	api.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "# HELP")
}
