package web_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthz(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/healthz")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var body map[string]string
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
}

func TestMetricsEndpoint(t *testing.T) {
	ts := newWebTestServer(t)
	ts.register("bob", "secret")
	ts.get("/game?difficulty=easy")

	rr := ts.get("/metrics")
	require.Equal(t, http.StatusOK, rr.Code)

	body := rr.Body.String()
	assert.Contains(t, body, "scramble_auth_registrations_total 1")
	assert.Contains(t, body, `scramble_game_started_total{daily="false",difficulty="easy"} 1`)
	assert.Contains(t, body, `route="/create-account"`)
}

func TestRequestIDEchoed(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/")
	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
}

func TestUnknownRouteNotFound(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/no-such-page")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestWrongMethodRejected(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/submit")
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}
