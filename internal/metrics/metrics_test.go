package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistersOnDedicatedRegistry(t *testing.T) {
	first, err := New(Options{})
	require.NoError(t, err)
	second, err := New(Options{})
	require.NoError(t, err)

	assert.NotSame(t, first.Registry(), second.Registry())
}

func TestNewFailsOnDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := New(Options{Registry: reg})
	require.NoError(t, err)

	_, err = New(Options{Registry: reg})
	assert.Error(t, err)
}

func TestDomainCounters(t *testing.T) {
	m := NewForTest()

	m.GameStarted("easy", false)
	m.GameStarted("medium", true)
	m.GameSubmitted("easy", true)
	m.WordFallback("hard", "unavailable")
	m.Registered()
	m.LoginAttempt(true)
	m.LoginAttempt(false)
	m.LoginAttempt(false)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.GamesStarted.WithLabelValues("easy", "false")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.GamesStarted.WithLabelValues("medium", "true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.GamesSubmitted.WithLabelValues("easy", "true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.WordFallbacks.WithLabelValues("hard", "unavailable")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Registrations))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Logins.WithLabelValues("success")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Logins.WithLabelValues("failure")))
}

func TestHandlerExposesCounters(t *testing.T) {
	m := NewForTest()
	m.Registered()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "scramble_auth_registrations_total 1")
}
