package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/wordscramble/internal/api/apierr"
	"github.com/mcoot/wordscramble/internal/api/request"
)

func newRequest(body string) *http.Request {
	return httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		optional bool
		wantErr  bool
		want     string
	}{
		{name: "valid", body: `{"difficulty":"hard"}`, want: "hard"},
		{name: "empty optional", body: "", optional: true},
		{name: "empty required", body: "", wantErr: true},
		{name: "malformed", body: `{"difficulty":`, optional: true, wantErr: true},
		{name: "wrong type", body: `{"difficulty":3}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req request.StartGameRequest
			err := decodeJSON(newRequest(tt.body), &req, tt.optional)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, http.StatusBadRequest, apierr.Status(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, req.Difficulty)
		})
	}
}

func TestDecodeCredentials(t *testing.T) {
	username, password, err := decodeCredentials(newRequest(`{"username":"  bob ","password":"secret"}`))
	require.NoError(t, err)
	assert.Equal(t, "bob", username)
	assert.Equal(t, "secret", password)

	for _, body := range []string{
		`{"username":"","password":"secret"}`,
		`{"username":"   ","password":"secret"}`,
		`{"username":"bob","password":""}`,
		`not json`,
	} {
		_, _, err := decodeCredentials(newRequest(body))
		require.Error(t, err, body)
		assert.Equal(t, http.StatusBadRequest, apierr.Status(err), body)
	}
}
