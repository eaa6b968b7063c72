package apierr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/wordscramble/internal/model"
	"github.com/mcoot/wordscramble/internal/services/auth"
)

func TestWriteErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"no active game", model.ErrNoActiveGame, http.StatusConflict, CodeNoActiveGame},
		{"wrapped no active game", fmt.Errorf("submit: %w", model.ErrNoActiveGame), http.StatusConflict, CodeNoActiveGame},
		{"user not found", model.ErrUserNotFound, http.StatusNotFound, CodeUserNotFound},
		{"username exists", auth.ErrUsernameExists, http.StatusConflict, CodeUsernameExists},
		{"invalid credentials", auth.ErrInvalidCredentials, http.StatusUnauthorized, CodeInvalidCredentials},
		{"invalid session", auth.ErrInvalidSession, http.StatusUnauthorized, CodeUnauthorized},
		{"missing credentials", auth.ErrMissingCredentials, http.StatusBadRequest, CodeInvalidRequest},
		{"password too long", auth.ErrPasswordTooLong, http.StatusBadRequest, CodeInvalidRequest},
		{"invalid request", NewInvalidRequestError("bad"), http.StatusBadRequest, CodeInvalidRequest},
		{"unauthorized", NewUnauthorizedError(), http.StatusUnauthorized, CodeUnauthorized},
		{"unknown", errors.New("disk on fire"), http.StatusInternalServerError, CodeInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			WriteError(rr, tt.err)

			assert.Equal(t, tt.status, rr.Code)
			assert.Equal(t, tt.status, Status(tt.err))
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

			var body ErrorResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
			assert.Equal(t, tt.code, body.Error.Code)
			assert.NotEmpty(t, body.Error.Message)
		})
	}
}

func TestInternalErrorsHideDetails(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteError(rr, errors.New("connection refused to 10.0.0.1"))

	assert.NotContains(t, rr.Body.String(), "10.0.0.1")
}
