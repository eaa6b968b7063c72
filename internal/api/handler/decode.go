package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/mcoot/wordscramble/internal/api/apierr"
	"github.com/mcoot/wordscramble/internal/api/request"
)

const maxBodyBytes = 1 << 20

var errInvalidBody = apierr.NewInvalidRequestError("invalid request body")

// decodeJSON reads the request body into v. An empty body leaves v untouched
// when optional is set and is rejected otherwise.
func decodeJSON(r *http.Request, v any, optional bool) error {
	err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(v)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, io.EOF) && optional:
		return nil
	default:
		return errInvalidBody
	}
}

// decodeCredentials reads a username/password body, trimming the username
func decodeCredentials(r *http.Request) (string, string, error) {
	var req request.Credentials
	if err := decodeJSON(r, &req, false); err != nil {
		return "", "", err
	}

	username := strings.TrimSpace(req.Username)
	if username == "" {
		return "", "", apierr.NewInvalidRequestError("username is required")
	}
	if req.Password == "" {
		return "", "", apierr.NewInvalidRequestError("password is required")
	}
	return username, req.Password, nil
}
