package handler

import (
	"net/http"
	"strconv"

	"github.com/mcoot/wordscramble/internal/api/apierr"
	"github.com/mcoot/wordscramble/internal/api/middleware"
	"github.com/mcoot/wordscramble/internal/api/response"
	"github.com/mcoot/wordscramble/internal/services/auth"
	"github.com/mcoot/wordscramble/internal/services/game"
)

// PlayerHandler handles player-related endpoints
type PlayerHandler struct {
	authService    *auth.Service
	gameController *game.Controller
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(authService *auth.Service, gameController *game.Controller) *PlayerHandler {
	return &PlayerHandler{
		authService:    authService,
		gameController: gameController,
	}
}

// Register handles POST /api/v1/players/register
func (h *PlayerHandler) Register(w http.ResponseWriter, r *http.Request) {
	username, password, err := decodeCredentials(r)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	user, session, err := h.authService.Register(r.Context(), username, password)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.AuthResponseFromSession(user, session))
}

// Login handles POST /api/v1/players/login
func (h *PlayerHandler) Login(w http.ResponseWriter, r *http.Request) {
	username, password, err := decodeCredentials(r)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	user, session, err := h.authService.Login(r.Context(), username, password)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AuthResponseFromSession(user, session))
}

// Logout handles POST /api/v1/players/logout. It succeeds without a session.
func (h *PlayerHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.authService.Logout(r.Context(), middleware.ExtractToken(r)); err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.NoContent(w)
}

// GetMe handles GET /api/v1/players/me
func (h *PlayerHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())

	user, err := h.authService.GetUser(r.Context(), session)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MeResponse{Player: response.PlayerFromModel(user)})
}

// History handles GET /api/v1/players/me/history?limit=N
func (h *PlayerHandler) History(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())

	limit := game.DefaultRecentGames
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			apierr.WriteError(w, apierr.NewInvalidRequestError("limit must be a non-negative integer"))
			return
		}
		limit = n
	}

	games, err := h.gameController.History(r.Context(), session.Username, limit)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.HistoryFromModel(games))
}
