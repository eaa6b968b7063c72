package handler

import (
	"net/http"

	"github.com/mcoot/wordscramble/internal/api/apierr"
	"github.com/mcoot/wordscramble/internal/api/middleware"
	"github.com/mcoot/wordscramble/internal/api/request"
	"github.com/mcoot/wordscramble/internal/api/response"
	"github.com/mcoot/wordscramble/internal/model"
	"github.com/mcoot/wordscramble/internal/services/game"
)

// GameHandler handles game-related endpoints
type GameHandler struct {
	gameController *game.Controller
}

// NewGameHandler creates a new game handler
func NewGameHandler(gameController *game.Controller) *GameHandler {
	return &GameHandler{
		gameController: gameController,
	}
}

// Start handles POST /api/v1/games
func (h *GameHandler) Start(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())

	var req request.StartGameRequest
	if err := decodeJSON(r, &req, true); err != nil {
		apierr.WriteError(w, err)
		return
	}

	round, err := h.gameController.Start(r.Context(), session, model.ParseDifficulty(req.Difficulty))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.RoundFromModel(round))
}

// StartDaily handles POST /api/v1/games/daily
func (h *GameHandler) StartDaily(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())

	round, err := h.gameController.StartDaily(r.Context(), session)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.RoundFromModel(round))
}

// Submit handles POST /api/v1/games/submit
func (h *GameHandler) Submit(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())

	var req request.SubmitRequest
	if err := decodeJSON(r, &req, false); err != nil {
		apierr.WriteError(w, err)
		return
	}

	result, err := h.gameController.Submit(r.Context(), session, req.Answer)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ResultFromModel(result))
}
