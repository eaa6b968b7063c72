package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/mcoot/wordscramble/internal/model"
	"github.com/mcoot/wordscramble/internal/services/game"
	"github.com/mcoot/wordscramble/internal/web/middleware"
	"github.com/mcoot/wordscramble/internal/web/templates/layout"
	"github.com/mcoot/wordscramble/internal/web/templates/pages"
)

// GameHandler handles the dashboard and the play loop
type GameHandler struct {
	gameController *game.Controller
	logger         *slog.Logger
}

// NewGameHandler creates a new GameHandler
func NewGameHandler(gameController *game.Controller, logger *slog.Logger) *GameHandler {
	return &GameHandler{
		gameController: gameController,
		logger:         logger,
	}
}

// Dashboard renders the user's totals and recent games
func (h *GameHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSession(r.Context())

	dashboard, err := h.gameController.Dashboard(r.Context(), session.Username)
	if err != nil {
		h.serverError(w, r, "failed to load dashboard", err)
		return
	}

	render(w, r, http.StatusOK, pages.Dashboard(pages.DashboardData{
		PageData:    h.pageData(r, "Dashboard"),
		TotalScore:  dashboard.User.TotalScore,
		GamesPlayed: dashboard.User.GamesPlayed,
		Recent:      dashboard.Recent,
	}))
}

// Play starts a game at the requested difficulty
func (h *GameHandler) Play(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSession(r.Context())
	difficulty := model.ParseDifficulty(r.URL.Query().Get("difficulty"))

	round, err := h.gameController.Start(r.Context(), session, difficulty)
	if err != nil {
		h.serverError(w, r, "failed to start game", err)
		return
	}

	render(w, r, http.StatusOK, pages.Game(pages.GameData{
		PageData: h.pageData(r, "Play"),
		Round:    round,
	}))
}

// Daily starts today's daily challenge
func (h *GameHandler) Daily(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSession(r.Context())

	round, err := h.gameController.StartDaily(r.Context(), session)
	if err != nil {
		h.serverError(w, r, "failed to start daily challenge", err)
		return
	}

	render(w, r, http.StatusOK, pages.Game(pages.GameData{
		PageData: h.pageData(r, "Daily challenge"),
		Round:    round,
	}))
}

// Submit scores the answer against the current word
func (h *GameHandler) Submit(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSession(r.Context())
	if err := r.ParseForm(); err != nil {
		badRequest(w, "Invalid form data")
		return
	}

	result, err := h.gameController.Submit(r.Context(), session, r.PostFormValue("answer"))
	if err != nil {
		if errors.Is(err, model.ErrNoActiveGame) {
			http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
			return
		}
		h.serverError(w, r, "failed to submit answer", err)
		return
	}

	render(w, r, http.StatusOK, pages.Result(pages.ResultData{
		PageData: h.pageData(r, "Result"),
		Result:   result,
	}))
}

func (h *GameHandler) pageData(r *http.Request, title string) layout.PageData {
	return layout.PageData{
		Title:    title,
		Username: middleware.Username(r.Context()),
		Flash:    middleware.GetFlash(r.Context()),
	}
}

func (h *GameHandler) serverError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	h.logger.Error(msg,
		slog.String("username", middleware.Username(r.Context())),
		slog.String("error", err.Error()),
	)
	renderError(w, r, http.StatusInternalServerError, "Something went wrong. Please try again.")
}
