package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mcoot/wordscramble/internal/services/auth"
	"github.com/mcoot/wordscramble/internal/web/middleware"
	"github.com/mcoot/wordscramble/internal/web/templates/layout"
	"github.com/mcoot/wordscramble/internal/web/templates/pages"
)

const (
	missingCredentialsMessage = "Username and password are required"
	passwordTooLongMessage    = "Password is too long"
)

// AuthHandler handles authentication pages and actions
type AuthHandler struct {
	authService *auth.Service
	logger      *slog.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *auth.Service, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// RegisterPage renders the registration page
func (h *AuthHandler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	if middleware.GetSession(r.Context()) != nil {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	data := pages.RegisterData{
		PageData: layout.PageData{
			Title: "Register",
			Flash: middleware.GetFlash(r.Context()),
		},
	}
	render(w, r, http.StatusOK, pages.Register(data))
}

// CreateAccount handles registration form submission
func (h *AuthHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	username, password, ok := credentials(r)
	if !ok {
		badRequest(w, missingCredentialsMessage)
		return
	}

	_, session, err := h.authService.Register(r.Context(), username, password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUsernameExists):
			render(w, r, http.StatusConflict, pages.Register(pages.RegisterData{
				PageData: layout.PageData{Title: "Register"},
				Username: username,
				Error:    "Username already exists",
			}))
		case errors.Is(err, auth.ErrMissingCredentials):
			badRequest(w, missingCredentialsMessage)
		case errors.Is(err, auth.ErrPasswordTooLong):
			badRequest(w, passwordTooLongMessage)
		default:
			h.logger.Error("registration failed",
				slog.String("username", username),
				slog.String("error", err.Error()),
			)
			renderError(w, r, http.StatusInternalServerError, "Could not create account")
		}
		return
	}

	middleware.SetSessionCookie(w, session.Token, h.authService.SessionDuration())
	middleware.SetFlash(w, "success", "Welcome, "+session.Username+"!")
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// Login handles login form submission
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	username, password, ok := credentials(r)
	if !ok {
		badRequest(w, missingCredentialsMessage)
		return
	}

	_, session, err := h.authService.Login(r.Context(), username, password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials):
			render(w, r, http.StatusUnauthorized, pages.Login(pages.LoginData{
				PageData: layout.PageData{Title: "Login"},
				Username: username,
				Error:    "Invalid credentials",
			}))
		case errors.Is(err, auth.ErrMissingCredentials):
			badRequest(w, missingCredentialsMessage)
		default:
			h.logger.Error("login failed",
				slog.String("username", username),
				slog.String("error", err.Error()),
			)
			renderError(w, r, http.StatusInternalServerError, "Could not log in")
		}
		return
	}

	middleware.SetSessionCookie(w, session.Token, h.authService.SessionDuration())
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// Logout deletes the session and clears the cookie
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(middleware.SessionCookieName); err == nil {
		if err := h.authService.Logout(r.Context(), cookie.Value); err != nil {
			h.logger.Warn("failed to delete session", slog.String("error", err.Error()))
		}
	}

	middleware.ClearSessionCookie(w)
	middleware.SetFlash(w, "info", "You have been logged out")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// credentials reads the username and password fields of a form post
func credentials(r *http.Request) (string, string, bool) {
	if err := r.ParseForm(); err != nil {
		return "", "", false
	}
	username := strings.TrimSpace(r.PostFormValue("username"))
	password := r.PostFormValue("password")
	return username, password, username != "" && password != ""
}
