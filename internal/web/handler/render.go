package handler

import (
	"net/http"

	"github.com/a-h/templ"

	"github.com/mcoot/wordscramble/internal/web/middleware"
	"github.com/mcoot/wordscramble/internal/web/templates/layout"
	"github.com/mcoot/wordscramble/internal/web/templates/pages"
)

// render writes an HTML component with the given status
func render(w http.ResponseWriter, r *http.Request, status int, component templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_ = component.Render(r.Context(), w)
}

// renderError renders the error page for the current user
func renderError(w http.ResponseWriter, r *http.Request, status int, message string) {
	render(w, r, status, pages.Error(pages.ErrorData{
		PageData: layout.PageData{
			Title:    "Error",
			Username: middleware.Username(r.Context()),
		},
		Status:  status,
		Message: message,
	}))
}

// badRequest writes a plain text validation failure
func badRequest(w http.ResponseWriter, message string) {
	http.Error(w, message, http.StatusBadRequest)
}
