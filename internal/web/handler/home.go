package handler

import (
	"net/http"

	"github.com/mcoot/wordscramble/internal/web/middleware"
	"github.com/mcoot/wordscramble/internal/web/templates/layout"
	"github.com/mcoot/wordscramble/internal/web/templates/pages"
)

// HomeHandler handles the home page
type HomeHandler struct{}

// NewHomeHandler creates a new HomeHandler
func NewHomeHandler() *HomeHandler {
	return &HomeHandler{}
}

// Home renders the login page, or sends authenticated users to their dashboard
func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	if middleware.GetSession(r.Context()) != nil {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	data := pages.LoginData{
		PageData: layout.PageData{
			Title: "Login",
			Flash: middleware.GetFlash(r.Context()),
		},
	}

	render(w, r, http.StatusOK, pages.Login(data))
}
