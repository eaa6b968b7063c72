package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/mcoot/wordscramble/internal/model"
	"github.com/mcoot/wordscramble/internal/services/auth"
)

// SessionCookieName is the cookie carrying the session token
const SessionCookieName = "session"

type contextKey string

const (
	sessionContextKey contextKey = "session"
)

// GetSession retrieves the authenticated session from the request context
// Returns nil if no user is authenticated
func GetSession(ctx context.Context) *model.Session {
	session, _ := ctx.Value(sessionContextKey).(*model.Session)
	return session
}

// WithSession returns a copy of ctx carrying session
func WithSession(ctx context.Context, session *model.Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, session)
}

// Username returns the authenticated username, or "" when anonymous
func Username(ctx context.Context) string {
	if session := GetSession(ctx); session != nil {
		return session.Username
	}
	return ""
}

// Auth returns middleware that requires authentication
// Redirects to the login page if not authenticated
func Auth(authService *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session := loadSession(r, authService)
			if session == nil {
				http.Redirect(w, r, "/", http.StatusSeeOther)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), session)))
		})
	}
}

// OptionalAuth returns middleware that attempts authentication but doesn't require it
// Sets the session in context if authenticated, nil otherwise
func OptionalAuth(authService *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session := loadSession(r, authService)
			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), session)))
		})
	}
}

func loadSession(r *http.Request, authService *auth.Service) *model.Session {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return nil
	}

	session, err := authService.ValidateSession(r.Context(), cookie.Value)
	if err != nil {
		return nil
	}

	return session
}

// SetSessionCookie stores the session token in the browser
func SetSessionCookie(w http.ResponseWriter, token string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie removes the session cookie from the browser
func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
