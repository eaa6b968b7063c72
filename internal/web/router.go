package web

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/wordscramble/internal/metrics"
	sharedmw "github.com/mcoot/wordscramble/internal/middleware"
	"github.com/mcoot/wordscramble/internal/services/auth"
	"github.com/mcoot/wordscramble/internal/services/game"
	"github.com/mcoot/wordscramble/internal/web/handler"
	"github.com/mcoot/wordscramble/internal/web/middleware"
)

// RouterConfig holds configuration for the web router
type RouterConfig struct {
	Logger         *slog.Logger
	AuthService    *auth.Service
	GameController *game.Controller
	Metrics        *metrics.Metrics
	HealthCheck    func(ctx context.Context) error // nil means always healthy
}

// NewRouter creates a new web router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create middleware
	flashMiddleware := middleware.Flash()
	authMiddleware := middleware.Auth(cfg.AuthService)
	optionalAuthMiddleware := middleware.OptionalAuth(cfg.AuthService)

	// Apply global middleware to all routes
	r.Use(sharedmw.RequestID)
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(sharedmw.Logging(cfg.Logger))
	r.Use(sharedmw.Metrics(cfg.Metrics))

	// Create handlers
	homeHandler := handler.NewHomeHandler()
	authHandler := handler.NewAuthHandler(cfg.AuthService, cfg.Logger)
	gameHandler := handler.NewGameHandler(cfg.GameController, cfg.Logger)

	// Operational routes
	r.HandleFunc("/healthz", healthHandler(cfg.HealthCheck)).Methods(http.MethodGet)
	r.Handle("/metrics", cfg.Metrics.Handler()).Methods(http.MethodGet)

	// Public routes (optional auth so logged-in users skip the forms)
	public := r.NewRoute().Subrouter()
	public.Use(flashMiddleware)
	public.Use(optionalAuthMiddleware)
	public.HandleFunc("/", homeHandler.Home).Methods(http.MethodGet)
	public.HandleFunc("/register", authHandler.RegisterPage).Methods(http.MethodGet)
	public.HandleFunc("/create-account", authHandler.CreateAccount).Methods(http.MethodPost)
	public.HandleFunc("/login", authHandler.Login).Methods(http.MethodPost)
	public.HandleFunc("/logout", authHandler.Logout).Methods(http.MethodGet)

	// Protected routes (require auth)
	protected := r.NewRoute().Subrouter()
	protected.Use(flashMiddleware)
	protected.Use(authMiddleware)
	protected.HandleFunc("/dashboard", gameHandler.Dashboard).Methods(http.MethodGet)
	protected.HandleFunc("/game", gameHandler.Play).Methods(http.MethodGet)
	protected.HandleFunc("/daily", gameHandler.Daily).Methods(http.MethodGet)
	protected.HandleFunc("/submit", gameHandler.Submit).Methods(http.MethodPost)

	return r
}

func healthHandler(check func(ctx context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status, code := "ok", http.StatusOK
		if check != nil {
			if err := check(r.Context()); err != nil {
				status, code = "unavailable", http.StatusServiceUnavailable
			}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": status})
	}
}
