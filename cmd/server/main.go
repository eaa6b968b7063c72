package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata"

	"github.com/spf13/cobra"

	"github.com/mcoot/wordscramble/internal/api"
	"github.com/mcoot/wordscramble/internal/config"
	"github.com/mcoot/wordscramble/internal/factory"
	"github.com/mcoot/wordscramble/internal/metrics"
	"github.com/mcoot/wordscramble/internal/web"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:   "scramble-server",
		Short: "Serve the word scramble game",
		Long: `scramble-server serves the word scramble game: the HTML interface,
the JSON API under /api/v1, /healthz and Prometheus metrics on /metrics.

Every flag can also be set with a SCRAMBLE_ environment variable or in a config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Flags(), configFile)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVarP(&configFile, "config", "c", "", "config file (yaml, json or toml)")
	config.BindFlags(cmd.Flags())

	cmd.CompletionOptions.HiddenDefaultCmd = true

	return cmd
}

func run(ctx context.Context, cfg *config.Config) error {
	level, err := cfg.SlogLevel()
	if err != nil {
		return err
	}

	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	m, err := metrics.New(metrics.Options{IncludeRuntime: true})
	if err != nil {
		return err
	}

	factoryCfg, err := cfg.Factory(logger)
	if err != nil {
		return err
	}
	factoryCfg.Metrics = m

	// Create application factory
	app, err := factory.New(factoryCfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Warn("failed to close storage", slog.String("error", err.Error()))
		}
	}()

	// Create API router
	apiRouter := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		AuthService:    app.AuthService,
		GameController: app.GameController,
		Metrics:        m,
		HealthCheck:    app.HealthCheck,
	})

	// Create web router
	webRouter := web.NewRouter(web.RouterConfig{
		Logger:         logger,
		AuthService:    app.AuthService,
		GameController: app.GameController,
		Metrics:        m,
		HealthCheck:    app.HealthCheck,
	})

	// Combine routers
	mux := http.NewServeMux()
	mux.Handle("/api/", apiRouter)
	mux.Handle("/", webRouter)

	// Handle graceful shutdown
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("server starting",
		slog.String("addr", cfg.Addr()),
		slog.String("storage", cfg.Storage),
		slog.String("session_store", cfg.SessionStore),
	)

	if err := api.NewServer(mux, cfg.Server(), logger).Run(ctx); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("server stopped")
	return nil
}
