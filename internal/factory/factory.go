package factory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/mcoot/wordscramble/internal/dependencies/clock"
	"github.com/mcoot/wordscramble/internal/dependencies/random"
	"github.com/mcoot/wordscramble/internal/metrics"
	"github.com/mcoot/wordscramble/internal/services/auth"
	"github.com/mcoot/wordscramble/internal/services/daily"
	"github.com/mcoot/wordscramble/internal/services/game"
	"github.com/mcoot/wordscramble/internal/services/scoring"
	"github.com/mcoot/wordscramble/internal/services/scramble"
	"github.com/mcoot/wordscramble/internal/services/wordsource"
	"github.com/mcoot/wordscramble/internal/storage"
	"github.com/mcoot/wordscramble/internal/storage/memory"
	redisstorage "github.com/mcoot/wordscramble/internal/storage/redis"
	"github.com/mcoot/wordscramble/internal/storage/sqlite"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeSQLite = "sqlite"
)

// Session store type constants
const (
	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

// DefaultDBPath is where the SQLite database lives when no path is configured
const DefaultDBPath = "scramble.db"

// App contains all wired application components
type App struct {
	// Storage
	Storage  storage.Storage
	Sessions storage.SessionStore

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Observability
	Logger  *slog.Logger
	Metrics *metrics.Metrics

	// Services
	WordSource     *wordsource.Service
	Scrambler      *scramble.Service
	ScoringService *scoring.Service
	DailyService   *daily.Service
	AuthService    *auth.Service
	GameController *game.Controller

	closers []io.Closer
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// Metrics holds the Prometheus collectors (optional)
	// If nil, collectors are created on a fresh registry
	Metrics *metrics.Metrics
	// StorageType selects the storage backend ("memory" or "sqlite")
	// If empty, defaults to "sqlite"
	StorageType string
	// DBPath is the SQLite database file (optional, defaults to DefaultDBPath)
	DBPath string
	// SessionStoreType selects where sessions live ("memory" or "redis")
	// If empty, defaults to "memory"
	SessionStoreType string
	// RedisConfig holds Redis connection settings (required if SessionStoreType is "redis")
	RedisConfig *redisstorage.Config
	// AuthConfig holds configuration for the auth service (optional)
	// Zero fields fall back to auth.DefaultConfig()
	AuthConfig auth.Config
	// WordSource configures the remote word service (optional)
	// If nil, wordsource.DefaultConfig() is used
	WordSource *wordsource.Config
	// HTTPClient is used for outbound word service calls (optional)
	HTTPClient *http.Client
	// DailyLocation is the time zone daily challenges roll over in (optional, defaults to UTC)
	DailyLocation *time.Location
}

// dependencies are the swappable collaborators every service is built from
type dependencies struct {
	store      storage.Storage
	sessions   storage.SessionStore
	clock      clock.Clock
	random     random.Random
	logger     *slog.Logger
	metrics    *metrics.Metrics
	words      wordsource.Config
	httpClient *http.Client
	authConfig auth.Config
	location   *time.Location
	closers    []io.Closer
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	m := cfg.Metrics
	if m == nil {
		var err error
		m, err = metrics.New(metrics.Options{})
		if err != nil {
			return nil, fmt.Errorf("create metrics: %w", err)
		}
	}

	deps := dependencies{
		clock:      clock.New(),
		random:     random.New(),
		logger:     logger,
		metrics:    m,
		words:      wordsource.DefaultConfig(),
		httpClient: cfg.HTTPClient,
		authConfig: cfg.AuthConfig,
		location:   cfg.DailyLocation,
	}
	if cfg.WordSource != nil {
		deps.words = *cfg.WordSource
	}

	// Create storage based on type
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeSQLite
	}

	var mem *memory.Storage
	switch storageType {
	case StorageTypeMemory:
		mem = memory.New()
		deps.store = mem
	case StorageTypeSQLite:
		path := cfg.DBPath
		if path == "" {
			path = DefaultDBPath
		}
		sqliteStore, err := sqlite.NewFromPath(path)
		if err != nil {
			return nil, fmt.Errorf("open sqlite storage: %w", err)
		}
		deps.store = sqliteStore
		deps.closers = append(deps.closers, sqliteStore)
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'sqlite'")
	}

	// Create the session store based on type
	sessionType := cfg.SessionStoreType
	if sessionType == "" {
		sessionType = SessionStoreMemory
	}

	switch sessionType {
	case SessionStoreMemory:
		if mem == nil {
			mem = memory.New()
		}
		deps.sessions = mem
	case SessionStoreRedis:
		if cfg.RedisConfig == nil {
			closeAll(deps.closers)
			return nil, errors.New("RedisConfig required when SessionStoreType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			closeAll(deps.closers)
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		deps.sessions = redisStore
		deps.closers = append(deps.closers, redisStore)
	default:
		closeAll(deps.closers)
		return nil, errors.New("invalid SessionStoreType: must be 'memory' or 'redis'")
	}

	logger.Info("storage configured",
		slog.String("storage", storageType),
		slog.String("sessions", sessionType),
	)

	return newWithDependencies(deps), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(deps dependencies) *App {
	words := wordsource.New(deps.words, deps.httpClient, deps.random, deps.logger, deps.metrics)
	scrambler := scramble.New(deps.random)
	scoringService := scoring.New(scoring.Tiered())
	dailyService := daily.New(deps.store, deps.clock, deps.location, deps.logger)
	authService := auth.New(deps.store, deps.sessions, deps.clock, deps.logger, deps.metrics, deps.authConfig)
	gameController := game.NewController(
		deps.store,
		deps.sessions,
		words,
		scrambler,
		scoringService,
		dailyService,
		deps.clock,
		deps.logger,
		deps.metrics,
	)

	return &App{
		Storage:        deps.store,
		Sessions:       deps.sessions,
		Clock:          deps.clock,
		Random:         deps.random,
		Logger:         deps.logger,
		Metrics:        deps.metrics,
		WordSource:     words,
		Scrambler:      scrambler,
		ScoringService: scoringService,
		DailyService:   dailyService,
		AuthService:    authService,
		GameController: gameController,
		closers:        deps.closers,
	}
}

type pinger interface {
	Ping(ctx context.Context) error
}

// HealthCheck pings every backend that supports it
func (a *App) HealthCheck(ctx context.Context) error {
	for _, backend := range []any{a.Storage, a.Sessions} {
		if p, ok := backend.(pinger); ok {
			if err := p.Ping(ctx); err != nil {
				return err
			}
		}
	}
	return nil
}

// Close releases database and Redis connections
func (a *App) Close() error {
	return closeAll(a.closers)
}

func closeAll(closers []io.Closer) error {
	var errs []error
	for _, c := range closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
