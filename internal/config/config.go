package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/mcoot/wordscramble/internal/api"
	"github.com/mcoot/wordscramble/internal/factory"
	"github.com/mcoot/wordscramble/internal/services/auth"
	"github.com/mcoot/wordscramble/internal/services/wordsource"
	redisstorage "github.com/mcoot/wordscramble/internal/storage/redis"
)

// EnvPrefix is prepended to every environment variable, e.g. SCRAMBLE_DB_PATH
const EnvPrefix = "SCRAMBLE"

// Config is the server configuration, assembled from flags, environment and an optional file
type Config struct {
	Listen          string        `mapstructure:"listen"`
	Port            int           `mapstructure:"port"`
	Storage         string        `mapstructure:"storage"`
	DBPath          string        `mapstructure:"db-path"`
	SessionStore    string        `mapstructure:"session-store"`
	RedisURL        string        `mapstructure:"redis-url"`
	SessionTTL      time.Duration `mapstructure:"session-ttl"`
	WordAPIURL      string        `mapstructure:"word-api-url"`
	WordAPITimeout  time.Duration `mapstructure:"word-api-timeout"`
	WordAPIAttempts int           `mapstructure:"word-api-attempts"`
	DailyLocation   string        `mapstructure:"daily-location"`
	LogLevel        string        `mapstructure:"log-level"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown-timeout"`
}

// BindFlags registers every configuration flag on fs with its default
func BindFlags(fs *pflag.FlagSet) {
	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	words := wordsource.DefaultConfig()

	fs.String("listen", "", "address to bind to (env: SCRAMBLE_LISTEN)")
	fs.IntP("port", "p", 8080, "port to listen on (env: SCRAMBLE_PORT)")
	fs.String("storage", factory.StorageTypeSQLite, "storage backend: sqlite, memory (env: SCRAMBLE_STORAGE)")
	fs.String("db-path", factory.DefaultDBPath, "path to the SQLite database (env: SCRAMBLE_DB_PATH)")
	fs.String("session-store", factory.SessionStoreMemory, "session store: memory, redis (env: SCRAMBLE_SESSION_STORE)")
	fs.String("redis-url", "", "Redis URL for the redis session store (env: SCRAMBLE_REDIS_URL)")
	fs.Duration("session-ttl", auth.DefaultConfig().SessionDuration, "session lifetime (env: SCRAMBLE_SESSION_TTL)")
	fs.String("word-api-url", words.Endpoint, "random word service, empty to only use built-in words (env: SCRAMBLE_WORD_API_URL)")
	fs.Duration("word-api-timeout", words.Timeout, "timeout per word service request (env: SCRAMBLE_WORD_API_TIMEOUT)")
	fs.Int("word-api-attempts", words.MaxAttempts, "word service requests before falling back (env: SCRAMBLE_WORD_API_ATTEMPTS)")
	fs.String("daily-location", "UTC", "time zone the daily challenge rolls over in (env: SCRAMBLE_DAILY_LOCATION)")
	fs.String("log-level", "info", "log level: debug, info, warn, error (env: SCRAMBLE_LOG_LEVEL)")
	fs.Duration("shutdown-timeout", api.DefaultServerConfig().ShutdownTimeout, "how long to drain requests on shutdown (env: SCRAMBLE_SHUTDOWN_TIMEOUT)")
}

// Load resolves configuration with precedence flag > env > file > default.
// configFile may be empty.
func Load(fs *pflag.FlagSet, configFile string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(fs); err != nil {
		return nil, fmt.Errorf("bind flags: %w", err)
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", configFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that would otherwise fail later at startup
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port (must be between 0-65535 inclusive): %d", c.Port)
	}
	switch c.Storage {
	case factory.StorageTypeSQLite, factory.StorageTypeMemory:
	default:
		return fmt.Errorf("invalid storage %q: must be sqlite or memory", c.Storage)
	}
	switch c.SessionStore {
	case factory.SessionStoreMemory:
	case factory.SessionStoreRedis:
		if c.RedisURL == "" {
			return errors.New("--redis-url is required when --session-store=redis")
		}
	default:
		return fmt.Errorf("invalid session store %q: must be memory or redis", c.SessionStore)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("session ttl must be positive: %s", c.SessionTTL)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// Location returns the daily challenge time zone
func (c *Config) Location() (*time.Location, error) {
	if c.DailyLocation == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.DailyLocation)
	if err != nil {
		return nil, fmt.Errorf("invalid daily location %q: %w", c.DailyLocation, err)
	}
	return loc, nil
}

// SlogLevel parses the configured log level
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return level, nil
}

// Factory converts the configuration into application factory settings
func (c *Config) Factory(logger *slog.Logger) (factory.Config, error) {
	loc, err := c.Location()
	if err != nil {
		return factory.Config{}, err
	}

	words := wordsource.Config{
		Endpoint:    c.WordAPIURL,
		Timeout:     c.WordAPITimeout,
		MaxAttempts: c.WordAPIAttempts,
	}

	fc := factory.Config{
		Logger:           logger,
		StorageType:      c.Storage,
		DBPath:           c.DBPath,
		SessionStoreType: c.SessionStore,
		AuthConfig:       auth.Config{SessionDuration: c.SessionTTL},
		WordSource:       &words,
		DailyLocation:    loc,
	}

	if c.SessionStore == factory.SessionStoreRedis {
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = c.RedisURL
		redisCfg.SessionTTL = c.SessionTTL
		fc.RedisConfig = &redisCfg
	}

	return fc, nil
}

// Addr is the host:port the server listens on
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Listen, c.Port)
}

// Server returns the HTTP server settings
func (c *Config) Server() api.ServerConfig {
	sc := api.DefaultServerConfig()
	sc.Addr = c.Addr()
	if c.ShutdownTimeout > 0 {
		sc.ShutdownTimeout = c.ShutdownTimeout
	}
	return sc
}
