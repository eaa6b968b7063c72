package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/wordscramble/internal/dependencies/clock"
	"github.com/mcoot/wordscramble/internal/metrics"
	"github.com/mcoot/wordscramble/internal/model"
	"github.com/mcoot/wordscramble/internal/storage"
)

// MaxPasswordBytes is the longest password bcrypt accepts
const MaxPasswordBytes = 72

// Errors
var (
	ErrMissingCredentials = errors.New("username and password are required")
	ErrPasswordTooLong    = fmt.Errorf("password must be at most %d bytes", MaxPasswordBytes)
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidSession     = errors.New("invalid or expired session")
	ErrUsernameExists     = model.ErrUsernameExists
)

// Service handles accounts and session management
type Service struct {
	storage  storage.Storage
	sessions storage.SessionStore
	clock    clock.Clock
	logger   *slog.Logger
	metrics  *metrics.Metrics

	sessionDuration time.Duration
	bcryptCost      int
}

// Config holds configuration for the auth service
type Config struct {
	SessionDuration time.Duration
	BcryptCost      int
}

// DefaultConfig returns default auth configuration
func DefaultConfig() Config {
	return Config{
		SessionDuration: 24 * time.Hour,
		BcryptCost:      bcrypt.DefaultCost,
	}
}

// New creates a new AuthService
func New(
	storage storage.Storage,
	sessions storage.SessionStore,
	clock clock.Clock,
	logger *slog.Logger,
	m *metrics.Metrics,
	cfg Config,
) *Service {
	defaults := DefaultConfig()
	if cfg.SessionDuration == 0 {
		cfg.SessionDuration = defaults.SessionDuration
	}
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = defaults.BcryptCost
	}
	return &Service{
		storage:         storage,
		sessions:        sessions,
		clock:           clock,
		logger:          logger,
		metrics:         m,
		sessionDuration: cfg.SessionDuration,
		bcryptCost:      cfg.BcryptCost,
	}
}

// Register creates an account and a session for it
func (s *Service) Register(ctx context.Context, username, password string) (*model.User, *model.Session, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return nil, nil, ErrMissingCredentials
	}
	if len(password) > MaxPasswordBytes {
		return nil, nil, ErrPasswordTooLong
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, nil, ErrPasswordTooLong
		}
		return nil, nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    s.clock.Now(),
	}

	// The unique index on username arbitrates concurrent registrations
	if err := s.storage.CreateUser(ctx, user); err != nil {
		if errors.Is(err, model.ErrUsernameExists) {
			return nil, nil, ErrUsernameExists
		}
		return nil, nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info("user registered", slog.String("username", username))
	s.metrics.Registered()

	session, err := s.createSession(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, session, nil
}

// Login authenticates a user and creates a session
func (s *Service) Login(ctx context.Context, username, password string) (*model.User, *model.Session, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return nil, nil, ErrMissingCredentials
	}

	user, err := s.storage.GetUser(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			s.metrics.LoginAttempt(false)
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.metrics.LoginAttempt(false)
		return nil, nil, ErrInvalidCredentials
	}
	s.metrics.LoginAttempt(true)

	session, err := s.createSession(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, session, nil
}

// ValidateSession checks if a session token is valid and returns the session
func (s *Service) ValidateSession(ctx context.Context, token string) (*model.Session, error) {
	if token == "" {
		return nil, ErrInvalidSession
	}

	session, err := s.sessions.GetSession(ctx, token)
	if err != nil {
		if errors.Is(err, model.ErrSessionNotFound) {
			return nil, ErrInvalidSession
		}
		return nil, fmt.Errorf("get session: %w", err)
	}

	if session.Expired(s.clock.Now()) {
		_ = s.sessions.DeleteSession(ctx, token)
		return nil, ErrInvalidSession
	}

	return session, nil
}

// SaveSession persists changes to a session's game state
func (s *Service) SaveSession(ctx context.Context, session *model.Session) error {
	if err := s.sessions.SaveSession(ctx, session); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Logout removes a session. Unknown tokens are ignored.
func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.sessions.DeleteSession(ctx, token); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// GetUser returns the account for a session
func (s *Service) GetUser(ctx context.Context, session *model.Session) (*model.User, error) {
	user, err := s.storage.GetUser(ctx, session.Username)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

// SessionDuration returns how long new sessions live
func (s *Service) SessionDuration() time.Duration {
	return s.sessionDuration
}

// createSession creates and stores a new session for a user
func (s *Service) createSession(ctx context.Context, user *model.User) (*model.Session, error) {
	now := s.clock.Now()

	session := &model.Session{
		Token:     s.generateID("sess_"),
		Username:  user.Username,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionDuration),
	}

	if err := s.sessions.SaveSession(ctx, session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return session, nil
}

// generateID generates a random ID with a prefix
func (s *Service) generateID(prefix string) string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return prefix + base64.RawURLEncoding.EncodeToString(b)
}
