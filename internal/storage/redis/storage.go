package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/wordscramble/internal/model"
	"github.com/mcoot/wordscramble/internal/storage"
)

// SessionStore is a Redis-backed implementation of the session store
type SessionStore struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis session store
func New(cfg Config) (*SessionStore, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &SessionStore{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis session store with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *SessionStore {
	return &SessionStore{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *SessionStore) Close() error {
	return s.client.Close()
}

// Ping checks the Redis connection
func (s *SessionStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Ensure SessionStore implements the interface
var _ storage.SessionStore = (*SessionStore)(nil)

// ttlFor returns the remaining lifetime for a session, preferring its own expiry
func (s *SessionStore) ttlFor(session *model.Session) time.Duration {
	if !session.ExpiresAt.IsZero() {
		if remaining := time.Until(session.ExpiresAt); remaining > 0 {
			return remaining
		}
	}
	return s.cfg.SessionTTL
}

func (s *SessionStore) SaveSession(ctx context.Context, session *model.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}

	return s.client.Set(ctx, sessionKey(session.Token), data, s.ttlFor(session)).Err()
}

func (s *SessionStore) GetSession(ctx context.Context, token string) (*model.Session, error) {
	data, err := s.client.Get(ctx, sessionKey(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrSessionNotFound
		}
		return nil, err
	}

	var session model.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *SessionStore) DeleteSession(ctx context.Context, token string) error {
	return s.client.Del(ctx, sessionKey(token)).Err()
}
