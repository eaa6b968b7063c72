package storage

import (
	"context"

	"github.com/mcoot/wordscramble/internal/model"
)

// Storage defines durable persistence for accounts, game history and daily challenges
type Storage interface {
	// User operations
	CreateUser(ctx context.Context, user *model.User) error
	GetUser(ctx context.Context, username string) (*model.User, error)

	// Game history operations
	// RecordGame appends the record and adds its score to the owner's totals atomically
	RecordGame(ctx context.Context, record *model.GameRecord) error
	ListGames(ctx context.Context, username string, limit int) ([]*model.GameRecord, error)

	// Daily challenge operations
	GetDailyChallenge(ctx context.Context, date string) (*model.DailyChallenge, error)
	CreateDailyChallenge(ctx context.Context, challenge *model.DailyChallenge) error
}

// SessionStore holds ephemeral per-browser session state keyed by token
type SessionStore interface {
	SaveSession(ctx context.Context, session *model.Session) error
	GetSession(ctx context.Context, token string) (*model.Session, error)
	DeleteSession(ctx context.Context, token string) error
}
