package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/mcoot/wordscramble/internal/model"
	"github.com/mcoot/wordscramble/internal/storage"
)

// Storage is an in-memory implementation of the storage and session interfaces
type Storage struct {
	mu sync.RWMutex

	users    map[string]*model.User
	games    []*model.GameRecord
	daily    map[string]*model.DailyChallenge
	sessions map[string]*model.Session

	nextUserID  int64
	nextGameID  int64
	nextDailyID int64

	now func() time.Time
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		users:    make(map[string]*model.User),
		daily:    make(map[string]*model.DailyChallenge),
		sessions: make(map[string]*model.Session),
		now:      time.Now,
	}
}

// WithNow overrides the time source used to expire sessions
func (s *Storage) WithNow(now func() time.Time) *Storage {
	s.now = now
	return s
}

var (
	_ storage.Storage      = (*Storage)(nil)
	_ storage.SessionStore = (*Storage)(nil)
)

// User operations

func (s *Storage) CreateUser(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.Username]; ok {
		return model.ErrUsernameExists
	}
	s.nextUserID++
	user.ID = s.nextUserID
	stored := *user
	s.users[user.Username] = &stored
	return nil
}

func (s *Storage) GetUser(ctx context.Context, username string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[username]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

// Game history operations

func (s *Storage) RecordGame(ctx context.Context, record *model.GameRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[record.Username]
	if !ok {
		return model.ErrUserNotFound
	}
	s.nextGameID++
	record.ID = s.nextGameID
	stored := *record
	s.games = append(s.games, &stored)

	user.TotalScore += record.Score
	user.GamesPlayed++
	return nil
}

func (s *Storage) ListGames(ctx context.Context, username string, limit int) ([]*model.GameRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var records []*model.GameRecord
	for _, g := range s.games {
		if g.Username == username {
			copied := *g
			records = append(records, &copied)
		}
	}

	// Newest first, ties broken by insertion order
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].PlayedAt.Equal(records[j].PlayedAt) {
			return records[i].ID > records[j].ID
		}
		return records[i].PlayedAt.After(records[j].PlayedAt)
	})

	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

// Daily challenge operations

func (s *Storage) GetDailyChallenge(ctx context.Context, date string) (*model.DailyChallenge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	challenge, ok := s.daily[date]
	if !ok {
		return nil, model.ErrDailyNotFound
	}
	copied := *challenge
	return &copied, nil
}

func (s *Storage) CreateDailyChallenge(ctx context.Context, challenge *model.DailyChallenge) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.daily[challenge.Date]; ok {
		return model.ErrDailyExists
	}
	s.nextDailyID++
	challenge.ID = s.nextDailyID
	stored := *challenge
	s.daily[challenge.Date] = &stored
	return nil
}

// Session operations

func (s *Storage) SaveSession(ctx context.Context, session *model.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *session
	s.sessions[session.Token] = &copied
	return nil
}

func (s *Storage) GetSession(ctx context.Context, token string) (*model.Session, error) {
	s.mu.RLock()
	session, ok := s.sessions[token]
	s.mu.RUnlock()

	if !ok {
		return nil, model.ErrSessionNotFound
	}

	if session.Expired(s.now()) {
		s.mu.Lock()
		delete(s.sessions, token)
		s.mu.Unlock()
		return nil, model.ErrSessionNotFound
	}

	copied := *session
	return &copied, nil
}

func (s *Storage) DeleteSession(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}

// SessionCount returns the number of stored sessions, expired or not
func (s *Storage) SessionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
