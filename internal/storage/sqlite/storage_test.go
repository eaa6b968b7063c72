package sqlite

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/wordscramble/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
	now     time.Time
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	path := filepath.Join(s.T().TempDir(), "scramble.db")

	storage, err := NewFromPath(path)
	s.Require().NoError(err)

	s.storage = storage
	s.ctx = context.Background()
	s.now = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
}

func (s *StorageSuite) createUser(username string) {
	err := s.storage.CreateUser(s.ctx, &model.User{
		Username:     username,
		PasswordHash: "hash",
		CreatedAt:    s.now,
	})
	s.Require().NoError(err)
}

func (s *StorageSuite) TestOpenIsIdempotent() {
	path := filepath.Join(s.T().TempDir(), "twice.db")

	first, err := NewFromPath(path)
	s.Require().NoError(err)
	s.Require().NoError(first.CreateUser(s.ctx, &model.User{Username: "alice", PasswordHash: "h", CreatedAt: s.now}))
	s.Require().NoError(first.Close())

	second, err := NewFromPath(path)
	s.Require().NoError(err)
	defer second.Close()

	user, err := second.GetUser(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal("alice", user.Username)
}

func (s *StorageSuite) TestPing() {
	s.NoError(s.storage.Ping(s.ctx))
}

// User tests

func (s *StorageSuite) TestCreateAndGetUser() {
	user := &model.User{Username: "alice", PasswordHash: "hash123", CreatedAt: s.now}

	err := s.storage.CreateUser(s.ctx, user)
	s.Require().NoError(err)
	s.NotZero(user.ID)

	retrieved, err := s.storage.GetUser(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(user.ID, retrieved.ID)
	s.Equal("hash123", retrieved.PasswordHash)
	s.Zero(retrieved.TotalScore)
	s.Zero(retrieved.GamesPlayed)
	s.True(s.now.Equal(retrieved.CreatedAt))
}

func (s *StorageSuite) TestCreateUserDuplicate() {
	s.createUser("alice")

	err := s.storage.CreateUser(s.ctx, &model.User{Username: "alice", PasswordHash: "other", CreatedAt: s.now})
	s.ErrorIs(err, model.ErrUsernameExists)

	retrieved, err := s.storage.GetUser(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal("hash", retrieved.PasswordHash)
}

func (s *StorageSuite) TestConcurrentDuplicateRegistration() {
	const attempts = 8

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
		exists  int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.storage.CreateUser(s.ctx, &model.User{Username: "bob", PasswordHash: "h", CreatedAt: s.now})
			mu.Lock()
			defer mu.Unlock()
			switch err {
			case nil:
				created++
			case model.ErrUsernameExists:
				exists++
			}
		}()
	}
	wg.Wait()

	s.Equal(1, created)
	s.Equal(attempts-1, exists)
}

func (s *StorageSuite) TestUsernamesAreCaseSensitive() {
	s.createUser("alice")
	s.createUser("Alice")

	_, err := s.storage.GetUser(s.ctx, "ALICE")
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *StorageSuite) TestGetUserNotFound() {
	_, err := s.storage.GetUser(s.ctx, "nobody")
	s.ErrorIs(err, model.ErrUserNotFound)
}

// Game history tests

func (s *StorageSuite) TestRecordGameUpdatesTotals() {
	s.createUser("alice")

	record := &model.GameRecord{
		Username: "alice", Word: "GAME", Difficulty: model.DifficultyEasy,
		Correct: true, Score: 50, PlayedAt: s.now,
	}
	s.Require().NoError(s.storage.RecordGame(s.ctx, record))
	s.NotZero(record.ID)

	s.Require().NoError(s.storage.RecordGame(s.ctx, &model.GameRecord{
		Username: "alice", Word: "PYTHON", Difficulty: model.DifficultyMedium,
		Daily: true, PlayedAt: s.now.Add(time.Minute),
	}))

	user, err := s.storage.GetUser(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(50, user.TotalScore)
	s.Equal(2, user.GamesPlayed)

	games, err := s.storage.ListGames(s.ctx, "alice", 10)
	s.Require().NoError(err)
	s.Require().Len(games, 2)
	s.Equal("PYTHON", games[0].Word)
	s.Equal(model.DifficultyMedium, games[0].Difficulty)
	s.True(games[0].Daily)
	s.False(games[0].Correct)
	s.Equal("GAME", games[1].Word)
	s.True(games[1].Correct)
	s.Equal(50, games[1].Score)
}

func (s *StorageSuite) TestRecordGameUnknownUserLeavesNoRecord() {
	err := s.storage.RecordGame(s.ctx, &model.GameRecord{
		Username: "ghost", Word: "GAME", Difficulty: model.DifficultyEasy, PlayedAt: s.now,
	})
	s.ErrorIs(err, model.ErrUserNotFound)

	games, err := s.storage.ListGames(s.ctx, "ghost", 0)
	s.Require().NoError(err)
	s.Empty(games)
}

func (s *StorageSuite) TestListGamesNewestFirstWithLimit() {
	s.createUser("alice")
	s.createUser("bob")

	for i, word := range []string{"GAME", "PLAY", "WORD"} {
		s.Require().NoError(s.storage.RecordGame(s.ctx, &model.GameRecord{
			Username: "alice", Word: word, Difficulty: model.DifficultyEasy,
			PlayedAt: s.now.Add(time.Duration(i) * time.Minute),
		}))
	}
	s.Require().NoError(s.storage.RecordGame(s.ctx, &model.GameRecord{
		Username: "bob", Word: "CODING", Difficulty: model.DifficultyMedium, PlayedAt: s.now,
	}))

	games, err := s.storage.ListGames(s.ctx, "alice", 2)
	s.Require().NoError(err)
	s.Require().Len(games, 2)
	s.Equal("WORD", games[0].Word)
	s.Equal("PLAY", games[1].Word)

	all, err := s.storage.ListGames(s.ctx, "alice", 0)
	s.Require().NoError(err)
	s.Len(all, 3)
}

// Daily challenge tests

func (s *StorageSuite) TestCreateAndGetDailyChallenge() {
	challenge := &model.DailyChallenge{Date: "2024-03-01", Word: "PYTHON", CreatedAt: s.now}

	err := s.storage.CreateDailyChallenge(s.ctx, challenge)
	s.Require().NoError(err)
	s.NotZero(challenge.ID)

	retrieved, err := s.storage.GetDailyChallenge(s.ctx, "2024-03-01")
	s.Require().NoError(err)
	s.Equal("PYTHON", retrieved.Word)
	s.Equal("2024-03-01", retrieved.Date)
}

func (s *StorageSuite) TestCreateDailyChallengeDuplicate() {
	s.Require().NoError(s.storage.CreateDailyChallenge(s.ctx, &model.DailyChallenge{
		Date: "2024-03-01", Word: "PYTHON", CreatedAt: s.now,
	}))

	err := s.storage.CreateDailyChallenge(s.ctx, &model.DailyChallenge{
		Date: "2024-03-01", Word: "CODING", CreatedAt: s.now,
	})
	s.ErrorIs(err, model.ErrDailyExists)

	retrieved, err := s.storage.GetDailyChallenge(s.ctx, "2024-03-01")
	s.Require().NoError(err)
	s.Equal("PYTHON", retrieved.Word)
}

func (s *StorageSuite) TestGetDailyChallengeNotFound() {
	_, err := s.storage.GetDailyChallenge(s.ctx, "2024-03-02")
	s.ErrorIs(err, model.ErrDailyNotFound)
}
