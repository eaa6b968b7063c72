package factory

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/wordscramble/internal/model"
	"github.com/mcoot/wordscramble/internal/services/auth"
	"github.com/mcoot/wordscramble/internal/services/wordsource"
	redisstorage "github.com/mcoot/wordscramble/internal/storage/redis"
	"github.com/mcoot/wordscramble/internal/testutil"
)

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.ctx = context.Background()
}

func (s *IntegrationSuite) register(username string) *model.Session {
	_, session, err := s.app.AuthService.Register(s.ctx, username, "secret")
	s.Require().NoError(err)
	return session
}

// Test: Correct easy guess with the fallback word
func (s *IntegrationSuite) TestCorrectGuessFlow() {
	session := s.register("bob")

	round, err := s.app.GameController.Start(s.ctx, session, model.DifficultyEasy)
	s.Require().NoError(err)
	s.Equal("AMEG", round.Scrambled)
	s.Equal(4, round.Length)

	result, err := s.app.GameController.Submit(s.ctx, session, "game")
	s.Require().NoError(err)
	s.True(result.Correct)
	s.Equal(50, result.Score)

	user, err := s.app.Storage.GetUser(s.ctx, "bob")
	s.Require().NoError(err)
	s.Equal(50, user.TotalScore)
	s.Equal(1, user.GamesPlayed)
}

// Test: Wrong guess still counts as a game played
func (s *IntegrationSuite) TestWrongGuessFlow() {
	session := s.register("bob")

	_, err := s.app.GameController.Start(s.ctx, session, model.DifficultyEasy)
	s.Require().NoError(err)

	result, err := s.app.GameController.Submit(s.ctx, session, "WRONG")
	s.Require().NoError(err)
	s.False(result.Correct)
	s.Equal("GAME", result.Word)
	s.Equal(0, result.Score)

	user, err := s.app.Storage.GetUser(s.ctx, "bob")
	s.Require().NoError(err)
	s.Equal(0, user.TotalScore)
	s.Equal(1, user.GamesPlayed)
}

// Test: A failing word service falls back to GAME and both outcomes are scored
func (s *IntegrationSuite) TestWordServiceFailureFallsBack() {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		s.Equal("4", r.URL.Query().Get("length"))
		http.Error(w, "upstream down", http.StatusInternalServerError)
	}))
	defer server.Close()

	words := wordsource.DefaultConfig()
	words.Endpoint = server.URL
	app := NewTestAppWithWords(words, server.Client())

	_, _, err := app.AuthService.Register(s.ctx, "bob", "pw")
	s.Require().NoError(err)
	_, session, err := app.AuthService.Login(s.ctx, "bob", "pw")
	s.Require().NoError(err)

	tests := []struct {
		answer     string
		correct    bool
		totalScore int
	}{
		{answer: "GAME", correct: true, totalScore: 50},
		{answer: "WRONG", correct: false, totalScore: 50},
	}

	for i, tt := range tests {
		round, err := app.GameController.Start(s.ctx, session, model.DifficultyEasy)
		s.Require().NoError(err)
		s.Equal("AMEG", round.Scrambled)

		result, err := app.GameController.Submit(s.ctx, session, tt.answer)
		s.Require().NoError(err)
		s.Equal(tt.correct, result.Correct, tt.answer)
		s.Equal("GAME", result.Word)

		user, err := app.Storage.GetUser(s.ctx, "bob")
		s.Require().NoError(err)
		s.Equal(tt.totalScore, user.TotalScore, tt.answer)
		s.Equal(i+1, user.GamesPlayed, tt.answer)
	}

	// A server error is not retried
	s.Equal(int32(2), hits.Load())
	s.Equal(2.0, promtestutil.ToFloat64(app.Metrics.WordFallbacks.WithLabelValues("easy", "unavailable")))
}

// Test: Game state survives a session reload
func (s *IntegrationSuite) TestRoundPersistsAcrossRequests() {
	session := s.register("bob")

	_, err := s.app.GameController.Start(s.ctx, session, model.DifficultyHard)
	s.Require().NoError(err)

	reloaded, err := s.app.AuthService.ValidateSession(s.ctx, session.Token)
	s.Require().NoError(err)
	s.Equal("ALGORITHM", reloaded.CurrentWord)

	result, err := s.app.GameController.Submit(s.ctx, reloaded, "algorithm")
	s.Require().NoError(err)
	s.Equal(150, result.Score)

	reloaded, err = s.app.AuthService.ValidateSession(s.ctx, session.Token)
	s.Require().NoError(err)
	s.False(reloaded.InGame())
}

// Test: Everyone gets the same daily word, and it changes the next day
func (s *IntegrationSuite) TestDailyChallengeIsSharedPerDay() {
	first, err := s.app.DailyService.Today(s.ctx)
	s.Require().NoError(err)
	second, err := s.app.DailyService.Today(s.ctx)
	s.Require().NoError(err)
	s.Equal(first.Word, second.Word)
	s.Equal("2024-01-01", first.Date)

	s.app.MockClock.NextDay()
	next, err := s.app.DailyService.Today(s.ctx)
	s.Require().NoError(err)
	s.Equal("2024-01-02", next.Date)
	s.Equal(s.app.DailyService.WordFor("2024-01-02"), next.Word)
}

// Test: Sessions expire with the mock clock
func (s *IntegrationSuite) TestSessionExpiry() {
	session := s.register("bob")

	s.app.MockClock.Advance(25 * time.Hour)

	_, err := s.app.AuthService.ValidateSession(s.ctx, session.Token)
	s.ErrorIs(err, auth.ErrInvalidSession)
}

func (s *IntegrationSuite) TestHealthCheckMemory() {
	s.NoError(s.app.HealthCheck(s.ctx))
	s.NoError(s.app.Close())
}

type FactorySuite struct {
	suite.Suite
}

func TestFactorySuite(t *testing.T) {
	suite.Run(t, new(FactorySuite))
}

func (s *FactorySuite) offline() *wordsource.Config {
	cfg := wordsource.OfflineConfig()
	return &cfg
}

func (s *FactorySuite) TestNewSQLiteWithMemorySessions() {
	app, err := New(Config{
		Logger:     testutil.NopLogger(),
		DBPath:     filepath.Join(s.T().TempDir(), "scramble.db"),
		WordSource: s.offline(),
	})
	s.Require().NoError(err)
	defer app.Close()

	ctx := context.Background()
	s.NoError(app.HealthCheck(ctx))

	_, session, err := app.AuthService.Register(ctx, "alice", "secret")
	s.Require().NoError(err)

	_, err = app.GameController.Start(ctx, session, model.DifficultyMedium)
	s.Require().NoError(err)
	result, err := app.GameController.Submit(ctx, session, session.CurrentWord)
	s.Require().NoError(err)
	s.True(result.Correct)
	s.Equal(100, result.Score)

	dashboard, err := app.GameController.Dashboard(ctx, "alice")
	s.Require().NoError(err)
	s.Equal(100, dashboard.User.TotalScore)
	s.Len(dashboard.Recent, 1)
}

func (s *FactorySuite) TestNewMemoryWithRedisSessions() {
	mini := miniredis.RunT(s.T())
	redisCfg := redisstorage.DefaultConfig()
	redisCfg.URL = "redis://" + mini.Addr()

	app, err := New(Config{
		Logger:           testutil.NopLogger(),
		StorageType:      StorageTypeMemory,
		SessionStoreType: SessionStoreRedis,
		RedisConfig:      &redisCfg,
		WordSource:       s.offline(),
	})
	s.Require().NoError(err)
	defer app.Close()

	ctx := context.Background()
	_, session, err := app.AuthService.Register(ctx, "carol", "secret")
	s.Require().NoError(err)
	s.True(mini.Exists("scramble:session:" + session.Token))

	s.NoError(app.HealthCheck(ctx))
	mini.Close()
	s.Error(app.HealthCheck(ctx))
}

func (s *FactorySuite) TestRedisRequiresConfig() {
	_, err := New(Config{
		StorageType:      StorageTypeMemory,
		SessionStoreType: SessionStoreRedis,
	})
	s.Error(err)
}

func (s *FactorySuite) TestInvalidStorageType() {
	_, err := New(Config{StorageType: "postgres"})
	s.Error(err)

	_, err = New(Config{StorageType: StorageTypeMemory, SessionStoreType: "memcached"})
	s.Error(err)
}
