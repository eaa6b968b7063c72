package game

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mcoot/wordscramble/internal/dependencies/clock"
	"github.com/mcoot/wordscramble/internal/metrics"
	"github.com/mcoot/wordscramble/internal/model"
	"github.com/mcoot/wordscramble/internal/services/daily"
	"github.com/mcoot/wordscramble/internal/services/scoring"
	"github.com/mcoot/wordscramble/internal/services/scramble"
	"github.com/mcoot/wordscramble/internal/services/wordsource"
	"github.com/mcoot/wordscramble/internal/storage"
)

// DefaultRecentGames is how many history entries the dashboard shows
const DefaultRecentGames = 10

// Dashboard is a user's totals plus their latest games
type Dashboard struct {
	User   *model.User
	Recent []*model.GameRecord
}

// Controller runs the round lifecycle: start, submit, record
type Controller struct {
	storage        storage.Storage
	sessions       storage.SessionStore
	words          *wordsource.Service
	scrambler      *scramble.Service
	scoringService *scoring.Service
	dailyService   *daily.Service
	clock          clock.Clock
	logger         *slog.Logger
	metrics        *metrics.Metrics
}

// NewController creates a new GameController
func NewController(
	storage storage.Storage,
	sessions storage.SessionStore,
	words *wordsource.Service,
	scrambler *scramble.Service,
	scoringService *scoring.Service,
	dailyService *daily.Service,
	clock clock.Clock,
	logger *slog.Logger,
	m *metrics.Metrics,
) *Controller {
	return &Controller{
		storage:        storage,
		sessions:       sessions,
		words:          words,
		scrambler:      scrambler,
		scoringService: scoringService,
		dailyService:   dailyService,
		clock:          clock,
		logger:         logger,
		metrics:        m,
	}
}

// Start draws a word for the difficulty and makes it the session's current round,
// replacing any round already in progress
func (c *Controller) Start(ctx context.Context, session *model.Session, difficulty model.Difficulty) (*model.Round, error) {
	if !difficulty.IsValid() {
		difficulty = model.DifficultyEasy
	}
	word := c.words.Fetch(ctx, difficulty)
	return c.begin(ctx, session, word, difficulty, false)
}

// StartDaily makes today's challenge word the session's current round
func (c *Controller) StartDaily(ctx context.Context, session *model.Session) (*model.Round, error) {
	challenge, err := c.dailyService.Today(ctx)
	if err != nil {
		return nil, err
	}
	return c.begin(ctx, session, challenge.Word, daily.Difficulty, true)
}

func (c *Controller) begin(ctx context.Context, session *model.Session, word string, difficulty model.Difficulty, isDaily bool) (*model.Round, error) {
	word = strings.ToUpper(word)
	scrambled := c.scrambler.Scramble(word)

	session.StartRound(word, difficulty, isDaily)
	if err := c.sessions.SaveSession(ctx, session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	c.logger.Debug("round started",
		slog.String("username", session.Username),
		slog.String("difficulty", difficulty.String()),
		slog.Bool("daily", isDaily),
	)
	c.metrics.GameStarted(difficulty.String(), isDaily)

	return &model.Round{
		Scrambled:  scrambled,
		Difficulty: difficulty,
		Length:     len([]rune(word)),
		Daily:      isDaily,
	}, nil
}

// Submit scores an answer against the session's current word, records the game,
// updates the user's totals and clears the round
func (c *Controller) Submit(ctx context.Context, session *model.Session, answer string) (*model.Result, error) {
	if !session.InGame() {
		return nil, model.ErrNoActiveGame
	}

	word := session.CurrentWord
	difficulty := session.Difficulty
	if !difficulty.IsValid() {
		difficulty = model.DifficultyEasy
	}

	correct, points := c.scoringService.Evaluate(answer, word, difficulty)

	isDaily := session.Daily

	// Consume the round before recording so a retry cannot score it twice
	session.ClearRound()
	if err := c.sessions.SaveSession(ctx, session); err != nil {
		session.StartRound(word, difficulty, isDaily)
		return nil, fmt.Errorf("save session: %w", err)
	}

	record := &model.GameRecord{
		Username:   session.Username,
		Word:       word,
		Difficulty: difficulty,
		Daily:      isDaily,
		Correct:    correct,
		Score:      points,
		PlayedAt:   c.clock.Now(),
	}
	if err := c.storage.RecordGame(ctx, record); err != nil {
		c.logger.Error("failed to record game",
			slog.String("username", session.Username),
			slog.String("error", err.Error()),
		)
		session.StartRound(word, difficulty, isDaily)
		if restoreErr := c.sessions.SaveSession(ctx, session); restoreErr != nil {
			c.logger.Error("failed to restore round",
				slog.String("username", session.Username),
				slog.String("error", restoreErr.Error()),
			)
		}
		return nil, fmt.Errorf("record game: %w", err)
	}

	result := &model.Result{
		Correct:    correct,
		Answer:     strings.TrimSpace(answer),
		Word:       word,
		Score:      points,
		Difficulty: difficulty,
		Daily:      isDaily,
	}

	c.logger.Info("answer submitted",
		slog.String("username", record.Username),
		slog.String("difficulty", difficulty.String()),
		slog.Bool("correct", correct),
		slog.Int("score", points),
	)
	c.metrics.GameSubmitted(difficulty.String(), correct)

	return result, nil
}

// Dashboard returns the user's totals and most recent games
func (c *Controller) Dashboard(ctx context.Context, username string) (*Dashboard, error) {
	user, err := c.storage.GetUser(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	recent, err := c.History(ctx, username, DefaultRecentGames)
	if err != nil {
		return nil, err
	}

	return &Dashboard{User: user, Recent: recent}, nil
}

// History returns up to limit of the user's games, newest first. A limit of 0 returns all.
func (c *Controller) History(ctx context.Context, username string, limit int) ([]*model.GameRecord, error) {
	games, err := c.storage.ListGames(ctx, username, limit)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	return games, nil
}
