package daily

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/mcoot/wordscramble/internal/dependencies/clock"
	"github.com/mcoot/wordscramble/internal/model"
	"github.com/mcoot/wordscramble/internal/services/wordsource"
	"github.com/mcoot/wordscramble/internal/storage"
)

// Difficulty is the difficulty every daily challenge is played at
const Difficulty = model.DifficultyMedium

// Service hands out one challenge word per calendar date
type Service struct {
	storage  storage.Storage
	clock    clock.Clock
	location *time.Location
	words    []string
	logger   *slog.Logger
}

// New creates a new daily challenge registry. A nil location means UTC.
func New(storage storage.Storage, clk clock.Clock, location *time.Location, logger *slog.Logger) *Service {
	if location == nil {
		location = time.UTC
	}
	return &Service{
		storage:  storage,
		clock:    clk,
		location: location,
		words:    wordsource.FallbackWords(Difficulty),
		logger:   logger,
	}
}

// Today returns the challenge for the current date, creating it on first use
func (s *Service) Today(ctx context.Context) (*model.DailyChallenge, error) {
	date := clock.DateIn(s.clock, s.location)

	challenge, err := s.storage.GetDailyChallenge(ctx, date)
	if err == nil {
		return challenge, nil
	}
	if !errors.Is(err, model.ErrDailyNotFound) {
		return nil, fmt.Errorf("get daily challenge: %w", err)
	}

	challenge = &model.DailyChallenge{
		Date:      date,
		Word:      s.WordFor(date),
		CreatedAt: s.clock.Now(),
	}
	err = s.storage.CreateDailyChallenge(ctx, challenge)
	if err == nil {
		s.logger.Info("daily challenge created", slog.String("date", date))
		return challenge, nil
	}
	if !errors.Is(err, model.ErrDailyExists) {
		return nil, fmt.Errorf("create daily challenge: %w", err)
	}

	// Another request created it first
	challenge, err = s.storage.GetDailyChallenge(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("re-read daily challenge: %w", err)
	}
	return challenge, nil
}

// WordFor deterministically picks the word for a date
func (s *Service) WordFor(date string) string {
	return s.words[xxhash.Sum64String(date)%uint64(len(s.words))]
}
