package wordsource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mcoot/wordscramble/internal/dependencies/random"
	"github.com/mcoot/wordscramble/internal/metrics"
	"github.com/mcoot/wordscramble/internal/model"
)

// DefaultEndpoint is the public random word service
const DefaultEndpoint = "https://random-word-api.herokuapp.com/word"

// maxBodyBytes caps how much of a word service response is read
const maxBodyBytes = 64 << 10

var (
	// ErrUnavailable covers transport failures, timeouts, bad status codes and undecodable bodies
	ErrUnavailable = errors.New("word service unavailable")

	// ErrInvalidWord is returned when the service answers with an unusable token
	ErrInvalidWord = errors.New("word service returned an invalid word")
)

// Config controls the remote word service client
type Config struct {
	// Endpoint is the base URL queried with ?length=N. Empty disables remote lookups.
	Endpoint string

	// Timeout bounds each individual request
	Timeout time.Duration

	// MaxAttempts bounds the number of requests made when the service returns invalid words
	MaxAttempts int
}

// DefaultConfig returns the production configuration
func DefaultConfig() Config {
	return Config{
		Endpoint:    DefaultEndpoint,
		Timeout:     5 * time.Second,
		MaxAttempts: 3,
	}
}

// OfflineConfig returns a configuration that only ever uses the fallback lists
func OfflineConfig() Config {
	cfg := DefaultConfig()
	cfg.Endpoint = ""
	return cfg
}

var lengths = map[model.Difficulty]int{
	model.DifficultyEasy:   4,
	model.DifficultyMedium: 6,
	model.DifficultyHard:   8,
}

var fallbacks = map[model.Difficulty][]string{
	model.DifficultyEasy:   {"GAME", "PLAY", "WORD"},
	model.DifficultyMedium: {"PYTHON", "CODING", "PLAYER"},
	model.DifficultyHard:   {"ALGORITHM", "DATABASE", "FUNCTION"},
}

// Service supplies target words, preferring the remote service and falling back to built-in lists
type Service struct {
	cfg     Config
	client  *http.Client
	rnd     random.Random
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// New creates a new word source
func New(cfg Config, client *http.Client, rnd random.Random, logger *slog.Logger, m *metrics.Metrics) *Service {
	if client == nil {
		client = http.DefaultClient
	}
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &Service{
		cfg:     cfg,
		client:  client,
		rnd:     rnd,
		logger:  logger,
		metrics: m,
	}
}

// Length returns the target word length for a difficulty
func Length(difficulty model.Difficulty) int {
	if n, ok := lengths[difficulty]; ok {
		return n
	}
	return lengths[model.DifficultyEasy]
}

// FallbackWords returns a copy of the built-in list for a difficulty
func FallbackWords(difficulty model.Difficulty) []string {
	list, ok := fallbacks[difficulty]
	if !ok {
		list = fallbacks[model.DifficultyEasy]
	}
	return append([]string(nil), list...)
}

// Fetch returns an uppercase alphabetic word for the difficulty. It never fails:
// any problem with the remote service results in a fallback word.
func (s *Service) Fetch(ctx context.Context, difficulty model.Difficulty) string {
	if s.cfg.Endpoint == "" {
		return s.Fallback(difficulty)
	}

	word, err := s.fetchRemote(ctx, Length(difficulty))
	if err == nil {
		return word
	}

	reason := "unavailable"
	if errors.Is(err, ErrInvalidWord) {
		reason = "invalid_word"
	}
	s.logger.Warn("using fallback word",
		slog.String("difficulty", difficulty.String()),
		slog.String("reason", reason),
		slog.String("error", err.Error()),
	)
	s.metrics.WordFallback(difficulty.String(), reason)

	return s.Fallback(difficulty)
}

// Fallback draws uniformly from the built-in list for a difficulty
func (s *Service) Fallback(difficulty model.Difficulty) string {
	list, ok := fallbacks[difficulty]
	if !ok {
		list = fallbacks[model.DifficultyEasy]
	}
	return list[s.rnd.Intn(len(list))]
}

// fetchRemote retries invalid tokens up to MaxAttempts and gives up immediately on anything else
func (s *Service) fetchRemote(ctx context.Context, length int) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= s.cfg.MaxAttempts; attempt++ {
		word, err := s.request(ctx, length)
		if err == nil {
			return word, nil
		}
		if !errors.Is(err, ErrInvalidWord) {
			return "", err
		}
		lastErr = err
		s.logger.Debug("word service returned invalid word",
			slog.Int("attempt", attempt),
			slog.String("error", err.Error()),
		)
	}
	return "", fmt.Errorf("after %d attempts: %w", s.cfg.MaxAttempts, lastErr)
}

func (s *Service) request(ctx context.Context, length int) (string, error) {
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	u, err := url.Parse(s.cfg.Endpoint)
	if err != nil {
		return "", fmt.Errorf("%w: parse endpoint: %v", ErrUnavailable, err)
	}
	q := u.Query()
	q.Set("length", strconv.Itoa(length))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", fmt.Errorf("%w: build request: %v", ErrUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var words []string
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&words); err != nil {
		return "", fmt.Errorf("%w: decode body: %v", ErrUnavailable, err)
	}
	if len(words) == 0 {
		return "", fmt.Errorf("%w: empty list", ErrInvalidWord)
	}

	word, ok := Normalize(words[0])
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidWord, words[0])
	}
	return word, nil
}

// Normalize trims and upper-cases a token, reporting whether it is purely A-Z
func Normalize(token string) (string, bool) {
	word := strings.ToUpper(strings.TrimSpace(token))
	if word == "" {
		return "", false
	}
	for _, r := range word {
		if r < 'A' || r > 'Z' {
			return "", false
		}
	}
	return word, true
}
