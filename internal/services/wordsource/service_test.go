package wordsource

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/wordscramble/internal/dependencies/mocks"
	"github.com/mcoot/wordscramble/internal/metrics"
	"github.com/mcoot/wordscramble/internal/model"
	internaltestutil "github.com/mcoot/wordscramble/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	rnd      *mocks.MockRandom
	metrics  *metrics.Metrics
	ctx      context.Context
	requests atomic.Int32
	lengths  chan string
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.rnd = mocks.NewMockRandom()
	s.metrics = metrics.NewForTest()
	s.ctx = context.Background()
	s.requests.Store(0)
	s.lengths = make(chan string, 16)
}

// serve starts a word service that answers each request with the next body in turn
func (s *ServiceSuite) serve(status int, bodies ...string) *Service {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := int(s.requests.Add(1))
		s.lengths <- r.URL.Query().Get("length")

		body := bodies[len(bodies)-1]
		if n <= len(bodies) {
			body = bodies[n-1]
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	s.T().Cleanup(server.Close)

	cfg := DefaultConfig()
	cfg.Endpoint = server.URL + "/word"
	cfg.Timeout = time.Second
	return New(cfg, server.Client(), s.rnd, internaltestutil.NopLogger(), s.metrics)
}

func (s *ServiceSuite) fallbackCount(difficulty, reason string) float64 {
	return testutil.ToFloat64(s.metrics.WordFallbacks.WithLabelValues(difficulty, reason))
}

func (s *ServiceSuite) TestFetchUsesRemoteWord() {
	svc := s.serve(http.StatusOK, `["apple"]`)

	word := svc.Fetch(s.ctx, model.DifficultyEasy)

	s.Equal("APPLE", word)
	s.Equal(int32(1), s.requests.Load())
	s.Equal("4", <-s.lengths)
}

func (s *ServiceSuite) TestFetchRequestsLengthForDifficulty() {
	svc := s.serve(http.StatusOK, `["function"]`)

	_ = svc.Fetch(s.ctx, model.DifficultyHard)
	s.Equal("8", <-s.lengths)

	_ = svc.Fetch(s.ctx, model.DifficultyMedium)
	s.Equal("6", <-s.lengths)
}

func (s *ServiceSuite) TestFetchTrimsAndUppercases() {
	svc := s.serve(http.StatusOK, `["  Word \n"]`)
	s.Equal("WORD", svc.Fetch(s.ctx, model.DifficultyEasy))
}

func (s *ServiceSuite) TestFetchRetriesInvalidTokens() {
	svc := s.serve(http.StatusOK, `[]`, `["h3llo"]`, `["valid"]`)

	word := svc.Fetch(s.ctx, model.DifficultyEasy)

	s.Equal("VALID", word)
	s.Equal(int32(3), s.requests.Load())
	s.Zero(s.fallbackCount("easy", "invalid_word"))
}

func (s *ServiceSuite) TestFetchFallsBackAfterMaxAttempts() {
	svc := s.serve(http.StatusOK, `[""]`)
	s.rnd.QueueIntn(1)

	word := svc.Fetch(s.ctx, model.DifficultyMedium)

	s.Equal("CODING", word)
	s.Equal(int32(3), s.requests.Load())
	s.Equal(1.0, s.fallbackCount("medium", "invalid_word"))
}

func (s *ServiceSuite) TestFetchFallsBackImmediatelyOnServerError() {
	svc := s.serve(http.StatusInternalServerError, `["apple"]`)
	s.rnd.QueueIntn(0)

	word := svc.Fetch(s.ctx, model.DifficultyEasy)

	s.Equal("GAME", word)
	s.Equal(int32(1), s.requests.Load())
	s.Equal(1.0, s.fallbackCount("easy", "unavailable"))
}

func (s *ServiceSuite) TestFetchFallsBackImmediatelyOnNonJSON() {
	svc := s.serve(http.StatusOK, `<html>busy</html>`)
	s.rnd.QueueIntn(2)

	word := svc.Fetch(s.ctx, model.DifficultyHard)

	s.Equal("FUNCTION", word)
	s.Equal(int32(1), s.requests.Load())
}

func (s *ServiceSuite) TestFetchFallsBackOnTimeout() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.requests.Add(1)
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	cfg := DefaultConfig()
	cfg.Endpoint = server.URL
	cfg.Timeout = 50 * time.Millisecond
	svc := New(cfg, server.Client(), s.rnd, internaltestutil.NopLogger(), s.metrics)

	start := time.Now()
	word := svc.Fetch(s.ctx, model.DifficultyEasy)

	s.Contains(FallbackWords(model.DifficultyEasy), word)
	s.Less(time.Since(start), time.Second)
	s.Equal(int32(1), s.requests.Load())
	s.Equal(1.0, s.fallbackCount("easy", "unavailable"))
}

func (s *ServiceSuite) TestFetchFallsBackWhenUnreachable() {
	server := httptest.NewServer(http.NotFoundHandler())
	endpoint := server.URL
	server.Close()

	cfg := DefaultConfig()
	cfg.Endpoint = endpoint
	svc := New(cfg, nil, s.rnd, internaltestutil.NopLogger(), s.metrics)
	s.rnd.QueueIntn(0)

	s.Equal("GAME", svc.Fetch(s.ctx, model.DifficultyEasy))
}

func (s *ServiceSuite) TestOfflineNeverCallsRemote() {
	svc := New(OfflineConfig(), nil, s.rnd, internaltestutil.NopLogger(), s.metrics)
	s.rnd.QueueIntn(2)

	s.Equal("FUNCTION", svc.Fetch(s.ctx, model.DifficultyHard))
	s.Zero(s.fallbackCount("hard", "unavailable"))
}

func (s *ServiceSuite) TestFallbackUnknownDifficultyUsesEasyList() {
	svc := New(OfflineConfig(), nil, s.rnd, internaltestutil.NopLogger(), s.metrics)

	word := svc.Fallback(model.Difficulty("nightmare"))
	s.Contains(FallbackWords(model.DifficultyEasy), word)
}

func (s *ServiceSuite) TestFallbackWordsAreUppercaseAndSized() {
	for _, d := range model.Difficulties {
		for _, w := range FallbackWords(d) {
			normalized, ok := Normalize(w)
			s.True(ok, w)
			s.Equal(w, normalized)
		}
	}
	s.Equal(4, Length(model.DifficultyEasy))
	s.Equal(6, Length(model.DifficultyMedium))
	s.Equal(8, Length(model.DifficultyHard))
	s.Equal(4, Length(model.Difficulty("")))
}

func (s *ServiceSuite) TestNormalize() {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"apple", "APPLE", true},
		{" Zebra ", "ZEBRA", true},
		{"", "", false},
		{"   ", "", false},
		{"don't", "", false},
		{"naïve", "", false},
		{"abc1", "", false},
	}
	for _, tt := range tests {
		got, ok := Normalize(tt.in)
		s.Equal(tt.ok, ok, tt.in)
		s.Equal(tt.want, got, tt.in)
	}
}
