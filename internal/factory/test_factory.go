package factory

import (
	"net/http"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/wordscramble/internal/dependencies/mocks"
	"github.com/mcoot/wordscramble/internal/metrics"
	"github.com/mcoot/wordscramble/internal/services/auth"
	"github.com/mcoot/wordscramble/internal/services/wordsource"
	"github.com/mcoot/wordscramble/internal/storage/memory"
	"github.com/mcoot/wordscramble/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
	Memory     *memory.Storage
}

// NewTestApp creates an App configured for testing with mocked dependencies.
// The word source is offline so every word comes from the fallback lists.
func NewTestApp() *TestApp {
	return NewTestAppWithWords(wordsource.OfflineConfig(), nil)
}

// NewTestAppWithWords is NewTestApp with the word service pointed at words,
// reached through client (nil for the default client)
func NewTestAppWithWords(words wordsource.Config, client *http.Client) *TestApp {
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()
	store := memory.New().WithNow(mockClock.Now)

	app := newWithDependencies(dependencies{
		store:      store,
		sessions:   store,
		clock:      mockClock,
		random:     mockRandom,
		logger:     testutil.NopLogger(),
		metrics:    metrics.NewForTest(),
		words:      words,
		httpClient: client,
		authConfig: auth.Config{
			SessionDuration: 24 * time.Hour,
			BcryptCost:      bcrypt.MinCost,
		},
	})

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
		Memory:     store,
	}
}
