package mocks

import (
	"sync"

	"github.com/mcoot/wordscramble/internal/dependencies/random"
)

// MockRandom is a mock implementation of Random for testing.
// Intn draws from a queue of results; once the queue is empty it returns
// Fallback clamped to [0, n).
type MockRandom struct {
	mu sync.Mutex

	IntnResults []int
	intnIndex   int
	Fallback    int
}

var _ random.Random = (*MockRandom)(nil)

// NewMockRandom creates a new MockRandom
func NewMockRandom() *MockRandom {
	return &MockRandom{}
}

// Intn returns the next queued result, or the fallback if none remain
func (r *MockRandom) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	if n <= 0 {
		return 0
	}
	result := r.Fallback
	if r.intnIndex < len(r.IntnResults) {
		result = r.IntnResults[r.intnIndex]
		r.intnIndex++
	}
	if result < 0 || result >= n {
		return n - 1
	}
	return result
}

// Shuffle runs Fisher-Yates using the queued Intn results
func (r *MockRandom) Shuffle(n int, swap func(i, j int)) {
	random.FisherYates(r, n, swap)
}

// QueueIntn adds values to the Intn result queue
func (r *MockRandom) QueueIntn(values ...int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.IntnResults = append(r.IntnResults, values...)
}

// Reset clears all queued results
func (r *MockRandom) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.IntnResults = nil
	r.intnIndex = 0
}
