package scramble

import "github.com/mcoot/wordscramble/internal/dependencies/random"

// DefaultMaxAttempts bounds how often a permutation equal to the input is re-rolled
const DefaultMaxAttempts = 10

// Service produces letter permutations of target words
type Service struct {
	rnd         random.Random
	maxAttempts int
}

// New creates a new Scrambler
func New(rnd random.Random) *Service {
	return &Service{
		rnd:         rnd,
		maxAttempts: DefaultMaxAttempts,
	}
}

// Scramble returns a permutation of word's letters that differs from word whenever
// that is possible. Words with fewer than two distinct letters come back unchanged.
func (s *Service) Scramble(word string) string {
	letters := []rune(word)
	if distinct(letters) < 2 {
		return word
	}

	scrambled := word
	for attempt := 0; attempt < s.maxAttempts; attempt++ {
		shuffled := make([]rune, len(letters))
		copy(shuffled, letters)
		s.rnd.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})

		scrambled = string(shuffled)
		if scrambled != word {
			return scrambled
		}
	}
	return scrambled
}

func distinct(letters []rune) int {
	seen := make(map[rune]struct{}, len(letters))
	for _, r := range letters {
		seen[r] = struct{}{}
	}
	return len(seen)
}
