package scramble

import (
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/wordscramble/internal/dependencies/mocks"
	"github.com/mcoot/wordscramble/internal/dependencies/random"
)

type ServiceSuite struct {
	suite.Suite
	rnd     *mocks.MockRandom
	service *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.rnd = mocks.NewMockRandom()
	s.service = New(s.rnd)
}

func sortedLetters(word string) string {
	letters := strings.Split(word, "")
	sort.Strings(letters)
	return strings.Join(letters, "")
}

func (s *ServiceSuite) TestScrambleIsPermutation() {
	svc := New(random.New())
	for _, word := range []string{"GAME", "PYTHON", "ALGORITHM", "LETTER"} {
		for i := 0; i < 20; i++ {
			out := svc.Scramble(word)
			s.Equal(sortedLetters(word), sortedLetters(out), word)
			s.NotEqual(word, out, word)
		}
	}
}

func (s *ServiceSuite) TestScrambleDeterministicWithMockRandom() {
	// Fallback 0 swaps every position with index 0, rotating the word left
	s.Equal("AMEG", s.service.Scramble("GAME"))
}

func (s *ServiceSuite) TestScrambleRerollsIdentity() {
	// First shuffle is the identity (j == i for each step), second rotates
	s.rnd.QueueIntn(3, 2, 1)

	s.Equal("AMEG", s.service.Scramble("GAME"))
}

func (s *ServiceSuite) TestScrambleGivesUpAfterMaxAttempts() {
	// Every draw clamps to i, so every shuffle is the identity
	s.rnd.Fallback = 99

	s.Equal("GAME", s.service.Scramble("GAME"))
}

func (s *ServiceSuite) TestScrambleDegenerateWords() {
	s.Equal("", s.service.Scramble(""))
	s.Equal("A", s.service.Scramble("A"))
	s.Equal("AAAA", s.service.Scramble("AAAA"))
}

func (s *ServiceSuite) TestScrambleTwoLetters() {
	s.Equal("OG", s.service.Scramble("GO"))
}
