package scoring

import (
	"strings"

	"github.com/mcoot/wordscramble/internal/model"
)

// Table maps difficulties to the points awarded for a correct answer
type Table struct {
	Points  map[model.Difficulty]int
	Default int
}

// Tiered is the standard table: longer words are worth more
func Tiered() Table {
	return Table{
		Points: map[model.Difficulty]int{
			model.DifficultyEasy:   50,
			model.DifficultyMedium: 100,
			model.DifficultyHard:   150,
		},
		Default: 50,
	}
}

// Flat awards the same points regardless of difficulty
func Flat(points int) Table {
	return Table{Default: points}
}

// Service scores submissions
type Service struct {
	table Table
}

// New creates a new ScoringService
func New(table Table) *Service {
	return &Service{table: table}
}

// Score returns the points for a submission. Incorrect answers score 0.
func (s *Service) Score(correct bool, difficulty model.Difficulty) int {
	if !correct {
		return 0
	}
	if points, ok := s.table.Points[difficulty]; ok {
		return points
	}
	return s.table.Default
}

// IsCorrect compares a player's answer with the target, ignoring case and surrounding whitespace
func (s *Service) IsCorrect(answer, target string) bool {
	normalized := strings.ToUpper(strings.TrimSpace(answer))
	return normalized != "" && normalized == strings.ToUpper(target)
}

// Evaluate checks an answer and returns its correctness and score together
func (s *Service) Evaluate(answer, target string, difficulty model.Difficulty) (bool, int) {
	correct := s.IsCorrect(answer, target)
	return correct, s.Score(correct, difficulty)
}
