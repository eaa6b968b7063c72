package model

import "time"

// Session is the per-browser state of an authenticated user.
// CurrentWord is empty when no game is in play.
type Session struct {
	Token       string
	Username    string
	CurrentWord string
	Difficulty  Difficulty
	Daily       bool
	CreatedAt   time.Time
	ExpiresAt   time.Time
}

// InGame reports whether a target word is waiting for a submission
func (s *Session) InGame() bool {
	return s.CurrentWord != ""
}

// StartRound stores the plaintext target, replacing any round in progress
func (s *Session) StartRound(word string, difficulty Difficulty, daily bool) {
	s.CurrentWord = word
	s.Difficulty = difficulty
	s.Daily = daily
}

// ClearRound forgets the current target word
func (s *Session) ClearRound() {
	s.CurrentWord = ""
	s.Difficulty = ""
	s.Daily = false
}

// Expired reports whether the session is past its expiry at time now
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}
