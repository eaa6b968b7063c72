package model

import "time"

// GameRecord is the immutable outcome of a single submission
type GameRecord struct {
	ID         int64
	Username   string
	Word       string // uppercase target word
	Difficulty Difficulty
	Daily      bool
	Correct    bool
	Score      int
	PlayedAt   time.Time
}

// Round is what a player sees when a game starts
type Round struct {
	Scrambled  string
	Difficulty Difficulty
	Length     int
	Daily      bool
}

// Result is the outcome of a submission, returned to the player
type Result struct {
	Correct    bool
	Answer     string
	Word       string
	Score      int
	Difficulty Difficulty
	Daily      bool
}
