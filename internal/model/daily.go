package model

import "time"

// DateLayout is the calendar-date key format for daily challenges
const DateLayout = "2006-01-02"

// DailyChallenge is the single word assigned to a calendar date
type DailyChallenge struct {
	ID        int64
	Date      string // YYYY-MM-DD
	Word      string
	CreatedAt time.Time
}
