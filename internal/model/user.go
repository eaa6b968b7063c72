package model

import "time"

// User is a registered account with its cumulative game totals
type User struct {
	ID           int64
	Username     string // login username, unique and case-sensitive
	PasswordHash string // bcrypt hash
	TotalScore   int
	GamesPlayed  int
	CreatedAt    time.Time
}
