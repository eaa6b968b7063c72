package pages

import (
	"github.com/mcoot/wordscramble/internal/model"
	"github.com/mcoot/wordscramble/internal/web/templates/layout"
)

// LoginData holds data for the login page
type LoginData struct {
	layout.PageData
	Username string
	Error    string
}

// RegisterData holds data for the registration page
type RegisterData struct {
	layout.PageData
	Username string
	Error    string
}

// DashboardData holds data for the dashboard page
type DashboardData struct {
	layout.PageData
	TotalScore  int
	GamesPlayed int
	Recent      []*model.GameRecord
}

// GameData holds data for the play page
type GameData struct {
	layout.PageData
	Round *model.Round
}

// ResultData holds data for the result page
type ResultData struct {
	layout.PageData
	Result *model.Result
}

// Message is the headline shown for a result
func (d ResultData) Message() string {
	if d.Result.Correct {
		return "Correct! 🎉"
	}
	return "Wrong! The word was " + d.Result.Word
}

// ErrorData holds data for the error page
type ErrorData struct {
	layout.PageData
	Status  int
	Message string
}

func historyDifficulty(g *model.GameRecord) string {
	if g.Daily {
		return g.Difficulty.String() + " (daily)"
	}
	return g.Difficulty.String()
}

func historyOutcome(g *model.GameRecord) string {
	if g.Correct {
		return "correct"
	}
	return "wrong"
}
