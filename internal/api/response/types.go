package response

import (
	"time"

	"github.com/mcoot/wordscramble/internal/model"
)

// Player represents a user in API responses
type Player struct {
	Username    string    `json:"username"`
	TotalScore  int       `json:"total_score"`
	GamesPlayed int       `json:"games_played"`
	CreatedAt   time.Time `json:"created_at"`
}

// PlayerFromModel converts a model.User to a response Player
func PlayerFromModel(u *model.User) Player {
	return Player{
		Username:    u.Username,
		TotalScore:  u.TotalScore,
		GamesPlayed: u.GamesPlayed,
		CreatedAt:   u.CreatedAt,
	}
}

// AuthResponse is the response for authentication endpoints
type AuthResponse struct {
	Player       Player    `json:"player"`
	SessionToken string    `json:"session_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// AuthResponseFromSession creates an AuthResponse from a user and their new session
func AuthResponseFromSession(u *model.User, s *model.Session) AuthResponse {
	return AuthResponse{
		Player:       PlayerFromModel(u),
		SessionToken: s.Token,
		ExpiresAt:    s.ExpiresAt,
	}
}

// MeResponse is the response for the current player
type MeResponse struct {
	Player Player `json:"player"`
}

// Round is a started game as seen by the player
type Round struct {
	Scrambled  string `json:"scrambled"`
	Difficulty string `json:"difficulty"`
	Length     int    `json:"length"`
	Daily      bool   `json:"daily"`
}

// RoundFromModel converts a model.Round
func RoundFromModel(r *model.Round) Round {
	return Round{
		Scrambled:  r.Scrambled,
		Difficulty: r.Difficulty.String(),
		Length:     r.Length,
		Daily:      r.Daily,
	}
}

// Result is the outcome of a submitted answer
type Result struct {
	Correct    bool   `json:"correct"`
	Word       string `json:"word"`
	Score      int    `json:"score"`
	Difficulty string `json:"difficulty"`
	Daily      bool   `json:"daily"`
}

// ResultFromModel converts a model.Result
func ResultFromModel(r *model.Result) Result {
	return Result{
		Correct:    r.Correct,
		Word:       r.Word,
		Score:      r.Score,
		Difficulty: r.Difficulty.String(),
		Daily:      r.Daily,
	}
}

// Game is one entry of a player's history
type Game struct {
	ID         int64     `json:"id"`
	Word       string    `json:"word"`
	Difficulty string    `json:"difficulty"`
	Daily      bool      `json:"daily"`
	Correct    bool      `json:"correct"`
	Score      int       `json:"score"`
	PlayedAt   time.Time `json:"played_at"`
}

// GameFromModel converts a model.GameRecord
func GameFromModel(g *model.GameRecord) Game {
	return Game{
		ID:         g.ID,
		Word:       g.Word,
		Difficulty: g.Difficulty.String(),
		Daily:      g.Daily,
		Correct:    g.Correct,
		Score:      g.Score,
		PlayedAt:   g.PlayedAt,
	}
}

// HistoryResponse lists a player's games, newest first
type HistoryResponse struct {
	Games []Game `json:"games"`
}

// HistoryFromModel converts a slice of game records
func HistoryFromModel(games []*model.GameRecord) HistoryResponse {
	out := make([]Game, 0, len(games))
	for _, g := range games {
		out = append(out, GameFromModel(g))
	}
	return HistoryResponse{Games: out}
}
