package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to w
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Fprintln(o.w, string(data))
	} else {
		fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Player:
		o.printPlayer(v)
	case AuthResult:
		o.printAuthResult(v)
	case History:
		o.printHistory(v)
	case Round:
		o.printRound(v)
	case GuessResult:
		o.printGuessResult(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Player response type (matches API)
type Player struct {
	Username    string    `json:"username"`
	TotalScore  int       `json:"total_score"`
	GamesPlayed int       `json:"games_played"`
	CreatedAt   time.Time `json:"created_at"`
}

// AuthResult combines player and token
type AuthResult struct {
	Player       Player    `json:"player"`
	SessionToken string    `json:"session_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// MeResult wraps the current player
type MeResult struct {
	Player Player `json:"player"`
}

// Game is one history entry
type Game struct {
	ID         int64     `json:"id"`
	Word       string    `json:"word"`
	Difficulty string    `json:"difficulty"`
	Daily      bool      `json:"daily"`
	Correct    bool      `json:"correct"`
	Score      int       `json:"score"`
	PlayedAt   time.Time `json:"played_at"`
}

// History response type
type History struct {
	Games []Game `json:"games"`
}

// Round response type
type Round struct {
	Scrambled  string `json:"scrambled"`
	Difficulty string `json:"difficulty"`
	Length     int    `json:"length"`
	Daily      bool   `json:"daily"`
}

// GuessResult response type
type GuessResult struct {
	Correct    bool   `json:"correct"`
	Word       string `json:"word"`
	Score      int    `json:"score"`
	Difficulty string `json:"difficulty"`
	Daily      bool   `json:"daily"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printPlayer(p Player) {
	fmt.Fprintf(o.w, "Player: %s\n", p.Username)
	fmt.Fprintf(o.w, "Total score: %d\n", p.TotalScore)
	fmt.Fprintf(o.w, "Games played: %d\n", p.GamesPlayed)
}

func (o *Output) printAuthResult(a AuthResult) {
	o.printPlayer(a.Player)
	fmt.Fprintf(o.w, "Token: %s\n", a.SessionToken)
}

func (o *Output) printHistory(h History) {
	if len(h.Games) == 0 {
		fmt.Fprintln(o.w, "No games yet.")
		return
	}

	tw := tabwriter.NewWriter(o.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PLAYED\tWORD\tDIFFICULTY\tRESULT\tSCORE")
	for _, g := range h.Games {
		result := "wrong"
		if g.Correct {
			result = "correct"
		}
		difficulty := g.Difficulty
		if g.Daily {
			difficulty += " (daily)"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\n",
			g.PlayedAt.Local().Format("2006-01-02 15:04"), g.Word, difficulty, result, g.Score)
	}
	_ = tw.Flush()
}

func (o *Output) printRound(r Round) {
	if r.Daily {
		fmt.Fprintln(o.w, "Daily challenge")
	}
	fmt.Fprintf(o.w, "Scrambled: %s\n", r.Scrambled)
	fmt.Fprintf(o.w, "Difficulty: %s (%d letters)\n", r.Difficulty, r.Length)
	fmt.Fprintln(o.w, "Answer with: scramble guess <word>")
}

func (o *Output) printGuessResult(g GuessResult) {
	if g.Correct {
		fmt.Fprintln(o.w, "Correct! 🎉")
	} else {
		fmt.Fprintf(o.w, "Wrong! The word was %s\n", g.Word)
	}
	fmt.Fprintf(o.w, "Points earned: %d\n", g.Score)
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Fprintf(o.w, "Status: %s\n", h.Status)
}
