package request

// Credentials is the body of both register and login
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// StartGameRequest is the request body for starting a game.
// A missing or unknown difficulty plays easy.
type StartGameRequest struct {
	Difficulty string `json:"difficulty,omitempty"`
}

// SubmitRequest is the request body for answering the current word
type SubmitRequest struct {
	Answer string `json:"answer"`
}
