package request

// RegisterRequest is the request body for registering an account
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// StartGameRequest is the request body for starting a game
type StartGameRequest struct {
	Kind  string `json:"kind"`
	Mode  string `json:"mode"`
	Bonus bool   `json:"bonus,omitempty"`
}

// GuessRequest is the request body for submitting a guess
type GuessRequest struct {
	ChampionID string `json:"champion_id"`
}

// AbilityKeyRequest is the request body for the final ability key reveal
type AbilityKeyRequest struct {
	Key string `json:"key"`
}
