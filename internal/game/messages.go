package game

// JoinResponse is the payload returned by POST /game/join.
type JoinResponse struct {
	PlayerID string `json:"player_id"`
	Key      string `json:"key,omitempty"`
	Message  string `json:"message,omitempty"`
}

// CommandResponse is the payload returned by the start/play/challenge endpoints.
// The body is never treated as authoritative game state; the effect of a
// command is only observable through the next snapshot.
type CommandResponse struct {
	Status           string `json:"status,omitempty"`
	Message          string `json:"message,omitempty"`
	EliminatedPlayer string `json:"eliminated_player,omitempty"`
}

// Failed reports whether the server rejected the command.
func (c *CommandResponse) Failed() bool {
	return c.Status == "ERROR"
}

// StartRequest is the payload for POST /game/start.
type StartRequest struct {
	Key string `json:"key,omitempty"`
}

// PlayRequest is the payload for POST /game/play.
type PlayRequest struct {
	PlayerID string   `json:"player_id"`
	Cards    []string `json:"cards"`
	Key      string   `json:"key,omitempty"`
}

// ChallengeRequest is the payload for POST /game/challenge.
type ChallengeRequest struct {
	PlayerID string `json:"player_id"`
	Key      string `json:"key,omitempty"`
}
