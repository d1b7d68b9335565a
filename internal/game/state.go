package game

import "liardeck.com/client/internal/util"

// Phase of a game session as derived from a state snapshot.
type Phase int

const (
	PhaseLobby Phase = iota
	PhaseActive
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseLobby:
		return "LOBBY"
	case PhaseActive:
		return "ACTIVE"
	case PhaseGameOver:
		return "GAME_OVER"
	}
	return "UNKNOWN"
}

// FirstPlayerID is the identity the server hands to the session initiator.
// Snapshots taken before the roster is known fall back to it when deciding
// who owns the start control.
const FirstPlayerID = "player1"

// GameState is the complete server view of the game for one player at one
// instant. A snapshot fully replaces whatever the client held before; the
// client keeps no authoritative game state of its own between fetches.
type GameState struct {
	GameStarted         bool           `json:"game_started"`
	GameWinner          string         `json:"game_winner,omitempty"`
	CurrentTurn         string         `json:"current_turn,omitempty"`
	YourHand            []string       `json:"your_hand,omitempty"`
	AllPlayersCardCount map[string]int `json:"all_players_card_count,omitempty"`
	PlayersEliminated   []string       `json:"players_eliminated,omitempty"`
	ReferenceCard       string         `json:"reference_card,omitempty"`
	CardPileCount       int            `json:"card_pile_count"`
	RouletteIndex       int            `json:"roulette_index"`
	Log                 []string       `json:"log,omitempty"`
	IsEliminated        bool           `json:"is_eliminated"`
	AssignedPlayers     []string       `json:"assigned_players,omitempty"`

	// Some deployments issue the auth credential lazily through the state
	// response instead of the join response.
	AuthKey string `json:"key,omitempty"`
}

// Phase derives the lobby/active/game-over phase from the snapshot.
// A winner ends the game even if game_started is still set.
func (g *GameState) Phase() Phase {
	if g.GameWinner != "" {
		return PhaseGameOver
	}
	if !g.GameStarted {
		return PhaseLobby
	}
	return PhaseActive
}

// HostPlayer returns the identity that owns the start/new-game control.
func (g *GameState) HostPlayer() string {
	if len(g.AssignedPlayers) > 0 {
		return g.AssignedPlayers[0]
	}
	return FirstPlayerID
}

// IsPlayersTurn reports whether the snapshot places the turn on the given player.
func (g *GameState) IsPlayersTurn(playerID string) bool {
	return playerID != "" && g.CurrentTurn == playerID
}

// IsPlayerEliminated reports whether the given player is in the eliminated set.
func (g *GameState) IsPlayerEliminated(playerID string) bool {
	return util.ContainsString(g.PlayersEliminated, playerID)
}
