package game

import (
	"testing"
)

func TestPhase(t *testing.T) {
	testCases := []struct {
		name     string
		state    GameState
		expected Phase
	}{
		{
			name:     "not started",
			state:    GameState{},
			expected: PhaseLobby,
		},
		{
			name:     "started",
			state:    GameState{GameStarted: true, CurrentTurn: "player1"},
			expected: PhaseActive,
		},
		{
			name:     "winner declared",
			state:    GameState{GameStarted: true, GameWinner: "player3"},
			expected: PhaseGameOver,
		},
		{
			name: "winner wins over started flag",
			state: GameState{
				GameStarted: false,
				GameWinner:  "player1",
			},
			expected: PhaseGameOver,
		},
	}
	for _, tc := range testCases {
		if got := tc.state.Phase(); got != tc.expected {
			t.Errorf("%s: expected phase %s, got %s", tc.name, tc.expected, got)
		}
	}
}

func TestHostPlayer(t *testing.T) {
	state := GameState{AssignedPlayers: []string{"player7", "player8"}}
	if host := state.HostPlayer(); host != "player7" {
		t.Errorf("Expected host player7, got %s", host)
	}

	// No roster known yet; fall back to the distinguished first seat.
	empty := GameState{}
	if host := empty.HostPlayer(); host != FirstPlayerID {
		t.Errorf("Expected host %s, got %s", FirstPlayerID, host)
	}
}

func TestIsPlayersTurn(t *testing.T) {
	state := GameState{GameStarted: true, CurrentTurn: "player2"}
	if !state.IsPlayersTurn("player2") {
		t.Error("Expected player2's turn")
	}
	if state.IsPlayersTurn("player1") {
		t.Error("Did not expect player1's turn")
	}
	if state.IsPlayersTurn("") {
		t.Error("An empty identity never holds the turn")
	}
}

func TestIsPlayerEliminated(t *testing.T) {
	state := GameState{PlayersEliminated: []string{"player3"}}
	if !state.IsPlayerEliminated("player3") {
		t.Error("Expected player3 eliminated")
	}
	if state.IsPlayerEliminated("player1") {
		t.Error("Did not expect player1 eliminated")
	}
}
