package view

import (
	"sort"

	"liardeck.com/client/internal/game"
)

// Sink receives rendered views and user-facing notices. The terminal printer
// is the real implementation; tests plug in a recording sink.
type Sink interface {
	Apply(v View)
	Notify(msg string)
}

// ProgressSink is implemented by sinks that can show a busy indicator while a
// network call is in flight.
type ProgressSink interface {
	Progress(loading bool)
}

// OpponentView is one row of the opponents panel.
type OpponentView struct {
	PlayerID   string
	CardCount  int
	Eliminated bool
}

// CardView is one card of the local hand.
type CardView struct {
	Name     string
	Selected bool
}

// View is the full description of the desired UI for one snapshot. It is a
// plain value; producing it has no side effects.
type View struct {
	Phase         game.Phase
	LocalPlayerID string

	// Lobby
	LobbyPlayers []string
	WaitingOn    string

	// Start / new-game control (host only)
	ShowStart  bool
	StartLabel string

	// Game over
	Winner string

	// Active table
	Eliminated    bool
	ReferenceCard string
	PileCount     int
	CurrentTurn   string
	RouletteIndex int
	Opponents     []OpponentView
	Hand          []CardView
	CanPlay       bool
	CanChallenge  bool

	LogLines []string
}

// Render maps a snapshot plus the local selection onto a view. Selection is
// reconciled against the snapshot's hand: a selected card that is no longer
// in the hand loses its selection.
func Render(state *game.GameState, localID string, selection map[string]bool) View {
	v := View{
		Phase:         state.Phase(),
		LocalPlayerID: localID,
		LogLines:      append([]string{}, state.Log...),
	}
	if len(v.LogLines) == 0 {
		v.LogLines = []string{"Welcome to the game lobby!"}
	}

	isHost := localID == state.HostPlayer()

	switch v.Phase {
	case game.PhaseLobby:
		v.LobbyPlayers = append([]string{}, state.AssignedPlayers...)
		if isHost {
			v.ShowStart = true
			v.StartLabel = "Start Game"
		} else {
			v.WaitingOn = state.HostPlayer()
		}

	case game.PhaseGameOver:
		v.Winner = state.GameWinner
		if isHost {
			v.ShowStart = true
			v.StartLabel = "Play New Game"
		}

	case game.PhaseActive:
		v.ReferenceCard = state.ReferenceCard
		v.PileCount = state.CardPileCount
		v.CurrentTurn = state.CurrentTurn
		v.RouletteIndex = state.RouletteIndex
		v.Opponents = renderOpponents(state, localID)

		if state.IsEliminated {
			v.Eliminated = true
			return v
		}

		isMyTurn := state.IsPlayersTurn(localID)
		for _, card := range state.YourHand {
			v.Hand = append(v.Hand, CardView{
				Name:     card,
				Selected: selection[card],
			})
		}
		v.CanPlay = isMyTurn
		v.CanChallenge = isMyTurn && state.CardPileCount > 0
	}

	return v
}

func renderOpponents(state *game.GameState, localID string) []OpponentView {
	opponents := make([]OpponentView, 0)
	for playerID, count := range state.AllPlayersCardCount {
		if playerID == localID {
			continue
		}
		opponents = append(opponents, OpponentView{
			PlayerID:   playerID,
			CardCount:  count,
			Eliminated: state.IsPlayerEliminated(playerID),
		})
	}
	// Map iteration order is random; keep the panel stable.
	sort.Slice(opponents, func(i, j int) bool {
		return opponents[i].PlayerID < opponents[j].PlayerID
	})
	return opponents
}

// NopSink discards everything. Scripted players that nobody watches use it.
type NopSink struct{}

func (NopSink) Apply(v View)       {}
func (NopSink) Notify(msg string)  {}
func (NopSink) Progress(flag bool) {}
