package player

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"liardeck.com/client/internal/game"
	"liardeck.com/client/internal/gamescript"
)

func TestSelectCards(t *testing.T) {
	state := &game.GameState{
		YourHand:      []string{"King", "Ace", "Queen", "Ace"},
		ReferenceCard: "Ace",
	}
	tests := []struct {
		name     string
		turn     gamescript.Turn
		expected []string
	}{
		{
			name:     "honest prefers matching cards",
			turn:     gamescript.Turn{Action: gamescript.ActionPlay, Cards: 2},
			expected: []string{"Ace", "Ace"},
		},
		{
			name:     "bluff prefers the rest",
			turn:     gamescript.Turn{Action: gamescript.ActionPlay, Cards: 2, Bluff: true},
			expected: []string{"King", "Queen"},
		},
		{
			name:     "count capped at hand size",
			turn:     gamescript.Turn{Action: gamescript.ActionPlay, Cards: 9},
			expected: []string{"Ace", "Ace", "King", "Queen"},
		},
		{
			name:     "zero cards defaults to one",
			turn:     gamescript.Turn{Action: gamescript.ActionPlay},
			expected: []string{"Ace"},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := SelectCards(state, test.turn)
			if !cmp.Equal(got, test.expected) {
				t.Errorf("Unexpected cards.\nDiff: %s", cmp.Diff(test.expected, got))
			}
		})
	}
}

func TestNextTurn(t *testing.T) {
	script := &gamescript.Script{
		Turns: []gamescript.Turn{
			{Player: "host", Action: gamescript.ActionChallenge},
			{Player: "host", Action: gamescript.ActionPlay, Cards: 2},
			{Player: "north", Action: gamescript.ActionPlay, Cards: 3},
		},
	}
	d := NewScriptBasedDecision(script, "host")

	// A scripted challenge against an empty pile degrades to the default play.
	turn := d.NextTurn(&game.GameState{CardPileCount: 0})
	if turn.Action != gamescript.ActionPlay || turn.Cards != 1 {
		t.Errorf("Expected degraded default play, got %+v", turn)
	}

	turn = d.NextTurn(&game.GameState{CardPileCount: 2})
	if turn.Action != gamescript.ActionPlay || turn.Cards != 2 {
		t.Errorf("Expected scripted play of 2, got %+v", turn)
	}

	// Script exhausted; the default policy applies from here on.
	turn = d.NextTurn(&game.GameState{CardPileCount: 2})
	if turn.Action != gamescript.ActionPlay || turn.Cards != 1 {
		t.Errorf("Expected default play after script exhaustion, got %+v", turn)
	}
}
