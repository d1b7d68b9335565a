package player

import (
	"context"
	"time"

	"liardeck.com/client/internal/game"
	"liardeck.com/client/internal/gamescript"
	"liardeck.com/client/internal/util"
)

// ScriptBasedDecision decides the player's next move based on the
// pre-defined scenario. Turns are consumed in script order; once the script
// runs out, the default policy applies.
type ScriptBasedDecision struct {
	turns []gamescript.Turn
	next  int
}

// NewScriptBasedDecision builds the decision source for one player from the
// game script.
func NewScriptBasedDecision(script *gamescript.Script, playerName string) *ScriptBasedDecision {
	return &ScriptBasedDecision{
		turns: script.TurnsForPlayer(playerName),
	}
}

// NextTurn returns the next scripted turn, adjusted to what the snapshot
// allows. A scripted challenge against an empty pile degrades to the default
// play, matching the renderer's gating of the challenge control.
func (s *ScriptBasedDecision) NextTurn(state *game.GameState) gamescript.Turn {
	if s == nil || s.next >= len(s.turns) {
		return defaultTurn()
	}
	turn := s.turns[s.next]
	s.next++
	if turn.Action == gamescript.ActionChallenge && state.CardPileCount == 0 {
		return defaultTurn()
	}
	return turn
}

func defaultTurn() gamescript.Turn {
	return gamescript.Turn{Action: gamescript.ActionPlay, Cards: 1}
}

// SelectCards picks cards from the hand for a play turn. Honest turns prefer
// cards matching the reference card; bluff turns prefer the rest. The count
// is capped at the hand size.
func SelectCards(state *game.GameState, turn gamescript.Turn) []string {
	n := turn.Cards
	if n <= 0 {
		n = 1
	}
	if n > len(state.YourHand) {
		n = len(state.YourHand)
	}

	var matching, others []string
	for _, card := range state.YourHand {
		if card == state.ReferenceCard {
			matching = append(matching, card)
		} else {
			others = append(others, card)
		}
	}

	var ordered []string
	if turn.Bluff {
		ordered = append(others, matching...)
	} else {
		ordered = append(matching, others...)
	}
	return ordered[:n]
}

// PlayScriptedTurn performs one scripted action. It is a no-op unless the
// last snapshot places the turn on this player.
func (p *Player) PlayScriptedTurn(ctx context.Context) error {
	state := p.LastState()
	if state == nil || !state.IsPlayersTurn(p.PlayerID) || state.IsEliminated {
		return nil
	}

	p.pause()

	turn := p.decision.NextTurn(state)
	if turn.Action == gamescript.ActionChallenge {
		return p.SubmitChallenge(ctx)
	}

	p.ClearSelection()
	for _, card := range SelectCards(state, turn) {
		p.ToggleCard(card)
	}
	return p.SubmitPlay(ctx)
}

// pause simulates a human thinking before acting.
func (p *Player) pause() {
	min := int(p.config.MinActionPauseTime)
	max := int(p.config.MaxActionPauseTime)
	if max <= 0 || max < min {
		return
	}
	time.Sleep(util.GetRandomMilliseconds(min, max))
}
