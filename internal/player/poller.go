package player

import (
	"context"

	"golang.org/x/time/rate"

	"liardeck.com/client/internal/game"
)

// RefreshOnce issues a single state fetch and renders the result. Returns nil
// when no identity is set or when the fetch or parse fails; callers must
// treat nil as "state unknown" and not act on it. A failed fetch never
// touches the previously rendered state.
func (p *Player) RefreshOnce(ctx context.Context) *game.GameState {
	if p.PlayerID == "" {
		return nil
	}
	p.progress(true)
	defer p.progress(false)

	seq := p.issueSeq()
	state, err := p.restClient.GetState(ctx, p.PlayerID)
	if err != nil {
		p.logger.Error().Err(err).Msg("Error fetching game state")
		return nil
	}
	p.applySnapshot(seq, state)
	return state
}

func (p *Player) issueSeq() uint64 {
	p.seqMu.Lock()
	defer p.seqMu.Unlock()
	p.nextSeq++
	return p.nextSeq
}

// PollUntilMyTurn runs the background refresh loop at the fixed poll cadence.
// The loop stops when a fetch fails, a winner is declared, or the turn
// reaches this player; the caller is expected to restart it after any user
// action. Single-flight: if a loop is already running, the call is a no-op
// and returns false. Cancelling the context stops the loop at its next wait.
func (p *Player) PollUntilMyTurn(ctx context.Context) bool {
	if !p.tryStartPolling() {
		return false
	}
	defer p.stopPolling()

	// Burst of one: the first wait returns immediately, each one after that
	// honors the poll cadence.
	limiter := rate.NewLimiter(rate.Every(p.pollInterval), 1)
	for {
		if err := limiter.Wait(ctx); err != nil {
			return true
		}
		state := p.RefreshOnce(ctx)
		if state == nil || state.GameWinner != "" || state.IsPlayersTurn(p.PlayerID) {
			return true
		}
	}
}

// IsPolling reports whether a poll loop is currently running.
func (p *Player) IsPolling() bool {
	p.pollMu.Lock()
	defer p.pollMu.Unlock()
	return p.polling
}

func (p *Player) tryStartPolling() bool {
	p.pollMu.Lock()
	defer p.pollMu.Unlock()
	if p.polling {
		return false
	}
	p.polling = true
	return true
}

func (p *Player) stopPolling() {
	p.pollMu.Lock()
	p.polling = false
	p.pollMu.Unlock()
}
