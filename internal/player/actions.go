package player

import (
	"context"

	"github.com/pkg/errors"

	"liardeck.com/client/internal/game"
)

// ErrNoCardsSelected is returned by SubmitPlay when the selection is empty.
// No network call is made in that case.
var ErrNoCardsSelected = errors.New("no cards selected")

// SubmitStart asks the server to start a new game. Whatever the server says,
// the session refreshes once and resumes polling: the command's effect is
// only observable through the next snapshot.
func (p *Player) SubmitStart(ctx context.Context) error {
	p.progress(true)
	resp, err := p.restClient.Start(ctx)
	p.progress(false)
	p.surfaceResult("start the game", resp, err)
	p.resumeSync(ctx)
	if err != nil {
		return errors.Wrap(err, "Error starting game")
	}
	return nil
}

// SubmitPlay plays the currently selected cards. An empty selection is
// rejected locally with a user-visible message and zero network calls.
func (p *Player) SubmitPlay(ctx context.Context) error {
	cards := p.Selection()
	if len(cards) == 0 {
		p.notifyf("Select at least one card to play.")
		return ErrNoCardsSelected
	}

	p.progress(true)
	resp, err := p.restClient.Play(ctx, p.PlayerID, cards)
	p.progress(false)
	p.surfaceResult("play cards", resp, err)
	p.ClearSelection()
	p.resumeSync(ctx)
	if err != nil {
		return errors.Wrap(err, "Error playing cards")
	}
	return nil
}

// SubmitChallenge challenges the previous play.
func (p *Player) SubmitChallenge(ctx context.Context) error {
	p.progress(true)
	resp, err := p.restClient.Challenge(ctx, p.PlayerID)
	p.progress(false)
	p.surfaceResult("challenge", resp, err)
	p.resumeSync(ctx)
	if err != nil {
		return errors.Wrap(err, "Error challenging")
	}
	return nil
}

func (p *Player) surfaceResult(action string, resp *game.CommandResponse, err error) {
	if err != nil {
		p.logger.Error().Err(err).Msgf("Error trying to %s", action)
		p.notifyf("Failed to %s. Please try again.", action)
		return
	}
	if resp != nil && resp.Failed() {
		p.notifyf("Error trying to %s: %s", action, resp.Message)
	}
}

// resumeSync performs the mandatory refresh after an action and restarts the
// background poll loop. It runs regardless of whether the action succeeded.
func (p *Player) resumeSync(ctx context.Context) {
	p.RefreshOnce(ctx)
	go p.PollUntilMyTurn(ctx)
}
