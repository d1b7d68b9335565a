package driver

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"liardeck.com/client/internal/gamescript"
	"liardeck.com/client/internal/logging"
	"liardeck.com/client/internal/player"
	"liardeck.com/client/internal/store"
	"liardeck.com/client/internal/view"
)

// GameRunner drives a full table of scripted players through one game:
// everyone joins, the first joiner starts the game, each player acts on its
// turns per the script, and the runner waits for a winner.
type GameRunner struct {
	logger       *zerolog.Logger
	playerLogger *zerolog.Logger
	sessionID    string
	apiServerURL string
	players      *gamescript.Players
	script       *gamescript.Script

	bots []*player.Player

	mu     sync.Mutex
	cancel context.CancelFunc
	winner string
}

// NewGameRunner creates new instance of GameRunner.
func NewGameRunner(apiServerURL string, players *gamescript.Players, script *gamescript.Script, runnerLogger *zerolog.Logger, playerLogger *zerolog.Logger) (*GameRunner, error) {
	if players == nil || len(players.Players) == 0 {
		return nil, fmt.Errorf("No players configured")
	}
	if script == nil {
		return nil, fmt.Errorf("No game script configured")
	}
	sessionID := uuid.New().String()
	if runnerLogger == nil {
		runnerLogger = logging.GetZeroLogger("GameRunner", nil)
	}
	if playerLogger == nil {
		playerLogger = logging.GetZeroLogger("Player", nil)
	}
	l := runnerLogger.With().Str(logging.SessionIDKey, sessionID).Logger()

	gr := GameRunner{
		logger:       &l,
		playerLogger: playerLogger,
		sessionID:    sessionID,
		apiServerURL: apiServerURL,
		players:      players,
		script:       script,
	}
	return &gr, nil
}

// SessionID returns the unique ID assigned to this runner.
func (gr *GameRunner) SessionID() string {
	return gr.sessionID
}

// Winner returns the winning player ID once the game is over.
func (gr *GameRunner) Winner() string {
	gr.mu.Lock()
	defer gr.mu.Unlock()
	return gr.winner
}

// Terminate causes this GameRunner to eventually terminate, abandoning the
// ongoing game.
func (gr *GameRunner) Terminate() {
	gr.mu.Lock()
	cancel := gr.cancel
	gr.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// Run joins the players and plays the game to completion. Waits until the
// game is over or the context is cancelled.
func (gr *GameRunner) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	gr.mu.Lock()
	gr.cancel = cancel
	gr.mu.Unlock()

	// Join everyone first. The first joiner gets the distinguished seat that
	// owns the start control.
	for _, playerConfig := range gr.players.Players {
		deviceID := playerConfig.DeviceID
		if deviceID == "" {
			deviceID = uuid.New().String()
		}
		bot, err := player.NewPlayer(player.Config{
			Name:               playerConfig.Name,
			DeviceID:           deviceID,
			PlayerID:           playerConfig.ResumeID,
			APIServerURL:       gr.apiServerURL,
			RequireAuth:        gr.script.BotConfig.RequireAuth,
			PollIntervalMs:     gr.script.BotConfig.PollIntervalMs,
			MinActionPauseTime: gr.script.BotConfig.MinActionPauseTime,
			MaxActionPauseTime: gr.script.BotConfig.MaxActionPauseTime,
			Script:             gr.script,
		}, store.NewMemoryCredentialStore(), view.NopSink{}, gr.playerLogger)
		if err != nil {
			return errors.Wrapf(err, "Unable to create player %s", playerConfig.Name)
		}
		if err := bot.JoinOrResume(ctx); err != nil {
			return errors.Wrapf(err, "Player %s could not join", playerConfig.Name)
		}
		gr.bots = append(gr.bots, bot)
	}

	// First snapshot for everyone, then kick off the background loops.
	for _, bot := range gr.bots {
		bot.RefreshOnce(ctx)
		go bot.PollUntilMyTurn(ctx)
	}

	host := gr.bots[0]
	if err := host.SubmitStart(ctx); err != nil {
		gr.logger.Error().Err(err).Msg("Host could not start the game")
	}

	var wg sync.WaitGroup
	for _, bot := range gr.bots {
		wg.Add(1)
		go func(bot *player.Player) {
			defer wg.Done()
			gr.actLoop(ctx, bot)
		}(bot)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return errors.Wrap(err, "Game abandoned")
	}

	gr.logger.Info().Msgf("Game over. Winner is %s", gr.Winner())
	if expected := gr.script.AfterGame.VerifyWinner; expected != "" {
		if !cmp.Equal(gr.Winner(), expected) {
			return fmt.Errorf("Winner verification failed: expected [%s], got [%s]", expected, gr.Winner())
		}
	}
	return nil
}

// actLoop services one player's turn signals until the game ends.
func (gr *GameRunner) actLoop(ctx context.Context, bot *player.Player) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-bot.TurnSignal():
		}

		state := bot.LastState()
		if state == nil {
			continue
		}
		if state.GameWinner != "" {
			gr.setWinner(state.GameWinner)
			return
		}
		if state.IsEliminated {
			// Keep observing; the poll loop runs until a winner shows up.
			continue
		}
		if state.IsPlayersTurn(bot.PlayerID) {
			if err := bot.PlayScriptedTurn(ctx); err != nil && err != player.ErrNoCardsSelected {
				gr.logger.Error().Err(err).
					Str(logging.PlayerIDKey, bot.PlayerID).
					Msg("Error playing scripted turn")
			}
		}
	}
}

func (gr *GameRunner) setWinner(winner string) {
	gr.mu.Lock()
	if gr.winner == "" {
		gr.winner = winner
	}
	gr.mu.Unlock()
}

// Snapshot of the runner for status reporting.
type RunnerStatus struct {
	SessionID string `json:"sessionId"`
	Winner    string `json:"winner,omitempty"`
	Players   int    `json:"players"`
}

// Status returns the current status of the runner.
func (gr *GameRunner) Status() RunnerStatus {
	return RunnerStatus{
		SessionID: gr.sessionID,
		Winner:    gr.Winner(),
		Players:   len(gr.players.Players),
	}
}
