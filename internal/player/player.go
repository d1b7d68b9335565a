package player

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/looplab/fsm"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"liardeck.com/client/internal/game"
	"liardeck.com/client/internal/gamescript"
	"liardeck.com/client/internal/logging"
	"liardeck.com/client/internal/rest"
	"liardeck.com/client/internal/store"
	"liardeck.com/client/internal/util"
	"liardeck.com/client/internal/view"
)

// Config holds the configuration for a player session.
type Config struct {
	Name     string
	DeviceID string

	// PlayerID resumes an existing seat. When empty, the player joins as a
	// new seat and the server assigns the identity.
	PlayerID string

	APIServerURL  string
	APITimeoutSec uint32

	// RequireAuth makes the session track the server-issued credential and
	// send it with every request. Deployments without auth leave it off.
	RequireAuth bool

	PollIntervalMs uint32

	MinActionPauseTime uint32
	MaxActionPauseTime uint32

	// Script drives the player's turns when it runs unattended.
	Script *gamescript.Script
}

// Player owns one seat in the game: identity acquisition, state polling,
// action submission, and the local card selection. All session state lives on
// the instance so independent sessions can run side by side.
type Player struct {
	logger *zerolog.Logger
	config Config

	restClient *rest.RestClient
	credStore  store.CredentialStore
	sink       view.Sink

	// PlayerID is set once during the join phase and read-only afterwards.
	PlayerID string

	// state of the session
	sm *fsm.FSM

	// single-flight flag for the poll loop
	pollMu  sync.Mutex
	polling bool

	pollInterval time.Duration

	// Monotonic sequence numbers fence out-of-order snapshot responses:
	// a response older than the last one applied is never rendered.
	seqMu       sync.Mutex
	nextSeq     uint64
	lastApplied uint64

	mu         sync.Mutex
	lastState  *game.GameState
	selection  map[string]bool
	transcript []string
	seenLog    *util.Queue

	chMyTurn chan struct{}

	decision *ScriptBasedDecision
}

// NewPlayer creates an instance of Player.
func NewPlayer(playerConfig Config, credStore store.CredentialStore, sink view.Sink, logger *zerolog.Logger) (*Player, error) {
	if logger == nil {
		logger = logging.GetZeroLogger("Player", nil)
	}
	l := logger.With().Str(logging.PlayerNameKey, playerConfig.Name).Logger()
	if sink == nil {
		sink = view.NopSink{}
	}
	if credStore == nil {
		credStore = store.NewMemoryCredentialStore()
	}
	if playerConfig.APIServerURL == "" {
		playerConfig.APIServerURL = util.Env.GetAPIServerURL()
	}
	if playerConfig.APITimeoutSec == 0 {
		playerConfig.APITimeoutSec = 10
	}
	pollIntervalMs := int(playerConfig.PollIntervalMs)
	if pollIntervalMs == 0 {
		pollIntervalMs = util.Env.GetPollIntervalMs()
	}

	var authKey string
	if playerConfig.RequireAuth {
		var err error
		authKey, err = credStore.Load()
		if err != nil {
			return nil, errors.Wrap(err, "Unable to load stored credential")
		}
	}

	p := Player{
		logger:       &l,
		config:       playerConfig,
		restClient:   rest.NewRestClient(playerConfig.APIServerURL, playerConfig.APITimeoutSec, authKey),
		credStore:    credStore,
		sink:         sink,
		pollInterval: time.Duration(pollIntervalMs) * time.Millisecond,
		selection:    make(map[string]bool),
		seenLog:      util.NewQueue(100),
		chMyTurn:     make(chan struct{}, 1),
	}
	if playerConfig.Script != nil {
		p.decision = NewScriptBasedDecision(playerConfig.Script, playerConfig.Name)
	}

	p.sm = fsm.NewFSM(
		SessionState__JOINING,
		fsm.Events{
			{
				Name: SessionEvent__JOINED,
				Src:  []string{SessionState__JOINING},
				Dst:  SessionState__IN_LOBBY,
			},
			{
				Name: SessionEvent__GAME_STARTED,
				Src:  []string{SessionState__JOINING, SessionState__IN_LOBBY, SessionState__GAME_OVER},
				Dst:  SessionState__WAITING_FOR_MY_TURN,
			},
			{
				Name: SessionEvent__RECEIVE_MY_TURN,
				Src:  []string{SessionState__WAITING_FOR_MY_TURN},
				Dst:  SessionState__MY_TURN,
			},
			{
				Name: SessionEvent__SENT_MY_ACTION,
				Src:  []string{SessionState__MY_TURN},
				Dst:  SessionState__WAITING_FOR_MY_TURN,
			},
			{
				Name: SessionEvent__GOT_ELIMINATED,
				Src:  []string{SessionState__WAITING_FOR_MY_TURN, SessionState__MY_TURN},
				Dst:  SessionState__ELIMINATED,
			},
			{
				Name: SessionEvent__GAME_ENDED,
				Src: []string{
					SessionState__JOINING,
					SessionState__IN_LOBBY,
					SessionState__WAITING_FOR_MY_TURN,
					SessionState__MY_TURN,
					SessionState__ELIMINATED,
				},
				Dst: SessionState__GAME_OVER,
			},
			{
				Name: SessionEvent__NEW_LOBBY,
				Src:  []string{SessionState__GAME_OVER},
				Dst:  SessionState__IN_LOBBY,
			},
		},
		fsm.Callbacks{
			"enter_state": func(e *fsm.Event) { p.enterState(e) },
		},
	)

	return &p, nil
}

func (p *Player) enterState(e *fsm.Event) {
	p.logger.Debug().Msgf("[%s] ===> [%s]", e.Src, e.Dst)
}

func (p *Player) event(event string) {
	err := p.sm.Event(event)
	if err != nil {
		p.logger.Warn().Msgf("Error from state machine: %s", err.Error())
	}
}

// JoinOrResume resolves the player identity. A supplied player ID is adopted
// without contacting the server; otherwise the player joins as a new seat.
// On failure no polling must be started; the error is surfaced to the user
// and returned.
func (p *Player) JoinOrResume(ctx context.Context) error {
	if p.config.PlayerID != "" {
		p.PlayerID = p.config.PlayerID
		p.logger.Info().Str(logging.PlayerIDKey, p.PlayerID).Msg("Resuming existing session")
		p.event(SessionEvent__JOINED)
		return nil
	}

	resp, err := p.restClient.Join(ctx)
	if err != nil {
		p.sink.Notify(err.Error())
		return errors.Wrap(err, "Unable to join the game")
	}
	p.PlayerID = resp.PlayerID
	p.logger.Info().Str(logging.PlayerIDKey, p.PlayerID).Msg("Joined game")
	if p.config.RequireAuth && resp.Key != "" {
		p.adoptKey(resp.Key)
	}
	p.event(SessionEvent__JOINED)
	return nil
}

// adoptKey persists the credential if none is stored yet. The server never
// rotates keys, so an already-stored credential wins.
func (p *Player) adoptKey(key string) {
	if p.restClient.AuthKey() != "" {
		return
	}
	if err := p.credStore.Save(key); err != nil {
		p.logger.Error().Err(err).Msg("Unable to persist auth credential")
	}
	p.restClient.SetAuthKey(key)
	p.logger.Info().Msg("Stored auth credential")
}

// applySnapshot reconciles a fetched snapshot into the session and renders
// it. Returns false when the snapshot is stale (an earlier-issued request
// resolving after a later one) and was discarded.
func (p *Player) applySnapshot(seq uint64, state *game.GameState) bool {
	p.seqMu.Lock()
	if seq <= p.lastApplied {
		p.seqMu.Unlock()
		p.logger.Debug().Msgf("Discarding stale snapshot (seq %d <= %d)", seq, p.lastApplied)
		return false
	}
	p.lastApplied = seq
	p.seqMu.Unlock()

	if p.config.RequireAuth && state.AuthKey != "" {
		p.adoptKey(state.AuthKey)
	}

	p.mu.Lock()
	p.lastState = state

	// The server resends a window of recent log lines with every snapshot;
	// only lines not seen before extend the transcript.
	for _, line := range state.Log {
		if p.seenLog.PushUnique(line) {
			p.transcript = append(p.transcript, line)
		}
	}

	// Reconcile the selection with the new hand.
	inHand := make(map[string]bool)
	for _, card := range state.YourHand {
		inHand[card] = true
	}
	for card := range p.selection {
		if !inHand[card] {
			delete(p.selection, card)
		}
	}

	v := view.Render(state, p.PlayerID, p.selection)
	p.mu.Unlock()

	p.driveStateMachine(state)
	p.sink.Apply(v)

	if state.GameWinner != "" || state.IsPlayersTurn(p.PlayerID) || state.IsEliminated {
		p.signalTurn()
	}
	return true
}

func (p *Player) driveStateMachine(state *game.GameState) {
	cur := p.sm.Current()
	switch state.Phase() {
	case game.PhaseLobby:
		if cur == SessionState__GAME_OVER {
			p.event(SessionEvent__NEW_LOBBY)
		}
	case game.PhaseActive:
		if cur == SessionState__JOINING || cur == SessionState__IN_LOBBY || cur == SessionState__GAME_OVER {
			p.event(SessionEvent__GAME_STARTED)
			cur = p.sm.Current()
		}
		if state.IsEliminated {
			if cur != SessionState__ELIMINATED {
				p.event(SessionEvent__GOT_ELIMINATED)
			}
			return
		}
		if state.IsPlayersTurn(p.PlayerID) {
			if cur == SessionState__WAITING_FOR_MY_TURN {
				p.event(SessionEvent__RECEIVE_MY_TURN)
			}
		} else if cur == SessionState__MY_TURN {
			p.event(SessionEvent__SENT_MY_ACTION)
		}
	case game.PhaseGameOver:
		if cur != SessionState__GAME_OVER {
			p.event(SessionEvent__GAME_ENDED)
		}
	}
}

func (p *Player) signalTurn() {
	select {
	case p.chMyTurn <- struct{}{}:
	default:
	}
}

// TurnSignal is signaled whenever a snapshot arrives that requires the
// player's attention: the turn reached this player, the player has been
// eliminated, or the game ended.
func (p *Player) TurnSignal() <-chan struct{} {
	return p.chMyTurn
}

// LastState returns the most recently applied snapshot, or nil before the
// first successful fetch.
func (p *Player) LastState() *game.GameState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastState
}

// SessionState returns the current state machine state.
func (p *Player) SessionState() string {
	return p.sm.Current()
}

// Transcript returns the deduplicated session event log.
func (p *Player) Transcript() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string{}, p.transcript...)
}

// IsHost reports whether this player owns the start/new-game control.
func (p *Player) IsHost() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.lastState != nil {
		return p.lastState.HostPlayer() == p.PlayerID
	}
	return p.PlayerID == game.FirstPlayerID
}

// ToggleCard toggles a card in the local selection. Only cards currently in
// the hand can be selected, and only on the player's turn. Returns the new
// selected status of the card.
func (p *Player) ToggleCard(card string) bool {
	p.mu.Lock()
	state := p.lastState
	if state == nil || !state.IsPlayersTurn(p.PlayerID) {
		p.mu.Unlock()
		return false
	}
	if !util.ContainsString(state.YourHand, card) {
		p.mu.Unlock()
		return false
	}
	selected := !p.selection[card]
	if selected {
		p.selection[card] = true
	} else {
		delete(p.selection, card)
	}
	v := view.Render(state, p.PlayerID, p.selection)
	p.mu.Unlock()

	p.sink.Apply(v)
	return selected
}

// ClearSelection drops the local card selection.
func (p *Player) ClearSelection() {
	p.mu.Lock()
	p.selection = make(map[string]bool)
	p.mu.Unlock()
}

// Selection returns the selected cards in hand order.
func (p *Player) Selection() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	var cards []string
	if p.lastState == nil {
		return cards
	}
	for _, card := range p.lastState.YourHand {
		if p.selection[card] {
			cards = append(cards, card)
		}
	}
	return cards
}

func (p *Player) notifyf(format string, args ...interface{}) {
	p.sink.Notify(fmt.Sprintf(format, args...))
}

func (p *Player) progress(loading bool) {
	if ps, ok := p.sink.(view.ProgressSink); ok {
		ps.Progress(loading)
	}
}
