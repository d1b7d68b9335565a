package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"liardeck.com/client/internal/caches"
	"liardeck.com/client/internal/driver"
	"liardeck.com/client/internal/gamescript"
	"liardeck.com/client/internal/logging"
	"liardeck.com/client/internal/util"
)

var batchLogger = log.With().Str("logger_name", "app::runner_batch").Logger()

// RunnerBatch is a group of GameRunners sharing the same batch ID and game
// script. Apply reconciles the number of running games toward the desired
// count.
type RunnerBatch struct {
	batchID      string
	players      *gamescript.Players
	script       *gamescript.Script
	sessionCache *caches.SessionCache

	mu      sync.Mutex
	running map[string]*runnerEntry
}

type runnerEntry struct {
	runner    *driver.GameRunner
	cancel    context.CancelFunc
	startedAt time.Time
}

// NewRunnerBatch creates new instance of RunnerBatch.
func NewRunnerBatch(batchID string, players *gamescript.Players, script *gamescript.Script, sessionCache *caches.SessionCache) (*RunnerBatch, error) {
	if batchID == "" {
		return nil, fmt.Errorf("Batch ID must not be empty")
	}
	b := RunnerBatch{
		batchID:      batchID,
		players:      players,
		script:       script,
		sessionCache: sessionCache,
		running:      make(map[string]*runnerEntry),
	}
	return &b, nil
}

// NumRunning returns the number of games currently running in this batch.
func (b *RunnerBatch) NumRunning() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.running)
}

// Apply launches or stops runners until the batch holds the desired number of
// concurrent games.
func (b *RunnerBatch) Apply(desiredNumGames uint32, launchInterval *float32) error {
	b.mu.Lock()
	current := len(b.running)
	b.mu.Unlock()

	if int(desiredNumGames) > current {
		go b.launch(int(desiredNumGames)-current, launchInterval)
		return nil
	}

	// Stop the excess runners.
	b.mu.Lock()
	defer b.mu.Unlock()
	excess := current - int(desiredNumGames)
	for sessionID, entry := range b.running {
		if excess == 0 {
			break
		}
		batchLogger.Info().
			Str(logging.BatchIDKey, b.batchID).
			Str(logging.SessionIDKey, sessionID).
			Msg("Stopping runner")
		entry.cancel()
		excess--
	}
	return nil
}

func (b *RunnerBatch) launch(count int, launchInterval *float32) {
	for i := 0; i < count; i++ {
		if i > 0 && launchInterval != nil {
			time.Sleep(util.FloatSecToDuration(*launchInterval))
		}
		if err := b.launchOne(); err != nil {
			batchLogger.Error().Err(err).
				Str(logging.BatchIDKey, b.batchID).
				Msg("Unable to launch runner")
		}
	}
}

func (b *RunnerBatch) launchOne() error {
	runner, err := driver.NewGameRunner(util.Env.GetAPIServerURL(), b.players, b.script, nil, nil)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithCancel(context.Background())
	entry := &runnerEntry{
		runner:    runner,
		cancel:    cancel,
		startedAt: time.Now(),
	}

	b.mu.Lock()
	b.running[runner.SessionID()] = entry
	b.mu.Unlock()

	batchLogger.Info().
		Str(logging.BatchIDKey, b.batchID).
		Str(logging.SessionIDKey, runner.SessionID()).
		Msg("Launched runner")

	go func() {
		err := runner.Run(ctx)
		if err != nil {
			batchLogger.Error().Err(err).
				Str(logging.BatchIDKey, b.batchID).
				Str(logging.SessionIDKey, runner.SessionID()).
				Msg("Runner ended with error")
		}
		cancel()

		b.mu.Lock()
		delete(b.running, runner.SessionID())
		b.mu.Unlock()

		b.sessionCache.Add(&caches.SessionStatus{
			SessionID: runner.SessionID(),
			BatchID:   b.batchID,
			Winner:    runner.Winner(),
			Done:      true,
			StartedAt: entry.startedAt,
		})
	}()
	return nil
}
