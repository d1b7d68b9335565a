package app

import (
	"fmt"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"liardeck.com/client/internal/caches"
	"liardeck.com/client/internal/gamescript"
)

var launcherLogger = log.With().Str("logger_name", "app::launcher").Logger()
var launcherOnce sync.Once
var launcher *Launcher

// GetLauncher returns the single instance of the Launcher.
func GetLauncher() *Launcher {
	launcherOnce.Do(func() {
		l, err := NewLauncher()
		if err != nil {
			panic(fmt.Sprintf("Cannot initialize launcher: %s", err))
		}
		launcher = l
	})
	return launcher
}

// NewLauncher creates an instance of Launcher.
func NewLauncher() (*Launcher, error) {
	sessionCache, err := caches.NewSessionCache()
	if err != nil {
		return nil, errors.Wrap(err, "Unable to create session cache")
	}
	return &Launcher{
		batches:      make(map[string]*RunnerBatch),
		sessionCache: sessionCache,
	}, nil
}

// Launcher manages starting and stopping batches of game runners.
type Launcher struct {
	mu sync.Mutex

	// Key: batch ID
	// Value: a group of GameRunners that share the same batch ID and game script.
	batches map[string]*RunnerBatch

	sessionCache *caches.SessionCache
}

// BatchExists reports whether a batch with the given ID is known.
func (l *Launcher) BatchExists(batchID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, exists := l.batches[batchID]
	return exists
}

// ApplyToBatch schedules the requested number of games to be applied to the batch.
func (l *Launcher) ApplyToBatch(batchID string, players *gamescript.Players, script *gamescript.Script, desiredNumGames uint32, launchInterval *float32) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, exists := l.batches[batchID]
	if exists {
		launcherLogger.Info().Msgf("Updating batch [%s]. NumGames: %d", batchID, desiredNumGames)
		return b.Apply(desiredNumGames, launchInterval)
	}

	if players == nil || script == nil {
		return fmt.Errorf("There is no existing batch with ID [%s]. Players and script config must be provided to start a new batch", batchID)
	}
	launcherLogger.Info().Msgf("Creating batch [%s]. NumGames: %d", batchID, desiredNumGames)
	b, err := NewRunnerBatch(batchID, players, script, l.sessionCache)
	if err != nil {
		return errors.Wrap(err, "Unable to create a new RunnerBatch")
	}
	err = b.Apply(desiredNumGames, launchInterval)
	if err != nil {
		return errors.Wrap(err, "Unable to apply the desired number of games")
	}
	l.batches[batchID] = b
	return nil
}

// StopBatch schedules to stop the specified batch of runners.
func (l *Launcher) StopBatch(batchID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	launcherLogger.Info().Msgf("Stopping runners in batch [%s]", batchID)
	b, exists := l.batches[batchID]
	if !exists {
		return fmt.Errorf("Batch [%s] does not exist", batchID)
	}
	err := b.Apply(0, nil)
	if err != nil {
		return errors.Wrapf(err, "Unable to schedule the number of runners to 0 for batch [%s]", batchID)
	}
	delete(l.batches, batchID)
	return nil
}

// StopAll stops every known batch.
func (l *Launcher) StopAll() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for batchID, b := range l.batches {
		launcherLogger.Info().Msgf("Stopping runners in batch [%s]", batchID)
		if err := b.Apply(0, nil); err != nil {
			launcherLogger.Error().Err(err).Msgf("Unable to stop batch [%s]", batchID)
		}
		delete(l.batches, batchID)
	}
}

// BatchSummary describes one batch for the listing endpoint.
type BatchSummary struct {
	BatchID    string `json:"batchId"`
	NumRunning int    `json:"numRunning"`
}

// ListBatches summarizes the known batches.
func (l *Launcher) ListBatches() []BatchSummary {
	l.mu.Lock()
	defer l.mu.Unlock()
	summaries := make([]BatchSummary, 0, len(l.batches))
	for batchID, b := range l.batches {
		summaries = append(summaries, BatchSummary{
			BatchID:    batchID,
			NumRunning: b.NumRunning(),
		})
	}
	return summaries
}

// SessionStatus looks up a session by ID, running or finished.
func (l *Launcher) SessionStatus(sessionID string) (*caches.SessionStatus, bool) {
	return l.sessionCache.Get(sessionID)
}
