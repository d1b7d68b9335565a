package player

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"liardeck.com/client/internal/game"
)

func TestPollSingleFlight(t *testing.T) {
	fs := newFakeServer()
	defer fs.close()
	fs.setState(game.GameState{
		GameStarted: true,
		CurrentTurn: "player1",
	})

	p, _ := newTestPlayer(t, fs, Config{PlayerID: "player2"})
	ctx := context.Background()
	if err := p.JoinOrResume(ctx); err != nil {
		t.Fatalf("JoinOrResume returned error [%s]", err)
	}

	done := make(chan bool, 1)
	go func() {
		done <- p.PollUntilMyTurn(ctx)
	}()
	waitUntil(t, 2*time.Second, func() bool {
		_, stateCount, _, _, _ := fs.counts()
		return stateCount >= 1
	}, "first poll loop to make a fetch")

	// A second loop must refuse to start while the first one runs.
	if p.PollUntilMyTurn(ctx) {
		t.Error("Second concurrent poll loop must be a no-op")
	}

	fs.setState(game.GameState{GameStarted: true, GameWinner: "player1"})
	waitUntil(t, 2*time.Second, func() bool {
		select {
		case owned := <-done:
			if !owned {
				t.Error("The owning poll loop must report true")
			}
			return true
		default:
			return false
		}
	}, "owning poll loop to stop on winner")

	if p.IsPolling() {
		t.Error("Polling flag must be cleared after the loop stops")
	}
}

func TestPollStopsOnMyTurn(t *testing.T) {
	fs := newFakeServer()
	defer fs.close()
	fs.setState(game.GameState{
		GameStarted: true,
		CurrentTurn: "player2",
		YourHand:    []string{"Ace"},
	})

	p, _ := newTestPlayer(t, fs, Config{PlayerID: "player2"})
	ctx := context.Background()
	p.JoinOrResume(ctx)

	if !p.PollUntilMyTurn(ctx) {
		t.Fatal("PollUntilMyTurn must report true when it owned the loop")
	}
	_, stateCount, _, _, _ := fs.counts()
	if stateCount != 1 {
		t.Errorf("Expected exactly one fetch before stopping on my turn, got %d", stateCount)
	}
	if p.SessionState() != SessionState__MY_TURN {
		t.Errorf("Expected session state MY_TURN, got %s", p.SessionState())
	}
}

func TestPollStopsOnFetchFailure(t *testing.T) {
	fs := newFakeServer()
	defer fs.close()
	fs.mu.Lock()
	fs.stateFails = true
	fs.mu.Unlock()

	p, sink := newTestPlayer(t, fs, Config{PlayerID: "player2"})
	ctx := context.Background()
	p.JoinOrResume(ctx)

	if !p.PollUntilMyTurn(ctx) {
		t.Fatal("PollUntilMyTurn must report true when it owned the loop")
	}
	_, stateCount, _, _, _ := fs.counts()
	if stateCount != 1 {
		t.Errorf("Expected the loop to stop after one failed fetch, got %d fetches", stateCount)
	}
	// A failed fetch must not disturb the rendered state.
	if sink.numViews() != 0 {
		t.Errorf("Expected no render on a failed fetch, got %d views", sink.numViews())
	}
	if p.LastState() != nil {
		t.Error("Failed fetch must not fabricate a snapshot")
	}
}

func TestPollContextCancel(t *testing.T) {
	fs := newFakeServer()
	defer fs.close()
	fs.setState(game.GameState{
		GameStarted: true,
		CurrentTurn: "player1",
	})

	p, _ := newTestPlayer(t, fs, Config{PlayerID: "player2", PollIntervalMs: 60000})
	ctx, cancel := context.WithCancel(context.Background())
	p.JoinOrResume(ctx)

	done := make(chan struct{})
	go func() {
		p.PollUntilMyTurn(ctx)
		close(done)
	}()
	waitUntil(t, 2*time.Second, func() bool {
		_, stateCount, _, _, _ := fs.counts()
		return stateCount >= 1
	}, "poll loop to make a fetch")

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Poll loop did not stop on context cancellation")
	}
	if p.IsPolling() {
		t.Error("Polling flag must be cleared after cancellation")
	}
}

func TestActionThenResume(t *testing.T) {
	fs := newFakeServer()
	defer fs.close()
	fs.setState(game.GameState{
		AssignedPlayers: []string{"player1", "player2"},
	})

	p, _ := newTestPlayer(t, fs, Config{PlayerID: "player1"})
	ctx := context.Background()
	p.JoinOrResume(ctx)

	if err := p.SubmitStart(ctx); err != nil {
		t.Fatalf("SubmitStart returned error [%s]", err)
	}
	_, _, startCount, _, _ := fs.counts()
	if startCount != 1 {
		t.Fatalf("Expected one start request, got %d", startCount)
	}

	// One synchronous refresh happens inside the submit; the restarted
	// background loop keeps fetching because the lobby state is not a stop
	// condition.
	waitUntil(t, 2*time.Second, func() bool {
		_, stateCount, _, _, _ := fs.counts()
		return stateCount >= 2
	}, "background poll loop to resume after the action")

	fs.setState(game.GameState{GameStarted: true, GameWinner: "player2"})
	waitUntil(t, 2*time.Second, func() bool {
		return !p.IsPolling()
	}, "poll loop to stop on winner")
}

func TestFailedActionStillResumes(t *testing.T) {
	fs := newFakeServer()
	defer fs.close()
	fs.setState(game.GameState{
		GameStarted: true,
		CurrentTurn: "player2",
		YourHand:    []string{"Ace"},
	})

	p, sink := newTestPlayer(t, fs, Config{PlayerID: "player2"})
	ctx := context.Background()
	p.JoinOrResume(ctx)
	p.RefreshOnce(ctx)

	fs.mu.Lock()
	fs.challengeResponse = `{"status": "ERROR", "message": "Nothing to challenge"}`
	fs.mu.Unlock()

	if err := p.SubmitChallenge(ctx); err != nil {
		t.Fatalf("SubmitChallenge returned error [%s]", err)
	}
	_, stateCount, _, _, challengeCount := fs.counts()
	if challengeCount != 1 {
		t.Fatalf("Expected one challenge request, got %d", challengeCount)
	}
	// The rejection is surfaced, and the session still refreshes once and
	// resumes. The loop stops right there because the snapshot still shows
	// this player's turn.
	if sink.lastNotice() == "" {
		t.Error("Rejected command must be surfaced to the user")
	}
	if stateCount < 2 {
		t.Errorf("Expected a refresh after the action, got %d fetches", stateCount)
	}
	waitUntil(t, 2*time.Second, func() bool {
		return !p.IsPolling()
	}, "poll loop to settle")
}

func TestSubmitPlayEmptySelection(t *testing.T) {
	fs := newFakeServer()
	defer fs.close()
	fs.setState(game.GameState{
		GameStarted: true,
		CurrentTurn: "player2",
		YourHand:    []string{"Ace", "King"},
	})

	p, sink := newTestPlayer(t, fs, Config{PlayerID: "player2"})
	ctx := context.Background()
	p.JoinOrResume(ctx)
	p.RefreshOnce(ctx)
	_, before, _, _, _ := fs.counts()

	err := p.SubmitPlay(ctx)
	if err != ErrNoCardsSelected {
		t.Fatalf("Expected ErrNoCardsSelected, got [%v]", err)
	}
	if sink.lastNotice() != "Select at least one card to play." {
		t.Errorf("Unexpected notice: %s", sink.lastNotice())
	}
	_, after, _, playCount, _ := fs.counts()
	if playCount != 0 {
		t.Errorf("Empty play must not reach the server, got %d play requests", playCount)
	}
	if after != before {
		t.Errorf("Empty play must not trigger a refresh: %d -> %d fetches", before, after)
	}
}

func TestSubmitPlayFlow(t *testing.T) {
	fs := newFakeServer()
	defer fs.close()
	fs.setState(game.GameState{
		GameStarted: true,
		CurrentTurn: "player2",
		YourHand:    []string{"Ace", "King", "Queen"},
	})

	p, _ := newTestPlayer(t, fs, Config{PlayerID: "player2"})
	ctx := context.Background()
	p.JoinOrResume(ctx)
	p.RefreshOnce(ctx)
	p.ToggleCard("Ace")
	p.ToggleCard("Queen")
	if !cmp.Equal(p.Selection(), []string{"Ace", "Queen"}) {
		t.Fatalf("Unexpected selection: %v", p.Selection())
	}

	if err := p.SubmitPlay(ctx); err != nil {
		t.Fatalf("SubmitPlay returned error [%s]", err)
	}
	_, _, _, playCount, _ := fs.counts()
	if playCount != 1 {
		t.Errorf("Expected one play request, got %d", playCount)
	}
	if len(p.Selection()) != 0 {
		t.Errorf("Selection must be cleared after a submit, got %v", p.Selection())
	}
	waitUntil(t, 2*time.Second, func() bool {
		return !p.IsPolling()
	}, "poll loop to settle")
}
