package view

import (
	"fmt"
	"io"
	"os"
	"sync"

	"liardeck.com/client/internal/game"
)

// TerminalPrinter writes views to a terminal. Each Apply repaints the whole
// view; there is no cursor addressing, just sections separated by rules.
type TerminalPrinter struct {
	mu           sync.Mutex
	out          io.Writer
	showProgress bool
}

func NewTerminalPrinter(out io.Writer, showProgress bool) *TerminalPrinter {
	if out == nil {
		out = os.Stdout
	}
	return &TerminalPrinter{
		out:          out,
		showProgress: showProgress,
	}
}

func (t *TerminalPrinter) Apply(v View) {
	t.mu.Lock()
	defer t.mu.Unlock()

	fmt.Fprintf(t.out, "\n========== %s ==========\n", v.Phase)
	fmt.Fprintf(t.out, "You are: %s\n", v.LocalPlayerID)

	switch v.Phase {
	case game.PhaseLobby:
		fmt.Fprintln(t.out, "Players in Lobby:")
		for _, p := range v.LobbyPlayers {
			if p == v.LocalPlayerID {
				fmt.Fprintf(t.out, "  %s (You)\n", p)
			} else {
				fmt.Fprintf(t.out, "  %s\n", p)
			}
		}
		if v.WaitingOn != "" {
			fmt.Fprintf(t.out, "Waiting for %s to start the game...\n", v.WaitingOn)
		}

	case game.PhaseGameOver:
		fmt.Fprintf(t.out, "Winner is %s! Game Over.\n", v.Winner)

	case game.PhaseActive:
		fmt.Fprintf(t.out, "Reference card: %s | Pile: %d | Turn: %s | Roulette Index: %d\n",
			v.ReferenceCard, v.PileCount, v.CurrentTurn, v.RouletteIndex)
		for _, o := range v.Opponents {
			status := ""
			if o.Eliminated {
				status = " (ELIMINATED)"
			}
			fmt.Fprintf(t.out, "  %s: %d cards%s\n", o.PlayerID, o.CardCount, status)
		}
		if v.Eliminated {
			fmt.Fprintln(t.out, "You have been eliminated.")
			break
		}
		fmt.Fprint(t.out, "Your hand:")
		for i, c := range v.Hand {
			marker := " "
			if c.Selected {
				marker = "*"
			}
			fmt.Fprintf(t.out, " [%d:%s%s]", i+1, marker, c.Name)
		}
		fmt.Fprintln(t.out)
		if v.CanPlay {
			fmt.Fprint(t.out, "Your turn. Commands: play <n> [n...]")
			if v.CanChallenge {
				fmt.Fprint(t.out, ", challenge")
			}
			fmt.Fprintln(t.out)
		}
	}

	if v.ShowStart {
		fmt.Fprintf(t.out, "[%s] available. Command: start\n", v.StartLabel)
	}

	fmt.Fprintln(t.out, "--- Game Log ---")
	for _, line := range v.LogLines {
		fmt.Fprintf(t.out, "  %s\n", line)
	}
}

func (t *TerminalPrinter) Notify(msg string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.out, "!! %s\n", msg)
}

func (t *TerminalPrinter) Progress(loading bool) {
	if !t.showProgress {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if loading {
		fmt.Fprintln(t.out, "Loading...")
	}
}
