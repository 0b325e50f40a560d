// Package battlelog turns battle events into the text log shown to the
// player.
package battlelog

import (
	"fmt"
	"slices"
	"sync"

	"cardbattler/internal/battle"
)

// RoundText describes a round result from the player's point of view.
func RoundText(r battle.Result) string {
	switch r {
	case battle.PlayerWins:
		return "You win this round!"
	case battle.OpponentWins:
		return "AI wins this round!"
	default:
		return "This round is a tie!"
	}
}

// GameText describes the final result of a game.
func GameText(r battle.Result) string {
	switch r {
	case battle.PlayerWins:
		return "🎉 You win the game!"
	case battle.OpponentWins:
		return "🤖 AI wins the game!"
	default:
		return "🤝 It's a tie game!"
	}
}

// Lines renders one event as log lines. Reset events produce none.
func Lines(ev battle.Event) []string {
	switch p := ev.Payload.(type) {
	case battle.GameStarted:
		return []string{"Game started! Choose a card to play."}
	case battle.RoundResolved:
		var lines []string
		if p.PlayerCrit {
			lines = append(lines, fmt.Sprintf("💥 Your %s lands a critical hit!", p.PlayerCard.Name))
		}
		if p.OpponentCrit {
			lines = append(lines, fmt.Sprintf("💥 AI's %s lands a critical hit!", p.OpponentCard.Name))
		}
		return append(lines, fmt.Sprintf("Round %d: You played %s vs AI's %s. %s",
			p.RoundsPlayed, p.PlayerCard.Name, p.OpponentCard.Name, RoundText(p.Result)))
	case battle.GameEnded:
		return []string{GameText(p.Winner)}
	}
	return nil
}

// Log collects the lines of the current game. It is cleared when a game
// starts or the session is reset.
type Log struct {
	mu    sync.Mutex
	lines []string
}

func (l *Log) OnEvent(ev battle.Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if ev.Kind == battle.EventGameStarted || ev.Kind == battle.EventGameReset {
		l.lines = nil
	}
	l.lines = append(l.lines, Lines(ev)...)
}

// Lines returns a copy of the collected lines.
func (l *Log) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.lines)
}

// Tail returns at most the last n lines.
func (l *Log) Tail(n int) []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.lines) <= n {
		return slices.Clone(l.lines)
	}
	return slices.Clone(l.lines[len(l.lines)-n:])
}
