package battlelog

import (
	"reflect"
	"testing"

	"cardbattler/internal/battle"
)

var (
	fox  = battle.Card{Name: "Fox", Attack: 4, Defense: 2}
	bear = battle.Card{Name: "Bear", Attack: 2, Defense: 5}
)

func TestLines(t *testing.T) {
	tests := []struct {
		name string
		ev   battle.Event
		want []string
	}{
		{
			name: "start",
			ev:   battle.Event{Kind: battle.EventGameStarted, Payload: battle.GameStarted{MaxRounds: 6}},
			want: []string{"Game started! Choose a card to play."},
		},
		{
			name: "round with crits",
			ev: battle.Event{Kind: battle.EventRoundResolved, Payload: battle.RoundResolved{
				RoundOutcome: battle.RoundOutcome{
					PlayerCard: fox, OpponentCard: bear,
					PlayerCrit: true, OpponentCrit: true,
					Result: battle.PlayerWins,
				},
				RoundsPlayed: 2,
			}},
			want: []string{
				"💥 Your Fox lands a critical hit!",
				"💥 AI's Bear lands a critical hit!",
				"Round 2: You played Fox vs AI's Bear. You win this round!",
			},
		},
		{
			name: "tied round",
			ev: battle.Event{Kind: battle.EventRoundResolved, Payload: battle.RoundResolved{
				RoundOutcome: battle.RoundOutcome{PlayerCard: bear, OpponentCard: fox, Result: battle.Tie},
				RoundsPlayed: 1,
			}},
			want: []string{"Round 1: You played Bear vs AI's Fox. This round is a tie!"},
		},
		{
			name: "ai wins game",
			ev:   battle.Event{Kind: battle.EventGameEnded, Payload: battle.GameEnded{Winner: battle.OpponentWins}},
			want: []string{"🤖 AI wins the game!"},
		},
		{
			name: "reset",
			ev:   battle.Event{Kind: battle.EventGameReset, Payload: battle.GameReset{}},
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Lines(tt.ev); !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Lines() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLogFollowsSession(t *testing.T) {
	log := &Log{}
	s, err := battle.NewSession([]battle.Card{fox, bear}, battle.WithRand(battle.NewRand(1)), battle.WithObserver(log))
	if err != nil {
		t.Fatalf("new session: %v", err)
	}

	s.Start()
	s.PlayCard(0)
	s.PlayCard(0)

	lines := log.Lines()
	if lines[0] != "Game started! Choose a card to play." {
		t.Fatalf("first line = %q", lines[0])
	}
	if got, want := lines[len(lines)-1], GameText(s.State().Winner); got != want {
		t.Fatalf("last line = %q, want %q", got, want)
	}
	if tail := log.Tail(1); len(tail) != 1 || tail[0] != lines[len(lines)-1] {
		t.Fatalf("tail = %q", tail)
	}

	s.Reset()
	if len(log.Lines()) != 0 {
		t.Fatalf("log should be cleared on reset, got %q", log.Lines())
	}
}
