package battle

import "testing"

var (
	fox  = Card{Name: "Fox", Symbol: "🦊", Attack: 4, Defense: 2}
	bear = Card{Name: "Bear", Symbol: "🐻", Attack: 2, Defense: 5}
	deer = Card{Name: "Deer", Symbol: "🦌", Attack: 3, Defense: 3}
	wolf = Card{Name: "Wolf", Symbol: "🐺", Attack: 5, Defense: 3}
)

const (
	noCrit = 0.5
	crit   = 0.05
)

func TestResolveRound(t *testing.T) {
	tests := []struct {
		name           string
		player, opp    Card
		rolls          []float64
		wantPlayerDmg  int
		wantOppDmg     int
		wantResult     Result
		wantPlayerCrit bool
		wantOppCrit    bool
	}{
		{
			name: "defense absorbs both attacks", player: fox, opp: bear,
			rolls: []float64{noCrit, noCrit}, wantPlayerDmg: 0, wantOppDmg: 0, wantResult: Tie,
		},
		{
			name: "player crit breaks the tie", player: fox, opp: bear,
			rolls: []float64{crit, noCrit}, wantPlayerDmg: 3, wantOppDmg: 0, wantResult: PlayerWins,
			wantPlayerCrit: true,
		},
		{
			name: "mirror match without crits", player: deer, opp: deer,
			rolls: []float64{noCrit, noCrit}, wantPlayerDmg: 0, wantOppDmg: 0, wantResult: Tie,
		},
		{
			name: "opponent deals more damage", player: deer, opp: wolf,
			rolls: []float64{noCrit, noCrit}, wantPlayerDmg: 0, wantOppDmg: 2, wantResult: OpponentWins,
		},
		{
			name: "opponent crit", player: fox, opp: deer,
			rolls: []float64{noCrit, crit}, wantPlayerDmg: 1, wantOppDmg: 4, wantResult: OpponentWins,
			wantOppCrit: true,
		},
		{
			name: "both crit", player: wolf, opp: fox,
			rolls: []float64{crit, crit}, wantPlayerDmg: 8, wantOppDmg: 5, wantResult: PlayerWins,
			wantPlayerCrit: true, wantOppCrit: true,
		},
		{
			name: "roll equal to chance is not a crit", player: fox, opp: bear,
			rolls: []float64{CritChance, noCrit}, wantPlayerDmg: 0, wantOppDmg: 0, wantResult: Tie,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng := &scriptedRand{floats: tt.rolls}
			out := ResolveRound(tt.player, tt.opp, rng)

			if out.PlayerDamage != tt.wantPlayerDmg || out.OpponentDamage != tt.wantOppDmg {
				t.Fatalf("damage = %d/%d, want %d/%d", out.PlayerDamage, out.OpponentDamage, tt.wantPlayerDmg, tt.wantOppDmg)
			}
			if out.Result != tt.wantResult {
				t.Fatalf("result = %s, want %s", out.Result, tt.wantResult)
			}
			if out.PlayerCrit != tt.wantPlayerCrit || out.OpponentCrit != tt.wantOppCrit {
				t.Fatalf("crits = %v/%v, want %v/%v", out.PlayerCrit, out.OpponentCrit, tt.wantPlayerCrit, tt.wantOppCrit)
			}
			if out.PlayerCard != tt.player || out.OpponentCard != tt.opp {
				t.Fatalf("cards not carried into outcome: %+v", out)
			}
		})
	}
}

func TestResolveRoundDrawsExactlyTwice(t *testing.T) {
	for _, rolls := range [][]float64{{noCrit, noCrit}, {crit, crit}, {crit, noCrit}} {
		rng := &scriptedRand{floats: rolls}
		ResolveRound(wolf, bear, rng)
		if rng.floatCalls != 2 || rng.intCalls != 0 {
			t.Fatalf("rolls %v: Float64 calls = %d, IntN calls = %d, want 2 and 0", rolls, rng.floatCalls, rng.intCalls)
		}
	}
}

func TestResolveRoundDeterministicWithSeed(t *testing.T) {
	a := ResolveRound(wolf, deer, NewRand(11))
	b := ResolveRound(wolf, deer, NewRand(11))
	if a != b {
		t.Fatalf("same seed produced different outcomes: %+v vs %+v", a, b)
	}
}
