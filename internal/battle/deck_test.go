package battle

import (
	"errors"
	"slices"
	"testing"
)

func countByName(cards []Card) map[string]int {
	m := make(map[string]int)
	for _, c := range cards {
		m[c.Name]++
	}
	return m
}

func TestBuildDeckDuplicatesCatalog(t *testing.T) {
	catalog := DefaultCatalog()
	deck := BuildDeck(catalog)

	if len(deck) != 2*len(catalog) {
		t.Fatalf("deck size = %d, want %d", len(deck), 2*len(catalog))
	}
	if !slices.Equal(deck[:len(catalog)], catalog) || !slices.Equal(deck[len(catalog):], catalog) {
		t.Fatalf("deck should be the catalog twice in order, got %v", deck)
	}
	for name, n := range countByName(deck) {
		if n != 2 {
			t.Fatalf("%s appears %d times, want 2", name, n)
		}
	}
}

func TestShufflePreservesMultiset(t *testing.T) {
	deck := BuildDeck(DefaultCatalog())
	before := countByName(deck)

	Shuffle(deck, NewRand(7))

	after := countByName(deck)
	if len(after) != len(before) {
		t.Fatalf("card kinds = %d, want %d", len(after), len(before))
	}
	for name, n := range before {
		if after[name] != n {
			t.Fatalf("%s count = %d after shuffle, want %d", name, after[name], n)
		}
	}
}

func TestShuffleUsesFisherYatesDraws(t *testing.T) {
	deck := []Card{{Name: "a"}, {Name: "b"}, {Name: "c"}, {Name: "d"}}
	rng := &scriptedRand{ints: []int{0, 0, 0}}

	Shuffle(deck, rng)

	if rng.intCalls != 3 {
		t.Fatalf("IntN calls = %d, want 3", rng.intCalls)
	}
	// i=3 swaps a<->d, i=2 swaps d<->c, i=1 swaps c<->b.
	got := []string{deck[0].Name, deck[1].Name, deck[2].Name, deck[3].Name}
	want := []string{"b", "c", "d", "a"}
	if !slices.Equal(got, want) {
		t.Fatalf("order = %v, want %v", got, want)
	}
}

func TestShuffleIsUniform(t *testing.T) {
	const trials = 60000
	rng := NewRand(42)
	counts := make(map[string]int)
	for i := 0; i < trials; i++ {
		deck := []Card{{Name: "a"}, {Name: "b"}, {Name: "c"}}
		Shuffle(deck, rng)
		counts[deck[0].Name+deck[1].Name+deck[2].Name]++
	}

	if len(counts) != 6 {
		t.Fatalf("saw %d permutations, want 6: %v", len(counts), counts)
	}
	want := trials / 6
	for perm, n := range counts {
		if n < want*95/100 || n > want*105/100 {
			t.Errorf("permutation %s seen %d times, want about %d", perm, n, want)
		}
	}
}

func TestDeal(t *testing.T) {
	deck := BuildDeck(DefaultCatalog())
	Shuffle(deck, NewRand(3))

	player, opponent, err := Deal(deck)
	if err != nil {
		t.Fatalf("deal error: %v", err)
	}
	if len(player) != 6 || len(opponent) != 6 {
		t.Fatalf("hand sizes = %d/%d, want 6/6", len(player), len(opponent))
	}
	if !slices.Equal(player, deck[:6]) || !slices.Equal(opponent, deck[6:]) {
		t.Fatalf("hands should be the two halves of the deck in order")
	}

	player[0] = Card{Name: "changed"}
	if deck[0].Name == "changed" {
		t.Fatalf("hand must not alias the deck")
	}
}

func TestDealRejectsOddDeck(t *testing.T) {
	tests := []struct {
		name string
		size int
	}{
		{name: "one card", size: 1},
		{name: "three cards", size: 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deck := make([]Card, tt.size)
			_, _, err := Deal(deck)
			if !errors.Is(err, ErrInvalidDeckSize) {
				t.Fatalf("err = %v, want ErrInvalidDeckSize", err)
			}
		})
	}
}

func TestDealEmptyDeck(t *testing.T) {
	player, opponent, err := Deal(nil)
	if err != nil {
		t.Fatalf("deal error: %v", err)
	}
	if len(player) != 0 || len(opponent) != 0 {
		t.Fatalf("expected empty hands")
	}
}
