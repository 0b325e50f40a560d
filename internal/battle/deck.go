package battle

import (
	"errors"
	"fmt"
)

var ErrInvalidDeckSize = errors.New("deck size must be even")

// BuildDeck returns two copies of the catalog back to back, so every
// template appears exactly twice.
func BuildDeck(catalog []Card) []Card {
	deck := make([]Card, 0, 2*len(catalog))
	deck = append(deck, catalog...)
	deck = append(deck, catalog...)
	return deck
}

// Shuffle permutes deck in place (Fisher–Yates).
func Shuffle(deck []Card, rng Rand) {
	for i := len(deck) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		deck[i], deck[j] = deck[j], deck[i]
	}
}

// Deal splits deck in half by position: the first half goes to the player
// and the second half to the opponent. The returned hands do not share
// memory with deck.
func Deal(deck []Card) (player, opponent []Card, err error) {
	if len(deck)%2 != 0 {
		return nil, nil, fmt.Errorf("%w: got %d cards", ErrInvalidDeckSize, len(deck))
	}
	half := len(deck) / 2
	player = append([]Card{}, deck[:half]...)
	opponent = append([]Card{}, deck[half:]...)
	return player, opponent, nil
}
