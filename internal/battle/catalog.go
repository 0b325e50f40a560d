package battle

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

var (
	ErrEmptyCatalog = errors.New("catalog has no cards")
	ErrInvalidCard  = errors.New("invalid card")
)

// Card is an immutable card template. Symbol is only used for display.
type Card struct {
	Name    string `json:"name"`
	Symbol  string `json:"symbol"`
	Attack  int    `json:"attack"`
	Defense int    `json:"defense"`
}

func (c Card) String() string {
	return fmt.Sprintf("%s %s (ATK %d / DEF %d)", c.Symbol, c.Name, c.Attack, c.Defense)
}

// DefaultCatalog returns the six animal cards the game ships with.
func DefaultCatalog() []Card {
	return []Card{
		{Name: "Fox", Symbol: "🦊", Attack: 4, Defense: 2},
		{Name: "Bear", Symbol: "🐻", Attack: 2, Defense: 5},
		{Name: "Deer", Symbol: "🦌", Attack: 3, Defense: 3},
		{Name: "Rabbit", Symbol: "🐇", Attack: 1, Defense: 1},
		{Name: "Wolf", Symbol: "🐺", Attack: 5, Defense: 3},
		{Name: "Squirrel", Symbol: "🐿️", Attack: 2, Defense: 2},
	}
}

type catalogFile struct {
	CardList []Card `json:"card_list"`
}

// LoadCatalog reads a JSON catalog of the form {"card_list": [...]}.
func LoadCatalog(path string) ([]Card, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file %s: %w", path, err)
	}
	var cf catalogFile
	if err := json.Unmarshal(b, &cf); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file %s: %w", path, err)
	}
	if err := ValidateCatalog(cf.CardList); err != nil {
		return nil, fmt.Errorf("catalog file %s: %w", path, err)
	}
	return cf.CardList, nil
}

// ValidateCatalog checks that a catalog is usable for a game: at least one
// card, every card named, names unique (case-insensitive), and no negative
// stats.
func ValidateCatalog(catalog []Card) error {
	if len(catalog) == 0 {
		return ErrEmptyCatalog
	}
	names := make(map[string]struct{}, len(catalog))
	for i, c := range catalog {
		name := strings.ToLower(strings.TrimSpace(c.Name))
		if name == "" {
			return fmt.Errorf("%w: entry %d missing name", ErrInvalidCard, i)
		}
		if _, exists := names[name]; exists {
			return fmt.Errorf("%w: duplicate card name %q", ErrInvalidCard, c.Name)
		}
		names[name] = struct{}{}
		if c.Attack < 0 || c.Defense < 0 {
			return fmt.Errorf("%w: %q has negative stats", ErrInvalidCard, c.Name)
		}
	}
	return nil
}
