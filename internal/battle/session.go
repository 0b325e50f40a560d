// Package battle implements the card battle engine: the catalog, deck
// building and dealing, round resolution and the game session that ties
// them together.
package battle

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"
)

var ErrInvalidMove = errors.New("invalid move")

// Status is the lifecycle stage of a Session.
type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusInProgress Status = "in_progress"
	StatusFinished   Status = "finished"
)

// State is a snapshot of a Session. Values returned by Session.State are
// copies and can be kept or modified freely.
type State struct {
	PlayerHand    []Card
	OpponentHand  []Card
	PlayerScore   int
	OpponentScore int
	RoundsPlayed  int
	MaxRounds     int
	Status        Status
	// Winner is only set once Status is StatusFinished.
	Winner Result
}

// Session runs one game at a time against the random opponent. All methods
// are safe for concurrent use; mutations are serialized.
type Session struct {
	mu        sync.Mutex
	catalog   []Card
	rng       Rand
	logger    *slog.Logger
	observers []Observer
	state     State
}

// Option configures a Session.
type Option func(*Session)

// WithRand sets the random source. Without it the session seeds a PCG
// generator from crypto/rand, falling back to the clock.
func WithRand(rng Rand) Option {
	return func(s *Session) { s.rng = rng }
}

// WithLogger sets the logger used for lifecycle messages.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) { s.logger = logger }
}

// WithObserver registers an observer for emitted events.
func WithObserver(o Observer) Option {
	return func(s *Session) { s.observers = append(s.observers, o) }
}

// NewSession creates a session in the NotStarted state for the given
// catalog. The catalog is copied.
func NewSession(catalog []Card, opts ...Option) (*Session, error) {
	if err := ValidateCatalog(catalog); err != nil {
		return nil, err
	}
	s := &Session{
		catalog: slices.Clone(catalog),
		state:   newState(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		seed, err := NewSeed()
		if err != nil {
			seed = uint64(time.Now().UnixNano())
		}
		s.rng = NewRand(seed)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}
	return s, nil
}

func newState() State {
	return State{
		PlayerHand:   []Card{},
		OpponentHand: []Card{},
		Status:       StatusNotStarted,
	}
}

// Start builds and shuffles a fresh deck, deals both hands and begins a
// new game. It may be called in any state; a running game is discarded.
func (s *Session) Start() (GameStarted, error) {
	s.mu.Lock()
	deck := BuildDeck(s.catalog)
	Shuffle(deck, s.rng)
	player, opponent, err := Deal(deck)
	if err != nil {
		s.mu.Unlock()
		return GameStarted{}, fmt.Errorf("start game: %w", err)
	}
	s.state = State{
		PlayerHand:   player,
		OpponentHand: opponent,
		MaxRounds:    len(player),
		Status:       StatusInProgress,
	}
	ev := GameStarted{MaxRounds: s.state.MaxRounds}
	s.mu.Unlock()

	s.logger.Info("game started", "max_rounds", ev.MaxRounds)
	s.emit(Event{Kind: EventGameStarted, Payload: ev})
	return ev, nil
}

// PlayCard plays the player's card at index against a card drawn at random
// from the opponent's hand. It returns a round_resolved event, followed by
// a game_ended event when this was the last round. On ErrInvalidMove the
// session is left untouched.
func (s *Session) PlayCard(index int) ([]Event, error) {
	s.mu.Lock()
	st := &s.state
	if st.Status != StatusInProgress {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: game is %s", ErrInvalidMove, st.Status)
	}
	if index < 0 || index >= len(st.PlayerHand) {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: card index %d out of range [0,%d)", ErrInvalidMove, index, len(st.PlayerHand))
	}

	playerCard := st.PlayerHand[index]
	st.PlayerHand = slices.Delete(st.PlayerHand, index, index+1)
	oppIndex := s.rng.IntN(len(st.OpponentHand))
	opponentCard := st.OpponentHand[oppIndex]
	st.OpponentHand = slices.Delete(st.OpponentHand, oppIndex, oppIndex+1)

	outcome := ResolveRound(playerCard, opponentCard, s.rng)
	st.RoundsPlayed++
	switch outcome.Result {
	case PlayerWins:
		st.PlayerScore++
	case OpponentWins:
		st.OpponentScore++
	}

	events := []Event{{
		Kind: EventRoundResolved,
		Payload: RoundResolved{
			RoundOutcome:  outcome,
			RoundsPlayed:  st.RoundsPlayed,
			MaxRounds:     st.MaxRounds,
			PlayerScore:   st.PlayerScore,
			OpponentScore: st.OpponentScore,
		},
	}}
	if st.RoundsPlayed == st.MaxRounds {
		st.Status = StatusFinished
		st.Winner = compare(st.PlayerScore, st.OpponentScore)
		events = append(events, Event{
			Kind: EventGameEnded,
			Payload: GameEnded{
				Winner:        st.Winner,
				PlayerScore:   st.PlayerScore,
				OpponentScore: st.OpponentScore,
			},
		})
	}
	round, finished, winner := st.RoundsPlayed, st.Status == StatusFinished, st.Winner
	s.mu.Unlock()

	s.logger.Debug("round resolved",
		"round", round,
		"player_card", playerCard.Name,
		"opponent_card", opponentCard.Name,
		"result", outcome.Result)
	if finished {
		s.logger.Info("game ended", "winner", winner)
	}
	for _, ev := range events {
		s.emit(ev)
	}
	return events, nil
}

// Reset discards any game and returns the session to NotStarted.
func (s *Session) Reset() GameReset {
	s.mu.Lock()
	s.state = newState()
	s.mu.Unlock()

	s.logger.Info("game reset")
	s.emit(Event{Kind: EventGameReset, Payload: GameReset{}})
	return GameReset{}
}

// State returns a copy of the current game state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state
	st.PlayerHand = slices.Clone(s.state.PlayerHand)
	st.OpponentHand = slices.Clone(s.state.OpponentHand)
	return st
}

func (s *Session) emit(ev Event) {
	for _, o := range s.observers {
		o.OnEvent(ev)
	}
}
