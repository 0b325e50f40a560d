package battle

// EventKind identifies an event emitted by a Session.
type EventKind string

const (
	EventGameStarted   EventKind = "game_started"
	EventRoundResolved EventKind = "round_resolved"
	EventGameEnded     EventKind = "game_ended"
	EventGameReset     EventKind = "game_reset"
)

// Event is a notification for presenters. Payload is one of GameStarted,
// RoundResolved, GameEnded or GameReset, matching Kind.
type Event struct {
	Kind    EventKind
	Payload any
}

type GameStarted struct {
	MaxRounds int
}

type RoundResolved struct {
	RoundOutcome
	RoundsPlayed  int
	MaxRounds     int
	PlayerScore   int
	OpponentScore int
}

type GameEnded struct {
	Winner        Result
	PlayerScore   int
	OpponentScore int
}

type GameReset struct{}

// Observer receives every event a Session emits, after the state change
// that produced it has been applied.
type Observer interface {
	OnEvent(Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

func (f ObserverFunc) OnEvent(ev Event) { f(ev) }
