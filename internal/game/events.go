package game

import "github.com/lox/trumpswap/internal/deck"

// EventType identifies the kind of a structured engine event
type EventType string

const (
	EventHandStarted       EventType = "handStarted"
	EventActionApplied     EventType = "actionApplied"
	EventCommunityRevealed EventType = "communityRevealed"
	EventCardSwapped       EventType = "cardSwapped"
	EventTrickWon          EventType = "trickWon"
	EventHandSettled       EventType = "handSettled"
	EventHandAborted       EventType = "handAborted"
)

// Event is a structured record of something the engine did. Consumers act
// on these values, never on the human-readable log strings, which exist
// only as an audit trail.
type Event interface {
	Type() EventType
}

// EventSink receives events synchronously as the engine emits them
type EventSink func(Event)

// HandStarted fires when a new hand is dealt
type HandStarted struct {
	Number   int
	DealerID string
}

// ActionApplied fires after any accepted betting or trick action
type ActionApplied struct {
	SeatID string
	Action string
	Amount int
}

// CommunityRevealed fires after each community tranche is dealt
type CommunityRevealed struct {
	Phase Phase
	Cards []deck.Card
}

// CardSwapped fires when a seat exchanges a hand card for a community card
type CardSwapped struct {
	SeatID        string
	Cost          int
	HandCard      deck.Card
	CommunityCard deck.Card
}

// TrickWon fires when a trick resolves, carrying the winner's seat id so
// no consumer has to infer the winner from log text
type TrickWon struct {
	SeatID string
	Number int
}

// HandSettled fires when a hand's pot is paid out
type HandSettled struct {
	Reason  string
	Payouts map[string]int
}

// HandAborted fires when a hand is forcibly ended mid-play
type HandAborted struct {
	Reason string
}

func (HandStarted) Type() EventType       { return EventHandStarted }
func (ActionApplied) Type() EventType     { return EventActionApplied }
func (CommunityRevealed) Type() EventType { return EventCommunityRevealed }
func (CardSwapped) Type() EventType       { return EventCardSwapped }
func (TrickWon) Type() EventType          { return EventTrickWon }
func (HandSettled) Type() EventType       { return EventHandSettled }
func (HandAborted) Type() EventType       { return EventHandAborted }
