package game

import (
	"fmt"

	"github.com/lox/trumpswap/internal/deck"
)

// Action is the closed set of moves a seat can submit. Bots and humans go
// through the exact same Apply path; there is no privileged bypass.
type Action interface {
	ActionName() string
}

// Fold gives up the hand. No chip movement.
type Fold struct{}

// Check passes when nothing is owed this round.
type Check struct{}

// Call matches the current bet.
type Call struct{}

// Bet opens the betting in a round where no bet stands.
type Bet struct {
	Amount int
}

// Raise increases the standing bet by Amount (raise-by semantics: the
// actor commits the amount owed plus Amount on top).
type Raise struct {
	Amount int
}

// Swap exchanges the hand card at HandIndex with the community card at
// CommunityIndex, paying half the pot (rounded up) into the pot.
type Swap struct {
	HandIndex      int
	CommunityIndex int
}

// PlayCard plays a card from the seat's hand during the trick phase.
type PlayCard struct {
	Card deck.Card
}

func (Fold) ActionName() string     { return "fold" }
func (Check) ActionName() string    { return "check" }
func (Call) ActionName() string     { return "call" }
func (Bet) ActionName() string      { return "bet" }
func (Raise) ActionName() string    { return "raise" }
func (Swap) ActionName() string     { return "swap" }
func (PlayCard) ActionName() string { return "playCard" }

// RuleError is a recoverable rule violation. State is never mutated when
// Apply returns one. Code is stable for the wire; Message is for humans.
type RuleError struct {
	Code    string
	Message string
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

var (
	ErrUnknownSeat       = &RuleError{"unknown_seat", "no seat with that id"}
	ErrWrongPhase        = &RuleError{"wrong_phase", "action not legal in the current phase"}
	ErrNotYourTurn       = &RuleError{"wrong_turn", "it is not this seat's turn"}
	ErrNotInHand         = &RuleError{"not_in_hand", "seat is not contesting this hand"}
	ErrCannotCheck       = &RuleError{"cannot_check", "a bet is owed; call, raise or fold"}
	ErrNothingToCall     = &RuleError{"nothing_to_call", "no bet is owed; check or bet"}
	ErrInsufficientStack = &RuleError{"insufficient_stack", "seat cannot afford this action"}
	ErrBetAlreadyOpen    = &RuleError{"bet_already_open", "a bet already stands; raise instead"}
	ErrNoBetToRaise      = &RuleError{"no_bet_to_raise", "no bet stands; bet instead"}
	ErrInvalidAmount     = &RuleError{"invalid_amount", "amount must be at least 1"}
	ErrAlreadySwapped    = &RuleError{"already_swapped", "swap is usable once per hand"}
	ErrEmptyCommunity    = &RuleError{"empty_community", "no community cards to swap with"}
	ErrInvalidIndex      = &RuleError{"invalid_index", "hand or community index out of range"}
	ErrCardNotHeld       = &RuleError{"card_not_held", "seat does not hold that card"}
	ErrMustFollowSuit    = &RuleError{"must_follow_suit", "a card of the lead suit must be played"}
	ErrHandInProgress    = &RuleError{"hand_in_progress", "a hand is already underway"}
	ErrNotEnoughPlayers  = &RuleError{"not_enough_players", "at least two connected seats are required"}
	ErrTableFull         = &RuleError{"table_full", "all seats are taken"}
	ErrNameTaken         = &RuleError{"name_taken", "that display name is already in use"}
)
