package game

import "github.com/lox/trumpswap/internal/deck"

// Seat is one participant at the table. Stack persists across hands;
// everything below the divider is per-hand transient state, reset by
// StartHand.
type Seat struct {
	ID        string
	Name      string
	Bot       bool
	Connected bool
	Stack     int

	Hand       []deck.Card
	InHand     bool
	Folded     bool
	HasSwapped bool
	RoundBet   int
	TricksWon  int
	Acted      bool
}

// Contesting reports whether the seat is still competing for the pot
func (s *Seat) Contesting() bool {
	return s.InHand && !s.Folded
}

func (s *Seat) holdsSuit(suit deck.Suit) bool {
	for _, c := range s.Hand {
		if c.Suit == suit {
			return true
		}
	}
	return false
}

func (s *Seat) handIndex(card deck.Card) int {
	for i, c := range s.Hand {
		if c == card {
			return i
		}
	}
	return -1
}

func (s *Seat) resetForHand(inHand bool) {
	s.Hand = nil
	s.InHand = inHand
	s.Folded = false
	s.HasSwapped = false
	s.RoundBet = 0
	s.TricksWon = 0
	s.Acted = false
}
