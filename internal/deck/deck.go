package deck

import (
	rand "math/rand/v2"
)

// Deck represents a shuffled deck of playing cards. Decks are built fresh
// for every hand and consumed from the top; they are never reshuffled.
type Deck struct {
	cards []Card
}

// New creates a standard 52-card deck shuffled with the provided RNG
func New(rng *rand.Rand) *Deck {
	d := &Deck{cards: make([]Card, 0, 52)}

	for suit := Spades; suit <= Clubs; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			d.cards = append(d.cards, NewCard(suit, rank))
		}
	}

	// Fisher-Yates
	for i := len(d.cards) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}

	return d
}

// NewOrdered creates an unshuffled deck for deterministic tests
func NewOrdered() *Deck {
	d := &Deck{cards: make([]Card, 0, 52)}
	for suit := Spades; suit <= Clubs; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			d.cards = append(d.cards, NewCard(suit, rank))
		}
	}
	return d
}

// NewStacked creates a deck that deals the given cards in order.
// Intended for tests.
func NewStacked(cards []Card) *Deck {
	stacked := make([]Card, len(cards))
	copy(stacked, cards)
	return &Deck{cards: stacked}
}

// Deal removes and returns the top card. Dealing from an empty deck is a
// programming error: the fixed deal sizes (7 cards x 6 seats, 3 burns,
// 7 community reveals) consume at most 52 cards.
func (d *Deck) Deal() Card {
	if len(d.cards) == 0 {
		panic("deck: deal from empty deck")
	}

	card := d.cards[0]
	d.cards = d.cards[1:]
	return card
}

// DealN deals n cards from the deck
func (d *Deck) DealN(n int) []Card {
	cards := make([]Card, n)
	for i := range cards {
		cards[i] = d.Deal()
	}
	return cards
}

// Burn discards the top card before a community reveal
func (d *Deck) Burn() {
	d.Deal()
}

// Remaining returns the number of cards left in the deck
func (d *Deck) Remaining() int {
	return len(d.cards)
}
