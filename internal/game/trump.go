package game

import "github.com/lox/trumpswap/internal/deck"

// ResolveTrump derives the trump suit from the community cards: the suit
// with the most cards wins; ties break to the tied suit holding the single
// highest rank. Returns nil for an empty community. Pure: it must be
// re-evaluated whenever the community changes (reveal or swap), never
// cached.
func ResolveTrump(community []deck.Card) *deck.Suit {
	if len(community) == 0 {
		return nil
	}

	var counts [4]int
	var highest [4]deck.Rank
	for _, c := range community {
		counts[c.Suit]++
		if c.Rank > highest[c.Suit] {
			highest[c.Suit] = c.Rank
		}
	}

	max := 0
	for _, n := range counts {
		if n > max {
			max = n
		}
	}

	// canonical suit order settles an exact rank tie between tied suits
	var best deck.Suit
	var bestRank deck.Rank
	found := false
	for _, suit := range deck.Suits {
		if counts[suit] != max {
			continue
		}
		if !found || highest[suit] > bestRank {
			best = suit
			bestRank = highest[suit]
			found = true
		}
	}
	return &best
}
