// Package bot holds the heuristic decision policy that drives non-human
// seats. Decide is a pure function of a viewer snapshot and an injected
// rng, so a seeded bot is fully reproducible; the engine validates every
// decision through the same path as human actions.
package bot

import (
	rand "math/rand/v2"

	"github.com/lox/trumpswap/internal/deck"
	"github.com/lox/trumpswap/internal/game"
)

const (
	// trumpBonus weights a community card of the trump suit when sizing
	// up a swap
	trumpBonus = 3

	// swapGainThreshold is the minimum estimated improvement before a
	// swap is considered
	swapGainThreshold = 4

	swapChance  = 0.6
	openChance  = 0.15
	raiseChance = 0.2
	foldChance  = 0.4

	openBet     = 10
	raiseAmount = 10
)

// Decide picks the next action for the viewer seat of snap. It must only
// be called when it is that seat's turn; the returned action may still be
// rejected by the engine, which callers should treat as a fold-worthy bug.
func Decide(snap game.Snapshot, rng *rand.Rand) game.Action {
	me := snap.Viewer()
	if me == nil {
		return game.Fold{}
	}
	if snap.Phase == game.PhaseTrick {
		return decideTrick(snap, me)
	}
	return decideBetting(snap, me, rng)
}

func decideBetting(snap game.Snapshot, me *game.SeatView, rng *rand.Rand) game.Action {
	if swap, ok := considerSwap(snap, me, rng); ok {
		return swap
	}

	need := snap.CurrentBet - me.RoundBet
	if need > 0 {
		if me.Stack < need {
			return game.Fold{}
		}
		// a big call relative to the stack is dangerous
		if need > me.Stack/4 && rng.Float64() < foldChance {
			return game.Fold{}
		}
		if me.Stack > (need+raiseAmount)*3 && rng.Float64() < raiseChance {
			return game.Raise{Amount: raiseAmount}
		}
		return game.Call{}
	}

	if me.Stack >= openBet && rng.Float64() < openChance {
		return game.Bet{Amount: openBet}
	}
	return game.Check{}
}

// considerSwap estimates the gain of trading the weakest hand card for the
// best community card. The estimate is the community card's rank, plus a
// bonus when it is trump, minus the discarded card's rank.
func considerSwap(snap game.Snapshot, me *game.SeatView, rng *rand.Rand) (game.Swap, bool) {
	if me.HasSwapped || len(snap.Community) == 0 || len(me.Hand) == 0 {
		return game.Swap{}, false
	}
	cost := (snap.Pot + 1) / 2
	if me.Stack < cost {
		return game.Swap{}, false
	}

	bestComm := 0
	for i, c := range snap.Community {
		if c.Value() > snap.Community[bestComm].Value() {
			bestComm = i
		}
	}
	worstHand := 0
	for i, c := range me.Hand {
		if c.Value() < me.Hand[worstHand].Value() {
			worstHand = i
		}
	}

	gain := snap.Community[bestComm].Value() - me.Hand[worstHand].Value()
	if snap.Trump != nil && snap.Community[bestComm].Suit == *snap.Trump {
		gain += trumpBonus
	}
	if gain < swapGainThreshold || rng.Float64() >= swapChance {
		return game.Swap{}, false
	}
	return game.Swap{HandIndex: worstHand, CommunityIndex: bestComm}, true
}

func decideTrick(snap game.Snapshot, me *game.SeatView) game.Action {
	var lead *deck.Suit
	if snap.Trick != nil {
		lead = snap.Trick.LeadSuit
	}

	if lead == nil {
		return game.PlayCard{Card: highest(me.Hand)}
	}
	if followers := ofSuit(me.Hand, *lead); len(followers) > 0 {
		return game.PlayCard{Card: highest(followers)}
	}
	if snap.Trump != nil {
		if trumps := ofSuit(me.Hand, *snap.Trump); len(trumps) > 0 {
			// spend the cheapest trump that still takes the trick
			return game.PlayCard{Card: lowest(trumps)}
		}
	}
	return game.PlayCard{Card: lowest(me.Hand)}
}

func ofSuit(cards []deck.Card, suit deck.Suit) []deck.Card {
	var out []deck.Card
	for _, c := range cards {
		if c.Suit == suit {
			out = append(out, c)
		}
	}
	return out
}

func highest(cards []deck.Card) deck.Card {
	best := cards[0]
	for _, c := range cards[1:] {
		if c.Value() > best.Value() {
			best = c
		}
	}
	return best
}

func lowest(cards []deck.Card) deck.Card {
	best := cards[0]
	for _, c := range cards[1:] {
		if c.Value() < best.Value() {
			best = c
		}
	}
	return best
}
