package game

import (
	"fmt"

	"github.com/lox/trumpswap/internal/deck"
)

func (s *Session) applyPlay(idx int, act PlayCard) error {
	seat := s.seats[idx]
	if s.phase != PhaseTrick {
		return ErrWrongPhase
	}
	if idx != s.turn {
		return ErrNotYourTurn
	}
	if !seat.Contesting() {
		return ErrNotInHand
	}
	cardIdx := seat.handIndex(act.Card)
	if cardIdx < 0 {
		return ErrCardNotHeld
	}
	if s.trick.LeadSuit != nil && act.Card.Suit != *s.trick.LeadSuit && seat.holdsSuit(*s.trick.LeadSuit) {
		return ErrMustFollowSuit
	}

	if s.trick.LeadSuit == nil {
		lead := act.Card.Suit
		s.trick.LeadSuit = &lead
	}
	seat.Hand = append(seat.Hand[:cardIdx], seat.Hand[cardIdx+1:]...)
	s.trick.Plays = append(s.trick.Plays, Play{SeatID: seat.ID, Card: act.Card})

	s.emit(ActionApplied{SeatID: seat.ID, Action: act.ActionName()})
	s.addLog(fmt.Sprintf("%s plays %s", seat.Name, act.Card))

	if len(s.trick.Plays) == len(s.contesters()) {
		s.resolveTrick()
		return nil
	}
	s.turn = s.nextActive(s.turn)
	return nil
}

func (s *Session) resolveTrick() {
	winning := EvaluateTrickWinner(s.trick.Plays, *s.trick.LeadSuit, s.TrumpSuit())
	winnerIdx := s.seatIndex(winning.SeatID)
	winner := s.seats[winnerIdx]
	winner.TricksWon++

	s.emit(TrickWon{SeatID: winner.ID, Number: s.trick.Number})
	s.addLog(fmt.Sprintf("%s wins trick %d with %s", winner.Name, s.trick.Number, winning.Card))

	for _, seat := range s.contesters() {
		if len(seat.Hand) > 0 {
			s.trick = trickState{Number: s.trick.Number + 1}
			s.turn = winnerIdx
			return
		}
	}
	s.settleByTricks()
}

// EvaluateTrickWinner returns the winning play of a completed trick. The
// comparison is a tournament over the plays and its result does not depend
// on the order they are visited:
//  1. trump beats any non-trump,
//  2. higher trump beats lower trump,
//  3. a lead-suit card beats an off-suit non-trump card,
//  4. higher lead-suit card beats lower,
//  5. off-suit non-trump cards never overtake the running best.
func EvaluateTrickWinner(plays []Play, lead deck.Suit, trump *deck.Suit) Play {
	best := plays[0]
	for _, p := range plays[1:] {
		if beats(p.Card, best.Card, lead, trump) {
			best = p
		}
	}
	return best
}

func beats(card, best deck.Card, lead deck.Suit, trump *deck.Suit) bool {
	cardTrump := trump != nil && card.Suit == *trump
	bestTrump := trump != nil && best.Suit == *trump
	switch {
	case cardTrump && !bestTrump:
		return true
	case !cardTrump && bestTrump:
		return false
	case cardTrump && bestTrump:
		return card.Value() > best.Value()
	}

	cardLead := card.Suit == lead
	bestLead := best.Suit == lead
	switch {
	case cardLead && !bestLead:
		return true
	case !cardLead && bestLead:
		return false
	case cardLead && bestLead:
		return card.Value() > best.Value()
	}
	return false
}
