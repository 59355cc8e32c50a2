package game

import (
	"fmt"
	"strings"
)

func (s *Session) settleByFold() {
	contesters := s.contesters()
	if len(contesters) == 0 {
		s.abortHand("no contesters remain")
		return
	}
	winner := contesters[0]
	payout := s.pot
	winner.Stack += payout
	s.pot = 0
	s.phase = PhaseWaiting

	s.emit(HandSettled{Reason: "fold", Payouts: map[string]int{winner.ID: payout}})
	s.addLog(fmt.Sprintf("%s wins %d, everyone else folded", winner.Name, payout))
}

// settleByTricks splits the pot among the contesters tied for the most
// tricks. The remainder goes one chip at a time to winners in seat order,
// so the split is deterministic and reproducible.
func (s *Session) settleByTricks() {
	contesters := s.contesters()
	most := 0
	for _, seat := range contesters {
		if seat.TricksWon > most {
			most = seat.TricksWon
		}
	}
	var winners []*Seat
	for _, seat := range contesters {
		if seat.TricksWon == most {
			winners = append(winners, seat)
		}
	}

	s.payOut(winners, "tricks")
	s.addLog(fmt.Sprintf("%s take the hand with %d tricks", winnerNames(winners), most))
}

// abortHand ends a hand that can no longer be played out, splitting the pot
// among whoever is still contesting.
func (s *Session) abortHand(reason string) {
	contesters := s.contesters()
	if len(contesters) > 0 && s.pot > 0 {
		s.payOut(contesters, "aborted")
	} else {
		s.pot = 0
		s.phase = PhaseWaiting
	}
	s.emit(HandAborted{Reason: reason})
	s.addLog(fmt.Sprintf("Hand abandoned: %s", reason))
}

// payOut divides the pot evenly among winners, distributing the remainder
// one chip at a time in seat order, then resets to Waiting.
func (s *Session) payOut(winners []*Seat, reason string) {
	share := s.pot / len(winners)
	remainder := s.pot % len(winners)

	payouts := make(map[string]int, len(winners))
	for i, seat := range winners {
		amount := share
		if i < remainder {
			amount++
		}
		seat.Stack += amount
		payouts[seat.ID] = amount
	}

	s.pot = 0
	s.phase = PhaseWaiting
	s.emit(HandSettled{Reason: reason, Payouts: payouts})
}

func winnerNames(winners []*Seat) string {
	names := make([]string, len(winners))
	for i, seat := range winners {
		names[i] = seat.Name
	}
	return strings.Join(names, ", ")
}
