package game

import (
	"fmt"
	"strings"
)

// AddSeat places a new participant at the table. Human display names must
// be unique (case-insensitive); seats joining mid-hand sit out until the
// next deal.
func (s *Session) AddSeat(name string, bot bool) (*Seat, error) {
	if len(s.seats) >= s.cfg.MaxSeats {
		return nil, ErrTableFull
	}
	for _, seat := range s.seats {
		if strings.EqualFold(seat.Name, name) {
			return nil, ErrNameTaken
		}
	}

	s.nextSeatID++
	seat := &Seat{
		ID:        fmt.Sprintf("seat-%d", s.nextSeatID),
		Name:      name,
		Bot:       bot,
		Connected: true,
		Stack:     s.cfg.StartChips,
	}
	s.seats = append(s.seats, seat)
	s.addLog(fmt.Sprintf("%s joins the table", name))
	return seat, nil
}

// RemoveSeat takes a seat out of the roster. Leaving during a betting round
// counts as a fold; leaving during the trick phase abandons the hand, since
// the trick cannot complete without the seat's cards.
func (s *Session) RemoveSeat(id string) error {
	idx := s.seatIndex(id)
	if idx < 0 {
		return ErrUnknownSeat
	}
	seat := s.seats[idx]
	s.addLog(fmt.Sprintf("%s leaves the table", seat.Name))

	switch {
	case s.phase.IsBetting() && seat.Contesting():
		seat.Folded = true
		seat.InHand = false
		s.afterLeaveInBetting(idx)
	case s.phase == PhaseTrick && seat.Contesting():
		seat.Folded = true
		seat.InHand = false
		s.abortHand(fmt.Sprintf("%s left mid-trick", seat.Name))
	}

	s.dropSeat(idx)
	return nil
}

// afterLeaveInBetting advances the round after a contester vanished. The
// departure can settle the hand, close the round, or just pass the turn.
func (s *Session) afterLeaveInBetting(idx int) {
	contesters := s.contesters()
	if len(contesters) <= 1 {
		s.settleByFold()
		return
	}
	if s.roundComplete(contesters) {
		s.advanceStage()
		return
	}
	if s.turn == idx {
		s.turn = s.nextActive(s.turn)
	}
}

// dropSeat removes the seat at idx and shifts the dealer and turn indexes
// so they keep pointing at the same seats.
func (s *Session) dropSeat(idx int) {
	s.seats = append(s.seats[:idx], s.seats[idx+1:]...)
	if len(s.seats) == 0 {
		s.dealer = 0
		s.turn = 0
		return
	}
	if s.dealer > idx {
		s.dealer--
	}
	if s.dealer >= len(s.seats) {
		s.dealer = 0
	}
	if s.turn > idx {
		s.turn--
	}
	if s.turn >= len(s.seats) {
		s.turn = 0
	}
}

// SeatDisconnected records a dropped connection. A hand cannot wait on a
// seat that may never act again, so a mid-hand disconnect forcibly ends the
// hand and the pot is split among the remaining contesters.
func (s *Session) SeatDisconnected(id string) error {
	idx := s.seatIndex(id)
	if idx < 0 {
		return ErrUnknownSeat
	}
	seat := s.seats[idx]
	seat.Connected = false
	s.addLog(fmt.Sprintf("%s disconnected", seat.Name))

	if s.phase != PhaseWaiting && seat.Contesting() {
		seat.Folded = true
		s.abortHand(fmt.Sprintf("%s disconnected", seat.Name))
	}
	return nil
}

// Reset returns the table to its initial state: phase Waiting, empty pot
// and community, every stack back to the configured start chips.
func (s *Session) Reset() {
	s.phase = PhaseWaiting
	s.handNum = 0
	s.dealer = 0
	s.turn = 0
	s.deck = nil
	s.community = nil
	s.pot = 0
	s.currentBet = 0
	s.trick = trickState{}
	for _, seat := range s.seats {
		seat.resetForHand(false)
		seat.Stack = s.cfg.StartChips
	}
	s.log = nil
	s.addLog("Table reset")
}
