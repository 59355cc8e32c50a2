package game

import "github.com/lox/trumpswap/internal/deck"

// Snapshot is a read-only projection of the session scoped to one viewer.
// Only the viewer's own hand is included; everyone else's hand is a count.
// It is the sole channel observers learn state through.
type Snapshot struct {
	ViewerID   string      `json:"viewerId,omitempty"`
	Phase      Phase       `json:"phase"`
	HandNumber int         `json:"handNumber"`
	Pot        int         `json:"pot"`
	CurrentBet int         `json:"currentBet"`
	Community  []deck.Card `json:"community"`
	Trump      *deck.Suit  `json:"trump,omitempty"`
	Seats      []SeatView  `json:"seats"`
	Trick      *TrickView  `json:"trick,omitempty"`
	Log        []string    `json:"log"`
}

// SeatView is the public projection of a seat, plus the hand when the seat
// is the viewer's own.
type SeatView struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Bot        bool        `json:"bot"`
	Connected  bool        `json:"connected"`
	Stack      int         `json:"stack"`
	HandCount  int         `json:"handCount"`
	Hand       []deck.Card `json:"hand,omitempty"`
	InHand     bool        `json:"inHand"`
	Folded     bool        `json:"folded"`
	HasSwapped bool        `json:"hasSwapped"`
	RoundBet   int         `json:"roundBet"`
	TricksWon  int         `json:"tricksWon"`
	Dealer     bool        `json:"dealer"`
	Turn       bool        `json:"turn"`
}

// TrickView is the public state of the trick in progress
type TrickView struct {
	Number   int        `json:"number"`
	LeadSuit *deck.Suit `json:"leadSuit,omitempty"`
	Plays    []Play     `json:"plays"`
}

// Snapshot builds the viewer-scoped projection for seatID. An unknown or
// empty seatID yields a spectator view with every hand hidden.
func (s *Session) Snapshot(seatID string) Snapshot {
	snap := Snapshot{
		ViewerID:   seatID,
		Phase:      s.phase,
		HandNumber: s.handNum,
		Pot:        s.pot,
		CurrentBet: s.currentBet,
		Community:  append([]deck.Card(nil), s.community...),
		Trump:      s.TrumpSuit(),
		Log:        append([]string(nil), s.log...),
	}

	for i, seat := range s.seats {
		view := SeatView{
			ID:         seat.ID,
			Name:       seat.Name,
			Bot:        seat.Bot,
			Connected:  seat.Connected,
			Stack:      seat.Stack,
			HandCount:  len(seat.Hand),
			InHand:     seat.InHand,
			Folded:     seat.Folded,
			HasSwapped: seat.HasSwapped,
			RoundBet:   seat.RoundBet,
			TricksWon:  seat.TricksWon,
			Dealer:     i == s.dealer,
			Turn:       s.phase != PhaseWaiting && i == s.turn,
		}
		if seat.ID == seatID {
			view.Hand = append([]deck.Card(nil), seat.Hand...)
		}
		snap.Seats = append(snap.Seats, view)
	}

	if s.phase == PhaseTrick {
		snap.Trick = &TrickView{
			Number:   s.trick.Number,
			LeadSuit: s.trick.LeadSuit,
			Plays:    append([]Play(nil), s.trick.Plays...),
		}
	}
	return snap
}

// Viewer returns the viewer's own seat view, or nil for spectators
func (s Snapshot) Viewer() *SeatView {
	for i := range s.Seats {
		if s.Seats[i].ID == s.ViewerID {
			return &s.Seats[i]
		}
	}
	return nil
}
