package game

import (
	"testing"

	"github.com/lox/trumpswap/internal/randutil"
)

func TestAddSeatEnforcesCapacity(t *testing.T) {
	s := NewSession(DefaultConfig(), randutil.New(1), nil)
	names := []string{"a", "b", "c", "d", "e", "f"}
	for _, n := range names {
		if _, err := s.AddSeat(n, false); err != nil {
			t.Fatalf("adding %s: %v", n, err)
		}
	}
	if _, err := s.AddSeat("g", false); err != ErrTableFull {
		t.Errorf("got %v, want ErrTableFull", err)
	}
}

func TestAddSeatRejectsDuplicateNames(t *testing.T) {
	s := NewSession(DefaultConfig(), randutil.New(1), nil)
	if _, err := s.AddSeat("Ada", false); err != nil {
		t.Fatal(err)
	}
	if _, err := s.AddSeat("ada", false); err != ErrNameTaken {
		t.Errorf("got %v, want ErrNameTaken (case-insensitive)", err)
	}
}

func TestSeatJoiningMidHandSitsOut(t *testing.T) {
	s := bettingFixture(t, 2)
	seat, err := s.AddSeat("Clara", false)
	if err != nil {
		t.Fatal(err)
	}
	if seat.InHand {
		t.Error("late joiner should sit out until the next deal")
	}
	if err := s.Apply(seat.ID, Check{}); err != ErrNotYourTurn && err != ErrNotInHand {
		t.Errorf("late joiner acted: %v", err)
	}
}

func TestRemoveSeatDuringBettingFolds(t *testing.T) {
	s := bettingFixture(t, 3)
	acting := s.TurnSeat()

	if err := s.RemoveSeat(acting.ID); err != nil {
		t.Fatal(err)
	}
	if len(s.Seats()) != 2 {
		t.Fatalf("roster size = %d, want 2", len(s.Seats()))
	}
	if s.Phase() != PhasePreflopBet {
		t.Fatalf("phase = %v, hand should continue with two contesters", s.Phase())
	}
	if s.TurnSeat() == nil || s.TurnSeat().ID == acting.ID {
		t.Error("turn not passed to a remaining seat")
	}
}

func TestRemoveSeatSettlesWhenOneRemains(t *testing.T) {
	s := bettingFixture(t, 2)
	leaver := s.TurnSeat()
	var remaining *Seat
	for _, seat := range s.Seats() {
		if seat != leaver {
			remaining = seat
		}
	}

	if err := s.RemoveSeat(leaver.ID); err != nil {
		t.Fatal(err)
	}
	if s.Phase() != PhaseWaiting {
		t.Errorf("phase = %v, want waiting", s.Phase())
	}
	if remaining.Stack != DefaultStartChips {
		t.Errorf("remaining stack = %d, want unchanged", remaining.Stack)
	}
}

func TestRemoveUnknownSeat(t *testing.T) {
	s := NewSession(DefaultConfig(), randutil.New(1), nil)
	if err := s.RemoveSeat("seat-9"); err != ErrUnknownSeat {
		t.Errorf("got %v, want ErrUnknownSeat", err)
	}
}

func TestDisconnectMidHandAbortsAndSplitsPot(t *testing.T) {
	s := bettingFixture(t, 3)
	s.Apply(s.TurnSeat().ID, Bet{Amount: 30})
	s.Apply(s.TurnSeat().ID, Call{})
	s.Apply(s.TurnSeat().ID, Call{})
	if s.Phase() != PhaseFlopBet {
		t.Fatalf("phase = %v, want flopBet", s.Phase())
	}

	var aborted bool
	s.sink = func(e Event) {
		if _, ok := e.(HandAborted); ok {
			aborted = true
		}
	}

	gone := s.TurnSeat()
	if err := s.SeatDisconnected(gone.ID); err != nil {
		t.Fatal(err)
	}

	if !aborted {
		t.Error("expected HandAborted event")
	}
	if s.Phase() != PhaseWaiting {
		t.Errorf("phase = %v, want waiting", s.Phase())
	}
	if s.Pot() != 0 {
		t.Errorf("pot = %d, want 0 after split", s.Pot())
	}
	if gone.Connected {
		t.Error("seat still marked connected")
	}
	// the 90-chip pot splits between the two seats still contesting
	for _, seat := range s.Seats() {
		if seat == gone {
			continue
		}
		if seat.Stack != DefaultStartChips-30+45 {
			t.Errorf("%s stack = %d, want %d", seat.Name, seat.Stack, DefaultStartChips+15)
		}
	}
}

func TestDisconnectByFoldedSeatDoesNotAbort(t *testing.T) {
	s := bettingFixture(t, 3)
	folder := s.TurnSeat()
	if err := s.Apply(folder.ID, Fold{}); err != nil {
		t.Fatal(err)
	}

	var aborted bool
	s.sink = func(e Event) {
		if _, ok := e.(HandAborted); ok {
			aborted = true
		}
	}

	if err := s.SeatDisconnected(folder.ID); err != nil {
		t.Fatal(err)
	}

	if aborted {
		t.Error("folded seat cannot block the hand, abort unexpected")
	}
	if s.Phase() != PhasePreflopBet {
		t.Errorf("phase = %v, hand should continue", s.Phase())
	}
	if folder.Connected {
		t.Error("seat still marked connected")
	}
}

func TestDisconnectWhileWaitingIsQuiet(t *testing.T) {
	s := NewSession(DefaultConfig(), randutil.New(1), nil)
	seat, _ := s.AddSeat("Ada", false)
	if err := s.SeatDisconnected(seat.ID); err != nil {
		t.Fatal(err)
	}
	if s.Phase() != PhaseWaiting {
		t.Errorf("phase = %v, want waiting", s.Phase())
	}
}

func TestResetRestoresStacks(t *testing.T) {
	s := bettingFixture(t, 2)
	s.Apply(s.TurnSeat().ID, Bet{Amount: 100})

	s.Reset()

	if s.Phase() != PhaseWaiting || s.Pot() != 0 {
		t.Errorf("phase = %v pot = %d after reset", s.Phase(), s.Pot())
	}
	for _, seat := range s.Seats() {
		if seat.Stack != DefaultStartChips {
			t.Errorf("%s stack = %d, want %d", seat.Name, seat.Stack, DefaultStartChips)
		}
		if len(seat.Hand) != 0 || seat.InHand {
			t.Errorf("%s per-hand state not cleared", seat.Name)
		}
	}
	if s.HandNumber() != 0 {
		t.Errorf("hand number = %d, want 0", s.HandNumber())
	}
}
