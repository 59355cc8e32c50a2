package tui

import (
	"strings"
	"testing"

	"github.com/lox/trumpswap/internal/deck"
	"github.com/lox/trumpswap/internal/game"
)

func TestRenderCardsIndexed(t *testing.T) {
	out := renderCards(deck.MustParseCards("AsKh"), true)
	if !strings.Contains(out, "[0]") || !strings.Contains(out, "[1]") {
		t.Errorf("indexed render missing indexes: %q", out)
	}
	if !strings.Contains(out, "A♠") || !strings.Contains(out, "K♥") {
		t.Errorf("render missing cards: %q", out)
	}
}

func TestRenderSeatShowsState(t *testing.T) {
	seat := game.SeatView{
		Name: "Ada", Stack: 950, InHand: true,
		HandCount: 5, TricksWon: 2, RoundBet: 30, HasSwapped: true,
	}
	out := renderSeat(seat)
	for _, want := range []string{"Ada", "950", "cards 5", "tricks 2", "in 30", "swapped"} {
		if !strings.Contains(out, want) {
			t.Errorf("seat render missing %q: %q", want, out)
		}
	}
}

func TestRenderTrickNamesPlayers(t *testing.T) {
	snap := game.Snapshot{
		Seats: []game.SeatView{{ID: "seat-1", Name: "Ada"}},
		Trick: &game.TrickView{
			Number: 3,
			Plays:  []game.Play{{SeatID: "seat-1", Card: deck.MustParseCards("Qd")[0]}},
		},
	}
	out := renderTrick(snap)
	if !strings.Contains(out, "Trick 3") || !strings.Contains(out, "Ada") {
		t.Errorf("trick render wrong: %q", out)
	}
}
