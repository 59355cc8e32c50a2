package server

import (
	"testing"

	"github.com/lox/trumpswap/internal/deck"
	"github.com/lox/trumpswap/internal/game"
)

func TestActionDataToAction(t *testing.T) {
	tests := []struct {
		name string
		data ActionData
		want game.Action
	}{
		{"fold", ActionData{Action: "fold"}, game.Fold{}},
		{"check", ActionData{Action: "check"}, game.Check{}},
		{"call", ActionData{Action: "call"}, game.Call{}},
		{"bet", ActionData{Action: "bet", Amount: 25}, game.Bet{Amount: 25}},
		{"raise", ActionData{Action: "raise", Amount: 10}, game.Raise{Amount: 10}},
		{"swap", ActionData{Action: "swap", HandIndex: 2, CommunityIndex: 1}, game.Swap{HandIndex: 2, CommunityIndex: 1}},
		{"play card", ActionData{Action: "playCard", Card: "AS"}, game.PlayCard{Card: deck.MustParseCards("As")[0]}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.data.ToAction()
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("got %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestActionDataToActionErrors(t *testing.T) {
	if _, err := (ActionData{Action: "steal"}).ToAction(); err == nil {
		t.Error("expected error for unknown action")
	}
	if _, err := (ActionData{Action: "playCard", Card: "ZZ"}).ToAction(); err == nil {
		t.Error("expected error for bad card code")
	}
}
