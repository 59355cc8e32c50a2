package server

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/lox/trumpswap/internal/deck"
	"github.com/lox/trumpswap/internal/game"
)

// MessageType identifies a websocket message
type MessageType string

const (
	// client → server
	MessageTypeJoin      MessageType = "join"
	MessageTypeLeave     MessageType = "leave"
	MessageTypeAddBot    MessageType = "addBot"
	MessageTypeReset     MessageType = "reset"
	MessageTypeStartHand MessageType = "startHand"
	MessageTypeAction    MessageType = "action"

	// server → client
	MessageTypeJoined MessageType = "joined"
	MessageTypeState  MessageType = "state"
	MessageTypeError  MessageType = "error"
)

// Message is the websocket envelope
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewMessage creates a message with the current timestamp
func NewMessage(messageType MessageType, data interface{}) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return &Message{
		Type:      messageType,
		Data:      dataBytes,
		Timestamp: time.Now(),
	}, nil
}

// Client → Server payloads

type JoinData struct {
	Name string `json:"name"`
}

type AddBotData struct {
	Name  string `json:"name,omitempty"`
	Count int    `json:"count,omitempty"`
}

// ActionData carries one game action. Card uses the two-letter code form,
// e.g. "AS" for the ace of spades.
type ActionData struct {
	Action         string `json:"action"`
	Amount         int    `json:"amount,omitempty"`
	HandIndex      int    `json:"handIndex,omitempty"`
	CommunityIndex int    `json:"communityIndex,omitempty"`
	Card           string `json:"card,omitempty"`
}

// ToAction translates the wire form into an engine action
func (d ActionData) ToAction() (game.Action, error) {
	switch d.Action {
	case "fold":
		return game.Fold{}, nil
	case "check":
		return game.Check{}, nil
	case "call":
		return game.Call{}, nil
	case "bet":
		return game.Bet{Amount: d.Amount}, nil
	case "raise":
		return game.Raise{Amount: d.Amount}, nil
	case "swap":
		return game.Swap{HandIndex: d.HandIndex, CommunityIndex: d.CommunityIndex}, nil
	case "playCard":
		card, err := deck.ParseCard(d.Card)
		if err != nil {
			return nil, err
		}
		return game.PlayCard{Card: card}, nil
	default:
		return nil, fmt.Errorf("unknown action %q", d.Action)
	}
}

// Server → Client payloads

type JoinedData struct {
	SeatID string `json:"seatId"`
	Name   string `json:"name"`
}

type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
