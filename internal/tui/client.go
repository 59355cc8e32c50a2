package tui

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/lox/trumpswap/internal/game"
	"github.com/lox/trumpswap/internal/server"
)

// ServerMsg is delivered into the bubbletea update loop for every message
// the server pushes.
type ServerMsg interface{ serverMsg() }

// StateMsg carries a fresh snapshot
type StateMsg struct {
	Snapshot game.Snapshot
}

// JoinedMsg confirms the seat this client holds
type JoinedMsg struct {
	SeatID string
	Name   string
}

// ServerErrorMsg carries a rejected request's code and message
type ServerErrorMsg struct {
	Code    string
	Message string
}

// DisconnectedMsg fires when the websocket drops
type DisconnectedMsg struct {
	Err error
}

func (StateMsg) serverMsg()        {}
func (JoinedMsg) serverMsg()       {}
func (ServerErrorMsg) serverMsg()  {}
func (DisconnectedMsg) serverMsg() {}

// Client is a thin websocket client for the game server
type Client struct {
	conn     *websocket.Conn
	logger   *log.Logger
	incoming chan ServerMsg
}

// Dial connects to a server's /ws endpoint
func Dial(url string, logger *log.Logger) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, fmt.Errorf("dialing %s: %w", url, err)
	}

	c := &Client{
		conn:     conn,
		logger:   logger.WithPrefix("client"),
		incoming: make(chan ServerMsg, 64),
	}
	go c.readLoop()
	return c, nil
}

// Close shuts the connection down
func (c *Client) Close() error {
	return c.conn.Close()
}

// Incoming returns the channel of decoded server messages
func (c *Client) Incoming() <-chan ServerMsg {
	return c.incoming
}

func (c *Client) readLoop() {
	defer close(c.incoming)
	for {
		var msg server.Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			c.incoming <- DisconnectedMsg{Err: err}
			return
		}

		switch msg.Type {
		case server.MessageTypeState:
			var snap game.Snapshot
			if err := json.Unmarshal(msg.Data, &snap); err != nil {
				c.logger.Error("Bad state message", "error", err)
				continue
			}
			c.incoming <- StateMsg{Snapshot: snap}

		case server.MessageTypeJoined:
			var joined server.JoinedData
			if err := json.Unmarshal(msg.Data, &joined); err != nil {
				c.logger.Error("Bad joined message", "error", err)
				continue
			}
			c.incoming <- JoinedMsg{SeatID: joined.SeatID, Name: joined.Name}

		case server.MessageTypeError:
			var errData server.ErrorData
			if err := json.Unmarshal(msg.Data, &errData); err != nil {
				c.logger.Error("Bad error message", "error", err)
				continue
			}
			c.incoming <- ServerErrorMsg{Code: errData.Code, Message: errData.Message}

		default:
			c.logger.Debug("Ignoring message", "type", msg.Type)
		}
	}
}

func (c *Client) write(msgType server.MessageType, data interface{}) error {
	msg, err := server.NewMessage(msgType, data)
	if err != nil {
		return err
	}
	return c.conn.WriteJSON(msg)
}

// Join requests a seat under the given display name
func (c *Client) Join(name string) error {
	return c.write(server.MessageTypeJoin, server.JoinData{Name: name})
}

// Leave gives the seat up
func (c *Client) Leave() error {
	return c.write(server.MessageTypeLeave, nil)
}

// AddBots asks the server to seat count bots
func (c *Client) AddBots(count int) error {
	return c.write(server.MessageTypeAddBot, server.AddBotData{Count: count})
}

// StartHand asks the server to deal
func (c *Client) StartHand() error {
	return c.write(server.MessageTypeStartHand, nil)
}

// Reset asks the server to reset the table
func (c *Client) Reset() error {
	return c.write(server.MessageTypeReset, nil)
}

// Act submits a game action
func (c *Client) Act(data server.ActionData) error {
	return c.write(server.MessageTypeAction, data)
}
