package server

import (
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/lox/trumpswap/internal/game"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 8192
)

var errSendBufferFull = errors.New("connection send buffer full")

// Connection wraps one websocket client. Inbound messages are translated
// into service calls; snapshots flow back through the send channel.
type Connection struct {
	ws      *websocket.Conn
	service *Service
	logger  *log.Logger
	send    chan *Message

	mu        sync.RWMutex
	seatID    string
	closeOnce sync.Once
	closed    chan struct{}
}

// NewConnection creates a connection wrapper
func NewConnection(ws *websocket.Conn, service *Service, logger *log.Logger) *Connection {
	return &Connection{
		ws:      ws,
		service: service,
		logger:  logger.WithPrefix("conn"),
		send:    make(chan *Message, 64),
		closed:  make(chan struct{}),
	}
}

// Start runs the read and write pumps. onDone fires after the read pump
// exits and the seat has been marked disconnected.
func (c *Connection) Start(onDone func()) {
	go c.writePump()
	go func() {
		c.readPump()
		if seatID := c.SeatID(); seatID != "" {
			c.service.Disconnected(seatID)
		}
		if onDone != nil {
			onDone()
		}
	}()
}

// Close shuts the connection down
func (c *Connection) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.closed)
		err = c.ws.Close()
	})
	return err
}

// SeatID returns the seat this connection joined as, if any
func (c *Connection) SeatID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.seatID
}

func (c *Connection) setSeatID(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seatID = id
}

// SendMessage queues a message for the client
func (c *Connection) SendMessage(msg *Message) error {
	select {
	case c.send <- msg:
		return nil
	case <-c.closed:
		return websocket.ErrCloseSent
	default:
		c.logger.Warn("Send buffer full, closing connection")
		_ = c.Close()
		return errSendBufferFull
	}
}

func (c *Connection) readPump() {
	defer func() { _ = c.Close() }()

	c.ws.SetReadLimit(maxMessageSize)
	_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var msg Message
		if err := c.ws.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Error("Websocket error", "error", err)
			}
			return
		}
		c.handleMessage(&msg)
	}
}

func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.ws.Close()
	}()

	for {
		select {
		case msg := <-c.send:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteJSON(msg); err != nil {
				c.logger.Error("Failed to write message", "error", err)
				return
			}

		case <-ticker.C:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.closed:
			_ = c.ws.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}
	}
}

func (c *Connection) handleMessage(msg *Message) {
	c.logger.Debug("Received message", "type", msg.Type, "seat", c.SeatID())

	switch msg.Type {
	case MessageTypeJoin:
		var data JoinData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse join data")
			return
		}
		c.handleJoin(data)

	case MessageTypeLeave:
		c.handleLeave()

	case MessageTypeAddBot:
		var data AddBotData
		if len(msg.Data) > 0 {
			if err := json.Unmarshal(msg.Data, &data); err != nil {
				c.sendError("invalid_message", "Failed to parse add bot data")
				return
			}
		}
		c.handleAddBot(data)

	case MessageTypeReset:
		c.service.Reset()

	case MessageTypeStartHand:
		if err := c.service.StartHand(); err != nil {
			c.sendRuleError(err)
		}

	case MessageTypeAction:
		var data ActionData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse action data")
			return
		}
		c.handleAction(data)

	default:
		c.sendError("unknown_message_type", "Unknown message type: "+string(msg.Type))
	}
}

func (c *Connection) handleJoin(data JoinData) {
	if data.Name == "" {
		c.sendError("invalid_name", "A display name is required")
		return
	}
	if c.SeatID() != "" {
		c.sendError("already_joined", "This connection already holds a seat")
		return
	}

	seatID, err := c.service.Join(data.Name, func(snap game.Snapshot) {
		msg, err := NewMessage(MessageTypeState, snap)
		if err != nil {
			c.logger.Error("Failed to encode snapshot", "error", err)
			return
		}
		_ = c.SendMessage(msg)
	})
	if err != nil {
		c.sendRuleError(err)
		return
	}

	c.setSeatID(seatID)
	if msg, err := NewMessage(MessageTypeJoined, JoinedData{SeatID: seatID, Name: data.Name}); err == nil {
		_ = c.SendMessage(msg)
	}
}

func (c *Connection) handleLeave() {
	seatID := c.SeatID()
	if seatID == "" {
		c.sendError("not_joined", "Join before leaving")
		return
	}
	if err := c.service.Leave(seatID); err != nil {
		c.sendRuleError(err)
		return
	}
	c.setSeatID("")
}

func (c *Connection) handleAddBot(data AddBotData) {
	count := data.Count
	if count <= 0 {
		count = 1
	}
	for i := 0; i < count; i++ {
		if _, err := c.service.AddBot(data.Name); err != nil {
			c.sendRuleError(err)
			return
		}
	}
}

func (c *Connection) handleAction(data ActionData) {
	seatID := c.SeatID()
	if seatID == "" {
		c.sendError("not_joined", "Join before acting")
		return
	}
	action, err := data.ToAction()
	if err != nil {
		c.sendError("invalid_action", err.Error())
		return
	}
	if err := c.service.Act(seatID, action); err != nil {
		c.sendRuleError(err)
	}
}

// sendRuleError forwards an engine rejection with its stable code
func (c *Connection) sendRuleError(err error) {
	var ruleErr *game.RuleError
	if errors.As(err, &ruleErr) {
		c.sendError(ruleErr.Code, ruleErr.Message)
		return
	}
	c.sendError("internal_error", err.Error())
}

func (c *Connection) sendError(code, message string) {
	msg, err := NewMessage(MessageTypeError, ErrorData{Code: code, Message: message})
	if err != nil {
		c.logger.Error("Failed to create error message", "error", err)
		return
	}
	_ = c.SendMessage(msg)
}
