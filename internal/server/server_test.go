package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/trumpswap/internal/game"
	"github.com/lox/trumpswap/internal/randutil"
)

func startTestServer(t *testing.T) (*httptest.Server, *Service) {
	t.Helper()
	logger := log.New(io.Discard)
	svc := NewService(game.DefaultConfig(), time.Millisecond, randutil.New(1), quartz.NewReal(), logger)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go svc.Run(ctx)

	srv := NewServer("", svc, logger)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts, svc
}

func dialWS(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func send(t *testing.T, conn *websocket.Conn, msgType MessageType, data interface{}) {
	t.Helper()
	msg, err := NewMessage(msgType, data)
	require.NoError(t, err)
	require.NoError(t, conn.WriteJSON(msg))
}

// readUntil reads messages until one of the wanted type arrives
func readUntil(t *testing.T, conn *websocket.Conn, want MessageType) Message {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	require.NoError(t, conn.SetReadDeadline(deadline))
	for {
		var msg Message
		require.NoError(t, conn.ReadJSON(&msg), "waiting for %s", want)
		if msg.Type == want {
			return msg
		}
	}
}

func TestHealthEndpoint(t *testing.T) {
	ts, _ := startTestServer(t)
	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestJoinOverWebsocket(t *testing.T) {
	ts, _ := startTestServer(t)
	conn := dialWS(t, ts)

	send(t, conn, MessageTypeJoin, JoinData{Name: "Ada"})

	// joining yields a seat confirmation and a state snapshot, in
	// either order
	var joined *JoinedData
	var snap *game.Snapshot
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	for joined == nil || snap == nil {
		var msg Message
		require.NoError(t, conn.ReadJSON(&msg))
		switch msg.Type {
		case MessageTypeJoined:
			joined = &JoinedData{}
			require.NoError(t, json.Unmarshal(msg.Data, joined))
		case MessageTypeState:
			snap = &game.Snapshot{}
			require.NoError(t, json.Unmarshal(msg.Data, snap))
		}
	}

	assert.Equal(t, "Ada", joined.Name)
	assert.NotEmpty(t, joined.SeatID)
	assert.Equal(t, game.PhaseWaiting, snap.Phase)
}

func TestJoinTwiceRejected(t *testing.T) {
	ts, _ := startTestServer(t)
	conn := dialWS(t, ts)

	send(t, conn, MessageTypeJoin, JoinData{Name: "Ada"})
	readUntil(t, conn, MessageTypeJoined)

	send(t, conn, MessageTypeJoin, JoinData{Name: "Twice"})
	msg := readUntil(t, conn, MessageTypeError)
	var errData ErrorData
	require.NoError(t, json.Unmarshal(msg.Data, &errData))
	assert.Equal(t, "already_joined", errData.Code)
}

func TestStartHandOverWebsocket(t *testing.T) {
	ts, svc := startTestServer(t)
	conn := dialWS(t, ts)

	send(t, conn, MessageTypeJoin, JoinData{Name: "Ada"})
	msg := readUntil(t, conn, MessageTypeJoined)
	var joined JoinedData
	require.NoError(t, json.Unmarshal(msg.Data, &joined))

	_, err := svc.Join("Bertie", nil)
	require.NoError(t, err)

	send(t, conn, MessageTypeStartHand, nil)

	// wait for the deal to reach the client
	deadline := time.Now().Add(5 * time.Second)
	for {
		state := readUntil(t, conn, MessageTypeState)
		var snap game.Snapshot
		require.NoError(t, json.Unmarshal(state.Data, &snap))
		if snap.Phase == game.PhasePreflopBet {
			require.NotNil(t, snap.Viewer())
			assert.Len(t, snap.Viewer().Hand, game.HandSize)
			break
		}
		require.True(t, time.Now().Before(deadline), "never saw the deal")
	}
}

func TestRuleErrorsReachTheClient(t *testing.T) {
	ts, _ := startTestServer(t)
	conn := dialWS(t, ts)

	send(t, conn, MessageTypeJoin, JoinData{Name: "Ada"})
	readUntil(t, conn, MessageTypeJoined)

	// starting alone violates the two-player minimum
	send(t, conn, MessageTypeStartHand, nil)
	msg := readUntil(t, conn, MessageTypeError)
	var errData ErrorData
	require.NoError(t, json.Unmarshal(msg.Data, &errData))
	assert.Equal(t, game.ErrNotEnoughPlayers.Code, errData.Code)
}

func TestActionBeforeJoinRejected(t *testing.T) {
	ts, _ := startTestServer(t)
	conn := dialWS(t, ts)

	send(t, conn, MessageTypeAction, ActionData{Action: "check"})
	msg := readUntil(t, conn, MessageTypeError)
	var errData ErrorData
	require.NoError(t, json.Unmarshal(msg.Data, &errData))
	assert.Equal(t, "not_joined", errData.Code)
}
