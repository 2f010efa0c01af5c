package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"nhooyr.io/websocket"

	"github.com/tinwheel/tycoon/comms"
	"github.com/tinwheel/tycoon/game"
)

// fakeServer accepts game channels and records what the client sends.
type fakeServer struct {
	t        *testing.T
	accepted chan *websocket.Conn
	requests chan comms.Request
}

func newFakeServer(t *testing.T) (*fakeServer, *httptest.Server) {
	t.Helper()
	fs := &fakeServer{
		t:        t,
		accepted: make(chan *websocket.Conn, 4),
		requests: make(chan comms.Request, 16),
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			return
		}
		fs.accepted <- conn
		go fs.readLoop(conn)
	}))
	t.Cleanup(srv.Close)
	return fs, srv
}

func (fs *fakeServer) readLoop(conn *websocket.Conn) {
	for {
		_, raw, err := conn.Read(context.Background())
		if err != nil {
			return
		}
		req := comms.Request{}
		if err := json.Unmarshal(raw, &req); err != nil {
			continue
		}
		fs.requests <- req
	}
}

func (fs *fakeServer) push(conn *websocket.Conn, v interface{}) {
	raw, err := json.Marshal(v)
	require.NoError(fs.t, err)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(fs.t, conn.Write(ctx, websocket.MessageText, raw))
}

func startClient(t *testing.T, srv *httptest.Server) *Client {
	t.Helper()
	addr := strings.TrimPrefix(srv.URL, "http://")
	c := NewClient(addr, "r1", "p1", "甲")
	c.retryDelay = 50 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	go c.Run(ctx)
	t.Cleanup(cancel)
	return c
}

func recvConn(t *testing.T, fs *fakeServer) *websocket.Conn {
	t.Helper()
	select {
	case conn := <-fs.accepted:
		return conn
	case <-time.After(2 * time.Second):
		t.Fatal("no connection accepted")
		return nil
	}
}

func recvRequest(t *testing.T, fs *fakeServer) comms.Request {
	t.Helper()
	select {
	case req := <-fs.requests:
		return req
	case <-time.After(2 * time.Second):
		t.Fatal("no request received")
		return comms.Request{}
	}
}

func waitView(t *testing.T, c *Client, cond func(View) bool) View {
	t.Helper()
	v, gen := c.Box().Get()
	deadline := time.Now().Add(2 * time.Second)
	for !cond(v) {
		if time.Now().After(deadline) {
			t.Fatalf("view never matched, last: %+v", v)
		}
		done := make(chan struct{})
		go func() {
			v, gen = c.Box().Wait(gen)
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(time.Until(deadline)):
			t.Fatalf("view never matched, last: %+v", v)
		}
	}
	return v
}

func snapshotFrame(s *game.State) map[string]interface{} {
	return map[string]interface{}{"type": "game_state", "data": s}
}

func TestClient_joinOnOpen(t *testing.T) {
	fs, srv := newFakeServer(t)
	c := startClient(t, srv)

	recvConn(t, fs)

	req := recvRequest(t, fs)
	require.Equal(t, comms.ActionJoinGame, req.Action)
	require.Equal(t, "甲", req.PlayerName)

	waitView(t, c, func(v View) bool { return v.Status == StatusConnected })
}

func TestClient_snapshotReplacesState(t *testing.T) {
	fs, srv := newFakeServer(t)
	c := startClient(t, srv)
	conn := recvConn(t, fs)
	recvRequest(t, fs) // join

	fs.push(conn, snapshotFrame(&game.State{
		Players:             map[string]game.Player{"p1": {ID: "p1", Name: "甲"}},
		CurrentTurnPlayerID: "p1",
		GameLog:             []string{"玩家 甲 加入了游戏"},
	}))

	v := waitView(t, c, func(v View) bool { return v.State != nil })
	require.True(t, v.Allowed.Roll)
	require.False(t, v.Allowed.EndTurn)

	// a second snapshot supersedes the first completely
	fs.push(conn, snapshotFrame(&game.State{
		Players:             map[string]game.Player{"p1": {ID: "p1", Name: "甲"}},
		CurrentTurnPlayerID: "p1",
		HasRolledDice:       true,
		TurnCompleted:       true,
	}))

	v = waitView(t, c, func(v View) bool { return v.State != nil && v.State.TurnCompleted })
	require.False(t, v.Allowed.Roll)
	require.True(t, v.Allowed.EndTurn)
	require.Empty(t, v.State.GameLog)
}

func TestClient_noticeSurfacedOnce(t *testing.T) {
	fs, srv := newFakeServer(t)
	c := startClient(t, srv)
	conn := recvConn(t, fs)
	recvRequest(t, fs)

	s := &game.State{
		Players:             map[string]game.Player{"p1": {ID: "p1", Name: "甲"}},
		CurrentTurnPlayerID: "p1",
		GameLog:             []string{"甲 抽到卡片：前进三格"},
	}

	fs.push(conn, snapshotFrame(s))
	v := waitView(t, c, func(v View) bool { return v.State != nil })
	require.NotNil(t, v.Notice)
	require.Equal(t, game.CardChance, v.Notice.Kind)
	require.Equal(t, "前进三格", v.Notice.Text)

	// identical snapshot again: same derived state, no new notice
	fs.push(conn, snapshotFrame(s))
	v = waitView(t, c, func(v View) bool { return v.Notice == nil && v.State != nil })
	require.True(t, v.Allowed.Roll)
}

func TestClient_sendWhileDisconnected(t *testing.T) {
	fs, srv := newFakeServer(t)

	addr := strings.TrimPrefix(srv.URL, "http://")
	c := NewClient(addr, "r1", "p1", "甲")
	c.retryDelay = time.Hour
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go c.Run(ctx)

	conn := recvConn(t, fs)
	recvRequest(t, fs)

	// state says rolling is fine; the dead channel is the only problem
	fs.push(conn, snapshotFrame(&game.State{
		Players:             map[string]game.Player{"p1": {ID: "p1"}},
		CurrentTurnPlayerID: "p1",
	}))
	waitView(t, c, func(v View) bool { return v.State != nil })

	conn.Close(websocket.StatusGoingAway, "bye")
	waitView(t, c, func(v View) bool { return v.Status == StatusDisconnected })

	// dropped locally, not queued
	err := c.Do(comms.ActionRollDice, nil)
	require.Equal(t, game.ErrNotConnected, err)

	// and without any snapshot at all, the gate reports that first
	c2 := NewClient("localhost:1", "r1", "p1", "甲")
	c2.retryDelay = time.Hour
	go c2.Run(ctx)
	require.Equal(t, game.ErrNoState, c2.Do(comms.ActionRollDice, nil))
}

func TestClient_reconnects(t *testing.T) {
	fs, srv := newFakeServer(t)
	c := startClient(t, srv)

	conn := recvConn(t, fs)
	recvRequest(t, fs)

	conn.Close(websocket.StatusGoingAway, "bye")
	waitView(t, c, func(v View) bool { return v.Status == StatusDisconnected })

	// one retry after the fixed delay, then joined again
	recvConn(t, fs)
	req := recvRequest(t, fs)
	require.Equal(t, comms.ActionJoinGame, req.Action)
	waitView(t, c, func(v View) bool { return v.Status == StatusConnected })
}

func TestClient_actionGateBlocksWrongTurn(t *testing.T) {
	fs, srv := newFakeServer(t)
	c := startClient(t, srv)
	conn := recvConn(t, fs)
	recvRequest(t, fs)

	fs.push(conn, snapshotFrame(&game.State{
		Players: map[string]game.Player{
			"p1": {ID: "p1"}, "p2": {ID: "p2"},
		},
		CurrentTurnPlayerID: "p2",
	}))
	waitView(t, c, func(v View) bool { return v.State != nil })

	err := c.Do(comms.ActionRollDice, nil)
	require.Equal(t, game.ErrNotYourTurn, err)

	// nothing was sent
	select {
	case req := <-fs.requests:
		t.Fatalf("unexpected request: %+v", req)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestClient_debtAllowsOnlyMortgage(t *testing.T) {
	fs, srv := newFakeServer(t)
	c := startClient(t, srv)
	conn := recvConn(t, fs)
	recvRequest(t, fs)

	fs.push(conn, snapshotFrame(&game.State{
		Players: map[string]game.Player{
			"p1": {ID: "p1", Money: -500, Properties: []int{1}},
		},
		TileStates:          map[string]game.TileState{"1": {OwnerID: "p1"}},
		CurrentTurnPlayerID: "p1",
		PlayerInDebtID:      "p1",
	}))
	waitView(t, c, func(v View) bool { return v.State != nil })

	require.Equal(t, game.ErrInDebt, c.Do(comms.ActionRollDice, nil))

	one := 1
	require.Equal(t, game.ErrInDebt, c.Do(comms.ActionUpgradeProperty, &one))

	require.NoError(t, c.Do(comms.ActionMortgageProperty, &one))
	req := recvRequest(t, fs)
	require.Equal(t, comms.ActionMortgageProperty, req.Action)
	require.NotNil(t, req.PropertyID)
	require.Equal(t, 1, *req.PropertyID)
}

func TestClient_actionResultFeedsDice(t *testing.T) {
	fs, srv := newFakeServer(t)
	c := startClient(t, srv)
	conn := recvConn(t, fs)
	recvRequest(t, fs)

	fs.push(conn, map[string]interface{}{
		"type": "action_result", "success": true, "dice_roll": 5,
	})
	v := waitView(t, c, func(v View) bool { return v.LastDice != 0 })
	require.Equal(t, 5, v.LastDice)

	// unknown message types are ignored without dropping the channel
	fs.push(conn, map[string]interface{}{"type": "weather", "temp": 30})
	fs.push(conn, map[string]interface{}{
		"type": "action_result", "success": true, "dice_roll": 2,
	})
	v = waitView(t, c, func(v View) bool { return v.LastDice == 2 })
	require.Equal(t, StatusConnected, v.Status)
}
