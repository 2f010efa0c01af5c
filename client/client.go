package client

import (
	"context"
	"fmt"
	"io/ioutil"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"nhooyr.io/websocket"

	"github.com/tinwheel/tycoon/comms"
	"github.com/tinwheel/tycoon/game"
)

// retryDelay is how long after a drop the next dial is scheduled. One
// attempt per drop, no backoff, forever: fast recovery, noisy under a
// long outage.
const retryDelay = 3 * time.Second

const writeTimeout = 10 * time.Second

// Client keeps one channel to the game server alive, holds the latest
// snapshot, and derives everything the UI shows. All of its state is
// owned by the single Run loop; other goroutines talk to it through
// coreCh and read results from the Box.
type Client struct {
	server   string
	roomID   string
	playerID string
	name     string

	retryDelay time.Duration

	coreCh chan interface{}
	box    *Box

	updateCh chan string
	updateMu sync.Mutex
	updates  []string

	log zerolog.Logger

	// loop-owned, never touched outside Run
	conn         *websocket.Conn
	state        *game.State
	status       Status
	notices      noticeFilter
	lastDice     int
	retryPending bool
}

func NewClient(server, roomID, playerID, name string) *Client {
	return &Client{
		server:     server,
		roomID:     roomID,
		playerID:   playerID,
		name:       name,
		retryDelay: retryDelay,
		coreCh:     make(chan interface{}, 100),
		box:        NewBox(),
		updateCh:   make(chan string),
		log:        log.With().Str("room", roomID).Str("player", playerID).Logger(),
	}
}

// Box exposes the view cell for the UI.
func (c *Client) Box() *Box { return c.box }

// internal events for the core loop

type connOpened struct {
	conn *websocket.Conn
}

type connClosed struct {
	err error
}

type inboundMsg struct {
	msg comms.Message
}

type sendReq struct {
	req comms.Request
	rep chan error
}

type retryTick struct{}

// Run is the client's main loop. Channel opens and closes, inbound
// messages, user requests and retry timers are all handled here one at
// a time, so the snapshot reference has a single writer.
func (c *Client) Run(ctx context.Context) error {
	c.setStatus(StatusConnecting)
	go c.dial(ctx)

	for {
		select {
		case <-ctx.Done():
			if c.conn != nil {
				c.conn.Close(websocket.StatusNormalClosure, "bye")
			}
			return ctx.Err()
		case ev := <-c.coreCh:
			switch m := ev.(type) {
			case connOpened:
				c.onOpen(ctx, m.conn)
			case connClosed:
				c.onClose(ctx, m.err)
			case inboundMsg:
				c.onMessage(m.msg)
			case sendReq:
				m.rep <- c.send(ctx, m.req)
			case retryTick:
				c.retryPending = false
				c.setStatus(StatusConnecting)
				go c.dial(ctx)
			}
		}
	}
}

// dial opens the channel and pumps inbound frames into the loop. It
// runs outside the loop; everything it learns comes back as events.
func (c *Client) dial(ctx context.Context) {
	url := fmt.Sprintf("ws://%s/ws/%s/%s", c.server, c.roomID, c.playerID)

	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		c.log.Warn().Err(err).Msg("dial failed")
		c.coreCh <- connClosed{err}
		return
	}
	// snapshots are a few KB already with four players
	conn.SetReadLimit(1 << 20)

	c.coreCh <- connOpened{conn}

	for {
		typ, r, err := conn.Reader(ctx)
		if err != nil {
			c.coreCh <- connClosed{err}
			return
		}
		if typ != websocket.MessageText {
			c.log.Warn().Msgf("can't deal with a %v", typ)
			continue
		}
		raw, err := ioutil.ReadAll(r)
		if err != nil {
			c.coreCh <- connClosed{err}
			return
		}
		msg, err := comms.Decode(raw)
		if err != nil {
			c.log.Warn().Err(err).Msg("bad frame, skipping")
			continue
		}
		c.coreCh <- inboundMsg{msg}
	}
}

func (c *Client) onOpen(ctx context.Context, conn *websocket.Conn) {
	c.conn = conn
	c.setStatus(StatusConnected)
	c.log.Info().Msg("connected")

	// the server learns the display name from join_game
	if err := c.send(ctx, comms.Join(c.name)); err != nil {
		c.log.Error().Err(err).Msg("join failed")
	}
}

func (c *Client) onClose(ctx context.Context, err error) {
	if c.conn != nil {
		c.conn.Close(websocket.StatusNormalClosure, "")
		c.conn = nil
	}
	c.setStatus(StatusDisconnected)

	// one retry per drop; the next one is scheduled only after that
	// attempt's own close event
	if c.retryPending || c.roomID == "" || c.playerID == "" {
		return
	}
	c.retryPending = true
	c.log.Info().Err(err).Msgf("disconnected, retrying in %v", c.retryDelay)
	go func() {
		select {
		case <-time.After(c.retryDelay):
			c.coreCh <- retryTick{}
		case <-ctx.Done():
		}
	}()
}

func (c *Client) onMessage(m comms.Message) {
	switch m.Type {
	case comms.TypeConnection:
		if m.Connection != nil {
			c.pushUpdate(m.Connection.Message)
		}
	case comms.TypeGameState:
		c.applySnapshot(m.State)
	case comms.TypeActionResult:
		c.onActionResult(m.ActionResult)
	case comms.TypePlayerDisconnect:
		if m.Disconnect != nil {
			c.pushUpdate(m.Disconnect.Message)
		}
	default:
		c.log.Info().Msgf("unknown message type: %s", m.Type)
	}
}

// applySnapshot is the whole of state synchronization: replace the
// reference, scan the log tail against the previous shown key, then
// publish the re-derived view.
func (c *Client) applySnapshot(s *game.State) {
	if s == nil {
		c.log.Warn().Msg("empty snapshot")
		return
	}
	c.state = s

	var notice *game.Card
	if card, ok := c.notices.scan(s.LogTail(tailWindow)); ok {
		notice = &card
	}

	c.publish(notice)
}

func (c *Client) onActionResult(r *comms.ActionResult) {
	if r == nil {
		return
	}
	if !r.Success {
		msg := r.Message
		if msg == "" {
			msg = "操作失败"
		}
		c.pushUpdate("✗ " + msg)
		return
	}
	if r.DiceRoll != 0 {
		c.lastDice = r.DiceRoll
		c.publish(nil)
	}
	if r.Message != "" {
		c.pushUpdate(r.Message)
	}
}

// send transmits one request if the channel is open. A closed channel
// is a local error and the request is dropped, not queued.
func (c *Client) send(ctx context.Context, req comms.Request) error {
	if c.conn == nil {
		return game.ErrNotConnected
	}
	raw, err := comms.Encode(req)
	if err != nil {
		return err
	}
	wctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	if err := c.conn.Write(wctx, websocket.MessageText, raw); err != nil {
		return fmt.Errorf("send failed: %w", err)
	}
	return nil
}

func (c *Client) setStatus(s Status) {
	c.status = s
	c.publish(nil)
}

func (c *Client) publish(notice *game.Card) {
	c.box.Put(View{
		Status:   c.status,
		State:    c.state,
		Allowed:  game.AllowedActions(c.state, c.playerID),
		Notice:   notice,
		LastDice: c.lastDice,
	})
}

// pushUpdate hands a one-shot line to the UI if it is listening, and
// otherwise keeps it for the next prompt.
func (c *Client) pushUpdate(text string) {
	if text == "" {
		return
	}
	select {
	case c.updateCh <- text:
		// ui is following
	default:
		c.updateMu.Lock()
		c.updates = append(c.updates, text)
		c.updateMu.Unlock()
	}
}

// drainUpdates takes the backlog of one-shot lines.
func (c *Client) drainUpdates() []string {
	c.updateMu.Lock()
	defer c.updateMu.Unlock()
	updates := c.updates
	c.updates = nil
	return updates
}

// Updates is the live feed, read by the UI's follow mode.
func (c *Client) Updates() <-chan string { return c.updateCh }

// Do gates a user action against the latest view and sends it. The
// error covers local legality and transmission only; whether the server
// accepts is reported later through an action_result.
func (c *Client) Do(action string, tileID *int) error {
	v, _ := c.box.Get()

	switch action {
	case comms.ActionRollDice, comms.ActionBuyProperty, comms.ActionEndTurn:
		if v.State == nil {
			return game.ErrNoState
		}
		if v.Mine(c.playerID) && v.DebtLocked(c.playerID) {
			return game.ErrInDebt
		}
		if err := v.Allowed.Check(action); err != nil {
			return err
		}
		return c.request(comms.Turn(action))
	case comms.ActionMortgageProperty, comms.ActionRedeemProperty, comms.ActionUpgradeProperty:
		if tileID == nil {
			return game.ErrBadRequest
		}
		if err := checkProperty(v, c.playerID, action, *tileID); err != nil {
			return err
		}
		return c.request(comms.Property(action, *tileID))
	default:
		return game.ErrBadRequest
	}
}

// checkProperty is the client-side legality check for the property
// actions. In debt mode only mortgaging is allowed.
func checkProperty(v View, playerID, action string, tileID int) error {
	if v.State == nil {
		return game.ErrNoState
	}
	if v.DebtLocked(playerID) && action != comms.ActionMortgageProperty {
		return game.ErrInDebt
	}
	ok := false
	switch action {
	case comms.ActionMortgageProperty:
		ok = game.CanMortgage(v.State, playerID, tileID)
	case comms.ActionRedeemProperty:
		ok = game.CanRedeem(v.State, playerID, tileID)
	case comms.ActionUpgradeProperty:
		ok = game.CanImprove(v.State, playerID, tileID)
	}
	if !ok {
		return game.ErrNotNow
	}
	return nil
}

// request hands a frame to the core loop and waits for the local send
// result.
func (c *Client) request(req comms.Request) error {
	rep := make(chan error, 1)
	c.coreCh <- sendReq{req, rep}
	return <-rep
}
