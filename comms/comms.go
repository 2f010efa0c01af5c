// Package comms is the wire protocol between the client and the game
// server: JSON text frames, server messages tagged on a "type" field,
// client requests tagged on an "action" field.
package comms

import (
	"encoding/json"
	"fmt"

	"github.com/tinwheel/tycoon/game"
)

// Server message types.
const (
	TypeConnection       = "connection"
	TypeGameState        = "game_state"
	TypeActionResult     = "action_result"
	TypePlayerDisconnect = "player_disconnect"
)

// Client action names.
const (
	ActionJoinGame         = "join_game"
	ActionRollDice         = "roll_dice"
	ActionBuyProperty      = "buy_property"
	ActionEndTurn          = "end_turn"
	ActionMortgageProperty = "mortgage_property"
	ActionRedeemProperty   = "redeem_property"
	ActionUpgradeProperty  = "upgrade_property"
)

// Message is a decoded server frame. Exactly one of the payload fields
// is set, according to Type; unknown types keep only Type and Raw.
type Message struct {
	Type string
	Raw  json.RawMessage

	Connection   *Connection
	State        *game.State
	ActionResult *ActionResult
	Disconnect   *PlayerDisconnect
}

// Connection is the informational hello the server sends on accept.
type Connection struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// ActionResult is the server's direct reply to one request. Its fields
// ride at the top level of the frame.
type ActionResult struct {
	Type     string `json:"type"`
	Success  bool   `json:"success"`
	DiceRoll int    `json:"dice_roll"`
	Message  string `json:"message"`
}

// PlayerDisconnect announces another player dropping.
type PlayerDisconnect struct {
	Type     string `json:"type"`
	PlayerID string `json:"player_id"`
	Message  string `json:"message"`
}

type stateEnvelope struct {
	Type string      `json:"type"`
	Data *game.State `json:"data"`
}

// Decode parses one server frame. An unrecognised type is not an error:
// the caller logs and moves on.
func Decode(raw []byte) (Message, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return Message{}, fmt.Errorf("bad frame: %w", err)
	}

	m := Message{Type: head.Type, Raw: raw}

	switch head.Type {
	case TypeConnection:
		m.Connection = &Connection{}
		if err := json.Unmarshal(raw, m.Connection); err != nil {
			return Message{}, fmt.Errorf("bad connection message: %w", err)
		}
	case TypeGameState:
		env := stateEnvelope{}
		if err := json.Unmarshal(raw, &env); err != nil {
			return Message{}, fmt.Errorf("bad game state: %w", err)
		}
		m.State = env.Data
	case TypeActionResult:
		m.ActionResult = &ActionResult{}
		if err := json.Unmarshal(raw, m.ActionResult); err != nil {
			return Message{}, fmt.Errorf("bad action result: %w", err)
		}
	case TypePlayerDisconnect:
		m.Disconnect = &PlayerDisconnect{}
		if err := json.Unmarshal(raw, m.Disconnect); err != nil {
			return Message{}, fmt.Errorf("bad disconnect message: %w", err)
		}
	}

	return m, nil
}

// Request is one client action. Payload fields are omitted when empty,
// so a bare action encodes as {"action":"..."}.
type Request struct {
	Action     string `json:"action"`
	PlayerName string `json:"player_name,omitempty"`
	PropertyID *int   `json:"property_id,omitempty"`
}

// Join builds the join_game request sent right after the channel opens.
func Join(playerName string) Request {
	return Request{Action: ActionJoinGame, PlayerName: playerName}
}

// Turn builds one of the plain turn requests.
func Turn(action string) Request {
	return Request{Action: action}
}

// Property builds one of the property requests.
func Property(action string, tileID int) Request {
	return Request{Action: action, PropertyID: &tileID}
}

// Encode serialises a request frame.
func Encode(req Request) ([]byte, error) {
	return json.Marshal(req)
}
