package client

import (
	"github.com/tinwheel/tycoon/game"
)

// Status is the connection state shown to the player.
type Status string

const (
	StatusConnecting   Status = "connecting"
	StatusConnected    Status = "connected"
	StatusDisconnected Status = "disconnected"
)

// View is everything the UI needs to draw, derived from exactly one
// snapshot plus client-local state. It is published whole into the Box
// after every event, never mutated afterwards.
type View struct {
	Status  Status
	State   *game.State
	Allowed game.Allowed

	// Notice is the card overlay to show, nil once it has been
	// surfaced.
	Notice *game.Card

	// LastDice is the most recent dice_roll from an action_result, 0
	// before the first roll.
	LastDice int
}

// Mine reports whether it is the local player's turn in this view.
func (v View) Mine(playerID string) bool {
	return v.State != nil && v.State.CurrentTurnPlayerID == playerID
}

// DebtLocked reports whether the local player is in debt mode.
func (v View) DebtLocked(playerID string) bool {
	return v.State != nil && v.State.PlayerInDebtID != "" && v.State.PlayerInDebtID == playerID
}
