package game

// Allowed is the set of turn actions the local player may take right
// now, derived entirely from one snapshot. It is recomputed on every
// snapshot and never cached across them.
type Allowed struct {
	Roll    bool
	Buy     bool
	EndTurn bool

	// Locked means the turn controls are disabled as a whole: no
	// snapshot yet, someone else's turn, or the player is in debt.
	Locked bool
}

// AllowedActions derives the action gate for playerID. Precedence: no
// state, wrong turn, debt lock, then the server's own turn flags.
func AllowedActions(s *State, playerID string) Allowed {
	if s == nil {
		return Allowed{Locked: true}
	}
	if s.CurrentTurnPlayerID != playerID {
		return Allowed{Locked: true}
	}
	if s.PlayerInDebtID == playerID {
		// mortgaging stays available, but not through these controls
		return Allowed{Locked: true}
	}
	return Allowed{
		Roll:    !s.HasRolledDice,
		Buy:     s.CanBuyProperty,
		EndTurn: s.TurnCompleted,
	}
}

// Check returns the gate error for an action name, or nil if the action
// may be sent. Property actions are judged by the affordance helpers
// instead.
func (a Allowed) Check(action string) error {
	ok := false
	switch action {
	case "roll_dice":
		ok = a.Roll
	case "buy_property":
		ok = a.Buy
	case "end_turn":
		ok = a.EndTurn
	default:
		return ErrBadRequest
	}
	if a.Locked {
		return ErrNotYourTurn
	}
	if !ok {
		return ErrNotNow
	}
	return nil
}

// OwnsGroup reports whether playerID owns every tile in the group that
// contains tileID, judged by tile_states. Tiles outside any group are
// never a monopoly. Mortgage status of other members is irrelevant:
// improvements need full ownership, not full solvency.
func OwnsGroup(s *State, playerID string, tileID int) bool {
	if s == nil || s.TileStates == nil {
		return false
	}
	members := GroupOf(tileID)
	if members == nil {
		return false
	}
	for _, id := range members {
		ts, ok := s.TileState(id)
		if !ok || ts.OwnerID != playerID {
			return false
		}
	}
	return true
}

// CanImprove reports whether the upgrade action may be offered for a
// tile: full group ownership, target not mortgaged, level below max.
func CanImprove(s *State, playerID string, tileID int) bool {
	if !OwnsGroup(s, playerID, tileID) {
		return false
	}
	ts, _ := s.TileState(tileID)
	return !ts.Mortgaged && ts.Level < MaxLevel
}

// CanMortgage reports whether the mortgage action may be offered. This
// is the one action left to a player in debt.
func CanMortgage(s *State, playerID string, tileID int) bool {
	if s == nil {
		return false
	}
	ts, ok := s.TileState(tileID)
	if ok {
		return ts.OwnerID == playerID && !ts.Mortgaged
	}
	// older servers only report ownership on the player
	p, ok := s.PlayerByID(playerID)
	if !ok {
		return false
	}
	for _, id := range p.Properties {
		if id == tileID {
			return true
		}
	}
	return false
}

// CanRedeem reports whether the redeem action may be offered.
func CanRedeem(s *State, playerID string, tileID int) bool {
	if s == nil {
		return false
	}
	ts, ok := s.TileState(tileID)
	return ok && ts.OwnerID == playerID && ts.Mortgaged
}
