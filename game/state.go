package game

import "strconv"

// TileState is the mutable, server-owned part of a property tile. It is
// authoritative for ownership, mortgage and level; a player's Properties
// list is authoritative only for the panel listing.
type TileState struct {
	OwnerID   string `json:"owner_id"`
	Mortgaged bool   `json:"mortgaged"`
	Level     int    `json:"level"`
}

// Player as the server reports it.
type Player struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Money      int    `json:"money"`
	Position   int    `json:"position"`
	IsInJail   bool   `json:"is_in_jail"`
	Properties []int  `json:"properties"`
}

// State is one full game snapshot. The server sends a complete copy on
// every change; the client replaces its reference wholesale and never
// mutates one in place.
type State struct {
	RoomID              string               `json:"room_id"`
	Players             map[string]Player    `json:"players"`
	TileStates          map[string]TileState `json:"tile_states"`
	CurrentTurnPlayerID string               `json:"current_turn_player_id"`
	GamePhase           string               `json:"game_phase"`
	HasRolledDice       bool                 `json:"has_rolled_dice"`
	CanBuyProperty      bool                 `json:"can_buy_property"`
	TurnCompleted       bool                 `json:"turn_completed"`
	PlayerInDebtID      string               `json:"player_in_debt_id"`
	GameLog             []string             `json:"game_log"`
}

// TileState looks up the runtime state for a tile id. The server keys
// tile_states by the decimal string of the id.
func (s *State) TileState(tileID int) (TileState, bool) {
	if s == nil || s.TileStates == nil {
		return TileState{}, false
	}
	ts, ok := s.TileStates[strconv.Itoa(tileID)]
	return ts, ok
}

// PlayerByID returns the player, or a zero player and false.
func (s *State) PlayerByID(id string) (Player, bool) {
	if s == nil || s.Players == nil {
		return Player{}, false
	}
	p, ok := s.Players[id]
	return p, ok
}

// LogTail returns up to the last n log entries.
func (s *State) LogTail(n int) []string {
	if s == nil || len(s.GameLog) <= n {
		if s == nil {
			return nil
		}
		return s.GameLog
	}
	return s.GameLog[len(s.GameLog)-n:]
}
