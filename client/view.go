package client

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tinwheel/tycoon/game"
)

const (
	RED     = "[31m"
	GREEN   = "[32m"
	YELLOW  = "[33m"
	BLUE    = "[34m"
	MAGENTA = "[35m"
	CYAN    = "[36m"
)

var playerColours = []string{RED, GREEN, YELLOW, BLUE}

const logTailLines = 10

// RenderBoard draws the 4x4 board with each tile's occupants and
// ownership marks. It renders something sensible for any snapshot,
// including none at all.
func RenderBoard(v View, localID string) string {
	var b strings.Builder

	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			tile := game.Board[row*4+col]
			b.WriteString(fmt.Sprintf("%-2d %s%s", tile.ID, tile.Name, tileMarks(v, tile.ID)))
			if col < 3 {
				b.WriteString("  |  ")
			}
		}
		b.WriteString("\n")
	}

	if current := currentTurnLabel(v); current != "" {
		b.WriteString("当前回合: " + current + "\n")
	}
	if v.LastDice > 0 {
		b.WriteString(fmt.Sprintf("骰子: %d\n", v.LastDice))
	}

	return b.String()
}

func tileMarks(v View, tileID int) string {
	if v.State == nil {
		return ""
	}
	var marks []string

	if ts, ok := v.State.TileState(tileID); ok && ts.OwnerID != "" {
		owner := ts.OwnerID
		if p, ok := v.State.PlayerByID(ts.OwnerID); ok {
			owner = firstRune(p.Name)
		}
		m := "(" + owner
		if ts.Mortgaged {
			m += " 抵押"
		}
		if ts.Level > 0 {
			m += fmt.Sprintf(" Lv.%d", ts.Level)
		}
		marks = append(marks, m+")")
	}

	for _, id := range sortedPlayerIDs(v.State) {
		p := v.State.Players[id]
		if p.Position == tileID {
			marks = append(marks, "●"+firstRune(p.Name))
		}
	}

	if len(marks) == 0 {
		return ""
	}
	return " " + strings.Join(marks, " ")
}

// RenderPlayers draws the player panel: money, position, jail flag and
// the owned-property list with the affordances that are legal right
// now.
func RenderPlayers(v View, localID string) string {
	if v.State == nil || len(v.State.Players) == 0 {
		return "还没有玩家\n"
	}

	var b strings.Builder
	for _, id := range sortedPlayerIDs(v.State) {
		p := v.State.Players[id]

		name := p.Name
		if id == localID {
			name += " (你)"
		}
		if id == v.State.CurrentTurnPlayerID {
			name += " «回合»"
		}
		if p.IsInJail {
			name += "（监狱中）"
		}
		b.WriteString(name + "\n")
		b.WriteString(fmt.Sprintf("  资金: $%d\n", p.Money))
		if tile := game.TileByID(p.Position); tile != nil {
			b.WriteString("  位置: " + tile.Name + "\n")
		}

		if len(p.Properties) == 0 {
			b.WriteString("  地产: 无\n")
			continue
		}
		b.WriteString("  地产:\n")
		for _, tileID := range p.Properties {
			tile := game.TileByID(tileID)
			if tile == nil {
				continue
			}
			line := "    " + tile.Name
			ts, _ := v.State.TileState(tileID)
			if ts.Mortgaged {
				line += " (已抵押)"
			}
			if ts.Level > 0 {
				line += fmt.Sprintf(" Lv.%d", ts.Level)
			}
			if id == localID {
				line += affordances(v, localID, tileID)
			}
			b.WriteString(line + "\n")
		}
	}

	if v.DebtLocked(localID) {
		b.WriteString("\n⚠ 资金不足！必须抵押地产来偿还债务，之后才能继续其他操作。\n")
	}

	return b.String()
}

// affordances lists which property commands would be accepted for a
// tile, the terminal stand-in for the buttons next to each holding.
func affordances(v View, localID string, tileID int) string {
	var can []string
	if game.CanMortgage(v.State, localID, tileID) {
		can = append(can, "mortgage")
	}
	if !v.DebtLocked(localID) {
		if game.CanRedeem(v.State, localID, tileID) {
			can = append(can, "redeem")
		}
		if game.CanImprove(v.State, localID, tileID) {
			can = append(can, "upgrade")
		}
	}
	if len(can) == 0 {
		return ""
	}
	return "  [" + strings.Join(can, " ") + "]"
}

// RenderLog shows the last few log lines, newest last.
func RenderLog(v View) string {
	if v.State == nil {
		return ""
	}
	var b strings.Builder
	for _, line := range v.State.LogTail(logTailLines) {
		b.WriteString(line + "\n")
	}
	return b.String()
}

// RenderNotice formats a card overlay.
func RenderNotice(card game.Card) string {
	return fmt.Sprintf("╔═ %s ═╗ %s", card.Kind, card.Text)
}

func currentTurnLabel(v View) string {
	if v.State == nil {
		return ""
	}
	if p, ok := v.State.PlayerByID(v.State.CurrentTurnPlayerID); ok {
		return p.Name
	}
	return "等待中..."
}

// sortedPlayerIDs gives a stable iteration order; the snapshot's map
// order means nothing.
func sortedPlayerIDs(s *game.State) []string {
	if s == nil {
		return nil
	}
	ids := make([]string, 0, len(s.Players))
	for id := range s.Players {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func firstRune(s string) string {
	for _, r := range s {
		return string(r)
	}
	return "?"
}

func colourFor(s *game.State, playerID string) string {
	for i, id := range sortedPlayerIDs(s) {
		if id == playerID {
			return playerColours[i%len(playerColours)]
		}
	}
	return "[0m"
}
