package game

import (
	"testing"
)

func TestBoard(t *testing.T) {
	if len(Board) != 16 {
		t.Fatalf("board has %d tiles", len(Board))
	}
	for i, tile := range Board {
		if tile.ID != i {
			t.Errorf("tile %d has id %d", i, tile.ID)
		}
		if tile.Type == TileProperty {
			if tile.Price <= 0 || tile.MortgageValue <= 0 {
				t.Errorf("tile %d missing price data", i)
			}
			if tile.Rent[0] <= 0 {
				t.Errorf("tile %d missing base rent", i)
			}
		}
	}
}

func TestGroups(t *testing.T) {
	seen := map[int]bool{}
	for name, members := range Groups {
		for _, id := range members {
			tile := TileByID(id)
			if tile == nil || tile.Type != TileProperty {
				t.Errorf("%s member %d is not a property", name, id)
			}
			if seen[id] {
				t.Errorf("tile %d in two groups", id)
			}
			seen[id] = true
		}
	}
}

func TestTileByID(t *testing.T) {
	if TileByID(-1) != nil || TileByID(16) != nil {
		t.Errorf("off-board lookup should be nil")
	}
	if tile := TileByID(1); tile == nil || tile.Name != "中山路" {
		t.Errorf("bad tile 1")
	}
}

func TestGroupOf(t *testing.T) {
	g := GroupOf(13)
	if len(g) != 2 || g[0] != 13 || g[1] != 14 {
		t.Errorf("bad group for 13: %v", g)
	}
	if GroupOf(6) != nil {
		t.Errorf("jail has no group")
	}
}
