package game

// TileType says what happens when a player lands on a tile.
type TileType string

const (
	TileStart    TileType = "start"
	TileProperty TileType = "property"
	TileChance   TileType = "chance"
	TileDestiny  TileType = "destiny"
	TileJail     TileType = "jail"
	TileParking  TileType = "parking"
	TileGoToJail TileType = "go_to_jail"
	TileTax      TileType = "tax"
)

// MaxLevel is the highest improvement tier a property can reach.
const MaxLevel = 2

// Tile is one square of the board. The table is fixed at compile time
// and identical to the server's copy; the server never sends it.
type Tile struct {
	ID            int      `json:"id"`
	Name          string   `json:"name"`
	Type          TileType `json:"type"`
	Price         int      `json:"price"`
	Rent          [3]int   `json:"rent"`
	MortgageValue int      `json:"mortgage_value"`
	UpgradeCost   int      `json:"upgrade_cost"`
}

// Board is the 16-tile 4x4 map. Rent tiers are the base rent doubled
// per improvement level, mortgage value is half the price, upgrades
// cost half the price.
var Board = []Tile{
	{ID: 0, Name: "起点", Type: TileStart},
	{ID: 1, Name: "中山路", Type: TileProperty, Price: 1000, Rent: [3]int{100, 200, 300}, MortgageValue: 500, UpgradeCost: 500},
	{ID: 2, Name: "建设路", Type: TileProperty, Price: 1200, Rent: [3]int{120, 240, 360}, MortgageValue: 600, UpgradeCost: 600},
	{ID: 3, Name: "机会", Type: TileChance},
	{ID: 4, Name: "解放路", Type: TileProperty, Price: 1500, Rent: [3]int{150, 300, 450}, MortgageValue: 750, UpgradeCost: 750},
	{ID: 5, Name: "人民路", Type: TileProperty, Price: 1800, Rent: [3]int{180, 360, 540}, MortgageValue: 900, UpgradeCost: 900},
	{ID: 6, Name: "监狱", Type: TileJail},
	{ID: 7, Name: "和平路", Type: TileProperty, Price: 2000, Rent: [3]int{200, 400, 600}, MortgageValue: 1000, UpgradeCost: 1000},
	{ID: 8, Name: "胜利路", Type: TileProperty, Price: 2200, Rent: [3]int{220, 440, 660}, MortgageValue: 1100, UpgradeCost: 1100},
	{ID: 9, Name: "命运", Type: TileDestiny},
	{ID: 10, Name: "光明路", Type: TileProperty, Price: 2500, Rent: [3]int{250, 500, 750}, MortgageValue: 1250, UpgradeCost: 1250},
	{ID: 11, Name: "幸福路", Type: TileProperty, Price: 2800, Rent: [3]int{280, 560, 840}, MortgageValue: 1400, UpgradeCost: 1400},
	{ID: 12, Name: "停车场", Type: TileParking},
	{ID: 13, Name: "繁华街", Type: TileProperty, Price: 3000, Rent: [3]int{300, 600, 900}, MortgageValue: 1500, UpgradeCost: 1500},
	{ID: 14, Name: "商业区", Type: TileProperty, Price: 3500, Rent: [3]int{350, 700, 1050}, MortgageValue: 1750, UpgradeCost: 1750},
	{ID: 15, Name: "税收", Type: TileTax},
}

// Groups are the monopoly colour groups, mirroring the server. A tile
// can be improved only while its whole group has one owner.
var Groups = map[string][]int{
	"group1": {1, 2},
	"group2": {4, 5},
	"group3": {7, 8},
	"group4": {10, 11},
	"group5": {13, 14},
}

// TileByID returns the static tile, or nil for an id off the board.
func TileByID(id int) *Tile {
	if id < 0 || id >= len(Board) {
		return nil
	}
	return &Board[id]
}

// GroupOf returns the member ids of the group containing tileID, or nil
// if the tile is in no group.
func GroupOf(tileID int) []int {
	for _, members := range Groups {
		for _, id := range members {
			if id == tileID {
				return members
			}
		}
	}
	return nil
}
