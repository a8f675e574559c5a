package entity

type ResourceKind string

const (
	Gold  ResourceKind = "gold"
	Wood  ResourceKind = "wood"
	Stone ResourceKind = "stone"
	Food  ResourceKind = "food"
)

// ResourceKinds 固定顺序，掠夺、收入、序列化都按这个顺序遍历。
var ResourceKinds = []ResourceKind{Gold, Wood, Stone, Food}

func (k ResourceKind) Valid() bool {
	switch k {
	case Gold, Wood, Stone, Food:
		return true
	}
	return false
}

type UnitKind string

const (
	Soldiers UnitKind = "soldiers"
	Archers  UnitKind = "archers"
	Cavalry  UnitKind = "cavalry"
)

// UnitKinds 是战损分配的固定顺序。
var UnitKinds = []UnitKind{Soldiers, Archers, Cavalry}

func (k UnitKind) Valid() bool {
	switch k {
	case Soldiers, Archers, Cavalry:
		return true
	}
	return false
}

type BuildingKind string

const (
	Barracks BuildingKind = "barracks"
	Farm     BuildingKind = "farm"
	Mine     BuildingKind = "mine"
	Wall     BuildingKind = "wall"
)

var BuildingKinds = []BuildingKind{Barracks, Farm, Mine, Wall}

func (k BuildingKind) Valid() bool {
	switch k {
	case Barracks, Farm, Mine, Wall:
		return true
	}
	return false
}

type TechID string

const (
	MilitaryTactics      TechID = "military_tactics"
	AdvancedConstruction TechID = "advanced_construction"
	TradeRoutes          TechID = "trade_routes"
	Fortification        TechID = "fortification"
)

func (t TechID) Valid() bool {
	switch t {
	case MilitaryTactics, AdvancedConstruction, TradeRoutes, Fortification:
		return true
	}
	return false
}

type GameState string

const (
	StateWaiting  GameState = "waiting"
	StatePlaying  GameState = "playing"
	StateFinished GameState = "finished"
)

// Bundle 是一组资源数量，用于花费、收入、交易和掠夺。
type Bundle map[ResourceKind]int

// Scale 返回按数量放大后的新 Bundle。
func (b Bundle) Scale(n int) Bundle {
	out := make(Bundle, len(b))
	for k, v := range b {
		out[k] = v * n
	}
	return out
}

func (b Bundle) Clone() Bundle {
	if b == nil {
		return nil
	}
	out := make(Bundle, len(b))
	for k, v := range b {
		out[k] = v
	}
	return out
}

// Units 是各兵种数量。
type Units map[UnitKind]int

func (u Units) Total() int {
	n := 0
	for _, k := range UnitKinds {
		n += u[k]
	}
	return n
}

func (u Units) Clone() Units {
	out := make(Units, len(u))
	for k, v := range u {
		out[k] = v
	}
	return out
}
