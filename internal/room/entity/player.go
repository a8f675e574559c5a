package entity

import "math"

type PlayerID string

var (
	InitialResources = Bundle{Gold: 1000, Wood: 500, Stone: 500, Food: 1000}
	InitialArmy      = Units{Soldiers: 10, Archers: 5, Cavalry: 3}
)

// Player 是房间内一名玩家的全部经济与军事状态。
// 所有数量不为负：扣减类方法先校验，不足时返回错误且不做任何修改。
type Player struct {
	id            PlayerID
	name          string
	resources     Bundle
	army          Units
	buildings     map[BuildingKind]int
	technologies  []TechID
	victoryPoints int
	ready         bool
}

func NewPlayer(id PlayerID, name string) *Player {
	return &Player{
		id:        id,
		name:      name,
		resources: InitialResources.Clone(),
		army:      InitialArmy.Clone(),
		buildings: make(map[BuildingKind]int),
	}
}

func (p *Player) ID() PlayerID {
	return p.id
}

func (p *Player) Name() string {
	return p.name
}

func (p *Player) Resource(k ResourceKind) int {
	return p.resources[k]
}

func (p *Player) Resources() Bundle {
	return p.resources.Clone()
}

// CanAfford 对负数花费一律返回 false。
func (p *Player) CanAfford(cost Bundle) bool {
	for k, v := range cost {
		if v < 0 || p.resources[k] < v {
			return false
		}
	}
	return true
}

// Debit 整笔扣减；任一资源不足则整体拒绝。
func (p *Player) Debit(cost Bundle) error {
	if !p.CanAfford(cost) {
		return ErrInsufficientResources
	}
	for k, v := range cost {
		if v > 0 {
			p.resources[k] -= v
		}
	}
	return nil
}

func (p *Player) Credit(gain Bundle) {
	for k, v := range gain {
		if v > 0 {
			p.resources[k] += v
		}
	}
}

// TakeResource 最多扣 amount，余额不会低于 0，返回实际扣掉的数量。
func (p *Player) TakeResource(k ResourceKind, amount int) int {
	if amount <= 0 {
		return 0
	}
	have := p.resources[k]
	if amount > have {
		amount = have
	}
	p.resources[k] = have - amount
	return amount
}

func (p *Player) Units(k UnitKind) int {
	return p.army[k]
}

func (p *Player) Army() Units {
	return p.army.Clone()
}

func (p *Player) ArmyTotal() int {
	return p.army.Total()
}

func (p *Player) CanHoldUnits(k UnitKind, n int) bool {
	return n >= 0 && p.army[k] <= math.MaxInt-n
}

// AddUnits 在溢出时封顶为 math.MaxInt。
func (p *Player) AddUnits(k UnitKind, n int) {
	if n <= 0 {
		return
	}
	if !p.CanHoldUnits(k, n) {
		p.army[k] = math.MaxInt
		return
	}
	p.army[k] += n
}

func (p *Player) RemoveUnits(k UnitKind, n int) error {
	if n <= 0 {
		return nil
	}
	if p.army[k] < n {
		return ErrInsufficientUnits
	}
	p.army[k] -= n
	return nil
}

func (p *Player) Buildings(k BuildingKind) int {
	return p.buildings[k]
}

func (p *Player) AddBuilding(k BuildingKind) {
	p.buildings[k]++
}

func (p *Player) HasTech(t TechID) bool {
	for _, have := range p.technologies {
		if have == t {
			return true
		}
	}
	return false
}

// AddTech 返回 false 表示已研究过。
func (p *Player) AddTech(t TechID) bool {
	if p.HasTech(t) {
		return false
	}
	p.technologies = append(p.technologies, t)
	return true
}

func (p *Player) Technologies() []TechID {
	out := make([]TechID, len(p.technologies))
	copy(out, p.technologies)
	return out
}

func (p *Player) VictoryPoints() int {
	return p.victoryPoints
}

func (p *Player) AddVictoryPoints(n int) {
	if n > 0 {
		p.victoryPoints += n
	}
}

func (p *Player) Ready() bool {
	return p.ready
}

func (p *Player) SetReady(ready bool) {
	p.ready = ready
}
