package service

import (
	"math"

	"Conquest/internal/room/entity"
)

var buildingCosts = map[entity.BuildingKind]entity.Bundle{
	entity.Barracks: {entity.Wood: 100, entity.Stone: 50, entity.Gold: 200},
	entity.Farm:     {entity.Wood: 50, entity.Gold: 100},
	entity.Mine:     {entity.Stone: 100, entity.Gold: 150},
	entity.Wall:     {entity.Stone: 200, entity.Wood: 100},
}

var unitCosts = map[entity.UnitKind]entity.Bundle{
	entity.Soldiers: {entity.Gold: 50, entity.Food: 20},
	entity.Archers:  {entity.Gold: 75, entity.Wood: 30, entity.Food: 15},
	entity.Cavalry:  {entity.Gold: 150, entity.Food: 50},
}

var techCosts = map[entity.TechID]entity.Bundle{
	entity.MilitaryTactics:      {entity.Gold: 300, entity.Food: 100},
	entity.AdvancedConstruction: {entity.Gold: 250, entity.Wood: 150, entity.Stone: 150},
	entity.TradeRoutes:          {entity.Gold: 200, entity.Wood: 100},
	entity.Fortification:        {entity.Gold: 400, entity.Stone: 200},
}

// buildingBonus 是建成时的一次性奖励，每种建筑一个纯函数，没有奖励的返回空。
var buildingBonus = map[entity.BuildingKind]func() entity.Bundle{
	entity.Barracks: func() entity.Bundle { return nil },
	entity.Farm:     func() entity.Bundle { return entity.Bundle{entity.Food: 100} },
	entity.Mine:     func() entity.Bundle { return entity.Bundle{entity.Gold: 50} },
	entity.Wall:     func() entity.Bundle { return nil },
}

const researchVictoryPoints = 2

func BuildingCost(k entity.BuildingKind) (entity.Bundle, bool) {
	c, ok := buildingCosts[k]
	return c.Clone(), ok
}

func UnitCost(k entity.UnitKind, quantity int) (entity.Bundle, bool) {
	c, ok := unitCosts[k]
	if !ok {
		return nil, false
	}
	return c.Scale(quantity), true
}

// MaxTrainQuantity 是单次训练的数量上限，保证总价不会溢出 int。
func MaxTrainQuantity(k entity.UnitKind) int {
	limit := math.MaxInt
	for _, v := range unitCosts[k] {
		if v > 0 && math.MaxInt/v < limit {
			limit = math.MaxInt / v
		}
	}
	return limit
}

func TechCost(t entity.TechID) (entity.Bundle, bool) {
	c, ok := techCosts[t]
	return c.Clone(), ok
}

// 每回合被动收入。
var baseIncome = entity.Bundle{entity.Gold: 50, entity.Wood: 25, entity.Stone: 25, entity.Food: 50}

const (
	mineGoldPerTurn      = 25
	farmFoodPerTurn      = 30
	tradeRoutesGoldBonus = 25
	militaryFoodBonus    = 10
)

func Income(p *entity.Player) entity.Bundle {
	in := baseIncome.Clone()
	in[entity.Gold] += mineGoldPerTurn * p.Buildings(entity.Mine)
	in[entity.Food] += farmFoodPerTurn * p.Buildings(entity.Farm)
	if p.HasTech(entity.TradeRoutes) {
		in[entity.Gold] += tradeRoutesGoldBonus
	}
	if p.HasTech(entity.MilitaryTactics) {
		in[entity.Food] += militaryFoodBonus
	}
	return in
}
