package service

import (
	"math"
	"math/rand/v2"

	"Conquest/internal/room/entity"
)

// Roller 产生 [1,100] 的战斗骰点。
type Roller interface {
	Roll() int
}

type RollerFunc func() int

func (f RollerFunc) Roll() int { return f() }

type randRoller struct{}

func (randRoller) Roll() int { return rand.IntN(100) + 1 }

func NewRandRoller() Roller { return randRoller{} }

type BattleResult string

const (
	AttackerWins BattleResult = "attacker_wins"
	DefenderWins BattleResult = "defender_wins"
)

var unitPower = map[entity.UnitKind]float64{
	entity.Soldiers: 1.0,
	entity.Archers:  1.2,
	entity.Cavalry:  1.5,
}

const (
	wallDefenseBonus   = 0.2
	winnerDamageFactor = 0.3
	loserDamageFactor  = 0.2
	attackerAttrition  = 0.1
	defenderAttrition  = 0.05
	attackerLossCap    = 10 // 获胜方每个兵种最多损失 count/10
	defenderLossCap    = 20
	lootPercent        = 10
)

// Combatant 是参战一方的只读输入。
type Combatant struct {
	Army      entity.Units
	Walls     int
	Resources entity.Bundle
}

func CombatantOf(p *entity.Player) Combatant {
	return Combatant{
		Army:      p.Army(),
		Walls:     p.Buildings(entity.Wall),
		Resources: p.Resources(),
	}
}

func Power(army entity.Units) float64 {
	total := 0.0
	for _, k := range entity.UnitKinds {
		total += float64(army[k]) * unitPower[k]
	}
	return total
}

// BattleReport 同时作为 battle_details 下发。
type BattleReport struct {
	Result         BattleResult  `json:"-"`
	AttackerPower  float64       `json:"attacker_power"`
	DefenderPower  float64       `json:"defender_power"`
	AttackerRoll   int           `json:"attacker_roll"`
	DefenderRoll   int           `json:"defender_roll"`
	AttackerTotal  float64       `json:"attacker_total"`
	DefenderTotal  float64       `json:"defender_total"`
	AttackerLosses entity.Units  `json:"attacker_losses"`
	DefenderLosses entity.Units  `json:"defender_losses"`
	Loot           entity.Bundle `json:"loot,omitempty"`
}

// Resolve 只做计算，不修改任何一方；平局判守方胜。
func Resolve(att, def Combatant, attRoll, defRoll int) BattleReport {
	attPower := Power(att.Army)
	defPower := Power(def.Army) * (1 + wallDefenseBonus*float64(def.Walls))
	attTotal := attPower + float64(attRoll)
	defTotal := defPower + float64(defRoll)

	r := BattleReport{
		AttackerPower: round1(attPower),
		DefenderPower: round1(defPower),
		AttackerRoll:  attRoll,
		DefenderRoll:  defRoll,
		AttackerTotal: round1(attTotal),
		DefenderTotal: round1(defTotal),
	}

	attUnits := att.Army.Total()
	defUnits := def.Army.Total()

	if attTotal > defTotal {
		ratio := (attTotal - defTotal) / attTotal
		r.Result = AttackerWins
		r.DefenderLosses = distributeLosses(def.Army, atLeastOne(float64(defUnits)*ratio*winnerDamageFactor), noCap)
		r.AttackerLosses = distributeLosses(att.Army, atLeastOne(float64(attUnits)*attackerAttrition), capDiv(attackerLossCap))
		r.Loot = make(entity.Bundle, len(entity.ResourceKinds))
		for _, k := range entity.ResourceKinds {
			r.Loot[k] = def.Resources[k] * lootPercent / 100
		}
		return r
	}

	ratio := 0.0
	if defTotal > 0 {
		ratio = (defTotal - attTotal) / defTotal
	}
	r.Result = DefenderWins
	r.AttackerLosses = distributeLosses(att.Army, atLeastOne(float64(attUnits)*ratio*loserDamageFactor), noCap)
	r.DefenderLosses = distributeLosses(def.Army, atLeastOne(float64(defUnits)*defenderAttrition), capDiv(defenderLossCap))
	return r
}

// ApplyBattle 把战报落到双方身上：扣兵、掠夺、加胜利点。
func ApplyBattle(attacker, defender *entity.Player, r BattleReport) {
	for k, n := range r.AttackerLosses {
		_ = attacker.RemoveUnits(k, n)
	}
	for k, n := range r.DefenderLosses {
		_ = defender.RemoveUnits(k, n)
	}
	if r.Result == AttackerWins {
		taken := make(entity.Bundle, len(r.Loot))
		for _, k := range entity.ResourceKinds {
			taken[k] = defender.TakeResource(k, r.Loot[k])
		}
		attacker.Credit(taken)
		attacker.AddVictoryPoints(1)
		return
	}
	defender.AddVictoryPoints(1)
}

func noCap(count int) int { return count }

func capDiv(d int) func(int) int {
	return func(count int) int { return count / d }
}

// distributeLosses 按固定兵种顺序扣减，每个兵种受 limit 限制，预算用完即停。
func distributeLosses(army entity.Units, budget int, limit func(count int) int) entity.Units {
	losses := entity.Units{}
	for _, k := range entity.UnitKinds {
		if budget <= 0 {
			break
		}
		count := army[k]
		if count <= 0 {
			continue
		}
		n := min(budget, limit(count))
		if n > 0 {
			losses[k] = n
			budget -= n
		}
	}
	return losses
}

func atLeastOne(x float64) int {
	return max(1, int(math.Floor(x)))
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
