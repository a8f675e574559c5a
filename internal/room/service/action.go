package service

import (
	"Conquest/internal/room/entity"
)

type ActionType string

const (
	ActionBuild    ActionType = "build"
	ActionTrain    ActionType = "train_army"
	ActionResearch ActionType = "research"
	ActionTrade    ActionType = "trade"
	ActionAttack   ActionType = "attack"
)

// Action 是 game_action.action 的解码结果，字段按 type 取用。
type Action struct {
	Type           ActionType     `json:"type"`
	BuildingType   string         `json:"building_type"`
	UnitType       string         `json:"unit_type"`
	Quantity       *int           `json:"quantity"`
	TechType       string         `json:"tech_type"`
	TargetPlayerID string         `json:"target_player_id"`
	TradeOffer     map[string]int `json:"trade_offer"`
	TradeRequest   map[string]int `json:"trade_request"`
}

type OutcomeKind uint8

const (
	OutcomeAction OutcomeKind = iota
	OutcomeBattle
	OutcomeTrade
)

// Outcome 描述一次成功的动作，供状态机组装广播。
type Outcome struct {
	Kind    OutcomeKind
	Target  entity.PlayerID
	Battle  BattleReport
	Offer   entity.Bundle
	Request entity.Bundle
}

// Apply 按 action.type 分发。所有扣减都先校验再修改，返回错误时房间状态保持不变。
func Apply(room *entity.Room, playerID entity.PlayerID, a Action, roller Roller) (Outcome, error) {
	p, ok := room.Player(playerID)
	if !ok {
		return Outcome{}, entity.ErrPlayerNotFound
	}
	switch a.Type {
	case ActionBuild:
		return Outcome{Kind: OutcomeAction}, build(p, entity.BuildingKind(a.BuildingType))
	case ActionTrain:
		quantity := 1
		if a.Quantity != nil {
			quantity = *a.Quantity
		}
		return Outcome{Kind: OutcomeAction}, train(p, entity.UnitKind(a.UnitType), quantity)
	case ActionResearch:
		return Outcome{Kind: OutcomeAction}, research(p, entity.TechID(a.TechType))
	case ActionTrade:
		return trade(room, p, entity.PlayerID(a.TargetPlayerID), a.TradeOffer, a.TradeRequest)
	case ActionAttack:
		return attack(room, p, entity.PlayerID(a.TargetPlayerID), roller)
	default:
		return Outcome{}, ErrUnknownAction
	}
}

func build(p *entity.Player, kind entity.BuildingKind) error {
	cost, ok := BuildingCost(kind)
	if !ok {
		return ErrUnknownBuilding
	}
	if err := p.Debit(cost); err != nil {
		return err
	}
	p.Credit(buildingBonus[kind]())
	p.AddBuilding(kind)
	return nil
}

func train(p *entity.Player, kind entity.UnitKind, quantity int) error {
	if !kind.Valid() {
		return ErrUnknownUnit
	}
	if quantity < 1 || quantity > MaxTrainQuantity(kind) || !p.CanHoldUnits(kind, quantity) {
		return ErrInvalidQuantity
	}
	cost, _ := UnitCost(kind, quantity)
	if err := p.Debit(cost); err != nil {
		return err
	}
	p.AddUnits(kind, quantity)
	return nil
}

func research(p *entity.Player, tech entity.TechID) error {
	cost, ok := TechCost(tech)
	if !ok {
		return ErrUnknownTech
	}
	// 重复研究先于资源校验，不扣费
	if p.HasTech(tech) {
		return ErrTechResearched
	}
	if err := p.Debit(cost); err != nil {
		return err
	}
	p.AddTech(tech)
	p.AddVictoryPoints(researchVictoryPoints)
	return nil
}

func resolveTarget(room *entity.Room, self *entity.Player, target entity.PlayerID) (*entity.Player, error) {
	if target == "" {
		return nil, ErrTargetNotFound
	}
	if target == self.ID() {
		return nil, ErrSelfTarget
	}
	t, ok := room.Player(target)
	if !ok {
		return nil, ErrTargetNotFound
	}
	return t, nil
}

func toBundle(raw map[string]int) (entity.Bundle, error) {
	out := make(entity.Bundle, len(raw))
	for k, v := range raw {
		kind := entity.ResourceKind(k)
		if !kind.Valid() || v < 0 {
			return nil, ErrInvalidTrade
		}
		out[kind] += v
	}
	return out, nil
}

func trade(room *entity.Room, p *entity.Player, targetID entity.PlayerID, rawOffer, rawRequest map[string]int) (Outcome, error) {
	target, err := resolveTarget(room, p, targetID)
	if err != nil {
		return Outcome{}, err
	}
	offer, err := toBundle(rawOffer)
	if err != nil {
		return Outcome{}, err
	}
	request, err := toBundle(rawRequest)
	if err != nil {
		return Outcome{}, err
	}
	// 两边都校验通过才动资源
	if !p.CanAfford(offer) {
		return Outcome{}, ErrTradeOfferShort
	}
	if !target.CanAfford(request) {
		return Outcome{}, ErrTradeRequestShort
	}
	_ = p.Debit(offer)
	_ = target.Debit(request)
	target.Credit(offer)
	p.Credit(request)
	return Outcome{Kind: OutcomeTrade, Target: target.ID(), Offer: offer, Request: request}, nil
}

func attack(room *entity.Room, p *entity.Player, targetID entity.PlayerID, roller Roller) (Outcome, error) {
	defender, err := resolveTarget(room, p, targetID)
	if err != nil {
		return Outcome{}, err
	}
	if roller == nil {
		roller = NewRandRoller()
	}
	attRoll, defRoll := roller.Roll(), roller.Roll()
	report := Resolve(CombatantOf(p), CombatantOf(defender), attRoll, defRoll)
	ApplyBattle(p, defender, report)
	return Outcome{Kind: OutcomeBattle, Target: defender.ID(), Battle: report}, nil
}
