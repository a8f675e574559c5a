package entity

import "time"

type PlayerView struct {
	ID            PlayerID             `json:"id"`
	Name          string               `json:"name"`
	Resources     Bundle               `json:"resources"`
	Army          Units                `json:"army"`
	Territories   []string             `json:"territories"`
	Buildings     map[BuildingKind]int `json:"buildings"`
	Technologies  []TechID             `json:"technologies"`
	VictoryPoints int                  `json:"victory_points"`
	IsReady       bool                 `json:"is_ready"`
}

// RoomView 是下发给客户端的完整快照，和房间内部状态没有共享引用。
type RoomView struct {
	Code        RoomCode                `json:"code"`
	GameState   GameState               `json:"game_state"`
	Players     map[PlayerID]PlayerView `json:"players"`
	PlayerOrder []PlayerID              `json:"player_order"`
	CurrentTurn *PlayerID               `json:"current_turn"`
	TurnNumber  int                     `json:"turn_number"`
	Winner      *PlayerID               `json:"winner"`
	CreatedAt   string                  `json:"created_at"`
}

func (p *Player) View() PlayerView {
	// 只下发已建成的种类，未建过的不出现
	buildings := make(map[BuildingKind]int, len(p.buildings))
	for _, k := range BuildingKinds {
		if n := p.buildings[k]; n > 0 {
			buildings[k] = n
		}
	}
	return PlayerView{
		ID:            p.id,
		Name:          p.name,
		Resources:     p.resources.Clone(),
		Army:          p.army.Clone(),
		Territories:   []string{},
		Buildings:     buildings,
		Technologies:  p.Technologies(),
		VictoryPoints: p.victoryPoints,
		IsReady:       p.ready,
	}
}

func (r *Room) View() RoomView {
	v := RoomView{
		Code:        r.code,
		GameState:   r.state,
		Players:     make(map[PlayerID]PlayerView, len(r.order)),
		PlayerOrder: r.Order(),
		TurnNumber:  r.turnNumber,
		CreatedAt:   r.createdAt.Format(time.RFC3339),
	}
	for _, id := range r.order {
		v.Players[id] = r.players[id].View()
	}
	if cur, ok := r.CurrentTurn(); ok {
		v.CurrentTurn = &cur
	}
	if w, ok := r.Winner(); ok {
		v.Winner = &w
	}
	return v
}
