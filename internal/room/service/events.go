package service

import "Conquest/internal/room/entity"

// 服务端 -> 客户端消息类型。
const (
	MsgRoomState          = "room_state"
	MsgPlayerJoined       = "player_joined"
	MsgPlayerReadyUpdate  = "player_ready_update"
	MsgGameStart          = "game_start"
	MsgActionResult       = "action_result"
	MsgBattleResult       = "battle_result"
	MsgTradeCompleted     = "trade_completed"
	MsgTurnEnded          = "turn_ended"
	MsgGameFinished       = "game_finished"
	MsgPlayerDisconnected = "player_disconnected"
)

type RoomStateMsg struct {
	Type string          `json:"type"`
	Room entity.RoomView `json:"room"`
}

type PlayerJoinedMsg struct {
	Type     string          `json:"type"`
	PlayerID entity.PlayerID `json:"player_id"`
	Room     entity.RoomView `json:"room"`
}

type PlayerReadyUpdateMsg struct {
	Type     string          `json:"type"`
	PlayerID entity.PlayerID `json:"player_id"`
	Ready    bool            `json:"ready"`
	Room     entity.RoomView `json:"room"`
}

type GameStartMsg struct {
	Type string          `json:"type"`
	Room entity.RoomView `json:"room"`
}

// ActionResultMsg 成功时广播（带 action 与 room），失败时只回给发起方（带 error）。
type ActionResultMsg struct {
	Type     string           `json:"type"`
	PlayerID entity.PlayerID  `json:"player_id,omitempty"`
	Action   map[string]any   `json:"action,omitempty"`
	Success  bool             `json:"success"`
	Error    string           `json:"error,omitempty"`
	Room     *entity.RoomView `json:"room,omitempty"`
}

type BattleResultMsg struct {
	Type          string          `json:"type"`
	AttackerID    entity.PlayerID `json:"attacker_id"`
	DefenderID    entity.PlayerID `json:"defender_id"`
	Result        BattleResult    `json:"result"`
	BattleDetails BattleReport    `json:"battle_details"`
	Room          entity.RoomView `json:"room"`
}

type TradeCompletedMsg struct {
	Type           string          `json:"type"`
	PlayerID       entity.PlayerID `json:"player_id"`
	TargetPlayerID entity.PlayerID `json:"target_player_id"`
	TradeOffer     entity.Bundle   `json:"trade_offer"`
	TradeRequest   entity.Bundle   `json:"trade_request"`
	Room           entity.RoomView `json:"room"`
}

type TurnEndedMsg struct {
	Type       string          `json:"type"`
	NextTurn   entity.PlayerID `json:"next_turn"`
	TurnNumber int             `json:"turn_number"`
	Room       entity.RoomView `json:"room"`
}

type GameFinishedMsg struct {
	Type       string          `json:"type"`
	WinnerID   entity.PlayerID `json:"winner_id"`
	WinnerName string          `json:"winner_name"`
	Room       entity.RoomView `json:"room"`
}

type PlayerDisconnectedMsg struct {
	Type     string          `json:"type"`
	PlayerID entity.PlayerID `json:"player_id"`
	Room     entity.RoomView `json:"room"`
}

func actionFailed(err error) *ActionResultMsg {
	return &ActionResultMsg{Type: MsgActionResult, Success: false, Error: errMessage(err)}
}
