package dto

import "Conquest/internal/room/entity"

// RoomTicket 是建房和加入房间的返回体。
type RoomTicket struct {
	RoomCode string          `json:"room_code"`
	PlayerID string          `json:"player_id"`
	Room     entity.RoomView `json:"room"`
}

type RoomInfo struct {
	Code        entity.RoomCode                       `json:"code"`
	Players     map[entity.PlayerID]entity.PlayerView `json:"players"`
	GameState   entity.GameState                      `json:"game_state"`
	PlayerCount int                                   `json:"player_count"`
}

func RoomInfoOf(v entity.RoomView) RoomInfo {
	return RoomInfo{
		Code:        v.Code,
		Players:     v.Players,
		GameState:   v.GameState,
		PlayerCount: len(v.Players),
	}
}

// ErrorResp 沿用 {"detail": "..."} 的错误格式。
type ErrorResp struct {
	Detail string `json:"detail"`
}
