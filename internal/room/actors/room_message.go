package actors

import "Conquest/internal/room/entity"

// 大厅流程（建房、加入、查询）发往 ManagerActor 的消息。

type CreateRoom struct {
	PlayerName string
}

type JoinRoom struct {
	RoomCode   string
	PlayerName string
	// 由 ManagerActor 填写后转发给房间
	playerID entity.PlayerID
}

type GetRoom struct {
	RoomCode string
}

// RoomReply 是上述消息的统一回复。
type RoomReply struct {
	RoomCode string
	PlayerID string
	Room     entity.RoomView
	Err      error
}

// roomEvict 由房间 actor 在空闲超时后发给 ManagerActor。
type roomEvict struct {
	code entity.RoomCode
}
