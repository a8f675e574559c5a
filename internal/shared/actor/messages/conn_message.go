package messages

import "Conquest/internal/shared/transport/ws"

// 连接层发往房间 actor 的消息，只携带房间码、玩家 id 和连接本身，不涉及业务类型。

type Connect struct {
	RoomCode string
	PlayerID string
	Conn     ws.WSConn
}

type Inbound struct {
	RoomCode string
	PlayerID string
	Conn     ws.WSConn
	Msg      *ws.ClientMessage
}

type Disconnect struct {
	RoomCode string
	PlayerID string
	Conn     ws.WSConn
}

// Ack 是上面几种消息的统一回复；Err 为业务错误时表示被拒绝。
type Ack struct {
	Err error
}

type Stats struct{}

type StatsReply struct {
	Rooms int
}
