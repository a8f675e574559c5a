package ws

import (
	"errors"

	"github.com/gorilla/websocket"
)

// 客户端 -> 服务端消息类型。
const (
	MsgPlayerReady = "player_ready"
	MsgGameAction  = "game_action"
	MsgEndTurn     = "end_turn"
)

// 关闭码。
const (
	CloseNormal          = websocket.CloseNormalClosure     // 1000
	CloseGoingAway       = websocket.CloseGoingAway         // 1001
	CloseUnsupportedData = websocket.CloseUnsupportedData   // 1003
	ClosePolicyViolation = websocket.ClosePolicyViolation   // 1008
	CloseInternalError   = websocket.CloseInternalServerErr // 1011
)

var (
	ErrConnClosed     = errors.New("ws connection closed")
	ErrSendBufferFull = errors.New("ws send buffer full")
)

// ClientMessage 是客户端上行消息的信封，type 决定其余字段的含义。
type ClientMessage struct {
	Type   string         `json:"type"`
	Ready  bool           `json:"ready"`
	Action map[string]any `json:"action"`
}

type WsMsgReq struct {
	Msg  *ClientMessage
	Conn WSConn
}

// WSConn 是一条长连接的抽象，房间层只依赖这个接口。
type WSConn interface {
	SetProperty(key string, value any)
	GetProperty(key string) any
	RemoveProperty(key string)
	Addr() string
	// Push 非阻塞投递一条下行消息；连接已关闭或发送缓冲已满时返回错误。
	Push(msg any) error
	// CloseWithCode 在已排队的消息写完后发送关闭帧并断开。
	CloseWithCode(code int, reason string)
	Close()
	// Done 在连接生命周期结束时关闭。
	Done() <-chan struct{}
}

const (
	ConnKeyRoomCode = "room_code"
	ConnKeyPlayerID = "player_id"
)
