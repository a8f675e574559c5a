package ws

import (
	"context"
	"errors"

	"Conquest/internal/room/entity"
	"Conquest/internal/room/interfaces/handler"
	"Conquest/internal/shared/transport"
	"Conquest/internal/shared/transport/ws"
	"Conquest/modules/kit/logx"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	probeRoomCode = "test"
	probePlayerID = "test"
)

type RoomConnector interface {
	Connect(ctx context.Context, roomCode, playerID string, conn ws.WSConn) error
	Deliver(ctx context.Context, roomCode, playerID string, conn ws.WSConn, msg *ws.ClientMessage) error
	Disconnect(roomCode, playerID string, conn ws.WSConn)
}

// WsHandler 负责 /ws/:room_code/:player_id：握手校验、消息路由、断线通知。
type WsHandler struct {
	rooms    RoomConnector
	router   *ws.Router
	upgrader *websocket.Upgrader
	opts     ws.Options
	log      logx.Logger
}

func NewWsHandler(rooms RoomConnector, allowed func(origin string) bool, opts ws.Options, l logx.Logger) *WsHandler {
	if l == nil {
		l = logx.Nop()
	}
	h := &WsHandler{
		rooms:    rooms,
		upgrader: ws.NewUpgrader(allowed),
		opts:     opts,
		log:      l,
	}
	h.router = ws.NewRouter(l)
	h.RegisterMessages(h.router)
	return h
}

func (h *WsHandler) RegisterRoutes(group *gin.RouterGroup) {
	group.GET("/ws/:room_code/:player_id", h.Serve)
}

// RegisterMessages 三种上行消息都交给房间 actor，由它决定如何处理。
func (h *WsHandler) RegisterMessages(r *ws.Router) {
	r.Handle(ws.MsgPlayerReady, h.deliver)
	r.Handle(ws.MsgGameAction, h.deliver)
	r.Handle(ws.MsgEndTurn, h.deliver)
}

func (h *WsHandler) Serve(c *gin.Context) {
	roomCode, playerID := c.Param("room_code"), c.Param("player_id")

	wsConn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("ws upgrade failed", zap.String("room_code", roomCode), zap.Error(err))
		return
	}

	if roomCode == probeRoomCode && playerID == probePlayerID {
		h.serveProbe(wsConn)
		return
	}

	conn := ws.NewWsConn(wsConn, h.router, h.opts, h.log)
	conn.SetProperty(ws.ConnKeyRoomCode, roomCode)
	conn.SetProperty(ws.ConnKeyPlayerID, playerID)

	ctx := transport.NewContext("WS connect", "ws")
	transport.AddFields(ctx,
		zap.String("remote_addr", conn.Addr()),
		zap.String("room_code", roomCode),
		zap.String("player_id", playerID))
	defer transport.WriteAccessLog(ctx, h.log)

	if err := h.rooms.Connect(ctx, roomCode, playerID, conn); err != nil {
		code, reason := handler.CloseFrameOf(err)
		transport.SetBizCode(ctx, connectBizCode(err))
		transport.SetErrorReason(ctx, reason)
		conn.Reject(code, reason)
		return
	}
	transport.SetBizCode(ctx, transport.OK)

	go func() {
		<-conn.Done()
		h.rooms.Disconnect(roomCode, playerID, conn)
	}()
	conn.Run()
}

// serveProbe 是前端的连通性检查：回一条消息后正常关闭。
func (h *WsHandler) serveProbe(wsConn *websocket.Conn) {
	conn := ws.NewWsConn(wsConn, nil, h.opts, h.log)
	_ = conn.Push(gin.H{"message": "Test connection successful"})
	conn.CloseWithCode(ws.CloseNormal, "Test complete")
	conn.Run()
}

func (h *WsHandler) deliver(ctx context.Context, req *ws.WsMsgReq) error {
	roomCode, _ := req.Conn.GetProperty(ws.ConnKeyRoomCode).(string)
	playerID, _ := req.Conn.GetProperty(ws.ConnKeyPlayerID).(string)
	return h.rooms.Deliver(ctx, roomCode, playerID, req.Conn, req.Msg)
}

func connectBizCode(err error) transport.BizCode {
	switch {
	case errors.Is(err, entity.ErrRoomNotFound):
		return transport.RoomNotFound
	case errors.Is(err, entity.ErrPlayerNotFound):
		return transport.InvalidParam
	default:
		return transport.SystemError
	}
}
