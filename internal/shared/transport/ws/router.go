package ws

import (
	"context"
	"errors"

	"Conquest/internal/shared/logs"
	"Conquest/internal/shared/transport"
	"Conquest/modules/kit/errx"
	"Conquest/modules/kit/logx"

	"go.uber.org/zap"
)

// HandlerFunc 处理一条上行消息；返回业务错误记为拒绝，其它错误记为系统错误。
type HandlerFunc func(ctx context.Context, req *WsMsgReq) error

// Router 按消息 type 分发，每条消息写一条 access 日志。
type Router struct {
	handlers map[string]HandlerFunc
	log      logx.Logger
}

func NewRouter(l logx.Logger) *Router {
	if l == nil {
		l = logx.NewZapLogger(logs.Logger())
	}
	return &Router{
		handlers: make(map[string]HandlerFunc),
		log:      l,
	}
}

func (r *Router) Handle(msgType string, h HandlerFunc) {
	r.handlers[msgType] = h
}

// Dispatch 返回 false 表示消息类型未注册，由调用方决定是否断开连接。
func (r *Router) Dispatch(req *WsMsgReq) bool {
	if req == nil || req.Msg == nil {
		return false
	}
	h := r.handlers[req.Msg.Type]
	if h == nil {
		return false
	}

	ctx := transport.NewContext("WS "+req.Msg.Type, "")
	if req.Conn != nil {
		transport.AddFields(ctx, zap.String("remote_addr", req.Conn.Addr()))
		if code, ok := req.Conn.GetProperty(ConnKeyRoomCode).(string); ok {
			transport.AddFields(ctx, zap.String("room_code", code))
		}
		if pid, ok := req.Conn.GetProperty(ConnKeyPlayerID).(string); ok {
			transport.AddFields(ctx, zap.String("player_id", pid))
		}
	}
	defer transport.WriteAccessLog(ctx, r.log)

	err := h(ctx, req)
	transport.SetBizCode(ctx, bizCodeOf(err))
	if err != nil {
		transport.SetErrorReason(ctx, err.Error())
	}
	return true
}

func bizCodeOf(err error) transport.BizCode {
	switch {
	case err == nil:
		return transport.OK
	case errors.Is(err, errx.ErrRateLimited):
		return transport.RateLimited
	case errors.Is(err, errx.ErrBadMessage), errors.Is(err, errx.ErrReqParamERR):
		return transport.BadMessage
	case errors.Is(err, errx.ErrUnavailable), errors.Is(err, errx.ErrTimeout):
		return transport.Unavailable
	case errx.IsBiz(err):
		return transport.ActionRejected
	default:
		return transport.SystemError
	}
}
