package actors

import (
	"Conquest/internal/room/entity"
	"Conquest/internal/room/service"
	"Conquest/internal/shared/transport/ws"
	"Conquest/modules/kit/errx"
)

type roomHandler func(e *service.Engine, pid entity.PlayerID, msg *ws.ClientMessage) (service.Delivery, error)

// dispatcher 把上行消息按 type 交给对应的房间处理函数。
type dispatcher struct {
	handlers map[string]roomHandler
}

func newDispatcher() *dispatcher {
	d := &dispatcher{handlers: make(map[string]roomHandler)}
	d.handlers[ws.MsgPlayerReady] = handlePlayerReady
	d.handlers[ws.MsgGameAction] = handleGameAction
	d.handlers[ws.MsgEndTurn] = handleEndTurn
	return d
}

func (d *dispatcher) dispatch(e *service.Engine, pid entity.PlayerID, msg *ws.ClientMessage) (service.Delivery, error) {
	if msg == nil {
		return service.Delivery{}, errx.ErrBadMessage
	}
	h, ok := d.handlers[msg.Type]
	if !ok {
		// 连接层已拦截未知类型，这里只兜底
		return service.Delivery{}, errx.ErrBadMessage.WithData("type", msg.Type)
	}
	return h(e, pid, msg)
}
