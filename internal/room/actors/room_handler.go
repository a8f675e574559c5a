package actors

import (
	"Conquest/internal/room/entity"
	"Conquest/internal/room/service"
	"Conquest/internal/shared/transport/ws"
	"Conquest/modules/kit/errx"
)

func handlePlayerReady(e *service.Engine, pid entity.PlayerID, msg *ws.ClientMessage) (service.Delivery, error) {
	return e.Ready(pid, msg.Ready)
}

func handleGameAction(e *service.Engine, pid entity.PlayerID, msg *ws.ClientMessage) (service.Delivery, error) {
	if msg.Action == nil {
		return service.Reject(errx.ErrBadMessage.WithData("field", "action"))
	}
	var a service.Action
	if err := ws.Bind(msg.Action, &a); err != nil {
		return service.Reject(errx.ErrBadMessage.WithCause(err))
	}
	return e.Act(pid, a, msg.Action)
}

func handleEndTurn(e *service.Engine, pid entity.PlayerID, _ *ws.ClientMessage) (service.Delivery, error) {
	return e.EndTurn(pid)
}
