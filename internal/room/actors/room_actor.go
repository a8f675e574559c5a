package actors

import (
	"context"
	"time"

	"Conquest/internal/room/entity"
	"Conquest/internal/room/service"
	"Conquest/internal/shared/actor/messages"
	"Conquest/internal/shared/transport/ws"
	"Conquest/modules/kit/errx"
	"Conquest/modules/kit/logx"

	"github.com/asynkron/protoactor-go/actor"
	"go.uber.org/zap"
)

// RoomActor 独占一个房间的全部状态，所有校验和修改都在自己的 mailbox 里串行执行。
type RoomActor struct {
	code       entity.RoomCode
	engine     *service.Engine
	deps       *Deps
	dispatcher *dispatcher
	log        logx.Logger
	archived   bool
}

func NewRoomActor(room *entity.Room, deps *Deps) *RoomActor {
	return &RoomActor{
		code: room.Code(),
		engine: service.NewEngine(room, deps.Roller, service.EngineOptions{
			MinPlayers:       deps.Options.MinPlayers,
			EnforceTurnOrder: deps.Options.EnforceTurnOrder,
		}),
		deps:       deps,
		dispatcher: newDispatcher(),
		log:        deps.Log.With(zap.String("room_code", string(room.Code()))),
	}
}

func (a *RoomActor) Receive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Started:
		a.log.Debug("room actor started")
	case *actor.Stopped:
		a.log.Debug("room actor stopped")
		return
	case *actor.ReceiveTimeout:
		ctx.Send(ctx.Parent(), &roomEvict{code: a.code})
		// 等待 manager 停止本 actor，期间不再重复上报
		ctx.CancelReceiveTimeout()
		return
	case *JoinRoom:
		a.join(ctx, msg)
	case *GetRoom:
		ctx.Respond(&RoomReply{RoomCode: string(a.code), Room: a.engine.Snapshot()})
	case *messages.Connect:
		a.connect(ctx, msg)
	case *messages.Inbound:
		a.inbound(ctx, msg)
	case *messages.Disconnect:
		a.disconnect(ctx, msg)
	default:
		return
	}
	a.refreshTimeout(ctx)
}

func (a *RoomActor) join(ctx actor.Context, msg *JoinRoom) {
	p := entity.NewPlayer(msg.playerID, msg.PlayerName)
	if err := a.engine.Join(p); err != nil {
		ctx.Respond(&RoomReply{RoomCode: string(a.code), Err: err})
		return
	}
	a.log.Info("player joined room",
		zap.String("player_id", string(p.ID())),
		zap.Int("player_count", a.engine.Room().PlayerCount()))
	ctx.Respond(&RoomReply{
		RoomCode: string(a.code),
		PlayerID: string(p.ID()),
		Room:     a.engine.Snapshot(),
	})
}

func (a *RoomActor) connect(ctx actor.Context, msg *messages.Connect) {
	pid := entity.PlayerID(msg.PlayerID)
	if _, ok := a.engine.Room().Player(pid); !ok {
		ctx.Respond(&messages.Ack{Err: entity.ErrPlayerNotFound})
		return
	}
	a.deps.Registry.Register(string(a.code), msg.Conn)
	a.deliver(msg.Conn, a.engine.Connected(pid))
	ctx.Respond(&messages.Ack{})
}

func (a *RoomActor) inbound(ctx actor.Context, msg *messages.Inbound) {
	pid := entity.PlayerID(msg.PlayerID)
	d, err := a.dispatcher.dispatch(a.engine, pid, msg.Msg)
	a.deliver(msg.Conn, d)
	if d.Finished {
		a.archive()
	}
	if ctx.Sender() != nil {
		ctx.Respond(&messages.Ack{Err: err})
	}
}

func (a *RoomActor) disconnect(ctx actor.Context, msg *messages.Disconnect) {
	a.deps.Registry.Unregister(string(a.code), msg.Conn)
	if _, ok := a.engine.Room().Player(entity.PlayerID(msg.PlayerID)); ok {
		a.deliver(nil, a.engine.Disconnected(entity.PlayerID(msg.PlayerID)))
	}
	a.log.Info("player disconnected",
		zap.String("player_id", msg.PlayerID),
		zap.Int("connections", a.deps.Registry.Count(string(a.code))))
	if ctx.Sender() != nil {
		ctx.Respond(&messages.Ack{})
	}
}

// deliver 先单播 Reply 再按顺序广播，保证发起方先收到自己的结果。
func (a *RoomActor) deliver(origin ws.WSConn, d service.Delivery) {
	if d.Reply != nil && origin != nil {
		if err := origin.Push(d.Reply); err != nil {
			a.log.Warn("reply dropped", zap.Error(err))
		}
	}
	for _, m := range d.Broadcast {
		a.deps.Registry.Broadcast(string(a.code), m)
	}
}

func (a *RoomActor) archive() {
	if a.archived || a.deps.Archive == nil {
		return
	}
	a.archived = true
	id, err := a.deps.NextID()
	if err != nil {
		logx.ReportSysErrorWithLoggerContext(context.Background(), a.log,
			logx.NewSysLog("archive.next_id", errx.ErrInternal.WithCause(err)))
		return
	}
	rec, ok := a.engine.Room().BuildMatchRecord(id, a.deps.Now())
	if !ok {
		return
	}
	if !a.deps.Archive.Enqueue(rec) {
		a.log.Warn("match archive queue full", zap.Int64("match_id", id))
		return
	}
	a.log.Info("match finished",
		zap.Int64("match_id", id),
		zap.String("winner_id", string(rec.WinnerID)),
		zap.Int("turn_number", rec.TurnNumber))
}

// refreshTimeout 只在房间没有在线连接或已结束时计时。
func (a *RoomActor) refreshTimeout(ctx actor.Context) {
	var ttl time.Duration
	switch {
	case a.engine.Room().State() == entity.StateFinished:
		ttl = a.deps.Options.FinishedTTL
	case a.deps.Registry.Count(string(a.code)) == 0:
		ttl = a.deps.Options.IdleTTL
	}
	if ttl > 0 {
		ctx.SetReceiveTimeout(ttl)
		return
	}
	ctx.CancelReceiveTimeout()
}
