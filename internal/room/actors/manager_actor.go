package actors

import (
	"Conquest/internal/room/entity"
	"Conquest/internal/shared/actor/messages"
	"Conquest/internal/shared/transport/ws"
	"Conquest/modules/kit/errx"

	"github.com/asynkron/protoactor-go/actor"
	"go.uber.org/zap"
)

const maxCodeAttempts = 8

var errCodeExhausted = errx.ErrInternal.WithReason(reasonCode("room_code_exhausted"))

type reasonCode string

func (r reasonCode) ReasonCode() string { return string(r) }

// ManagerActor 维护房间码到房间 actor 的映射，只做路由和建房，不碰房间状态。
type ManagerActor struct {
	deps  *Deps
	rooms map[entity.RoomCode]*actor.PID
}

func NewManagerActor(deps *Deps) *ManagerActor {
	deps.normalize()
	return &ManagerActor{
		deps:  deps,
		rooms: make(map[entity.RoomCode]*actor.PID),
	}
}

func (m *ManagerActor) Receive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *CreateRoom:
		m.createRoom(ctx, msg)
	case *JoinRoom:
		msg.playerID = entity.PlayerID(m.deps.NewPlayerID())
		m.forward(ctx, msg.RoomCode)
	case *GetRoom:
		m.forward(ctx, msg.RoomCode)
	case *messages.Connect:
		m.forward(ctx, msg.RoomCode)
	case *messages.Inbound:
		m.forward(ctx, msg.RoomCode)
	case *messages.Disconnect:
		m.forward(ctx, msg.RoomCode)
	case *messages.Stats:
		ctx.Respond(&messages.StatsReply{Rooms: len(m.rooms)})
	case *roomEvict:
		m.evict(ctx, msg.code)
	}
}

func (m *ManagerActor) createRoom(ctx actor.Context, msg *CreateRoom) {
	code, ok := m.freshCode()
	if !ok {
		ctx.Respond(&RoomReply{Err: errCodeExhausted})
		return
	}
	creator := entity.NewPlayer(entity.PlayerID(m.deps.NewPlayerID()), msg.PlayerName)
	room := entity.NewRoom(code, creator, m.deps.Now(), m.deps.Options.MaxPlayers)
	// 先取快照，spawn 之后房间只归子 actor 所有
	view := room.View()

	props := actor.PropsFromProducer(func() actor.Actor {
		return NewRoomActor(room, m.deps)
	})
	pid := ctx.Spawn(props)
	m.rooms[code] = pid

	m.deps.Log.Info("room created",
		zap.String("room_code", string(code)),
		zap.String("player_id", string(creator.ID())),
		zap.Int("rooms", len(m.rooms)))

	ctx.Respond(&RoomReply{
		RoomCode: string(code),
		PlayerID: string(creator.ID()),
		Room:     view,
	})
}

func (m *ManagerActor) freshCode() (entity.RoomCode, bool) {
	for i := 0; i < maxCodeAttempts; i++ {
		code := entity.RoomCode(m.deps.NewRoomCode())
		if _, taken := m.rooms[code]; !taken && code != "" {
			return code, true
		}
	}
	return "", false
}

// forward 保留原 sender，由房间 actor 直接回复。
func (m *ManagerActor) forward(ctx actor.Context, code string) {
	pid, ok := m.rooms[entity.RoomCode(code)]
	if !ok || pid == nil {
		if ctx.Sender() == nil {
			return
		}
		switch ctx.Message().(type) {
		case *messages.Connect, *messages.Inbound, *messages.Disconnect:
			ctx.Respond(&messages.Ack{Err: entity.ErrRoomNotFound})
		default:
			ctx.Respond(&RoomReply{Err: entity.ErrRoomNotFound})
		}
		return
	}
	ctx.Forward(pid)
}

func (m *ManagerActor) evict(ctx actor.Context, code entity.RoomCode) {
	pid, ok := m.rooms[code]
	if !ok {
		return
	}
	delete(m.rooms, code)
	m.deps.Registry.CloseRoom(string(code), ws.CloseGoingAway, "room closed")
	ctx.Stop(pid)
	m.deps.Log.Info("room evicted", zap.String("room_code", string(code)), zap.Int("rooms", len(m.rooms)))
}
