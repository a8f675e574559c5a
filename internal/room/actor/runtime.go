package actor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"Conquest/internal/room/actors"
	"Conquest/internal/shared/actor/messages"
	"Conquest/internal/shared/session"
	"Conquest/internal/shared/transport/ws"
	"Conquest/modules/kit/errx"

	protoactor "github.com/asynkron/protoactor-go/actor"
)

const defaultAskTimeout = 3 * time.Second

// Stats 是运行时概况，供健康检查使用。
type Stats struct {
	Rooms       int
	Connections int
}

// Runtime 是房间 actor 系统的门面，HTTP 与 WS 入口只通过它和房间交互。
type Runtime struct {
	system   *protoactor.ActorSystem
	root     *protoactor.RootContext
	manager  *protoactor.PID
	registry session.Registry
	timeout  time.Duration
}

func NewRuntime(deps actors.Deps, askTimeout time.Duration) *Runtime {
	if askTimeout <= 0 {
		askTimeout = defaultAskTimeout
	}
	if deps.Registry == nil {
		deps.Registry = session.NewRegistry(deps.Log)
	}

	system := protoactor.NewActorSystem()
	root := system.Root
	d := deps
	managerProps := protoactor.PropsFromProducer(func() protoactor.Actor {
		return actors.NewManagerActor(&d)
	})
	manager := root.Spawn(managerProps)

	return &Runtime{
		system:   system,
		root:     root,
		manager:  manager,
		registry: deps.Registry,
		timeout:  askTimeout,
	}
}

func (r *Runtime) Shutdown() {
	if r == nil {
		return
	}
	if r.root != nil && r.manager != nil {
		_ = r.root.StopFuture(r.manager).Wait()
	}
	if r.system != nil {
		r.system.Shutdown()
	}
}

func (r *Runtime) CreateRoom(ctx context.Context, playerName string) (*actors.RoomReply, error) {
	return r.askRoom(ctx, &actors.CreateRoom{PlayerName: playerName})
}

func (r *Runtime) JoinRoom(ctx context.Context, roomCode, playerName string) (*actors.RoomReply, error) {
	return r.askRoom(ctx, &actors.JoinRoom{RoomCode: roomCode, PlayerName: playerName})
}

func (r *Runtime) GetRoom(ctx context.Context, roomCode string) (*actors.RoomReply, error) {
	return r.askRoom(ctx, &actors.GetRoom{RoomCode: roomCode})
}

// Connect 校验房间和玩家并登记连接；返回业务错误时调用方应以 1008 关闭连接。
func (r *Runtime) Connect(ctx context.Context, roomCode, playerID string, conn ws.WSConn) error {
	return r.askAck(ctx, &messages.Connect{RoomCode: roomCode, PlayerID: playerID, Conn: conn})
}

// Deliver 把一条上行消息交给房间处理，返回值只用于记录 access 日志。
func (r *Runtime) Deliver(ctx context.Context, roomCode, playerID string, conn ws.WSConn, msg *ws.ClientMessage) error {
	return r.askAck(ctx, &messages.Inbound{RoomCode: roomCode, PlayerID: playerID, Conn: conn, Msg: msg})
}

// Disconnect 不等待回复，连接关闭路径上不能被房间阻塞。
func (r *Runtime) Disconnect(roomCode, playerID string, conn ws.WSConn) {
	if r == nil || r.root == nil {
		return
	}
	r.root.Send(r.manager, &messages.Disconnect{RoomCode: roomCode, PlayerID: playerID, Conn: conn})
}

func (r *Runtime) Stats(ctx context.Context) (Stats, error) {
	res, err := r.request(r.manager, &messages.Stats{}, r.timeoutFromContext(ctx))
	if err != nil {
		return Stats{}, err
	}
	reply, ok := res.(*messages.StatsReply)
	if !ok {
		return Stats{}, unexpectedReply(res)
	}
	return Stats{Rooms: reply.Rooms, Connections: r.registry.Total()}, nil
}

func (r *Runtime) askRoom(ctx context.Context, msg any) (*actors.RoomReply, error) {
	res, err := r.request(r.manager, msg, r.timeoutFromContext(ctx))
	if err != nil {
		return nil, err
	}
	reply, ok := res.(*actors.RoomReply)
	if !ok {
		return nil, unexpectedReply(res)
	}
	if reply.Err != nil {
		return nil, reply.Err
	}
	return reply, nil
}

func (r *Runtime) askAck(ctx context.Context, msg any) error {
	res, err := r.request(r.manager, msg, r.timeoutFromContext(ctx))
	if err != nil {
		return err
	}
	ack, ok := res.(*messages.Ack)
	if !ok {
		return unexpectedReply(res)
	}
	return ack.Err
}

func (r *Runtime) request(pid *protoactor.PID, msg any, timeout time.Duration) (any, error) {
	if r == nil || r.root == nil {
		return nil, errx.ErrUnavailable.WithData("reason", "actor runtime not initialized")
	}
	if pid == nil {
		return nil, errx.ErrInternal.WithData("reason", "actor pid is nil")
	}

	future := r.root.RequestFuture(pid, msg, timeout)
	res, err := future.Result()
	if err != nil {
		if errors.Is(err, protoactor.ErrTimeout) {
			return nil, errx.ErrTimeout.WithCause(err)
		}
		return nil, errx.ErrUnavailable.WithCause(err)
	}
	return res, nil
}

func (r *Runtime) timeoutFromContext(ctx context.Context) time.Duration {
	if r == nil || r.timeout <= 0 {
		return defaultAskTimeout
	}
	if ctx == nil {
		return r.timeout
	}
	deadline, ok := ctx.Deadline()
	if !ok {
		return r.timeout
	}
	remain := time.Until(deadline)
	if remain <= 0 {
		return time.Millisecond
	}
	if remain < r.timeout {
		return remain
	}
	return r.timeout
}

func unexpectedReply(res any) error {
	return errx.ErrInternal.WithData("reply_type", fmt.Sprintf("%T", res))
}
