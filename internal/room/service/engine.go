package service

import (
	"Conquest/internal/room/entity"
	"Conquest/modules/kit/errx"
)

type EngineOptions struct {
	MinPlayers       int
	EnforceTurnOrder bool
}

// Delivery 是一次消息处理的输出：Reply 只发给发起连接，Broadcast 按顺序发给房间内所有连接。
type Delivery struct {
	Reply     any
	Broadcast []any
	// Finished 表示本次处理让房间进入 finished。
	Finished bool
}

// Engine 是单个房间的状态机 waiting -> playing -> finished。
// 不加锁，调用方保证同一房间的消息串行处理。
type Engine struct {
	room   *entity.Room
	roller Roller
	opts   EngineOptions
}

func NewEngine(room *entity.Room, roller Roller, opts EngineOptions) *Engine {
	if roller == nil {
		roller = NewRandRoller()
	}
	if opts.MinPlayers < entity.DefaultMinPlayers {
		opts.MinPlayers = entity.DefaultMinPlayers
	}
	return &Engine{room: room, roller: roller, opts: opts}
}

func (e *Engine) Room() *entity.Room {
	return e.room
}

func (e *Engine) Snapshot() entity.RoomView {
	return e.room.View()
}

// Join 在 waiting 状态下加入新玩家（连接建立之前的大厅流程）。
func (e *Engine) Join(p *entity.Player) error {
	return e.room.AddPlayer(p)
}

// Connected 给新连接回 room_state，并广播 player_joined。
func (e *Engine) Connected(pid entity.PlayerID) Delivery {
	view := e.room.View()
	return Delivery{
		Reply:     &RoomStateMsg{Type: MsgRoomState, Room: view},
		Broadcast: []any{&PlayerJoinedMsg{Type: MsgPlayerJoined, PlayerID: pid, Room: view}},
	}
}

func (e *Engine) Disconnected(pid entity.PlayerID) Delivery {
	return Delivery{
		Broadcast: []any{&PlayerDisconnectedMsg{Type: MsgPlayerDisconnected, PlayerID: pid, Room: e.room.View()}},
	}
}

func (e *Engine) Ready(pid entity.PlayerID, ready bool) (Delivery, error) {
	p, ok := e.room.Player(pid)
	if !ok {
		return e.reject(entity.ErrPlayerNotFound)
	}
	if e.room.State() != entity.StateWaiting {
		return e.reject(ErrGameNotWaiting)
	}
	p.SetReady(ready)

	d := Delivery{}
	started := e.allReady() && e.room.Start()
	// 快照在所有修改完成后再取
	view := e.room.View()
	d.Broadcast = append(d.Broadcast, &PlayerReadyUpdateMsg{Type: MsgPlayerReadyUpdate, PlayerID: pid, Ready: ready, Room: view})
	if started {
		d.Broadcast = append(d.Broadcast, &GameStartMsg{Type: MsgGameStart, Room: view})
	}
	return d, nil
}

func (e *Engine) allReady() bool {
	if e.room.PlayerCount() < e.opts.MinPlayers {
		return false
	}
	for _, p := range e.room.Players() {
		if !p.Ready() {
			return false
		}
	}
	return true
}

// Act 处理 game_action；raw 是客户端原始 action，成功时原样回显。
func (e *Engine) Act(pid entity.PlayerID, a Action, raw map[string]any) (Delivery, error) {
	if err := e.checkTurn(pid); err != nil {
		return e.reject(err)
	}
	out, err := Apply(e.room, pid, a, e.roller)
	if err != nil {
		return e.reject(err)
	}

	winner, finished := EvaluateVictory(e.room)
	view := e.room.View()
	d := Delivery{Finished: finished}
	switch out.Kind {
	case OutcomeBattle:
		d.Broadcast = append(d.Broadcast, &BattleResultMsg{
			Type:          MsgBattleResult,
			AttackerID:    pid,
			DefenderID:    out.Target,
			Result:        out.Battle.Result,
			BattleDetails: out.Battle,
			Room:          view,
		})
	case OutcomeTrade:
		d.Broadcast = append(d.Broadcast, &TradeCompletedMsg{
			Type:           MsgTradeCompleted,
			PlayerID:       pid,
			TargetPlayerID: out.Target,
			TradeOffer:     out.Offer,
			TradeRequest:   out.Request,
			Room:           view,
		})
	default:
		d.Broadcast = append(d.Broadcast, &ActionResultMsg{
			Type:     MsgActionResult,
			PlayerID: pid,
			Action:   raw,
			Success:  true,
			Room:     &view,
		})
	}
	if finished {
		d.Broadcast = append(d.Broadcast, e.finishedMsg(winner, view))
	}
	return d, nil
}

func (e *Engine) EndTurn(pid entity.PlayerID) (Delivery, error) {
	if err := e.checkTurn(pid); err != nil {
		return e.reject(err)
	}
	next, err := EndTurn(e.room, pid)
	if err != nil {
		return e.reject(err)
	}
	winner, finished := EvaluateVictory(e.room)
	view := e.room.View()
	d := Delivery{Finished: finished}
	d.Broadcast = append(d.Broadcast, &TurnEndedMsg{
		Type:       MsgTurnEnded,
		NextTurn:   next,
		TurnNumber: e.room.TurnNumber(),
		Room:       view,
	})
	if finished {
		d.Broadcast = append(d.Broadcast, e.finishedMsg(winner, view))
	}
	return d, nil
}

func (e *Engine) checkTurn(pid entity.PlayerID) error {
	if _, ok := e.room.Player(pid); !ok {
		return entity.ErrPlayerNotFound
	}
	if e.room.State() != entity.StatePlaying {
		return ErrGameNotPlaying
	}
	if e.opts.EnforceTurnOrder {
		if cur, _ := e.room.CurrentTurn(); cur != pid {
			return ErrNotYourTurn
		}
	}
	return nil
}

func (e *Engine) finishedMsg(winner entity.PlayerID, view entity.RoomView) *GameFinishedMsg {
	msg := &GameFinishedMsg{Type: MsgGameFinished, WinnerID: winner, Room: view}
	if p, ok := e.room.Player(winner); ok {
		msg.WinnerName = p.Name()
	}
	return msg
}

func (e *Engine) reject(err error) (Delivery, error) {
	return Reject(err)
}

// Reject 构造只回复发起方的失败结果。
func Reject(err error) (Delivery, error) {
	return Delivery{Reply: actionFailed(err)}, err
}

func errMessage(err error) string {
	return errx.MsgOf(err, "Action failed")
}
