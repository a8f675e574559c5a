package service

import (
	"errors"
	"testing"

	"Conquest/internal/room/entity"
)

func startedEngine(t *testing.T, enforce bool, ids ...entity.PlayerID) *Engine {
	t.Helper()
	e := NewEngine(newRoom(t, ids...), fixedRolls(80, 10), EngineOptions{EnforceTurnOrder: enforce})
	for _, id := range ids {
		if _, err := e.Ready(id, true); err != nil {
			t.Fatalf("Ready(%s): %v", id, err)
		}
	}
	if e.Room().State() != entity.StatePlaying {
		t.Fatalf("全员准备后应开局")
	}
	return e
}

func TestEngine_全员准备才开局(t *testing.T) {
	e := NewEngine(newRoom(t, "a"), nil, EngineOptions{})
	d, err := e.Ready("a", true)
	if err != nil || len(d.Broadcast) != 1 {
		t.Fatalf("单人准备只应广播 ready 更新 err=%v n=%d", err, len(d.Broadcast))
	}
	if e.Room().State() != entity.StateWaiting {
		t.Fatalf("不足 2 人不应开局")
	}

	_ = e.Join(entity.NewPlayer("b", "bob"))
	d, _ = e.Ready("b", true)
	if len(d.Broadcast) != 2 {
		t.Fatalf("期望 ready 更新 + game_start，got=%d", len(d.Broadcast))
	}
	start, ok := d.Broadcast[1].(*GameStartMsg)
	if !ok || start.Room.GameState != entity.StatePlaying {
		t.Fatalf("第二条应为 game_start: %#v", d.Broadcast[1])
	}
	if start.Room.CurrentTurn == nil || *start.Room.CurrentTurn != "a" {
		t.Fatalf("先手应为 a")
	}

	// 开局后再发 ready 被拒绝
	if _, err := e.Ready("a", false); !errors.Is(err, ErrGameNotWaiting) {
		t.Fatalf("期望 ErrGameNotWaiting，got=%v", err)
	}
}

func TestEngine_开局前不能行动(t *testing.T) {
	e := NewEngine(newRoom(t, "a", "b"), nil, EngineOptions{})
	d, err := e.Act("a", Action{Type: ActionBuild, BuildingType: "farm"}, nil)
	if !errors.Is(err, ErrGameNotPlaying) {
		t.Fatalf("期望 ErrGameNotPlaying，got=%v", err)
	}
	if len(d.Broadcast) != 0 {
		t.Fatalf("失败不应广播")
	}
	if _, err := e.EndTurn("a"); !errors.Is(err, ErrGameNotPlaying) {
		t.Fatalf("期望 ErrGameNotPlaying，got=%v", err)
	}
}

func TestEngine_失败只回复发起方(t *testing.T) {
	e := startedEngine(t, true, "a", "b")
	d, err := e.Act("a", Action{Type: ActionTrain, UnitType: "cavalry", Quantity: intPtr(100)}, nil)
	if err == nil {
		t.Fatalf("期望失败")
	}
	if len(d.Broadcast) != 0 {
		t.Fatalf("失败不应广播")
	}
	reply, ok := d.Reply.(*ActionResultMsg)
	if !ok || reply.Success || reply.Error != "Not enough resources" || reply.Room != nil {
		t.Fatalf("失败回复不符: %#v", d.Reply)
	}
}

func TestEngine_回合归属(t *testing.T) {
	e := startedEngine(t, true, "a", "b")
	if _, err := e.Act("b", Action{Type: ActionBuild, BuildingType: "farm"}, nil); !errors.Is(err, ErrNotYourTurn) {
		t.Fatalf("非当前玩家行动应被拒绝，got=%v", err)
	}
	if _, err := e.EndTurn("b"); !errors.Is(err, ErrNotYourTurn) {
		t.Fatalf("非当前玩家结束回合应被拒绝，got=%v", err)
	}

	free := startedEngine(t, false, "a", "b")
	if _, err := free.Act("b", Action{Type: ActionBuild, BuildingType: "farm"}, nil); err != nil {
		t.Fatalf("关闭回合校验后应允许行动: %v", err)
	}
}

func TestEngine_结束回合只广播一次turn_ended(t *testing.T) {
	e := startedEngine(t, true, "a", "b")
	d, err := e.EndTurn("a")
	if err != nil {
		t.Fatalf("EndTurn: %v", err)
	}
	if len(d.Broadcast) != 1 {
		t.Fatalf("期望 1 条广播，got=%d", len(d.Broadcast))
	}
	msg, ok := d.Broadcast[0].(*TurnEndedMsg)
	if !ok || msg.NextTurn != "b" || msg.TurnNumber != 1 {
		t.Fatalf("turn_ended 不符: %#v", d.Broadcast[0])
	}
	// 快照等于修改后的状态
	if msg.Room.Players["a"].Resources[entity.Gold] != 1050 || *msg.Room.CurrentTurn != "b" {
		t.Fatalf("快照不是修改后的状态")
	}
}

func TestEngine_研究达到10分结束对局(t *testing.T) {
	e := startedEngine(t, false, "a", "b")
	a := mustPlayer(t, e.Room(), "a")
	a.AddVictoryPoints(8)

	raw := map[string]any{"type": "research", "tech_type": "trade_routes"}
	d, err := e.Act("a", Action{Type: ActionResearch, TechType: "trade_routes"}, raw)
	if err != nil {
		t.Fatalf("research: %v", err)
	}
	if !d.Finished || len(d.Broadcast) != 2 {
		t.Fatalf("期望 action_result + game_finished，finished=%v n=%d", d.Finished, len(d.Broadcast))
	}
	res := d.Broadcast[0].(*ActionResultMsg)
	if !res.Success || res.Action["tech_type"] != "trade_routes" || res.Room.GameState != entity.StateFinished {
		t.Fatalf("action_result 不符: %#v", res)
	}
	fin := d.Broadcast[1].(*GameFinishedMsg)
	if fin.WinnerID != "a" || fin.WinnerName != "a" {
		t.Fatalf("game_finished 不符: %#v", fin)
	}

	// 终态之后不再行动
	if _, err := e.Act("b", Action{Type: ActionBuild, BuildingType: "farm"}, nil); !errors.Is(err, ErrGameNotPlaying) {
		t.Fatalf("结束后行动应被拒绝，got=%v", err)
	}
}

func TestEngine_攻击广播战报(t *testing.T) {
	e := startedEngine(t, true, "a", "b")
	d, err := e.Act("a", Action{Type: ActionAttack, TargetPlayerID: "b"}, map[string]any{"type": "attack"})
	if err != nil {
		t.Fatalf("attack: %v", err)
	}
	msg, ok := d.Broadcast[0].(*BattleResultMsg)
	if !ok || msg.AttackerID != "a" || msg.DefenderID != "b" || msg.Result != AttackerWins {
		t.Fatalf("battle_result 不符: %#v", d.Broadcast[0])
	}
	if msg.Room.Players["a"].VictoryPoints != 1 {
		t.Fatalf("快照中攻方胜利点应为 1")
	}
}

func TestEngine_连接与断开(t *testing.T) {
	e := NewEngine(newRoom(t, "a", "b"), nil, EngineOptions{})
	d := e.Connected("b")
	if _, ok := d.Reply.(*RoomStateMsg); !ok {
		t.Fatalf("连接后应单播 room_state")
	}
	if j, ok := d.Broadcast[0].(*PlayerJoinedMsg); !ok || j.PlayerID != "b" {
		t.Fatalf("连接后应广播 player_joined")
	}
	d = e.Disconnected("b")
	if m, ok := d.Broadcast[0].(*PlayerDisconnectedMsg); !ok || m.PlayerID != "b" {
		t.Fatalf("断开后应广播 player_disconnected")
	}
	if _, ok := e.Room().Player("b"); !ok {
		t.Fatalf("断开连接不应移除玩家")
	}
}
