package entity

import (
	"encoding/json"
	"errors"
	"math"
	"testing"
	"time"
)

func newTestRoom(t *testing.T, n int) *Room {
	t.Helper()
	r := NewRoom("ABCD1234", NewPlayer("p0", "alice"), time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC), 0)
	for i := 1; i < n; i++ {
		if err := r.AddPlayer(NewPlayer(PlayerID("p"+string(rune('0'+i))), "bot")); err != nil {
			t.Fatalf("AddPlayer: %v", err)
		}
	}
	return r
}

func TestNewPlayer_初始资源与军队(t *testing.T) {
	p := NewPlayer("p1", "bob")
	if p.Resource(Gold) != 1000 || p.Resource(Wood) != 500 || p.Resource(Stone) != 500 || p.Resource(Food) != 1000 {
		t.Fatalf("初始资源不符: %v", p.Resources())
	}
	if p.ArmyTotal() != 18 {
		t.Fatalf("初始兵力应为 18，got=%d", p.ArmyTotal())
	}
	// 修改全局初始值不影响已创建的玩家
	p.Credit(Bundle{Gold: 1})
	if InitialResources[Gold] != 1000 {
		t.Fatalf("玩家资源与初始表共享了引用")
	}
}

func TestPlayer_Debit不足时不做任何修改(t *testing.T) {
	p := NewPlayer("p1", "bob")
	before := p.Resources()
	err := p.Debit(Bundle{Gold: 10, Stone: 501})
	if !errors.Is(err, ErrInsufficientResources) {
		t.Fatalf("期望资源不足，got=%v", err)
	}
	for k, v := range before {
		if p.Resource(k) != v {
			t.Fatalf("失败的扣减修改了 %s: %d -> %d", k, v, p.Resource(k))
		}
	}
}

func TestPlayer_负数花费视为买不起(t *testing.T) {
	p := NewPlayer("p1", "bob")
	if p.CanAfford(Bundle{Gold: -1}) {
		t.Fatalf("负数花费不应通过校验")
	}
	if err := p.Debit(Bundle{Gold: 10, Food: -100}); !errors.Is(err, ErrInsufficientResources) {
		t.Fatalf("期望资源不足，got=%v", err)
	}
	if p.Resource(Gold) != 1000 || p.Resource(Food) != 1000 {
		t.Fatalf("失败的扣减修改了资源: %v", p.Resources())
	}
}

func TestPlayer_AddUnits溢出时封顶(t *testing.T) {
	p := NewPlayer("p1", "bob")
	if p.CanHoldUnits(Soldiers, math.MaxInt) {
		t.Fatalf("10 + MaxInt 应判定为放不下")
	}
	p.AddUnits(Soldiers, math.MaxInt)
	if p.Units(Soldiers) != math.MaxInt {
		t.Fatalf("应封顶为 MaxInt，got=%d", p.Units(Soldiers))
	}
	p.AddUnits(Soldiers, 5)
	if p.Units(Soldiers) < 0 {
		t.Fatalf("兵力溢出为负: %d", p.Units(Soldiers))
	}
}

func TestPlayer_TakeResource不会为负(t *testing.T) {
	p := NewPlayer("p1", "bob")
	if got := p.TakeResource(Wood, 800); got != 500 {
		t.Fatalf("最多只能拿走余额，got=%d", got)
	}
	if p.Resource(Wood) != 0 {
		t.Fatalf("余额应为 0，got=%d", p.Resource(Wood))
	}
}

func TestPlayer_AddTech只生效一次(t *testing.T) {
	p := NewPlayer("p1", "bob")
	if !p.AddTech(TradeRoutes) || p.AddTech(TradeRoutes) {
		t.Fatalf("同一科技只能研究一次")
	}
	if len(p.Technologies()) != 1 {
		t.Fatalf("technologies got=%v", p.Technologies())
	}
}

func TestRoom_加入限制(t *testing.T) {
	r := newTestRoom(t, 4)
	if err := r.AddPlayer(NewPlayer("p9", "late")); !errors.Is(err, ErrRoomFull) {
		t.Fatalf("第 5 人应被拒绝，got=%v", err)
	}

	r2 := newTestRoom(t, 2)
	r2.Start()
	if err := r2.AddPlayer(NewPlayer("p9", "late")); !errors.Is(err, ErrRoomAlreadyStarted) {
		t.Fatalf("开局后加入应被拒绝，got=%v", err)
	}
}

func TestRoom_Start设置先手(t *testing.T) {
	r := newTestRoom(t, 3)
	if _, ok := r.CurrentTurn(); ok {
		t.Fatalf("waiting 状态不应有当前回合")
	}
	if !r.Start() || r.State() != StatePlaying {
		t.Fatalf("Start 失败")
	}
	if cur, _ := r.CurrentTurn(); cur != "p0" {
		t.Fatalf("先手应为第一个加入的玩家，got=%s", cur)
	}
	if r.Start() {
		t.Fatalf("重复 Start 应失败")
	}
}

func TestRoom_Finish是终态(t *testing.T) {
	r := newTestRoom(t, 2)
	r.Start()
	if !r.Finish("p1") {
		t.Fatalf("Finish 失败")
	}
	if r.Finish("p0") {
		t.Fatalf("winner 不应被改写")
	}
	if w, _ := r.Winner(); w != "p1" || r.State() != StateFinished {
		t.Fatalf("winner=%s state=%s", w, r.State())
	}
}

func TestRoomView_深拷贝与序列化(t *testing.T) {
	r := newTestRoom(t, 2)
	v := r.View()
	v.Players["p0"].Resources[Gold] = 1

	p0, _ := r.Player("p0")
	if p0.Resource(Gold) != 1000 {
		t.Fatalf("修改快照影响了房间状态")
	}

	data, err := json.Marshal(r.View())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out map[string]any
	_ = json.Unmarshal(data, &out)
	if out["created_at"] != "2026-01-02T03:04:05Z" || out["game_state"] != "waiting" {
		t.Fatalf("快照字段不符: %s", data)
	}
	if out["current_turn"] != nil || out["winner"] != nil {
		t.Fatalf("waiting 状态 current_turn/winner 应为 null: %s", data)
	}
	players, _ := out["players"].(map[string]any)
	p0view, _ := players["p0"].(map[string]any)
	if b, _ := p0view["buildings"].(map[string]any); len(b) != 0 {
		t.Fatalf("未建造时 buildings 应为空: %v", b)
	}
	p0.AddBuilding(Farm)
	if got := r.View().Players["p0"].Buildings; len(got) != 1 || got[Farm] != 1 {
		t.Fatalf("buildings 快照不符: %v", got)
	}
	order, _ := out["player_order"].([]any)
	if len(order) != 2 || order[0] != "p0" {
		t.Fatalf("player_order 不符: %v", order)
	}
}

func TestBuildMatchRecord_仅结束后生成(t *testing.T) {
	r := newTestRoom(t, 2)
	if _, ok := r.BuildMatchRecord(1, time.Now()); ok {
		t.Fatalf("未结束的房间不应生成归档")
	}
	r.Start()
	r.Finish("p0")
	rec, ok := r.BuildMatchRecord(42, time.Now())
	if !ok || rec.ID != 42 || rec.WinnerName != "alice" || len(rec.Standings) != 2 {
		t.Fatalf("归档不符: %+v", rec)
	}
}
