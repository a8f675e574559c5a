package service

import (
	"testing"

	"Conquest/internal/room/entity"
)

func TestEvaluateVictory_胜利点(t *testing.T) {
	r := newRoom(t, "a", "b", "c")
	r.Start()
	c := mustPlayer(t, r, "c")

	c.AddVictoryPoints(9)
	if _, ok := EvaluateVictory(r); ok {
		t.Fatalf("9 分不应获胜")
	}
	c.AddVictoryPoints(1)
	w, ok := EvaluateVictory(r)
	if !ok || w != "c" || r.State() != entity.StateFinished {
		t.Fatalf("10 分应立即获胜 w=%s ok=%v state=%s", w, ok, r.State())
	}

	// 之后再有人满足条件也不改写 winner
	mustPlayer(t, r, "a").AddVictoryPoints(20)
	if _, ok := EvaluateVictory(r); ok {
		t.Fatalf("终态后不应再次结束")
	}
	if got, _ := r.Winner(); got != "c" {
		t.Fatalf("winner 被改写为 %s", got)
	}
}

func TestEvaluateVictory_按加入顺序决胜(t *testing.T) {
	r := newRoom(t, "a", "b")
	r.Start()
	mustPlayer(t, r, "a").AddVictoryPoints(10)
	mustPlayer(t, r, "b").AddVictoryPoints(12)
	if w, _ := EvaluateVictory(r); w != "a" {
		t.Fatalf("同时满足时先加入者获胜，got=%s", w)
	}
}

func TestEvaluateVictory_全歼(t *testing.T) {
	r := newRoom(t, "a", "b", "c")
	r.Start()
	for _, id := range []entity.PlayerID{"a", "c"} {
		p := mustPlayer(t, r, id)
		for k, n := range p.Army() {
			_ = p.RemoveUnits(k, n)
		}
	}
	w, ok := EvaluateVictory(r)
	if !ok || w != "b" {
		t.Fatalf("唯一有兵的玩家应获胜 w=%s ok=%v", w, ok)
	}
}

func TestEvaluateVictory_全员无兵不结束(t *testing.T) {
	r := newRoom(t, "a", "b")
	r.Start()
	for _, p := range r.Players() {
		for k, n := range p.Army() {
			_ = p.RemoveUnits(k, n)
		}
	}
	if _, ok := EvaluateVictory(r); ok {
		t.Fatalf("所有人都没兵时不应判胜")
	}
}
