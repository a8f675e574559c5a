package service

import (
	"testing"
	"time"

	"Conquest/internal/room/entity"
)

func newRoom(t *testing.T, ids ...entity.PlayerID) *entity.Room {
	t.Helper()
	if len(ids) == 0 {
		t.Fatalf("至少需要一个玩家")
	}
	r := entity.NewRoom("TESTROOM", entity.NewPlayer(ids[0], string(ids[0])), time.Unix(0, 0).UTC(), 0)
	for _, id := range ids[1:] {
		if err := r.AddPlayer(entity.NewPlayer(id, string(id))); err != nil {
			t.Fatalf("AddPlayer(%s): %v", id, err)
		}
	}
	return r
}

func mustPlayer(t *testing.T, r *entity.Room, id entity.PlayerID) *entity.Player {
	t.Helper()
	p, ok := r.Player(id)
	if !ok {
		t.Fatalf("玩家 %s 不存在", id)
	}
	return p
}

// fixedRolls 依次返回给定骰点。
func fixedRolls(rolls ...int) Roller {
	i := 0
	return RollerFunc(func() int {
		v := rolls[i%len(rolls)]
		i++
		return v
	})
}

func intPtr(n int) *int { return &n }

func assertNonNegative(t *testing.T, r *entity.Room) {
	t.Helper()
	for _, p := range r.Players() {
		for _, k := range entity.ResourceKinds {
			if p.Resource(k) < 0 {
				t.Fatalf("%s 的 %s 为负: %d", p.ID(), k, p.Resource(k))
			}
		}
		for _, k := range entity.UnitKinds {
			if p.Units(k) < 0 {
				t.Fatalf("%s 的 %s 为负: %d", p.ID(), k, p.Units(k))
			}
		}
	}
}
