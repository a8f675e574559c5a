package service

import "Conquest/internal/room/entity"

// EndTurn 把回合交给加入顺序中的下一位，绕回首位时回合数加一，然后给所有玩家发放收入。
// 调用方负责之后执行胜负判定。
func EndTurn(room *entity.Room, requester entity.PlayerID) (entity.PlayerID, error) {
	idx := room.IndexOf(requester)
	if idx < 0 {
		return "", entity.ErrPlayerNotFound
	}
	order := room.Order()
	nextIdx := (idx + 1) % len(order)
	next := order[nextIdx]
	room.PassTurn(next, nextIdx == 0)

	for _, p := range room.Players() {
		p.Credit(Income(p))
	}
	return next, nil
}
