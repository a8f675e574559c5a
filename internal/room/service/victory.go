package service

import "Conquest/internal/room/entity"

const VictoryPointsToWin = 10

// EvaluateVictory 按加入顺序扫描，第一个满足条件的玩家获胜：
// 胜利点达到阈值，或其余玩家兵力全为 0 而自己仍有兵。
// 只有本次调用让房间结束时才返回 true。
func EvaluateVictory(room *entity.Room) (entity.PlayerID, bool) {
	if room.State() == entity.StateFinished {
		return "", false
	}
	players := room.Players()
	for _, p := range players {
		if p.VictoryPoints() >= VictoryPointsToWin {
			return p.ID(), room.Finish(p.ID())
		}
		if p.ArmyTotal() > 0 && othersDefeated(players, p.ID()) {
			return p.ID(), room.Finish(p.ID())
		}
	}
	return "", false
}

func othersDefeated(players []*entity.Player, self entity.PlayerID) bool {
	for _, o := range players {
		if o.ID() != self && o.ArmyTotal() != 0 {
			return false
		}
	}
	return true
}
