package entity

import "time"

// MatchRecord 是对局结束后的结果归档，不用于恢复房间。
type MatchRecord struct {
	ID         int64
	RoomCode   RoomCode
	WinnerID   PlayerID
	WinnerName string
	TurnNumber int
	Standings  []Standing
	CreatedAt  time.Time
	FinishedAt time.Time
}

type Standing struct {
	PlayerID      PlayerID
	Name          string
	VictoryPoints int
	ArmyTotal     int
	Buildings     int
	Technologies  int
	Resources     Bundle
}

// BuildMatchRecord 只对已结束的房间生效。
func (r *Room) BuildMatchRecord(id int64, finishedAt time.Time) (*MatchRecord, bool) {
	if r == nil || r.state != StateFinished {
		return nil, false
	}
	rec := &MatchRecord{
		ID:         id,
		RoomCode:   r.code,
		WinnerID:   r.winner,
		TurnNumber: r.turnNumber,
		Standings:  make([]Standing, 0, len(r.order)),
		CreatedAt:  r.createdAt,
		FinishedAt: finishedAt,
	}
	if w, ok := r.players[r.winner]; ok {
		rec.WinnerName = w.name
	}
	for _, p := range r.Players() {
		buildings := 0
		for _, n := range p.buildings {
			buildings += n
		}
		rec.Standings = append(rec.Standings, Standing{
			PlayerID:      p.id,
			Name:          p.name,
			VictoryPoints: p.victoryPoints,
			ArmyTotal:     p.ArmyTotal(),
			Buildings:     buildings,
			Technologies:  len(p.technologies),
			Resources:     p.resources.Clone(),
		})
	}
	return rec, true
}
