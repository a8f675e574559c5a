package dto

import (
	"time"

	"Conquest/internal/room/entity"
)

type Match struct {
	ID         int64           `json:"id"`
	RoomCode   entity.RoomCode `json:"room_code"`
	WinnerID   entity.PlayerID `json:"winner_id"`
	WinnerName string          `json:"winner_name"`
	TurnNumber int             `json:"turn_number"`
	Standings  []Standing      `json:"standings"`
	CreatedAt  string          `json:"created_at"`
	FinishedAt string          `json:"finished_at"`
}

type Standing struct {
	PlayerID      entity.PlayerID `json:"player_id"`
	Name          string          `json:"name"`
	VictoryPoints int             `json:"victory_points"`
	ArmyTotal     int             `json:"army_total"`
	Buildings     int             `json:"buildings"`
	Technologies  int             `json:"technologies"`
	Resources     entity.Bundle   `json:"resources"`
}

func MatchesOf(recs []*entity.MatchRecord) []Match {
	out := make([]Match, 0, len(recs))
	for _, rec := range recs {
		if rec == nil {
			continue
		}
		m := Match{
			ID:         rec.ID,
			RoomCode:   rec.RoomCode,
			WinnerID:   rec.WinnerID,
			WinnerName: rec.WinnerName,
			TurnNumber: rec.TurnNumber,
			Standings:  make([]Standing, 0, len(rec.Standings)),
			CreatedAt:  rec.CreatedAt.Format(time.RFC3339),
			FinishedAt: rec.FinishedAt.Format(time.RFC3339),
		}
		for _, s := range rec.Standings {
			m.Standings = append(m.Standings, Standing{
				PlayerID:      s.PlayerID,
				Name:          s.Name,
				VictoryPoints: s.VictoryPoints,
				ArmyTotal:     s.ArmyTotal,
				Buildings:     s.Buildings,
				Technologies:  s.Technologies,
				Resources:     s.Resources,
			})
		}
		out = append(out, m)
	}
	return out
}
