package model

import (
	"time"

	"Conquest/internal/room/entity"
)

// MatchDoc 是 mongodb 中的对局文档。
type MatchDoc struct {
	ID         int64         `bson:"_id"`
	RoomCode   string        `bson:"room_code"`
	WinnerID   string        `bson:"winner_id"`
	WinnerName string        `bson:"winner_name"`
	TurnNumber int           `bson:"turn_number"`
	Standings  []StandingDoc `bson:"standings"`
	CreatedAt  time.Time     `bson:"created_at"`
	FinishedAt time.Time     `bson:"finished_at"`
}

type StandingDoc struct {
	PlayerID      string         `bson:"player_id"`
	Name          string         `bson:"name"`
	VictoryPoints int            `bson:"victory_points"`
	ArmyTotal     int            `bson:"army_total"`
	Buildings     int            `bson:"buildings"`
	Technologies  int            `bson:"technologies"`
	Resources     map[string]int `bson:"resources"`
}

// Match 是 mysql 中的对局表。
type Match struct {
	ID         int64           `gorm:"column:id;primaryKey;autoIncrement:false;comment:snowflake id" json:"id"`
	RoomCode   string          `gorm:"column:room_code;type:varchar(16);not null;index;comment:房间码" json:"room_code"`
	WinnerID   string          `gorm:"column:winner_id;type:varchar(64);not null;comment:胜者id" json:"winner_id"`
	WinnerName string          `gorm:"column:winner_name;type:varchar(100);comment:胜者昵称" json:"winner_name"`
	TurnNumber int             `gorm:"column:turn_number;not null;default:1;comment:结束时回合数" json:"turn_number"`
	CreatedAt  time.Time       `gorm:"column:created_at;type:timestamp;not null;comment:房间创建时间" json:"created_at"`
	FinishedAt time.Time       `gorm:"column:finished_at;type:timestamp;not null;index;comment:结束时间" json:"finished_at"`
	Standings  []MatchStanding `gorm:"foreignKey:MatchID;references:ID" json:"standings"`
}

func (Match) TableName() string {
	return "match_record"
}

type MatchStanding struct {
	ID            uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	MatchID       int64  `gorm:"column:match_id;not null;index;comment:对局id" json:"match_id"`
	Seat          int    `gorm:"column:seat;not null;comment:加入顺序" json:"seat"`
	PlayerID      string `gorm:"column:player_id;type:varchar(64);not null" json:"player_id"`
	Name          string `gorm:"column:name;type:varchar(100)" json:"name"`
	VictoryPoints int    `gorm:"column:victory_points;not null;default:0" json:"victory_points"`
	ArmyTotal     int    `gorm:"column:army_total;not null;default:0" json:"army_total"`
	Buildings     int    `gorm:"column:buildings;not null;default:0" json:"buildings"`
	Technologies  int    `gorm:"column:technologies;not null;default:0" json:"technologies"`
	Gold          int    `gorm:"column:gold;not null;default:0" json:"gold"`
	Wood          int    `gorm:"column:wood;not null;default:0" json:"wood"`
	Stone         int    `gorm:"column:stone;not null;default:0" json:"stone"`
	Food          int    `gorm:"column:food;not null;default:0" json:"food"`
}

func (MatchStanding) TableName() string {
	return "match_standing"
}

func MatchRecordToDoc(rec *entity.MatchRecord) MatchDoc {
	doc := MatchDoc{
		ID:         rec.ID,
		RoomCode:   string(rec.RoomCode),
		WinnerID:   string(rec.WinnerID),
		WinnerName: rec.WinnerName,
		TurnNumber: rec.TurnNumber,
		CreatedAt:  rec.CreatedAt,
		FinishedAt: rec.FinishedAt,
		Standings:  make([]StandingDoc, 0, len(rec.Standings)),
	}
	for _, s := range rec.Standings {
		res := make(map[string]int, len(s.Resources))
		for k, v := range s.Resources {
			res[string(k)] = v
		}
		doc.Standings = append(doc.Standings, StandingDoc{
			PlayerID:      string(s.PlayerID),
			Name:          s.Name,
			VictoryPoints: s.VictoryPoints,
			ArmyTotal:     s.ArmyTotal,
			Buildings:     s.Buildings,
			Technologies:  s.Technologies,
			Resources:     res,
		})
	}
	return doc
}

func MatchDocToRecord(doc MatchDoc) *entity.MatchRecord {
	rec := &entity.MatchRecord{
		ID:         doc.ID,
		RoomCode:   entity.RoomCode(doc.RoomCode),
		WinnerID:   entity.PlayerID(doc.WinnerID),
		WinnerName: doc.WinnerName,
		TurnNumber: doc.TurnNumber,
		CreatedAt:  doc.CreatedAt,
		FinishedAt: doc.FinishedAt,
		Standings:  make([]entity.Standing, 0, len(doc.Standings)),
	}
	for _, s := range doc.Standings {
		res := make(entity.Bundle, len(s.Resources))
		for k, v := range s.Resources {
			res[entity.ResourceKind(k)] = v
		}
		rec.Standings = append(rec.Standings, entity.Standing{
			PlayerID:      entity.PlayerID(s.PlayerID),
			Name:          s.Name,
			VictoryPoints: s.VictoryPoints,
			ArmyTotal:     s.ArmyTotal,
			Buildings:     s.Buildings,
			Technologies:  s.Technologies,
			Resources:     res,
		})
	}
	return rec
}

func MatchRecordToModel(rec *entity.MatchRecord) *Match {
	m := &Match{
		ID:         rec.ID,
		RoomCode:   string(rec.RoomCode),
		WinnerID:   string(rec.WinnerID),
		WinnerName: rec.WinnerName,
		TurnNumber: rec.TurnNumber,
		CreatedAt:  rec.CreatedAt,
		FinishedAt: rec.FinishedAt,
		Standings:  make([]MatchStanding, 0, len(rec.Standings)),
	}
	for i, s := range rec.Standings {
		m.Standings = append(m.Standings, MatchStanding{
			MatchID:       rec.ID,
			Seat:          i,
			PlayerID:      string(s.PlayerID),
			Name:          s.Name,
			VictoryPoints: s.VictoryPoints,
			ArmyTotal:     s.ArmyTotal,
			Buildings:     s.Buildings,
			Technologies:  s.Technologies,
			Gold:          s.Resources[entity.Gold],
			Wood:          s.Resources[entity.Wood],
			Stone:         s.Resources[entity.Stone],
			Food:          s.Resources[entity.Food],
		})
	}
	return m
}

func MatchModelToRecord(m *Match) *entity.MatchRecord {
	rec := &entity.MatchRecord{
		ID:         m.ID,
		RoomCode:   entity.RoomCode(m.RoomCode),
		WinnerID:   entity.PlayerID(m.WinnerID),
		WinnerName: m.WinnerName,
		TurnNumber: m.TurnNumber,
		CreatedAt:  m.CreatedAt,
		FinishedAt: m.FinishedAt,
		Standings:  make([]entity.Standing, 0, len(m.Standings)),
	}
	for _, s := range m.Standings {
		rec.Standings = append(rec.Standings, entity.Standing{
			PlayerID:      entity.PlayerID(s.PlayerID),
			Name:          s.Name,
			VictoryPoints: s.VictoryPoints,
			ArmyTotal:     s.ArmyTotal,
			Buildings:     s.Buildings,
			Technologies:  s.Technologies,
			Resources: entity.Bundle{
				entity.Gold:  s.Gold,
				entity.Wood:  s.Wood,
				entity.Stone: s.Stone,
				entity.Food:  s.Food,
			},
		})
	}
	return rec
}
