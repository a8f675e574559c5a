package actors

import (
	"strings"
	"time"

	"Conquest/internal/room/entity"
	"Conquest/internal/room/service"
	"Conquest/internal/shared/session"
	"Conquest/internal/shared/utils"
	"Conquest/modules/kit/logx"

	"github.com/google/uuid"
)

// Archiver 接收已结束对局的归档记录，实现必须非阻塞。
type Archiver interface {
	Enqueue(rec *entity.MatchRecord) bool
}

type RoomOptions struct {
	MaxPlayers       int
	MinPlayers       int
	EnforceTurnOrder bool
	IdleTTL          time.Duration
	FinishedTTL      time.Duration
}

// Deps 是房间 actor 共享的外部依赖，由 Runtime 组装后只读使用。
type Deps struct {
	Registry session.Registry
	Archive  Archiver
	Options  RoomOptions
	Log      logx.Logger

	// 以下可在测试中替换
	Roller      service.Roller
	Now         func() time.Time
	NewRoomCode func() string
	NewPlayerID func() string
	NextID      func() (int64, error)
}

func (d *Deps) normalize() {
	if d.Log == nil {
		d.Log = logx.Nop()
	}
	if d.Roller == nil {
		d.Roller = service.NewRandRoller()
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.NewRoomCode == nil {
		d.NewRoomCode = NewRoomCode
	}
	if d.NewPlayerID == nil {
		d.NewPlayerID = uuid.NewString
	}
	if d.NextID == nil {
		d.NextID = utils.NextSnowflakeID
	}
	if d.Options.IdleTTL <= 0 {
		d.Options.IdleTTL = 30 * time.Minute
	}
	if d.Options.FinishedTTL <= 0 {
		d.Options.FinishedTTL = 10 * time.Minute
	}
}

// NewRoomCode 取 UUID 前 8 位并转大写。
func NewRoomCode() string {
	return strings.ToUpper(uuid.NewString()[:8])
}
