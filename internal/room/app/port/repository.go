package port

import (
	"context"

	"Conquest/internal/room/entity"
)

// MatchRepository 保存已结束对局的结果。
type MatchRepository interface {
	SaveMatch(ctx context.Context, rec *entity.MatchRecord) error
	// ListRecent 按结束时间倒序返回最近的对局。
	ListRecent(ctx context.Context, limit int) ([]*entity.MatchRecord, error)
}
