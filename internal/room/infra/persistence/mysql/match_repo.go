package mysql

import (
	"context"

	"Conquest/internal/room/entity"
	"Conquest/internal/room/infra/persistence/model"
	"Conquest/modules/kit/errx"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	OpSaveMatch  = "repo.match.SaveMatch"
	OpListRecent = "repo.match.ListRecent"
)

type MatchRepo struct {
	db *gorm.DB
}

func NewMatchRepo(db *gorm.DB) *MatchRepo {
	return &MatchRepo{db: db}
}

func (r *MatchRepo) WithTx(tx *gorm.DB) *MatchRepo {
	return &MatchRepo{db: tx}
}

// AutoMigrate 建表，启动时调用一次。
func (r *MatchRepo) AutoMigrate() error {
	return r.db.AutoMigrate(&model.Match{}, &model.MatchStanding{})
}

func (r *MatchRepo) SaveMatch(ctx context.Context, rec *entity.MatchRecord) error {
	if rec == nil {
		return nil
	}
	m := model.MatchRecordToModel(rec)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 重试写入时先清掉旧的名次行
		if err := tx.Where("match_id = ?", m.ID).Delete(&model.MatchStanding{}).Error; err != nil {
			return err
		}
		return tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(m).Error
	})
	if err != nil {
		return errx.ErrUnavailable.WithCause(err).WithDataMap(map[string]any{"op": OpSaveMatch, "match_id": m.ID})
	}
	return nil
}

func (r *MatchRepo) ListRecent(ctx context.Context, limit int) ([]*entity.MatchRecord, error) {
	var rows []*model.Match
	q := r.db.WithContext(ctx).
		Preload("Standings", func(db *gorm.DB) *gorm.DB { return db.Order("seat ASC") }).
		Order("finished_at DESC").
		Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, errx.ErrUnavailable.WithCause(err).WithData("op", OpListRecent)
	}
	out := make([]*entity.MatchRecord, 0, len(rows))
	for _, m := range rows {
		out = append(out, model.MatchModelToRecord(m))
	}
	return out, nil
}
