package mongodb

import (
	"context"
	"errors"

	"Conquest/internal/room/entity"
	"Conquest/internal/room/infra/persistence/model"
	"Conquest/modules/kit/errx"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const defaultMatchCollectionName = "match_record"

const (
	OpSaveMatch  = "repo.match.SaveMatch"
	OpListRecent = "repo.match.ListRecent"
)

type MatchRepo struct {
	coll *mongo.Collection
}

func NewMatchRepo(db *mongo.Database) *MatchRepo {
	if db == nil {
		return &MatchRepo{}
	}
	return &MatchRepo{coll: db.Collection(defaultMatchCollectionName)}
}

// EnsureIndexes 为最近对局查询建索引，启动时调用一次。
func (r *MatchRepo) EnsureIndexes(ctx context.Context) error {
	if r == nil || r.coll == nil {
		return errx.ErrUnavailable.WithCause(errors.New("mongodb match collection is nil"))
	}
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "finished_at", Value: -1}}},
		{Keys: bson.D{{Key: "room_code", Value: 1}}},
	})
	return err
}

func (r *MatchRepo) SaveMatch(ctx context.Context, rec *entity.MatchRecord) error {
	if rec == nil {
		return nil
	}
	if r == nil || r.coll == nil {
		return errx.ErrUnavailable.WithCause(errors.New("mongodb match collection is nil")).WithData("op", OpSaveMatch)
	}

	doc := model.MatchRecordToDoc(rec)
	// 按 id upsert，写失败重试时不会重复
	_, err := r.coll.ReplaceOne(
		ctx,
		bson.M{"_id": doc.ID},
		doc,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return errx.ErrUnavailable.WithCause(err).WithDataMap(map[string]any{"op": OpSaveMatch, "match_id": doc.ID})
	}
	return nil
}

func (r *MatchRepo) ListRecent(ctx context.Context, limit int) ([]*entity.MatchRecord, error) {
	if r == nil || r.coll == nil {
		return nil, errx.ErrUnavailable.WithCause(errors.New("mongodb match collection is nil")).WithData("op", OpListRecent)
	}
	opts := options.Find().SetSort(bson.D{{Key: "finished_at", Value: -1}, {Key: "_id", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	cur, err := r.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, errx.ErrUnavailable.WithCause(err).WithData("op", OpListRecent)
	}
	var docs []model.MatchDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, errx.ErrUnavailable.WithCause(err).WithData("op", OpListRecent)
	}
	out := make([]*entity.MatchRecord, 0, len(docs))
	for _, d := range docs {
		out = append(out, model.MatchDocToRecord(d))
	}
	return out, nil
}
