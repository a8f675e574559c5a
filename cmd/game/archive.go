package main

import (
	"context"
	"fmt"

	"Conquest/internal/room/app/port"
	"Conquest/internal/room/infra/persistence/memory"
	"Conquest/internal/room/infra/persistence/mongodb"
	"Conquest/internal/room/infra/persistence/mysql"
	"Conquest/internal/shared/infrastructure/db"
	mongoinfra "Conquest/internal/shared/infrastructure/mongo"
	"Conquest/internal/shared/logs"
	"Conquest/internal/shared/serverconfig"

	"go.uber.org/zap"
)

type closeFunc func(ctx context.Context) error

func noopClose(context.Context) error { return nil }

// openArchive 按 archive.driver 选择对局归档的存储。
func openArchive(ctx context.Context, conf serverconfig.Config) (port.MatchRepository, closeFunc, error) {
	switch conf.Archive.Driver {
	case "", "memory":
		return memory.NewMatchRepo(), noopClose, nil

	case "mongodb":
		database, closeFn, err := mongoinfra.Open(ctx, conf.MongoDB, logs.Logger())
		if err != nil {
			return nil, nil, fmt.Errorf("open mongodb: %w", err)
		}
		repo := mongodb.NewMatchRepo(database)
		if err := repo.EnsureIndexes(ctx); err != nil {
			_ = closeFn(context.Background())
			return nil, nil, fmt.Errorf("ensure match indexes: %w", err)
		}
		logs.Info("match archive on mongodb", zap.String("database", conf.MongoDB.Database))
		return repo, closeFn, nil

	case "mysql":
		gormDB, err := db.Open(conf.MySQL)
		if err != nil {
			return nil, nil, fmt.Errorf("open mysql: %w", err)
		}
		repo := mysql.NewMatchRepo(gormDB)
		if err := repo.AutoMigrate(); err != nil {
			_ = db.Close(gormDB)
			return nil, nil, fmt.Errorf("migrate match tables: %w", err)
		}
		logs.Info("match archive on mysql", zap.String("dbname", conf.MySQL.DBName))
		return repo, func(context.Context) error { return db.Close(gormDB) }, nil

	default:
		return nil, nil, fmt.Errorf("unknown archive driver %q", conf.Archive.Driver)
	}
}
