package main

import (
	"context"
	"testing"

	"Conquest/internal/room/infra/persistence/memory"
	"Conquest/internal/shared/serverconfig"
)

func TestOpenArchive_默认使用内存驱动(t *testing.T) {
	for _, driver := range []string{"", "memory"} {
		conf := serverconfig.Config{Archive: serverconfig.ArchiveConfig{Driver: driver}}
		repo, closeFn, err := openArchive(context.Background(), conf)
		if err != nil {
			t.Fatalf("driver=%q: %v", driver, err)
		}
		if _, ok := repo.(*memory.MatchRepo); !ok {
			t.Fatalf("driver=%q 期望内存仓库, got=%T", driver, repo)
		}
		if err := closeFn(context.Background()); err != nil {
			t.Fatalf("关闭内存仓库不应报错: %v", err)
		}
	}
}

func TestOpenArchive_未知驱动报错(t *testing.T) {
	conf := serverconfig.Config{Archive: serverconfig.ArchiveConfig{Driver: "redis"}}
	if _, _, err := openArchive(context.Background(), conf); err == nil {
		t.Fatalf("未知驱动应返回错误")
	}
}
