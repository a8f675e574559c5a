package logs

import (
	"path/filepath"
	"testing"

	"Conquest/internal/shared/serverconfig"

	"go.uber.org/zap/zapcore"
)

func TestInit_解析级别并支持热更新(t *testing.T) {
	cfg := serverconfig.LogConfig{
		FileDir: filepath.Join(t.TempDir(), "game.log"),
		Level:   "WARN",
	}
	if err := Init("test", cfg); err != nil {
		t.Fatalf("init: %v", err)
	}
	if Level() != zapcore.WarnLevel {
		t.Fatalf("期望 warn, got=%v", Level())
	}

	SetLevel("debug")
	if Level() != zapcore.DebugLevel {
		t.Fatalf("期望热更新为 debug, got=%v", Level())
	}

	SetLevel("not-a-level")
	if Level() != zapcore.InfoLevel {
		t.Fatalf("非法级别应回退 info, got=%v", Level())
	}
	Info("log after init")
	Sync()
}
