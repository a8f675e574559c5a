package db

import (
	"strings"
	"testing"

	"Conquest/internal/shared/serverconfig"
)

func TestDSN_默认字符集(t *testing.T) {
	dsn := DSN(serverconfig.MySQLConfig{User: "u", Password: "p", Host: "h", Port: 3306, DBName: "conquest"})
	if !strings.HasPrefix(dsn, "u:p@tcp(h:3306)/conquest?") {
		t.Fatalf("dsn 前缀不符: %s", dsn)
	}
	if !strings.Contains(dsn, "charset=utf8mb4") || !strings.Contains(dsn, "parseTime=True") {
		t.Fatalf("dsn 参数不符: %s", dsn)
	}
}
