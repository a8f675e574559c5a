package serverconfig

import (
	"Conquest/internal/shared/config"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

var Conf Config

var defaults = map[string]any{
	"gameserver.host":         "0.0.0.0",
	"gameserver.port":         8000,
	"room.max_players":        4,
	"room.min_players":        2,
	"room.enforce_turn_order": true,
	"room.idle_ttl_s":         1800,
	"room.finished_ttl_s":     600,
	"room.ask_timeout_ms":     3000,
	"ws.send_buffer":          256,
	"ws.read_limit":           64 * 1024,
	"ws.write_wait_ms":        10000,
	"ws.pong_wait_ms":         60000,
	"ws.rate_limit":           20,
	"ws.rate_burst":           40,
	"archive.driver":          "memory",
	"archive.flush_every_ms":  2000,
	"log.level":               "info",
}

// Load 读取 cfgName（为空时向上查找 configs/conf.yml）到全局 Conf。
func Load(cfgName string) *viper.Viper {
	return config.Load(cfgName, &Conf, config.WithDefaults(defaults))
}

// Watch 只把需要热更新的字段交给回调，全局 Conf 在启动后保持不变。
func Watch(v *viper.Viper, onChange func(fresh Config)) {
	config.Watch(v, func(fresh Config, _ fsnotify.Event) {
		onChange(fresh)
	})
}
