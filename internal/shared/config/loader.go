package config

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Option 在读取配置文件之前调整 viper（默认值、环境变量前缀等）。
type Option func(v *viper.Viper)

// WithDefaults 为缺省 key 设置默认值，key 使用点分路径（如 "room.max_players"）。
func WithDefaults(defaults map[string]any) Option {
	return func(v *viper.Viper) {
		for k, val := range defaults {
			v.SetDefault(k, val)
		}
	}
}

// Load 读取配置并反序列化到 out。
// 环境变量覆盖文件值：gameserver.port -> GAMESERVER_PORT。
func Load(cfgName string, out any, opts ...Option) *viper.Viper {
	configPath := ResolvePath(cfgName)
	if !fileExist(configPath) {
		panic(fmt.Sprintf("config file not exist, configPath=%v", configPath))
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, opt := range opts {
		opt(v)
	}

	if err := v.ReadInConfig(); err != nil {
		panic(err)
	}
	if err := v.Unmarshal(out); err != nil {
		panic(fmt.Errorf("viper unmarshal config: %w", err))
	}
	return v
}

// Watch 监听配置文件变更，变更后把最新配置反序列化到 fresh 再交给 onChange。
// 不直接覆盖全局配置：运行中只允许热更新少数字段（例如日志级别）。
func Watch[T any](v *viper.Viper, onChange func(fresh T, e fsnotify.Event)) {
	if v == nil || onChange == nil {
		return
	}
	v.OnConfigChange(func(e fsnotify.Event) {
		var fresh T
		if err := v.Unmarshal(&fresh); err != nil {
			return
		}
		onChange(fresh, e)
	})
	v.WatchConfig()
}
