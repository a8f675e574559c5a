package serverconfig

import "time"

type Config struct {
	GameServer GameServerConfig `yaml:"gameserver" mapstructure:"gameserver"`
	Room       RoomConfig       `yaml:"room" mapstructure:"room"`
	WS         WSConfig         `yaml:"ws" mapstructure:"ws"`
	Archive    ArchiveConfig    `yaml:"archive" mapstructure:"archive"`
	MongoDB    MongoDBConfig    `yaml:"mongodb" mapstructure:"mongodb"`
	MySQL      MySQLConfig      `yaml:"mysql" mapstructure:"mysql"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
	Logic      LogicConfig      `yaml:"logic" mapstructure:"logic"`
}

type GameServerConfig struct {
	Host            string   `yaml:"host" mapstructure:"host"`
	Port            int      `yaml:"port" mapstructure:"port"`
	AllowedOrigins  []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
	AllowAllOrigins bool     `yaml:"allow_all_origins" mapstructure:"allow_all_origins"`
}

type RoomConfig struct {
	MaxPlayers       int  `yaml:"max_players" mapstructure:"max_players"`
	MinPlayers       int  `yaml:"min_players" mapstructure:"min_players"`
	EnforceTurnOrder bool `yaml:"enforce_turn_order" mapstructure:"enforce_turn_order"`
	IdleTTLS         int  `yaml:"idle_ttl_s" mapstructure:"idle_ttl_s"`         // 无连接房间的回收时间（秒）
	FinishedTTLS     int  `yaml:"finished_ttl_s" mapstructure:"finished_ttl_s"` // 已结束房间的回收时间（秒）
	AskTimeoutMS     int  `yaml:"ask_timeout_ms" mapstructure:"ask_timeout_ms"`
}

func (c RoomConfig) IdleTTL() time.Duration {
	return time.Duration(c.IdleTTLS) * time.Second
}

func (c RoomConfig) FinishedTTL() time.Duration {
	return time.Duration(c.FinishedTTLS) * time.Second
}

func (c RoomConfig) AskTimeout() time.Duration {
	return time.Duration(c.AskTimeoutMS) * time.Millisecond
}

type WSConfig struct {
	SendBuffer  int     `yaml:"send_buffer" mapstructure:"send_buffer"`
	ReadLimit   int64   `yaml:"read_limit" mapstructure:"read_limit"` // bytes
	WriteWaitMS int     `yaml:"write_wait_ms" mapstructure:"write_wait_ms"`
	PongWaitMS  int     `yaml:"pong_wait_ms" mapstructure:"pong_wait_ms"`
	RateLimit   float64 `yaml:"rate_limit" mapstructure:"rate_limit"` // 每秒消息数，<=0 表示不限
	RateBurst   int     `yaml:"rate_burst" mapstructure:"rate_burst"`
}

type ArchiveConfig struct {
	Driver       string `yaml:"driver" mapstructure:"driver"` // memory/mongodb/mysql
	FlushEveryMS int    `yaml:"flush_every_ms" mapstructure:"flush_every_ms"`
}

type MongoDBConfig struct {
	URI             string `yaml:"uri" mapstructure:"uri"`
	Database        string `yaml:"database" mapstructure:"database"`
	ConnectTimeoutS int    `yaml:"connect_timeout_s" mapstructure:"connect_timeout_s"`
}

type MySQLConfig struct {
	Host     string `yaml:"host" mapstructure:"host"`
	Port     int    `yaml:"port" mapstructure:"port"`
	User     string `yaml:"user" mapstructure:"user"`
	Password string `yaml:"password" mapstructure:"password"`
	DBName   string `yaml:"dbname" mapstructure:"dbname"`
	Charset  string `yaml:"charset" mapstructure:"charset"`
	MaxIdle  int    `yaml:"max_idle" mapstructure:"max_idle"`
	MaxConn  int    `yaml:"max_conn" mapstructure:"max_conn"`
	ShowSQL  bool   `yaml:"show_sql" mapstructure:"show_sql"`
}

type LogConfig struct {
	FileDir    string `yaml:"file_dir" mapstructure:"file_dir"`
	MaxSize    int    `yaml:"max_size" mapstructure:"max_size"` // MB
	MaxBackups int    `yaml:"max_backups" mapstructure:"max_backups"`
	MaxAge     int    `yaml:"max_age" mapstructure:"max_age"` // days
	Compress   bool   `yaml:"compress" mapstructure:"compress"`
	Level      string `yaml:"level" mapstructure:"level"` // debug/info/warn/error...
	Dev        bool   `yaml:"dev" mapstructure:"dev"`
}

type LogicConfig struct {
	ServerID int `yaml:"server_id" mapstructure:"server_id"`
}
