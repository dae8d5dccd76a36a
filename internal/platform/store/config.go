package store

import "time"

// Config selects and configures the backends Open connects
type Config struct {
	AppName string

	PG  PGConfig
	RDS RedisConfig

	// PingAttempts bounds the boot ping loop per backend, default 10
	PingAttempts int
	// PingTimeout bounds each ping, default 3s
	PingTimeout time.Duration
}

// PGConfig configures postgres
type PGConfig struct {
	Enabled     bool
	URL         string
	MaxConns    int32
	LogSQL      bool
	SlowQueryMs int
}

// RedisConfig configures redis, URL takes precedence over Addr and DB
type RedisConfig struct {
	Enabled bool
	URL     string
	Addr    string
	DB      int
}
