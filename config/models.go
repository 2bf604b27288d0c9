package config

import "time"

type DBConfig struct {
	URL             string        `mapstructure:"url" validate:"required"`
	MaxOpenConns    int32         `mapstructure:"max_open_conns"`
	MinIdleConns    int32         `mapstructure:"min_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
	HealthTimeout   time.Duration `mapstructure:"health_timeout"`
}

type RedisConfig struct {
	URL             string        `mapstructure:"url" validate:"required"`
	DialTimeout     time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	PoolSize        int           `mapstructure:"pool_size"`
	MinIdleConns    int           `mapstructure:"min_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
}

type StatusConfig struct {
	// TTL for resolved page statuses. Incident and operational results
	// share the same TTL on purpose, the contract stays simple.
	CacheTTL time.Duration `mapstructure:"cache_ttl" validate:"required"`
	// FailOpen picks the cache failure policy: serve the last good value
	// when a recompute fails, instead of propagating the error to all
	// single-flight waiters.
	FailOpen bool `mapstructure:"fail_open"`
}

type UptimeConfig struct {
	DefaultDays int           `mapstructure:"default_days" validate:"gte=1"`
	MaxDays     int           `mapstructure:"max_days" validate:"gte=1"`
	HistoryTTL  time.Duration `mapstructure:"history_ttl"`
}

type Config struct {
	Port        int          `mapstructure:"port"`
	Env         string       `mapstructure:"env"`
	ServiceName string       `mapstructure:"service_name"`
	DB          DBConfig     `mapstructure:"db"`
	Redis       RedisConfig  `mapstructure:"redis"`
	Status      StatusConfig `mapstructure:"status"`
	Uptime      UptimeConfig `mapstructure:"uptime"`
}
