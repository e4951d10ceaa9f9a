package configs

import (
	"github.com/spf13/viper"
)

const (
	DefaultKVType       = "memory"
	DefaultRedisAddr    = "localhost:6379"
	DefaultRedisDB      = 0
	DefaultKVTTLMinutes = 30
)

type (
	// KVConfig holds key-value cache settings (share record cache).
	KVConfig struct {
		Type       string        `mapstructure:"type" rule:"oneof=memory redis"`
		TTLMinutes int           `mapstructure:"ttl_minutes"`
		Redis      RedisKVConfig `mapstructure:"redis"`
	}

	// RedisKVConfig holds redis backend settings.
	RedisKVConfig struct {
		Addr     string `mapstructure:"addr"`
		Password string `mapstructure:"password"`
		DB       int    `mapstructure:"db"`
	}
)

func (c *KVConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("kv.type", DefaultKVType)
	v.SetDefault("kv.ttl_minutes", DefaultKVTTLMinutes)
	v.SetDefault("kv.redis.addr", DefaultRedisAddr)
	v.SetDefault("kv.redis.password", "")
	v.SetDefault("kv.redis.db", DefaultRedisDB)
}
