package configs

import (
	"github.com/spf13/viper"
)

const (
	DefaultRateLimitEnabled = false
	DefaultRateLimitRPS     = 50
	DefaultRateLimitBurst   = 100
	DefaultRateLimitKey     = "ip"
)

// RateLimitConfig holds request rate limit settings. Key selects the limiter
// dimension: "global", "ip", or "header:<name>".
type RateLimitConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	RPS     int    `mapstructure:"rps"   rule:"min=0"`
	Burst   int    `mapstructure:"burst" rule:"min=0"`
	Key     string `mapstructure:"key"`
}

func (c *RateLimitConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("ratelimit.enabled", DefaultRateLimitEnabled)
	v.SetDefault("ratelimit.rps", DefaultRateLimitRPS)
	v.SetDefault("ratelimit.burst", DefaultRateLimitBurst)
	v.SetDefault("ratelimit.key", DefaultRateLimitKey)
}
