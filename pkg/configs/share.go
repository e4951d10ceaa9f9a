package configs

import (
	"time"

	"github.com/spf13/viper"
)

const (
	DefaultShareSessionTTLMinutes = 60
	DefaultShareMaxExpireDays     = 365
)

// ShareConfig holds share-link settings. SessionSecret signs the short-lived
// cookie a browser receives after a successful password check; it must be
// overridden in production.
type ShareConfig struct {
	SessionSecret     string `mapstructure:"session_secret"`
	SessionTTLMinutes int    `mapstructure:"session_ttl_minutes" rule:"min=1"`
	MaxExpireDays     int    `mapstructure:"max_expire_days"     rule:"min=0"`
}

// GetSessionTTL returns the share session lifetime as a time.Duration.
func (c *ShareConfig) GetSessionTTL() time.Duration {
	return time.Duration(c.SessionTTLMinutes) * time.Minute
}

func (c *ShareConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("share.session_secret", "drivevault-dev-secret")
	v.SetDefault("share.session_ttl_minutes", DefaultShareSessionTTLMinutes)
	v.SetDefault("share.max_expire_days", DefaultShareMaxExpireDays)
}
