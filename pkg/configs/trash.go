package configs

import (
	"github.com/spf13/viper"
)

const (
	DefaultTrashRetentionDays = 30
	DefaultTrashPurgeCron     = "0 4 * * *" // daily at 04:00
	DefaultTrashPurgeEnabled  = true
)

// TrashConfig holds trash retention settings for the scheduled purge job.
type TrashConfig struct {
	RetentionDays int    `mapstructure:"retention_days" rule:"min=1"`
	PurgeCron     string `mapstructure:"purge_cron"`
	PurgeEnabled  bool   `mapstructure:"purge_enabled"`
}

func (c *TrashConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("trash.retention_days", DefaultTrashRetentionDays)
	v.SetDefault("trash.purge_cron", DefaultTrashPurgeCron)
	v.SetDefault("trash.purge_enabled", DefaultTrashPurgeEnabled)
}
