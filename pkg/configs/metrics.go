package configs

import (
	"github.com/spf13/viper"
)

const (
	DefaultMetricsEnabled        = true
	DefaultMetricsPort           = 9090
	DefaultMetricsPath           = "/metrics"
	DefaultMetricsRuntimeMetrics = true
)

// MetricsConfig holds prometheus settings.
type MetricsConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	Port           int    `mapstructure:"port" rule:"min=1,max=65535"`
	Path           string `mapstructure:"path"`
	RuntimeMetrics bool   `mapstructure:"runtime_metrics"`
}

func (c *MetricsConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("metrics.enabled", DefaultMetricsEnabled)
	v.SetDefault("metrics.port", DefaultMetricsPort)
	v.SetDefault("metrics.path", DefaultMetricsPath)
	v.SetDefault("metrics.runtime_metrics", DefaultMetricsRuntimeMetrics)
}
