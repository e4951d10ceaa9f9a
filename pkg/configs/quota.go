package configs

import (
	"github.com/spf13/viper"
)

const (
	DefaultPlan        = "free"
	DefaultFreeGB      = 5
	DefaultProGB       = 100
	DefaultBusinessGB  = 1024
	bytesPerGB         = int64(1) << 30
	UnlimitedPlanBytes = int64(-1)
)

// QuotaConfig maps billing plan tiers to byte ceilings. The ceiling check is
// a policy applied at the upload-intake boundary; the ledger itself never
// clamps.
type QuotaConfig struct {
	DefaultPlan string           `mapstructure:"default_plan"`
	PlanGB      map[string]int64 `mapstructure:"plan_gb"`
}

// PlanLimitBytes returns the byte ceiling for a plan tier, or
// UnlimitedPlanBytes when the plan is unknown or set to a non-positive size.
func (c *QuotaConfig) PlanLimitBytes(plan string) int64 {
	if plan == "" {
		plan = c.DefaultPlan
	}

	gb, ok := c.PlanGB[plan]
	if !ok || gb <= 0 {
		return UnlimitedPlanBytes
	}

	return gb * bytesPerGB
}

func (c *QuotaConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("quota.default_plan", DefaultPlan)
	v.SetDefault("quota.plan_gb", map[string]int64{
		"free":     DefaultFreeGB,
		"pro":      DefaultProGB,
		"business": DefaultBusinessGB,
	})
}
