package types

// UsageResponse reports the quota ledger against the plan ceiling.
// LimitBytes is -1 for unlimited plans.
type UsageResponse struct {
	UsedBytes  int64  `json:"used_bytes"`
	LimitBytes int64  `json:"limit_bytes"`
	Plan       string `json:"plan"`
}
