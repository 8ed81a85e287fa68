package quota

// Unlimited is the limit reported for premium callers.
const Unlimited int64 = -1

// DefaultFreeLimit is the number of metered generations a free account gets.
const DefaultFreeLimit int64 = 10

// DeniedReason is shown to free callers who used up their quota.
const DeniedReason = "Limit reached. Upgrade to continue."

// Result is the admission outcome. Denial is a normal outcome, not an error.
type Result struct {
	Allowed bool
	Reason  string
}

// UsageInfo contains the current usage and limit for metered generation.
type UsageInfo struct {
	Current int64 `json:"current"`
	Limit   int64 `json:"limit"`
}

// Config holds the quota settings.
type Config struct {
	FreeLimit int64 `env:"FREE_USAGE_LIMIT" envDefault:"10"`
}
