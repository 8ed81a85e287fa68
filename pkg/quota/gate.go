package quota

import "github.com/Sudhikumaran/ripple-ai/pkg/entitlement"

// Gate admits or denies metered operations based on an entitlement decision.
// It must run before any backend call so denied requests cost nothing.
type Gate struct {
	freeLimit int64
}

// NewGate creates a gate. A non-positive limit uses DefaultFreeLimit.
func NewGate(freeLimit int64) *Gate {
	if freeLimit <= 0 {
		freeLimit = DefaultFreeLimit
	}
	return &Gate{freeLimit: freeLimit}
}

// FreeLimit returns the configured free-tier ceiling.
func (g *Gate) FreeLimit() int64 {
	return g.freeLimit
}

// Admit denies free callers whose consumed usage reached the limit.
// Premium callers are always admitted.
func (g *Gate) Admit(d entitlement.Decision) Result {
	if d.IsPremium() || d.RemainingFreeUsage < g.freeLimit {
		return Result{Allowed: true}
	}
	return Result{Allowed: false, Reason: DeniedReason}
}

// RequirePremium returns ErrPremiumRequired for free callers.
func (g *Gate) RequirePremium(d entitlement.Decision) error {
	if d.IsPremium() {
		return nil
	}
	return ErrPremiumRequired
}

// Usage returns consumed usage and the limit. Premium reports Unlimited.
func (g *Gate) Usage(d entitlement.Decision) UsageInfo {
	if d.IsPremium() {
		return UsageInfo{Current: 0, Limit: Unlimited}
	}
	return UsageInfo{Current: d.RemainingFreeUsage, Limit: g.freeLimit}
}

// Remaining returns how many metered generations are left, or Unlimited.
func (g *Gate) Remaining(d entitlement.Decision) int64 {
	if d.IsPremium() {
		return Unlimited
	}
	return max(g.freeLimit-d.RemainingFreeUsage, 0)
}

// UsagePercentage returns usage as a percentage (0-100), or -1 for premium.
func (g *Gate) UsagePercentage(d entitlement.Decision) int {
	if d.IsPremium() {
		return -1
	}
	pct := d.RemainingFreeUsage * 100 / g.freeLimit
	return int(min(pct, 100))
}
