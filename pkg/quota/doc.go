// Package quota enforces the free-tier ceiling on metered generation.
//
// The gate works on entitlement decisions and never touches storage:
//
//	gate := quota.NewGate(cfg.FreeLimit)
//	if res := gate.Admit(decision); !res.Allowed {
//		return handler.Fail(res.Reason, http.StatusOK)
//	}
//
// Denial is a value. A free account whose consumed usage equals the limit is
// denied; one below the limit is admitted. Premium is always admitted.
// RequirePremium guards features such as image generation that free accounts
// cannot use at all.
package quota
