// Package entitlement decides whether a caller is on the free or premium tier.
//
// Account metadata from the identity provider has no fixed shape, so the
// Classifier runs a chain of predicates over every top-level field of both the
// private and public partitions. The default chain matches a literal
// hasPremiumPlan: true flag, a plan/subscription/tier/membership/role field
// containing premium, pro, paid or plus, and finally any value containing one
// of those keywords. Matching is permissive: a false positive grants service
// rather than denying it. The chain can be replaced with a YAML rules file.
//
// The Resolver combines the classifier with operator overrides and the
// free_usage counter:
//
//	resolver := entitlement.NewResolver(store,
//		entitlement.WithOverrides(cfg.Overrides()),
//		entitlement.WithLogger(log),
//	)
//	decision, err := resolver.Resolve(ctx, accountID)
//
// Premium accounts with a nonzero counter get it reset to 0. Store failures
// surface as ErrLookupFailed and the request is rejected, never defaulted to a
// tier. Middleware runs the resolver per request and stores the Decision in the
// request context for the quota gate and usage accountant.
package entitlement
