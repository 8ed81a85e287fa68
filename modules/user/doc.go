// Package user serves the creation routes mounted under /api/user: the
// caller's own creations, the published feed and like toggling. These routes
// need an identity but no entitlement decision.
package user
