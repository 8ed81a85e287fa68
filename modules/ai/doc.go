// Package ai serves the generation routes mounted under /api/ai.
//
// Every text route runs the same pipeline: read the caller's entitlement
// from the request context, ask the quota gate for admission, generate
// through the strategy chain, store the creation and finally bump the free
// usage counter for free callers. A denied caller gets a 200 envelope with
// success false and no backend is contacted.
//
// Image generation is premium only and is not metered. The image is rendered
// by ClipDrop, uploaded to file storage and stored as a creation whose
// content is the public URL.
//
// Usage:
//
//	svc := ai.NewService(gate, invoker, accountant, store,
//		ai.WithImages(clipdrop, storage),
//		ai.WithLogger(log),
//	)
//	r.With(identity.Middleware(verifier, log), entitlement.Middleware(resolver, identity.AccountID, log)).
//		Mount("/api/ai", svc.Handle())
package ai
