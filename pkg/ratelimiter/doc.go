// Package ratelimiter throttles generation requests with a token bucket so a
// single account cannot flood the generation backend. It is independent of
// the free usage quota: premium accounts are throttled too.
//
// MemoryStore keeps state per process; RedisStore shares it between
// instances with a Lua script that refills and consumes atomically. Denied
// requests consume nothing.
//
//	bucket, err := ratelimiter.NewBucket(ratelimiter.NewMemoryStore(), cfg)
//	r.Use(ratelimiter.Middleware(bucket, ratelimiter.AccountKey(identity.AccountID), log))
package ratelimiter
