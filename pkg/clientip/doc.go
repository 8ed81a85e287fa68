// Package clientip resolves the originating client address behind reverse
// proxies and carries it through the request context so that log records
// and rate limiter keys can use it.
//
// Headers are checked in order: CF-Connecting-IP, True-Client-IP,
// X-Forwarded-For (first valid entry) and X-Real-IP; RemoteAddr is the
// fallback. Only deploy behind a proxy that overwrites these headers.
package clientip
