// Package usage persists the free usage counter after a successful metered
// generation.
//
// Stores that implement metadata.Incrementer (Redis, MongoDB, in-memory) get a
// server-side increment, so concurrent requests from one account never lose
// updates. The Clerk store has no such primitive and falls back to writing the
// counter read at admission plus one.
//
// The counter is read and incremented in separate round-trips, so a near-limit
// account with several requests in flight can still be admitted past the
// limit. Only the count itself is exact.
package usage
