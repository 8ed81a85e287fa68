// Package metadata is the boundary to the identity provider's per-account
// metadata: a private partition only the service reads and writes, and a
// public partition the provider exposes to clients.
//
// Store implementations:
//
//   - RedisStore: one hash per partition with JSON field values; atomic
//     counter increments through a Lua script.
//   - MongoStore: one document per account; atomic increments through an
//     update pipeline.
//   - ClerkStore: the Clerk Backend API; partial metadata patches, no atomic
//     increment.
//   - MemoryStore: in-process, for local runs and tests.
//
// Stores that also implement Incrementer let the usage accountant bump the
// free usage counter without a lost-update window.
package metadata
