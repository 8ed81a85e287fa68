// Package creations stores generated articles, blog titles and images.
//
// PostgresStore uses a pgx pool; the schema ships as goose migrations embedded
// in the binary and applied with Migrate at startup. MemoryStore has the same
// behavior for local runs without a database. Listings are newest first.
package creations
