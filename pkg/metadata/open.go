package metadata

import (
	"context"
	"errors"
	"fmt"

	pkgmongo "github.com/Sudhikumaran/ripple-ai/pkg/mongo"
	pkgredis "github.com/Sudhikumaran/ripple-ai/pkg/redis"
)

// Backend is an opened metadata store with its readiness probe and cleanup.
type Backend struct {
	Name  string
	Store Store
	// Healthcheck is nil for backends without a connection to probe.
	Healthcheck func(context.Context) error
	Close       func(context.Context) error
}

// Connections carries the connection settings a backend may need.
type Connections struct {
	Redis pkgredis.Config
	Mongo pkgmongo.Config
}

// Open connects the backend selected by cfg.Backend.
func Open(ctx context.Context, cfg Config, conn Connections) (*Backend, error) {
	noop := func(context.Context) error { return nil }

	switch cfg.Backend {
	case BackendRedis:
		client, err := pkgredis.Connect(ctx, conn.Redis)
		if err != nil {
			return nil, fmt.Errorf("redis metadata backend: %w", err)
		}
		return &Backend{
			Name:        BackendRedis,
			Store:       NewRedisStore(client, cfg.RedisPrefix),
			Healthcheck: pkgredis.Healthcheck(client),
			Close:       func(context.Context) error { return client.Close() },
		}, nil

	case BackendMongo:
		client, db, err := pkgmongo.Connect(ctx, conn.Mongo)
		if err != nil {
			return nil, fmt.Errorf("mongo metadata backend: %w", err)
		}
		return &Backend{
			Name:        BackendMongo,
			Store:       NewMongoStore(db, cfg.MongoCollection),
			Healthcheck: pkgmongo.Healthcheck(client),
			Close:       client.Disconnect,
		}, nil

	case BackendClerk:
		store, err := NewClerkStore(cfg.ClerkSecretKey, WithClerkBaseURL(cfg.ClerkAPIURL))
		if err != nil {
			return nil, err
		}
		return &Backend{Name: BackendClerk, Store: store, Close: noop}, nil

	case BackendMemory:
		return &Backend{Name: BackendMemory, Store: NewMemoryStore(), Close: noop}, nil
	}

	return nil, errors.Join(ErrUnknownBackend, fmt.Errorf("backend %q", cfg.Backend))
}
