package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/Sudhikumaran/ripple-ai/modules/ai"
	"github.com/Sudhikumaran/ripple-ai/modules/user"
	"github.com/Sudhikumaran/ripple-ai/pkg/clientip"
	"github.com/Sudhikumaran/ripple-ai/pkg/config"
	"github.com/Sudhikumaran/ripple-ai/pkg/creations"
	"github.com/Sudhikumaran/ripple-ai/pkg/entitlement"
	"github.com/Sudhikumaran/ripple-ai/pkg/file"
	"github.com/Sudhikumaran/ripple-ai/pkg/generation"
	"github.com/Sudhikumaran/ripple-ai/pkg/httpserver"
	"github.com/Sudhikumaran/ripple-ai/pkg/identity"
	"github.com/Sudhikumaran/ripple-ai/pkg/imagegen"
	"github.com/Sudhikumaran/ripple-ai/pkg/logger"
	"github.com/Sudhikumaran/ripple-ai/pkg/metadata"
	"github.com/Sudhikumaran/ripple-ai/pkg/mongo"
	"github.com/Sudhikumaran/ripple-ai/pkg/pg"
	"github.com/Sudhikumaran/ripple-ai/pkg/quota"
	"github.com/Sudhikumaran/ripple-ai/pkg/ratelimiter"
	"github.com/Sudhikumaran/ripple-ai/pkg/redis"
	"github.com/Sudhikumaran/ripple-ai/pkg/requestid"
	"github.com/Sudhikumaran/ripple-ai/pkg/usage"
)

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var app appConfig
	if err := config.Load(&app); err != nil {
		return err
	}

	log := logger.New(
		logger.WithEnvironment(app.Env, app.ServiceName),
		logger.WithContextExtractors(requestid.LoggerExtractor(), clientip.LoggerExtractor()),
	)
	if missing := config.Missing(optionalKeys...); len(missing) > 0 {
		log.Warn("optional configuration missing, related features are disabled",
			slog.String("keys", strings.Join(missing, ",")),
		)
	}

	var (
		serverCfg  httpserver.Config
		metaCfg    metadata.Config
		redisCfg   redis.Config
		mongoCfg   mongo.Config
		pgCfg      pg.Config
		idCfg      identity.Config
		entCfg     entitlement.Config
		quotaCfg   quota.Config
		genCfg     generation.Config
		imageCfg   imagegen.Config
		storageCfg file.S3Config
		limitCfg   ratelimiter.Config
	)
	if err := errors.Join(
		config.Load(&serverCfg),
		config.Load(&metaCfg),
		config.Load(&redisCfg),
		config.Load(&mongoCfg),
		config.Load(&pgCfg),
		config.Load(&idCfg),
		config.Load(&entCfg),
		config.Load(&quotaCfg),
		config.Load(&genCfg),
		config.Load(&imageCfg),
		config.Load(&storageCfg),
		config.Load(&limitCfg),
	); err != nil {
		return err
	}

	verifier, err := identity.NewVerifier(idCfg)
	if err != nil {
		return fmt.Errorf("identity: %w", err)
	}

	backend, err := metadata.Open(ctx, metaCfg, metadata.Connections{Redis: redisCfg, Mongo: mongoCfg})
	if err != nil {
		return err
	}
	defer func() {
		if err := backend.Close(context.Background()); err != nil {
			log.Error("failed to close metadata backend", logger.Error(err))
		}
	}()
	var checks []httpserver.Check
	if backend.Healthcheck != nil {
		checks = append(checks, httpserver.Check{Name: backend.Name, Fn: backend.Healthcheck})
	}

	classifier, err := entCfg.Classifier()
	if err != nil {
		return err
	}
	resolver := entitlement.NewResolver(backend.Store,
		entitlement.WithClassifier(classifier),
		entitlement.WithOverrides(entCfg.Overrides()),
		entitlement.WithLogger(log),
	)

	var store creations.Store = creations.NewMemoryStore()
	if pgCfg.ConnectionString != "" {
		pool, err := pg.Connect(ctx, pgCfg)
		if err != nil {
			return err
		}
		defer pool.Close()
		if err := creations.Migrate(ctx, pool, pgCfg.MigrationsTable, log); err != nil {
			return err
		}
		store = creations.NewPostgresStore(pool)
		checks = append(checks, httpserver.Check{Name: "postgres", Fn: pg.Healthcheck(pool)})
	}

	var (
		storage    file.Storage
		uploadsDir string
	)
	if storageCfg.Bucket != "" {
		s3Storage, err := file.NewS3Storage(ctx, storageCfg)
		if err != nil {
			return err
		}
		storage = s3Storage
	} else {
		local, err := file.NewLocalStorage(app.UploadsDir, strings.TrimSuffix(app.PublicURL, "/")+"/uploads")
		if err != nil {
			return err
		}
		storage, uploadsDir = local, local.BaseDir()
	}

	invoker := generation.NewInvoker(
		generation.FromConfig(genCfg, generation.NewClient(genCfg)),
		generation.WithMaxTokens(genCfg.MaxTokens),
		generation.WithAttemptTimeout(genCfg.AttemptTimeout),
		generation.WithLogger(log),
	)
	limiter, closeLimiter, err := newLimiter(ctx, limitCfg, redisCfg)
	if err != nil {
		return err
	}
	defer closeLimiter()

	accountant := usage.NewAccountant(backend.Store, usage.WithLogger(log))

	log.Info("starting",
		slog.String("metadata_backend", backend.Name),
		slog.String("usage_mode", accountant.Mode().String()),
		slog.Int64("free_limit", quotaCfg.FreeLimit),
	)

	router := newRouter(routerDeps{
		log:      log,
		verifier: verifier,
		resolver: resolver,
		ai: ai.NewService(quota.NewGate(quotaCfg.FreeLimit), invoker, accountant, store,
			ai.WithImages(imagegen.New(imageCfg), storage),
			ai.WithLogger(log),
		),
		user:       user.NewService(store, user.WithLogger(log)),
		checks:     checks,
		limiter:    limiter,
		uploadsDir: uploadsDir,
	})

	return httpserver.New(serverCfg, httpserver.WithLogger(log)).Run(ctx, router)
}

// newLimiter builds the generation rate limiter. A disabled config returns a
// nil bucket.
func newLimiter(ctx context.Context, cfg ratelimiter.Config, redisCfg redis.Config) (*ratelimiter.Bucket, func(), error) {
	if !cfg.Enabled() {
		return nil, func() {}, nil
	}

	switch cfg.Backend {
	case "redis":
		client, err := redis.Connect(ctx, redisCfg)
		if err != nil {
			return nil, nil, fmt.Errorf("rate limiter: %w", err)
		}
		b, err := ratelimiter.NewBucket(ratelimiter.NewRedisStore(client, cfg.RedisPrefix), cfg)
		if err != nil {
			_ = client.Close()
			return nil, nil, err
		}
		return b, func() { _ = client.Close() }, nil
	default:
		store := ratelimiter.NewMemoryStore()
		b, err := ratelimiter.NewBucket(store, cfg)
		if err != nil {
			store.Close()
			return nil, nil, err
		}
		return b, store.Close, nil
	}
}
