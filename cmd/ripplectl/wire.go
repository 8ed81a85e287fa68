package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/Sudhikumaran/ripple-ai/pkg/config"
	"github.com/Sudhikumaran/ripple-ai/pkg/entitlement"
	"github.com/Sudhikumaran/ripple-ai/pkg/identity"
	"github.com/Sudhikumaran/ripple-ai/pkg/metadata"
	"github.com/Sudhikumaran/ripple-ai/pkg/mongo"
	"github.com/Sudhikumaran/ripple-ai/pkg/quota"
	"github.com/Sudhikumaran/ripple-ai/pkg/redis"
)

type app struct {
	store    metadata.Store
	resolver *entitlement.Resolver
	gate     *quota.Gate
	verifier *identity.Verifier
	close    func(context.Context) error
}

type wireFunc func(ctx context.Context) (*app, error)

// wireApp builds the app from the same environment the server reads.
func wireApp(ctx context.Context) (*app, error) {
	var (
		metaCfg  metadata.Config
		redisCfg redis.Config
		mongoCfg mongo.Config
		entCfg   entitlement.Config
		quotaCfg quota.Config
		idCfg    identity.Config
	)
	if err := errors.Join(
		config.Load(&metaCfg),
		config.Load(&redisCfg),
		config.Load(&mongoCfg),
		config.Load(&entCfg),
		config.Load(&quotaCfg),
		config.Load(&idCfg),
	); err != nil {
		return nil, err
	}

	backend, err := metadata.Open(ctx, metaCfg, metadata.Connections{Redis: redisCfg, Mongo: mongoCfg})
	if err != nil {
		return nil, fmt.Errorf("open metadata backend: %w", err)
	}
	classifier, err := entCfg.Classifier()
	if err != nil {
		_ = backend.Close(ctx)
		return nil, err
	}

	a := &app{
		store: backend.Store,
		resolver: entitlement.NewResolver(backend.Store,
			entitlement.WithClassifier(classifier),
			entitlement.WithOverrides(entCfg.Overrides()),
		),
		gate:  quota.NewGate(quotaCfg.FreeLimit),
		close: backend.Close,
	}
	// Token issuing is optional; other commands work without a key.
	if v, err := identity.NewVerifier(idCfg); err == nil {
		a.verifier = v
	}
	return a, nil
}
