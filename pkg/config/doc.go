// Package config loads application configuration from environment variables.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11: the
// default .env file is read once, then every call to Load parses the current
// environment into a struct annotated with `env` tags.
//
// Each package of the service owns its Config struct (quota.Config,
// generation.Config, metadata.Config, ...) and cmd/server loads them one by one:
//
//	var genCfg generation.Config
//	config.MustLoad(&genCfg)
//
// Missing reports which optional keys are unset so the server can warn about
// features that will be unavailable instead of refusing to start.
package config
