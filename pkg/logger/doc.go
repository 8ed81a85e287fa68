// Package logger builds the service's slog.Logger and provides attribute
// helpers so log keys stay consistent across packages.
//
//	log := logger.New(
//		logger.WithEnvironment(os.Getenv("APP_ENV"), "ripple-ai"),
//		logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	log.InfoContext(ctx, "entitlement resolved",
//		logger.UserID(accountID),
//		logger.Tier("free"),
//		logger.Usage(3),
//	)
//
// Components accept a *slog.Logger through an option and fall back to
// Discard when none is given.
package logger
